package utils

import (
	"math"
	"strconv"
	"strings"
	"unicode"
)

// NotAvailable is rendered in text wherever a number is absent or not finite.
const NotAvailable = "N/A"

// IsFinite reports whether v is neither NaN nor infinite.
func IsFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// FinitePtr returns the value behind p, and false when p is nil or not finite.
func FinitePtr(p *float64) (float64, bool) {
	if p == nil || !IsFinite(*p) {
		return 0, false
	}
	return *p, true
}

// Round rounds v to the given number of decimal places.
func Round(v float64, places int) float64 {
	pow := math.Pow(10, float64(places))
	return math.Round(v*pow) / pow
}

// FormatNumber formats v with prec decimals, or "N/A".
func FormatNumber(v float64, prec int) string {
	if !IsFinite(v) {
		return NotAvailable
	}
	return strconv.FormatFloat(v, 'f', prec, 64)
}

// FormatNumberPtr formats *p with prec decimals, or "N/A" when p is nil.
func FormatNumberPtr(p *float64, prec int) string {
	if p == nil {
		return NotAvailable
	}
	return FormatNumber(*p, prec)
}

// ToPointer returns a pointer to a copy of v.
func ToPointer[T any](v T) *T {
	return &v
}

// FinitePointer returns nil for NaN or infinite values.
func FinitePointer(v float64) *float64 {
	if !IsFinite(v) {
		return nil
	}
	return &v
}

// CapitalizeSentence upper-cases the first letter of s.
func CapitalizeSentence(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}

// Truncate cuts s to at most max runes and reports whether it was cut.
func Truncate(s string, max int) (string, bool) {
	if max <= 0 {
		return s, false
	}
	r := []rune(s)
	if len(r) <= max {
		return s, false
	}
	return string(r[:max]), true
}
