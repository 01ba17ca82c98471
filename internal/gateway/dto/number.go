package dto

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"

	"golang-trading-assistant/pkg/utils"
)

// FlexFloat decodes a JSON number or a numeric string. Valid is false for
// null, empty strings, "None", "." and anything else that is not a finite
// number.
type FlexFloat struct {
	Value float64
	Valid bool
}

func (f *FlexFloat) UnmarshalJSON(b []byte) error {
	*f = FlexFloat{}
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		return nil
	}

	raw := string(b)
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return nil
		}
		raw = strings.TrimSuffix(strings.TrimSpace(s), "%")
	}

	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || !utils.IsFinite(v) {
		return nil
	}
	f.Value, f.Valid = v, true
	return nil
}

func (f FlexFloat) MarshalJSON() ([]byte, error) {
	if !f.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(f.Value)
}

// Ptr returns nil when the value is not valid.
func (f FlexFloat) Ptr() *float64 {
	if !f.Valid {
		return nil
	}
	v := f.Value
	return &v
}
