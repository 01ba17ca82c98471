package repository

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

var (
	// ErrMissingAPIKey means a required provider credential is not configured.
	ErrMissingAPIKey = errors.New("API key is not configured")
	// ErrSymbolNotFound means the provider has no data for the symbol.
	ErrSymbolNotFound = errors.New("symbol not found")
	// ErrRateLimited means the provider throttled the request.
	ErrRateLimited = errors.New("upstream rate limit reached")
	// ErrUpstreamStatus means the provider answered with a non-2xx status.
	ErrUpstreamStatus = errors.New("upstream returned an error status")
	// ErrInvalidResponse means the provider answer could not be understood.
	ErrInvalidResponse = errors.New("invalid upstream response")
	// ErrUnknownProvider means a chat provider name is not registered.
	ErrUnknownProvider = errors.New("unknown provider")
	// ErrInvalidInput means the caller sent something no provider call can serve.
	ErrInvalidInput = errors.New("invalid input")
)

// MissingKeyError names the provider whose key is absent.
type MissingKeyError struct {
	Provider string
}

func (e *MissingKeyError) Error() string {
	return fmt.Sprintf("%s API key is not configured", strings.ToUpper(e.Provider))
}

func (e *MissingKeyError) Unwrap() error {
	return ErrMissingAPIKey
}

func missingKey(provider string) error {
	return &MissingKeyError{Provider: provider}
}

// UpstreamError carries the status and a bounded body of a failed provider call.
type UpstreamError struct {
	Provider   string
	StatusCode int
	Body       string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("received non-OK response from %s: %d - %s", e.Provider, e.StatusCode, e.Body)
}

// Is makes a 429 match ErrRateLimited and a 404 match ErrSymbolNotFound as well as ErrUpstreamStatus.
func (e *UpstreamError) Is(target error) bool {
	switch target {
	case ErrUpstreamStatus:
		return true
	case ErrRateLimited:
		return e.StatusCode == http.StatusTooManyRequests
	case ErrSymbolNotFound:
		return e.StatusCode == http.StatusNotFound
	}
	return false
}

var secretParams = []string{"apikey", "api_key", "token", "key", "access_key"}

// RedactURL hides credential query parameters so URLs can be logged.
func RedactURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return "invalid-url"
	}
	q := u.Query()
	changed := false
	for _, p := range secretParams {
		if q.Has(p) {
			q.Set(p, "REDACTED")
			changed = true
		}
	}
	if changed {
		u.RawQuery = q.Encode()
	}
	return u.String()
}

// redactErr strips the request URL from *url.Error so keys never leak into messages.
func redactErr(err error) error {
	var ue *url.Error
	if errors.As(err, &ue) {
		if ue.Timeout() {
			return fmt.Errorf("request timed out: %w", context.DeadlineExceeded)
		}
		return ue.Err
	}
	return err
}
