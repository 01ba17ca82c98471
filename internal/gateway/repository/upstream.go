package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/time/rate"

	"golang-trading-assistant/pkg/logger"
	"golang-trading-assistant/pkg/metrics"
	"golang-trading-assistant/pkg/trace"
)

const maxErrorBody = 512

// upstream is the HTTP plumbing shared by every provider client: a request
// limiter, a client with a per-call timeout, logging, tracing and metrics.
type upstream struct {
	provider string
	client   *http.Client
	limiter  *rate.Limiter
	logger   *logger.Logger
	metrics  *metrics.Recorder
}

func newUpstream(provider string, timeout time.Duration, maxRequestPerMinute int, log *logger.Logger, rec *metrics.Recorder) *upstream {
	limiter := rate.NewLimiter(rate.Inf, 1)
	if maxRequestPerMinute > 0 {
		limiter = rate.NewLimiter(rate.Every(time.Minute/time.Duration(maxRequestPerMinute)), 1)
	}
	if log == nil {
		log = logger.NewNop()
	}
	return &upstream{
		provider: provider,
		client:   &http.Client{Timeout: timeout},
		limiter:  limiter,
		logger:   log,
		metrics:  rec,
	}
}

func (u *upstream) getJSON(ctx context.Context, rawURL string, header http.Header, dest interface{}) error {
	return u.do(ctx, http.MethodGet, rawURL, header, nil, dest)
}

func (u *upstream) postJSON(ctx context.Context, rawURL string, header http.Header, payload, dest interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}
	if header == nil {
		header = http.Header{}
	}
	header.Set("Content-Type", "application/json")
	return u.do(ctx, http.MethodPost, rawURL, header, body, dest)
}

// getRaw returns the body of a successful GET.
func (u *upstream) getRaw(ctx context.Context, rawURL string, header http.Header) ([]byte, error) {
	var raw []byte
	err := u.do(ctx, http.MethodGet, rawURL, header, nil, &raw)
	return raw, err
}

func (u *upstream) do(ctx context.Context, method, rawURL string, header http.Header, body []byte, dest interface{}) (err error) {
	safeURL := RedactURL(rawURL)
	ctx, span := trace.StartSpan(ctx, u.provider+".request",
		attribute.String("provider", u.provider),
		attribute.String("http.method", method),
		attribute.String("http.url", safeURL),
	)
	start := time.Now()
	defer func() {
		outcome := metrics.OutcomeSuccess
		if err != nil {
			outcome = metrics.OutcomeError
		}
		u.metrics.ObserveUpstream(u.provider, outcome, time.Since(start))
		trace.End(span, err)
	}()

	if err := u.limiter.Wait(ctx); err != nil {
		u.logger.ErrorContext(ctx, "failed to wait for request limit", logger.StringField("provider", u.provider), logger.ErrorField(err))
		return fmt.Errorf("failed to wait for request limit: %w", err)
	}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, rawURL, reader)
	if err != nil {
		return fmt.Errorf("failed to create new http request: %w", err)
	}
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	if req.Header.Get("Accept") == "" {
		req.Header.Set("Accept", "application/json")
	}

	u.logger.DebugContext(ctx, "Sending upstream request", logger.StringField("provider", u.provider), logger.StringField("url", safeURL))

	resp, err := u.client.Do(req)
	if err != nil {
		u.logger.ErrorContext(ctx, "Failed to send upstream request",
			logger.StringField("provider", u.provider), logger.StringField("url", safeURL), logger.ErrorField(err))
		return fmt.Errorf("failed to send request to %s: %w", u.provider, redactErr(err))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		u.logger.ErrorContext(ctx, "Received non-OK response from upstream",
			logger.StringField("provider", u.provider),
			logger.StringField("url", safeURL),
			logger.IntField("status_code", resp.StatusCode))
		return &UpstreamError{Provider: u.provider, StatusCode: resp.StatusCode, Body: string(b)}
	}

	if raw, ok := dest.(*[]byte); ok {
		*raw, err = io.ReadAll(resp.Body)
		if err != nil {
			return fmt.Errorf("failed to read response body: %w", err)
		}
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		u.logger.ErrorContext(ctx, "Failed to decode upstream response",
			logger.StringField("provider", u.provider), logger.StringField("url", safeURL), logger.ErrorField(err))
		return fmt.Errorf("%w: %s: %v", ErrInvalidResponse, u.provider, err)
	}
	return nil
}
