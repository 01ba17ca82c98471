package trace

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
)

func TestStartSpanDisabled(t *testing.T) {
	require.NoError(t, Init(Config{Enabled: false}))

	ctx := context.Background()
	got, span := StartSpan(ctx, "noop")
	assert.Equal(t, ctx, got)
	assert.False(t, span.SpanContext().IsValid())

	_, _, ok := GetTraceFields(got)
	assert.False(t, ok)
}

func TestStartSpanEnabled(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Init(Config{Enabled: true, ServiceName: "test", ServiceVersion: "0.0.1", Writer: &buf}))
	t.Cleanup(func() {
		_ = Shutdown(context.Background())
		enabled = false
		tracer = nil
		tracerProvider = nil
	})

	ctx, span := StartSpan(context.Background(), "quote", attribute.String("symbol", "SPY"))
	traceID, spanID, ok := GetTraceFields(ctx)
	require.True(t, ok)
	assert.Len(t, traceID, 32)
	assert.Len(t, spanID, 16)

	End(span, errors.New("boom"))
	require.NoError(t, Shutdown(context.Background()))
	assert.Contains(t, buf.String(), "quote")
}
