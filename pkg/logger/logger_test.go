package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestNew(t *testing.T) {
	l, err := New("debug", "json")
	require.NoError(t, err)
	assert.NotNil(t, l)

	l, err = New("not-a-level", "")
	require.NoError(t, err)
	assert.True(t, l.Core().Enabled(zap.InfoLevel))
	assert.False(t, l.Core().Enabled(zap.DebugLevel))
}

func TestContextFieldsIncludeRequestID(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	l := &Logger{Logger: zap.New(core)}

	ctx := WithRequestID(context.Background(), "req-123")
	l.InfoContext(ctx, "hello", StringField("symbol", "AAPL"))

	require.Equal(t, 1, logs.Len())
	fields := logs.All()[0].ContextMap()
	assert.Equal(t, "req-123", fields["request_id"])
	assert.Equal(t, "AAPL", fields["symbol"])
}

func TestRequestIDFromContextEmpty(t *testing.T) {
	assert.Equal(t, "", RequestIDFromContext(context.Background()))
}
