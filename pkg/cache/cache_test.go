package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type payload struct {
	Price float64 `json:"price"`
}

func TestLayeredMemoryOnly(t *testing.T) {
	c := NewLayered(time.Minute, nil, "test:")
	ctx := context.Background()

	var got payload
	assert.ErrorIs(t, c.Get(ctx, "AAPL", &got), ErrCacheMiss)

	require.NoError(t, c.Set(ctx, "AAPL", payload{Price: 190.5}, time.Minute))
	require.NoError(t, c.Get(ctx, "AAPL", &got))
	assert.Equal(t, 190.5, got.Price)
}

func TestLayeredExpiry(t *testing.T) {
	c := NewLayered(time.Minute, nil, "")
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k", payload{Price: 1}, 20*time.Millisecond))
	time.Sleep(50 * time.Millisecond)

	var got payload
	assert.ErrorIs(t, c.Get(ctx, "k", &got), ErrCacheMiss)
}

func TestRememberCachesSuccessOnly(t *testing.T) {
	c := NewLayered(time.Minute, nil, "")
	ctx := context.Background()
	calls := 0

	load := func(context.Context) (payload, error) {
		calls++
		return payload{Price: float64(calls)}, nil
	}

	first, err := Remember(ctx, c, "quote", time.Minute, load)
	require.NoError(t, err)
	second, err := Remember(ctx, c, "quote", time.Minute, load)
	require.NoError(t, err)

	assert.Equal(t, 1, calls)
	assert.Equal(t, first, second)

	failing := func(context.Context) (payload, error) {
		calls++
		return payload{}, errors.New("boom")
	}
	_, err = Remember(ctx, c, "other", time.Minute, failing)
	assert.Error(t, err)
	_, err = Remember(ctx, c, "other", time.Minute, failing)
	assert.Error(t, err)
	assert.Equal(t, 3, calls)
}

func TestRememberWithNop(t *testing.T) {
	calls := 0
	load := func(context.Context) (int, error) {
		calls++
		return calls, nil
	}
	_, _ = Remember[int](context.Background(), Nop{}, "k", time.Minute, load)
	_, _ = Remember[int](context.Background(), Nop{}, "k", time.Minute, load)
	assert.Equal(t, 2, calls)
}
