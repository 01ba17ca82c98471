package ratelimit

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/time/rate"
)

// TokenLimiter caps the number of LLM tokens spent per minute. The bucket
// refills at max/60 tokens per second and holds at most max tokens.
type TokenLimiter struct {
	max     int
	limiter *rate.Limiter
}

// NewTokenLimiter creates a limiter allowing maxPerMinute tokens per minute.
// A non-positive maxPerMinute disables limiting.
func NewTokenLimiter(maxPerMinute int) *TokenLimiter {
	l := &TokenLimiter{max: maxPerMinute}
	if maxPerMinute > 0 {
		l.limiter = rate.NewLimiter(rate.Limit(float64(maxPerMinute)/60.0), maxPerMinute)
	}
	return l
}

// Wait blocks until tokens fit in the budget and charges them. Passing zero
// waits only until earlier usage has been paid back.
func (l *TokenLimiter) Wait(ctx context.Context, tokens int) error {
	if l.limiter == nil {
		return nil
	}
	if tokens > l.max {
		return fmt.Errorf("request needs %d tokens, above the per-minute limit of %d", tokens, l.max)
	}
	return l.limiter.WaitN(ctx, tokens)
}

// Record charges tokens that were already spent without blocking. Usage above
// the budget leaves the limiter in debt, which the next Wait pays back.
func (l *TokenLimiter) Record(tokens int) {
	if l.limiter == nil || tokens <= 0 {
		return
	}
	if tokens > l.max {
		tokens = l.max
	}
	l.limiter.ReserveN(time.Now(), tokens)
}

// GetRemaining returns how many tokens are available right now. It is
// negative while the limiter is in debt and -1 when limiting is disabled.
func (l *TokenLimiter) GetRemaining() int {
	if l.limiter == nil {
		return -1
	}
	return int(l.limiter.Tokens())
}
