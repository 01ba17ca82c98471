package service

import (
	"context"
	"sync"
	"time"

	"golang-trading-assistant/pkg/logger"
	"golang-trading-assistant/pkg/trace"
	"golang-trading-assistant/pkg/utils"
)

// fanOut runs every task concurrently and waits for all of them. Each task gets
// its own child context with the given timeout, so one expiring never cancels a sibling.
func fanOut(ctx context.Context, log *logger.Logger, name string, timeout time.Duration, tasks ...func(ctx context.Context)) {
	ctx, span := trace.StartSpan(ctx, name)
	defer span.End()

	var wg sync.WaitGroup
	for _, task := range tasks {
		wg.Add(1)
		utils.GoSafe(ctx, log, func() {
			defer wg.Done()
			tctx, cancel := withTimeout(ctx, timeout)
			defer cancel()
			task(tctx)
		})
	}
	wg.Wait()
}

func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}
