package utils

import (
	"context"
	"fmt"
	"runtime/debug"

	"golang-trading-assistant/pkg/logger"
)

// GoSafe runs fn in a goroutine. A panic is recovered and logged with the
// request fields carried by ctx.
func GoSafe(ctx context.Context, log *logger.Logger, fn func()) {
	go func() {
		defer func() {
			if r := recover(); r != nil && log != nil {
				log.ErrorContext(ctx, "Recovered from panic",
					logger.StringField("panic", fmt.Sprint(r)),
					logger.StringField("stack", string(debug.Stack())),
				)
			}
		}()
		fn()
	}()
}
