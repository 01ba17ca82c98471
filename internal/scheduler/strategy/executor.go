package strategy

import (
	"context"

	"golang-trading-assistant/internal/scheduler/config"
)

// JobExecutionStrategy defines the interface for different job execution strategies.
type JobExecutionStrategy interface {
	Execute(ctx context.Context, job config.Job) (string, error)
	GetType() string
}
