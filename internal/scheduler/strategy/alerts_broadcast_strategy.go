package strategy

import (
	"context"
	"fmt"

	"golang-trading-assistant/internal/gateway/service"
	"golang-trading-assistant/internal/scheduler/config"
	"golang-trading-assistant/pkg/common"
	"golang-trading-assistant/pkg/logger"
)

// AlertsBroadcastStrategy scans the watchlist and pushes the alerts to Telegram.
type AlertsBroadcastStrategy struct {
	logger       *logger.Logger
	playsService service.PlaysService
}

// NewAlertsBroadcastStrategy creates a new instance of AlertsBroadcastStrategy.
func NewAlertsBroadcastStrategy(logger *logger.Logger, playsService service.PlaysService) *AlertsBroadcastStrategy {
	return &AlertsBroadcastStrategy{logger: logger, playsService: playsService}
}

// GetType returns the job type this strategy handles.
func (s *AlertsBroadcastStrategy) GetType() string {
	return common.JobTypeAlertsBroadcast
}

// Execute runs the alerts broadcast job.
func (s *AlertsBroadcastStrategy) Execute(ctx context.Context, job config.Job) (string, error) {
	s.logger.DebugContext(ctx, "Executing alerts broadcast job", logger.StringField("job", job.Name))

	resp, err := s.playsService.Broadcast(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to broadcast alerts: %w", err)
	}
	return fmt.Sprintf("broadcast %d alerts in %d messages", resp.Alerts, resp.MessagesSent), nil
}
