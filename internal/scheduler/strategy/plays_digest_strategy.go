package strategy

import (
	"context"
	"fmt"

	"golang-trading-assistant/internal/gateway/service"
	"golang-trading-assistant/internal/scheduler/config"
	"golang-trading-assistant/pkg/common"
	"golang-trading-assistant/pkg/logger"
	"golang-trading-assistant/pkg/telegram"
)

// PlaysDigestStrategy sends the current smart plays to Telegram.
type PlaysDigestStrategy struct {
	logger           *logger.Logger
	playsService     service.PlaysService
	telegramNotifier telegram.Notifier
}

// NewPlaysDigestStrategy creates a new instance of PlaysDigestStrategy.
func NewPlaysDigestStrategy(logger *logger.Logger, playsService service.PlaysService, telegramNotifier telegram.Notifier) *PlaysDigestStrategy {
	return &PlaysDigestStrategy{logger: logger, playsService: playsService, telegramNotifier: telegramNotifier}
}

// GetType returns the job type this strategy handles.
func (s *PlaysDigestStrategy) GetType() string {
	return common.JobTypePlaysDigest
}

// Execute runs the plays digest job. An empty watchlist result is not sent.
func (s *PlaysDigestStrategy) Execute(ctx context.Context, job config.Job) (string, error) {
	if s.telegramNotifier == nil {
		return "", telegram.ErrNotConfigured
	}

	resp, err := s.playsService.SmartPlays(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to build smart plays: %w", err)
	}
	if len(resp.Plays) == 0 {
		s.logger.InfoContext(ctx, "No smart plays to send", logger.StringField("job", job.Name))
		return "no plays", nil
	}

	sent, err := telegram.SendAll(s.telegramNotifier, telegram.FormatPlaysForTelegram(resp.Plays, resp.Session))
	if err != nil {
		return "", fmt.Errorf("%w: %v", service.ErrDeliveryFailed, err)
	}
	return fmt.Sprintf("sent %d plays in %d messages", len(resp.Plays), sent), nil
}
