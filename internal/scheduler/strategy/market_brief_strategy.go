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

// MarketBriefStrategy sends the market overview to Telegram.
type MarketBriefStrategy struct {
	logger           *logger.Logger
	marketService    service.MarketService
	telegramNotifier telegram.Notifier
}

// NewMarketBriefStrategy creates a new instance of MarketBriefStrategy.
func NewMarketBriefStrategy(logger *logger.Logger, marketService service.MarketService, telegramNotifier telegram.Notifier) *MarketBriefStrategy {
	return &MarketBriefStrategy{logger: logger, marketService: marketService, telegramNotifier: telegramNotifier}
}

// GetType returns the job type this strategy handles.
func (s *MarketBriefStrategy) GetType() string {
	return common.JobTypeMarketBrief
}

// Execute runs the market brief job.
func (s *MarketBriefStrategy) Execute(ctx context.Context, job config.Job) (string, error) {
	if s.telegramNotifier == nil {
		return "", telegram.ErrNotConfigured
	}

	brief := s.marketService.Brief(ctx)
	if len(brief.Indices) == 0 && brief.Volatility == nil && len(brief.Economic) == 0 && brief.Sentiment == nil {
		return "", fmt.Errorf("market brief has no data, unavailable: %v", brief.Unavailable)
	}
	if len(brief.Unavailable) > 0 {
		s.logger.WarnContext(ctx, "Market brief is partial", logger.StringField("job", job.Name), logger.Field("unavailable", brief.Unavailable))
	}

	if err := s.telegramNotifier.SendMessage(telegram.FormatMarketBriefForTelegram(brief)); err != nil {
		return "", fmt.Errorf("%w: %v", service.ErrDeliveryFailed, err)
	}
	return fmt.Sprintf("sent market brief with %d indices", len(brief.Indices)), nil
}
