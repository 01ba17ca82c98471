package repository

import (
	"context"
	"fmt"
	"net/url"

	"golang-trading-assistant/internal/entity"
	"golang-trading-assistant/internal/gateway/config"
	"golang-trading-assistant/internal/gateway/dto"
	"golang-trading-assistant/pkg/cache"
	"golang-trading-assistant/pkg/common"
	"golang-trading-assistant/pkg/logger"
	"golang-trading-assistant/pkg/metrics"
)

// QuoteRepository fetches a live quote from one provider.
type QuoteRepository interface {
	Name() string
	GetQuote(ctx context.Context, symbol string) (*entity.Quote, error)
}

type finnhubRepository struct {
	*upstream
	cfg   *config.Config
	cache cache.Cache
}

// NewFinnhubRepository creates a Finnhub quote client.
func NewFinnhubRepository(cfg *config.Config, log *logger.Logger, rec *metrics.Recorder, c cache.Cache) QuoteRepository {
	return &finnhubRepository{
		upstream: newUpstream(common.ProviderFinnhub, cfg.Upstream.QuoteTimeout, cfg.Finnhub.MaxRequestPerMinute, log, rec),
		cfg:      cfg,
		cache:    c,
	}
}

func (r *finnhubRepository) Name() string {
	return common.ProviderFinnhub
}

// GetQuote calls /quote. Unknown symbols come back as ErrSymbolNotFound.
func (r *finnhubRepository) GetQuote(ctx context.Context, symbol string) (*entity.Quote, error) {
	if r.cfg.Finnhub.APIKey == "" {
		return nil, missingKey(common.ProviderFinnhub)
	}

	key := common.CacheKeyQuote + common.ProviderFinnhub + ":" + symbol
	q, err := cache.Remember(ctx, r.cache, key, r.cfg.Upstream.CacheTTL, func(ctx context.Context) (entity.Quote, error) {
		params := url.Values{}
		params.Set("symbol", symbol)
		params.Set("token", r.cfg.Finnhub.APIKey)

		var raw dto.FinnhubQuote
		if err := r.getJSON(ctx, r.cfg.Finnhub.BaseURL+"/quote?"+params.Encode(), nil, &raw); err != nil {
			return entity.Quote{}, err
		}
		return NormalizeFinnhubQuote(symbol, raw)
	})
	if err != nil {
		return nil, fmt.Errorf("finnhub quote %s: %w", symbol, err)
	}
	return &q, nil
}
