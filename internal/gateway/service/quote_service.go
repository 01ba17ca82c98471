package service

import (
	"context"
	"errors"
	"math"
	"math/rand"
	"strings"
	"sync"
	"time"

	"golang-trading-assistant/internal/entity"
	"golang-trading-assistant/internal/gateway/config"
	"golang-trading-assistant/internal/gateway/dto"
	"golang-trading-assistant/internal/gateway/repository"
	"golang-trading-assistant/pkg/common"
	"golang-trading-assistant/pkg/logger"
	"golang-trading-assistant/pkg/utils"
)

// MaxQuoteSymbols caps /api/quotes.
const MaxQuoteSymbols = 25

// QuoteService defines the interface for quote lookups.
type QuoteService interface {
	GetQuote(ctx context.Context, symbol string) (*entity.Quote, error)
	GetQuotes(ctx context.Context, symbols []string) map[string]dto.SourceResult[entity.Quote]
}

type quoteService struct {
	cfg          *config.Config
	log          *logger.Logger
	primary      repository.QuoteRepository
	alphaVantage repository.AlphaVantageRepository
	randFloat    func() float64
}

// NewQuoteService picks the primary provider from quote.provider.
func NewQuoteService(cfg *config.Config, log *logger.Logger, finnhub repository.QuoteRepository, alphaVantage repository.AlphaVantageRepository) QuoteService {
	var primary repository.QuoteRepository = finnhub
	if strings.EqualFold(cfg.Quote.Provider, common.ProviderAlphaVantage) {
		primary = alphaVantage
	}
	return &quoteService{
		cfg:          cfg,
		log:          log,
		primary:      primary,
		alphaVantage: alphaVantage,
		randFloat:    rand.Float64,
	}
}

// GetQuote returns the normalized quote for symbol.
func (s *quoteService) GetQuote(ctx context.Context, symbol string) (*entity.Quote, error) {
	symbol, err := repository.NormalizeSymbol(symbol)
	if err != nil {
		return nil, err
	}

	ctx, cancel := withTimeout(ctx, s.cfg.Upstream.QuoteTimeout)
	defer cancel()

	q, err := s.primary.GetQuote(ctx, symbol)
	if err != nil {
		if errors.Is(err, repository.ErrMissingAPIKey) && s.cfg.Quote.SimulatedFallback {
			s.log.WarnContext(ctx, "Quote provider key missing, serving simulated quote", logger.StringField("symbol", symbol))
			return s.simulate(symbol), nil
		}
		return nil, err
	}

	if s.cfg.Quote.EnrichVolume && q.Volume == 0 && s.primary.Name() != common.ProviderAlphaVantage && s.cfg.AlphaVantage.APIKey != "" {
		if av, err := s.alphaVantage.GetQuote(ctx, symbol); err == nil {
			q.Volume = av.Volume
		} else {
			s.log.DebugContext(ctx, "Volume enrichment skipped", logger.StringField("symbol", symbol), logger.ErrorField(err))
		}
	}
	return q, nil
}

// GetQuotes fetches every symbol concurrently. Failures are reported per symbol.
func (s *quoteService) GetQuotes(ctx context.Context, symbols []string) map[string]dto.SourceResult[entity.Quote] {
	var (
		mu     sync.Mutex
		result = make(map[string]dto.SourceResult[entity.Quote], len(symbols))
		tasks  []func(context.Context)
	)
	for _, sym := range symbols {
		tasks = append(tasks, func(ctx context.Context) {
			q, err := s.GetQuote(ctx, sym)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				result[strings.ToUpper(sym)] = dto.Failed[entity.Quote](err)
				return
			}
			result[q.Symbol] = dto.Ok(*q)
		})
	}
	fanOut(ctx, s.log, "quotes.fanout", s.cfg.Upstream.QuoteTimeout, tasks...)
	return result
}

// simulate returns a random walk around the configured base price, clearly labelled.
func (s *quoteService) simulate(symbol string) *entity.Quote {
	base := s.cfg.Quote.SimulatedBasePrice
	if base <= 0 {
		base = 100
	}
	prev := utils.Round(base*(1+(s.randFloat()-0.5)*0.02), 2)
	price := utils.Round(prev*(1+(s.randFloat()-0.5)*0.04), 2)
	change := utils.Round(price-prev, 2)
	return &entity.Quote{
		Symbol:        symbol,
		Price:         price,
		Change:        change,
		ChangePercent: utils.Round(change/prev*100, 4),
		Volume:        int64(1_000_000 + s.randFloat()*9_000_000),
		High:          utils.Round(math.Max(price, prev)*1.005, 2),
		Low:           utils.Round(math.Min(price, prev)*0.995, 2),
		Open:          prev,
		PreviousClose: prev,
		Timestamp:     time.Now().UTC(),
		Source:        common.ProviderSimulated,
		Simulated:     true,
	}
}
