package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"golang-trading-assistant/internal/entity"
	"golang-trading-assistant/internal/gateway/config"
	"golang-trading-assistant/internal/gateway/dto"
	"golang-trading-assistant/internal/gateway/repository"
	"golang-trading-assistant/internal/signal"
	"golang-trading-assistant/pkg/logger"
)

// MarketService defines the interface for the market-wide overview.
type MarketService interface {
	Overview(ctx context.Context) *dto.MarketOverviewResponse
	Session() entity.SessionInfo
	Brief(ctx context.Context) entity.MarketBrief
}

type marketService struct {
	cfg          *config.Config
	log          *logger.Logger
	quotes       QuoteService
	news         NewsService
	alphaVantage repository.AlphaVantageRepository
	now          func() time.Time
}

// NewMarketService creates a new MarketService.
func NewMarketService(cfg *config.Config, log *logger.Logger, quotes QuoteService, news NewsService, alphaVantage repository.AlphaVantageRepository) MarketService {
	return &marketService{
		cfg:          cfg,
		log:          log,
		quotes:       quotes,
		news:         news,
		alphaVantage: alphaVantage,
		now:          time.Now,
	}
}

// Session resolves the current market session.
func (s *marketService) Session() entity.SessionInfo {
	return signal.CurrentSession(s.now())
}

// Overview gathers index quotes, the volatility proxy, macro series and market
// sentiment concurrently. Every source fails on its own; the overview never does.
func (s *marketService) Overview(ctx context.Context) *dto.MarketOverviewResponse {
	var (
		mu   sync.Mutex
		resp = &dto.MarketOverviewResponse{
			Indices: make(map[string]dto.SourceResult[entity.Quote], len(s.cfg.Market.IndexSymbols)),
		}
		tasks []func(context.Context)
	)

	for _, sym := range s.cfg.Market.IndexSymbols {
		tasks = append(tasks, func(ctx context.Context) {
			q, err := s.quotes.GetQuote(ctx, sym)
			mu.Lock()
			resp.Indices[sym] = derefResult(q, err)
			mu.Unlock()
		})
	}

	if s.cfg.Market.VolatilitySymbol != "" {
		tasks = append(tasks, func(ctx context.Context) {
			q, err := s.quotes.GetQuote(ctx, s.cfg.Market.VolatilitySymbol)
			mu.Lock()
			resp.Volatility = derefResult(q, err)
			mu.Unlock()
		})
	}

	economic := []struct {
		series repository.EconomicSeries
		dest   *dto.SourceResult[entity.EconomicIndicator]
	}{
		{repository.SeriesRealGDP, &resp.Economic.RealGDP},
		{repository.SeriesFederalFundsRate, &resp.Economic.FederalFundsRate},
		{repository.SeriesCPI, &resp.Economic.CPI},
	}
	for _, e := range economic {
		tasks = append(tasks, func(ctx context.Context) {
			ctx, cancel := withTimeout(ctx, s.cfg.Upstream.EconomicTimeout)
			defer cancel()
			ind, err := s.alphaVantage.GetEconomicIndicator(ctx, e.series)
			mu.Lock()
			*e.dest = derefResult(ind, err)
			mu.Unlock()
		})
	}

	tasks = append(tasks, func(ctx context.Context) {
		snap, err := s.news.Sentiment(ctx, NewsQuery{Topics: s.cfg.Market.NewsTopics, Limit: s.cfg.News.Limit})
		mu.Lock()
		resp.Sentiment = derefResult(snap, err)
		mu.Unlock()
	})

	fanOut(ctx, s.log, "market.overview", 0, tasks...)

	for name, failed := range overviewFailures(resp) {
		s.log.WarnContext(ctx, "Market overview source unavailable", logger.StringField("source", name), logger.StringField("error", failed))
	}

	resp.Session = s.Session()
	resp.GeneratedAt = s.now().UTC()
	return resp
}

// Brief condenses the overview for chat delivery.
func (s *marketService) Brief(ctx context.Context) entity.MarketBrief {
	o := s.Overview(ctx)
	b := entity.MarketBrief{Session: o.Session}

	for _, sym := range s.cfg.Market.IndexSymbols {
		if r, ok := o.Indices[sym]; ok && r.Data != nil {
			b.Indices = append(b.Indices, *r.Data)
		}
	}
	b.Volatility = o.Volatility.Data
	for _, e := range []dto.SourceResult[entity.EconomicIndicator]{o.Economic.RealGDP, o.Economic.FederalFundsRate, o.Economic.CPI} {
		if e.Data != nil {
			b.Economic = append(b.Economic, *e.Data)
		}
	}
	b.Sentiment = o.Sentiment.Data

	for name := range overviewFailures(o) {
		b.Unavailable = append(b.Unavailable, name)
	}
	sort.Strings(b.Unavailable)
	return b
}

func overviewFailures(o *dto.MarketOverviewResponse) map[string]string {
	failed := map[string]string{}
	for sym, r := range o.Indices {
		if r.Failed() {
			failed[sym] = r.Err.Error
		}
	}
	if o.Volatility.Failed() {
		failed["volatility"] = o.Volatility.Err.Error
	}
	if o.Economic.RealGDP.Failed() {
		failed["realGdp"] = o.Economic.RealGDP.Err.Error
	}
	if o.Economic.FederalFundsRate.Failed() {
		failed["federalFundsRate"] = o.Economic.FederalFundsRate.Err.Error
	}
	if o.Economic.CPI.Failed() {
		failed["cpi"] = o.Economic.CPI.Err.Error
	}
	if o.Sentiment.Failed() {
		failed["sentiment"] = o.Sentiment.Err.Error
	}
	return failed
}
