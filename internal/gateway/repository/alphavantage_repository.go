package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"golang-trading-assistant/internal/entity"
	"golang-trading-assistant/internal/gateway/config"
	"golang-trading-assistant/internal/gateway/dto"
	"golang-trading-assistant/pkg/cache"
	"golang-trading-assistant/pkg/common"
	"golang-trading-assistant/pkg/logger"
	"golang-trading-assistant/pkg/metrics"
	"golang-trading-assistant/pkg/utils"
)

// EconomicSeries is an Alpha Vantage economic indicator function.
type EconomicSeries string

const (
	SeriesRealGDP          EconomicSeries = "REAL_GDP"
	SeriesFederalFundsRate EconomicSeries = "FEDERAL_FUNDS_RATE"
	SeriesCPI              EconomicSeries = "CPI"
)

func (s EconomicSeries) interval() string {
	if s == SeriesRealGDP {
		return "quarterly"
	}
	return "monthly"
}

// NewsQuery selects news sentiment articles.
type NewsQuery struct {
	// Symbol, when set, scores each article by that ticker's sentiment.
	Symbol  string
	Tickers []string
	Topics  string
	Limit   int
}

// AlphaVantageRepository wraps the Alpha Vantage query API.
type AlphaVantageRepository interface {
	QuoteRepository
	GetRSI(ctx context.Context, symbol string, period int) (float64, error)
	GetMACD(ctx context.Context, symbol string) (*entity.MACD, error)
	GetSMA(ctx context.Context, symbol string, period int) (float64, error)
	GetNewsSentiment(ctx context.Context, q NewsQuery) ([]entity.NewsArticle, error)
	GetEconomicIndicator(ctx context.Context, series EconomicSeries) (*entity.EconomicIndicator, error)
}

type alphaVantageRepository struct {
	cfg      *config.Config
	cache    cache.Cache
	quote    *upstream
	tech     *upstream
	news     *upstream
	economic *upstream
}

// NewAlphaVantageRepository creates an Alpha Vantage client. All calls share one request limiter.
func NewAlphaVantageRepository(cfg *config.Config, log *logger.Logger, rec *metrics.Recorder, c cache.Cache) AlphaVantageRepository {
	base := newUpstream(common.ProviderAlphaVantage, cfg.Upstream.QuoteTimeout, cfg.AlphaVantage.MaxRequestPerMinute, log, rec)
	withTimeout := func(d time.Duration) *upstream {
		u := *base
		u.client = &http.Client{Timeout: d}
		return &u
	}
	return &alphaVantageRepository{
		cfg:      cfg,
		cache:    c,
		quote:    base,
		tech:     withTimeout(cfg.Upstream.TechnicalTimeout),
		news:     withTimeout(cfg.Upstream.NewsTimeout),
		economic: withTimeout(cfg.Upstream.EconomicTimeout),
	}
}

func (r *alphaVantageRepository) Name() string {
	return common.ProviderAlphaVantage
}

func (r *alphaVantageRepository) query(params url.Values) string {
	params.Set("apikey", r.cfg.AlphaVantage.APIKey)
	return r.cfg.AlphaVantage.BaseURL + "?" + params.Encode()
}

func (r *alphaVantageRepository) checkKey() error {
	if r.cfg.AlphaVantage.APIKey == "" {
		return missingKey("ALPHA_VANTAGE")
	}
	return nil
}

// GetQuote calls GLOBAL_QUOTE.
func (r *alphaVantageRepository) GetQuote(ctx context.Context, symbol string) (*entity.Quote, error) {
	if err := r.checkKey(); err != nil {
		return nil, err
	}

	key := common.CacheKeyAVQuote + symbol
	q, err := cache.Remember(ctx, r.cache, key, r.cfg.Upstream.CacheTTL, func(ctx context.Context) (entity.Quote, error) {
		var raw dto.AlphaVantageGlobalQuoteResponse
		params := url.Values{"function": {"GLOBAL_QUOTE"}, "symbol": {symbol}}
		if err := r.quote.getJSON(ctx, r.query(params), nil, &raw); err != nil {
			return entity.Quote{}, err
		}
		return NormalizeAlphaVantageQuote(raw)
	})
	if err != nil {
		return nil, fmt.Errorf("alphavantage quote %s: %w", symbol, err)
	}
	return &q, nil
}

// GetRSI returns the latest daily RSI.
func (r *alphaVantageRepository) GetRSI(ctx context.Context, symbol string, period int) (float64, error) {
	values, err := r.latestIndicator(ctx, "RSI", symbol, url.Values{"time_period": {strconv.Itoa(period)}})
	if err != nil {
		return 0, err
	}
	return requireValue(values, "RSI")
}

// GetMACD returns the latest daily MACD(12,26,9).
func (r *alphaVantageRepository) GetMACD(ctx context.Context, symbol string) (*entity.MACD, error) {
	values, err := r.latestIndicator(ctx, "MACD", symbol, url.Values{
		"fastperiod":   {"12"},
		"slowperiod":   {"26"},
		"signalperiod": {"9"},
	})
	if err != nil {
		return nil, err
	}
	m, err := requireValue(values, "MACD")
	if err != nil {
		return nil, err
	}
	s, err := requireValue(values, "MACD_Signal")
	if err != nil {
		return nil, err
	}
	h := m - s
	if v, ok := values["MACD_Hist"]; ok && v.Valid {
		h = v.Value
	}
	return &entity.MACD{MACD: m, Signal: s, Histogram: h}, nil
}

// GetSMA returns the latest daily SMA for the period.
func (r *alphaVantageRepository) GetSMA(ctx context.Context, symbol string, period int) (float64, error) {
	values, err := r.latestIndicator(ctx, "SMA", symbol, url.Values{"time_period": {strconv.Itoa(period)}})
	if err != nil {
		return 0, err
	}
	return requireValue(values, "SMA")
}

func (r *alphaVantageRepository) latestIndicator(ctx context.Context, function, symbol string, extra url.Values) (map[string]dto.FlexFloat, error) {
	if err := r.checkKey(); err != nil {
		return nil, err
	}

	params := url.Values{
		"function":    {function},
		"symbol":      {symbol},
		"interval":    {"daily"},
		"series_type": {"close"},
	}
	for k, v := range extra {
		params[k] = v
	}

	key := common.CacheKeyIndicator + function + ":" + symbol + ":" + extra.Encode()
	values, err := cache.Remember(ctx, r.cache, key, r.cfg.Upstream.CacheTTL, func(ctx context.Context) (map[string]dto.FlexFloat, error) {
		raw, err := r.tech.getRaw(ctx, r.query(params), nil)
		if err != nil {
			return nil, err
		}
		return ParseLatestIndicator(raw, function)
	})
	if err != nil {
		return nil, fmt.Errorf("alphavantage %s %s: %w", function, symbol, err)
	}
	return values, nil
}

// ParseLatestIndicator extracts the most recent entry of "Technical Analysis: <function>".
func ParseLatestIndicator(raw []byte, function string) (map[string]dto.FlexFloat, error) {
	var body map[string]json.RawMessage
	if err := json.Unmarshal(raw, &body); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}

	var st dto.AlphaVantageStatus
	_ = json.Unmarshal(raw, &st)
	if err := alphaVantageStatusError(st, true); err != nil {
		return nil, err
	}

	series, ok := body["Technical Analysis: "+function]
	if !ok {
		return nil, fmt.Errorf("%w: missing %s series", ErrInvalidResponse, function)
	}
	var points map[string]map[string]dto.FlexFloat
	if err := json.Unmarshal(series, &points); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	if len(points) == 0 {
		return nil, fmt.Errorf("%w: no %s data", ErrSymbolNotFound, function)
	}

	dates := make([]string, 0, len(points))
	for d := range points {
		dates = append(dates, d)
	}
	sort.Strings(dates)
	return points[dates[len(dates)-1]], nil
}

func requireValue(values map[string]dto.FlexFloat, field string) (float64, error) {
	v, ok := values[field]
	if !ok || !v.Valid || !utils.IsFinite(v.Value) {
		return 0, fmt.Errorf("%w: %s is not a number", ErrInvalidResponse, field)
	}
	return v.Value, nil
}

// GetNewsSentiment calls NEWS_SENTIMENT and scores each article.
func (r *alphaVantageRepository) GetNewsSentiment(ctx context.Context, q NewsQuery) ([]entity.NewsArticle, error) {
	if err := r.checkKey(); err != nil {
		return nil, err
	}

	params := url.Values{"function": {"NEWS_SENTIMENT"}, "sort": {"LATEST"}}
	tickers := q.Tickers
	if q.Symbol != "" && len(tickers) == 0 {
		tickers = []string{q.Symbol}
	}
	if len(tickers) > 0 {
		params.Set("tickers", strings.Join(tickers, ","))
	}
	if q.Topics != "" {
		params.Set("topics", q.Topics)
	}
	if q.Limit > 0 {
		params.Set("limit", strconv.Itoa(q.Limit))
	}

	key := common.CacheKeyNews + params.Encode()
	resp, err := cache.Remember(ctx, r.cache, key, r.cfg.Upstream.CacheTTL, func(ctx context.Context) (dto.AlphaVantageNewsResponse, error) {
		var raw dto.AlphaVantageNewsResponse
		if err := r.news.getJSON(ctx, r.query(params), nil, &raw); err != nil {
			return raw, err
		}
		return raw, alphaVantageStatusError(raw.AlphaVantageStatus, false)
	})
	if err != nil {
		return nil, fmt.Errorf("alphavantage news: %w", err)
	}

	return NormalizeNewsFeed(resp.Feed, q.Symbol), nil
}

// NormalizeNewsFeed maps the feed to articles. With a symbol, the score is that
// ticker's sentiment and articles without it carry a nil score.
func NormalizeNewsFeed(feed []dto.AlphaVantageNewsItem, symbol string) []entity.NewsArticle {
	symbol = strings.ToUpper(symbol)
	articles := make([]entity.NewsArticle, 0, len(feed))
	for _, item := range feed {
		a := entity.NewsArticle{
			Title:          item.Title,
			URL:            item.URL,
			Source:         item.Source,
			Summary:        item.Summary,
			SentimentLabel: item.OverallSentimentLabel,
		}
		if t, err := time.Parse("20060102T150405", item.TimePublished); err == nil {
			a.PublishedAt = t.UTC()
		}
		for _, ts := range item.TickerSentiment {
			a.Tickers = append(a.Tickers, ts.Ticker)
			if symbol != "" && strings.EqualFold(ts.Ticker, symbol) {
				a.SentimentScore = ts.TickerSentimentScore.Ptr()
				a.SentimentLabel = ts.TickerSentimentLabel
			}
		}
		if symbol == "" {
			a.SentimentScore = item.OverallSentimentScore.Ptr()
		}
		if a.SentimentScore != nil && !utils.IsFinite(*a.SentimentScore) {
			a.SentimentScore = nil
		}
		articles = append(articles, a)
	}
	return articles
}

// GetEconomicIndicator returns the latest point of a macro series.
func (r *alphaVantageRepository) GetEconomicIndicator(ctx context.Context, series EconomicSeries) (*entity.EconomicIndicator, error) {
	if err := r.checkKey(); err != nil {
		return nil, err
	}

	params := url.Values{"function": {string(series)}, "interval": {series.interval()}}
	key := common.CacheKeyEconomic + string(series)
	ind, err := cache.Remember(ctx, r.cache, key, r.cfg.Upstream.CacheTTL, func(ctx context.Context) (entity.EconomicIndicator, error) {
		var raw dto.AlphaVantageEconomicResponse
		if err := r.economic.getJSON(ctx, r.query(params), nil, &raw); err != nil {
			return entity.EconomicIndicator{}, err
		}
		if err := alphaVantageStatusError(raw.AlphaVantageStatus, false); err != nil {
			return entity.EconomicIndicator{}, err
		}
		return LatestEconomicPoint(raw)
	})
	if err != nil {
		return nil, fmt.Errorf("alphavantage %s: %w", series, err)
	}
	return &ind, nil
}

// LatestEconomicPoint returns the newest point with a numeric value.
func LatestEconomicPoint(raw dto.AlphaVantageEconomicResponse) (entity.EconomicIndicator, error) {
	var best *dto.AlphaVantageEconomicPoint
	for i := range raw.Data {
		p := &raw.Data[i]
		if !p.Value.Valid {
			continue
		}
		if best == nil || p.Date > best.Date {
			best = p
		}
	}
	if best == nil {
		return entity.EconomicIndicator{}, fmt.Errorf("%w: %s has no data", ErrInvalidResponse, raw.Name)
	}
	return entity.EconomicIndicator{
		Name:     raw.Name,
		Value:    best.Value.Value,
		Date:     best.Date,
		Unit:     raw.Unit,
		Interval: raw.Interval,
	}, nil
}
