package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang-trading-assistant/internal/entity"
	"golang-trading-assistant/internal/gateway/config"
	"golang-trading-assistant/internal/gateway/dto"
	"golang-trading-assistant/internal/gateway/repository"
	"golang-trading-assistant/internal/signal"
	"golang-trading-assistant/pkg/logger"
	"golang-trading-assistant/pkg/utils"
)

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Signal = signal.DefaultThresholds()
	cfg.Upstream = config.Upstream{
		QuoteTimeout:     time.Second,
		TechnicalTimeout: time.Second,
		NewsTimeout:      time.Second,
		LLMTimeout:       time.Second,
		EconomicTimeout:  time.Second,
	}
	cfg.Quote = config.Quote{Provider: "finnhub", SimulatedBasePrice: 100}
	cfg.News = config.News{Limit: 50, HeadlineLimit: 10, ArticleMaxChars: 1000}
	cfg.Market = config.Market{IndexSymbols: []string{"SPY", "QQQ"}, VolatilitySymbol: "VIXY", NewsTopics: "financial_markets"}
	cfg.Plays = config.Plays{Watchlist: []string{"AAPL", "MSFT"}, Concurrency: 2}
	cfg.Alerts = config.Alerts{MovePercent: 3}
	cfg.AI = config.AI{Provider: "openai", MaxTokens: 256, Temperature: 0.2}
	cfg.AlphaVantage.APIKey = "av"
	return cfg
}

var nopLog = logger.NewNop()

type fakeQuoteRepo struct {
	name   string
	quotes map[string]entity.Quote
	err    error
	mu     sync.Mutex
	calls  int
}

func (f *fakeQuoteRepo) Name() string { return f.name }

func (f *fakeQuoteRepo) GetQuote(ctx context.Context, symbol string) (*entity.Quote, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	q, ok := f.quotes[symbol]
	if !ok {
		return nil, fmt.Errorf("%w: %s", repository.ErrSymbolNotFound, symbol)
	}
	return &q, nil
}

type fakeAlphaVantage struct {
	fakeQuoteRepo
	rsi      map[string]float64
	macd     map[string]entity.MACD
	sma      map[string]float64
	techErr  error
	articles []entity.NewsArticle
	newsErr  error
	econ     map[repository.EconomicSeries]entity.EconomicIndicator
	econErr  error
	lastNews repository.NewsQuery
	delay    time.Duration
}

func (f *fakeAlphaVantage) wait(ctx context.Context) error {
	if f.delay == 0 {
		return nil
	}
	select {
	case <-time.After(f.delay):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (f *fakeAlphaVantage) GetRSI(ctx context.Context, symbol string, period int) (float64, error) {
	if err := f.wait(ctx); err != nil {
		return 0, err
	}
	if f.techErr != nil {
		return 0, f.techErr
	}
	v, ok := f.rsi[symbol]
	if !ok {
		return 0, repository.ErrInvalidResponse
	}
	return v, nil
}

func (f *fakeAlphaVantage) GetMACD(ctx context.Context, symbol string) (*entity.MACD, error) {
	if f.techErr != nil {
		return nil, f.techErr
	}
	m, ok := f.macd[symbol]
	if !ok {
		return nil, repository.ErrInvalidResponse
	}
	return &m, nil
}

func (f *fakeAlphaVantage) GetSMA(ctx context.Context, symbol string, period int) (float64, error) {
	if f.techErr != nil {
		return 0, f.techErr
	}
	v, ok := f.sma[fmt.Sprintf("%s:%d", symbol, period)]
	if !ok {
		return 0, repository.ErrInvalidResponse
	}
	return v, nil
}

func (f *fakeAlphaVantage) GetNewsSentiment(ctx context.Context, q repository.NewsQuery) ([]entity.NewsArticle, error) {
	f.mu.Lock()
	f.lastNews = q
	f.mu.Unlock()
	if f.newsErr != nil {
		return nil, f.newsErr
	}
	return f.articles, nil
}

func (f *fakeAlphaVantage) GetEconomicIndicator(ctx context.Context, series repository.EconomicSeries) (*entity.EconomicIndicator, error) {
	if f.econErr != nil {
		return nil, f.econErr
	}
	e, ok := f.econ[series]
	if !ok {
		return nil, repository.ErrInvalidResponse
	}
	return &e, nil
}

type fakeRSS struct {
	headlines []entity.Headline
	err       error
}

func (f *fakeRSS) GetHeadlines(ctx context.Context, symbols []string, limit int) ([]entity.Headline, error) {
	if f.err != nil {
		return nil, f.err
	}
	if limit > 0 && len(f.headlines) > limit {
		return f.headlines[:limit], nil
	}
	return f.headlines, nil
}

type fakeArticles struct{}

func (fakeArticles) Extract(ctx context.Context, rawURL string, maxChars int) (*entity.Article, error) {
	return &entity.Article{URL: rawURL, Text: "body", Length: 4}, nil
}

type fakeChat struct {
	name  string
	reply string
	err   error
	last  dto.ChatRequest
}

func (f *fakeChat) Name() string  { return f.name }
func (f *fakeChat) Model() string { return f.name + "-model" }

func (f *fakeChat) Chat(ctx context.Context, req dto.ChatRequest) (*dto.ChatResponse, error) {
	f.last = req
	if f.err != nil {
		return nil, f.err
	}
	return &dto.ChatResponse{Provider: f.name, Model: f.Model(), Reply: f.reply}, nil
}

type fakeNotifier struct {
	sent []string
	err  error
}

func (f *fakeNotifier) SendMessage(text string) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, text)
	return nil
}

func quote(symbol string, price, prev float64) entity.Quote {
	change := price - prev
	return entity.Quote{
		Symbol:        symbol,
		Price:         price,
		Change:        change,
		ChangePercent: utils.Round(change/prev*100, 4),
		PreviousClose: prev,
		Source:        "finnhub",
	}
}

// bullishAV returns indicators where AAPL votes bullish on every indicator and MSFT bearish.
func bullishAV() *fakeAlphaVantage {
	return &fakeAlphaVantage{
		fakeQuoteRepo: fakeQuoteRepo{name: "alphavantage", quotes: map[string]entity.Quote{}},
		rsi:           map[string]float64{"AAPL": 28, "MSFT": 72},
		macd: map[string]entity.MACD{
			"AAPL": {MACD: 1.2, Signal: 0.8, Histogram: 0.4},
			"MSFT": {MACD: -0.5, Signal: 0.1, Histogram: -0.6},
		},
		sma: map[string]float64{
			"AAPL:20": 180, "AAPL:50": 175,
			"MSFT:20": 420, "MSFT:50": 410,
		},
		articles: []entity.NewsArticle{
			{Title: "a", SentimentScore: utils.ToPointer(0.3)},
			{Title: "b", SentimentScore: utils.ToPointer(0.25)},
			{Title: "c", SentimentScore: utils.ToPointer(0.1)},
			{Title: "d"},
		},
		econ: map[repository.EconomicSeries]entity.EconomicIndicator{
			repository.SeriesRealGDP:          {Name: "Real Gross Domestic Product", Value: 22758.7, Date: "2024-01-01"},
			repository.SeriesFederalFundsRate: {Name: "Effective Federal Funds Rate", Value: 5.33, Date: "2024-05-01"},
			repository.SeriesCPI:              {Name: "Consumer Price Index", Value: 313.5, Date: "2024-04-01"},
		},
	}
}

func finnhubWith(quotes ...entity.Quote) *fakeQuoteRepo {
	m := map[string]entity.Quote{}
	for _, q := range quotes {
		m[q.Symbol] = q
	}
	return &fakeQuoteRepo{name: "finnhub", quotes: m}
}

// stallingQuoteRepo blocks every call until release is closed, ignoring ctx.
type stallingQuoteRepo struct {
	release chan struct{}
	mu      sync.Mutex
	symbols map[string]bool
}

func (f *stallingQuoteRepo) Name() string { return "finnhub" }

func (f *stallingQuoteRepo) GetQuote(ctx context.Context, symbol string) (*entity.Quote, error) {
	f.mu.Lock()
	f.symbols[symbol] = true
	f.mu.Unlock()
	<-f.release
	q := quote(symbol, 100, 99)
	return &q, nil
}

func (f *stallingQuoteRepo) seen() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.symbols)
}
