package service

import (
	"context"
	"errors"

	"golang-trading-assistant/internal/entity"
	"golang-trading-assistant/internal/gateway/config"
	"golang-trading-assistant/internal/gateway/dto"
	"golang-trading-assistant/internal/gateway/repository"
	"golang-trading-assistant/internal/signal"
	"golang-trading-assistant/pkg/logger"
)

// NewsQuery selects articles for /api/news.
type NewsQuery struct {
	Symbol  string
	Tickers []string
	Topics  string
	Limit   int
}

// NewsService defines the interface for news, sentiment and article text.
type NewsService interface {
	News(ctx context.Context, q NewsQuery) (*dto.NewsResponse, error)
	Sentiment(ctx context.Context, q NewsQuery) (*entity.SentimentSnapshot, error)
	Headlines(ctx context.Context, symbols []string, limit int) ([]entity.Headline, error)
	Article(ctx context.Context, rawURL string) (*entity.Article, error)
}

type newsService struct {
	cfg          *config.Config
	log          *logger.Logger
	alphaVantage repository.AlphaVantageRepository
	rss          repository.RSSRepository
	articles     repository.ArticleRepository
}

// NewNewsService creates a new NewsService.
func NewNewsService(cfg *config.Config, log *logger.Logger, alphaVantage repository.AlphaVantageRepository, rss repository.RSSRepository, articles repository.ArticleRepository) NewsService {
	return &newsService{
		cfg:          cfg,
		log:          log,
		alphaVantage: alphaVantage,
		rss:          rss,
		articles:     articles,
	}
}

func (s *newsService) normalize(q NewsQuery) (NewsQuery, error) {
	if q.Symbol != "" {
		sym, err := repository.NormalizeSymbol(q.Symbol)
		if err != nil {
			return q, err
		}
		q.Symbol = sym
	}
	tickers := make([]string, 0, len(q.Tickers))
	for _, t := range q.Tickers {
		if t == "" {
			continue
		}
		sym, err := repository.NormalizeSymbol(t)
		if err != nil {
			return q, err
		}
		tickers = append(tickers, sym)
	}
	q.Tickers = tickers
	if q.Limit <= 0 {
		q.Limit = s.cfg.News.Limit
	}
	return q, nil
}

// News returns scored articles, their aggregate sentiment and RSS headlines. A
// failing sentiment source degrades to an error field while headlines are
// available; a missing key is always returned as an error.
func (s *newsService) News(ctx context.Context, q NewsQuery) (*dto.NewsResponse, error) {
	q, err := s.normalize(q)
	if err != nil {
		return nil, err
	}

	var (
		articles    []entity.NewsArticle
		articlesErr error
		headlines   []entity.Headline
		headErr     error
	)
	headlineSymbols := q.Tickers
	if q.Symbol != "" {
		headlineSymbols = []string{q.Symbol}
	}
	fanOut(ctx, s.log, "news.fanout", s.cfg.Upstream.NewsTimeout,
		func(ctx context.Context) {
			articles, articlesErr = s.alphaVantage.GetNewsSentiment(ctx, repository.NewsQuery{
				Symbol: q.Symbol, Tickers: q.Tickers, Topics: q.Topics, Limit: q.Limit,
			})
		},
		func(ctx context.Context) {
			headlines, headErr = s.rss.GetHeadlines(ctx, headlineSymbols, s.cfg.News.HeadlineLimit)
		},
	)

	resp := &dto.NewsResponse{
		Symbol:    q.Symbol,
		Articles:  []entity.NewsArticle{},
		Headlines: dto.Result(headlines, headErr),
	}
	if headErr != nil {
		s.log.WarnContext(ctx, "Headlines unavailable", logger.ErrorField(headErr))
	}

	if articlesErr != nil {
		if errors.Is(articlesErr, repository.ErrMissingAPIKey) || headErr != nil {
			return nil, articlesErr
		}
		s.log.WarnContext(ctx, "News sentiment unavailable", logger.ErrorField(articlesErr))
		resp.Error = articlesErr.Error()
		resp.Sentiment = signal.AggregateSentiment(nil, s.cfg.Signal)
		return resp, nil
	}

	if q.Limit > 0 && len(articles) > q.Limit {
		articles = articles[:q.Limit]
	}
	resp.Articles = articles
	resp.Sentiment = signal.AggregateSentiment(Scores(articles), s.cfg.Signal)
	return resp, nil
}

// Sentiment returns only the aggregate sentiment.
func (s *newsService) Sentiment(ctx context.Context, q NewsQuery) (*entity.SentimentSnapshot, error) {
	q, err := s.normalize(q)
	if err != nil {
		return nil, err
	}

	ctx, cancel := withTimeout(ctx, s.cfg.Upstream.NewsTimeout)
	defer cancel()

	articles, err := s.alphaVantage.GetNewsSentiment(ctx, repository.NewsQuery{
		Symbol: q.Symbol, Tickers: q.Tickers, Topics: q.Topics, Limit: q.Limit,
	})
	if err != nil {
		return nil, err
	}
	snap := signal.AggregateSentiment(Scores(articles), s.cfg.Signal)
	return &snap, nil
}

// Headlines returns RSS headlines for symbols.
func (s *newsService) Headlines(ctx context.Context, symbols []string, limit int) ([]entity.Headline, error) {
	ctx, cancel := withTimeout(ctx, s.cfg.Upstream.NewsTimeout)
	defer cancel()
	if limit <= 0 {
		limit = s.cfg.News.HeadlineLimit
	}
	return s.rss.GetHeadlines(ctx, symbols, limit)
}

// Article extracts readable text from a news page.
func (s *newsService) Article(ctx context.Context, rawURL string) (*entity.Article, error) {
	return s.articles.Extract(ctx, rawURL, s.cfg.News.ArticleMaxChars)
}

// Scores collects the present per-article sentiment scores.
func Scores(articles []entity.NewsArticle) []float64 {
	scores := make([]float64, 0, len(articles))
	for _, a := range articles {
		if a.SentimentScore != nil {
			scores = append(scores, *a.SentimentScore)
		}
	}
	return scores
}
