package repository

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strings"

	"github.com/mmcdole/gofeed"

	"golang-trading-assistant/internal/entity"
	"golang-trading-assistant/internal/gateway/config"
	"golang-trading-assistant/pkg/cache"
	"golang-trading-assistant/pkg/common"
	"golang-trading-assistant/pkg/logger"
	"golang-trading-assistant/pkg/metrics"
)

// RSSRepository reads keyless headline feeds.
type RSSRepository interface {
	GetHeadlines(ctx context.Context, symbols []string, limit int) ([]entity.Headline, error)
}

type yahooRSSRepository struct {
	*upstream
	cfg   *config.Config
	cache cache.Cache
}

// NewYahooRSSRepository creates a Yahoo Finance RSS headline reader.
func NewYahooRSSRepository(cfg *config.Config, log *logger.Logger, rec *metrics.Recorder, c cache.Cache) RSSRepository {
	return &yahooRSSRepository{
		upstream: newUpstream(common.ProviderYahooRSS, cfg.Upstream.NewsTimeout, cfg.YahooRSS.MaxRequestPerMinute, log, rec),
		cfg:      cfg,
		cache:    c,
	}
}

// GetHeadlines returns the newest headlines for symbols, newest first.
func (r *yahooRSSRepository) GetHeadlines(ctx context.Context, symbols []string, limit int) ([]entity.Headline, error) {
	if len(symbols) == 0 {
		symbols = []string{"SPY"}
	}
	params := url.Values{"s": {strings.Join(symbols, ",")}, "region": {"US"}, "lang": {"en-US"}}
	feedURL := r.cfg.YahooRSS.BaseURL + "?" + params.Encode()

	headlines, err := cache.Remember(ctx, r.cache, common.CacheKeyHeadlines+params.Get("s"), r.cfg.Upstream.CacheTTL, func(ctx context.Context) ([]entity.Headline, error) {
		raw, err := r.getRaw(ctx, feedURL, http.Header{"Accept": {"application/rss+xml, application/xml;q=0.9, */*;q=0.8"}})
		if err != nil {
			return nil, err
		}
		return ParseHeadlines(raw)
	})
	if err != nil {
		return nil, fmt.Errorf("yahoo rss: %w", err)
	}

	if limit > 0 && len(headlines) > limit {
		headlines = headlines[:limit]
	}
	return headlines, nil
}

// ParseHeadlines parses an RSS or Atom document into headlines sorted newest first.
func ParseHeadlines(raw []byte) ([]entity.Headline, error) {
	fp := gofeed.NewParser()
	feed, err := fp.Parse(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to parse feed: %v", ErrInvalidResponse, err)
	}

	sort.SliceStable(feed.Items, func(i, j int) bool {
		if feed.Items[i].PublishedParsed == nil || feed.Items[j].PublishedParsed == nil {
			return feed.Items[j].PublishedParsed == nil && feed.Items[i].PublishedParsed != nil
		}
		return feed.Items[i].PublishedParsed.After(*feed.Items[j].PublishedParsed)
	})

	headlines := make([]entity.Headline, 0, len(feed.Items))
	for _, item := range feed.Items {
		h := entity.Headline{
			Title: strings.TrimSpace(item.Title),
			Link:  item.Link,
		}
		if u, err := url.Parse(item.Link); err == nil {
			h.Source = u.Hostname()
		}
		if item.PublishedParsed != nil {
			t := item.PublishedParsed.UTC()
			h.PublishedAt = &t
		}
		headlines = append(headlines, h)
	}
	return headlines, nil
}
