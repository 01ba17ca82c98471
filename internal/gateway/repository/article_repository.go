package repository

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/mauidude/go-readability"

	"golang-trading-assistant/internal/entity"
	"golang-trading-assistant/internal/gateway/config"
	"golang-trading-assistant/pkg/common"
	"golang-trading-assistant/pkg/logger"
	"golang-trading-assistant/pkg/metrics"
	"golang-trading-assistant/pkg/utils"
)

// ArticleRepository downloads a news page and extracts its readable text.
type ArticleRepository interface {
	Extract(ctx context.Context, rawURL string, maxChars int) (*entity.Article, error)
}

type articleRepository struct {
	*upstream
}

// NewArticleRepository creates an article reader.
func NewArticleRepository(cfg *config.Config, log *logger.Logger, rec *metrics.Recorder) ArticleRepository {
	return &articleRepository{
		upstream: newUpstream(common.ProviderArticle, cfg.Upstream.ArticleTimeout, 0, log, rec),
	}
}

var browserHeaders = http.Header{
	"User-Agent":      {"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0 Safari/537.36"},
	"Accept":          {"text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8"},
	"Accept-Language": {"en-US,en;q=0.5"},
}

// Extract fetches rawURL and returns its main text, cut to maxChars runes.
func (r *articleRepository) Extract(ctx context.Context, rawURL string, maxChars int) (*entity.Article, error) {
	u, err := url.Parse(rawURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("%w: only absolute http and https URLs are accepted", ErrInvalidInput)
	}

	body, err := r.getRaw(ctx, u.String(), browserHeaders.Clone())
	if err != nil {
		return nil, fmt.Errorf("failed to fetch article: %w", err)
	}

	title, text, err := ExtractReadableText(body)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to parse article content", logger.StringField("url", RedactURL(rawURL)), logger.ErrorField(err))
		return nil, err
	}

	text, truncated := utils.Truncate(text, maxChars)
	return &entity.Article{
		URL:       u.String(),
		Title:     title,
		Text:      text,
		Length:    len([]rune(text)),
		Truncated: truncated,
	}, nil
}

// ExtractReadableText runs readability over an HTML page and flattens the result to text.
func ExtractReadableText(page []byte) (string, string, error) {
	pageDoc, err := goquery.NewDocumentFromReader(bytes.NewReader(page))
	if err != nil {
		return "", "", fmt.Errorf("%w: failed to parse page: %v", ErrInvalidResponse, err)
	}
	title := strings.TrimSpace(pageDoc.Find("title").First().Text())

	doc, err := readability.NewDocument(string(page))
	if err != nil {
		return "", "", fmt.Errorf("%w: failed to parse article content: %v", ErrInvalidResponse, err)
	}
	contentDoc, err := goquery.NewDocumentFromReader(strings.NewReader(doc.Content()))
	if err != nil {
		return "", "", fmt.Errorf("%w: failed to parse article content: %v", ErrInvalidResponse, err)
	}

	text := strings.Join(strings.Fields(contentDoc.Text()), " ")
	if text == "" {
		return title, "", fmt.Errorf("%w: no readable content", ErrInvalidResponse)
	}
	return title, text, nil
}
