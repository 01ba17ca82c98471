package entity

import "time"

type SentimentLabel string

const (
	SentimentBullish SentimentLabel = "Bullish"
	SentimentBearish SentimentLabel = "Bearish"
	SentimentNeutral SentimentLabel = "Neutral"
	SentimentUnknown SentimentLabel = "Unknown"
)

// SentimentSnapshot is the aggregate of per-article sentiment scores.
type SentimentSnapshot struct {
	Score        float64        `json:"score"`
	Label        SentimentLabel `json:"label"`
	ArticleCount int            `json:"articleCount"`
	Confidence   int            `json:"confidence"`
}

// NewsArticle is a single scored article from the news sentiment provider.
type NewsArticle struct {
	Title          string    `json:"title"`
	URL            string    `json:"url"`
	Source         string    `json:"source"`
	Summary        string    `json:"summary"`
	PublishedAt    time.Time `json:"publishedAt"`
	SentimentScore *float64  `json:"sentimentScore"`
	SentimentLabel string    `json:"sentimentLabel"`
	Tickers        []string  `json:"tickers"`
}

// Headline is an unscored headline from an RSS feed.
type Headline struct {
	Title       string     `json:"title"`
	Link        string     `json:"link"`
	Source      string     `json:"source"`
	PublishedAt *time.Time `json:"publishedAt"`
}

// Article is readable text extracted from a news page.
type Article struct {
	URL       string `json:"url"`
	Title     string `json:"title"`
	Text      string `json:"text"`
	Length    int    `json:"length"`
	Truncated bool   `json:"truncated"`
}
