package repository

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"golang-trading-assistant/pkg/cache"
)

const rssBody = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
<channel>
  <title>Yahoo! Finance: AAPL News</title>
  <item>
    <title>Older headline</title>
    <link>https://finance.yahoo.com/news/older.html</link>
    <pubDate>Thu, 09 May 2024 12:00:00 +0000</pubDate>
  </item>
  <item>
    <title> Newer headline </title>
    <link>https://finance.yahoo.com/news/newer.html</link>
    <pubDate>Fri, 10 May 2024 12:00:00 +0000</pubDate>
  </item>
  <item>
    <title>Undated headline</title>
    <link>https://www.reuters.com/undated</link>
  </item>
</channel>
</rss>`

func TestParseHeadlines(t *testing.T) {
	headlines, err := ParseHeadlines([]byte(rssBody))
	require.NoError(t, err)
	require.Len(t, headlines, 3)

	assert.Equal(t, "Newer headline", headlines[0].Title)
	assert.Equal(t, "finance.yahoo.com", headlines[0].Source)
	require.NotNil(t, headlines[0].PublishedAt)
	assert.Equal(t, 10, headlines[0].PublishedAt.Day())
	assert.Equal(t, "Older headline", headlines[1].Title)
	assert.Nil(t, headlines[2].PublishedAt)
}

func TestParseHeadlinesInvalid(t *testing.T) {
	_, err := ParseHeadlines([]byte("definitely not xml"))
	assert.ErrorIs(t, err, ErrInvalidResponse)
}

func TestYahooRSSGetHeadlines(t *testing.T) {
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "AAPL,MSFT", r.URL.Query().Get("s"))
		w.Header().Set("Content-Type", "application/rss+xml")
		_, _ = w.Write([]byte(rssBody))
	})
	repo := NewYahooRSSRepository(testConfig(srv.URL), nil, nil, cache.Nop{})

	headlines, err := repo.GetHeadlines(context.Background(), []string{"AAPL", "MSFT"}, 2)
	require.NoError(t, err)
	assert.Len(t, headlines, 2)
}
