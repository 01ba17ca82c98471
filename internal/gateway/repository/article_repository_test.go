package repository

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const articlePage = `<html><head><title>Stocks rally on earnings</title></head>
<body>
<div id="nav"><a href="/">Home</a> <a href="/markets">Markets</a></div>
<div id="article">
<p>Stocks rallied on Friday as a string of strong earnings reports lifted the major indexes to record highs, with technology shares leading the advance.</p>
<p>Investors also weighed fresh inflation data that came in slightly below expectations, adding to hopes that the central bank could begin cutting interest rates later this year.</p>
<p>Analysts said the breadth of the rally was encouraging, with small caps and cyclical sectors joining the gains after several weeks of lagging the broader market.</p>
</div>
</body></html>`

func TestExtractReadableText(t *testing.T) {
	title, text, err := ExtractReadableText([]byte(articlePage))
	require.NoError(t, err)
	assert.Equal(t, "Stocks rally on earnings", title)
	assert.Contains(t, text, "strong earnings reports")
	assert.NotContains(t, text, "\n")
}

func TestArticleExtract(t *testing.T) {
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.NotEmpty(t, r.Header.Get("User-Agent"))
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(articlePage))
	})
	repo := NewArticleRepository(testConfig(srv.URL), nil, nil)

	a, err := repo.Extract(context.Background(), srv.URL+"/story", 40)
	require.NoError(t, err)
	assert.True(t, a.Truncated)
	assert.Equal(t, 40, a.Length)
	assert.Equal(t, 40, len([]rune(a.Text)))
	assert.True(t, strings.HasPrefix(a.URL, srv.URL))
}

func TestArticleExtractRejectsScheme(t *testing.T) {
	repo := NewArticleRepository(testConfig(""), nil, nil)
	for _, u := range []string{"file:///etc/passwd", "ftp://example.com/a", "/relative", "javascript:alert(1)"} {
		_, err := repo.Extract(context.Background(), u, 100)
		assert.ErrorIs(t, err, ErrInvalidInput, u)
	}
}
