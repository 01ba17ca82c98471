package repository

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"golang-trading-assistant/internal/gateway/dto"
	"golang-trading-assistant/pkg/cache"
)

const globalQuoteBody = `{
  "Global Quote": {
    "01. symbol": "IBM",
    "02. open": "170.00",
    "03. high": "172.50",
    "04. low": "169.10",
    "05. price": "171.20",
    "06. volume": "3500000",
    "07. latest trading day": "2024-05-10",
    "08. previous close": "170.00",
    "09. change": "1.20",
    "10. change percent": "0.7059%"
  }
}`

func alphaVantageServer(t *testing.T, bodies map[string]string) *http.ServeMux {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "av-key", r.URL.Query().Get("apikey"))
		body, ok := bodies[r.URL.Query().Get("function")]
		if !ok {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		_, _ = w.Write([]byte(body))
	})
	return mux
}

func newAlphaVantageRepo(t *testing.T, bodies map[string]string) AlphaVantageRepository {
	srv := newTestServer(t, alphaVantageServer(t, bodies).ServeHTTP)
	return NewAlphaVantageRepository(testConfig(srv.URL), nil, nil, cache.Nop{})
}

func TestAlphaVantageGetQuote(t *testing.T) {
	repo := newAlphaVantageRepo(t, map[string]string{"GLOBAL_QUOTE": globalQuoteBody})

	q, err := repo.GetQuote(context.Background(), "IBM")
	require.NoError(t, err)
	assert.Equal(t, "IBM", q.Symbol)
	assert.Equal(t, 171.2, q.Price)
	assert.Equal(t, 1.2, q.Change)
	assert.Equal(t, 0.7059, q.ChangePercent)
	assert.Equal(t, int64(3500000), q.Volume)
	assert.Equal(t, "alphavantage", q.Source)
}

func TestAlphaVantageInBodyStatus(t *testing.T) {
	tests := []struct {
		name string
		body string
		want error
	}{
		{"note", `{"Note":"Thank you for using Alpha Vantage! Our standard API rate limit is 25 requests per day."}`, ErrRateLimited},
		{"information", `{"Information":"rate limit"}`, ErrRateLimited},
		{"error message", `{"Error Message":"Invalid API call."}`, ErrSymbolNotFound},
		{"empty global quote", `{"Global Quote":{}}`, ErrSymbolNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newAlphaVantageRepo(t, map[string]string{"GLOBAL_QUOTE": tt.body})
			_, err := repo.GetQuote(context.Background(), "IBM")
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestAlphaVantageMissingKey(t *testing.T) {
	cfg := testConfig("http://127.0.0.1:1")
	cfg.AlphaVantage.APIKey = ""
	repo := NewAlphaVantageRepository(cfg, nil, nil, cache.Nop{})

	_, err := repo.GetRSI(context.Background(), "IBM", 14)
	require.ErrorIs(t, err, ErrMissingAPIKey)
	assert.Equal(t, "ALPHA_VANTAGE API key is not configured", err.Error())
}

func TestAlphaVantageIndicators(t *testing.T) {
	repo := newAlphaVantageRepo(t, map[string]string{
		"RSI": `{"Meta Data":{},"Technical Analysis: RSI":{
			"2024-05-09":{"RSI":"55.1"},
			"2024-05-10":{"RSI":"61.25"}}}`,
		"MACD": `{"Technical Analysis: MACD":{
			"2024-05-10":{"MACD":"1.50","MACD_Signal":"1.10","MACD_Hist":"0.40"}}}`,
		"SMA": `{"Technical Analysis: SMA":{"2024-05-10":{"SMA":"168.4"}}}`,
	})
	ctx := context.Background()

	rsi, err := repo.GetRSI(ctx, "IBM", 14)
	require.NoError(t, err)
	assert.Equal(t, 61.25, rsi)

	macd, err := repo.GetMACD(ctx, "IBM")
	require.NoError(t, err)
	assert.Equal(t, 1.5, macd.MACD)
	assert.Equal(t, 1.1, macd.Signal)
	assert.Equal(t, 0.4, macd.Histogram)

	sma, err := repo.GetSMA(ctx, "IBM", 20)
	require.NoError(t, err)
	assert.Equal(t, 168.4, sma)
}

func TestParseLatestIndicator(t *testing.T) {
	_, err := ParseLatestIndicator([]byte(`{"Technical Analysis: RSI":{}}`), "RSI")
	assert.ErrorIs(t, err, ErrSymbolNotFound)

	_, err = ParseLatestIndicator([]byte(`{"Meta Data":{}}`), "RSI")
	assert.ErrorIs(t, err, ErrInvalidResponse)

	_, err = ParseLatestIndicator([]byte(`{"Note":"slow down"}`), "RSI")
	assert.ErrorIs(t, err, ErrRateLimited)

	_, err = ParseLatestIndicator([]byte(`not json`), "RSI")
	assert.ErrorIs(t, err, ErrInvalidResponse)
}

func TestNormalizeNewsFeed(t *testing.T) {
	feed := []dto.AlphaVantageNewsItem{
		{
			Title:                 "Apple beats",
			TimePublished:         "20240510T133000",
			OverallSentimentScore: dto.FlexFloat{Value: 0.1, Valid: true},
			TickerSentiment: []dto.AlphaVantageTickerSentiment{
				{Ticker: "AAPL", TickerSentimentScore: dto.FlexFloat{Value: 0.45, Valid: true}, TickerSentimentLabel: "Bullish"},
				{Ticker: "MSFT", TickerSentimentScore: dto.FlexFloat{Value: -0.2, Valid: true}},
			},
		},
		{
			Title:                 "Market wrap",
			OverallSentimentScore: dto.FlexFloat{Value: -0.05, Valid: true},
		},
	}

	bySymbol := NormalizeNewsFeed(feed, "aapl")
	require.Len(t, bySymbol, 2)
	require.NotNil(t, bySymbol[0].SentimentScore)
	assert.Equal(t, 0.45, *bySymbol[0].SentimentScore)
	assert.Equal(t, "Bullish", bySymbol[0].SentimentLabel)
	assert.Equal(t, []string{"AAPL", "MSFT"}, bySymbol[0].Tickers)
	assert.Equal(t, 2024, bySymbol[0].PublishedAt.Year())
	assert.Nil(t, bySymbol[1].SentimentScore)

	overall := NormalizeNewsFeed(feed, "")
	require.NotNil(t, overall[0].SentimentScore)
	assert.Equal(t, 0.1, *overall[0].SentimentScore)
	assert.Equal(t, -0.05, *overall[1].SentimentScore)
}

func TestAlphaVantageGetNewsSentiment(t *testing.T) {
	repo := newAlphaVantageRepo(t, map[string]string{
		"NEWS_SENTIMENT": `{"items":"1","feed":[{"title":"t","url":"https://x.test/a","time_published":"20240510T133000",
			"overall_sentiment_score":0.3,"ticker_sentiment":[{"ticker":"AAPL","ticker_sentiment_score":"0.25"}]}]}`,
	})

	articles, err := repo.GetNewsSentiment(context.Background(), NewsQuery{Symbol: "AAPL", Limit: 10})
	require.NoError(t, err)
	require.Len(t, articles, 1)
	assert.Equal(t, 0.25, *articles[0].SentimentScore)
}

func TestAlphaVantageGetEconomicIndicator(t *testing.T) {
	repo := newAlphaVantageRepo(t, map[string]string{
		"REAL_GDP": `{"name":"Real Gross Domestic Product","interval":"quarterly","unit":"billions of dollars",
			"data":[{"date":"2024-01-01","value":"22758.752"},{"date":"2023-10-01","value":"22679.255"},{"date":"2024-04-01","value":"."}]}`,
	})

	ind, err := repo.GetEconomicIndicator(context.Background(), SeriesRealGDP)
	require.NoError(t, err)
	assert.Equal(t, "Real Gross Domestic Product", ind.Name)
	assert.Equal(t, "2024-01-01", ind.Date)
	assert.Equal(t, 22758.752, ind.Value)
	assert.Equal(t, "quarterly", ind.Interval)
}

func TestNormalizeAlphaVantageQuoteNonFinite(t *testing.T) {
	var raw dto.AlphaVantageGlobalQuoteResponse
	require.NoError(t, json.Unmarshal([]byte(`{"Global Quote":{"01. symbol":"IBM","05. price":"NaN","08. previous close":"170.00"}}`), &raw))
	_, err := NormalizeAlphaVantageQuote(raw)
	assert.ErrorIs(t, err, ErrSymbolNotFound)

	require.NoError(t, json.Unmarshal([]byte(`{"Global Quote":{"01. symbol":"IBM","03. high":"Infinity","05. price":"171.20","08. previous close":"170.00","09. change":"NaN"}}`), &raw))
	q, err := NormalizeAlphaVantageQuote(raw)
	require.NoError(t, err)
	assert.Equal(t, 0.0, q.High)
	assert.InDelta(t, 1.2, q.Change, 1e-9)

	_, err = json.Marshal(q)
	assert.NoError(t, err)
}

func TestLatestEconomicPointSkipsNaN(t *testing.T) {
	var raw dto.AlphaVantageEconomicResponse
	require.NoError(t, json.Unmarshal([]byte(`{"name":"CPI","data":[{"date":"2024-05-01","value":"NaN"},{"date":"2024-04-01","value":"313.5"}]}`), &raw))

	ind, err := LatestEconomicPoint(raw)
	require.NoError(t, err)
	assert.Equal(t, "2024-04-01", ind.Date)
	assert.Equal(t, 313.5, ind.Value)

	_, err = json.Marshal(ind)
	assert.NoError(t, err)
}
