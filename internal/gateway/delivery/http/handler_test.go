package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"golang-trading-assistant/internal/entity"
	"golang-trading-assistant/internal/gateway/dto"
	"golang-trading-assistant/internal/gateway/repository"
	"golang-trading-assistant/internal/gateway/service"
	"golang-trading-assistant/pkg/logger"
	"golang-trading-assistant/pkg/metrics"
	"golang-trading-assistant/pkg/telegram"
)

type fakeQuotes struct {
	err       error
	gotBatch  []string
	gotSymbol string
}

func (f *fakeQuotes) GetQuote(_ context.Context, symbol string) (*entity.Quote, error) {
	f.gotSymbol = symbol
	if f.err != nil {
		return nil, f.err
	}
	return &entity.Quote{Symbol: strings.ToUpper(symbol), Price: 101.5, Source: "finnhub"}, nil
}

func (f *fakeQuotes) GetQuotes(_ context.Context, symbols []string) map[string]dto.SourceResult[entity.Quote] {
	f.gotBatch = symbols
	out := make(map[string]dto.SourceResult[entity.Quote])
	for _, s := range symbols {
		if s == "BAD" {
			out[s] = dto.Failed[entity.Quote](repository.ErrSymbolNotFound)
			continue
		}
		out[s] = dto.Ok(entity.Quote{Symbol: s, Price: 10})
	}
	return out
}

type fakeTechnicals struct{ err error }

func (f *fakeTechnicals) Snapshot(context.Context, string) (*entity.TechnicalSnapshot, map[string]string, error) {
	return nil, nil, f.err
}

func (f *fakeTechnicals) Technicals(_ context.Context, symbol string) (*dto.TechnicalsResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &dto.TechnicalsResponse{Symbol: symbol}, nil
}

type fakeSignals struct{ err error }

func (f *fakeSignals) Signal(_ context.Context, symbol string) (*dto.SignalResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &dto.SignalResponse{Symbol: symbol}, nil
}

func (f *fakeSignals) Report(_ context.Context, symbol string) (*dto.ReportResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &dto.ReportResponse{Symbol: symbol, Report: "report for " + symbol}, nil
}

type fakeNews struct {
	err   error
	query service.NewsQuery
}

func (f *fakeNews) News(_ context.Context, q service.NewsQuery) (*dto.NewsResponse, error) {
	f.query = q
	if f.err != nil {
		return nil, f.err
	}
	return &dto.NewsResponse{Symbol: q.Symbol, Articles: []entity.NewsArticle{}}, nil
}

func (f *fakeNews) Sentiment(context.Context, service.NewsQuery) (*entity.SentimentSnapshot, error) {
	return nil, f.err
}

func (f *fakeNews) Headlines(context.Context, []string, int) ([]entity.Headline, error) {
	return nil, f.err
}

func (f *fakeNews) Article(_ context.Context, rawURL string) (*entity.Article, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &entity.Article{URL: rawURL, Title: "t", Text: "body", Length: 4}, nil
}

type fakeMarket struct{}

func (fakeMarket) Overview(context.Context) *dto.MarketOverviewResponse {
	return &dto.MarketOverviewResponse{
		Indices:    map[string]dto.SourceResult[entity.Quote]{"SPY": dto.Failed[entity.Quote](errors.New("boom"))},
		Volatility: dto.Ok(entity.Quote{Symbol: "VIXY", Price: 20}),
	}
}

func (fakeMarket) Session() entity.SessionInfo {
	return entity.SessionInfo{Session: entity.SessionMarketOpen, PollIntervalSeconds: 15, IsTradingDay: true}
}

func (fakeMarket) Brief(context.Context) entity.MarketBrief { return entity.MarketBrief{} }

type fakePlays struct{ err error }

func (f *fakePlays) SmartPlays(context.Context) (*dto.PlaysResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &dto.PlaysResponse{Plays: []entity.Play{}}, nil
}

func (f *fakePlays) Alerts(context.Context) (*dto.AlertsResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &dto.AlertsResponse{Alerts: []entity.Alert{}}, nil
}

func (f *fakePlays) Broadcast(context.Context) (*dto.BroadcastResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &dto.BroadcastResponse{Alerts: 2, MessagesSent: 1}, nil
}

type fakeChat struct {
	err      error
	chat     dto.ChatBody
	analysis dto.AnalysisBody
}

func (f *fakeChat) Chat(_ context.Context, body dto.ChatBody) (*dto.ChatReply, error) {
	f.chat = body
	if f.err != nil {
		return nil, f.err
	}
	return &dto.ChatReply{Provider: "openai", Model: "gpt-test", Reply: "hi"}, nil
}

func (f *fakeChat) Analyze(_ context.Context, body dto.AnalysisBody) (*dto.AnalysisResponse, error) {
	f.analysis = body
	if f.err != nil {
		return nil, f.err
	}
	return &dto.AnalysisResponse{Symbol: body.Symbol, Type: body.Type, Provider: "openai"}, nil
}

type fixture struct {
	e      *echo.Echo
	quotes *fakeQuotes
	tech   *fakeTechnicals
	sig    *fakeSignals
	news   *fakeNews
	plays  *fakePlays
	chat   *fakeChat
}

func newFixture() *fixture {
	f := &fixture{
		quotes: &fakeQuotes{},
		tech:   &fakeTechnicals{},
		sig:    &fakeSignals{},
		news:   &fakeNews{},
		plays:  &fakePlays{},
		chat:   &fakeChat{},
	}
	f.e = NewRouter("test", logger.NewNop(), metrics.New("gateway"), Services{
		Quotes:     f.quotes,
		Technicals: f.tech,
		Signals:    f.sig,
		News:       f.news,
		Market:     fakeMarket{},
		Plays:      f.plays,
		Chat:       f.chat,
	})
	return f
}

func (f *fixture) do(method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	f.e.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body dto.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body.Error
}

func TestCORS_PreflightReturnsEmptyOK(t *testing.T) {
	f := newFixture()
	rec := f.do(http.MethodOptions, "/api/ai/chat", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Body.String())
	assert.Equal(t, "*", rec.Header().Get(echo.HeaderAccessControlAllowOrigin))
	assert.Equal(t, "GET, POST, OPTIONS", rec.Header().Get(echo.HeaderAccessControlAllowMethods))
	assert.Equal(t, "Content-Type, Authorization", rec.Header().Get(echo.HeaderAccessControlAllowHeaders))
}

func TestCORS_HeadersOnErrorsAndNotFound(t *testing.T) {
	f := newFixture()

	rec := f.do(http.MethodGet, "/api/nope", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "*", rec.Header().Get(echo.HeaderAccessControlAllowOrigin))
	assert.NotEmpty(t, decodeError(t, rec))

	rec = f.do(http.MethodGet, "/api/quote", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "*", rec.Header().Get(echo.HeaderAccessControlAllowOrigin))
}

func TestRequestID_EchoedOrGenerated(t *testing.T) {
	f := newFixture()

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	rec := httptest.NewRecorder()
	f.e.ServeHTTP(rec, req)
	assert.Equal(t, "abc-123", rec.Header().Get("X-Request-ID"))

	rec = f.do(http.MethodGet, "/healthz", "")
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}

func TestHealthAndMetrics(t *testing.T) {
	f := newFixture()

	rec := f.do(http.MethodGet, "/healthz", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var health dto.HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &health))
	assert.Equal(t, "ok", health.Status)
	assert.Equal(t, "test", health.Version)

	rec = f.do(http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "gateway_http_requests_total")
}

func TestGetQuote(t *testing.T) {
	f := newFixture()
	rec := f.do(http.MethodGet, "/api/quote?symbol=aapl", "")

	require.Equal(t, http.StatusOK, rec.Code)
	var q entity.Quote
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &q))
	assert.Equal(t, "AAPL", q.Symbol)
	assert.Equal(t, "aapl", f.quotes.gotSymbol)
}

func TestGetQuote_MissingSymbol(t *testing.T) {
	f := newFixture()
	rec := f.do(http.MethodGet, "/api/quote", "")

	require.Equal(t, http.StatusBadRequest, rec.Code)
	var body dto.ValidationErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "symbol is required", body.Error)
	require.Len(t, body.Fields, 1)
	assert.Equal(t, "ERR_REQUIRED", body.Fields[0].Code)
	assert.Equal(t, "symbol", body.Fields[0].Field)
}

func TestGetQuote_MissingKeyIsConfigurationError(t *testing.T) {
	f := newFixture()
	f.quotes.err = fmt.Errorf("quote: %w", &repository.MissingKeyError{Provider: "finnhub"})

	rec := f.do(http.MethodGet, "/api/quote?symbol=AAPL", "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "FINNHUB API key is not configured", decodeError(t, rec))
}

func TestGetQuotes_SplitsAndDedupes(t *testing.T) {
	f := newFixture()
	rec := f.do(http.MethodGet, "/api/quotes?symbols=aapl,%20msft,AAPL,,bad", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"AAPL", "MSFT", "BAD"}, f.quotes.gotBatch)

	var body map[string]map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "AAPL", body["AAPL"]["symbol"])
	assert.Contains(t, body["BAD"]["error"], "symbol not found")
}

func TestGetQuotes_TooMany(t *testing.T) {
	f := newFixture()
	syms := make([]string, service.MaxQuoteSymbols+1)
	for i := range syms {
		syms[i] = fmt.Sprintf("S%d", i)
	}
	rec := f.do(http.MethodGet, "/api/quotes?symbols="+strings.Join(syms, ","), "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Nil(t, f.quotes.gotBatch)
}

func TestGetQuotes_OnlyCommas(t *testing.T) {
	f := newFixture()
	rec := f.do(http.MethodGet, "/api/quotes?symbols=,,", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSignalRoutes(t *testing.T) {
	f := newFixture()

	for _, path := range []string{"/api/technicals?symbol=AAPL", "/api/signals?symbol=AAPL", "/api/report?symbol=AAPL"} {
		rec := f.do(http.MethodGet, path, "")
		assert.Equal(t, http.StatusOK, rec.Code, path)
		assert.Contains(t, rec.Body.String(), `"symbol":"AAPL"`, path)
	}

	f.tech.err = errors.New("rsi: boom")
	rec := f.do(http.MethodGet, "/api/technicals?symbol=AAPL", "")
	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Equal(t, "rsi: boom", decodeError(t, rec))
}

func TestGetNews_TickersAndDefaultLimit(t *testing.T) {
	f := newFixture()
	rec := f.do(http.MethodGet, "/api/news?tickers=aapl,msft", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"AAPL", "MSFT"}, f.news.query.Tickers)
	assert.Equal(t, 50, f.news.query.Limit)
}

func TestGetNews_LimitOutOfRange(t *testing.T) {
	f := newFixture()
	rec := f.do(http.MethodGet, "/api/news?limit=5000", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetArticle(t *testing.T) {
	f := newFixture()

	rec := f.do(http.MethodGet, "/api/news/article?url=https%3A%2F%2Fexample.com%2Fa", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"text":"body"`)

	rec = f.do(http.MethodGet, "/api/news/article?url=not-a-url", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMarketRoutes(t *testing.T) {
	f := newFixture()

	rec := f.do(http.MethodGet, "/api/market/overview", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var overview map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &overview))
	indices := overview["indices"].(map[string]interface{})
	assert.Equal(t, map[string]interface{}{"error": "boom"}, indices["SPY"])

	rec = f.do(http.MethodGet, "/api/market/session", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"session":"Market Open"`)
}

func TestPlaysRoutes(t *testing.T) {
	f := newFixture()

	assert.Equal(t, http.StatusOK, f.do(http.MethodGet, "/api/smart-plays", "").Code)
	assert.Equal(t, http.StatusOK, f.do(http.MethodGet, "/api/alerts", "").Code)

	rec := f.do(http.MethodPost, "/api/alerts/broadcast", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"messagesSent":1`)
}

func TestBroadcast_Errors(t *testing.T) {
	f := newFixture()

	f.plays.err = telegram.ErrNotConfigured
	rec := f.do(http.MethodPost, "/api/alerts/broadcast", "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "telegram is not configured", decodeError(t, rec))

	f.plays.err = fmt.Errorf("%w: chat not found", service.ErrDeliveryFailed)
	rec = f.do(http.MethodPost, "/api/alerts/broadcast", "")
	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestChat(t *testing.T) {
	f := newFixture()

	rec := f.do(http.MethodPost, "/api/ai/chat", `{"message":"hello","provider":"groq"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "hello", f.chat.chat.Message)
	assert.Equal(t, "groq", f.chat.chat.Provider)

	var reply dto.ChatReply
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &reply))
	assert.Equal(t, "hi", reply.Reply)
}

func TestChat_Validation(t *testing.T) {
	f := newFixture()

	rec := f.do(http.MethodPost, "/api/ai/chat", `{"message":""}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "message is required", decodeError(t, rec))

	rec = f.do(http.MethodPost, "/api/ai/chat", `{"message":"hi","provider":"bard"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = f.do(http.MethodPost, "/api/ai/chat", `{"message":`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestChat_QueryParameters(t *testing.T) {
	f := newFixture()

	rec := f.do(http.MethodPost, "/api/ai/chat?message=from-query", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "from-query", f.chat.chat.Message)
}

func TestChat_MissingKey(t *testing.T) {
	f := newFixture()
	f.chat.err = &repository.MissingKeyError{Provider: "anthropic"}

	rec := f.do(http.MethodPost, "/api/ai/chat", `{"message":"hi","provider":"claude"}`)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "ANTHROPIC API key is not configured", decodeError(t, rec))
}

func TestAnalysis_DefaultType(t *testing.T) {
	f := newFixture()

	rec := f.do(http.MethodPost, "/api/ai/analysis", `{"symbol":"AAPL"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "analysis", f.chat.analysis.Type)

	rec = f.do(http.MethodPost, "/api/ai/analysis", `{"symbol":"AAPL","type":"poem"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"invalid input", fmt.Errorf("%w: x", repository.ErrInvalidInput), http.StatusBadRequest},
		{"unknown provider", repository.ErrUnknownProvider, http.StatusBadRequest},
		{"missing key", &repository.MissingKeyError{Provider: "gemini"}, http.StatusInternalServerError},
		{"telegram", telegram.ErrNotConfigured, http.StatusInternalServerError},
		{"rate limited", &repository.UpstreamError{Provider: "finnhub", StatusCode: 429}, http.StatusTooManyRequests},
		{"not found", &repository.UpstreamError{Provider: "finnhub", StatusCode: 404}, http.StatusNotFound},
		{"timeout", fmt.Errorf("quote: %w", context.DeadlineExceeded), http.StatusGatewayTimeout},
		{"upstream 500", &repository.UpstreamError{Provider: "finnhub", StatusCode: 500}, http.StatusBadGateway},
		{"other", errors.New("boom"), http.StatusBadGateway},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StatusFor(tt.err))
		})
	}
}

func TestRecover(t *testing.T) {
	e := echo.New()
	e.Use(Recover(logger.NewNop()))
	e.GET("/panic", func(c echo.Context) error { panic("kaboom") })

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/panic", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "internal server error")
}

func TestSplitSymbols(t *testing.T) {
	assert.Equal(t, []string{"AAPL", "MSFT"}, SplitSymbols(" aapl , MSFT,aapl,"))
	assert.Nil(t, SplitSymbols(""))
}
