package repository

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"golang-trading-assistant/internal/gateway/config"
)

func newTestServer(t *testing.T, h http.HandlerFunc) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return srv
}

func testConfig(baseURL string) *config.Config {
	cfg := &config.Config{}
	cfg.Upstream = config.Upstream{
		QuoteTimeout:     2 * time.Second,
		TechnicalTimeout: 2 * time.Second,
		NewsTimeout:      2 * time.Second,
		LLMTimeout:       2 * time.Second,
		EconomicTimeout:  2 * time.Second,
		ArticleTimeout:   2 * time.Second,
	}
	cfg.AI = config.AI{Provider: "openai", MaxTokens: 256, Temperature: 0.2}
	cfg.Finnhub = config.Finnhub{APIKey: "fh-key", BaseURL: baseURL}
	cfg.AlphaVantage = config.AlphaVantage{APIKey: "av-key", BaseURL: baseURL}
	cfg.YahooRSS = config.YahooRSS{BaseURL: baseURL}
	cfg.OpenAI = config.OpenAICompatible{APIKey: "oa-key", BaseURL: baseURL, Model: "gpt-test", MaxTokenPerMinute: 10000}
	cfg.Groq = config.OpenAICompatible{APIKey: "gq-key", BaseURL: baseURL, Model: "llama-test"}
	cfg.Claude = config.Claude{APIKey: "cl-key", BaseURL: baseURL, Model: "claude-test", Version: "2023-06-01"}
	cfg.Gemini = config.Gemini{APIKey: "gm-key", BaseURL: baseURL, Model: "gemini-test"}
	return cfg
}
