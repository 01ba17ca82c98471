package config

import (
	"time"

	"golang-trading-assistant/internal/signal"
	"golang-trading-assistant/pkg/config"
)

// Finnhub holds the configuration for the Finnhub quote API.
type Finnhub struct {
	APIKey              string `mapstructure:"api_key"`
	BaseURL             string `mapstructure:"base_url"`
	MaxRequestPerMinute int    `mapstructure:"max_request_per_minute"`
}

// AlphaVantage holds the configuration for the Alpha Vantage API.
type AlphaVantage struct {
	APIKey              string `mapstructure:"api_key"`
	BaseURL             string `mapstructure:"base_url"`
	MaxRequestPerMinute int    `mapstructure:"max_request_per_minute"`
}

// YahooRSS holds the configuration for the Yahoo Finance headline feed.
type YahooRSS struct {
	BaseURL             string `mapstructure:"base_url"`
	MaxRequestPerMinute int    `mapstructure:"max_request_per_minute"`
}

// OpenAICompatible holds the configuration for an OpenAI-style chat completions API (OpenAI, Groq).
type OpenAICompatible struct {
	APIKey              string `mapstructure:"api_key"`
	BaseURL             string `mapstructure:"base_url"`
	Model               string `mapstructure:"model"`
	MaxRequestPerMinute int    `mapstructure:"max_request_per_minute"`
	MaxTokenPerMinute   int    `mapstructure:"max_token_per_minute"`
}

// Claude holds the configuration for the Anthropic messages API.
type Claude struct {
	APIKey              string `mapstructure:"api_key"`
	BaseURL             string `mapstructure:"base_url"`
	Model               string `mapstructure:"model"`
	Version             string `mapstructure:"version"`
	MaxRequestPerMinute int    `mapstructure:"max_request_per_minute"`
}

// Gemini holds the configuration for the Gemini API.
type Gemini struct {
	APIKey              string `mapstructure:"api_key"`
	BaseURL             string `mapstructure:"base_url"`
	Model               string `mapstructure:"model"`
	MaxRequestPerMinute int    `mapstructure:"max_request_per_minute"`
	MaxTokenPerMinute   int    `mapstructure:"max_token_per_minute"`
}

// AI holds shared LLM settings.
type AI struct {
	Provider    string  `mapstructure:"provider"`
	MaxTokens   int     `mapstructure:"max_tokens"`
	Temperature float64 `mapstructure:"temperature"`
}

// Upstream holds per-call timeouts and the response cache TTL.
type Upstream struct {
	QuoteTimeout     time.Duration `mapstructure:"quote_timeout"`
	TechnicalTimeout time.Duration `mapstructure:"technical_timeout"`
	NewsTimeout      time.Duration `mapstructure:"news_timeout"`
	LLMTimeout       time.Duration `mapstructure:"llm_timeout"`
	EconomicTimeout  time.Duration `mapstructure:"economic_timeout"`
	ArticleTimeout   time.Duration `mapstructure:"article_timeout"`
	CacheTTL         time.Duration `mapstructure:"cache_ttl"`
}

// Quote holds quote provider selection and the opt-in simulated mode.
type Quote struct {
	Provider           string  `mapstructure:"provider"`
	EnrichVolume       bool    `mapstructure:"enrich_volume"`
	SimulatedFallback  bool    `mapstructure:"simulated_fallback"`
	SimulatedBasePrice float64 `mapstructure:"simulated_base_price"`
}

// News holds news endpoint settings.
type News struct {
	Limit           int `mapstructure:"limit"`
	HeadlineLimit   int `mapstructure:"headline_limit"`
	ArticleMaxChars int `mapstructure:"article_max_chars"`
}

// Market holds the symbols used by the market overview.
type Market struct {
	IndexSymbols     []string `mapstructure:"index_symbols"`
	VolatilitySymbol string   `mapstructure:"volatility_symbol"`
	NewsTopics       string   `mapstructure:"news_topics"`
}

// Plays holds the watchlist used by smart plays and alerts.
type Plays struct {
	Watchlist   []string `mapstructure:"watchlist"`
	Concurrency int      `mapstructure:"concurrency"`
}

// Alerts holds alert rule settings.
type Alerts struct {
	MovePercent float64 `mapstructure:"move_percent"`
}

// Config holds the full configuration for the gateway service.
type Config struct {
	App          config.App        `mapstructure:"app"`
	Logger       config.Logger     `mapstructure:"logger"`
	Redis        config.Redis      `mapstructure:"redis"`
	API          config.API        `mapstructure:"api"`
	Tracing      config.Tracing    `mapstructure:"tracing"`
	Telegram     config.Telegram   `mapstructure:"telegram"`
	Signal       signal.Thresholds `mapstructure:"signal"`
	Upstream     Upstream          `mapstructure:"upstream"`
	Quote        Quote             `mapstructure:"quote"`
	News         News              `mapstructure:"news"`
	Market       Market            `mapstructure:"market"`
	Plays        Plays             `mapstructure:"plays"`
	Alerts       Alerts            `mapstructure:"alerts"`
	AI           AI                `mapstructure:"ai"`
	Finnhub      Finnhub           `mapstructure:"finnhub"`
	AlphaVantage AlphaVantage      `mapstructure:"alphavantage"`
	YahooRSS     YahooRSS          `mapstructure:"yahoo_rss"`
	OpenAI       OpenAICompatible  `mapstructure:"openai"`
	Groq         OpenAICompatible  `mapstructure:"groq"`
	Claude       Claude            `mapstructure:"claude"`
	Gemini       Gemini            `mapstructure:"gemini"`
}

// EnvBindings maps provider credentials to their conventional environment variable names.
func EnvBindings() map[string]string {
	return map[string]string{
		"finnhub.api_key":      "FINNHUB_API_KEY",
		"alphavantage.api_key": "ALPHA_VANTAGE_API_KEY",
		"openai.api_key":       "OPENAI_API_KEY",
		"claude.api_key":       "ANTHROPIC_API_KEY",
		"gemini.api_key":       "GEMINI_API_KEY",
		"groq.api_key":         "GROQ_API_KEY",
		"telegram.bot_token":   "TELEGRAM_BOT_TOKEN",
		"telegram.chat_id":     "TELEGRAM_CHAT_ID",
	}
}

// Defaults returns the default value of every key that has one.
func Defaults() map[string]interface{} {
	d := map[string]interface{}{
		"app.name":    "trading-assistant-gateway",
		"app.env":     "development",
		"app.version": "dev",

		"logger.level":    "info",
		"logger.encoding": "json",

		"api.host": "0.0.0.0",
		"api.port": 8080,

		"redis.enabled":   false,
		"redis.host":      "localhost",
		"redis.port":      6379,
		"redis.pool_size": 10,

		"tracing.enabled":      false,
		"tracing.service_name": "trading-assistant-gateway",

		"upstream.quote_timeout":     5 * time.Second,
		"upstream.technical_timeout": 8 * time.Second,
		"upstream.news_timeout":      8 * time.Second,
		"upstream.llm_timeout":       30 * time.Second,
		"upstream.economic_timeout":  10 * time.Second,
		"upstream.article_timeout":   8 * time.Second,
		"upstream.cache_ttl":         15 * time.Second,

		"quote.provider":             "finnhub",
		"quote.enrich_volume":        false,
		"quote.simulated_fallback":   false,
		"quote.simulated_base_price": 100.0,

		"news.limit":             50,
		"news.headline_limit":    10,
		"news.article_max_chars": 8000,

		"market.index_symbols":     []string{"SPY", "QQQ", "DIA", "IWM"},
		"market.volatility_symbol": "VIXY",
		"market.news_topics":       "financial_markets",

		"plays.watchlist":   []string{"SPY", "QQQ", "AAPL", "MSFT", "NVDA", "TSLA"},
		"plays.concurrency": 4,

		"alerts.move_percent": 3.0,

		"ai.provider":    "openai",
		"ai.max_tokens":  1024,
		"ai.temperature": 0.3,

		"finnhub.base_url":               "https://finnhub.io/api/v1",
		"finnhub.max_request_per_minute": 60,

		"alphavantage.base_url":               "https://www.alphavantage.co/query",
		"alphavantage.max_request_per_minute": 75,

		"yahoo_rss.base_url":               "https://feeds.finance.yahoo.com/rss/2.0/headline",
		"yahoo_rss.max_request_per_minute": 60,

		"openai.base_url":               "https://api.openai.com/v1/chat/completions",
		"openai.model":                  "gpt-4o-mini",
		"openai.max_request_per_minute": 60,
		"openai.max_token_per_minute":   200000,

		"groq.base_url":               "https://api.groq.com/openai/v1/chat/completions",
		"groq.model":                  "llama-3.1-8b-instant",
		"groq.max_request_per_minute": 30,
		"groq.max_token_per_minute":   30000,

		"claude.base_url":               "https://api.anthropic.com/v1/messages",
		"claude.model":                  "claude-3-5-haiku-latest",
		"claude.version":                "2023-06-01",
		"claude.max_request_per_minute": 50,

		"gemini.base_url":               "https://generativelanguage.googleapis.com/v1beta/models",
		"gemini.model":                  "gemini-2.0-flash",
		"gemini.max_request_per_minute": 15,
		"gemini.max_token_per_minute":   1000000,
	}
	for k, v := range signal.DefaultsMap("signal") {
		d[k] = v
	}
	return d
}

// Load loads the gateway configuration from the given path.
func Load(path string) (*Config, error) {
	var cfg Config
	if err := config.Load(path, &cfg, config.WithDefaults(Defaults()), config.WithEnvBindings(EnvBindings())); err != nil {
		return nil, err
	}
	return &cfg, nil
}
