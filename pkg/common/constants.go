package common

// Upstream provider names, used in logs, metrics and error messages.
const (
	ProviderFinnhub      = "finnhub"
	ProviderAlphaVantage = "alphavantage"
	ProviderYahooRSS     = "yahoo_rss"
	ProviderArticle      = "article"
	ProviderOpenAI       = "openai"
	ProviderGroq         = "groq"
	ProviderClaude       = "claude"
	ProviderGemini       = "gemini"
	ProviderTelegram     = "telegram"
	ProviderSimulated    = "simulated"
)

// Cache key prefixes.
const (
	CacheKeyPrefix     = "gateway:"
	CacheKeyQuote      = "quote:"
	CacheKeyIndicator  = "indicator:"
	CacheKeyNews       = "news:"
	CacheKeyHeadlines  = "headlines:"
	CacheKeyEconomic   = "economic:"
	CacheKeyAVQuote    = "avquote:"
	HeaderRequestID    = "X-Request-ID"
	DefaultServiceName = "trading-assistant"
)

// AI analysis types.
const (
	AnalysisTypeAnalysis   = "analysis"
	AnalysisTypeSmartPlays = "smartplays"
	AnalysisTypeAlerts     = "alerts"
)

// Scheduler job types.
const (
	JobTypeAlertsBroadcast = "alerts_broadcast"
	JobTypePlaysDigest     = "plays_digest"
	JobTypeMarketBrief     = "market_brief"
)
