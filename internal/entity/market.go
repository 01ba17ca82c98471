package entity

// MarketBrief is the condensed market overview pushed to chat.
type MarketBrief struct {
	Session    SessionInfo
	Indices    []Quote
	Volatility *Quote
	Economic   []EconomicIndicator
	Sentiment  *SentimentSnapshot
	// Unavailable lists the sources that failed, by name.
	Unavailable []string
}
