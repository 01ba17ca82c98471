package dto

// AlphaVantageStatus holds the fields Alpha Vantage uses to report throttling and bad requests
// inside an HTTP 200 body.
type AlphaVantageStatus struct {
	Note         string `json:"Note"`
	Information  string `json:"Information"`
	ErrorMessage string `json:"Error Message"`
}

// AlphaVantageGlobalQuoteResponse is the GLOBAL_QUOTE response.
type AlphaVantageGlobalQuoteResponse struct {
	AlphaVantageStatus
	GlobalQuote AlphaVantageGlobalQuote `json:"Global Quote"`
}

// AlphaVantageGlobalQuote holds the numbered string fields of GLOBAL_QUOTE.
type AlphaVantageGlobalQuote struct {
	Symbol           string    `json:"01. symbol"`
	Open             FlexFloat `json:"02. open"`
	High             FlexFloat `json:"03. high"`
	Low              FlexFloat `json:"04. low"`
	Price            FlexFloat `json:"05. price"`
	Volume           FlexFloat `json:"06. volume"`
	LatestTradingDay string    `json:"07. latest trading day"`
	PreviousClose    FlexFloat `json:"08. previous close"`
	Change           FlexFloat `json:"09. change"`
	ChangePercent    FlexFloat `json:"10. change percent"`
}

// AlphaVantageNewsResponse is the NEWS_SENTIMENT response.
type AlphaVantageNewsResponse struct {
	AlphaVantageStatus
	Items string                 `json:"items"`
	Feed  []AlphaVantageNewsItem `json:"feed"`
}

type AlphaVantageNewsItem struct {
	Title                 string                        `json:"title"`
	URL                   string                        `json:"url"`
	TimePublished         string                        `json:"time_published"`
	Summary               string                        `json:"summary"`
	Source                string                        `json:"source"`
	OverallSentimentScore FlexFloat                     `json:"overall_sentiment_score"`
	OverallSentimentLabel string                        `json:"overall_sentiment_label"`
	TickerSentiment       []AlphaVantageTickerSentiment `json:"ticker_sentiment"`
}

type AlphaVantageTickerSentiment struct {
	Ticker               string    `json:"ticker"`
	RelevanceScore       FlexFloat `json:"relevance_score"`
	TickerSentimentScore FlexFloat `json:"ticker_sentiment_score"`
	TickerSentimentLabel string    `json:"ticker_sentiment_label"`
}

// AlphaVantageEconomicResponse is the shape shared by REAL_GDP, FEDERAL_FUNDS_RATE and CPI.
type AlphaVantageEconomicResponse struct {
	AlphaVantageStatus
	Name     string                      `json:"name"`
	Interval string                      `json:"interval"`
	Unit     string                      `json:"unit"`
	Data     []AlphaVantageEconomicPoint `json:"data"`
}

type AlphaVantageEconomicPoint struct {
	Date  string    `json:"date"`
	Value FlexFloat `json:"value"`
}
