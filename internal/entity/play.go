package entity

type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

// Play is a rule-based trade idea. Not persisted.
type Play struct {
	Title      string    `json:"title"`
	Ticker     string    `json:"ticker"`
	Strategy   string    `json:"strategy"`
	Confidence int       `json:"confidence"`
	Reasoning  string    `json:"reasoning"`
	RiskLevel  RiskLevel `json:"riskLevel"`
	Timeframe  string    `json:"timeframe"`
}

// Alert types.
const (
	AlertRSIExtreme    = "rsi_extreme"
	AlertRSI           = "rsi"
	AlertMACDCrossover = "macd_crossover"
	AlertLargeMove     = "large_move"
	AlertSMACross      = "sma_cross"
)

// Alert shares the Play shape plus the rule that produced it.
type Alert struct {
	Type       string    `json:"type"`
	Title      string    `json:"title"`
	Ticker     string    `json:"ticker"`
	Strategy   string    `json:"strategy"`
	Confidence int       `json:"confidence"`
	Reasoning  string    `json:"reasoning"`
	RiskLevel  RiskLevel `json:"riskLevel"`
	Timeframe  string    `json:"timeframe"`
}
