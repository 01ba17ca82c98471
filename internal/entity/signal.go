package entity

type Overall string

const (
	OverallBullish Overall = "Bullish"
	OverallBearish Overall = "Bearish"
	OverallNeutral Overall = "Neutral"
)

type SignalStrength string

const (
	StrengthLow    SignalStrength = "low"
	StrengthMedium SignalStrength = "medium"
	StrengthHigh   SignalStrength = "high"
)

// Indicator signal labels.
const (
	LabelOverbought          = "Overbought"
	LabelOversold            = "Oversold"
	LabelNeutral             = "Neutral"
	LabelExtremelyOverbought = "Extremely Overbought"
	LabelExtremelyOversold   = "Extremely Oversold"
	LabelBullishCrossover    = "Bullish crossover"
	LabelBearish             = "Bearish"
	LabelAboveTrend          = "Above trend"
	LabelBelowTrend          = "Below trend"
	LabelPositiveMomentum    = "Positive momentum"
	LabelNegativeMomentum    = "Negative momentum"
	LabelFlat                = "Flat"
)

// Signal is one indicator's qualitative reading.
type Signal struct {
	Type      string         `json:"type"`
	Indicator string         `json:"indicator"`
	Signal    string         `json:"signal"`
	Strength  SignalStrength `json:"strength"`
	Message   string         `json:"message"`
}

// ClassifierResult is the majority vote over the individual indicator signals.
type ClassifierResult struct {
	Overall      Overall  `json:"overall"`
	Strength     float64  `json:"strength"`
	BullishCount int      `json:"bullishCount"`
	BearishCount int      `json:"bearishCount"`
	TotalSignals int      `json:"totalSignals"`
	Signals      []Signal `json:"signals"`
	// Momentum is informational and does not take part in the vote.
	Momentum *Signal `json:"momentum"`
	// Extreme is "Extremely Overbought" or "Extremely Oversold" when RSI is past the extreme tier.
	Extreme string `json:"extreme,omitempty"`
}
