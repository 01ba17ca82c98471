package entity

// MACD holds the latest MACD line, signal line and histogram values.
type MACD struct {
	MACD      float64 `json:"macd"`
	Signal    float64 `json:"signal"`
	Histogram float64 `json:"histogram"`
}

// TechnicalSnapshot holds the latest indicator values. Each field is nil when its upstream call failed.
type TechnicalSnapshot struct {
	RSI   *float64 `json:"rsi"`
	MACD  *MACD    `json:"macd"`
	SMA20 *float64 `json:"sma20"`
	SMA50 *float64 `json:"sma50"`
}

// Empty reports whether no indicator is present.
func (s TechnicalSnapshot) Empty() bool {
	return s.RSI == nil && s.MACD == nil && s.SMA20 == nil && s.SMA50 == nil
}
