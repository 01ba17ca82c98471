package signal

// Thresholds is the single table of every tunable boundary the signal rules use.
type Thresholds struct {
	RSIOverbought        float64 `mapstructure:"rsi_overbought"`
	RSIOversold          float64 `mapstructure:"rsi_oversold"`
	RSIExtremeOverbought float64 `mapstructure:"rsi_extreme_overbought"`
	RSIExtremeOversold   float64 `mapstructure:"rsi_extreme_oversold"`
	SentimentBullish     float64 `mapstructure:"sentiment_bullish"`
	SentimentBearish     float64 `mapstructure:"sentiment_bearish"`
	MomentumPercent      float64 `mapstructure:"momentum_percent"`
	StrikeIncrement      float64 `mapstructure:"strike_increment"`
	SpreadWidth          float64 `mapstructure:"spread_width"`
	CondorWing           float64 `mapstructure:"condor_wing"`
}

// DefaultThresholds returns RSI 70/30 (extreme 75/25), sentiment ±0.15 and $5 strikes with $10 spreads.
func DefaultThresholds() Thresholds {
	return Thresholds{
		RSIOverbought:        70,
		RSIOversold:          30,
		RSIExtremeOverbought: 75,
		RSIExtremeOversold:   25,
		SentimentBullish:     0.15,
		SentimentBearish:     -0.15,
		MomentumPercent:      1.0,
		StrikeIncrement:      5,
		SpreadWidth:          10,
		CondorWing:           10,
	}
}

// DefaultsMap exposes the defaults as viper keys under prefix (e.g. "signal").
func DefaultsMap(prefix string) map[string]interface{} {
	d := DefaultThresholds()
	return map[string]interface{}{
		prefix + ".rsi_overbought":         d.RSIOverbought,
		prefix + ".rsi_oversold":           d.RSIOversold,
		prefix + ".rsi_extreme_overbought": d.RSIExtremeOverbought,
		prefix + ".rsi_extreme_oversold":   d.RSIExtremeOversold,
		prefix + ".sentiment_bullish":      d.SentimentBullish,
		prefix + ".sentiment_bearish":      d.SentimentBearish,
		prefix + ".momentum_percent":       d.MomentumPercent,
		prefix + ".strike_increment":       d.StrikeIncrement,
		prefix + ".spread_width":           d.SpreadWidth,
		prefix + ".condor_wing":            d.CondorWing,
	}
}

// increment returns the strike increment, falling back to 5.
func (t Thresholds) increment() float64 {
	if t.StrikeIncrement <= 0 {
		return 5
	}
	return t.StrikeIncrement
}

// width rounds w up to a positive multiple of the strike increment.
func (t Thresholds) width(w float64) float64 {
	inc := t.increment()
	if w < inc {
		return inc
	}
	return roundToIncrement(w, inc)
}
