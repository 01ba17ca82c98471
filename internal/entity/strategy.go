package entity

const (
	StrategyBullCallSpread = "Bull Call Spread"
	StrategyBearPutSpread  = "Bear Put Spread"
	StrategyIronCondor     = "Iron Condor"
)

// OptionLeg is one leg of a strategy template. Strikes are presentation only.
type OptionLeg struct {
	Action string  `json:"action"`
	Type   string  `json:"type"`
	Strike float64 `json:"strike"`
}

// Strategy is a named options template with computed strikes.
type Strategy struct {
	Name        string      `json:"name"`
	Legs        []OptionLeg `json:"legs"`
	BuyStrike   float64     `json:"buyStrike"`
	SellStrike  float64     `json:"sellStrike"`
	Description string      `json:"description"`
	Caution     string      `json:"caution,omitempty"`
}
