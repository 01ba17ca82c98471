package entity

// EconomicIndicator is the latest point of a macro series.
type EconomicIndicator struct {
	Name     string  `json:"name"`
	Value    float64 `json:"value"`
	Date     string  `json:"date"`
	Unit     string  `json:"unit"`
	Interval string  `json:"interval"`
}
