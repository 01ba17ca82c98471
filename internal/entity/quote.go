package entity

import "time"

// Quote is the canonical quote record every provider is normalized into.
type Quote struct {
	Symbol        string    `json:"symbol"`
	Price         float64   `json:"price"`
	Change        float64   `json:"change"`
	ChangePercent float64   `json:"changePercent"`
	Volume        int64     `json:"volume"`
	High          float64   `json:"high"`
	Low           float64   `json:"low"`
	Open          float64   `json:"open"`
	PreviousClose float64   `json:"previousClose"`
	Timestamp     time.Time `json:"timestamp"`
	Source        string    `json:"source"`
	Simulated     bool      `json:"simulated"`
}
