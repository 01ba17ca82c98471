package dto

// FinnhubQuote is the /quote response. Unknown symbols come back as all zeros.
type FinnhubQuote struct {
	Current       float64   `json:"c"`
	Change        FlexFloat `json:"d"`
	PercentChange FlexFloat `json:"dp"`
	High          float64   `json:"h"`
	Low           float64   `json:"l"`
	Open          float64   `json:"o"`
	PreviousClose float64   `json:"pc"`
	Timestamp     int64     `json:"t"`
}

// IsEmpty reports whether the provider returned its all-zero "no data" payload.
func (q FinnhubQuote) IsEmpty() bool {
	return q.Current == 0 && q.High == 0 && q.Low == 0 && q.Open == 0 && q.PreviousClose == 0
}
