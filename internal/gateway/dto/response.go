package dto

import (
	"encoding/json"
	"time"

	"golang-trading-assistant/internal/entity"
)

// ErrorResponse represents a generic error response body.
type ErrorResponse struct {
	Error string `json:"error"`
}

// ValidationErrorResponse is returned for invalid input.
type ValidationErrorResponse struct {
	Error  string            `json:"error"`
	Fields []ValidationError `json:"fields,omitempty"`
}

// ValidationError represents validation error detail.
type ValidationError struct {
	Code    string `json:"code,omitempty" example:"ERR_REQUIRED"`
	Field   string `json:"field,omitempty" example:"symbol"`
	Message string `json:"message,omitempty" example:"symbol is required"`
}

// SourceError is how a failed source renders inside an aggregation.
type SourceError struct {
	Error string `json:"error"`
}

// SourceResult holds either data or the error of one source in an aggregation.
// It marshals as the data itself, or as {"error": "..."} when the source failed.
type SourceResult[T any] struct {
	Data *T
	Err  *SourceError
}

// Ok wraps a successful value.
func Ok[T any](v T) SourceResult[T] {
	return SourceResult[T]{Data: &v}
}

// Failed wraps an error.
func Failed[T any](err error) SourceResult[T] {
	return SourceResult[T]{Err: &SourceError{Error: err.Error()}}
}

// Result builds a SourceResult from a value/error pair.
func Result[T any](v T, err error) SourceResult[T] {
	if err != nil {
		return Failed[T](err)
	}
	return Ok(v)
}

// Failed reports whether the source failed.
func (r SourceResult[T]) Failed() bool {
	return r.Err != nil
}

func (r SourceResult[T]) MarshalJSON() ([]byte, error) {
	if r.Err != nil {
		return json.Marshal(r.Err)
	}
	if r.Data == nil {
		return []byte("null"), nil
	}
	return json.Marshal(r.Data)
}

func (r *SourceResult[T]) UnmarshalJSON(b []byte) error {
	var probe struct {
		Error *string `json:"error"`
	}
	if err := json.Unmarshal(b, &probe); err == nil && probe.Error != nil {
		r.Err = &SourceError{Error: *probe.Error}
		r.Data = nil
		return nil
	}
	var v T
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	r.Data, r.Err = &v, nil
	return nil
}

// HealthResponse is returned by /healthz.
type HealthResponse struct {
	Status  string `json:"status" example:"ok"`
	Version string `json:"version" example:"dev"`
}

// TechnicalsResponse is returned by /api/technicals.
type TechnicalsResponse struct {
	Symbol   string                   `json:"symbol"`
	Price    *float64                 `json:"price"`
	Snapshot entity.TechnicalSnapshot `json:"snapshot"`
	Signals  entity.ClassifierResult  `json:"signals"`
	Errors   map[string]string        `json:"errors,omitempty"`
}

// NewsResponse is returned by /api/news.
type NewsResponse struct {
	Symbol    string                          `json:"symbol,omitempty"`
	Articles  []entity.NewsArticle            `json:"articles"`
	Sentiment entity.SentimentSnapshot        `json:"sentiment"`
	Headlines SourceResult[[]entity.Headline] `json:"headlines" swaggertype:"array,object"`
	Error     string                          `json:"error,omitempty"`
}

// SignalResponse is returned by /api/signals.
type SignalResponse struct {
	Symbol         string                                 `json:"symbol"`
	Quote          SourceResult[entity.Quote]             `json:"quote" swaggertype:"object"`
	Technicals     SourceResult[entity.TechnicalSnapshot] `json:"technicals" swaggertype:"object"`
	Sentiment      SourceResult[entity.SentimentSnapshot] `json:"sentiment" swaggertype:"object"`
	Classification entity.ClassifierResult                `json:"classification"`
	Strategy       *entity.Strategy                       `json:"strategy"`
	Session        entity.SessionInfo                     `json:"session"`
}

// ReportResponse is returned by /api/report.
type ReportResponse struct {
	Symbol string `json:"symbol"`
	Report string `json:"report"`
}

// EconomicSnapshot groups the macro series by their real names.
type EconomicSnapshot struct {
	RealGDP          SourceResult[entity.EconomicIndicator] `json:"realGdp" swaggertype:"object"`
	FederalFundsRate SourceResult[entity.EconomicIndicator] `json:"federalFundsRate" swaggertype:"object"`
	CPI              SourceResult[entity.EconomicIndicator] `json:"cpi" swaggertype:"object"`
}

// MarketOverviewResponse is returned by /api/market/overview. Every source is independent.
type MarketOverviewResponse struct {
	Indices     map[string]SourceResult[entity.Quote]  `json:"indices" swaggertype:"object"`
	Volatility  SourceResult[entity.Quote]             `json:"volatility" swaggertype:"object"`
	Economic    EconomicSnapshot                       `json:"economic"`
	Sentiment   SourceResult[entity.SentimentSnapshot] `json:"sentiment" swaggertype:"object"`
	Session     entity.SessionInfo                     `json:"session"`
	GeneratedAt time.Time                              `json:"generatedAt"`
}

// PlaysResponse is returned by /api/smart-plays.
type PlaysResponse struct {
	Plays       []entity.Play      `json:"plays"`
	Session     entity.SessionInfo `json:"session"`
	GeneratedAt time.Time          `json:"generatedAt"`
}

// AlertsResponse is returned by /api/alerts.
type AlertsResponse struct {
	Alerts      []entity.Alert `json:"alerts"`
	GeneratedAt time.Time      `json:"generatedAt"`
}

// BroadcastResponse is returned by /api/alerts/broadcast.
type BroadcastResponse struct {
	Alerts       int `json:"alerts"`
	MessagesSent int `json:"messagesSent"`
}

// ChatReply is returned by /api/ai/chat.
type ChatReply struct {
	Provider string `json:"provider"`
	Model    string `json:"model"`
	Reply    string `json:"reply"`
}

// AnalysisResponse is returned by /api/ai/analysis. Result is null when the model
// answer could not be parsed; Raw then holds the answer text.
type AnalysisResponse struct {
	Symbol   string      `json:"symbol,omitempty"`
	Type     string      `json:"type"`
	Provider string      `json:"provider"`
	Model    string      `json:"model"`
	Result   interface{} `json:"result"`
	Raw      string      `json:"raw,omitempty"`
}

// KeyLevels are support and resistance prices.
type KeyLevels struct {
	Support    []float64 `json:"support"`
	Resistance []float64 `json:"resistance"`
}

// AnalysisResult is the structured answer for type=analysis.
type AnalysisResult struct {
	Summary    string    `json:"summary"`
	Outlook    string    `json:"outlook"`
	KeyLevels  KeyLevels `json:"keyLevels"`
	Risks      []string  `json:"risks"`
	Confidence int       `json:"confidence"`
}

// SmartPlaysResult is the structured answer for type=smartplays.
type SmartPlaysResult struct {
	Plays []entity.Play `json:"plays"`
}

// AlertsResult is the structured answer for type=alerts.
type AlertsResult struct {
	Alerts []entity.Alert `json:"alerts"`
}
