package entity

type Session string

const (
	SessionWeekend      Session = "Weekend"
	SessionFuturesOpen  Session = "Futures Open"
	SessionPreMarket    Session = "Pre-Market"
	SessionMarketOpen   Session = "Market Open"
	SessionAfterHours   Session = "After Hours"
	SessionMarketClosed Session = "Market Closed"
)

// Sessions lists every session label.
var Sessions = []Session{
	SessionWeekend,
	SessionFuturesOpen,
	SessionPreMarket,
	SessionMarketOpen,
	SessionAfterHours,
	SessionMarketClosed,
}

// SessionInfo describes the current market session in Eastern time.
type SessionInfo struct {
	Session             Session `json:"session"`
	PollIntervalSeconds int     `json:"pollIntervalSeconds"`
	IsTradingDay        bool    `json:"isTradingDay"`
	EasternTime         string  `json:"easternTime"`
}
