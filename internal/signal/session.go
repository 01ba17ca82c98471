package signal

import (
	"time"

	"golang-trading-assistant/internal/entity"
	"golang-trading-assistant/pkg/utils"
)

// Minute-of-day boundaries in Eastern time.
const (
	preMarketStart    = 4 * 60    // 04:00
	marketOpen        = 9*60 + 30 // 09:30
	marketClose       = 16 * 60   // 16:00
	afterHoursEnd     = 20 * 60   // 20:00
	sundayFuturesOpen = 18 * 60   // 18:00
)

// ResolveSession classifies an Eastern wall-clock time. Out-of-range hour and
// minute values are wrapped into range so every input maps to a session.
func ResolveSession(day time.Weekday, hour, minute int) entity.Session {
	day = time.Weekday(mod(int(day), 7))
	mins := mod(hour, 24)*60 + mod(minute, 60)

	switch day {
	case time.Saturday:
		return entity.SessionWeekend
	case time.Sunday:
		if mins >= sundayFuturesOpen {
			return entity.SessionFuturesOpen
		}
		return entity.SessionWeekend
	}

	switch {
	case mins < preMarketStart:
		return entity.SessionFuturesOpen
	case mins < marketOpen:
		return entity.SessionPreMarket
	case mins < marketClose:
		return entity.SessionMarketOpen
	case mins < afterHoursEnd:
		return entity.SessionAfterHours
	case day == time.Friday:
		return entity.SessionMarketClosed
	default:
		return entity.SessionFuturesOpen
	}
}

// PollInterval returns the suggested client refresh interval in seconds.
func PollInterval(s entity.Session) int {
	switch s {
	case entity.SessionMarketOpen:
		return 30
	case entity.SessionPreMarket, entity.SessionAfterHours:
		return 60
	case entity.SessionFuturesOpen:
		return 120
	default:
		return 300
	}
}

// CurrentSession resolves the session for now, converted to America/New_York.
func CurrentSession(now time.Time) entity.SessionInfo {
	et := now.In(utils.EasternLocation())
	s := ResolveSession(et.Weekday(), et.Hour(), et.Minute())
	return entity.SessionInfo{
		Session:             s,
		PollIntervalSeconds: PollInterval(s),
		IsTradingDay:        et.Weekday() != time.Saturday && et.Weekday() != time.Sunday,
		EasternTime:         et.Format("2006-01-02 15:04:05 MST"),
	}
}

func mod(v, n int) int {
	v %= n
	if v < 0 {
		v += n
	}
	return v
}
