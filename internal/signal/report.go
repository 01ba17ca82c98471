package signal

import (
	"fmt"
	"strings"

	"golang-trading-assistant/internal/entity"
	"golang-trading-assistant/pkg/utils"
)

// ReportInput carries everything known about a symbol. Any part may be nil.
type ReportInput struct {
	Symbol         string
	Quote          *entity.Quote
	Snapshot       *entity.TechnicalSnapshot
	Classification *entity.ClassifierResult
	Sentiment      *entity.SentimentSnapshot
	Strategy       *entity.Strategy
	Session        *entity.SessionInfo
	Headlines      []string
}

// FormatReport renders the input as a plain-text block for AI prompt context.
// Missing or non-finite numbers render as N/A.
func FormatReport(in ReportInput) string {
	var b strings.Builder

	fmt.Fprintf(&b, "=== %s MARKET REPORT ===\n", strings.ToUpper(in.Symbol))
	if in.Session != nil {
		fmt.Fprintf(&b, "Session: %s (%s)\n", in.Session.Session, in.Session.EasternTime)
	}

	b.WriteString("\nPRICE\n")
	if q := in.Quote; q != nil {
		fmt.Fprintf(&b, "Price: $%s\n", utils.FormatNumber(q.Price, 2))
		fmt.Fprintf(&b, "Change: %s (%s%%)\n", utils.FormatNumber(q.Change, 2), utils.FormatNumber(q.ChangePercent, 2))
		fmt.Fprintf(&b, "Open: $%s  High: $%s  Low: $%s  Prev Close: $%s\n",
			utils.FormatNumber(q.Open, 2), utils.FormatNumber(q.High, 2),
			utils.FormatNumber(q.Low, 2), utils.FormatNumber(q.PreviousClose, 2))
		if q.Volume > 0 {
			fmt.Fprintf(&b, "Volume: %d\n", q.Volume)
		} else {
			fmt.Fprintf(&b, "Volume: %s\n", utils.NotAvailable)
		}
		if q.Simulated {
			b.WriteString("Note: simulated quote, not live data\n")
		}
	} else {
		fmt.Fprintf(&b, "Price: %s\n", utils.NotAvailable)
	}

	b.WriteString("\nTECHNICALS\n")
	snap := entity.TechnicalSnapshot{}
	if in.Snapshot != nil {
		snap = *in.Snapshot
	}
	fmt.Fprintf(&b, "RSI(14): %s\n", utils.FormatNumberPtr(snap.RSI, 2))
	if snap.MACD != nil {
		fmt.Fprintf(&b, "MACD: %s  Signal: %s  Histogram: %s\n",
			utils.FormatNumber(snap.MACD.MACD, 4), utils.FormatNumber(snap.MACD.Signal, 4),
			utils.FormatNumber(snap.MACD.Histogram, 4))
	} else {
		fmt.Fprintf(&b, "MACD: %s\n", utils.NotAvailable)
	}
	fmt.Fprintf(&b, "SMA20: %s  SMA50: %s\n", utils.FormatNumberPtr(snap.SMA20, 2), utils.FormatNumberPtr(snap.SMA50, 2))

	if c := in.Classification; c != nil {
		fmt.Fprintf(&b, "\nSIGNAL: %s (%s%% strength, %d bullish / %d bearish of %d)\n",
			c.Overall, utils.FormatNumber(c.Strength, 2), c.BullishCount, c.BearishCount, c.TotalSignals)
		for _, s := range c.Signals {
			fmt.Fprintf(&b, "- %s: %s. %s\n", s.Indicator, s.Signal, s.Message)
		}
		if c.Momentum != nil {
			fmt.Fprintf(&b, "- %s: %s. %s\n", c.Momentum.Indicator, c.Momentum.Signal, c.Momentum.Message)
		}
		if c.Extreme != "" {
			fmt.Fprintf(&b, "Warning: RSI %s\n", c.Extreme)
		}
	}

	if s := in.Sentiment; s != nil {
		fmt.Fprintf(&b, "\nNEWS SENTIMENT: %s (score %s across %d articles)\n",
			s.Label, utils.FormatNumber(s.Score, 4), s.ArticleCount)
	}
	if len(in.Headlines) > 0 {
		b.WriteString("Recent headlines:\n")
		for _, h := range in.Headlines {
			fmt.Fprintf(&b, "- %s\n", h)
		}
	}

	if st := in.Strategy; st != nil {
		fmt.Fprintf(&b, "\nOPTIONS IDEA: %s\n", st.Description)
		if st.Caution != "" {
			fmt.Fprintf(&b, "Caution: %s\n", st.Caution)
		}
	}

	return b.String()
}
