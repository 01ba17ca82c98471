package telegram

import (
	"fmt"
	"strings"
	"time"

	"golang-trading-assistant/internal/entity"
	"golang-trading-assistant/pkg/utils"
)

// MaxMessageLength keeps each part under Telegram's 4096 character limit.
const MaxMessageLength = 4090

// splitMessages packs entries into parts no longer than MaxMessageLength.
// header is called with the 1-based part number whenever a part starts.
func splitMessages(header func(part int) string, entries []string) []string {
	var messages []string
	var current strings.Builder
	part := 1

	startNewPart := func() {
		current.Reset()
		current.WriteString(header(part))
	}
	startNewPart()

	for _, entry := range entries {
		if current.Len()+len(entry) > MaxMessageLength && current.Len() > len(header(part)) {
			messages = append(messages, current.String())
			part++
			startNewPart()
		}
		if len(entry) > MaxMessageLength-current.Len() {
			entry, _ = utils.Truncate(entry, MaxMessageLength-current.Len())
		}
		current.WriteString(entry)
	}

	return append(messages, current.String())
}

func partHeader(first, name string) func(int) string {
	return func(part int) string {
		if part == 1 {
			return first
		}
		return fmt.Sprintf("---*%s (continued) Part %d*---\n\n", name, part)
	}
}

func riskIcon(level entity.RiskLevel) string {
	switch level {
	case entity.RiskHigh:
		return "🔴"
	case entity.RiskMedium:
		return "🟡"
	default:
		return "🟢"
	}
}

// FormatAlertsForTelegram formats alerts into one or more Markdown messages.
func FormatAlertsForTelegram(alerts []entity.Alert, generatedAt time.Time) []string {
	if len(alerts) == 0 {
		return []string{fmt.Sprintf("🔔 *Market Alerts*\n%s\n\nNo alerts triggered.", utils.PrettyDate(generatedAt))}
	}

	entries := make([]string, 0, len(alerts))
	for _, a := range alerts {
		var b strings.Builder
		b.WriteString(fmt.Sprintf("%s *%s* `%s`\n", riskIcon(a.RiskLevel), a.Title, a.Ticker))
		b.WriteString(fmt.Sprintf("💬 %s\n", a.Reasoning))
		if a.Strategy != "" {
			b.WriteString(fmt.Sprintf("💡 *Idea:* %s\n", a.Strategy))
		}
		b.WriteString(fmt.Sprintf("🎯 *Confidence:* %d%%\n\n", a.Confidence))
		entries = append(entries, b.String())
	}

	title := fmt.Sprintf("🔔 *Market Alerts* 🔔\n%s\n\n", utils.PrettyDate(generatedAt))
	return splitMessages(partHeader(title, "Market Alerts"), entries)
}

// FormatPlaysForTelegram formats smart plays into one or more Markdown messages.
func FormatPlaysForTelegram(plays []entity.Play, session entity.SessionInfo) []string {
	if len(plays) == 0 {
		return []string{fmt.Sprintf("📈 *Smart Plays*\n%s\n\nNo plays for the current watchlist.", session.Session)}
	}

	entries := make([]string, 0, len(plays))
	for i, p := range plays {
		var b strings.Builder
		b.WriteString(fmt.Sprintf("%d. *%s* `%s`\n", i+1, p.Title, p.Ticker))
		b.WriteString(fmt.Sprintf("💡 %s\n", p.Strategy))
		b.WriteString(fmt.Sprintf("🤔 _%s_\n", p.Reasoning))
		b.WriteString(fmt.Sprintf("%s *Risk:* %s  ⏳ %s  🎯 %d%%\n\n", riskIcon(p.RiskLevel), p.RiskLevel, p.Timeframe, p.Confidence))
		entries = append(entries, b.String())
	}

	title := fmt.Sprintf("📈 *Smart Plays* 📈\n%s (%s)\n\n", session.Session, session.EasternTime)
	return splitMessages(partHeader(title, "Smart Plays"), entries)
}

// FormatMarketBriefForTelegram formats the market overview into a Markdown message.
func FormatMarketBriefForTelegram(brief entity.MarketBrief) string {
	var b strings.Builder

	b.WriteString("🗞 *Market Brief*\n")
	b.WriteString(fmt.Sprintf("🕒 %s (%s)\n\n", brief.Session.Session, brief.Session.EasternTime))

	if len(brief.Indices) > 0 {
		b.WriteString("📊 *Indices*\n")
		for _, q := range brief.Indices {
			icon := "🟢"
			if q.ChangePercent < 0 {
				icon = "🔴"
			}
			b.WriteString(fmt.Sprintf("%s `%s` $%s (%s%%)\n", icon, q.Symbol,
				utils.FormatNumber(q.Price, 2), utils.FormatNumber(q.ChangePercent, 2)))
		}
		b.WriteString("\n")
	}

	if v := brief.Volatility; v != nil {
		b.WriteString(fmt.Sprintf("🌪 *Volatility* `%s` $%s (%s%%)\n\n", v.Symbol,
			utils.FormatNumber(v.Price, 2), utils.FormatNumber(v.ChangePercent, 2)))
	}

	if len(brief.Economic) > 0 {
		b.WriteString("🏛 *Economy*\n")
		for _, e := range brief.Economic {
			b.WriteString(fmt.Sprintf("• %s: %s %s (%s)\n", e.Name, utils.FormatNumber(e.Value, 2), e.Unit, e.Date))
		}
		b.WriteString("\n")
	}

	if s := brief.Sentiment; s != nil {
		b.WriteString(fmt.Sprintf("📰 *News Sentiment:* %s (%s, %d articles)\n", s.Label, utils.FormatNumber(s.Score, 4), s.ArticleCount))
	}

	if len(brief.Unavailable) > 0 {
		b.WriteString(fmt.Sprintf("\n⚠️ Unavailable: %s\n", strings.Join(brief.Unavailable, ", ")))
	}

	out, _ := utils.Truncate(b.String(), MaxMessageLength)
	return out
}

func FormatErrorAlertMessage(time time.Time, errType string, errMsg string, data string) string {
	return fmt.Sprintf(`📛 [ERROR ALERT]
%s
🔧 %s
⚠️ %s

📄 Data: %s
`, utils.PrettyDate(time), errType, errMsg, data)
}
