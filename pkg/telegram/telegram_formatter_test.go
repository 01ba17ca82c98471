package telegram

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"golang-trading-assistant/internal/entity"
)

type fakeNotifier struct {
	sent   []string
	failAt int
}

func (f *fakeNotifier) SendMessage(text string) error {
	if f.failAt > 0 && len(f.sent)+1 == f.failAt {
		return errors.New("boom")
	}
	f.sent = append(f.sent, text)
	return nil
}

func TestFormatAlertsSplitsLongMessages(t *testing.T) {
	alerts := make([]entity.Alert, 0, 200)
	for i := 0; i < 200; i++ {
		alerts = append(alerts, entity.Alert{
			Type:       entity.AlertRSI,
			Title:      "RSI Overbought",
			Ticker:     fmt.Sprintf("T%d", i),
			Confidence: 70,
			Reasoning:  strings.Repeat("reason ", 10),
			RiskLevel:  entity.RiskMedium,
		})
	}

	msgs := FormatAlertsForTelegram(alerts, time.Date(2024, 7, 1, 14, 0, 0, 0, time.UTC))
	require.Greater(t, len(msgs), 1)
	for _, m := range msgs {
		assert.LessOrEqual(t, len(m), MaxMessageLength)
	}
	assert.Contains(t, msgs[0], "*Market Alerts*")
	assert.Contains(t, msgs[1], "Market Alerts (continued) Part 2")

	joined := strings.Join(msgs, "")
	for _, a := range alerts {
		assert.Contains(t, joined, "`"+a.Ticker+"`")
	}
}

func TestFormatAlertsEmpty(t *testing.T) {
	msgs := FormatAlertsForTelegram(nil, time.Now())
	require.Len(t, msgs, 1)
	assert.Contains(t, msgs[0], "No alerts triggered.")
}

func TestFormatPlays(t *testing.T) {
	msgs := FormatPlaysForTelegram([]entity.Play{{
		Title:      "Bullish setup",
		Ticker:     "AAPL",
		Strategy:   "Bull Call Spread: buy the $105 call, sell the $115 call",
		Confidence: 67,
		Reasoning:  "MACD bullish crossover",
		RiskLevel:  entity.RiskLow,
		Timeframe:  "1-2 weeks",
	}}, entity.SessionInfo{Session: entity.SessionMarketOpen, EasternTime: "2024-07-01 10:00:00 EDT"})

	require.Len(t, msgs, 1)
	assert.Contains(t, msgs[0], "1. *Bullish setup* `AAPL`")
	assert.Contains(t, msgs[0], "67%")
	assert.Contains(t, msgs[0], "Market Open")
}

func TestFormatMarketBrief(t *testing.T) {
	msg := FormatMarketBriefForTelegram(entity.MarketBrief{
		Session:     entity.SessionInfo{Session: entity.SessionPreMarket, EasternTime: "2024-07-01 08:00:00 EDT"},
		Indices:     []entity.Quote{{Symbol: "SPY", Price: 500, ChangePercent: -0.5}},
		Volatility:  &entity.Quote{Symbol: "VIXY", Price: 12.3, ChangePercent: 1.2},
		Economic:    []entity.EconomicIndicator{{Name: "cpi", Value: 313.5, Date: "2024-05-01", Unit: "index 1982-1984=100"}},
		Sentiment:   &entity.SentimentSnapshot{Label: entity.SentimentNeutral, Score: 0.05, ArticleCount: 10},
		Unavailable: []string{"realGdp"},
	})

	assert.Contains(t, msg, "🔴 `SPY` $500.00 (-0.50%)")
	assert.Contains(t, msg, "*Volatility* `VIXY`")
	assert.Contains(t, msg, "cpi: 313.50")
	assert.Contains(t, msg, "Unavailable: realGdp")
}

func TestSendAll(t *testing.T) {
	n := &fakeNotifier{}
	sent, err := SendAll(n, []string{"a", "b"})
	require.NoError(t, err)
	assert.Equal(t, 2, sent)

	n = &fakeNotifier{failAt: 2}
	sent, err = SendAll(n, []string{"a", "b", "c"})
	require.Error(t, err)
	assert.Equal(t, 1, sent)
}

func TestNewClientRequiresConfig(t *testing.T) {
	_, err := NewClient("", 1)
	assert.ErrorIs(t, err, ErrNotConfigured)
	_, err = NewClient("token", 0)
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestFormatErrorAlertMessage(t *testing.T) {
	msg := FormatErrorAlertMessage(time.Date(2024, 7, 1, 14, 0, 0, 0, time.UTC), "market_brief", "timeout", "{}")
	assert.Contains(t, msg, "[ERROR ALERT]")
	assert.Contains(t, msg, "🔧 market_brief")
	assert.Contains(t, msg, "Mon, 01 Jul 2024 10:00 EDT")
}
