package strategy

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"golang-trading-assistant/internal/entity"
	"golang-trading-assistant/internal/gateway/dto"
	"golang-trading-assistant/internal/gateway/service"
	"golang-trading-assistant/internal/scheduler/config"
	"golang-trading-assistant/pkg/logger"
	"golang-trading-assistant/pkg/telegram"
)

type fakePlays struct {
	plays     []entity.Play
	err       error
	broadcast *dto.BroadcastResponse
}

func (f *fakePlays) SmartPlays(context.Context) (*dto.PlaysResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &dto.PlaysResponse{Plays: f.plays, Session: entity.SessionInfo{Session: entity.SessionMarketOpen}}, nil
}

func (f *fakePlays) Alerts(context.Context) (*dto.AlertsResponse, error) {
	return &dto.AlertsResponse{}, f.err
}

func (f *fakePlays) Broadcast(context.Context) (*dto.BroadcastResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.broadcast, nil
}

type fakeMarket struct{ brief entity.MarketBrief }

func (f *fakeMarket) Overview(context.Context) *dto.MarketOverviewResponse { return nil }
func (f *fakeMarket) Session() entity.SessionInfo                           { return f.brief.Session }
func (f *fakeMarket) Brief(context.Context) entity.MarketBrief              { return f.brief }

type fakeNotifier struct {
	messages []string
	err      error
}

func (f *fakeNotifier) SendMessage(text string) error {
	if f.err != nil {
		return f.err
	}
	f.messages = append(f.messages, text)
	return nil
}

var job = config.Job{Name: "test-job"}

func TestAlertsBroadcastStrategy(t *testing.T) {
	plays := &fakePlays{broadcast: &dto.BroadcastResponse{Alerts: 3, MessagesSent: 1}}
	s := NewAlertsBroadcastStrategy(logger.NewNop(), plays)

	assert.Equal(t, "alerts_broadcast", s.GetType())
	out, err := s.Execute(context.Background(), job)
	require.NoError(t, err)
	assert.Equal(t, "broadcast 3 alerts in 1 messages", out)

	plays.err = telegram.ErrNotConfigured
	_, err = s.Execute(context.Background(), job)
	assert.ErrorIs(t, err, telegram.ErrNotConfigured)
}

func TestPlaysDigestStrategy(t *testing.T) {
	notifier := &fakeNotifier{}
	plays := &fakePlays{plays: []entity.Play{{Title: "Bullish momentum", Ticker: "AAPL", Confidence: 70}}}
	s := NewPlaysDigestStrategy(logger.NewNop(), plays, notifier)

	assert.Equal(t, "plays_digest", s.GetType())
	out, err := s.Execute(context.Background(), job)
	require.NoError(t, err)
	assert.Equal(t, "sent 1 plays in 1 messages", out)
	require.Len(t, notifier.messages, 1)
	assert.Contains(t, notifier.messages[0], "AAPL")
}

func TestPlaysDigestStrategy_NothingToSend(t *testing.T) {
	notifier := &fakeNotifier{}
	s := NewPlaysDigestStrategy(logger.NewNop(), &fakePlays{}, notifier)

	out, err := s.Execute(context.Background(), job)
	require.NoError(t, err)
	assert.Equal(t, "no plays", out)
	assert.Empty(t, notifier.messages)
}

func TestPlaysDigestStrategy_Errors(t *testing.T) {
	s := NewPlaysDigestStrategy(logger.NewNop(), &fakePlays{}, nil)
	_, err := s.Execute(context.Background(), job)
	assert.ErrorIs(t, err, telegram.ErrNotConfigured)

	notifier := &fakeNotifier{err: errors.New("chat not found")}
	plays := &fakePlays{plays: []entity.Play{{Ticker: "AAPL"}}}
	s = NewPlaysDigestStrategy(logger.NewNop(), plays, notifier)
	_, err = s.Execute(context.Background(), job)
	assert.ErrorIs(t, err, service.ErrDeliveryFailed)
}

func TestMarketBriefStrategy(t *testing.T) {
	notifier := &fakeNotifier{}
	market := &fakeMarket{brief: entity.MarketBrief{
		Session:     entity.SessionInfo{Session: entity.SessionPreMarket, EasternTime: "08:00"},
		Indices:     []entity.Quote{{Symbol: "SPY", Price: 500, ChangePercent: 0.5}},
		Unavailable: []string{"cpi"},
	}}
	s := NewMarketBriefStrategy(logger.NewNop(), market, notifier)

	assert.Equal(t, "market_brief", s.GetType())
	out, err := s.Execute(context.Background(), job)
	require.NoError(t, err)
	assert.Equal(t, "sent market brief with 1 indices", out)
	require.Len(t, notifier.messages, 1)
	assert.Contains(t, notifier.messages[0], "SPY")
	assert.Contains(t, notifier.messages[0], "Unavailable: cpi")
}

func TestMarketBriefStrategy_NoData(t *testing.T) {
	notifier := &fakeNotifier{}
	market := &fakeMarket{brief: entity.MarketBrief{Unavailable: []string{"SPY", "cpi"}}}
	s := NewMarketBriefStrategy(logger.NewNop(), market, notifier)

	_, err := s.Execute(context.Background(), job)
	assert.Error(t, err)
	assert.Empty(t, notifier.messages)
}
