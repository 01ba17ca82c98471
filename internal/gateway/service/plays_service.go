package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
	"sync"
	"time"

	"golang-trading-assistant/internal/entity"
	"golang-trading-assistant/internal/gateway/config"
	"golang-trading-assistant/internal/gateway/dto"
	"golang-trading-assistant/internal/gateway/repository"
	"golang-trading-assistant/internal/signal"
	"golang-trading-assistant/pkg/logger"
	"golang-trading-assistant/pkg/telegram"
	"golang-trading-assistant/pkg/utils"
)

// Alert rule confidences.
const (
	confidenceRSIExtreme = 85
	confidenceRSI        = 70
	confidenceMACD       = 65
	confidenceSMACross   = 60
	confidenceLargeMove  = 60

	highRiskMovePercent = 3.0
	mediumRiskStrength  = 60.0
)

// PlaysService defines the interface for rule-based plays and alerts over the watchlist.
type PlaysService interface {
	SmartPlays(ctx context.Context) (*dto.PlaysResponse, error)
	Alerts(ctx context.Context) (*dto.AlertsResponse, error)
	Broadcast(ctx context.Context) (*dto.BroadcastResponse, error)
}

type playsService struct {
	cfg        *config.Config
	log        *logger.Logger
	quotes     QuoteService
	technicals TechnicalService
	notifier   telegram.Notifier
	classifier *signal.Classifier
	now        func() time.Time
}

// NewPlaysService creates a new PlaysService. notifier may be nil when Telegram is not configured.
func NewPlaysService(cfg *config.Config, log *logger.Logger, quotes QuoteService, technicals TechnicalService, notifier telegram.Notifier) PlaysService {
	return &playsService{
		cfg:        cfg,
		log:        log,
		quotes:     quotes,
		technicals: technicals,
		notifier:   notifier,
		classifier: signal.NewClassifier(cfg.Signal),
		now:        time.Now,
	}
}

// watchItem is the evaluated state of one watchlist symbol.
type watchItem struct {
	symbol   string
	quote    *entity.Quote
	snapshot entity.TechnicalSnapshot
	result   entity.ClassifierResult
	strategy *entity.Strategy
}

// scan evaluates every watchlist symbol with bounded concurrency. Symbols that
// fail are logged and skipped; if all fail on a missing key that error is returned.
func (s *playsService) scan(ctx context.Context) ([]watchItem, error) {
	limit := s.cfg.Plays.Concurrency
	if limit <= 0 {
		limit = 1
	}
	sem := make(chan struct{}, limit)

	var (
		mu       sync.Mutex
		items    []watchItem
		firstErr error
		wg       sync.WaitGroup
	)
	for _, sym := range s.cfg.Plays.Watchlist {
		wg.Add(1)
		utils.GoSafe(ctx, s.log, func() {
			defer wg.Done()
			select {
			case sem <- struct{}{}:
			case <-ctx.Done():
				return
			}
			defer func() { <-sem }()

			item, err := s.evaluate(ctx, sym)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				s.log.WarnContext(ctx, "Skipping watchlist symbol", logger.StringField("symbol", sym), logger.ErrorField(err))
				if firstErr == nil || errors.Is(err, repository.ErrMissingAPIKey) {
					firstErr = err
				}
				return
			}
			items = append(items, *item)
		})
	}
	wg.Wait()

	if len(items) == 0 && ctx.Err() != nil {
		return nil, ctx.Err()
	}
	if len(items) == 0 && firstErr != nil && errors.Is(firstErr, repository.ErrMissingAPIKey) {
		return nil, firstErr
	}
	sort.Slice(items, func(i, j int) bool { return items[i].symbol < items[j].symbol })
	return items, nil
}

func (s *playsService) evaluate(ctx context.Context, symbol string) (*watchItem, error) {
	var (
		quote    *entity.Quote
		quoteErr error
		snapshot *entity.TechnicalSnapshot
		snapErr  error
	)
	fanOut(ctx, s.log, "plays.symbol", 0,
		func(ctx context.Context) { quote, quoteErr = s.quotes.GetQuote(ctx, symbol) },
		func(ctx context.Context) { snapshot, _, snapErr = s.technicals.Snapshot(ctx, symbol) },
	)
	if quoteErr != nil {
		return nil, quoteErr
	}
	if snapErr != nil {
		return nil, snapErr
	}

	item := &watchItem{symbol: quote.Symbol, quote: quote, snapshot: *snapshot}
	item.result = s.classifier.Classify(signal.Input{
		Price:         utils.FinitePointer(quote.Price),
		ChangePercent: utils.FinitePointer(quote.ChangePercent),
		Snapshot:      *snapshot,
	})
	if price, ok := referencePrice(quote, snapshot); ok {
		st := signal.SelectStrategy(item.result.Overall, price, item.result.Extreme, s.cfg.Signal)
		item.strategy = &st
	}
	return item, nil
}

// SmartPlays builds one play per symbol, strongest first.
func (s *playsService) SmartPlays(ctx context.Context) (*dto.PlaysResponse, error) {
	items, err := s.scan(ctx)
	if err != nil {
		return nil, err
	}

	plays := make([]entity.Play, 0, len(items))
	for _, it := range items {
		if p, ok := buildPlay(it); ok {
			plays = append(plays, p)
		}
	}
	SortPlays(plays)

	return &dto.PlaysResponse{
		Plays:       plays,
		Session:     signal.CurrentSession(s.now()),
		GeneratedAt: s.now().UTC(),
	}, nil
}

// Alerts runs the alert rules over the watchlist.
func (s *playsService) Alerts(ctx context.Context) (*dto.AlertsResponse, error) {
	items, err := s.scan(ctx)
	if err != nil {
		return nil, err
	}

	alerts := []entity.Alert{}
	for _, it := range items {
		alerts = append(alerts, buildAlerts(it, s.cfg.Signal, s.cfg.Alerts.MovePercent)...)
	}
	SortAlerts(alerts)

	return &dto.AlertsResponse{Alerts: alerts, GeneratedAt: s.now().UTC()}, nil
}

// Broadcast generates alerts and pushes them to Telegram.
func (s *playsService) Broadcast(ctx context.Context) (*dto.BroadcastResponse, error) {
	if s.notifier == nil {
		return nil, telegram.ErrNotConfigured
	}
	resp, err := s.Alerts(ctx)
	if err != nil {
		return nil, err
	}

	sent, err := telegram.SendAll(s.notifier, telegram.FormatAlertsForTelegram(resp.Alerts, resp.GeneratedAt))
	if err != nil {
		s.log.ErrorContext(ctx, "Failed to broadcast alerts", logger.IntField("sent", sent), logger.ErrorField(err))
		return nil, fmt.Errorf("%w: %v", ErrDeliveryFailed, err)
	}
	return &dto.BroadcastResponse{Alerts: len(resp.Alerts), MessagesSent: sent}, nil
}

// ErrDeliveryFailed means the messaging platform rejected a message.
var ErrDeliveryFailed = errors.New("failed to deliver message")

func buildPlay(it watchItem) (entity.Play, bool) {
	r := it.result
	if it.strategy == nil || r.TotalSignals == 0 {
		return entity.Play{}, false
	}
	confidence := int(math.Round(r.Strength))
	if r.Overall == entity.OverallNeutral && confidence == 0 {
		return entity.Play{}, false
	}

	return entity.Play{
		Title:      fmt.Sprintf("%s %s setup", it.symbol, strings.ToLower(string(r.Overall))),
		Ticker:     it.symbol,
		Strategy:   it.strategy.Name,
		Confidence: confidence,
		Reasoning:  playReasoning(r, it.strategy),
		RiskLevel:  playRisk(r, it.quote),
		Timeframe:  signal.Timeframe(it.strategy.Name),
	}, true
}

func playReasoning(r entity.ClassifierResult, st *entity.Strategy) string {
	parts := make([]string, 0, len(r.Signals)+2)
	for _, sig := range r.Signals {
		parts = append(parts, sig.Message)
	}
	if r.Momentum != nil {
		parts = append(parts, r.Momentum.Message)
	}
	reasoning := strings.Join(parts, "; ")
	if st.Caution != "" {
		reasoning += ". " + st.Caution
	}
	return reasoning
}

func playRisk(r entity.ClassifierResult, q *entity.Quote) entity.RiskLevel {
	switch {
	case r.Extreme != "" || (q != nil && math.Abs(q.ChangePercent) >= highRiskMovePercent):
		return entity.RiskHigh
	case r.Strength < mediumRiskStrength:
		return entity.RiskMedium
	default:
		return entity.RiskLow
	}
}

func buildAlerts(it watchItem, t signal.Thresholds, movePercent float64) []entity.Alert {
	var alerts []entity.Alert
	add := func(typ, title, strategy, reasoning string, confidence int, risk entity.RiskLevel) {
		alerts = append(alerts, entity.Alert{
			Type:       typ,
			Title:      title,
			Ticker:     it.symbol,
			Strategy:   strategy,
			Confidence: confidence,
			Reasoning:  reasoning,
			RiskLevel:  risk,
			Timeframe:  signal.Timeframe(strategy),
		})
	}

	if rsi, ok := utils.FinitePtr(it.snapshot.RSI); ok {
		switch {
		case rsi > t.RSIExtremeOverbought:
			add(entity.AlertRSIExtreme, "Extremely overbought", entity.StrategyBearPutSpread,
				fmt.Sprintf("RSI at %.1f is above %.0f; a pullback is likely", rsi, t.RSIExtremeOverbought), confidenceRSIExtreme, entity.RiskHigh)
		case rsi < t.RSIExtremeOversold:
			add(entity.AlertRSIExtreme, "Extremely oversold", entity.StrategyBullCallSpread,
				fmt.Sprintf("RSI at %.1f is below %.0f; a bounce is likely", rsi, t.RSIExtremeOversold), confidenceRSIExtreme, entity.RiskHigh)
		case rsi > t.RSIOverbought:
			add(entity.AlertRSI, "Overbought", entity.StrategyBearPutSpread,
				fmt.Sprintf("RSI at %.1f is above %.0f", rsi, t.RSIOverbought), confidenceRSI, entity.RiskMedium)
		case rsi < t.RSIOversold:
			add(entity.AlertRSI, "Oversold", entity.StrategyBullCallSpread,
				fmt.Sprintf("RSI at %.1f is below %.0f", rsi, t.RSIOversold), confidenceRSI, entity.RiskMedium)
		}
	}

	// A crossover on the far side of the zero line is an early reversal.
	if m := it.snapshot.MACD; m != nil && utils.IsFinite(m.MACD) && utils.IsFinite(m.Signal) {
		switch {
		case m.MACD > m.Signal && m.MACD < 0:
			add(entity.AlertMACDCrossover, "MACD bullish crossover", entity.StrategyBullCallSpread,
				fmt.Sprintf("MACD %.2f crossed above signal %.2f below zero", m.MACD, m.Signal), confidenceMACD, entity.RiskMedium)
		case m.MACD < m.Signal && m.MACD > 0:
			add(entity.AlertMACDCrossover, "MACD bearish crossover", entity.StrategyBearPutSpread,
				fmt.Sprintf("MACD %.2f crossed below signal %.2f above zero", m.MACD, m.Signal), confidenceMACD, entity.RiskMedium)
		}
	}

	if q := it.quote; q != nil && utils.IsFinite(q.ChangePercent) && movePercent > 0 && math.Abs(q.ChangePercent) >= movePercent {
		strategy, title := entity.StrategyBullCallSpread, "Large move up"
		if q.ChangePercent < 0 {
			strategy, title = entity.StrategyBearPutSpread, "Large move down"
		}
		confidence := confidenceLargeMove + int(math.Min(math.Abs(q.ChangePercent)*5, 30))
		add(entity.AlertLargeMove, title, strategy,
			fmt.Sprintf("Price moved %+.2f%% today", q.ChangePercent), confidence, entity.RiskHigh)
	}

	if q := it.quote; q != nil {
		if sma, ok := utils.FinitePtr(it.snapshot.SMA20); ok && q.PreviousClose > 0 {
			switch {
			case q.PreviousClose < sma && q.Price >= sma:
				add(entity.AlertSMACross, "Crossed above SMA20", entity.StrategyBullCallSpread,
					fmt.Sprintf("Price %.2f crossed above SMA20 %.2f", q.Price, sma), confidenceSMACross, entity.RiskMedium)
			case q.PreviousClose > sma && q.Price <= sma:
				add(entity.AlertSMACross, "Crossed below SMA20", entity.StrategyBearPutSpread,
					fmt.Sprintf("Price %.2f crossed below SMA20 %.2f", q.Price, sma), confidenceSMACross, entity.RiskMedium)
			}
		}
	}
	return alerts
}

// SortPlays orders by confidence descending, then ticker.
func SortPlays(plays []entity.Play) {
	sort.SliceStable(plays, func(i, j int) bool {
		if plays[i].Confidence != plays[j].Confidence {
			return plays[i].Confidence > plays[j].Confidence
		}
		return plays[i].Ticker < plays[j].Ticker
	})
}

// SortAlerts orders by confidence descending, then ticker and type.
func SortAlerts(alerts []entity.Alert) {
	sort.SliceStable(alerts, func(i, j int) bool {
		if alerts[i].Confidence != alerts[j].Confidence {
			return alerts[i].Confidence > alerts[j].Confidence
		}
		if alerts[i].Ticker != alerts[j].Ticker {
			return alerts[i].Ticker < alerts[j].Ticker
		}
		return alerts[i].Type < alerts[j].Type
	})
}
