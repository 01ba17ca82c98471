package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"golang-trading-assistant/internal/entity"
	"golang-trading-assistant/internal/gateway/config"
	"golang-trading-assistant/internal/gateway/dto"
	"golang-trading-assistant/internal/gateway/repository"
	"golang-trading-assistant/internal/signal"
	"golang-trading-assistant/pkg/logger"
	"golang-trading-assistant/pkg/utils"
)

// Indicator keys used in the errors map.
const (
	IndicatorRSI   = "rsi"
	IndicatorMACD  = "macd"
	IndicatorSMA20 = "sma20"
	IndicatorSMA50 = "sma50"
	IndicatorQuote = "quote"
)

// TechnicalService defines the interface for indicator snapshots and their classification.
type TechnicalService interface {
	Snapshot(ctx context.Context, symbol string) (*entity.TechnicalSnapshot, map[string]string, error)
	Technicals(ctx context.Context, symbol string) (*dto.TechnicalsResponse, error)
}

type technicalService struct {
	cfg          *config.Config
	log          *logger.Logger
	alphaVantage repository.AlphaVantageRepository
	quotes       QuoteService
	classifier   *signal.Classifier
}

// NewTechnicalService creates a new TechnicalService.
func NewTechnicalService(cfg *config.Config, log *logger.Logger, alphaVantage repository.AlphaVantageRepository, quotes QuoteService) TechnicalService {
	return &technicalService{
		cfg:          cfg,
		log:          log,
		alphaVantage: alphaVantage,
		quotes:       quotes,
		classifier:   signal.NewClassifier(cfg.Signal),
	}
}

// Snapshot fetches RSI(14), MACD(12/26/9), SMA20 and SMA50 concurrently. Failed
// indicators stay nil and are described in the returned map. The error is set
// only when every indicator failed.
func (s *technicalService) Snapshot(ctx context.Context, symbol string) (*entity.TechnicalSnapshot, map[string]string, error) {
	symbol, err := repository.NormalizeSymbol(symbol)
	if err != nil {
		return nil, nil, err
	}

	var (
		mu       sync.Mutex
		snapshot entity.TechnicalSnapshot
		failures = map[string]error{}
	)
	record := func(name string, err error) {
		mu.Lock()
		defer mu.Unlock()
		failures[name] = err
		s.log.WarnContext(ctx, "Indicator unavailable", logger.StringField("symbol", symbol), logger.StringField("indicator", name), logger.ErrorField(err))
	}

	fanOut(ctx, s.log, "technicals.fanout", s.cfg.Upstream.TechnicalTimeout,
		func(ctx context.Context) {
			v, err := s.alphaVantage.GetRSI(ctx, symbol, 14)
			if err != nil {
				record(IndicatorRSI, err)
				return
			}
			mu.Lock()
			snapshot.RSI = utils.FinitePointer(v)
			mu.Unlock()
		},
		func(ctx context.Context) {
			m, err := s.alphaVantage.GetMACD(ctx, symbol)
			if err != nil {
				record(IndicatorMACD, err)
				return
			}
			mu.Lock()
			snapshot.MACD = m
			mu.Unlock()
		},
		func(ctx context.Context) {
			v, err := s.alphaVantage.GetSMA(ctx, symbol, 20)
			if err != nil {
				record(IndicatorSMA20, err)
				return
			}
			mu.Lock()
			snapshot.SMA20 = utils.FinitePointer(v)
			mu.Unlock()
		},
		func(ctx context.Context) {
			v, err := s.alphaVantage.GetSMA(ctx, symbol, 50)
			if err != nil {
				record(IndicatorSMA50, err)
				return
			}
			mu.Lock()
			snapshot.SMA50 = utils.FinitePointer(v)
			mu.Unlock()
		},
	)

	messages := make(map[string]string, len(failures))
	for k, e := range failures {
		messages[k] = e.Error()
	}
	if snapshot.Empty() && len(failures) > 0 {
		return nil, messages, joinFailures(failures)
	}
	return &snapshot, messages, nil
}

// Technicals classifies the snapshot against the live quote. A missing quote
// only drops the price-based signals.
func (s *technicalService) Technicals(ctx context.Context, symbol string) (*dto.TechnicalsResponse, error) {
	symbol, err := repository.NormalizeSymbol(symbol)
	if err != nil {
		return nil, err
	}

	var (
		snapshot *entity.TechnicalSnapshot
		errs     map[string]string
		snapErr  error
		quote    *entity.Quote
		quoteErr error
	)
	fanOut(ctx, s.log, "technicals.request", 0,
		func(ctx context.Context) { snapshot, errs, snapErr = s.Snapshot(ctx, symbol) },
		func(ctx context.Context) { quote, quoteErr = s.quotes.GetQuote(ctx, symbol) },
	)
	if snapErr != nil {
		return nil, snapErr
	}

	in := signal.Input{Snapshot: *snapshot}
	resp := &dto.TechnicalsResponse{Symbol: symbol, Snapshot: *snapshot, Errors: errs}
	if quoteErr != nil {
		resp.Errors[IndicatorQuote] = quoteErr.Error()
	} else {
		resp.Price = utils.FinitePointer(quote.Price)
		in.Price = resp.Price
		in.ChangePercent = utils.FinitePointer(quote.ChangePercent)
	}
	if len(resp.Errors) == 0 {
		resp.Errors = nil
	}
	resp.Signals = s.classifier.Classify(in)
	return resp, nil
}

// joinFailures keeps every cause reachable by errors.Is in a stable order.
func joinFailures(failures map[string]error) error {
	keys := make([]string, 0, len(failures))
	for k := range failures {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	errs := make([]error, 0, len(keys))
	for _, k := range keys {
		errs = append(errs, fmt.Errorf("%s: %w", k, failures[k]))
	}
	return errors.Join(errs...)
}
