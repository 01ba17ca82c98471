package service

import (
	"context"
	"errors"
	"time"

	"golang-trading-assistant/internal/entity"
	"golang-trading-assistant/internal/gateway/config"
	"golang-trading-assistant/internal/gateway/dto"
	"golang-trading-assistant/internal/gateway/repository"
	"golang-trading-assistant/internal/signal"
	"golang-trading-assistant/pkg/logger"
	"golang-trading-assistant/pkg/utils"
)

// SignalService defines the interface for the combined smart signal and its text report.
type SignalService interface {
	Signal(ctx context.Context, symbol string) (*dto.SignalResponse, error)
	Report(ctx context.Context, symbol string) (*dto.ReportResponse, error)
}

type signalService struct {
	cfg        *config.Config
	log        *logger.Logger
	quotes     QuoteService
	technicals TechnicalService
	news       NewsService
	classifier *signal.Classifier
	now        func() time.Time
}

// NewSignalService creates a new SignalService.
func NewSignalService(cfg *config.Config, log *logger.Logger, quotes QuoteService, technicals TechnicalService, news NewsService) SignalService {
	return &signalService{
		cfg:        cfg,
		log:        log,
		quotes:     quotes,
		technicals: technicals,
		news:       news,
		classifier: signal.NewClassifier(cfg.Signal),
		now:        time.Now,
	}
}

// symbolView is everything gathered about one symbol.
type symbolView struct {
	resp      dto.SignalResponse
	headlines []string
}

func (s *signalService) collect(ctx context.Context, symbol string, withHeadlines bool) (*symbolView, error) {
	symbol, err := repository.NormalizeSymbol(symbol)
	if err != nil {
		return nil, err
	}

	var (
		quote     *entity.Quote
		quoteErr  error
		snapshot  *entity.TechnicalSnapshot
		snapErr   error
		sentiment *entity.SentimentSnapshot
		sentErr   error
		headlines []entity.Headline
	)
	tasks := []func(context.Context){
		func(ctx context.Context) { quote, quoteErr = s.quotes.GetQuote(ctx, symbol) },
		func(ctx context.Context) { snapshot, _, snapErr = s.technicals.Snapshot(ctx, symbol) },
		func(ctx context.Context) { sentiment, sentErr = s.news.Sentiment(ctx, NewsQuery{Symbol: symbol}) },
	}
	if withHeadlines {
		tasks = append(tasks, func(ctx context.Context) {
			var err error
			if headlines, err = s.news.Headlines(ctx, []string{symbol}, 5); err != nil {
				s.log.WarnContext(ctx, "Headlines unavailable for report", logger.StringField("symbol", symbol), logger.ErrorField(err))
			}
		})
	}
	fanOut(ctx, s.log, "signal.fanout", 0, tasks...)

	// A missing quote key is a configuration error, not a degraded source.
	if quoteErr != nil && errors.Is(quoteErr, repository.ErrMissingAPIKey) {
		return nil, quoteErr
	}

	v := &symbolView{resp: dto.SignalResponse{
		Symbol:     symbol,
		Quote:      derefResult(quote, quoteErr),
		Technicals: derefResult(snapshot, snapErr),
		Sentiment:  derefResult(sentiment, sentErr),
		Session:    signal.CurrentSession(s.now()),
	}}
	for _, h := range headlines {
		v.headlines = append(v.headlines, h.Title)
	}

	in := signal.Input{}
	if snapshot != nil {
		in.Snapshot = *snapshot
	}
	if quote != nil {
		in.Price = utils.FinitePointer(quote.Price)
		in.ChangePercent = utils.FinitePointer(quote.ChangePercent)
	}
	v.resp.Classification = s.classifier.Classify(in)

	if price, ok := referencePrice(quote, snapshot); ok {
		st := signal.SelectStrategy(v.resp.Classification.Overall, price, v.resp.Classification.Extreme, s.cfg.Signal)
		v.resp.Strategy = &st
	}
	return v, nil
}

// Signal returns quote, technicals, sentiment, classification and strategy for symbol.
func (s *signalService) Signal(ctx context.Context, symbol string) (*dto.SignalResponse, error) {
	v, err := s.collect(ctx, symbol, false)
	if err != nil {
		return nil, err
	}
	return &v.resp, nil
}

// Report renders the narrative text block for symbol.
func (s *signalService) Report(ctx context.Context, symbol string) (*dto.ReportResponse, error) {
	v, err := s.collect(ctx, symbol, true)
	if err != nil {
		return nil, err
	}
	return &dto.ReportResponse{Symbol: v.resp.Symbol, Report: formatView(v)}, nil
}

func formatView(v *symbolView) string {
	r := v.resp
	return signal.FormatReport(signal.ReportInput{
		Symbol:         r.Symbol,
		Quote:          r.Quote.Data,
		Snapshot:       r.Technicals.Data,
		Classification: &r.Classification,
		Sentiment:      r.Sentiment.Data,
		Strategy:       r.Strategy,
		Session:        &r.Session,
		Headlines:      v.headlines,
	})
}

// referencePrice is the live price, falling back to the nearest moving average.
func referencePrice(q *entity.Quote, snap *entity.TechnicalSnapshot) (float64, bool) {
	if q != nil && utils.IsFinite(q.Price) && q.Price > 0 {
		return q.Price, true
	}
	if snap != nil {
		if v, ok := utils.FinitePtr(snap.SMA20); ok {
			return v, true
		}
		if v, ok := utils.FinitePtr(snap.SMA50); ok {
			return v, true
		}
	}
	return 0, false
}

func derefResult[T any](v *T, err error) dto.SourceResult[T] {
	if err != nil {
		return dto.Failed[T](err)
	}
	if v == nil {
		return dto.SourceResult[T]{}
	}
	return dto.Ok(*v)
}
