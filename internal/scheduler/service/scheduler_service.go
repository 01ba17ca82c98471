package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"golang-trading-assistant/internal/entity"
	"golang-trading-assistant/internal/scheduler/config"
	"golang-trading-assistant/internal/scheduler/strategy"
	"golang-trading-assistant/pkg/logger"
	"golang-trading-assistant/pkg/telegram"
	"golang-trading-assistant/pkg/trace"
)

// ErrSkipped is returned by RunJob when the current session is in the job's skip list.
var ErrSkipped = errors.New("job skipped for current session")

// SchedulerService defines the interface for the cron job scheduler.
type SchedulerService interface {
	Start(ctx context.Context) error
	RunJob(ctx context.Context, job config.Job) (string, error)
}

// NewSchedulerService creates a new scheduler service. notifier may be nil, in
// which case failures are only logged.
func NewSchedulerService(cfg *config.Config, log *logger.Logger, session func() entity.SessionInfo, notifier telegram.Notifier, strategies ...strategy.JobExecutionStrategy) SchedulerService {
	byType := make(map[string]strategy.JobExecutionStrategy, len(strategies))
	for _, s := range strategies {
		byType[s.GetType()] = s
	}
	return &schedulerService{
		cfg:        cfg,
		logger:     log,
		session:    session,
		notifier:   notifier,
		strategies: byType,
		cronParser: cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor),
		now:        time.Now,
	}
}

type schedulerService struct {
	cfg        *config.Config
	logger     *logger.Logger
	session    func() entity.SessionInfo
	notifier   telegram.Notifier
	strategies map[string]strategy.JobExecutionStrategy
	cronParser cron.Parser
	now        func() time.Time
}

// Start registers every enabled job and blocks until ctx is done. It fails
// fast on an unknown job type or an invalid cron expression.
func (s *schedulerService) Start(ctx context.Context) error {
	loc, err := time.LoadLocation(s.cfg.Scheduler.Timezone)
	if err != nil {
		return fmt.Errorf("invalid scheduler timezone %q: %w", s.cfg.Scheduler.Timezone, err)
	}

	cl := cronLogger{logger: s.logger}
	c := cron.New(
		cron.WithLocation(loc),
		cron.WithParser(s.cronParser),
		cron.WithLogger(cl),
		cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
	)

	registered, err := s.register(ctx, c)
	if err != nil {
		return err
	}

	if s.cfg.Scheduler.RunOnStart {
		for _, job := range s.cfg.Jobs {
			if !job.Disabled {
				s.run(ctx, job)
			}
		}
	}

	c.Start()
	s.logger.Info("Scheduler started", logger.IntField("jobs", registered), logger.StringField("timezone", loc.String()))

	<-ctx.Done()
	s.logger.Info("Scheduler service stopping")
	<-c.Stop().Done()
	return nil
}

func (s *schedulerService) register(ctx context.Context, c *cron.Cron) (int, error) {
	registered := 0
	for _, job := range s.cfg.Jobs {
		if job.Disabled {
			s.logger.Info("Job disabled", logger.StringField("job", job.Name))
			continue
		}
		if _, ok := s.strategies[job.Type]; !ok {
			return 0, fmt.Errorf("job %q: unknown job type %q", job.Name, job.Type)
		}
		job := job
		if _, err := c.AddFunc(job.Cron, func() { s.run(ctx, job) }); err != nil {
			return 0, fmt.Errorf("job %q: invalid cron expression %q: %w", job.Name, job.Cron, err)
		}
		s.logger.Info("Job scheduled", logger.StringField("job", job.Name), logger.StringField("type", job.Type), logger.StringField("cron", job.Cron))
		registered++
	}
	return registered, nil
}

// run executes one job and reports the outcome.
func (s *schedulerService) run(ctx context.Context, job config.Job) {
	if ctx.Err() != nil {
		return
	}
	start := s.now()
	result, err := s.RunJob(ctx, job)
	switch {
	case errors.Is(err, ErrSkipped):
		s.logger.Info("Job skipped", logger.StringField("job", job.Name), logger.StringField("session", string(s.session().Session)))
	case err != nil:
		s.logger.Error("Job failed", logger.StringField("job", job.Name), logger.StringField("type", job.Type), logger.ErrorField(err))
		s.reportError(job, err)
	default:
		s.logger.Info("Job completed", logger.StringField("job", job.Name), logger.StringField("result", result), logger.DurationField("duration", s.now().Sub(start)))
	}
}

// RunJob executes a job immediately, honoring its skip sessions and timeout.
// A panicking strategy is returned as an error.
func (s *schedulerService) RunJob(ctx context.Context, job config.Job) (result string, err error) {
	strat, ok := s.strategies[job.Type]
	if !ok {
		return "", fmt.Errorf("unknown job type %q", job.Type)
	}
	if skips(job, s.session().Session) {
		return "", ErrSkipped
	}

	timeout := job.Timeout
	if timeout <= 0 {
		timeout = s.cfg.Scheduler.DefaultTimeout
	}
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	ctx, span := trace.StartSpan(ctx, "scheduler."+job.Type)
	defer func() { trace.End(span, err) }()

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("job panicked: %v", r)
		}
	}()
	return strat.Execute(ctx, job)
}

func (s *schedulerService) reportError(job config.Job, jobErr error) {
	if s.notifier == nil {
		return
	}
	msg := telegram.FormatErrorAlertMessage(s.now(), job.Type, jobErr.Error(), job.Name)
	if err := s.notifier.SendMessage(msg); err != nil {
		s.logger.Error("Failed to send error alert", logger.StringField("job", job.Name), logger.ErrorField(err))
	}
}

func skips(job config.Job, current entity.Session) bool {
	for _, s := range job.SkipSessions {
		if entity.Session(s) == current {
			return true
		}
	}
	return false
}

// cronLogger adapts the zap logger to cron.Logger.
type cronLogger struct {
	logger *logger.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Sugar().Debugw("cron: "+msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.logger.Sugar().Errorw("cron: "+msg, append(keysAndValues, "error", err)...)
}
