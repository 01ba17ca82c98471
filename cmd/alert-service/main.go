package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"golang-trading-assistant/internal/gateway/app"
	"golang-trading-assistant/internal/scheduler/config"
	"golang-trading-assistant/internal/scheduler/service"
	"golang-trading-assistant/internal/scheduler/strategy"
	"golang-trading-assistant/pkg/logger"
	"golang-trading-assistant/pkg/metrics"
	"golang-trading-assistant/pkg/trace"
)

var (
	configPath string
	jobName    string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Starts the alert scheduler",
	Run:   runServe,
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Runs one configured job immediately and exits",
	Run:   runOnce,
}

type services struct {
	cfg       *config.Config
	logger    *logger.Logger
	gateway   *app.App
	scheduler service.SchedulerService
}

func setup(ctx context.Context) *services {
	// Load configuration
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	appLogger, err := logger.New(cfg.Logger.Level, cfg.Logger.Encoding)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	if err := trace.Init(trace.Config{
		Enabled:        cfg.Tracing.Enabled,
		ServiceName:    cfg.Tracing.ServiceName,
		ServiceVersion: cfg.App.Version,
	}); err != nil {
		appLogger.Fatal("Failed to initialize tracing", logger.ErrorField(err))
	}

	gateway := app.New(ctx, &cfg.Config, appLogger, metrics.New("alerts"))
	if gateway.Notifier == nil {
		appLogger.Warn("Telegram is not configured, jobs will fail until TELEGRAM_BOT_TOKEN and TELEGRAM_CHAT_ID are set")
	}

	// Initialize Strategies
	strategies := []strategy.JobExecutionStrategy{
		strategy.NewAlertsBroadcastStrategy(appLogger, gateway.Services.Plays),
		strategy.NewPlaysDigestStrategy(appLogger, gateway.Services.Plays, gateway.Notifier),
		strategy.NewMarketBriefStrategy(appLogger, gateway.Services.Market, gateway.Notifier),
	}

	schedulerSvc := service.NewSchedulerService(cfg, appLogger, gateway.Services.Market.Session, gateway.Notifier, strategies...)
	return &services{cfg: cfg, logger: appLogger, gateway: gateway, scheduler: schedulerSvc}
}

func (r *services) close() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := trace.Shutdown(ctx); err != nil {
		r.logger.Error("Failed to flush traces", logger.ErrorField(err))
	}
	_ = r.gateway.Close()
	_ = r.logger.Sync()
}

func runServe(cmd *cobra.Command, args []string) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rt := setup(ctx)
	defer rt.close()

	rt.logger.Info("Starting Alert Service", logger.Field("name", rt.cfg.App.Name), logger.IntField("jobs", len(rt.cfg.Jobs)))
	if err := rt.scheduler.Start(ctx); err != nil {
		rt.logger.Error("Scheduler failed", logger.ErrorField(err))
		return
	}
	rt.logger.Info("Alert service exiting")
}

func runOnce(cmd *cobra.Command, args []string) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rt := setup(ctx)
	defer rt.close()

	for _, job := range rt.cfg.Jobs {
		if job.Name != jobName {
			continue
		}
		result, err := rt.scheduler.RunJob(ctx, job)
		if err != nil {
			rt.logger.Error("Job failed", logger.StringField("job", job.Name), logger.ErrorField(err))
			return
		}
		rt.logger.Info("Job completed", logger.StringField("job", job.Name), logger.StringField("result", result))
		return
	}
	rt.logger.Error("Job not found", logger.StringField("job", jobName))
}

func main() {
	rootCmd := &cobra.Command{Use: "alert-service"}
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "configs/config-alert.yaml", "Path to the configuration file")
	runCmd.Flags().StringVarP(&jobName, "job", "j", "", "Name of the job to run")
	_ = runCmd.MarkFlagRequired("job")

	rootCmd.AddCommand(serveCmd, runCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error executing alert-service CLI: %s\n", err)
		os.Exit(1)
	}
}
