package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"golang-trading-assistant/internal/gateway/app"
	"golang-trading-assistant/internal/gateway/config"
	delivery "golang-trading-assistant/internal/gateway/delivery/http"
	_ "golang-trading-assistant/internal/gateway/docs"
	"golang-trading-assistant/pkg/logger"
	"golang-trading-assistant/pkg/metrics"
	"golang-trading-assistant/pkg/trace"
)

var configPath string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Starts the gateway HTTP API",
	Run:   runServe,
}

func runServe(cmd *cobra.Command, args []string) {
	// Create a context that is canceled on interrupt signals
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

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
	defer func() { _ = appLogger.Sync() }()

	appLogger.Info("Starting Gateway Service", logger.Field("name", cfg.App.Name), logger.Field("version", cfg.App.Version))

	if err := trace.Init(trace.Config{
		Enabled:        cfg.Tracing.Enabled,
		ServiceName:    cfg.Tracing.ServiceName,
		ServiceVersion: cfg.App.Version,
	}); err != nil {
		appLogger.Fatal("Failed to initialize tracing", logger.ErrorField(err))
	}

	recorder := metrics.New("gateway")
	gateway := app.New(ctx, cfg, appLogger, recorder)
	defer func() { _ = gateway.Close() }()

	e := delivery.NewRouter(cfg.App.Version, appLogger, recorder, gateway.Services)

	// Start server
	go func() {
		addr := fmt.Sprintf("%s:%d", cfg.API.Host, cfg.API.Port)
		appLogger.Info("HTTP server starting", logger.Field("address", addr))
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			appLogger.Error("HTTP server failed to start", logger.ErrorField(err))
			stop() // trigger shutdown
		}
	}()

	// Wait for shutdown signal
	<-ctx.Done()

	appLogger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("Server forced to shutdown", logger.ErrorField(err))
	}
	if err := trace.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("Failed to flush traces", logger.ErrorField(err))
	}

	appLogger.Info("Server exiting")
}

// @title Trading Assistant Gateway API
// @version 1.0
// @description Stateless gateway that reshapes market data, news sentiment and LLM providers for the trading assistant client.
// @BasePath /api
func main() {
	rootCmd := &cobra.Command{Use: "gateway-service"}

	serveCmd.Flags().StringVarP(&configPath, "config", "c", "configs/config-gateway.yaml", "Path to the configuration file")

	rootCmd.AddCommand(serveCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error executing gateway-service CLI: %s\n", err)
		os.Exit(1)
	}
}
