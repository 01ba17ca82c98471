package app

import (
	"context"
	"errors"

	"google.golang.org/genai"

	"golang-trading-assistant/internal/gateway/config"
	delivery "golang-trading-assistant/internal/gateway/delivery/http"
	"golang-trading-assistant/internal/gateway/repository"
	"golang-trading-assistant/internal/gateway/service"
	"golang-trading-assistant/pkg/cache"
	"golang-trading-assistant/pkg/common"
	"golang-trading-assistant/pkg/logger"
	"golang-trading-assistant/pkg/metrics"
	"golang-trading-assistant/pkg/redis"
	"golang-trading-assistant/pkg/telegram"
)

// App holds the wired gateway services shared by the HTTP API and the alert scheduler.
type App struct {
	Services delivery.Services
	Notifier telegram.Notifier
	Recorder *metrics.Recorder

	redisClient *redis.Client
}

// New builds every repository and service from cfg. Optional integrations
// (Redis, Gemini SDK, Telegram) are skipped with a warning when unconfigured;
// the endpoints that need them then fail with a configuration error.
func New(ctx context.Context, cfg *config.Config, log *logger.Logger, rec *metrics.Recorder) *App {
	a := &App{Recorder: rec}

	// Response cache
	if cfg.Redis.Enabled {
		redisClient, err := redis.NewClient(redis.Config{
			Host:     cfg.Redis.Host,
			Port:     cfg.Redis.Port,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			PoolSize: cfg.Redis.PoolSize,
		})
		if err != nil {
			log.Warn("Redis unavailable, using in-memory cache only", logger.ErrorField(err))
		} else {
			a.redisClient = redisClient
		}
	}
	var respCache *cache.Layered
	if a.redisClient != nil {
		respCache = cache.NewLayered(cfg.Upstream.CacheTTL, a.redisClient.Client, common.CacheKeyPrefix)
	} else {
		respCache = cache.NewLayered(cfg.Upstream.CacheTTL, nil, common.CacheKeyPrefix)
	}

	// Gemini SDK client, used for token counting
	var genAiClient *genai.Client
	if cfg.Gemini.APIKey != "" {
		c, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  cfg.Gemini.APIKey,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			log.Warn("Failed to initialize Gemini AI client, token counting disabled", logger.ErrorField(err))
		} else {
			genAiClient = c
		}
	}

	notifier, err := telegram.NewClient(cfg.Telegram.BotToken, cfg.Telegram.ChatID)
	switch {
	case errors.Is(err, telegram.ErrNotConfigured):
		log.Warn("Telegram is not configured, broadcasts are disabled")
	case err != nil:
		log.Warn("Failed to initialize Telegram notifier, broadcasts are disabled", logger.ErrorField(err))
	default:
		a.Notifier = notifier
	}

	// Initialize repositories
	finnhubRepo := repository.NewFinnhubRepository(cfg, log, rec, respCache)
	alphaVantageRepo := repository.NewAlphaVantageRepository(cfg, log, rec, respCache)
	rssRepo := repository.NewYahooRSSRepository(cfg, log, rec, respCache)
	articleRepo := repository.NewArticleRepository(cfg, log, rec)
	chatProviders := repository.NewChatProviders(
		repository.NewOpenAIRepository(cfg, log, rec),
		repository.NewGroqRepository(cfg, log, rec),
		repository.NewClaudeRepository(cfg, log, rec),
		repository.NewGeminiRepository(cfg, log, rec, genAiClient),
	)

	// Initialize services
	quoteSvc := service.NewQuoteService(cfg, log, finnhubRepo, alphaVantageRepo)
	technicalSvc := service.NewTechnicalService(cfg, log, alphaVantageRepo, quoteSvc)
	newsSvc := service.NewNewsService(cfg, log, alphaVantageRepo, rssRepo, articleRepo)
	signalSvc := service.NewSignalService(cfg, log, quoteSvc, technicalSvc, newsSvc)
	marketSvc := service.NewMarketService(cfg, log, quoteSvc, newsSvc, alphaVantageRepo)
	playsSvc := service.NewPlaysService(cfg, log, quoteSvc, technicalSvc, a.Notifier)
	chatSvc := service.NewChatService(cfg, log, chatProviders, signalSvc, playsSvc)

	a.Services = delivery.Services{
		Quotes:     quoteSvc,
		Technicals: technicalSvc,
		Signals:    signalSvc,
		News:       newsSvc,
		Market:     marketSvc,
		Plays:      playsSvc,
		Chat:       chatSvc,
	}
	return a
}

// Close releases the Redis connection, if any.
func (a *App) Close() error {
	if a.redisClient != nil {
		return a.redisClient.Close()
	}
	return nil
}
