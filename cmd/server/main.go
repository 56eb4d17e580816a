package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/doomlabs/apocalypse-meter/internal/cache"
	"github.com/doomlabs/apocalypse-meter/internal/config"
	"github.com/doomlabs/apocalypse-meter/internal/evaluation"
	"github.com/doomlabs/apocalypse-meter/internal/kv"
	"github.com/doomlabs/apocalypse-meter/internal/monitoring"
	"github.com/doomlabs/apocalypse-meter/internal/ratelimit"
	"github.com/doomlabs/apocalypse-meter/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := monitoring.NewLogger(parseLogLevel(cfg.LogLevel))
	logger.SetDefault()

	// Redis is optional; everything degrades to in-process fallbacks.
	redisClient, err := kv.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		slog.Warn("Redis unavailable, using in-memory fallbacks", "error", err)
	}

	var resultStore store.ResultStore
	if redisClient != nil && redisClient.IsEnabled() {
		resultStore, err = store.NewRedisStore(redisClient, cfg.ResultTTL)
		if err != nil {
			slog.Error("Failed to initialize result store", "error", err)
			os.Exit(1)
		}
		slog.Info("Redis result store initialized", "result_ttl", cfg.ResultTTL)
	} else {
		resultStore = store.NewMemoryStore()
		slog.Warn("Using in-memory result store, results will not survive restarts")
	}

	var respCache *cache.ResponseCache
	if cfg.CacheEnabled {
		respCache = cache.NewResponseCache(cfg.CacheTTL)
	}

	mode := evaluation.ModeLive
	if cfg.EffectiveMockMode() {
		mode = evaluation.ModeMock
		if cfg.OpenAIAPIKey == "" && !cfg.MockMode {
			slog.Warn("No API key configured, forcing mock mode")
		}
	}

	evalClient := evaluation.NewClient(evaluation.Config{
		Mode:      mode,
		MockDelay: cfg.MockDelay,
		Cache:     respCache,
		Completer: evaluation.NewOpenAIClient(evaluation.OpenAIConfig{
			APIKey:  cfg.OpenAIAPIKey,
			BaseURL: cfg.OpenAIBaseURL,
			Model:   cfg.OpenAIModel,
			Timeout: cfg.OpenAITimeout,
		}),
	})

	limiterConfig := ratelimit.DefaultConfig()
	limiterConfig.EvaluatePerMin = cfg.EvaluateRateLimit
	limiter := ratelimit.NewRateLimiter(redisClient, limiterConfig)

	r := setupRouter(deps{
		cfg:         cfg,
		logger:      logger,
		evalClient:  evalClient,
		respCache:   respCache,
		resultStore: resultStore,
		limiter:     limiter,
		redisClient: redisClient,
	})

	srv := &http.Server{
		Addr:    cfg.Addr,
		Handler: r,
	}

	go func() {
		slog.Info("Starting server", "addr", cfg.Addr, "mode", mode.String())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
		os.Exit(1)
	}

	if redisClient != nil && redisClient.IsEnabled() {
		if err := redisClient.Close(); err != nil {
			slog.Error("Failed to close Redis connection", "error", err)
		}
	}

	slog.Info("Server exited")
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
