// Package app wires the studio backend together and owns its lifecycle.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/smartjourney/studio/internal/api"
	"github.com/smartjourney/studio/internal/config"
	"github.com/smartjourney/studio/internal/genai"
	"github.com/smartjourney/studio/internal/lifecycle"
	"github.com/smartjourney/studio/internal/metrics"
	"github.com/smartjourney/studio/internal/remote"
	"github.com/smartjourney/studio/internal/store"
)

// App is the main application
type App struct {
	config    *config.Config
	store     *store.Store
	manager   *lifecycle.Manager
	apiServer *api.Server
	logger    *slog.Logger
}

// New creates a new application
func New(cfg *config.Config) (*App, error) {
	logger := setupLogger(cfg.Logging)

	var m *metrics.Metrics
	if cfg.Metrics.Enabled {
		m = metrics.New()
	}

	cache, err := store.NewBoltCache(cfg.Storage.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage: %w", err)
	}

	// The upstream campaign service is optional: without a base URL the
	// studio runs fully local.
	var rem store.Remote
	if cfg.Remote.BaseURL != "" {
		rem = remote.NewClient(cfg.Remote.BaseURL, cfg.Remote.APIKey, cfg.Remote.Timeout)
		logger.Info("remote sync enabled", "base_url", cfg.Remote.BaseURL, "strategy", cfg.Sync.Strategy)
	} else {
		logger.Info("remote sync disabled, running local-only")
	}

	var strategy store.Strategy = store.BestEffort{}
	if cfg.Sync.Strategy == "queued_retry" {
		strategy = store.QueuedRetry{
			Interval:   cfg.Sync.RetryInterval,
			MaxRetries: cfg.Sync.MaxRetries,
		}
	}

	st := store.New(store.Options{
		Cache:         cache,
		Remote:        rem,
		Strategy:      strategy,
		RemoteTimeout: cfg.Remote.Timeout,
		Logger:        logger,
		Metrics:       m,
	})

	generator := genai.NewGenerator(m)
	session := genai.NewSession(genai.NewRanker(m), cfg.Suggest.Latency)
	manager := lifecycle.New(st, generator, session, logger)

	apiServer := api.NewServer(st, manager, cfg, m, logger.With("component", "api"))

	return &App{
		config:    cfg,
		store:     st,
		manager:   manager,
		apiServer: apiServer,
		logger:    logger,
	}, nil
}

// Run starts the backend and waits for shutdown
func (a *App) Run(ctx context.Context) error {
	a.logger.Info("starting studio",
		"api_addr", a.config.API.ListenAddr,
		"storage", a.config.Storage.Path,
	)

	ctx, cancel := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	campaigns, err := a.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load campaign collection: %w", err)
	}
	a.logger.Info("campaign collection loaded", "count", len(campaigns))

	errCh := make(chan error, 1)
	go func() {
		if err := a.apiServer.ListenAndServe(); err != nil {
			errCh <- fmt.Errorf("api server: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("shutdown signal received")
	case err := <-errCh:
		a.logger.Error("server error", "error", err)
		cancel()
	}

	return a.Shutdown(context.Background())
}

// Shutdown gracefully shuts down all components
func (a *App) Shutdown(ctx context.Context) error {
	a.logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if err := a.apiServer.Shutdown(shutdownCtx); err != nil {
		a.logger.Error("api server shutdown error", "error", err)
	}

	// Waits for in-flight remote mirror tasks before closing the cache.
	if err := a.store.Close(); err != nil {
		a.logger.Error("store close error", "error", err)
	}

	a.logger.Info("shutdown complete")
	return nil
}

// setupLogger creates a logger based on configuration
func setupLogger(cfg config.LoggingConfig) *slog.Logger {
	var handler slog.Handler

	level := slog.LevelInfo
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	return slog.New(handler)
}
