package app

import (
	"context"
	"io"
	"log/slog"

	"github.com/vk/cellan/internal/ctxlog"
	"github.com/vk/cellan/internal/metrics"
	"github.com/vk/cellan/internal/model"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW    io.Writer
	logger  *slog.Logger
	loader  model.Loader
	metrics *metrics.Registry
	config  *Config
}

// NewApp is the constructor for the main application. Reports are written to
// outW and logs to logW, each App with its own isolated logger and metrics
// registry.
func NewApp(outW, logW io.Writer, cfg *Config, loader model.Loader) *App {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, logW)
	logger.Debug("Logger configured successfully.")

	return &App{
		outW:    outW,
		logger:  logger,
		loader:  loader,
		metrics: metrics.NewRegistry(),
		config:  cfg,
	}
}

// Metrics returns the application's metrics registry. This is primarily for
// testing.
func (a *App) Metrics() *metrics.Registry {
	return a.metrics
}

func (a *App) context(ctx context.Context) context.Context {
	return ctxlog.WithLogger(ctx, a.logger)
}
