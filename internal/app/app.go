package app

import (
	"context"
	"io"
	"log/slog"
	"net/http"

	"github.com/specialistvlad/recoseq/internal/config"
	"github.com/specialistvlad/recoseq/internal/ctxlog"
	"github.com/specialistvlad/recoseq/internal/handlers"
	"github.com/specialistvlad/recoseq/internal/registry"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW     io.Writer
	logger   *slog.Logger
	config   *Config
	loader   config.Loader
	handlers *handlers.Handlers

	httpServer *http.Server
}

// NewApp is the constructor for the main application. Results are written
// to outW and logs to logW. When no modules are given the core modules are
// installed.
func NewApp(outW, logW io.Writer, cfg *Config, loader config.Loader, modules ...handlers.Module) *App {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, logW)
	logger.Debug("Logger configured successfully.")

	if len(modules) == 0 {
		modules = coreModules(outW)
	}
	h := handlers.New()
	h.Install(modules...)
	logger.Debug("All Go modules registered.", "count", len(modules), "types", h.Types())

	return &App{
		outW:     outW,
		logger:   logger,
		config:   cfg,
		loader:   loader,
		handlers: h,
	}
}

// Handlers returns the application's handler registry. This is primarily for testing.
func (a *App) Handlers() *handlers.Handlers {
	return a.handlers
}

// Load reads the configured paths into a namespace.
func (a *App) Load(ctx context.Context) (*registry.Namespace, error) {
	ctx = a.withLogger(ctx)
	ns, err := a.loader.Load(ctx, a.config.Paths...)
	if err != nil {
		return nil, err
	}
	a.logger.Debug("Configuration loaded.", "definitions", ns.Len())
	return ns, nil
}

// withLogger returns ctx carrying the app's logger.
func (a *App) withLogger(ctx context.Context) context.Context {
	return ctxlog.WithLogger(ctx, a.logger)
}
