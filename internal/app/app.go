// v4
// internal/app/app.go
package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"log/slog"

	"pewpewworld/statsboard/internal/config"
	httpserver "pewpewworld/statsboard/internal/http"
	"pewpewworld/statsboard/internal/metrics"
)

// Application wires configuration, logging, routing, metrics and graceful
// shutdown for the stats board tools service.
type Application struct {
	cfg     config.Config
	logger  *slog.Logger
	logFile *os.File
	server  *http.Server
	health  *httpserver.HealthState
	metrics *metrics.Metrics
}

// New prepares a fully wired service instance. It validates basic
// settings, ensures the log directory exists and builds the router with
// its middleware chain.
func New(cfg config.Config) (*Application, error) {
	if strings.TrimSpace(cfg.ListenAddress) == "" {
		return nil, errors.New("listen address cannot be empty")
	}
	if strings.TrimSpace(cfg.LogFilePath) == "" {
		return nil, errors.New("log file path cannot be empty")
	}
	logPath := filepath.Clean(cfg.LogFilePath)
	if err := os.MkdirAll(filepath.Dir(logPath), 0o755); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}
	lf, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}

	logger := newLogger(lf)
	health := httpserver.NewHealthState()
	m := metrics.New()

	router := httpserver.NewRouter(logger.With(slog.String("component", "http")), health, m)
	handler := httpserver.Wrap(logger, m, cfg.AllowedOrigins, router)
	server := &http.Server{
		Addr:              cfg.ListenAddress,
		Handler:           handler,
		ReadTimeout:       cfg.HTTPReadTimeout,
		ReadHeaderTimeout: cfg.HTTPReadTimeout,
		WriteTimeout:      cfg.HTTPWriteTimeout,
		IdleTimeout:       cfg.HTTPWriteTimeout,
	}

	logger.Info("http_api_configured",
		slog.String("address", cfg.ListenAddress),
		slog.String("allowed_origins", strings.Join(cfg.AllowedOrigins, ",")),
		slog.Duration("read_timeout", cfg.HTTPReadTimeout),
		slog.Duration("write_timeout", cfg.HTTPWriteTimeout),
	)

	return &Application{
		cfg:     cfg,
		logger:  logger,
		logFile: lf,
		server:  server,
		health:  health,
		metrics: m,
	}, nil
}

// Logger exposes the configured slog logger so main can keep logging after
// initialization.
func (a *Application) Logger() *slog.Logger {
	return a.logger
}

// Handler returns the fully wrapped HTTP handler.
func (a *Application) Handler() http.Handler {
	return a.server.Handler
}

// Run blocks until the context is cancelled or the HTTP server terminates
// unexpectedly. Readiness is raised when the listener starts and lowered
// before shutdown.
func (a *Application) Run(ctx context.Context) error {
	httpCh := make(chan error, 1)
	a.health.SetReady(true)
	go func() {
		a.logger.Info("http_server_listen", slog.String("address", a.cfg.ListenAddress))
		httpCh <- a.server.ListenAndServe()
	}()

	select {
	case err := <-httpCh:
		a.health.SetReady(false)
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.logger.Error("http_server_error", slog.Any("err", err))
			return err
		}
		a.logger.Info("server_closed")
		return nil
	case <-ctx.Done():
	}

	a.logger.Info("shutdown_signal")
	a.health.SetReady(false)

	var httpErr error
	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	if err := a.server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, context.Canceled) {
		a.logger.Error("server_shutdown_failed", slog.Any("err", err))
		httpErr = fmt.Errorf("shutdown: %w", err)
	}
	cancel()

	if err := <-httpCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		a.logger.Error("server_shutdown_error", slog.Any("err", err))
		if httpErr == nil {
			httpErr = err
		}
	}
	if httpErr != nil {
		return httpErr
	}
	a.logger.Info("shutdown_complete")
	return nil
}

// Close releases resources owned by the application instance.
func (a *Application) Close() error {
	if a.logFile == nil {
		return nil
	}
	if err := a.logFile.Close(); err != nil {
		return err
	}
	a.logFile = nil
	return nil
}
