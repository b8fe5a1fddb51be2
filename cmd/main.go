// cmd/main.go is the application entry point.
// It wires together all layers and starts the roster front end.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Shivanand-hulikatti/activity-roster/internal/config"
	"github.com/Shivanand-hulikatti/activity-roster/internal/handler"
	"github.com/Shivanand-hulikatti/activity-roster/internal/repository"
	"github.com/Shivanand-hulikatti/activity-roster/internal/service"
	"github.com/Shivanand-hulikatti/activity-roster/internal/view"
)

func main() {
	if err := run(); err != nil {
		slog.Error("roster", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// ── 1. Configuration and logging ──────────────────────────────────────
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	level, _ := cfg.Level()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	// ── 2. Wire up layers ────────────────────────────────────────────────
	repo, err := repository.NewActivityRepository(cfg.RemoteURL, nil, cfg.RequestTimeout)
	if err != nil {
		return err
	}
	sessions := handler.NewSessions(func(state *view.ViewState, prompt service.Prompter) *service.Roster {
		return service.NewRoster(repo, state, prompt, logger)
	}, view.RealAfterFunc, cfg.SessionTTL)
	shell := handler.NewShellHandler(sessions, cfg.AllowedOrigins, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	go sessions.Run(ctx, time.Minute)

	// ── 3. Start server with graceful shutdown ────────────────────────────
	// No write timeout: /ws connections stay open for the page's lifetime.
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Port),
		Handler:           handler.NewRouter(shell, cfg.AllowedOrigins, logger),
		ReadHeaderTimeout: 15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", "addr", srv.Addr, "remote", cfg.RemoteURL)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	logger.Info("server stopped")
	return nil
}
