package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
)

// NewRouter builds the front end's router around shell.
func NewRouter(shell *ShellHandler, allowedOrigins []string, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	// Global middleware stack
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(Logger(logger))
	r.Use(CORS(allowedOrigins))

	r.Get("/health", HealthCheck)

	r.Get("/", shell.Page)
	r.Post("/refresh", shell.Refresh)
	r.Post("/signup", shell.Signup)
	r.Get("/unregister", shell.ConfirmUnregister)
	r.Post("/unregister", shell.Unregister)
	r.Get("/ws", shell.Live)

	return r
}
