package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/RenzoCostarelli/verduapp/internal/adapter/http/handler"
	"github.com/RenzoCostarelli/verduapp/internal/adapter/http/middleware"
	"github.com/RenzoCostarelli/verduapp/internal/infrastructure/auth"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	EntryHandler  *handler.EntryHandler
	ReportHandler *handler.ReportHandler
	ExportHandler *handler.ExportHandler
	HealthHandler *handler.HealthHandler
	JWTManager    *auth.JWTManager
	AuthEnabled   bool
	Logger        zerolog.Logger
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewLoggingMiddleware(cfg.Logger).Wrap)
	r.Use(middleware.Recovery)
	r.Use(middleware.Metrics)

	// Health and metrics endpoints
	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)
	r.Handle("/metrics", promhttp.Handler())

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.AuthMiddleware(cfg.JWTManager, cfg.AuthEnabled))

		r.Route("/entries", func(r chi.Router) {
			r.Get("/", cfg.EntryHandler.List)
			r.Post("/", cfg.EntryHandler.Create)
			r.Get("/creators", cfg.EntryHandler.ListCreators)
			r.Get("/export", cfg.ExportHandler.Export)
			r.Delete("/{id}", cfg.EntryHandler.Delete)
			r.Patch("/{id}/description", cfg.EntryHandler.UpdateDescription)
		})

		r.Route("/reports", func(r chi.Router) {
			r.Get("/summary", cfg.ReportHandler.Summary)
			r.Get("/daily", cfg.ReportHandler.Daily)
			r.Get("/methods", cfg.ReportHandler.Methods)
		})
	})

	return r
}
