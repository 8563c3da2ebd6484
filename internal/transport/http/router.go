// Package http exposes the pipeline over a small JSON API: health, a
// parse endpoint for caller-supplied documents, and a rows endpoint that
// fetches one day's publication and returns the normalized rows.
package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"entsocli/internal/middleware"
)

// NewRouter assembles the API router with the standard middleware chain.
func NewRouter(rowsHandler *RowsHandler, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.StructuredLogger(logger))
	r.Use(middleware.Recoverer(logger))
	r.Use(middleware.Metrics)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", rowsHandler.Health)
		r.Get("/version", rowsHandler.Version)
		r.Get("/rows", rowsHandler.Rows)
		r.Post("/documents/parse", rowsHandler.Parse)
	})

	r.Handle("/metrics", promhttp.Handler())

	return r
}
