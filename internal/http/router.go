// Package http assembles the chi router from the feature handlers.
package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	drafthandler "homevest/internal/draft/handler"
	"homevest/internal/platform/middleware"
	registryhandler "homevest/internal/registry/handler"
	submissionhandler "homevest/internal/submission/handler"
)

// Handlers groups the feature handlers the router mounts.
type Handlers struct {
	Draft      *drafthandler.Handler
	Submission *submissionhandler.Handler
	Registry   *registryhandler.Handler
}

// NewRouter builds the full route tree. Wizard routes are open (the mobile
// shell authenticates upstream); management routes require a bearer token.
func NewRouter(h Handlers, validator middleware.TokenValidator, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.Logger(logger))
	r.Use(middleware.ContentTypeJSON)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Group(func(r chi.Router) {
		h.Draft.Register(r)
		h.Submission.Register(r)
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth(validator, logger))
		h.Registry.Register(r)
	})

	return r
}
