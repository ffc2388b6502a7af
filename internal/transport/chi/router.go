// Package chi exposes hydrated documents and searches over HTTP.
package chi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/kailas-cloud/hydrex/internal/metrics"
)

// NewRouter wires the middleware stack and the routes of s.
// apiKeys enables bearer authentication when non-empty.
func NewRouter(s *Server, apiKeys []string) http.Handler {
	r := chi.NewRouter()
	r.Use(jsonRecoverer(s.logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(s.logger))
	r.Use(BearerAuthMiddleware(apiKeys))
	r.Use(metrics.Middleware())

	r.Get("/health", s.HealthCheck)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Get("/mappings", s.ListMappings)
	r.Get("/mappings/resolve", s.ResolveMapping)

	r.Route("/indexes/{index}", func(r chi.Router) {
		r.Get("/documents/{id}", s.GetDocument)
		r.Get("/search", s.Search)
		r.Post("/search", s.Search)
	})

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, codeNotFound, "route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
	})

	return r
}
