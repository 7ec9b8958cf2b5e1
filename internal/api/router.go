package api

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
)

// buildRouter creates the HTTP router with all routes and middleware.
func (s *Server) buildRouter() http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(s.requestIDMiddleware)
	r.Use(s.loggingMiddleware)
	r.Use(s.recoveryMiddleware)
	r.Use(s.corsMiddleware)
	r.Use(s.bodySizeLimitMiddleware)

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", s.handleHealth)

		r.Route("/search", func(r chi.Router) {
			r.Get("/", s.handleSmartSearch)
			r.Get("/exact", s.handleExactSearch)
			r.Get("/partial", s.handlePartialSearch)
		})

		r.Route("/areas", func(r chi.Router) {
			r.Get("/", s.handleListAreas)
			r.Get("/entities", s.handleAreaEntities)
		})

		r.Get("/domains/{domain}", s.handleDomainInfo)
		r.Get("/overview", s.handleOverview)
		r.Get("/usage", s.handleUsage)
	})

	return r
}

// upstreamCheckTimeout bounds the Home Assistant ping inside /health.
const upstreamCheckTimeout = 3 * time.Second

// handleHealth returns the server health status, including upstream
// reachability when an upstream checker is configured.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	body := map[string]any{
		"status":  "ok",
		"version": s.version,
	}

	if s.upstream != nil {
		ctx, cancel := context.WithTimeout(r.Context(), upstreamCheckTimeout)
		defer cancel()
		if err := s.upstream.CheckAPI(ctx); err != nil {
			body["upstream"] = "unreachable"
			s.logger.Warn("upstream health check failed", "error", err)
		} else {
			body["upstream"] = "ok"
		}
	}

	writeJSON(w, http.StatusOK, body)
}
