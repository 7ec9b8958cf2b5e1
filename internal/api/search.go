package api

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/shbatm/ha-mcp-sub002/internal/search"
	"github.com/shbatm/ha-mcp-sub002/internal/usage"
)

// handleSmartSearch serves GET /api/v1/search: the fuzzy, typo-tolerant
// search. Requires q unless domain is set (empty q with a domain lists the
// domain).
func (s *Server) handleSmartSearch(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	domain := strings.TrimSpace(r.URL.Query().Get("domain"))

	limit, offset, perr := s.pagination(r)
	if perr != nil {
		writeValidationError(w, perr.parameter, perr.message)
		return
	}
	if query == "" && domain == "" {
		writeValidationError(w, "q", "q is required unless domain is set")
		return
	}

	start := time.Now()
	entities := s.snapshot(r.Context())
	resp := s.engine.SmartSearch(entities, query, domain, limit, offset)
	s.recordSearch("search", query, domain, resp, time.Since(start))

	writeJSON(w, http.StatusOK, resp)
}

// handleExactSearch serves GET /api/v1/search/exact: substring containment
// only, no fuzzy scoring.
func (s *Server) handleExactSearch(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	domain := strings.TrimSpace(r.URL.Query().Get("domain"))

	limit, offset, perr := s.pagination(r)
	if perr != nil {
		writeValidationError(w, perr.parameter, perr.message)
		return
	}
	if query == "" {
		writeValidationError(w, "q", "q is required")
		return
	}

	start := time.Now()
	entities := s.snapshot(r.Context())
	resp := s.engine.ExactSearch(entities, query, domain, limit, offset)
	s.recordSearch("search_exact", query, domain, resp, time.Since(start))

	writeJSON(w, http.StatusOK, resp)
}

// handlePartialSearch serves GET /api/v1/search/partial: the last-resort
// full listing, optionally restricted to a domain.
func (s *Server) handlePartialSearch(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	domain := strings.TrimSpace(r.URL.Query().Get("domain"))

	limit, offset, perr := s.pagination(r)
	if perr != nil {
		writeValidationError(w, perr.parameter, perr.message)
		return
	}

	start := time.Now()
	entities := s.snapshot(r.Context())
	resp := s.engine.PartialSearch(entities, query, domain, limit, offset)
	s.recordSearch("search_partial", query, domain, resp, time.Since(start))

	writeJSON(w, http.StatusOK, resp)
}

// snapshot fetches the entity states, degrading to an empty snapshot when
// the source is unavailable. Search over nothing beats a 502.
func (s *Server) snapshot(ctx context.Context) []search.Entity {
	entities, err := s.states.FetchStates(ctx)
	if err != nil {
		s.logger.Warn("states fetch failed, serving empty snapshot", "error", err)
		return nil
	}
	return entities
}

// usageRecordTimeout bounds the asynchronous usage log insert.
const usageRecordTimeout = 5 * time.Second

// recordSearch writes telemetry and the usage log entry for one served
// search. Both are fire-and-forget.
func (s *Server) recordSearch(endpoint, query, domainFilter string, resp *search.Response, duration time.Duration) {
	best := 0
	if len(resp.Results) > 0 {
		best = resp.Results[0].Score
	}

	if s.metrics != nil {
		s.metrics.RecordSearch(resp.SearchType, domainFilter, len(query), resp.TotalMatches, best, duration)
	}

	if s.usage == nil {
		return
	}
	entry := usage.Entry{
		Endpoint:     endpoint,
		Query:        query,
		DomainFilter: domainFilter,
		SearchType:   resp.SearchType,
		TotalMatches: resp.TotalMatches,
		BestScore:    best,
		DurationMs:   duration.Milliseconds(),
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), usageRecordTimeout)
		defer cancel()
		if err := s.usage.Record(ctx, entry); err != nil {
			s.logger.Warn("usage record failed", "endpoint", endpoint, "error", err)
		}
	}()
}
