package api

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/shbatm/ha-mcp-sub002/internal/usage"
)

// handleListAreas serves GET /api/v1/areas: every registered area with its
// entity count.
func (s *Server) handleListAreas(w http.ResponseWriter, r *http.Request) {
	areas := s.resolver.ListAreas(r.Context())
	writeJSON(w, http.StatusOK, map[string]any{
		"areas": areas,
		"count": len(areas),
	})
}

// handleAreaEntities serves GET /api/v1/areas/entities: the entities
// resolved into every area matching the query exactly (case-insensitive)
// on area name or area_id. Each matched area's members are bucketed by
// domain unless group_by_domain=false.
func (s *Server) handleAreaEntities(w http.ResponseWriter, r *http.Request) {
	areaQuery := strings.TrimSpace(r.URL.Query().Get("area"))
	domain := strings.TrimSpace(r.URL.Query().Get("domain"))

	grouped, perr := boolParam(r, "group_by_domain", true)
	if perr != nil {
		writeValidationError(w, perr.parameter, perr.message)
		return
	}
	if areaQuery == "" {
		writeValidationError(w, "area", "area is required")
		return
	}

	start := time.Now()
	result := s.resolver.EntitiesByArea(r.Context(), areaQuery, domain, grouped)
	s.recordAreaLookup(areaQuery, domain, result.TotalAreasFound > 0, result.TotalEntities, time.Since(start))

	writeJSON(w, http.StatusOK, result)
}

// recordAreaLookup writes telemetry and the usage log entry for one area
// resolution.
func (s *Server) recordAreaLookup(query, domainFilter string, matched bool, total int, duration time.Duration) {
	if s.metrics != nil {
		s.metrics.RecordAreaLookup(matched, total, duration)
	}

	if s.usage == nil {
		return
	}
	entry := usage.Entry{
		Endpoint:     "areas",
		Query:        query,
		DomainFilter: domainFilter,
		TotalMatches: total,
		DurationMs:   duration.Milliseconds(),
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), usageRecordTimeout)
		defer cancel()
		if err := s.usage.Record(ctx, entry); err != nil {
			s.logger.Warn("usage record failed", "endpoint", "areas", "error", err)
		}
	}()
}
