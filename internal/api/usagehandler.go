package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/shbatm/ha-mcp-sub002/internal/usage"
)

// handleUsage serves GET /api/v1/usage: the recorded request log, newest
// first. Filters: endpoint, since (RFC 3339).
func (s *Server) handleUsage(w http.ResponseWriter, r *http.Request) {
	if s.usage == nil {
		writeNotFound(w, "usage logging is disabled")
		return
	}

	limit, offset, perr := s.pagination(r)
	if perr != nil {
		writeValidationError(w, perr.parameter, perr.message)
		return
	}

	filter := usage.Filter{
		Endpoint: strings.TrimSpace(r.URL.Query().Get("endpoint")),
		Limit:    limit,
		Offset:   offset,
	}
	if raw := r.URL.Query().Get("since"); raw != "" {
		since, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			writeValidationError(w, "since", "since must be an RFC 3339 timestamp")
			return
		}
		filter.Since = since
	}

	result, err := s.usage.List(r.Context(), filter)
	if err != nil {
		s.logger.Error("usage list failed", "error", err)
		writeInternalError(w, "failed to read usage log")
		return
	}
	writeJSON(w, http.StatusOK, result)
}
