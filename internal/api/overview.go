package api

import "net/http"

// handleOverview serves GET /api/v1/overview: the slim installation
// summary (totals and counts, no per-entity detail).
func (s *Server) handleOverview(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.resolver.Overview(r.Context()))
}
