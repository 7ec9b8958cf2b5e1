package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/shbatm/ha-mcp-sub002/internal/domaininfo"
)

// handleDomainInfo serves GET /api/v1/domains/{domain}: curated domain
// knowledge plus a paginated listing of the domain's entities.
func (s *Server) handleDomainInfo(w http.ResponseWriter, r *http.Request) {
	domain := chi.URLParam(r, "domain")

	limit, offset, perr := s.pagination(r)
	if perr != nil {
		writeValidationError(w, perr.parameter, perr.message)
		return
	}

	entities := s.snapshot(r.Context())
	listing := s.engine.SmartSearch(entities, "", domain, limit, offset)

	curated := domaininfo.IsKnown(domain)
	resp := map[string]any{
		"info":    domaininfo.Lookup(domain),
		"curated": curated,
		"listing": listing,
	}
	if !curated {
		resp["known_domains"] = domaininfo.Known()
	}
	writeJSON(w, http.StatusOK, resp)
}
