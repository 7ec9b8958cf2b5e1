package api

import (
	"net/http"
	"strconv"
)

// paramError describes a rejected query parameter.
type paramError struct {
	parameter string
	message   string
}

// pagination parses and validates limit/offset, applying the configured
// defaults and cap. Validation failures are reported as structured 400s by
// the caller, never as empty results.
func (s *Server) pagination(r *http.Request) (limit, offset int, perr *paramError) {
	limit = s.searchCfg.DefaultLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			return 0, 0, &paramError{"limit", "limit must be an integer"}
		}
		if v < 1 {
			return 0, 0, &paramError{"limit", "limit must be at least 1"}
		}
		if v > s.searchCfg.MaxLimit {
			return 0, 0, &paramError{"limit", "limit exceeds the maximum of " + strconv.Itoa(s.searchCfg.MaxLimit)}
		}
		limit = v
	}

	if raw := r.URL.Query().Get("offset"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			return 0, 0, &paramError{"offset", "offset must be an integer"}
		}
		if v < 0 {
			return 0, 0, &paramError{"offset", "offset must not be negative"}
		}
		offset = v
	}

	return limit, offset, nil
}

// boolParam parses an optional boolean query parameter, falling back to
// def when absent.
func boolParam(r *http.Request, name string, def bool) (bool, *paramError) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, &paramError{name, name + " must be true or false"}
	}
	return v, nil
}
