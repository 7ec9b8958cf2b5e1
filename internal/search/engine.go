package search

import (
	"sort"
	"strings"
)

// Search type values reported in responses.
const (
	SearchTypeFuzzy         = "fuzzy_search"
	SearchTypeExact         = "exact_match"
	SearchTypePartial       = "partial_listing"
	SearchTypeDomainListing = "domain_listing"
)

// Exact-mode scores: full equality outranks substring containment.
const (
	exactEqualityScore    = 100
	exactContainmentScore = 80
)

// domainListingScore is assigned when listing a whole domain with an empty
// query; every entity is a perfect match for "everything in this domain".
const domainListingScore = 100

// lowConfidenceScore is the best-match score below which a smart search
// still attaches suggestions, even though it found something.
const lowConfidenceScore = 80

// Engine runs the tiered entity search over an entity snapshot.
//
// The engine is stateless: every method is a pure function over its inputs,
// safe for concurrent use. Fresh snapshots are supplied per call by the
// caller; nothing is cached between calls.
type Engine struct {
	threshold int
}

// NewEngine creates a search engine with the given fuzzy threshold
// (minimum score for a fuzzy match to be kept, typically 60).
func NewEngine(threshold int) *Engine {
	return &Engine{threshold: threshold}
}

// Threshold returns the configured fuzzy score threshold.
func (e *Engine) Threshold() int {
	return e.threshold
}

// Response is the shaped output of any search mode. PageMeta fields are
// flattened into the JSON object alongside the results.
type Response struct {
	Query        string `json:"query"`
	DomainFilter string `json:"domain_filter,omitempty"`
	SearchType   string `json:"search_type"`
	PageMeta
	Results []Result `json:"results"`

	// Suggestions is present (and non-empty) whenever a smart search finds
	// nothing, and also when the best hit scores below 80.
	Suggestions []string `json:"suggestions,omitempty"`
}

// SmartSearch is the top-level fuzzy search with typo tolerance.
//
// Candidates are deduplicated, optionally restricted to one domain, scored
// with Score, filtered by the engine threshold, and sorted by score
// descending with ties broken by entity ID ascending (deterministic across
// snapshot orderings). An empty query with a domain filter degrades to a
// listing of that domain. Unknown domain filters are not an error; they
// produce zero matches and suggestions.
func (e *Engine) SmartSearch(entities []Entity, query, domainFilter string, limit, offset int) *Response {
	candidates := filterDomain(Dedupe(entities), domainFilter)

	if strings.TrimSpace(query) == "" && domainFilter != "" {
		return e.domainListing(candidates, query, domainFilter, limit, offset)
	}

	matches := make([]Result, 0, len(candidates))
	for _, entity := range candidates {
		score := Score(query, entity.EntityID, entity.FriendlyName(), entity.Domain())
		if score < e.threshold {
			continue
		}
		matchType := MatchType(query, entity.EntityID, entity.FriendlyName(), entity.Domain())
		matches = append(matches, newResult(entity, score, matchType))
	}
	sortResults(matches)

	page, meta := Page(matches, offset, limit)
	resp := &Response{
		Query:        query,
		DomainFilter: domainFilter,
		SearchType:   SearchTypeFuzzy,
		PageMeta:     meta,
		Results:      page,
	}

	if meta.TotalMatches == 0 || matches[0].Score < lowConfidenceScore {
		resp.Suggestions = Suggestions(candidates, query)
	}
	return resp
}

// ExactSearch is the precision mode: entities whose ID or friendly name
// contains the full query as a contiguous substring (case-insensitive).
// Full equality scores 100, containment 80. Fuzzy scoring is skipped
// entirely.
func (e *Engine) ExactSearch(entities []Entity, query, domainFilter string, limit, offset int) *Response {
	queryLower := strings.ToLower(strings.TrimSpace(query))
	candidates := filterDomain(Dedupe(entities), domainFilter)

	matches := make([]Result, 0, len(candidates))
	for _, entity := range candidates {
		idLower := strings.ToLower(entity.EntityID)
		nameLower := strings.ToLower(entity.FriendlyName())
		if queryLower == "" || (!strings.Contains(idLower, queryLower) && !strings.Contains(nameLower, queryLower)) {
			continue
		}

		score := exactContainmentScore
		if queryLower == idLower || queryLower == nameLower {
			score = exactEqualityScore
		}
		matches = append(matches, newResult(entity, score, MatchExact))
	}
	sortResults(matches)

	page, meta := Page(matches, offset, limit)
	return &Response{
		Query:        query,
		DomainFilter: domainFilter,
		SearchType:   SearchTypeExact,
		PageMeta:     meta,
		Results:      page,
	}
}

// PartialSearch is the last-resort mode: every entity (optionally domain
// filtered) in snapshot order with score 0, paginated. Callers use it when
// any listing is better than nothing.
func (e *Engine) PartialSearch(entities []Entity, query, domainFilter string, limit, offset int) *Response {
	candidates := filterDomain(Dedupe(entities), domainFilter)

	matches := make([]Result, 0, len(candidates))
	for _, entity := range candidates {
		matches = append(matches, newResult(entity, 0, MatchPartialListing))
	}

	page, meta := Page(matches, offset, limit)
	return &Response{
		Query:        query,
		DomainFilter: domainFilter,
		SearchType:   SearchTypePartial,
		PageMeta:     meta,
		Results:      page,
	}
}

// domainListing lists every entity of one domain for an empty query.
func (e *Engine) domainListing(candidates []Entity, query, domainFilter string, limit, offset int) *Response {
	matches := make([]Result, 0, len(candidates))
	for _, entity := range candidates {
		matches = append(matches, newResult(entity, domainListingScore, MatchDomainListing))
	}

	page, meta := Page(matches, offset, limit)
	resp := &Response{
		Query:        query,
		DomainFilter: domainFilter,
		SearchType:   SearchTypeDomainListing,
		PageMeta:     meta,
		Results:      page,
	}
	if meta.TotalMatches == 0 {
		resp.Suggestions = Suggestions(candidates, domainFilter)
	}
	return resp
}

// filterDomain restricts entities to one domain; an empty filter keeps all.
func filterDomain(entities []Entity, domain string) []Entity {
	if domain == "" {
		return entities
	}
	filtered := make([]Entity, 0, len(entities))
	for _, e := range entities {
		if e.Domain() == domain {
			filtered = append(filtered, e)
		}
	}
	return filtered
}

// sortResults orders results by score descending, then entity ID ascending.
// The secondary key makes equal-score ordering deterministic and
// independent of snapshot order.
func sortResults(results []Result) {
	sort.Slice(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].EntityID < results[j].EntityID
	})
}
