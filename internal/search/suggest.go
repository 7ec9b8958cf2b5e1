package search

import (
	"sort"
	"strings"
)

// maxSuggestions caps the number of suggestions returned for a failed search.
const maxSuggestions = 5

// suggestionThreshold is the minimum Ratio for a domain or area name to be
// offered as an alternative query.
const suggestionThreshold = 60

// areaKeywords maps room-name keywords (French and English, matching the
// naming conventions seen in real installations) to canonical area slugs.
// Ordered so inference is deterministic.
var areaKeywords = []struct {
	keyword string
	area    string
}{
	{"salon", "salon"},
	{"chambre", "chambre"},
	{"cuisine", "cuisine"},
	{"salle", "salle_de_bain"},
	{"bureau", "bureau"},
	{"jardin", "jardin"},
	{"terrasse", "terrasse"},
	{"living", "living_room"},
	{"bedroom", "bedroom"},
	{"kitchen", "kitchen"},
	{"bathroom", "bathroom"},
	{"office", "office"},
	{"garage", "garage"},
	{"garden", "garden"},
	{"patio", "patio"},
}

// fallbackSuggestions is offered when nothing in the snapshot resembles the
// query: common domains and room names a user can pivot to.
var fallbackSuggestions = []string{
	"light", "switch", "sensor", "climate",
	"salon", "chambre", "cuisine",
	"living", "bedroom", "kitchen",
}

// InferArea guesses a canonical area slug from an entity's friendly name,
// or returns "" when no room keyword is present.
func InferArea(friendlyName string) string {
	name := strings.ToLower(friendlyName)
	for _, kw := range areaKeywords {
		if strings.Contains(name, kw.keyword) {
			return kw.area
		}
	}
	return ""
}

// Suggestions generates alternative query strings for a search that found
// nothing (or nothing convincing). Candidates are the snapshot's domains and
// the areas inferred from friendly names, ranked by similarity to the query;
// when no candidate is close enough a static fallback list is used so the
// result is never empty.
func Suggestions(entities []Entity, query string) []string {
	query = strings.ToLower(strings.TrimSpace(query))

	domains := make(map[string]struct{})
	areas := make(map[string]struct{})
	for _, e := range entities {
		if d := e.Domain(); d != "" {
			domains[d] = struct{}{}
		}
		if a := InferArea(e.FriendlyName()); a != "" {
			areas[a] = struct{}{}
		}
	}

	suggestions := make([]string, 0, maxSuggestions)
	suggestions = append(suggestions, bestMatches(query, domains)...)
	suggestions = append(suggestions, bestMatches(query, areas)...)

	if len(suggestions) == 0 {
		suggestions = append(suggestions, fallbackSuggestions...)
	}

	if len(suggestions) > maxSuggestions {
		suggestions = suggestions[:maxSuggestions]
	}
	return suggestions
}

// bestMatchLimit is the number of candidates kept per choice set.
const bestMatchLimit = 3

// bestMatches ranks choices by Ratio against the query and returns up to
// three that clear the suggestion threshold. Ties break alphabetically so
// the output is deterministic regardless of map iteration order.
func bestMatches(query string, choices map[string]struct{}) []string {
	type scored struct {
		choice string
		score  int
	}

	ranked := make([]scored, 0, len(choices))
	for choice := range choices {
		if choice == "" {
			continue
		}
		ranked = append(ranked, scored{choice: choice, score: Ratio(query, choice)})
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].score != ranked[j].score {
			return ranked[i].score > ranked[j].score
		}
		return ranked[i].choice < ranked[j].choice
	})

	out := make([]string, 0, bestMatchLimit)
	for _, s := range ranked {
		if s.score < suggestionThreshold {
			break
		}
		out = append(out, s.choice)
		if len(out) == bestMatchLimit {
			break
		}
	}
	return out
}
