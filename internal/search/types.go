package search

import "strings"

// Entity is a read-only snapshot of one Home Assistant entity state.
// Snapshots are fetched fresh on every call and never mutated by the engine.
type Entity struct {
	EntityID   string         `json:"entity_id"`
	State      string         `json:"state"`
	Attributes map[string]any `json:"attributes"`
}

// Domain returns the category prefix of the entity ID (the part before the
// first dot), or "" if the ID has no dot.
func (e Entity) Domain() string {
	if i := strings.Index(e.EntityID, "."); i > 0 {
		return e.EntityID[:i]
	}
	return ""
}

// FriendlyName returns the friendly_name attribute, falling back to the
// entity ID when the attribute is absent or not a string.
func (e Entity) FriendlyName() string {
	if name, ok := e.Attributes["friendly_name"].(string); ok && name != "" {
		return name
	}
	return e.EntityID
}

// Match type values reported with each search result.
const (
	MatchExactID        = "exact_id"
	MatchExactName      = "exact_name"
	MatchExactDomain    = "exact_domain"
	MatchPartialID      = "partial_id"
	MatchPartialName    = "partial_name"
	MatchFuzzy          = "fuzzy_match"
	MatchExact          = "exact_match"
	MatchDomainListing  = "domain_listing"
	MatchPartialListing = "partial_listing"
)

// Result is a single scored search hit.
type Result struct {
	EntityID     string `json:"entity_id"`
	FriendlyName string `json:"friendly_name"`
	Domain       string `json:"domain"`
	State        string `json:"state"`
	Score        int    `json:"score"`
	MatchType    string `json:"match_type"`

	// EssentialAttributes carries the small attribute subset useful to
	// agents (unit_of_measurement, device_class, icon, area_id).
	EssentialAttributes map[string]any `json:"essential_attributes,omitempty"`
}

// essentialAttributeKeys is the attribute subset copied onto results.
var essentialAttributeKeys = []string{
	"unit_of_measurement",
	"device_class",
	"icon",
	"area_id",
}

// newResult builds a Result from an entity and its score/match type.
func newResult(e Entity, score int, matchType string) Result {
	r := Result{
		EntityID:     e.EntityID,
		FriendlyName: e.FriendlyName(),
		Domain:       e.Domain(),
		State:        e.State,
		Score:        score,
		MatchType:    matchType,
	}
	for _, key := range essentialAttributeKeys {
		if v, ok := e.Attributes[key]; ok {
			if r.EssentialAttributes == nil {
				r.EssentialAttributes = make(map[string]any, len(essentialAttributeKeys))
			}
			r.EssentialAttributes[key] = v
		}
	}
	return r
}

// Dedupe returns the entities with duplicate entity IDs removed, keeping the
// first occurrence and preserving snapshot order. Every search mode
// deduplicates before scoring or paginating.
func Dedupe(entities []Entity) []Entity {
	seen := make(map[string]struct{}, len(entities))
	out := make([]Entity, 0, len(entities))
	for _, e := range entities {
		if _, ok := seen[e.EntityID]; ok {
			continue
		}
		seen[e.EntityID] = struct{}{}
		out = append(out, e)
	}
	return out
}
