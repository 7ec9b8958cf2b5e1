package registry

import (
	"context"
	"sync"

	"github.com/shbatm/ha-mcp-sub002/internal/infrastructure/logging"
	"github.com/shbatm/ha-mcp-sub002/internal/search"
)

// StateSource supplies a fresh entity state snapshot.
type StateSource interface {
	FetchStates(ctx context.Context) ([]search.Entity, error)
}

// RegistrySource supplies fresh registry snapshots.
type RegistrySource interface {
	FetchAreas(ctx context.Context) ([]Area, error)
	FetchEntityRegistry(ctx context.Context) ([]EntityEntry, error)
	FetchDeviceRegistry(ctx context.Context) ([]DeviceEntry, error)
}

// Resolver answers area questions by joining registry snapshots with live
// entity states.
//
// Every upstream fetch degrades gracefully: a failed states or registry
// fetch is logged and replaced with an empty set, so callers always get a
// well-formed (possibly empty) result and never an error. Partial data
// beats no data for an interactive agent.
type Resolver struct {
	states     StateSource
	registries RegistrySource
	log        *logging.Logger
}

// NewResolver creates a Resolver over the given sources.
func NewResolver(states StateSource, registries RegistrySource, log *logging.Logger) *Resolver {
	return &Resolver{states: states, registries: registries, log: log}
}

type snapshot struct {
	entities []search.Entity
	graph    *Graph
}

// load fetches states and the three registries concurrently. Each fetch
// that fails contributes an empty set.
func (r *Resolver) load(ctx context.Context) *snapshot {
	var (
		wg       sync.WaitGroup
		entities []search.Entity
		areas    []Area
		entries  []EntityEntry
		devices  []DeviceEntry
	)

	wg.Add(4)
	go func() {
		defer wg.Done()
		var err error
		if entities, err = r.states.FetchStates(ctx); err != nil {
			r.log.Warn("states fetch failed, using empty snapshot", "error", err)
			entities = nil
		}
	}()
	go func() {
		defer wg.Done()
		var err error
		if areas, err = r.registries.FetchAreas(ctx); err != nil {
			r.log.Warn("area registry fetch failed, using empty set", "error", err)
			areas = nil
		}
	}()
	go func() {
		defer wg.Done()
		var err error
		if entries, err = r.registries.FetchEntityRegistry(ctx); err != nil {
			r.log.Warn("entity registry fetch failed, using empty set", "error", err)
			entries = nil
		}
	}()
	go func() {
		defer wg.Done()
		var err error
		if devices, err = r.registries.FetchDeviceRegistry(ctx); err != nil {
			r.log.Warn("device registry fetch failed, using empty set", "error", err)
			devices = nil
		}
	}()
	wg.Wait()

	return &snapshot{
		entities: search.Dedupe(entities),
		graph:    BuildGraph(areas, entries, devices),
	}
}

// AreaListing is one matched area with its member entities.
type AreaListing struct {
	AreaName    string `json:"area_name"`
	AreaID      string `json:"area_id"`
	EntityCount int    `json:"entity_count"`

	// Entities holds the member records: a flat []AreaEntity, or a
	// map[string][]AreaEntity keyed by domain when grouping is on.
	Entities any `json:"entities"`
}

// AreaEntitiesResult is the shaped answer to "what is in this area".
// Areas is keyed by area_id; a query can match several areas when an
// area_id in one collides with a display name in another.
type AreaEntitiesResult struct {
	Query           string                 `json:"query"`
	TotalAreasFound int                    `json:"total_areas_found"`
	TotalEntities   int                    `json:"total_entities"`
	Areas           map[string]AreaListing `json:"areas"`

	// AvailableAreas lists every known area record when the query matched
	// nothing, so the caller can retry with a real one.
	AvailableAreas []Area `json:"available_areas,omitempty"`
}

// EntitiesByArea lists the entities resolved into every area matching query
// (exact case-insensitive match on area name or area_id).
//
// Each matched area contributes one listing with its members ordered by
// entity ID, optionally restricted to one domain. With grouped set, each
// listing's members are bucketed by domain. A query matching no area
// returns TotalAreasFound zero plus the available area records.
func (r *Resolver) EntitiesByArea(ctx context.Context, query, domainFilter string, grouped bool) *AreaEntitiesResult {
	snap := r.load(ctx)

	matched := snap.graph.MatchAreas(query)
	result := &AreaEntitiesResult{
		Query: query,
		Areas: make(map[string]AreaListing, len(matched)),
	}
	if len(matched) == 0 {
		result.AvailableAreas = snap.graph.AreaRecords()
		return result
	}

	states := make(map[string]search.Entity, len(snap.entities))
	for _, e := range snap.entities {
		states[e.EntityID] = e
	}

	result.TotalAreasFound = len(matched)
	for _, area := range matched {
		members := areaMembers(snap.graph, states, area.AreaID, domainFilter)
		listing := AreaListing{
			AreaName:    area.Name,
			AreaID:      area.AreaID,
			EntityCount: len(members),
		}
		if grouped {
			listing.Entities = groupByDomain(members)
		} else {
			listing.Entities = members
		}
		result.Areas[area.AreaID] = listing
		result.TotalEntities += len(members)
	}
	return result
}

// areaMembers joins one area's resolved entity IDs with live state,
// ordered by entity ID.
func areaMembers(g *Graph, states map[string]search.Entity, areaID, domainFilter string) []AreaEntity {
	members := make([]AreaEntity, 0)
	for _, entityID := range g.EntitiesInArea(areaID) {
		_, source, _ := g.ResolveArea(entityID)
		e, known := states[entityID]
		if !known {
			e = search.Entity{EntityID: entityID}
		}
		if domainFilter != "" && e.Domain() != domainFilter {
			continue
		}
		members = append(members, AreaEntity{
			EntityID:     entityID,
			FriendlyName: e.FriendlyName(),
			Domain:       e.Domain(),
			State:        e.State,
			AreaSource:   source,
		})
	}
	return members
}

// groupByDomain buckets one page of area entities by their domain.
func groupByDomain(entities []AreaEntity) map[string][]AreaEntity {
	groups := make(map[string][]AreaEntity)
	for _, e := range entities {
		groups[e.Domain] = append(groups[e.Domain], e)
	}
	return groups
}

// AreaSummary is one area with its resolved entity count.
type AreaSummary struct {
	AreaID      string `json:"area_id"`
	Name        string `json:"name"`
	EntityCount int    `json:"entity_count"`
}

// ListAreas returns every registered area with its entity count, in
// registry order.
func (r *Resolver) ListAreas(ctx context.Context) []AreaSummary {
	snap := r.load(ctx)
	counts := snap.graph.EntityCount()

	out := make([]AreaSummary, 0)
	for _, a := range snap.graph.Areas() {
		out = append(out, AreaSummary{
			AreaID:      a.AreaID,
			Name:        a.Name,
			EntityCount: counts[a.AreaID],
		})
	}
	return out
}
