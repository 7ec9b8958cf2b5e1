package registry

import (
	"sort"
	"strings"
)

// Graph is an immutable index over the three Home Assistant registries,
// built once per request from fresh registry snapshots. It answers
// entity-to-area and area-to-entities questions without further I/O.
type Graph struct {
	areas      map[string]Area   // area_id -> area
	deviceArea map[string]string // device_id -> area_id
	entityArea map[string]areaAssignment
	areaOrder  []string // area_id in registry order
}

type areaAssignment struct {
	areaID string
	source string
}

// BuildGraph indexes the registry snapshots. Entity registry entries with
// their own area_id win over the owning device's area; entries with neither
// remain unassigned. Disabled entities are excluded entirely.
func BuildGraph(areas []Area, entities []EntityEntry, devices []DeviceEntry) *Graph {
	g := &Graph{
		areas:      make(map[string]Area, len(areas)),
		deviceArea: make(map[string]string, len(devices)),
		entityArea: make(map[string]areaAssignment, len(entities)),
		areaOrder:  make([]string, 0, len(areas)),
	}

	for _, a := range areas {
		if a.AreaID == "" {
			continue
		}
		if _, ok := g.areas[a.AreaID]; ok {
			continue
		}
		g.areas[a.AreaID] = a
		g.areaOrder = append(g.areaOrder, a.AreaID)
	}

	for _, d := range devices {
		if d.ID != "" && d.AreaID != "" {
			g.deviceArea[d.ID] = d.AreaID
		}
	}

	for _, e := range entities {
		if e.EntityID == "" || e.DisabledBy != "" {
			continue
		}
		switch {
		case e.AreaID != "":
			g.entityArea[e.EntityID] = areaAssignment{areaID: e.AreaID, source: AreaSourceEntity}
		case e.DeviceID != "":
			if areaID, ok := g.deviceArea[e.DeviceID]; ok {
				g.entityArea[e.EntityID] = areaAssignment{areaID: areaID, source: AreaSourceDevice}
			}
		}
	}

	return g
}

// ResolveArea returns the area an entity belongs to and which registry
// assigned it (AreaSourceEntity or AreaSourceDevice). ok is false when the
// entity has no area through either path.
func (g *Graph) ResolveArea(entityID string) (areaID, source string, ok bool) {
	a, ok := g.entityArea[entityID]
	if !ok {
		return "", "", false
	}
	return a.areaID, a.source, true
}

// MatchAreas finds every area whose name or area_id equals the query,
// case-insensitively. A query can hit more than one area, for example an
// area_id "kitchen" in one and a display name "Kitchen" in another.
// Partial names do not match; callers list AreaRecords() to help the user
// correct the query. Results are in registry order.
func (g *Graph) MatchAreas(query string) []Area {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil
	}
	matched := make([]Area, 0)
	for _, id := range g.areaOrder {
		a := g.areas[id]
		if strings.ToLower(a.Name) == q || strings.ToLower(a.AreaID) == q {
			matched = append(matched, a)
		}
	}
	return matched
}

// Area returns the area with the given ID.
func (g *Graph) Area(areaID string) (Area, bool) {
	a, ok := g.areas[areaID]
	return a, ok
}

// Areas returns all areas in registry order.
func (g *Graph) Areas() []Area {
	out := make([]Area, 0, len(g.areaOrder))
	for _, id := range g.areaOrder {
		out = append(out, g.areas[id])
	}
	return out
}

// AreaRecords returns every area record sorted by display name, for use as
// the available_areas hint when an area query matches nothing.
func (g *Graph) AreaRecords() []Area {
	records := make([]Area, 0, len(g.areaOrder))
	for _, id := range g.areaOrder {
		records = append(records, g.areas[id])
	}
	sort.Slice(records, func(i, j int) bool { return records[i].Name < records[j].Name })
	return records
}

// EntitiesInArea returns the IDs of every entity resolved into the area,
// sorted for deterministic pagination.
func (g *Graph) EntitiesInArea(areaID string) []string {
	out := make([]string, 0)
	for entityID, a := range g.entityArea {
		if a.areaID == areaID {
			out = append(out, entityID)
		}
	}
	sort.Strings(out)
	return out
}

// EntityCount returns the number of entities resolved into each area.
func (g *Graph) EntityCount() map[string]int {
	counts := make(map[string]int, len(g.areas))
	for _, a := range g.entityArea {
		counts[a.areaID]++
	}
	return counts
}
