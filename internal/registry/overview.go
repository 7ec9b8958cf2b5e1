package registry

import (
	"context"
	"sort"
)

// DomainCount is one domain with its entity count.
type DomainCount struct {
	Domain string `json:"domain"`
	Count  int    `json:"count"`
}

// OverviewResult is a slim, token-cheap summary of the whole installation:
// totals and counts only, no per-entity detail.
type OverviewResult struct {
	TotalEntities int           `json:"total_entities"`
	Domains       []DomainCount `json:"domains"`
	Areas         []AreaSummary `json:"areas"`

	// UnassignedEntities counts entities resolvable to no area through
	// either the entity or device registry.
	UnassignedEntities int `json:"unassigned_entities"`
}

// Overview summarizes the installation: entity total, per-domain counts
// (largest first), per-area counts and how many entities have no area.
func (r *Resolver) Overview(ctx context.Context) *OverviewResult {
	snap := r.load(ctx)

	domainCounts := make(map[string]int)
	unassigned := 0
	for _, e := range snap.entities {
		if d := e.Domain(); d != "" {
			domainCounts[d]++
		}
		if _, _, ok := snap.graph.ResolveArea(e.EntityID); !ok {
			unassigned++
		}
	}

	domains := make([]DomainCount, 0, len(domainCounts))
	for d, n := range domainCounts {
		domains = append(domains, DomainCount{Domain: d, Count: n})
	}
	sort.Slice(domains, func(i, j int) bool {
		if domains[i].Count != domains[j].Count {
			return domains[i].Count > domains[j].Count
		}
		return domains[i].Domain < domains[j].Domain
	})

	areaCounts := snap.graph.EntityCount()
	areas := make([]AreaSummary, 0)
	for _, a := range snap.graph.Areas() {
		areas = append(areas, AreaSummary{
			AreaID:      a.AreaID,
			Name:        a.Name,
			EntityCount: areaCounts[a.AreaID],
		})
	}

	return &OverviewResult{
		TotalEntities:      len(snap.entities),
		Domains:            domains,
		Areas:              areas,
		UnassignedEntities: unassigned,
	}
}
