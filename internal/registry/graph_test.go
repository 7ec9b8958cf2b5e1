package registry

import "testing"

func testGraph() *Graph {
	areas := []Area{
		{AreaID: "salon", Name: "Salon"},
		{AreaID: "cuisine", Name: "Cuisine"},
		{AreaID: "chambre", Name: "Chambre"},
	}
	devices := []DeviceEntry{
		{ID: "dev-1", AreaID: "salon", Name: "Hue Bridge Lamp"},
		{ID: "dev-2", AreaID: "cuisine", Name: "Oven"},
		{ID: "dev-3", Name: "Portable Speaker"}, // no area
	}
	entities := []EntityEntry{
		{EntityID: "light.plafond", DeviceID: "dev-1"},                      // inherits salon
		{EntityID: "sensor.four", DeviceID: "dev-2"},                        // inherits cuisine
		{EntityID: "sensor.four_temp", DeviceID: "dev-2", AreaID: "salon"},  // own area wins
		{EntityID: "media_player.enceinte", DeviceID: "dev-3"},              // device has no area
		{EntityID: "light.lampe", AreaID: "chambre"},                        // direct assignment
		{EntityID: "switch.cache", AreaID: "salon", DisabledBy: "user"},     // disabled, excluded
		{EntityID: "sensor.orphelin"},                                       // no device, no area
	}
	return BuildGraph(areas, entities, devices)
}

func TestResolveAreaOverride(t *testing.T) {
	g := testGraph()

	tests := []struct {
		entityID   string
		wantArea   string
		wantSource string
		wantOK     bool
	}{
		{"light.plafond", "salon", AreaSourceDevice, true},
		{"sensor.four", "cuisine", AreaSourceDevice, true},
		{"sensor.four_temp", "salon", AreaSourceEntity, true}, // entity area overrides device area
		{"light.lampe", "chambre", AreaSourceEntity, true},
		{"media_player.enceinte", "", "", false},
		{"sensor.orphelin", "", "", false},
		{"switch.cache", "", "", false},
		{"light.inconnu", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.entityID, func(t *testing.T) {
			area, source, ok := g.ResolveArea(tt.entityID)
			if ok != tt.wantOK || area != tt.wantArea || source != tt.wantSource {
				t.Errorf("ResolveArea(%s) = (%q, %q, %v), want (%q, %q, %v)",
					tt.entityID, area, source, ok, tt.wantArea, tt.wantSource, tt.wantOK)
			}
		})
	}
}

func TestMatchAreas(t *testing.T) {
	g := testGraph()

	tests := []struct {
		name    string
		query   string
		wantIDs []string
	}{
		{"by name", "Salon", []string{"salon"}},
		{"by name case-insensitive", "SALON", []string{"salon"}},
		{"by area_id", "cuisine", []string{"cuisine"}},
		{"whitespace trimmed", "  chambre  ", []string{"chambre"}},
		{"partial does not match", "sal", nil},
		{"unknown", "grenier", nil},
		{"empty", "", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			matched := g.MatchAreas(tt.query)
			if len(matched) != len(tt.wantIDs) {
				t.Fatalf("MatchAreas(%q) = %+v, want ids %v", tt.query, matched, tt.wantIDs)
			}
			for i, want := range tt.wantIDs {
				if matched[i].AreaID != want {
					t.Errorf("MatchAreas(%q)[%d] = %q, want %q", tt.query, i, matched[i].AreaID, want)
				}
			}
		})
	}
}

// A query hitting one area's ID and another area's name returns both, in
// registry order.
func TestMatchAreasCollision(t *testing.T) {
	g := BuildGraph([]Area{
		{AreaID: "kitchen", Name: "Cucina"},
		{AreaID: "second_floor_kitchen", Name: "Kitchen"},
	}, nil, nil)

	matched := g.MatchAreas("kitchen")
	if len(matched) != 2 {
		t.Fatalf("MatchAreas(kitchen) = %+v, want both areas", matched)
	}
	if matched[0].AreaID != "kitchen" || matched[1].AreaID != "second_floor_kitchen" {
		t.Errorf("MatchAreas(kitchen) order = %+v", matched)
	}
}

func TestEntitiesInArea(t *testing.T) {
	g := testGraph()

	got := g.EntitiesInArea("salon")
	want := []string{"light.plafond", "sensor.four_temp"}
	if len(got) != len(want) {
		t.Fatalf("EntitiesInArea(salon) = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("EntitiesInArea(salon)[%d] = %s, want %s", i, got[i], want[i])
		}
	}

	if got := g.EntitiesInArea("grenier"); len(got) != 0 {
		t.Errorf("unknown area returned entities: %v", got)
	}
}

func TestEntityCount(t *testing.T) {
	g := testGraph()

	counts := g.EntityCount()
	if counts["salon"] != 2 || counts["cuisine"] != 1 || counts["chambre"] != 1 {
		t.Errorf("counts = %v", counts)
	}
}

func TestAreaRecordsSorted(t *testing.T) {
	g := testGraph()

	records := g.AreaRecords()
	want := []string{"Chambre", "Cuisine", "Salon"}
	if len(records) != len(want) {
		t.Fatalf("AreaRecords = %v, want names %v", records, want)
	}
	for i := range want {
		if records[i].Name != want[i] {
			t.Errorf("AreaRecords[%d] = %+v, want name %s", i, records[i], want[i])
		}
	}
	if records[2].AreaID != "salon" {
		t.Errorf("records carry full area data: %+v", records[2])
	}
}

func TestBuildGraphEmpty(t *testing.T) {
	g := BuildGraph(nil, nil, nil)
	if len(g.Areas()) != 0 {
		t.Error("empty graph should have no areas")
	}
	if _, _, ok := g.ResolveArea("light.salon"); ok {
		t.Error("empty graph should resolve nothing")
	}
}
