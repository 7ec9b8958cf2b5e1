package search

import "testing"

func TestInferArea(t *testing.T) {
	tests := []struct {
		friendlyName string
		want         string
	}{
		{"Lumière Salon", "salon"},
		{"Chambre Parentale", "chambre"},
		{"Kitchen Light", "kitchen"},
		{"Living Room TV", "living_room"},
		{"Capteur Température", ""},
	}

	for _, tt := range tests {
		if got := InferArea(tt.friendlyName); got != tt.want {
			t.Errorf("InferArea(%q) = %q, want %q", tt.friendlyName, got, tt.want)
		}
	}
}

func TestSuggestionsNearMissDomain(t *testing.T) {
	entities := []Entity{
		{EntityID: "light.salon", Attributes: map[string]any{"friendly_name": "Salon"}},
		{EntityID: "sensor.exterieur", Attributes: map[string]any{"friendly_name": "Extérieur"}},
	}

	got := Suggestions(entities, "ligth")
	if len(got) == 0 {
		t.Fatal("no suggestions for near-miss domain query")
	}
	if got[0] != "light" {
		t.Errorf("first suggestion = %q, want %q", got[0], "light")
	}
}

func TestSuggestionsNearMissArea(t *testing.T) {
	entities := []Entity{
		{EntityID: "light.plafond", Attributes: map[string]any{"friendly_name": "Plafonnier Salon"}},
	}

	got := Suggestions(entities, "saln")
	found := false
	for _, s := range got {
		if s == "salon" {
			found = true
		}
	}
	if !found {
		t.Errorf("suggestions %v missing inferred area %q", got, "salon")
	}
}

func TestSuggestionsFallback(t *testing.T) {
	entities := []Entity{
		{EntityID: "light.plafond", Attributes: map[string]any{"friendly_name": "Plafonnier"}},
	}

	got := Suggestions(entities, "zzzzzz")
	if len(got) == 0 {
		t.Fatal("fallback suggestions must not be empty")
	}
	if len(got) > maxSuggestions {
		t.Errorf("got %d suggestions, cap is %d", len(got), maxSuggestions)
	}
}

func TestSuggestionsDeterministic(t *testing.T) {
	entities := []Entity{
		{EntityID: "light.a", Attributes: map[string]any{"friendly_name": "A"}},
		{EntityID: "lock.b", Attributes: map[string]any{"friendly_name": "B"}},
		{EntityID: "sensor.c", Attributes: map[string]any{"friendly_name": "C"}},
	}

	first := Suggestions(entities, "ligt")
	for i := 0; i < 10; i++ {
		again := Suggestions(entities, "ligt")
		if len(again) != len(first) {
			t.Fatalf("suggestion count changed between runs: %v vs %v", first, again)
		}
		for j := range first {
			if again[j] != first[j] {
				t.Fatalf("suggestion order changed between runs: %v vs %v", first, again)
			}
		}
	}
}
