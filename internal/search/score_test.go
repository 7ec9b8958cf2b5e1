package search

import "testing"

func TestRatio(t *testing.T) {
	tests := []struct {
		name string
		a    string
		b    string
		want int
	}{
		{"identical", "salon", "salon", 100},
		{"both empty", "", "", 100},
		{"one empty", "salon", "", 0},
		{"one char differs", "abcd", "abcf", 75},
		{"prefix of longer", "kitchen", "kitchen light", 70},
		{"disjoint", "abc", "xyz", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Ratio(tt.a, tt.b); got != tt.want {
				t.Errorf("Ratio(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestRatioSymmetric(t *testing.T) {
	pairs := [][2]string{
		{"salon", "light.salon"},
		{"kichen", "kitchen"},
		{"a", "abc"},
	}
	for _, p := range pairs {
		if Ratio(p[0], p[1]) != Ratio(p[1], p[0]) {
			t.Errorf("Ratio(%q, %q) != Ratio(%q, %q)", p[0], p[1], p[1], p[0])
		}
	}
}

func TestPartialRatio(t *testing.T) {
	tests := []struct {
		name string
		a    string
		b    string
		want int
	}{
		{"exact window", "salon", "light.salon", 100},
		{"leading window", "kitchen", "kitchen light", 100},
		{"identical", "salon", "salon", 100},
		{"one empty", "", "salon", 0},
		{"no overlap", "abc", "xyz", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PartialRatio(tt.a, tt.b); got != tt.want {
				t.Errorf("PartialRatio(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestTokenSortRatio(t *testing.T) {
	if got := TokenSortRatio("living room", "room living"); got != 100 {
		t.Errorf("word order should not matter, got %d", got)
	}
	if got := TokenSortRatio("salon lumiere", "lumiere salon"); got != 100 {
		t.Errorf("word order should not matter, got %d", got)
	}
}

// The weighted similarity must be floored once after summing. Flooring each
// term first loses up to two points: 81/91/50 sums to 159.5 as floats
// (floor 159) but 56+72+30 = 158 per term.
func TestCombineWeightedSingleFloor(t *testing.T) {
	if got := combineWeighted(81, 91, 50); got != 159 {
		t.Errorf("combineWeighted(81, 91, 50) = %d, want 159", got)
	}
	if got := combineWeighted(100, 100, 100); got != 250 {
		t.Errorf("combineWeighted(100, 100, 100) = %d, want 250", got)
	}
	if got := combineWeighted(0, 0, 0); got != 0 {
		t.Errorf("combineWeighted(0, 0, 0) = %d, want 0", got)
	}
}

func TestScore(t *testing.T) {
	tests := []struct {
		name         string
		query        string
		entityID     string
		friendlyName string
		domain       string
		want         int
	}{
		{
			// +85 (id substring), id best 100 via window, name best 20,
			// domain ratio 100: 85 + floor(70 + 16 + 60).
			name:         "domain query",
			query:        "light",
			entityID:     "light.salon",
			friendlyName: "Salon",
			domain:       "light",
			want:         231,
		},
		{
			// +85 +80 (both substrings), id/name best 100, domain ratio 20.
			name:         "room query",
			query:        "salon",
			entityID:     "light.salon",
			friendlyName: "Salon",
			domain:       "light",
			want:         327,
		},
		{
			name:         "empty query",
			query:        "",
			entityID:     "light.salon",
			friendlyName: "Salon",
			domain:       "light",
			want:         0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Score(tt.query, tt.entityID, tt.friendlyName, tt.domain)
			if got != tt.want {
				t.Errorf("Score(%q, %q, %q, %q) = %d, want %d",
					tt.query, tt.entityID, tt.friendlyName, tt.domain, got, tt.want)
			}
		})
	}
}

func TestScoreCaseInsensitive(t *testing.T) {
	lower := Score("salon", "light.salon", "Salon", "light")
	upper := Score("SALON", "light.salon", "Salon", "light")
	if lower != upper {
		t.Errorf("case should not matter: %d vs %d", lower, upper)
	}
}

func TestScoreTypoTolerance(t *testing.T) {
	// A transposition typo must still clear the default threshold of 60
	// without any substring bonus.
	got := Score("slaon", "light.salon", "Salon", "light")
	if got < 60 {
		t.Errorf("typo query scored %d, want >= 60", got)
	}
	if got >= 200 {
		t.Errorf("typo query scored %d, should not earn substring bonuses", got)
	}
}

func TestMatchType(t *testing.T) {
	tests := []struct {
		name         string
		query        string
		entityID     string
		friendlyName string
		domain       string
		want         string
	}{
		{"exact id", "light.salon", "light.salon", "Salon", "light", MatchExactID},
		{"exact name", "salon", "light.salon_main", "Salon", "light", MatchExactName},
		{"exact domain", "light", "light.salon", "Salon Lampe", "light", MatchExactDomain},
		{"partial id", "salon_m", "light.salon_main", "Lampe", "light", MatchPartialID},
		{"partial name", "lampe", "light.salon_main", "Grande Lampe", "light", MatchPartialName},
		{"fuzzy only", "slaon", "light.salon", "Lampe", "light", MatchFuzzy},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MatchType(tt.query, tt.entityID, tt.friendlyName, tt.domain)
			if got != tt.want {
				t.Errorf("MatchType = %q, want %q", got, tt.want)
			}
		})
	}
}
