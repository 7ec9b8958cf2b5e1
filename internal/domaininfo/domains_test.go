package domaininfo

import "testing"

func TestLookupKnown(t *testing.T) {
	info := Lookup("light")
	if info.Domain != "light" {
		t.Errorf("domain = %q", info.Domain)
	}
	if info.Description == "" {
		t.Error("curated domain must have a description")
	}
	if len(info.CommonActions) == 0 {
		t.Error("light must list actions")
	}
}

func TestLookupReadOnlyDomain(t *testing.T) {
	info := Lookup("sensor")
	if len(info.CommonActions) != 0 {
		t.Errorf("sensor actions = %v, sensors are read-only", info.CommonActions)
	}
}

func TestLookupUnknown(t *testing.T) {
	info := Lookup("quantumizer")
	if info.Domain != "quantumizer" {
		t.Errorf("domain = %q", info.Domain)
	}
	if info.Description == "" || len(info.CommonActions) == 0 {
		t.Errorf("unknown domain must get a generic entry: %+v", info)
	}
	if IsKnown("quantumizer") {
		t.Error("quantumizer should not be curated")
	}
}

func TestKnownSorted(t *testing.T) {
	known := Known()
	if len(known) == 0 {
		t.Fatal("no curated domains")
	}
	for i := 1; i < len(known); i++ {
		if known[i-1] >= known[i] {
			t.Fatalf("Known() not sorted: %v", known)
		}
	}
	if !IsKnown(known[0]) {
		t.Errorf("%s reported unknown", known[0])
	}
}
