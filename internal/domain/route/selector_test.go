package route

import (
	"reflect"
	"testing"
)

var allCollections = []string{
	"crime", "boston_crime", "neighborhoods", "demographics",
	"schools", "amenities", "parks", "transit",
	"properties", "boston_properties", "listings",
}

func TestSelect_CrimeQuery(t *testing.T) {
	got := Select("Is Dorchester safe at night?", allCollections)
	want := []string{"crime", "boston_crime"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Select() = %v, want %v", got, want)
	}
}

func TestSelect_PropertyQuery(t *testing.T) {
	got := Select("show me 3 bedroom homes", allCollections)
	want := []string{"properties", "boston_properties", "listings"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Select() = %v, want %v", got, want)
	}
}

func TestSelect_MultiTopicPreservesMatchOrder(t *testing.T) {
	got := Select("crime near schools and property prices", allCollections)
	want := []string{"crime", "boston_crime", "schools", "properties", "boston_properties", "listings"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Select() = %v, want %v", got, want)
	}
}

func TestSelect_CapsAtMax(t *testing.T) {
	got := Select("crime schools parks transit bedroom neighborhood", allCollections)
	if len(got) != MaxCollections {
		t.Errorf("len = %d, want %d", len(got), MaxCollections)
	}
}

func TestSelect_UnknownVocabularyFallsBackToDefaults(t *testing.T) {
	got := Select("quantum flux capacitor", allCollections)
	want := []string{"properties", "boston_properties"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Select() = %v, want %v", got, want)
	}
}

func TestSelect_FiltersToAvailable(t *testing.T) {
	got := Select("crime rate", []string{"boston_crime", "properties"})
	want := []string{"boston_crime"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Select() = %v, want %v", got, want)
	}
}

func TestSelect_MatchedButMissingCollectionsFallBack(t *testing.T) {
	// Transit matched, but no transit collection exists; defaults apply.
	got := Select("mbta access", []string{"properties", "boston_properties"})
	want := []string{"properties", "boston_properties"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Select() = %v, want %v", got, want)
	}
}

func TestSelect_NeverEmptyWhenAvailableNonEmpty(t *testing.T) {
	queries := []string{"", "hi", "crime", "bedroom", "???"}
	for _, q := range queries {
		if got := Select(q, []string{"odd_collection"}); len(got) == 0 {
			t.Errorf("Select(%q) returned empty for non-empty available set", q)
		}
	}
}

func TestSelect_EmptyAvailable(t *testing.T) {
	if got := Select("homes", nil); len(got) != 0 {
		t.Errorf("Select() = %v, want empty", got)
	}
}

func TestSelect_Deduplicates(t *testing.T) {
	got := Select("rent or buy a condo home", allCollections)
	seen := map[string]bool{}
	for _, name := range got {
		if seen[name] {
			t.Errorf("duplicate collection %q in %v", name, got)
		}
		seen[name] = true
	}
}
