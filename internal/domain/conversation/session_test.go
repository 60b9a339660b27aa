package conversation

import (
	"fmt"
	"testing"

	"github.com/kailas-cloud/propbot/internal/domain/intent"
)

func TestSession_AppendEvictsOldest(t *testing.T) {
	s := New("c1")
	for i := 0; i < MaxTurns+7; i++ {
		s.Append(RoleUser, fmt.Sprintf("msg-%d", i))
	}

	if len(s.Turns) != MaxTurns {
		t.Fatalf("len(Turns) = %d, want %d", len(s.Turns), MaxTurns)
	}
	if s.Turns[0].Content != "msg-7" {
		t.Errorf("oldest turn = %q, want msg-7 (FIFO eviction)", s.Turns[0].Content)
	}
	if s.Turns[MaxTurns-1].Content != fmt.Sprintf("msg-%d", MaxTurns+6) {
		t.Errorf("newest turn = %q, the current turn must never be evicted",
			s.Turns[MaxTurns-1].Content)
	}
}

func TestSession_RetentionBoundHolds(t *testing.T) {
	s := New("c1")
	for i := 0; i < 500; i++ {
		s.Append(RoleAssistant, "reply")
		if len(s.Turns) > MaxTurns {
			t.Fatalf("retention bound exceeded at turn %d: %d", i, len(s.Turns))
		}
	}
}

func TestSession_Recent(t *testing.T) {
	s := New("c1")
	s.Append(RoleUser, "a")
	s.Append(RoleAssistant, "b")
	s.Append(RoleUser, "c")

	recent := s.Recent(2)
	if len(recent) != 2 {
		t.Fatalf("len = %d, want 2", len(recent))
	}
	if recent[0].Content != "b" || recent[1].Content != "c" {
		t.Errorf("Recent(2) = %v", recent)
	}

	if got := s.Recent(10); len(got) != 3 {
		t.Errorf("Recent(10) len = %d, want all 3", len(got))
	}
}

func TestSession_MemoryLifecycle(t *testing.T) {
	s := New("c1")
	if s.Memory() != nil {
		t.Error("fresh session must have nil memory")
	}

	s.RememberSearch(intent.Filters{MaxPrice: 900000, Neighborhood: "fenway"})

	mem := s.Memory()
	if mem == nil {
		t.Fatal("memory should exist after a search")
	}
	if mem.LastFilters.MaxPrice != 900000 {
		t.Errorf("LastFilters.MaxPrice = %f", mem.LastFilters.MaxPrice)
	}
	if mem.LastNeighborhood != "fenway" {
		t.Errorf("LastNeighborhood = %q", mem.LastNeighborhood)
	}
	if s.SearchCount != 1 {
		t.Errorf("SearchCount = %d, want 1", s.SearchCount)
	}
}

func TestSession_RememberSearchKeepsPriorFiltersOnEmpty(t *testing.T) {
	s := New("c1")
	s.RememberSearch(intent.Filters{Bedrooms: 2, Neighborhood: "allston"})
	s.RememberSearch(intent.Filters{})

	if s.LastFilters.Bedrooms != 2 {
		t.Errorf("empty filters must not clobber memory, Bedrooms = %d", s.LastFilters.Bedrooms)
	}
	if s.LastNeighborhood != "allston" {
		t.Errorf("LastNeighborhood = %q", s.LastNeighborhood)
	}
	if s.SearchCount != 2 {
		t.Errorf("SearchCount = %d, want 2", s.SearchCount)
	}
}
