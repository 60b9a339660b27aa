// Package conversation models per-session chat state: an append-only,
// bounded turn log plus the derived filter memory consulted by
// follow-up queries.
package conversation

import (
	"time"

	"github.com/kailas-cloud/propbot/internal/domain/intent"
)

// MaxTurns is the retention bound per session. Oldest turns are evicted
// first; the current turn is never evicted.
const MaxTurns = 20

// Role identifies the speaker of a turn.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Turn is one message in a session.
type Turn struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// Session is the state of one conversation, keyed by conversation id.
type Session struct {
	ID               string         `json:"id"`
	Turns            []Turn         `json:"turns"`
	LastFilters      intent.Filters `json:"last_filters"`
	LastNeighborhood string         `json:"last_neighborhood,omitempty"`
	SearchCount      int            `json:"search_count"`
	UpdatedAt        time.Time      `json:"updated_at"`
}

// New creates an empty session.
func New(id string) *Session {
	return &Session{ID: id, UpdatedAt: time.Now()}
}

// Append adds a turn, evicting the oldest turns beyond MaxTurns.
func (s *Session) Append(role Role, content string) {
	s.Turns = append(s.Turns, Turn{Role: role, Content: content})
	if n := len(s.Turns); n > MaxTurns {
		s.Turns = s.Turns[n-MaxTurns:]
	}
	s.UpdatedAt = time.Now()
}

// Recent returns up to n of the most recent turns, oldest first.
func (s *Session) Recent(n int) []Turn {
	if len(s.Turns) <= n {
		return s.Turns
	}
	return s.Turns[len(s.Turns)-n:]
}

// RememberSearch folds a retrieval turn's filters into the session
// memory and bumps the search counter.
func (s *Session) RememberSearch(filters intent.Filters) {
	s.SearchCount++
	if !filters.IsZero() {
		s.LastFilters = filters
	}
	if filters.Neighborhood != "" {
		s.LastNeighborhood = filters.Neighborhood
	}
	s.UpdatedAt = time.Now()
}

// Memory exposes the session's filter memory for intent classification.
// Returns nil when the session has no search history yet.
func (s *Session) Memory() *intent.Memory {
	if s.SearchCount == 0 && s.LastFilters.IsZero() && s.LastNeighborhood == "" {
		return nil
	}
	return &intent.Memory{
		LastFilters:      s.LastFilters,
		LastNeighborhood: s.LastNeighborhood,
	}
}
