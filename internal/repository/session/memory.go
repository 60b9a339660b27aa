package session

import (
	"context"
	"sync"
	"time"

	"github.com/kailas-cloud/propbot/internal/domain"
	"github.com/kailas-cloud/propbot/internal/domain/conversation"
)

const janitorInterval = time.Minute

// MemoryStore keeps conversation sessions in process memory with a TTL
// and a hard cap on the number of live sessions.
type MemoryStore struct {
	mu          sync.Mutex
	ttl         time.Duration
	maxSessions int
	sessions    map[string]*memoryEntry
	stop        chan struct{}
	stopOnce    sync.Once
}

type memoryEntry struct {
	sess      *conversation.Session
	expiresAt time.Time
}

// NewMemoryStore creates an in-memory session store and starts its
// expiry janitor.
func NewMemoryStore(ttl time.Duration, maxSessions int) *MemoryStore {
	s := &MemoryStore{
		ttl:         ttl,
		maxSessions: maxSessions,
		sessions:    make(map[string]*memoryEntry),
		stop:        make(chan struct{}),
	}
	go s.janitor()
	return s
}

// Get returns a copy of the session, or domain.ErrNotFound if it does
// not exist or has expired.
func (s *MemoryStore) Get(_ context.Context, id string) (*conversation.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.sessions[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if time.Now().After(entry.expiresAt) {
		delete(s.sessions, id)
		return nil, domain.ErrNotFound
	}
	return cloneSession(entry.sess), nil
}

// Put stores a copy of the session and refreshes its TTL. When the
// store is at capacity the stalest session is evicted.
func (s *MemoryStore) Put(_ context.Context, sess *conversation.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.sessions[sess.ID]; !exists && len(s.sessions) >= s.maxSessions {
		s.evictStalestLocked()
	}

	s.sessions[sess.ID] = &memoryEntry{
		sess:      cloneSession(sess),
		expiresAt: time.Now().Add(s.ttl),
	}
	return nil
}

// Update applies fn to the stored session under the store lock,
// creating the session when absent. Concurrent updates to the same
// session are serialized, so no turn is lost.
func (s *MemoryStore) Update(_ context.Context, id string, fn func(*conversation.Session)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.sessions[id]
	if !ok || time.Now().After(entry.expiresAt) {
		if !ok && len(s.sessions) >= s.maxSessions {
			s.evictStalestLocked()
		}
		entry = &memoryEntry{sess: conversation.New(id)}
		s.sessions[id] = entry
	}

	fn(entry.sess)
	entry.expiresAt = time.Now().Add(s.ttl)
	return nil
}

// Len reports the number of live sessions.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Close stops the expiry janitor.
func (s *MemoryStore) Close() {
	s.stopOnce.Do(func() { close(s.stop) })
}

func (s *MemoryStore) janitor() {
	ticker := time.NewTicker(janitorInterval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stop:
			return
		case <-ticker.C:
			s.sweep()
		}
	}
}

func (s *MemoryStore) sweep() {
	now := time.Now()
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, entry := range s.sessions {
		if now.After(entry.expiresAt) {
			delete(s.sessions, id)
		}
	}
}

// evictStalestLocked drops the session with the oldest update time.
// Caller holds s.mu.
func (s *MemoryStore) evictStalestLocked() {
	var (
		stalestID string
		stalestAt time.Time
		first     = true
	)
	for id, entry := range s.sessions {
		if first || entry.sess.UpdatedAt.Before(stalestAt) {
			stalestID = id
			stalestAt = entry.sess.UpdatedAt
			first = false
		}
	}
	if stalestID != "" {
		delete(s.sessions, stalestID)
	}
}

func cloneSession(src *conversation.Session) *conversation.Session {
	dst := *src
	dst.Turns = make([]conversation.Turn, len(src.Turns))
	copy(dst.Turns, src.Turns)
	return &dst
}
