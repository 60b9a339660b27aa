package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/kailas-cloud/propbot/internal/db"
	"github.com/kailas-cloud/propbot/internal/domain"
	"github.com/kailas-cloud/propbot/internal/domain/conversation"
)

// RedisStore persists conversation sessions as JSON in a key-value
// store with a TTL, surviving process restarts.
type RedisStore struct {
	store     db.KVStore
	keyPrefix string
	ttl       time.Duration
}

// NewRedisStore creates a durable session store on top of a KV store.
func NewRedisStore(store db.KVStore, keyPrefix string, ttl time.Duration) *RedisStore {
	return &RedisStore{
		store:     store,
		keyPrefix: keyPrefix + "session:",
		ttl:       ttl,
	}
}

// Get loads a session by id, or domain.ErrNotFound when the key is
// missing or expired.
func (s *RedisStore) Get(ctx context.Context, id string) (*conversation.Session, error) {
	data, err := s.store.Get(ctx, s.keyPrefix+id)
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get session %s: %w", id, err)
	}

	var sess conversation.Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return nil, fmt.Errorf("decode session %s: %w", id, err)
	}
	return &sess, nil
}

// Update applies fn to the freshest stored copy and writes it back,
// creating the session when absent. Serialization within one process
// is the caller's concern; cross-instance writes are last-writer-wins.
func (s *RedisStore) Update(ctx context.Context, id string, fn func(*conversation.Session)) error {
	sess, err := s.Get(ctx, id)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			return err
		}
		sess = conversation.New(id)
	}
	fn(sess)
	return s.Put(ctx, sess)
}

// Put stores the session and refreshes its TTL.
func (s *RedisStore) Put(ctx context.Context, sess *conversation.Session) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("encode session %s: %w", sess.ID, err)
	}
	if err := s.store.SetWithTTL(ctx, s.keyPrefix+sess.ID, data, s.ttl); err != nil {
		return fmt.Errorf("put session %s: %w", sess.ID, err)
	}
	return nil
}
