package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/ristretto/v2"
	"github.com/redis/go-redis/v9"
)

// Store persists session contexts between requests, keyed by the session
// cookie value. Load returns a fresh context for unknown or expired ids.
type Store interface {
	Load(ctx context.Context, id string) (*Context, error)
	Save(ctx context.Context, id string, sess *Context) error
}

// ---- Redis ----------------------------------------------------------------

const redisKeyPrefix = "mfb:session:"

// RedisStore keeps session contexts in Redis as JSON with a sliding TTL.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore constructs a RedisStore. Expired keys are the teardown
// mechanism: nothing deletes sessions explicitly.
func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

// Load fetches and decodes the context for id.
func (s *RedisStore) Load(ctx context.Context, id string) (*Context, error) {
	raw, err := s.client.Get(ctx, redisKeyPrefix+id).Bytes()
	if errors.Is(err, redis.Nil) {
		return New(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("session.RedisStore.Load: %w", err)
	}

	sess := &Context{}
	if err := json.Unmarshal(raw, sess); err != nil {
		return nil, fmt.Errorf("session.RedisStore.Load: decode: %w", err)
	}
	return sess, nil
}

// Save writes sess under id and refreshes its TTL.
func (s *RedisStore) Save(ctx context.Context, id string, sess *Context) error {
	raw, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("session.RedisStore.Save: encode: %w", err)
	}
	if err := s.client.Set(ctx, redisKeyPrefix+id, raw, s.ttl).Err(); err != nil {
		return fmt.Errorf("session.RedisStore.Save: %w", err)
	}
	sess.MarkClean()
	return nil
}

// ---- memory ---------------------------------------------------------------

// MemoryStore keeps session contexts in process memory, bounded by entry
// count and TTL. It is used when no Redis URL is configured and in tests.
// Each session costs 1, so maxSessions caps how many are held.
type MemoryStore struct {
	c   *ristretto.Cache[string, []byte]
	ttl time.Duration
}

// NewMemoryStore constructs an empty MemoryStore.
func NewMemoryStore(maxSessions int64, ttl time.Duration) (*MemoryStore, error) {
	c, err := ristretto.NewCache(&ristretto.Config[string, []byte]{
		NumCounters:        maxSessions * 10,
		MaxCost:            maxSessions,
		BufferItems:        64,
		IgnoreInternalCost: true,
	})
	if err != nil {
		return nil, fmt.Errorf("session.NewMemoryStore: %w", err)
	}
	return &MemoryStore{c: c, ttl: ttl}, nil
}

// Load returns a copy of the stored context so concurrent requests of the
// same session never share a pointer.
func (s *MemoryStore) Load(_ context.Context, id string) (*Context, error) {
	raw, ok := s.c.Get(id)
	if !ok {
		return New(), nil
	}
	sess := &Context{}
	if err := json.Unmarshal(raw, sess); err != nil {
		return nil, fmt.Errorf("session.MemoryStore.Load: %w", err)
	}
	return sess, nil
}

// Save stores a snapshot of sess under id. The write is flushed before
// returning so the next request of the session sees it.
func (s *MemoryStore) Save(_ context.Context, id string, sess *Context) error {
	raw, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("session.MemoryStore.Save: %w", err)
	}
	if !s.c.SetWithTTL(id, raw, 1, s.ttl) {
		return errors.New("session.MemoryStore.Save: write dropped")
	}
	s.c.Wait()
	sess.MarkClean()
	return nil
}

// Close releases the store's goroutines.
func (s *MemoryStore) Close() {
	s.c.Close()
}
