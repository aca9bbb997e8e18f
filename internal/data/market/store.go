package market

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
)

// ErrCacheMiss is returned by a Store that holds nothing for a key
var ErrCacheMiss = errors.New("market: cache miss")

// Store is the backing storage of the snapshot cache. Entries outlive the
// freshness TTL so a stale copy can be served when a refresh fails.
type Store interface {
	Get(ctx context.Context, key string) (*Snapshot, error)
	Set(ctx context.Context, key string, snap *Snapshot, retain time.Duration) error
}

type memoryEntry struct {
	snap *Snapshot
	exp  time.Time
}

// MemoryStore is an in-process Store
type MemoryStore struct {
	mu  sync.Mutex
	m   map[string]memoryEntry
	now func() time.Time
}

// NewMemoryStore creates an empty store; nil now uses time.Now
func NewMemoryStore(now func() time.Time) *MemoryStore {
	if now == nil {
		now = time.Now
	}
	return &MemoryStore{m: make(map[string]memoryEntry), now: now}
}

// Get returns the retained snapshot for key
func (s *MemoryStore) Get(_ context.Context, key string) (*Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.m[key]
	if !ok || (!e.exp.IsZero() && s.now().After(e.exp)) {
		return nil, ErrCacheMiss
	}
	return e.snap, nil
}

// Set stores snap, replacing whatever was there
func (s *MemoryStore) Set(_ context.Context, key string, snap *Snapshot, retain time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	e := memoryEntry{snap: snap}
	if retain > 0 {
		e.exp = s.now().Add(retain)
	}
	s.m[key] = e
	return nil
}

// RedisStore keeps snapshots as JSON in Redis so several processes share
// one fetch
type RedisStore struct {
	client  *redis.Client
	prefix  string
	timeout time.Duration
}

// NewRedisStore wraps a client; keys are namespaced by prefix
func NewRedisStore(client *redis.Client, prefix string) *RedisStore {
	return &RedisStore{client: client, prefix: prefix, timeout: 500 * time.Millisecond}
}

// NewRedisStoreAddr dials addr lazily
func NewRedisStoreAddr(addr, prefix string) *RedisStore {
	return NewRedisStore(redis.NewClient(&redis.Options{Addr: addr}), prefix)
}

func (s *RedisStore) key(k string) string {
	return s.prefix + k
}

// Get decodes the stored snapshot
func (s *RedisStore) Get(ctx context.Context, key string) (*Snapshot, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	raw, err := s.client.Get(ctx, s.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("redis get %s: %w", key, err)
	}

	var snap Snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return nil, fmt.Errorf("failed to decode cached snapshot %s: %w", key, err)
	}
	return &snap, nil
}

// Set encodes snap with the retention as Redis expiry
func (s *RedisStore) Set(ctx context.Context, key string, snap *Snapshot, retain time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	raw, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("failed to encode snapshot %s: %w", key, err)
	}
	if err := s.client.Set(ctx, s.key(key), raw, retain).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}
