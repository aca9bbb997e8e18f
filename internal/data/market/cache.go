package market

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/TheCiege23/allfantasy-webapp-sub001/internal/metrics"
)

// ErrNoSource is returned when nothing is cached and no source is configured
var ErrNoSource = errors.New("market: no snapshot source configured")

// CacheConfig controls freshness and backing storage
type CacheConfig struct {
	TTL         time.Duration `yaml:"ttl"`
	StaleFor    time.Duration `yaml:"stale_for"`
	RedisAddr   string        `yaml:"redis_addr"`
	RedisPrefix string        `yaml:"redis_prefix"`
}

// DefaultCacheConfig keeps snapshots fresh for 45 minutes and serves stale
// copies for a day after that
func DefaultCacheConfig() CacheConfig {
	return CacheConfig{
		TTL:         45 * time.Minute,
		StaleFor:    24 * time.Hour,
		RedisPrefix: "tradeval:market:",
	}
}

// Cache is a read-through TTL cache over a Source. Concurrent refreshes may
// both fetch; the last Set wins.
type Cache struct {
	source  Source
	store   Store
	ttl     time.Duration
	retain  time.Duration
	now     func() time.Time
	metrics *metrics.Registry
}

// CacheOption customises a Cache
type CacheOption func(*Cache)

// WithClock injects the clock used for freshness checks
func WithClock(now func() time.Time) CacheOption {
	return func(c *Cache) { c.now = now }
}

// WithMetrics records hits, misses and fetch failures
func WithMetrics(m *metrics.Registry) CacheOption {
	return func(c *Cache) { c.metrics = m }
}

// NewCache builds a cache. A nil store uses an in-memory store on the same
// clock.
func NewCache(source Source, store Store, cfg CacheConfig, opts ...CacheOption) *Cache {
	c := &Cache{
		source: source,
		store:  store,
		ttl:    cfg.TTL,
		retain: cfg.TTL + cfg.StaleFor,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.ttl <= 0 {
		c.ttl = DefaultCacheConfig().TTL
		c.retain = c.ttl + cfg.StaleFor
	}
	if c.store == nil {
		c.store = NewMemoryStore(c.now)
	}
	return c
}

// Snapshot returns a fresh snapshot for q, refetching when the cached copy
// is older than the TTL. A failed refresh falls back to the stale copy.
func (c *Cache) Snapshot(ctx context.Context, q Query) (*Snapshot, error) {
	key := q.Key()

	cached, err := c.store.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, ErrCacheMiss) {
			log.Warn().Err(err).Str("key", key).Msg("Snapshot cache read failed")
		}
		cached = nil
	}

	if cached != nil && cached.Age(c.now()) < c.ttl {
		c.metrics.CacheRequest(metrics.CacheHit)
		return cached, nil
	}

	if c.source == nil {
		if cached != nil {
			c.metrics.CacheRequest(metrics.CacheStale)
			return cached, nil
		}
		return nil, ErrNoSource
	}

	fresh, err := c.source.Fetch(ctx, q)
	if err == nil && fresh == nil {
		err = errors.New("source returned no snapshot")
	}
	if err != nil {
		c.metrics.FetchFailed(failureReason(err))
		if cached != nil {
			log.Warn().Err(err).
				Str("key", key).
				Dur("age", cached.Age(c.now())).
				Msg("Snapshot refresh failed, serving stale copy")
			c.metrics.CacheRequest(metrics.CacheStale)
			return cached, nil
		}
		return nil, fmt.Errorf("fetch market snapshot: %w", err)
	}

	c.metrics.CacheRequest(metrics.CacheMiss)
	if fresh.FetchedAt.IsZero() {
		fresh.FetchedAt = c.now()
	}
	if err := c.store.Set(ctx, key, fresh, c.retain); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("Snapshot cache write failed")
	}
	log.Debug().Str("key", key).Int("entries", len(fresh.Entries)).Msg("Market snapshot refreshed")
	return fresh, nil
}

func failureReason(err error) string {
	switch {
	case errors.Is(err, ErrBreakerOpen):
		return "breaker_open"
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return "timeout"
	default:
		return "error"
	}
}
