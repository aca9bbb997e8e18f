package market

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v8"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TheCiege23/allfantasy-webapp-sub001/internal/metrics"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time          { return c.t }
func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

type countingSource struct {
	calls int
	fail  bool
	now   func() time.Time
}

func (s *countingSource) Fetch(ctx context.Context, q Query) (*Snapshot, error) {
	s.calls++
	if s.fail {
		return nil, errors.New("upstream down")
	}
	return NewSnapshot(q, s.now(), sampleEntries()), nil
}

func TestCacheReadThroughAndTTL(t *testing.T) {
	clock := &fakeClock{t: time.Date(2025, 9, 1, 12, 0, 0, 0, time.UTC)}
	src := &countingSource{now: clock.Now}
	m := metrics.New(nil)
	cfg := CacheConfig{TTL: 30 * time.Minute, StaleFor: time.Hour}
	cache := NewCache(src, nil, cfg, WithClock(clock.Now), WithMetrics(m))
	ctx := context.Background()
	q := Query{IsDynasty: true, QBSlots: 1, Teams: 12, PPR: 1}

	first, err := cache.Snapshot(ctx, q)
	require.NoError(t, err)
	assert.Equal(t, 1, src.calls)

	clock.Advance(29 * time.Minute)
	second, err := cache.Snapshot(ctx, q)
	require.NoError(t, err)
	assert.Same(t, first, second)
	assert.Equal(t, 1, src.calls)

	clock.Advance(2 * time.Minute)
	third, err := cache.Snapshot(ctx, q)
	require.NoError(t, err)
	assert.NotSame(t, first, third)
	assert.Equal(t, 2, src.calls)

	// different settings are a different key
	_, err = cache.Snapshot(ctx, Query{IsDynasty: true, QBSlots: 2, Teams: 12, PPR: 1})
	require.NoError(t, err)
	assert.Equal(t, 3, src.calls)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.CacheRequests.WithLabelValues(metrics.CacheHit)))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.CacheRequests.WithLabelValues(metrics.CacheMiss)))
}

func TestCacheServesStaleOnError(t *testing.T) {
	clock := &fakeClock{t: time.Date(2025, 9, 1, 12, 0, 0, 0, time.UTC)}
	src := &countingSource{now: clock.Now}
	m := metrics.New(nil)
	cache := NewCache(src, nil, CacheConfig{TTL: 30 * time.Minute, StaleFor: time.Hour},
		WithClock(clock.Now), WithMetrics(m))
	ctx := context.Background()

	orig, err := cache.Snapshot(ctx, Query{})
	require.NoError(t, err)

	src.fail = true
	clock.Advance(45 * time.Minute)
	stale, err := cache.Snapshot(ctx, Query{})
	require.NoError(t, err)
	assert.Same(t, orig, stale)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CacheRequests.WithLabelValues(metrics.CacheStale)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.FetchFailures.WithLabelValues("error")))

	// past the retention window nothing is left to serve
	clock.Advance(2 * time.Hour)
	_, err = cache.Snapshot(ctx, Query{})
	assert.ErrorContains(t, err, "upstream down")
}

func TestCacheWithoutSource(t *testing.T) {
	cache := NewCache(nil, nil, DefaultCacheConfig())
	_, err := cache.Snapshot(context.Background(), Query{})
	assert.ErrorIs(t, err, ErrNoSource)
}

func TestMemoryStoreLastWriterWins(t *testing.T) {
	store := NewMemoryStore(nil)
	ctx := context.Background()
	a := NewSnapshot(Query{}, time.Now(), nil)
	b := NewSnapshot(Query{}, time.Now(), sampleEntries())

	_, err := store.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrCacheMiss)

	require.NoError(t, store.Set(ctx, "k", a, time.Minute))
	require.NoError(t, store.Set(ctx, "k", b, time.Minute))
	got, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.Same(t, b, got)
}

func TestRedisStore(t *testing.T) {
	db, mock := redismock.NewClientMock()
	store := NewRedisStore(db, "tradeval:market:")
	ctx := context.Background()

	snap := NewSnapshot(Query{IsDynasty: true, QBSlots: 2, Teams: 12, PPR: 1},
		time.Date(2025, 9, 1, 12, 0, 0, 0, time.UTC), sampleEntries())
	raw, err := json.Marshal(snap)
	require.NoError(t, err)

	mock.ExpectGet("tradeval:market:k").RedisNil()
	mock.ExpectSet("tradeval:market:k", raw, 90*time.Minute).SetVal("OK")
	mock.ExpectGet("tradeval:market:k").SetVal(string(raw))

	_, err = store.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrCacheMiss)

	require.NoError(t, store.Set(ctx, "k", snap, 90*time.Minute))

	got, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, snap.FetchedAt.Equal(got.FetchedAt))
	assert.Equal(t, snap.Query, got.Query)
	assert.Equal(t, snap.Entries, got.Entries)

	e, ok := got.Lookup("Josh Allen")
	assert.True(t, ok)
	assert.Equal(t, 9100.0, e.Value)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisStoreErrorsFallBackToSource(t *testing.T) {
	clock := &fakeClock{t: time.Date(2025, 9, 1, 12, 0, 0, 0, time.UTC)}
	raw, err := json.Marshal(NewSnapshot(Query{}, clock.t, sampleEntries()))
	require.NoError(t, err)

	db, mock := redismock.NewClientMock()
	mock.ExpectGet("p:" + Query{}.Key()).SetErr(errors.New("connection refused"))
	mock.ExpectSet("p:"+Query{}.Key(), raw, 25*time.Hour+45*time.Minute).SetVal("OK")

	src := &countingSource{now: clock.Now}
	cache := NewCache(src, NewRedisStore(db, "p:"), DefaultCacheConfig(), WithClock(clock.Now))

	snap, err := cache.Snapshot(context.Background(), Query{})
	require.NoError(t, err)
	assert.Len(t, snap.Entries, 3)
	assert.Equal(t, 1, src.calls)
	assert.NoError(t, mock.ExpectationsWereMet())
}
