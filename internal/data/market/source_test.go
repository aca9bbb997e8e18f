package market

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const valuesBody = `[
  {"player":{"name":"Ja'Marr Chase","position":"WR","maybeAge":25.6,"maybeTeam":"CIN"},
   "value":10200,"redraftValue":9900,"positionRank":1,"overallRank":1,"trend30Day":120,
   "maybeMovingStandardDeviation":450},
  {"player":{"name":"Brock Bowers","position":"TE","maybeAge":22.9},
   "value":7400,"redraftValue":6100,"positionRank":1,"overallRank":14,"trend30Day":-40}
]`

func TestHTTPSourceFetch(t *testing.T) {
	var gotQuery map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/values/current", r.URL.Path)
		gotQuery = map[string]string{
			"isDynasty": r.URL.Query().Get("isDynasty"),
			"numQbs":    r.URL.Query().Get("numQbs"),
			"numTeams":  r.URL.Query().Get("numTeams"),
			"ppr":       r.URL.Query().Get("ppr"),
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(valuesBody))
	}))
	defer srv.Close()

	fixed := time.Date(2025, 9, 1, 12, 0, 0, 0, time.UTC)
	src := NewHTTPSource(srv.URL+"/", time.Second)
	src.Now = func() time.Time { return fixed }

	q := Query{IsDynasty: true, QBSlots: 2, Teams: 12, PPR: 0.5}
	snap, err := src.Fetch(context.Background(), q)
	require.NoError(t, err)

	assert.Equal(t, map[string]string{"isDynasty": "true", "numQbs": "2", "numTeams": "12", "ppr": "0.5"}, gotQuery)
	assert.Equal(t, fixed, snap.FetchedAt)
	assert.Equal(t, q, snap.Query)
	require.Len(t, snap.Entries, 2)

	chase := snap.Entries[0]
	assert.Equal(t, "CIN", chase.Player.Team)
	require.NotNil(t, chase.Player.Age)
	assert.Equal(t, 25.6, *chase.Player.Age)
	require.NotNil(t, chase.StdDev)
	assert.Equal(t, 450.0, *chase.StdDev)
	assert.Nil(t, snap.Entries[1].StdDev)
}

func TestHTTPSourceErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "slow down", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	_, err := NewHTTPSource(srv.URL, time.Second).Fetch(context.Background(), Query{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
}

func TestHTTPSourceBadJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"not":"a list"}`))
	}))
	defer srv.Close()

	_, err := NewHTTPSource(srv.URL, time.Second).Fetch(context.Background(), Query{})
	assert.ErrorContains(t, err, "failed to decode market snapshot")
}

func TestGuardedSourceTripsBreaker(t *testing.T) {
	calls := 0
	failing := SourceFunc(func(ctx context.Context, q Query) (*Snapshot, error) {
		calls++
		return nil, errors.New("upstream down")
	})

	cfg := DefaultGuardConfig()
	cfg.RPS = 0
	cfg.ConsecutiveFailures = 2
	g := NewGuardedSource(failing, cfg)
	ctx := context.Background()

	_, err := g.Fetch(ctx, Query{})
	assert.EqualError(t, err, "upstream down")
	_, err = g.Fetch(ctx, Query{})
	assert.EqualError(t, err, "upstream down")

	_, err = g.Fetch(ctx, Query{})
	assert.ErrorIs(t, err, ErrBreakerOpen)
	assert.Equal(t, 2, calls, "open breaker must not call through")
	assert.Equal(t, "open", g.State().String())
}

func TestGuardedSourcePassesThrough(t *testing.T) {
	want := NewSnapshot(Query{Teams: 10}, time.Now(), sampleEntries())
	g := NewGuardedSource(SourceFunc(func(ctx context.Context, q Query) (*Snapshot, error) {
		return want, nil
	}), DefaultGuardConfig())

	got, err := g.Fetch(context.Background(), Query{Teams: 10})
	require.NoError(t, err)
	assert.Same(t, want, got)
}

func TestGuardedSourceHonoursContext(t *testing.T) {
	cfg := DefaultGuardConfig()
	cfg.RPS = 0.001
	cfg.Burst = 1
	g := NewGuardedSource(SourceFunc(func(ctx context.Context, q Query) (*Snapshot, error) {
		return NewSnapshot(q, time.Now(), nil), nil
	}), cfg)

	_, err := g.Fetch(context.Background(), Query{})
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	_, err = g.Fetch(ctx, Query{})
	assert.ErrorContains(t, err, "rate limit")
}
