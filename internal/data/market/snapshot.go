// Package market fetches and caches live market value snapshots.
package market

import (
	"fmt"
	"sync"
	"time"

	"github.com/TheCiege23/allfantasy-webapp-sub001/internal/domain/asset"
	"github.com/TheCiege23/allfantasy-webapp-sub001/internal/domain/names"
)

// Query selects a market snapshot by league format
type Query struct {
	IsDynasty bool    `json:"isDynasty"`
	QBSlots   int     `json:"numQbs"`
	Teams     int     `json:"numTeams"`
	PPR       float64 `json:"ppr"`
}

// QueryFor derives the snapshot query from league settings
func QueryFor(ls asset.LeagueSettings) Query {
	ls = ls.Normalized()
	return Query{
		IsDynasty: ls.IsDynasty,
		QBSlots:   ls.QBSlots(),
		Teams:     ls.Teams,
		PPR:       ls.PPR,
	}
}

// Key is the cache key of the query
func (q Query) Key() string {
	return fmt.Sprintf("dynasty=%t:qbs=%d:teams=%d:ppr=%g", q.IsDynasty, q.QBSlots, q.Teams, q.PPR)
}

// Player is the identity part of a market entry
type Player struct {
	Name     string   `json:"name"`
	Position string   `json:"position"`
	Age      *float64 `json:"maybeAge,omitempty"`
	Team     string   `json:"maybeTeam,omitempty"`
}

// Entry is one valued player in a snapshot
type Entry struct {
	Player       Player   `json:"player"`
	Value        float64  `json:"value"`
	RedraftValue float64  `json:"redraftValue"`
	PositionRank int      `json:"positionRank"`
	OverallRank  int      `json:"overallRank"`
	Trend30Day   float64  `json:"trend30Day"`
	StdDev       *float64 `json:"maybeMovingStandardDeviation,omitempty"`
}

// Volatility is the relative standard deviation of the entry's value, when
// the market publishes one
func (e Entry) Volatility() (float64, bool) {
	if e.StdDev == nil || *e.StdDev <= 0 || e.Value <= 0 {
		return 0, false
	}
	return asset.ClampVolatility(*e.StdDev / e.Value), true
}

// Snapshot is one fetched market. Treat it as immutable once published.
type Snapshot struct {
	Query     Query     `json:"query"`
	FetchedAt time.Time `json:"fetchedAt"`
	Entries   []Entry   `json:"entries"`

	once  sync.Once
	index *names.Index[int]
}

// NewSnapshot builds a snapshot from entries
func NewSnapshot(q Query, fetchedAt time.Time, entries []Entry) *Snapshot {
	return &Snapshot{Query: q, FetchedAt: fetchedAt, Entries: entries}
}

// Index returns the name index over entries, built on first use
func (s *Snapshot) Index() *names.Index[int] {
	s.once.Do(func() {
		byName := make(map[string]int, len(s.Entries))
		for i, e := range s.Entries {
			if _, dup := byName[e.Player.Name]; !dup {
				byName[e.Player.Name] = i
			}
		}
		s.index = names.NewIndex(byName)
	})
	return s.index
}

// Lookup resolves a player entry by loose name
func (s *Snapshot) Lookup(name string) (Entry, bool) {
	if s == nil {
		return Entry{}, false
	}
	m, ok := s.Index().Lookup(name)
	if !ok {
		return Entry{}, false
	}
	return s.Entries[m.Value], true
}

// Age reports how old the snapshot is at now
func (s *Snapshot) Age(now time.Time) time.Duration {
	return now.Sub(s.FetchedAt)
}
