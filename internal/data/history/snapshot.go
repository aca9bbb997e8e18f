package history

import (
	"time"

	"github.com/TheCiege23/allfantasy-webapp-sub001/internal/domain/asset"
	"github.com/TheCiege23/allfantasy-webapp-sub001/internal/domain/names"
	"github.com/TheCiege23/allfantasy-webapp-sub001/internal/domain/picks"
)

// BucketWeights blends early/mid/late values when a pick's bucket is unknown
type BucketWeights struct {
	Early float64 `yaml:"early"`
	Mid   float64 `yaml:"mid"`
	Late  float64 `yaml:"late"`
}

// DefaultBucketWeights is 20% early, 60% mid, 20% late
func DefaultBucketWeights() BucketWeights {
	return BucketWeights{Early: 0.2, Mid: 0.6, Late: 0.2}
}

func (w BucketWeights) of(b asset.Bucket) float64 {
	switch b {
	case asset.BucketEarly:
		return w.Early
	case asset.BucketMid:
		return w.Mid
	case asset.BucketLate:
		return w.Late
	}
	return 0
}

// Snapshot is one archived day of values. It is never mutated after load.
type Snapshot struct {
	Date    time.Time
	Players map[string]float64
	Picks   map[string]float64

	index *names.Index[float64]
}

// NewSnapshot builds a snapshot and its player name index
func NewSnapshot(date time.Time, players, pickValues map[string]float64) *Snapshot {
	if players == nil {
		players = map[string]float64{}
	}
	if pickValues == nil {
		pickValues = map[string]float64{}
	}
	return &Snapshot{
		Date:    truncateDay(date),
		Players: players,
		Picks:   pickValues,
		index:   names.NewIndex(players),
	}
}

// PlayerValue resolves a player by loose name
func (s *Snapshot) PlayerValue(name string) (float64, string, bool) {
	m, ok := s.index.Lookup(name)
	if !ok {
		return 0, "", false
	}
	return m.Value, m.Name, true
}

// PickValue resolves a pick. An explicit bucket must match exactly (falling
// back to the round-level key as an averaged value); an unknown bucket is
// the weighted average of whichever buckets the snapshot carries.
func (s *Snapshot) PickValue(season, round int, bucket asset.Bucket, w BucketWeights) (value float64, averaged, ok bool) {
	if bucket != asset.BucketUnknown {
		if v, found := s.Picks[picks.Key(season, round, bucket)]; found {
			return v, false, true
		}
		if v, found := s.Picks[picks.Key(season, round, asset.BucketUnknown)]; found {
			return v, true, true
		}
		return 0, false, false
	}

	var sum, weight float64
	for _, b := range []asset.Bucket{asset.BucketEarly, asset.BucketMid, asset.BucketLate} {
		if v, found := s.Picks[picks.Key(season, round, b)]; found {
			sum += v * w.of(b)
			weight += w.of(b)
		}
	}
	if weight > 0 {
		return sum / weight, true, true
	}
	if v, found := s.Picks[picks.Key(season, round, asset.BucketUnknown)]; found {
		return v, true, true
	}
	return 0, false, false
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
