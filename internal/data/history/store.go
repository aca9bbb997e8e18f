// Package history serves archived asset values indexed by date. The dataset
// is loaded lazily on first use and never mutated afterwards.
package history

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// ErrNoSnapshot is returned when the archive holds no data at all
var ErrNoSnapshot = errors.New("history: no archived snapshot")

// Loader reads the complete archive
type Loader interface {
	Load(ctx context.Context) ([]*Snapshot, error)
}

// LoaderFunc adapts a function to Loader
type LoaderFunc func(ctx context.Context) ([]*Snapshot, error)

// Load calls f
func (f LoaderFunc) Load(ctx context.Context) ([]*Snapshot, error) { return f(ctx) }

// Config selects and tunes the archive
type Config struct {
	Dir           string        `yaml:"dir"`
	DSN           string        `yaml:"dsn"`
	QueryTimeout  time.Duration `yaml:"query_timeout"`
	BucketWeights BucketWeights `yaml:"bucket_weights"`
}

// DefaultConfig has no archive configured
func DefaultConfig() Config {
	return Config{
		QueryTimeout:  10 * time.Second,
		BucketWeights: DefaultBucketWeights(),
	}
}

// Store is the process-wide archive. The first At call triggers the load;
// a failed load is retried on the next call.
type Store struct {
	loader  Loader
	weights BucketWeights

	mu        sync.Mutex
	loaded    bool
	snapshots []*Snapshot
	loadErr   error
}

// NewStore wraps a loader. A nil loader yields an empty archive.
func NewStore(loader Loader, weights BucketWeights) *Store {
	return &Store{loader: loader, weights: weights}
}

// NewStaticStore serves already loaded snapshots
func NewStaticStore(weights BucketWeights, snapshots ...*Snapshot) *Store {
	return NewStore(LoaderFunc(func(context.Context) ([]*Snapshot, error) {
		return snapshots, nil
	}), weights)
}

// Weights returns the bucket blend used for picks without a bucket
func (s *Store) Weights() BucketWeights { return s.weights }

func (s *Store) load(ctx context.Context) []*Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loaded {
		return s.snapshots
	}
	if s.loader == nil {
		s.loaded = true
		return nil
	}
	snaps, err := s.loader.Load(ctx)
	if err != nil {
		s.loadErr = err
		log.Warn().Err(err).Msg("Historical archive unavailable, continuing without it")
		return nil
	}
	sorted := make([]*Snapshot, 0, len(snaps))
	for _, sn := range snaps {
		if sn != nil {
			sorted = append(sorted, sn)
		}
	}
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Date.Before(sorted[j].Date) })
	s.snapshots = sorted
	s.loadErr = nil
	s.loaded = true
	log.Info().Int("snapshots", len(sorted)).Msg("Historical archive loaded")
	return sorted
}

// LoadErr reports the error of the last failed load, if any
func (s *Store) LoadErr() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadErr
}

// Len returns the number of archived snapshots, loading if needed
func (s *Store) Len(ctx context.Context) int {
	return len(s.load(ctx))
}

// At returns the latest snapshot on or before date, else the earliest one.
// exact reports whether the snapshot is from the requested day.
func (s *Store) At(ctx context.Context, date time.Time) (snap *Snapshot, exact bool, err error) {
	if s == nil {
		return nil, false, ErrNoSnapshot
	}
	snaps := s.load(ctx)
	if len(snaps) == 0 {
		return nil, false, ErrNoSnapshot
	}

	day := truncateDay(date)
	// first snapshot strictly after day
	i := sort.Search(len(snaps), func(i int) bool { return snaps[i].Date.After(day) })
	if i == 0 {
		snap = snaps[0]
	} else {
		snap = snaps[i-1]
	}
	return snap, snap.Date.Equal(day), nil
}
