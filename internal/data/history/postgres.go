package history

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq" // PostgreSQL driver
)

const (
	rowKindPlayer = "player"
	rowKindPick   = "pick"
)

type valueRow struct {
	SnapshotDate time.Time `db:"snapshot_date"`
	Kind         string    `db:"kind"`
	Key          string    `db:"key"`
	Value        float64   `db:"value"`
}

// PostgresLoader reads the archive from the historical_values table
type PostgresLoader struct {
	db      *sqlx.DB
	timeout time.Duration
}

// NewPostgresLoader wraps an open connection
func NewPostgresLoader(db *sqlx.DB, timeout time.Duration) *PostgresLoader {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &PostgresLoader{db: db, timeout: timeout}
}

// OpenPostgres connects with lib/pq and verifies the connection
func OpenPostgres(ctx context.Context, dsn string) (*sqlx.DB, error) {
	if dsn == "" {
		return nil, fmt.Errorf("history DSN is required")
	}
	db, err := sqlx.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(4)
	db.SetConnMaxIdleTime(5 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return db, nil
}

// Load groups all rows by snapshot date
func (l *PostgresLoader) Load(ctx context.Context) ([]*Snapshot, error) {
	ctx, cancel := context.WithTimeout(ctx, l.timeout)
	defer cancel()

	query := `
		SELECT snapshot_date, kind, key, value
		FROM historical_values
		ORDER BY snapshot_date`

	var rows []valueRow
	if err := l.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("failed to query historical values: %w", err)
	}

	type bucket struct {
		date    time.Time
		players map[string]float64
		picks   map[string]float64
	}
	byDay := make(map[time.Time]*bucket)
	var order []time.Time
	for _, r := range rows {
		day := truncateDay(r.SnapshotDate)
		b, ok := byDay[day]
		if !ok {
			b = &bucket{date: day, players: map[string]float64{}, picks: map[string]float64{}}
			byDay[day] = b
			order = append(order, day)
		}
		switch r.Kind {
		case rowKindPlayer:
			b.players[r.Key] = r.Value
		case rowKindPick:
			b.picks[r.Key] = r.Value
		default:
			return nil, fmt.Errorf("unknown historical row kind %q", r.Kind)
		}
	}

	snaps := make([]*Snapshot, 0, len(order))
	for _, day := range order {
		b := byDay[day]
		snaps = append(snaps, NewSnapshot(b.date, b.players, b.picks))
	}
	return snaps, nil
}
