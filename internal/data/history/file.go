package history

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

type snapshotFile struct {
	Date    string             `json:"date"`
	Players map[string]float64 `json:"players"`
	Picks   map[string]float64 `json:"picks"`
}

// FileLoader reads one JSON document per snapshot from a directory
type FileLoader struct {
	Dir string
}

// Load parses every *.json file in Dir. A file without a date field is
// dated by its base name (YYYY-MM-DD.json).
func (l FileLoader) Load(ctx context.Context) ([]*Snapshot, error) {
	paths, err := filepath.Glob(filepath.Join(l.Dir, "*.json"))
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", l.Dir, err)
	}
	sort.Strings(paths)

	snaps := make([]*Snapshot, 0, len(paths))
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		snap, err := readSnapshotFile(path)
		if err != nil {
			return nil, err
		}
		snaps = append(snaps, snap)
	}
	return snaps, nil
}

func readSnapshotFile(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot %s: %w", path, err)
	}
	var doc snapshotFile
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse snapshot %s: %w", path, err)
	}

	raw := doc.Date
	if raw == "" {
		raw = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	date, err := time.Parse(dateLayout, raw)
	if err != nil {
		return nil, fmt.Errorf("snapshot %s has invalid date %q: %w", path, raw, err)
	}
	return NewSnapshot(date, doc.Players, doc.Picks), nil
}
