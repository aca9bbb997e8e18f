package market

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/TheCiege23/allfantasy-webapp-sub001/internal/domain/asset"
)

func sampleEntries() []Entry {
	sd := 450.0
	return []Entry{
		{Player: Player{Name: "Ja'Marr Chase", Position: "WR", Age: asset.Float(25.6)}, Value: 10200, PositionRank: 1, OverallRank: 1, StdDev: &sd},
		{Player: Player{Name: "Bijan Robinson", Position: "RB", Age: asset.Float(23.7)}, Value: 9800, PositionRank: 1, OverallRank: 2},
		{Player: Player{Name: "Josh Allen", Position: "QB", Age: asset.Float(29.4)}, Value: 9100, PositionRank: 1, OverallRank: 4},
	}
}

func TestQueryForLeague(t *testing.T) {
	ls := asset.DefaultLeagueSettings()
	ls.Superflex = true

	q := QueryFor(ls)
	assert.Equal(t, Query{IsDynasty: true, QBSlots: 2, Teams: 12, PPR: 1}, q)
	assert.Equal(t, "dynasty=true:qbs=2:teams=12:ppr=1", q.Key())

	ls.Superflex = false
	ls.SuperflexSlots = 0
	ls.PPR = 0.5
	assert.Equal(t, "dynasty=true:qbs=1:teams=12:ppr=0.5", QueryFor(ls).Key())
}

func TestSnapshotLookup(t *testing.T) {
	snap := NewSnapshot(Query{}, time.Now(), sampleEntries())

	e, ok := snap.Lookup("jamarr chase")
	assert.True(t, ok)
	assert.Equal(t, 10200.0, e.Value)

	e, ok = snap.Lookup("Bijan")
	assert.True(t, ok)
	assert.Equal(t, "Bijan Robinson", e.Player.Name)

	_, ok = snap.Lookup("Derrick Henry")
	assert.False(t, ok)

	var missing *Snapshot
	_, ok = missing.Lookup("Josh Allen")
	assert.False(t, ok)

	assert.Same(t, snap.Index(), snap.Index())
}

func TestEntryVolatility(t *testing.T) {
	entries := sampleEntries()

	v, ok := entries[0].Volatility()
	assert.True(t, ok)
	assert.InDelta(t, 450.0/10200.0, v, 1e-9)

	_, ok = entries[1].Volatility()
	assert.False(t, ok)

	huge := 9000.0
	e := Entry{Value: 1000, StdDev: &huge}
	v, ok = e.Volatility()
	assert.True(t, ok)
	assert.Equal(t, asset.MaxVolatility, v)
}
