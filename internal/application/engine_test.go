package application

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TheCiege23/allfantasy-webapp-sub001/internal/config"
	"github.com/TheCiege23/allfantasy-webapp-sub001/internal/data/market"
	"github.com/TheCiege23/allfantasy-webapp-sub001/internal/domain/asset"
	"github.com/TheCiege23/allfantasy-webapp-sub001/internal/trade"
)

var fixedNow = time.Date(2025, 9, 1, 12, 0, 0, 0, time.UTC)

func writeArchive(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	doc := `{"players": {"Ja'Marr Chase": 9000}, "picks": {"2026-1-early": 900, "2026-1-mid": 700, "2026-1-late": 520}}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "2025-09-01.json"), []byte(doc), 0o644))
	return dir
}

func TestParseTrade(t *testing.T) {
	req, err := ParseTrade([]byte(`
as_of: 2025-09-01
timeline_a: Contender
timeline_b: rebuilding
league:
  teams: 10
  superflex: true
side_a:
  - name: Ja'Marr Chase
    position: wr
    age: 25
  - pick: 2026 1st early
side_b:
  - kind: pick
    season: 2027
    round: 2
    bucket: Late
  - season: 2026
    round: 1
`))
	require.NoError(t, err)

	assert.Equal(t, time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC), req.AsOf)
	assert.Equal(t, trade.TimelineContender, req.TimelineA)
	assert.Equal(t, trade.TimelineRebuild, req.TimelineB)
	assert.Equal(t, 10, req.League.Teams)
	assert.True(t, req.League.Superflex)

	require.Len(t, req.SideA, 2)
	assert.Equal(t, asset.KindPlayer, req.SideA[0].Kind)
	assert.Equal(t, asset.WR, req.SideA[0].Position)
	require.NotNil(t, req.SideA[0].Age)
	assert.Equal(t, 25.0, *req.SideA[0].Age)
	assert.Equal(t, asset.Pick(2026, 1, asset.BucketEarly), req.SideA[1])

	require.Len(t, req.SideB, 2)
	assert.Equal(t, asset.Pick(2027, 2, asset.BucketLate), req.SideB[0])
	assert.Equal(t, asset.Pick(2026, 1, asset.BucketUnknown), req.SideB[1])
}

func TestParseTradeDefaults(t *testing.T) {
	req, err := ParseTrade([]byte("side_a:\n  - name: Someone\n"))
	require.NoError(t, err)
	assert.Equal(t, asset.DefaultLeagueSettings(), req.League)
	assert.True(t, req.AsOf.IsZero())
	assert.Equal(t, trade.TimelineMiddle, req.TimelineA)
	assert.Empty(t, req.SideB)
}

func TestParseTradePartialLeagueKeepsDefaults(t *testing.T) {
	req, err := ParseTrade([]byte(`
league: {teams: 12, superflex: true}
side_a:
  - {name: "Derrick Henry", position: RB, age: 31}
side_b:
  - {name: "Brock Bowers", position: TE, age: 22}
`))
	require.NoError(t, err)

	want := asset.DefaultLeagueSettings()
	want.Superflex = true
	assert.Equal(t, want, req.League)
	assert.True(t, req.League.IsDynasty)
	assert.Equal(t, 1.0, req.League.PPR)
	assert.Equal(t, 15, req.League.BenchSlots)
}

func TestParseTradeErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"empty", "timeline_a: contender\n"},
		{"bad date", "as_of: 09/01/2025\nside_a:\n  - name: X\n"},
		{"pick without round", "side_a:\n  - kind: pick\n    season: 2026\n"},
		{"nameless player", "side_b:\n  - position: WR\n"},
		{"bad descriptor", "side_a:\n  - pick: next year sometime\n"},
		{"bad yaml", "side_a: [\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseTrade([]byte(tt.doc))
			assert.Error(t, err)
		})
	}
}

func TestLoadTradeFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trade.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"side_a":[{"pick":"2026-1-mid"}],"side_b":[{"name":"Brock Bowers","position":"TE"}]}`), 0o644))

	req, err := LoadTrade(path)
	require.NoError(t, err)
	assert.Equal(t, asset.Pick(2026, 1, asset.BucketMid), req.SideA[0])
	assert.Equal(t, "Brock Bowers", req.SideB[0].Name)

	_, err = LoadTrade(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestEngineEvaluatesFromArchive(t *testing.T) {
	t.Setenv(RedisAddrEnv, "")
	cfg := config.Default()
	cfg.History.Dir = writeArchive(t)

	e, err := NewEngine(context.Background(), cfg, WithClock(func() time.Time { return fixedNow }))
	require.NoError(t, err)
	defer e.Close()
	assert.Nil(t, e.Market)

	ev := e.Evaluate(context.Background(), trade.Request{
		SideA:  []asset.Spec{asset.Player("Ja'Marr Chase", asset.WR, asset.Float(25), nil)},
		SideB:  []asset.Spec{asset.Pick(2026, 1, asset.BucketMid)},
		League: asset.DefaultLeagueSettings(),
	})

	assert.Equal(t, fixedNow, ev.AsOf)
	require.Len(t, ev.SideA.Assets, 1)
	chase := ev.SideA.Assets[0]
	assert.Equal(t, asset.SourceHistorical, chase.Source)
	assert.Equal(t, 9000.0, chase.MarketValue)

	require.Len(t, ev.SideB.Assets, 1)
	assert.Equal(t, asset.SourceHistorical, ev.SideB.Assets[0].Source)
	assert.Equal(t, 700.0, ev.SideB.Total)
	assert.Equal(t, 1, e.History.Len(context.Background()))
}

func TestEngineUsesMarketSource(t *testing.T) {
	t.Setenv(RedisAddrEnv, "")
	calls := 0
	src := market.SourceFunc(func(_ context.Context, q market.Query) (*market.Snapshot, error) {
		calls++
		return market.NewSnapshot(q, fixedNow, []market.Entry{
			{Player: market.Player{Name: "Brock Bowers", Position: "TE", Age: asset.Float(22.9)}, Value: 7400},
		}), nil
	})

	e, err := NewEngine(context.Background(), nil,
		WithMarketSource(src),
		WithClock(func() time.Time { return fixedNow }),
	)
	require.NoError(t, err)
	defer e.Close()
	require.NotNil(t, e.Market)

	league := asset.DefaultLeagueSettings()
	p := e.Price(context.Background(), asset.Player("Brock Bowers", "", nil, nil), league, fixedNow)
	assert.Equal(t, asset.SourceMarket, p.Source)
	assert.Equal(t, 7400.0, p.MarketValue)
	assert.Equal(t, asset.TE, p.Spec.Position)

	e.Price(context.Background(), asset.Player("Brock Bowers", asset.TE, nil, nil), league, fixedNow)
	assert.Equal(t, 1, calls, "second lookup is served from the cache")
}

func TestEngineWritesMetrics(t *testing.T) {
	t.Setenv(RedisAddrEnv, "")
	e, err := NewEngine(context.Background(), nil, WithClock(func() time.Time { return fixedNow }))
	require.NoError(t, err)
	defer e.Close()

	e.Evaluate(context.Background(), trade.Request{
		SideA: []asset.Spec{asset.Pick(2026, 1, asset.BucketEarly)},
		SideB: []asset.Spec{asset.Pick(2026, 2, asset.BucketEarly)},
	})

	path := filepath.Join(t.TempDir(), "tradeval.prom")
	require.NoError(t, e.WriteMetrics(path))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "tradeval_evaluations_total")
	assert.Contains(t, string(data), `tradeval_priced_assets_total{kind="pick",source="model"} 2`)
}

func TestEngineRejectsBadDSN(t *testing.T) {
	cfg := config.Default()
	cfg.History.DSN = "postgres://user@127.0.0.1:1/none?sslmode=disable&connect_timeout=1"

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	_, err := NewEngine(ctx, cfg)
	assert.Error(t, err)
}
