package config

import (
	"io/fs"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TheCiege23/allfantasy-webapp-sub001/internal/domain/asset"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	assert.Empty(t, cfg.Validate())
	assert.Equal(t, 45*time.Minute, cfg.Market.Cache.TTL)
	assert.Equal(t, 85, cfg.Trade.Sanity.QBRBVetoFloor)
}

func TestParseOverridesOnlyGivenKeys(t *testing.T) {
	cfg, err := Parse([]byte(`
trade:
  sanity:
    qb_rb_veto_floor: 90
  aging_ages:
    RB: 26
market:
  base_url: https://values.example.com/api
  cache:
    ttl: 30m
history:
  bucket_weights:
    early: 0.25
    mid: 0.5
    late: 0.25
`))
	require.NoError(t, err)

	assert.Equal(t, 90, cfg.Trade.Sanity.QBRBVetoFloor)
	assert.Equal(t, 35, cfg.Trade.Sanity.ValueGapPenalty)
	assert.Equal(t, 26, cfg.Trade.AgingAges[asset.RB])
	assert.Equal(t, 29, cfg.Trade.AgingAges[asset.WR])
	assert.Equal(t, 30*time.Minute, cfg.Market.Cache.TTL)
	assert.Equal(t, 24*time.Hour, cfg.Market.Cache.StaleFor)
	assert.Equal(t, "https://values.example.com/api", cfg.Market.BaseURL)
	assert.Equal(t, 0.5, cfg.History.BucketWeights.Mid)
}

func TestParseRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{"deltas", "trade:\n  classification:\n    lopsided_delta: 40\n", "ascending"},
		{"discount", "trade:\n  consolidation_discount: 1.5\n", "consolidation_discount"},
		{"weights", "history:\n  bucket_weights:\n    early: 0\n    mid: 0\n    late: 0\n", "bucket_weights"},
		{"url", "market:\n  base_url: ftp://nope\n", "base_url"},
		{"archive", "history:\n  dir: ./archive\n  dsn: postgres://x\n", "mutually exclusive"},
		{"ttl", "market:\n  cache:\n    ttl: 0s\n", "ttl"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestParseBadYAML(t *testing.T) {
	_, err := Parse([]byte("trade: [unclosed"))
	assert.Error(t, err)
}

func TestSaveAndLoad(t *testing.T) {
	cfg := Default()
	cfg.Trade.Sanity.QBRBVetoFloor = 80
	cfg.Market.Cache.TTL = time.Hour

	path := filepath.Join(t.TempDir(), "nested", "engine.yaml")
	require.NoError(t, Save(cfg, path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 80, loaded.Trade.Sanity.QBRBVetoFloor)
	assert.Equal(t, time.Hour, loaded.Market.Cache.TTL)
	assert.Equal(t, cfg.Trade.AgingAges, loaded.Trade.AgingAges)
	assert.Equal(t, cfg.Confidence, loaded.Confidence)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, fs.ErrNotExist)
}
