package tiers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TheCiege23/allfantasy-webapp-sub001/internal/domain/asset"
)

func TestClassify_CuratedPriorityOrder(t *testing.T) {
	c := NewClassifier(Config{Tables: [][]string{
		{"Sam Star"},
		{"Sam Star Jr.", "Other Guy"},
	}})

	res := c.Classify(asset.Player("Sam Star Jr.", asset.WR, nil, nil), ModePricing)
	require.NotNil(t, res.Tier)
	// tier 0 is searched first and its containment hit wins over tier 1's exact hit
	assert.Equal(t, asset.TierElite, *res.Tier)
	assert.Equal(t, asset.TierCurated, res.Source)
}

func TestClassify_CaseAndPunctuationInsensitive(t *testing.T) {
	c := NewClassifier(DefaultConfig())

	res := c.Classify(asset.Player("ja'marr CHASE", asset.WR, nil, nil), ModePricing)
	require.NotNil(t, res.Tier)
	assert.Equal(t, asset.TierElite, *res.Tier)

	res = c.Classify(asset.Player("Brian Thomas", asset.WR, nil, nil), ModePricing)
	require.NotNil(t, res.Tier)
	assert.Equal(t, asset.TierHigh, *res.Tier)
}

func TestClassify_UnmatchedDependsOnMode(t *testing.T) {
	c := NewClassifier(DefaultConfig())
	spec := asset.Player("Practice Squad Nobody", asset.RB, nil, nil)

	res := c.Classify(spec, ModePricing)
	assert.Nil(t, res.Tier)
	assert.Equal(t, asset.TierNone, res.Source)

	res = c.Classify(spec, ModeTrade)
	require.NotNil(t, res.Tier)
	assert.Equal(t, asset.TierReplaceable, *res.Tier)
	assert.Equal(t, asset.TierDefault, res.Source)
}

func TestClassify_ProvidedTierIsClamped(t *testing.T) {
	c := NewClassifier(DefaultConfig())
	res := c.Classify(asset.Player("Ja'Marr Chase", asset.WR, nil, asset.Int(12)), ModeTrade)
	require.NotNil(t, res.Tier)
	assert.Equal(t, asset.TierReplaceable, *res.Tier)
	assert.Equal(t, asset.TierProvided, res.Source)
}
