package confidence

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/TheCiege23/allfantasy-webapp-sub001/internal/domain/asset"
)

func TestCompute_NoHistoryManyAssetsExactDateIsLearning(t *testing.T) {
	s := NewScorer(nil)

	players := make([]PlayerResult, 4)
	picks := []PickResult{{}, {}}
	res := s.Compute(players, picks, RecencyExact)

	assert.GreaterOrEqual(t, res.Score, 0.45)
	assert.Less(t, res.Score, 0.70)
	assert.Equal(t, LabelLearning, res.Label)

	// averaged picks still never reach High
	res = s.Compute(players, []PickResult{{Averaged: true}, {Averaged: true}}, RecencyExact)
	assert.Equal(t, LabelLearning, res.Label)
	assert.InDelta(t, 0.55, res.Score, 1e-9)
}

func TestCompute_FullHistoryIsHigh(t *testing.T) {
	s := NewScorer(nil)
	players := []PlayerResult{{Historical: true}, {Historical: true}, {Historical: true}}
	picks := []PickResult{{ExactBucket: true}}

	res := s.Compute(players, picks, RecencyExact)
	// 0.50 + 0.25 + 0.10 + 0.05
	assert.InDelta(t, 0.90, res.Score, 1e-9)
	assert.Equal(t, LabelHigh, res.Label)
}

func TestCompute_ModelFallbackFewAssetsIsEvolving(t *testing.T) {
	s := NewScorer(nil)
	res := s.Compute([]PlayerResult{{}}, nil, RecencyModel)
	// 0.50 - 0.10 - 0.05
	assert.InDelta(t, 0.35, res.Score, 1e-9)
	assert.Equal(t, LabelEvolving, res.Label)
}

func TestCompute_Clamped(t *testing.T) {
	s := NewScorer(&Config{Base: 2, Min: 0.15, Max: 0.95, HighThreshold: 0.7, LearningThreshold: 0.45})
	assert.Equal(t, 0.95, s.Compute(nil, nil, RecencyNearest).Score)

	s = NewScorer(&Config{Base: -1, Min: 0.15, Max: 0.95, HighThreshold: 0.7, LearningThreshold: 0.45})
	assert.Equal(t, 0.15, s.Compute(nil, nil, RecencyNearest).Score)
}

func TestFromPriced(t *testing.T) {
	assets := []asset.Priced{
		{Spec: asset.Player("A", asset.WR, nil, nil), Source: asset.SourceHistorical, ExactDate: true},
		{Spec: asset.Player("B", asset.RB, nil, nil), Source: asset.SourceMarket},
		{Spec: asset.Pick(2027, 1, asset.BucketUnknown), Source: asset.SourceHistoricalAveraged, ExactDate: true},
		{Spec: asset.Pick(2027, 2, asset.BucketMid), Source: asset.SourceModel},
	}
	players, picks, recency := FromPriced(assets)

	assert.Equal(t, []PlayerResult{{Historical: true}, {Historical: false}}, players)
	assert.Equal(t, []PickResult{{Averaged: true}, {}}, picks)
	assert.Equal(t, RecencyExact, recency)

	_, _, recency = FromPriced(assets[1:2])
	assert.Equal(t, RecencyModel, recency)
}
