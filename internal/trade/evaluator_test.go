package trade

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TheCiege23/allfantasy-webapp-sub001/internal/data/history"
	"github.com/TheCiege23/allfantasy-webapp-sub001/internal/domain/asset"
	"github.com/TheCiege23/allfantasy-webapp-sub001/internal/domain/confidence"
	"github.com/TheCiege23/allfantasy-webapp-sub001/internal/domain/dynasty"
	"github.com/TheCiege23/allfantasy-webapp-sub001/internal/metrics"
	"github.com/TheCiege23/allfantasy-webapp-sub001/internal/pricing"
)

var asOf = time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC)

func player(name string, pos asset.Position, age float64, tier int) asset.Spec {
	return asset.Player(name, pos, asset.Float(age), asset.Int(tier))
}

func archiveEvaluator(t *testing.T, opts ...Option) *Evaluator {
	t.Helper()
	store := history.NewStaticStore(history.DefaultBucketWeights(),
		history.NewSnapshot(asOf, nil, map[string]float64{
			"2027-3-mid":   10000,
			"2027-4-mid":   7000,
			"2026-1-early": 900,
			"2026-1-mid":   700,
			"2026-1-late":  520,
			"2027-1-mid":   640,
		}),
	)
	p := pricing.New(pricing.Deps{History: store}, nil)
	opts = append([]Option{WithIDs(func() string { return "fixed-id" })}, opts...)
	return NewEvaluator(p, nil, opts...)
}

func TestTenThousandVersusSevenThousandIsUnrealistic(t *testing.T) {
	e := archiveEvaluator(t)

	ev := e.Evaluate(context.Background(), Request{
		SideA:  []asset.Spec{asset.Pick(2027, 3, asset.BucketMid)},
		SideB:  []asset.Spec{asset.Pick(2027, 4, asset.BucketMid)},
		League: asset.DefaultLeagueSettings(),
		AsOf:   asOf,
	})

	assert.Equal(t, 10000.0, ev.SideA.Total)
	assert.Equal(t, 7000.0, ev.SideB.Total)
	assert.Equal(t, 30, ev.PercentDiff)
	assert.InDelta(t, 10000.0/7000.0, ev.ValueRatio, 1e-9)
	assert.Equal(t, ClassUnrealistic, ev.Classification)
	assert.Equal(t, "C-", ev.Grade)
	assert.Equal(t, SideB, ev.Favoured)
	assert.True(t, ev.TierParity.Passed)
	assert.Contains(t, ev.Sanity.HitRules, RuleValueGap)
	assert.Equal(t, 35, ev.Sanity.RejectionEstimate)

	require.NotNil(t, ev.Fix)
	assert.Equal(t, FixValueGap, ev.Fix.Kind)
	assert.Equal(t, SideB, ev.Fix.Side)
	assert.Equal(t, 3000.0, ev.Fix.Amount)
}

func TestSuperflexQBForAgingRBVeto(t *testing.T) {
	e := NewEvaluator(nil, nil)
	league := asset.DefaultLeagueSettings()
	league.Superflex = true

	ev := e.Evaluate(context.Background(), Request{
		SideA:  []asset.Spec{player("Veteran Workhorse", asset.RB, 29, 2)},
		SideB:  []asset.Spec{player("Young Passer", asset.QB, 24, 1)},
		League: league,
		AsOf:   asOf,
	})

	assert.True(t, ev.Sanity.QBRBVeto)
	assert.GreaterOrEqual(t, ev.Sanity.RejectionEstimate, 85)
	assert.True(t, ev.Sanity.Asymmetric)
	assert.Equal(t, VerdictAsymmetric, ev.Overlay.Verdict)
	assert.Equal(t, ClassUnrealistic, ev.Classification)
	assert.False(t, ev.TierParity.Passed)

	require.NotNil(t, ev.Fix)
	assert.Equal(t, FixTierParity, ev.Fix.Kind, "tier violation outranks the sanity fix")
	assert.Equal(t, SideA, ev.Fix.Side)
}

func TestQBRBVetoLiftedByPremiumAsset(t *testing.T) {
	e := archiveEvaluator(t)
	league := asset.DefaultLeagueSettings()
	league.Superflex = true

	ev := e.Evaluate(context.Background(), Request{
		SideA: []asset.Spec{
			player("Veteran Workhorse", asset.RB, 29, 2),
			asset.Pick(2026, 1, asset.BucketEarly),
		},
		SideB:  []asset.Spec{player("Young Passer", asset.QB, 24, 1)},
		League: league,
		AsOf:   asOf,
	})

	assert.False(t, ev.Sanity.QBRBVeto)
	assert.False(t, ev.Sanity.Asymmetric)
	assert.True(t, ev.TierParity.Passed, "tier 2 plus a 1st answers a tier 1")
}

func TestQBRBVetoOnlyInSuperflex(t *testing.T) {
	e := NewEvaluator(nil, nil)

	ev := e.Evaluate(context.Background(), Request{
		SideA:  []asset.Spec{player("Veteran Workhorse", asset.RB, 29, 2)},
		SideB:  []asset.Spec{player("Young Passer", asset.QB, 24, 1)},
		League: asset.DefaultLeagueSettings(),
		AsOf:   asOf,
	})
	assert.False(t, ev.Sanity.QBRBVeto)
}

func TestConsolidationPenalty(t *testing.T) {
	e := NewEvaluator(nil, nil)
	// A gives three pieces and receives the single best asset, so A's package is discounted

	ev := e.Evaluate(context.Background(), Request{
		SideA: []asset.Spec{
			player("Depth Receiver One", asset.WR, 27, 3),
			player("Depth Receiver Two", asset.WR, 27, 3),
			player("Depth Tight End", asset.TE, 28, 3),
		},
		SideB:  []asset.Spec{player("Elite Receiver", asset.WR, 24, 0)},
		League: asset.DefaultLeagueSettings(),
		AsOf:   asOf,
	})

	assert.True(t, ev.ConsolidationApplied)
	assert.InDelta(t, ev.SideA.Raw*0.88, ev.SideA.Total, 1e-6)
	assert.Zero(t, ev.SideB.Consolidation)
	assert.Equal(t, ev.SideB.Raw, ev.SideB.Total)
	assert.Contains(t, ev.Sanity.HitRules, RuleGarbageBundle)
}

func TestNoConsolidationForSmallPackages(t *testing.T) {
	e := NewEvaluator(nil, nil)

	ev := e.Evaluate(context.Background(), Request{
		SideA: []asset.Spec{
			player("Depth Receiver One", asset.WR, 27, 3),
			player("Depth Receiver Two", asset.WR, 27, 3),
		},
		SideB:  []asset.Spec{player("Elite Receiver", asset.WR, 24, 0)},
		League: asset.DefaultLeagueSettings(),
		AsOf:   asOf,
	})
	assert.False(t, ev.ConsolidationApplied)
	assert.Equal(t, ev.SideA.Raw, ev.SideA.Total)
}

func TestEvaluateIsDeterministic(t *testing.T) {
	e := archiveEvaluator(t)
	req := Request{
		SideA: []asset.Spec{
			player("Bijan Robinson", asset.RB, 23.6, 0),
			asset.Pick(2027, 1, asset.BucketUnknown),
		},
		SideB: []asset.Spec{
			asset.Player("Justin Jefferson", asset.WR, asset.Float(26.2), nil),
			asset.Player("Trey McBride", asset.TE, asset.Float(25.9), nil),
			asset.Pick(2026, 1, asset.BucketLate),
		},
		League:    asset.DefaultLeagueSettings(),
		TimelineA: TimelineContender,
		TimelineB: TimelineRebuild,
		AsOf:      asOf,
	}

	first := e.Evaluate(context.Background(), req)
	second := e.Evaluate(context.Background(), req)
	assert.Equal(t, first, second)
	assert.Equal(t, "fixed-id", first.ID)
}

func TestEvaluationIDsAreUUIDs(t *testing.T) {
	e := NewEvaluator(nil, nil)
	req := Request{SideA: []asset.Spec{player("A", asset.WR, 25, 2)}, SideB: []asset.Spec{player("B", asset.WR, 25, 2)}}

	a := e.Evaluate(context.Background(), req)
	b := e.Evaluate(context.Background(), req)
	assert.Len(t, a.ID, 36)
	assert.NotEqual(t, a.ID, b.ID)
	assert.Equal(t, a.SideA.Total, b.SideA.Total)
}

func TestEvenTradeIsFair(t *testing.T) {
	e := NewEvaluator(nil, nil)

	ev := e.Evaluate(context.Background(), Request{
		SideA:  []asset.Spec{player("Receiver One", asset.WR, 25, 2)},
		SideB:  []asset.Spec{player("Receiver Two", asset.WR, 25, 2)},
		League: asset.DefaultLeagueSettings(),
		AsOf:   asOf,
	})
	assert.Equal(t, 0, ev.PercentDiff)
	assert.Equal(t, ClassFair, ev.Classification)
	assert.Equal(t, "A-", ev.Grade)
	assert.Equal(t, VerdictBalanced, ev.Overlay.Verdict)
	assert.Nil(t, ev.Fix)
	assert.Equal(t, 0, ev.Sanity.RejectionEstimate)
	assert.Equal(t, 1.0, ev.ValueRatio)
}

func TestConfidenceLearningScenario(t *testing.T) {
	e := archiveEvaluator(t)

	ev := e.Evaluate(context.Background(), Request{
		SideA: []asset.Spec{
			player("Unknown One", asset.WR, 25, 2),
			player("Unknown Two", asset.WR, 25, 3),
			player("Unknown Three", asset.RB, 23, 3),
			asset.Pick(2026, 1, asset.BucketUnknown),
		},
		SideB: []asset.Spec{
			player("Unknown Four", asset.QB, 26, 2),
			player("Unknown Five", asset.TE, 24, 3),
			asset.Pick(2027, 1, asset.BucketUnknown),
		},
		League: asset.DefaultLeagueSettings(),
		AsOf:   asOf,
	})

	c := ev.Confidence
	assert.Equal(t, confidence.RecencyExact, c.Recency)
	assert.GreaterOrEqual(t, c.Score, 0.45)
	assert.Less(t, c.Score, 0.70)
	assert.Equal(t, confidence.LabelLearning, c.Label)
	assert.Len(t, ev.Warnings, countUnresolvedPlayers(ev)+len(ev.Sanity.HitRules)+len(ev.Timeline.Flags))
}

func countUnresolvedPlayers(ev *Evaluation) int {
	n := 0
	for _, s := range []Side{ev.SideA, ev.SideB} {
		for _, a := range s.Assets {
			if !a.Resolved() {
				n++
			}
		}
	}
	return n
}

func TestPlayerValueIsDynastyScore(t *testing.T) {
	e := NewEvaluator(nil, nil)
	league := asset.DefaultLeagueSettings()
	league.TEPremium = true
	spec := player("Tight End", asset.TE, 24, 1)

	ev := e.Evaluate(context.Background(), Request{SideA: []asset.Spec{spec}, League: league, AsOf: asOf})
	want := dynasty.NewCalculator(nil).Score(dynasty.InputFor(spec, asset.TierHigh, league.Normalized()))
	require.Len(t, ev.SideA.Assets, 1)
	assert.Equal(t, float64(want), ev.SideA.Assets[0].Value)
}

func TestUnknownPlayerDefaultsToTierFour(t *testing.T) {
	e := NewEvaluator(nil, nil)

	ev := e.Evaluate(context.Background(), Request{
		SideA: []asset.Spec{asset.Player("Practice Squad Guy", asset.WR, nil, nil)},
		AsOf:  asOf,
	})
	require.Len(t, ev.SideA.Assets, 1)
	got := ev.SideA.Assets[0]
	assert.Equal(t, asset.TierReplaceable, got.Tier)
	assert.Equal(t, asset.TierDefault, got.TierSource)
	assert.Greater(t, got.Value, 0.0)
	assert.Equal(t, asset.SourceUnknown, got.Source)
}

func TestIDPAssetsAreScaled(t *testing.T) {
	e := NewEvaluator(nil, nil)
	league := asset.DefaultLeagueSettings()
	league.IDPStarters = 5

	ev := e.Evaluate(context.Background(), Request{
		SideA:  []asset.Spec{player("Edge Rusher", asset.DL, 25, 1)},
		SideB:  []asset.Spec{player("Edge Rusher", asset.WR, 25, 1)},
		League: league,
		AsOf:   asOf,
	})
	idp := ev.SideA.Assets[0]
	assert.Equal(t, 0.30, idp.IDPMultiplier)
	assert.Equal(t, 1.0, ev.SideB.Assets[0].IDPMultiplier)
	assert.Less(t, idp.Value, ev.SideB.Assets[0].Value)
}

func TestKickersAndDefensesAreScaled(t *testing.T) {
	e := NewEvaluator(nil, nil)

	ev := e.Evaluate(context.Background(), Request{
		SideA:  []asset.Spec{player("Brandon Aubrey", asset.K, 25, 2), player("Ravens", asset.DST, 25, 2)},
		SideB:  []asset.Spec{player("Zay Flowers", asset.WR, 25, 2), player("Fred Warner", asset.LB, 25, 2)},
		League: asset.DefaultLeagueSettings(),
		AsOf:   asOf,
	})
	for _, a := range ev.SideA.Assets {
		assert.Equal(t, 0.05, a.IDPMultiplier, a.Spec.Name)
	}
	assert.Equal(t, 1.0, ev.SideB.Assets[0].IDPMultiplier)
	assert.Equal(t, 0.05, ev.SideB.Assets[1].IDPMultiplier)
	assert.Less(t, ev.SideA.Assets[0].Value, ev.SideB.Assets[0].Value)
}

func TestEvaluationMetrics(t *testing.T) {
	m := metrics.New(nil)
	e := archiveEvaluator(t, WithMetrics(m))

	e.Evaluate(context.Background(), Request{
		SideA: []asset.Spec{asset.Pick(2027, 3, asset.BucketMid)},
		SideB: []asset.Spec{asset.Pick(2027, 4, asset.BucketMid)},
		AsOf:  asOf,
	})
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Evaluations.WithLabelValues("C-", string(ClassUnrealistic))))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RuleHits.WithLabelValues(RuleValueGap)))
}

func TestEvaluatorUsesClockWithoutAsOf(t *testing.T) {
	fixed := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	e := NewEvaluator(nil, nil, WithClock(func() time.Time { return fixed }))

	ev := e.Evaluate(context.Background(), Request{SideA: []asset.Spec{asset.Pick(2026, 1, asset.BucketEarly)}})
	assert.Equal(t, fixed, ev.AsOf)
	assert.True(t, ev.SideA.Assets[0].EarlyFirst)
}
