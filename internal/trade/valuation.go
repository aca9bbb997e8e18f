package trade

import (
	"math"
	"time"

	"github.com/TheCiege23/allfantasy-webapp-sub001/internal/domain/asset"
	"github.com/TheCiege23/allfantasy-webapp-sub001/internal/domain/dynasty"
	"github.com/TheCiege23/allfantasy-webapp-sub001/internal/domain/picks"
	"github.com/TheCiege23/allfantasy-webapp-sub001/internal/domain/tiers"
)

// valuer turns priced assets into trade values
type valuer struct {
	cfg     Config
	tiers   *tiers.Classifier
	dynasty *dynasty.Calculator
	league  asset.LeagueSettings
	asOf    time.Time
}

func (v valuer) value(p asset.Priced) Asset {
	a := Asset{Priced: p, IDPMultiplier: 1}
	if p.Spec.IsPick() {
		v.valuePick(&a)
		return a
	}

	tr := v.tiers.Classify(p.Spec, tiers.ModeTrade)
	a.Tier = *tr.Tier
	a.ResolvedTier = tr.Tier
	a.TierSource = tr.Source

	in := dynasty.InputFor(p.Spec, a.Tier, v.league)
	a.Value = float64(v.dynasty.Score(in))
	if pos := p.Spec.Position; pos != "" && !pos.IsOffense() {
		a.IDPMultiplier = v.cfg.IDPMultiplier(v.league.IDPStarters)
		a.Value = math.Round(a.Value * a.IDPMultiplier)
	}

	a.Window = v.dynasty.Window(in.Position, in.Age, in.AgeKnown)
	if in.AgeKnown {
		age := int(math.Floor(in.Age))
		a.Aging = age >= v.cfg.agingAge(in.Position)
		if limit, ok := v.cfg.CornerstoneAges[in.Position]; ok {
			a.YoungCornerstone = a.Tier <= v.cfg.CornerstoneTier && age <= limit
		}
	}
	return a
}

func (v valuer) valuePick(a *Asset) {
	s := a.Spec
	a.Value = a.MarketValue
	a.Window = v.cfg.PickWindow

	bucket := s.Bucket
	if bucket == asset.BucketUnknown && s.PickNumber > 0 {
		bucket = picks.BucketForSlot(s.PickNumber, v.league.Teams)
	}
	yearsOut := s.Season - v.asOf.Year()

	a.FirstRound = s.Round == 1
	a.EarlyFirst = a.FirstRound && bucket == asset.BucketEarly &&
		yearsOut >= 0 && yearsOut <= v.cfg.EarlyFirstSeason

	switch {
	case a.EarlyFirst:
		a.Tier = asset.TierHigh
	case a.FirstRound:
		a.Tier = asset.TierStarter
	case s.Round == 2:
		a.Tier = asset.TierDepth
	default:
		a.Tier = asset.TierReplaceable
	}
}

// tilt adjusts a package's value by the receiving team's timeline:
// contenders pay up for aging veterans and discount picks, rebuilders the
// reverse
func (v valuer) tilt(assets []Asset, receiver Timeline) float64 {
	var sign float64
	switch receiver {
	case TimelineContender:
		sign = 1
	case TimelineRebuild:
		sign = -1
	default:
		return 0
	}
	var t float64
	for _, a := range assets {
		switch {
		case a.Spec.IsPick():
			t -= sign * v.cfg.TimelineTilt * a.Value
		case a.Aging:
			t += sign * v.cfg.TimelineTilt * a.Value
		}
	}
	return t
}

func sum(assets []Asset) float64 {
	var s float64
	for _, a := range assets {
		s += a.Value
	}
	return s
}

func avgWindow(assets []Asset) float64 {
	if len(assets) == 0 {
		return 0
	}
	var s float64
	for _, a := range assets {
		s += a.Window
	}
	return s / float64(len(assets))
}

// topAsset reports which side gives the single most valuable asset of the
// trade. ok is false when the top value is shared across both sides.
func topAsset(a, b []Asset) (side string, ok bool) {
	best, bestSide, bestIdx := -1.0, "", -1
	tied := false
	scan := func(label string, list []Asset) {
		for i, x := range list {
			switch {
			case x.Value > best:
				best, bestSide, bestIdx, tied = x.Value, label, i, false
			case x.Value == best && label != bestSide:
				tied = true
			}
		}
	}
	scan(SideA, a)
	scan(SideB, b)
	if bestIdx < 0 || tied || best <= 0 {
		return "", false
	}
	return bestSide, true
}

// percentDiff uses the larger side as the denominator
func percentDiff(a, b float64) int {
	hi := math.Max(a, b)
	if hi <= 0 {
		return 0
	}
	return int(math.Round(math.Abs(a-b) / hi * 100))
}

func valueRatio(a, b, maxRatio float64) float64 {
	hi, lo := math.Max(a, b), math.Min(a, b)
	if hi <= 0 {
		return 1
	}
	if lo <= 0 || hi/lo > maxRatio {
		return maxRatio
	}
	return hi / lo
}
