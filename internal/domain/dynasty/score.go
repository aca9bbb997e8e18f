// Package dynasty computes the canonical dynasty trade value of a player:
//
//	score = tierBase × position × ageCurve × sqrt(max(0.5, window)) × (1 + liquidity)
//
// The square root dampens long-window positions so years-left cannot
// dominate value on its own.
package dynasty

import (
	"math"

	"github.com/TheCiege23/allfantasy-webapp-sub001/internal/domain/asset"
)

// Calculator evaluates the dynasty score model
type Calculator struct {
	cfg Config
}

// NewCalculator creates a calculator; a zero config falls back to defaults
func NewCalculator(cfg *Config) *Calculator {
	if cfg == nil {
		d := DefaultConfig()
		cfg = &d
	}
	return &Calculator{cfg: *cfg}
}

// Breakdown exposes every factor of a score
type Breakdown struct {
	TierBase           float64 `json:"tier_base"`
	PositionMultiplier float64 `json:"position_multiplier"`
	AgeCurve           float64 `json:"age_curve"`
	Window             float64 `json:"window"`
	WindowMultiplier   float64 `json:"window_multiplier"`
	Liquidity          float64 `json:"liquidity"`
	Score              int     `json:"score"`
}

// Input is what the model needs to know about a player
type Input struct {
	Position  asset.Position
	Age       float64
	AgeKnown  bool
	Tier      asset.Tier
	Superflex bool
	TEPremium bool
}

// InputFor assembles a model input from a spec, a resolved tier and the league
func InputFor(spec asset.Spec, tier asset.Tier, league asset.LeagueSettings) Input {
	age, known := spec.AgeValue()
	return Input{
		Position:  spec.Position,
		Age:       age,
		AgeKnown:  known,
		Tier:      tier,
		Superflex: league.Superflex,
		TEPremium: league.TEPremium,
	}
}

// Score returns the rounded integer dynasty score
func (c *Calculator) Score(in Input) int {
	return c.Explain(in).Score
}

// Explain returns the score with its factor breakdown
func (c *Calculator) Explain(in Input) Breakdown {
	b := Breakdown{
		TierBase:           asset.ClampTier(int(in.Tier)).BaseValue(),
		PositionMultiplier: c.PositionMultiplier(in.Position, in.Superflex, in.TEPremium),
		AgeCurve:           c.AgeCurve(in.Position, in.Age, in.AgeKnown),
		Window:             c.Window(in.Position, in.Age, in.AgeKnown),
		Liquidity:          c.Liquidity(in.Position, in.Age, in.AgeKnown, in.Tier),
	}
	b.WindowMultiplier = math.Sqrt(math.Max(c.cfg.MinWindow, b.Window))
	raw := b.TierBase * b.PositionMultiplier * b.AgeCurve * b.WindowMultiplier * (1 + b.Liquidity)
	b.Score = int(math.Round(raw))
	return b
}

// PositionMultiplier weights positions by league format. TE premium only
// moves tight ends and superflex only moves quarterbacks.
func (c *Calculator) PositionMultiplier(pos asset.Position, superflex, tePremium bool) float64 {
	m := c.cfg.Positions
	switch pos {
	case asset.QB:
		if superflex {
			return m.QBSuperflex
		}
		return m.QBSingle
	case asset.WR:
		return m.WR
	case asset.TE:
		if tePremium {
			return m.TEPremium
		}
		return m.TE
	case asset.RB:
		return m.RB
	default:
		return m.Other
	}
}

// AgeCurve is a step function with hard cliffs; unknown age is neutral
func (c *Calculator) AgeCurve(pos asset.Position, age float64, known bool) float64 {
	if !known {
		return 1.0
	}
	steps, ok := c.cfg.AgeCurves[pos]
	if !ok {
		steps = c.cfg.DefaultAgeCurve
	}
	if v, ok := lookupStep(steps, floorAge(age)); ok {
		return v
	}
	return 1.0
}

// Window estimates remaining elite-production years
func (c *Calculator) Window(pos asset.Position, age float64, known bool) float64 {
	rule, ok := c.cfg.Windows[pos]
	if !ok {
		rule = c.cfg.DefaultWindow
	}
	if !known {
		return rule.Unknown
	}
	var w float64
	if len(rule.Steps) > 0 {
		w, _ = lookupStep(rule.Steps, floorAge(age))
	} else {
		w = math.Min(rule.Cap, math.Max(0, rule.EndAge-age))
	}
	return math.Max(rule.Floor, w)
}

// Liquidity is the ease-of-trade adjustment: young elite passers and
// receivers move easily, aging backs do not.
func (c *Calculator) Liquidity(pos asset.Position, age float64, known bool, tier asset.Tier) float64 {
	rule, ok := c.cfg.Liquidity[pos]
	if !ok || !known {
		return 0
	}
	if len(rule.AgingSteps) > 0 {
		v, _ := lookupStep(rule.AgingSteps, floorAge(age))
		return v
	}
	if age <= rule.YoungMaxAge {
		return rule.TierBonus[asset.ClampTier(int(tier))]
	}
	return 0
}

func floorAge(age float64) int {
	if age < 0 {
		return 0
	}
	return int(math.Floor(age))
}
