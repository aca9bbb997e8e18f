// Package vorp measures value over a freely available replacement player at
// the same position, using the league's roster configuration to locate the
// replacement level.
package vorp

import (
	"math"

	"github.com/TheCiege23/allfantasy-webapp-sub001/internal/domain/asset"
)

// Anchors are points-per-game at overall position ranks 1, 12, 24 and 36
type Anchors [4]float64

var anchorRanks = [4]float64{1, 12, 24, 36}

// Config holds the replacement model constants
type Config struct {
	Anchors        map[asset.Position]Anchors `yaml:"anchors"`
	DefaultAnchors Anchors                    `yaml:"default_anchors"`
	// Per-rank decay below rank 36
	TailDecay float64 `yaml:"tail_decay"`

	FlexShares          map[asset.Position]float64 `yaml:"flex_shares"`
	SuperflexQBShare    float64                    `yaml:"superflex_qb_share"`
	SmoothBelow         int                        `yaml:"smooth_below"`
	SmoothAbove         int                        `yaml:"smooth_above"`
	Weeks               float64                    `yaml:"weeks"`
	Scale               float64                    `yaml:"scale"`
	PickRoundBaselines  map[int]float64            `yaml:"pick_round_baselines"`
	PickDefaultBaseline float64                    `yaml:"pick_default_baseline"`
}

// DefaultConfig returns the production replacement model
func DefaultConfig() Config {
	return Config{
		Anchors: map[asset.Position]Anchors{
			asset.QB: {25, 20, 17, 14},
			asset.RB: {22, 15, 12, 9.5},
			asset.WR: {21, 15.5, 12.5, 10.5},
			asset.TE: {16, 10, 8, 6.5},
		},
		DefaultAnchors: Anchors{10, 8, 6.5, 5},
		TailDecay:      0.08,
		FlexShares: map[asset.Position]float64{
			asset.RB: 0.40,
			asset.WR: 0.40,
			asset.TE: 0.20,
		},
		SuperflexQBShare:    0.55,
		SmoothBelow:         3,
		SmoothAbove:         2,
		Weeks:               17,
		Scale:               50,
		PickRoundBaselines:  map[int]float64{1: 0, 2: 200, 3: 400, 4: 600},
		PickDefaultBaseline: 800,
	}
}

// Engine evaluates replacement value
type Engine struct {
	cfg Config
}

// NewEngine creates an engine; nil uses defaults
func NewEngine(cfg *Config) *Engine {
	if cfg == nil {
		d := DefaultConfig()
		cfg = &d
	}
	return &Engine{cfg: *cfg}
}

// ReplacementThreshold is the league-wide rank at which a position becomes
// freely available: dedicated starters plus an estimated share of flex and
// superflex slots.
func (e *Engine) ReplacementThreshold(pos asset.Position, league asset.LeagueSettings) int {
	league = league.Normalized()
	teams := float64(league.Teams)

	n := float64(league.Starters[pos]) * teams
	n += float64(league.FlexSlots) * teams * e.cfg.FlexShares[pos]

	if league.Superflex {
		sf := float64(league.SuperflexSlots) * teams
		if pos == asset.QB {
			n += sf * e.cfg.SuperflexQBShare
		} else {
			n += sf * (1 - e.cfg.SuperflexQBShare) * e.cfg.FlexShares[pos]
		}
	}

	t := int(math.Round(n))
	if t < 1 {
		t = 1
	}
	return t
}

// EstimatePPG interpolates points per game from a position rank. Ranks past
// the last anchor decay exponentially. total > 0 caps the rank.
func (e *Engine) EstimatePPG(pos asset.Position, rank, total int) float64 {
	a, ok := e.cfg.Anchors[pos]
	if !ok {
		a = e.cfg.DefaultAnchors
	}
	if total > 0 && rank > total {
		rank = total
	}
	if rank < 1 {
		rank = 1
	}
	r := float64(rank)

	last := len(anchorRanks) - 1
	if r >= anchorRanks[last] {
		return a[last] * math.Pow(1-e.cfg.TailDecay, r-anchorRanks[last])
	}
	for i := 0; i < last; i++ {
		lo, hi := anchorRanks[i], anchorRanks[i+1]
		if r <= hi {
			frac := (r - lo) / (hi - lo)
			return a[i] + (a[i+1]-a[i])*frac
		}
	}
	return a[last]
}

// ReplacementPPG averages estimated production around the threshold to
// smooth noise at the boundary
func (e *Engine) ReplacementPPG(pos asset.Position, league asset.LeagueSettings) float64 {
	threshold := e.ReplacementThreshold(pos, league)
	lo := threshold - e.cfg.SmoothBelow
	if lo < 1 {
		lo = 1
	}
	hi := threshold + e.cfg.SmoothAbove

	var sum float64
	for r := lo; r <= hi; r++ {
		sum += e.EstimatePPG(pos, r, 0)
	}
	return sum / float64(hi-lo+1)
}

// PlayerVorp converts a per-game edge over replacement into a season value
func (e *Engine) PlayerVorp(playerPPG, replacementPPG float64) float64 {
	return math.Max(0, playerPPG-replacementPPG) * e.cfg.Weeks * e.cfg.Scale
}

// PlayerVorpFromRank is PlayerVorp for a player known only by position rank
func (e *Engine) PlayerVorpFromRank(pos asset.Position, rank int, league asset.LeagueSettings) float64 {
	if rank <= 0 {
		return 0
	}
	return e.PlayerVorp(e.EstimatePPG(pos, rank, 0), e.ReplacementPPG(pos, league))
}

// PickVorp is a pick's impact above what its round typically returns
func (e *Engine) PickVorp(impact float64, round int) float64 {
	baseline, ok := e.cfg.PickRoundBaselines[round]
	if !ok {
		baseline = e.cfg.PickDefaultBaseline
	}
	return math.Max(0, impact-baseline)
}
