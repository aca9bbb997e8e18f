// Package confidence turns data completeness into a trust label for a
// valuation.
package confidence

import (
	"math"

	"github.com/TheCiege23/allfantasy-webapp-sub001/internal/domain/asset"
)

// Label is the human-facing trust bucket
type Label string

const (
	LabelHigh     Label = "High"
	LabelLearning Label = "Learning"
	LabelEvolving Label = "Evolving"
)

// Recency describes how the valuation date was matched
type Recency string

const (
	RecencyExact   Recency = "exact"   // archive snapshot on the requested date
	RecencyNearest Recency = "nearest" // archive snapshot from another date
	RecencyModel   Recency = "model"   // no archive, formula/market fallback only
)

// Config holds the scoring weights
type Config struct {
	Base              float64 `yaml:"base"`
	PlayerHistWeight  float64 `yaml:"player_hist_weight"`
	PickExactWeight   float64 `yaml:"pick_exact_weight"`
	AveragedPenalty   float64 `yaml:"averaged_penalty"`
	ExactDateBonus    float64 `yaml:"exact_date_bonus"`
	ModelPenalty      float64 `yaml:"model_penalty"`
	ManyAssetsCount   int     `yaml:"many_assets_count"`
	ManyAssetsBonus   float64 `yaml:"many_assets_bonus"`
	FewAssetsCount    int     `yaml:"few_assets_count"`
	FewAssetsPenalty  float64 `yaml:"few_assets_penalty"`
	Min               float64 `yaml:"min"`
	Max               float64 `yaml:"max"`
	HighThreshold     float64 `yaml:"high_threshold"`
	LearningThreshold float64 `yaml:"learning_threshold"`
}

// DefaultConfig returns the production weights
func DefaultConfig() Config {
	return Config{
		Base:              0.50,
		PlayerHistWeight:  0.25,
		PickExactWeight:   0.10,
		AveragedPenalty:   0.05,
		ExactDateBonus:    0.05,
		ModelPenalty:      0.10,
		ManyAssetsCount:   6,
		ManyAssetsBonus:   0.05,
		FewAssetsCount:    2,
		FewAssetsPenalty:  0.05,
		Min:               0.15,
		Max:               0.95,
		HighThreshold:     0.70,
		LearningThreshold: 0.45,
	}
}

// PlayerResult is one player's pricing outcome
type PlayerResult struct {
	Historical bool
}

// PickResult is one pick's pricing outcome
type PickResult struct {
	ExactBucket bool
	Averaged    bool
}

// Result is the scored confidence
type Result struct {
	Score   float64 `json:"score"`
	Label   Label   `json:"label"`
	Players int     `json:"players"`
	Picks   int     `json:"picks"`
	Recency Recency `json:"recency"`
}

// Scorer computes confidence
type Scorer struct {
	cfg Config
}

// NewScorer creates a scorer; nil uses defaults
func NewScorer(cfg *Config) *Scorer {
	if cfg == nil {
		d := DefaultConfig()
		cfg = &d
	}
	return &Scorer{cfg: *cfg}
}

// Compute scores the completeness of a set of pricing outcomes
func (s *Scorer) Compute(players []PlayerResult, picks []PickResult, recency Recency) Result {
	c := s.cfg
	score := c.Base

	if n := len(players); n > 0 {
		hist := 0
		for _, p := range players {
			if p.Historical {
				hist++
			}
		}
		score += c.PlayerHistWeight * float64(hist) / float64(n)
	}

	if n := len(picks); n > 0 {
		exact, averaged := 0, false
		for _, p := range picks {
			if p.ExactBucket {
				exact++
			}
			if p.Averaged {
				averaged = true
			}
		}
		score += c.PickExactWeight * float64(exact) / float64(n)
		if averaged {
			score -= c.AveragedPenalty
		}
	}

	switch recency {
	case RecencyExact:
		score += c.ExactDateBonus
	case RecencyModel:
		score -= c.ModelPenalty
	}

	total := len(players) + len(picks)
	switch {
	case total >= c.ManyAssetsCount:
		score += c.ManyAssetsBonus
	case total <= c.FewAssetsCount:
		score -= c.FewAssetsPenalty
	}

	score = math.Max(c.Min, math.Min(c.Max, score))
	// two decimals keeps labels stable against float noise at thresholds
	score = math.Round(score*100) / 100

	return Result{
		Score:   score,
		Label:   s.Label(score),
		Players: len(players),
		Picks:   len(picks),
		Recency: recency,
	}
}

// Label maps a score onto its trust bucket
func (s *Scorer) Label(score float64) Label {
	switch {
	case score >= s.cfg.HighThreshold:
		return LabelHigh
	case score >= s.cfg.LearningThreshold:
		return LabelLearning
	default:
		return LabelEvolving
	}
}

// FromPriced derives the scorer inputs from priced assets. Recency is exact
// only when every archive hit was on the requested date, model when nothing
// came from the archive.
func FromPriced(assets []asset.Priced) ([]PlayerResult, []PickResult, Recency) {
	var players []PlayerResult
	var picks []PickResult
	anyHist, allExact := false, true

	for _, a := range assets {
		if a.Historical() {
			anyHist = true
			if !a.ExactDate {
				allExact = false
			}
		}
		if a.Spec.IsPick() {
			picks = append(picks, PickResult{
				ExactBucket: a.Source == asset.SourceHistorical,
				Averaged:    a.Source == asset.SourceHistoricalAveraged,
			})
			continue
		}
		players = append(players, PlayerResult{Historical: a.Historical()})
	}

	recency := RecencyModel
	if anyHist {
		recency = RecencyNearest
		if allExact {
			recency = RecencyExact
		}
	}
	return players, picks, recency
}
