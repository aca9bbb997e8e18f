package trade

import "github.com/TheCiege23/allfantasy-webapp-sub001/internal/domain/asset"

// IDPStep scales IDP assets by how many IDP starters the league plays
type IDPStep struct {
	MaxStarters int     `yaml:"max_starters"`
	Multiplier  float64 `yaml:"multiplier"`
}

// SanityConfig holds the rejection heuristics' thresholds and penalties
type SanityConfig struct {
	ValueGapPercent       int     `yaml:"value_gap_percent"`        // ≥30% gap
	ValueGapPenalty       int     `yaml:"value_gap_penalty"`        // +35
	TierParityPenalty     int     `yaml:"tier_parity_penalty"`      // +40
	GarbageMinPieces      int     `yaml:"garbage_min_pieces"`       // ≥3 pieces
	GarbageMinLowTier     int     `yaml:"garbage_min_low_tier"`     // ≥2 of them tier 3+
	GarbagePenalty        int     `yaml:"garbage_penalty"`          // +45
	QBRBVetoFloor         int     `yaml:"qb_rb_veto_floor"`         // rejection floor 85
	WindowMismatchYears   float64 `yaml:"window_mismatch_years"`    // ≥5 years
	WindowMismatchPenalty int     `yaml:"window_mismatch_penalty"`  // +15
	AgingRBPenalty        int     `yaml:"aging_rb_penalty"`         // +30
	FixRejectionThreshold int     `yaml:"fix_rejection_threshold"`  // sanity fix above this estimate
}

// ClassificationConfig holds the percent-diff cut-offs
type ClassificationConfig struct {
	UnrealisticRejection int `yaml:"unrealistic_rejection"`
	UnrealisticDelta     int `yaml:"unrealistic_delta"`
	VeryLopsidedDelta    int `yaml:"very_lopsided_delta"`
	LopsidedDelta        int `yaml:"lopsided_delta"`
	SlightEdgeDelta      int `yaml:"slight_edge_delta"`
	AgingDowngradeCount  int `yaml:"aging_downgrade_count"`
}

// OverlayConfig sets the window gaps of the dynasty overlay
type OverlayConfig struct {
	StrongGap float64 `yaml:"strong_gap"`
	SlightGap float64 `yaml:"slight_gap"`
}

// Config holds every evaluator tunable
type Config struct {
	IDPSteps   []IDPStep `yaml:"idp_steps"`
	IDPDefault float64   `yaml:"idp_default"`

	TimelineTilt float64 `yaml:"timeline_tilt"`

	ConsolidationPieces   int     `yaml:"consolidation_pieces"`
	ConsolidationDiscount float64 `yaml:"consolidation_discount"`

	AgingAges        map[asset.Position]int `yaml:"aging_ages"`
	AgingDefault     int                    `yaml:"aging_default"`
	CornerstoneAges  map[asset.Position]int `yaml:"cornerstone_ages"`
	CornerstoneTier  asset.Tier             `yaml:"cornerstone_tier"`
	PickWindow       float64                `yaml:"pick_window"`
	MaxValueRatio    float64                `yaml:"max_value_ratio"`
	EarlyFirstSeason int                    `yaml:"early_first_seasons"` // seasons ahead an early 1st counts as tier 1

	Sanity         SanityConfig         `yaml:"sanity"`
	Classification ClassificationConfig `yaml:"classification"`
	Overlay        OverlayConfig        `yaml:"overlay"`
}

// DefaultConfig returns the production evaluator settings
func DefaultConfig() Config {
	return Config{
		IDPSteps: []IDPStep{
			{MaxStarters: 0, Multiplier: 0.05},
			{MaxStarters: 3, Multiplier: 0.20},
			{MaxStarters: 6, Multiplier: 0.30},
			{MaxStarters: 9, Multiplier: 0.40},
		},
		IDPDefault: 0.55,

		TimelineTilt: 0.05,

		ConsolidationPieces:   3,
		ConsolidationDiscount: 0.12,

		AgingAges: map[asset.Position]int{
			asset.RB: 27,
			asset.WR: 29,
			asset.TE: 30,
			asset.QB: 33,
		},
		AgingDefault: 30,
		CornerstoneAges: map[asset.Position]int{
			asset.RB: 24,
			asset.WR: 25,
			asset.TE: 26,
			asset.QB: 27,
		},
		CornerstoneTier:  asset.TierHigh,
		PickWindow:       6,
		MaxValueRatio:    99,
		EarlyFirstSeason: 1,

		Sanity: SanityConfig{
			ValueGapPercent:       30,
			ValueGapPenalty:       35,
			TierParityPenalty:     40,
			GarbageMinPieces:      3,
			GarbageMinLowTier:     2,
			GarbagePenalty:        45,
			QBRBVetoFloor:         85,
			WindowMismatchYears:   5,
			WindowMismatchPenalty: 15,
			AgingRBPenalty:        30,
			FixRejectionThreshold: 50,
		},
		Classification: ClassificationConfig{
			UnrealisticRejection: 70,
			UnrealisticDelta:     30,
			VeryLopsidedDelta:    20,
			LopsidedDelta:        12,
			SlightEdgeDelta:      5,
			AgingDowngradeCount:  2,
		},
		Overlay: OverlayConfig{
			StrongGap: 5,
			SlightGap: 2,
		},
	}
}

// IDPMultiplier is the scale applied to non-offensive assets in a league with n IDP
// starters
func (c Config) IDPMultiplier(starters int) float64 {
	for _, s := range c.IDPSteps {
		if starters <= s.MaxStarters {
			return s.Multiplier
		}
	}
	return c.IDPDefault
}

func (c Config) agingAge(pos asset.Position) int {
	if a, ok := c.AgingAges[pos]; ok {
		return a
	}
	return c.AgingDefault
}
