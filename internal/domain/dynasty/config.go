package dynasty

import "github.com/TheCiege23/allfantasy-webapp-sub001/internal/domain/asset"

// AgeStep is one step of an age curve: ages up to and including MaxAge get
// Multiplier. The last step of a curve should carry a large MaxAge.
type AgeStep struct {
	MaxAge     int     `yaml:"max_age"`
	Multiplier float64 `yaml:"multiplier"`
}

// WindowRule estimates remaining elite years as min(Cap, max(0, EndAge-age)).
// When Steps is set it is used instead, keyed on floor(age).
type WindowRule struct {
	EndAge  float64   `yaml:"end_age"`
	Cap     float64   `yaml:"cap"`
	Steps   []AgeStep `yaml:"steps,omitempty"`
	Floor   float64   `yaml:"floor"`
	Unknown float64   `yaml:"unknown"` // used when age is missing
}

// LiquidityRule adds a trade-liquidity premium or discount
type LiquidityRule struct {
	// Young elite premium, applied when age <= YoungMaxAge
	YoungMaxAge float64                `yaml:"young_max_age"`
	TierBonus   map[asset.Tier]float64 `yaml:"tier_bonus"`

	// Aging discount keyed on floor(age), the last step is open-ended
	AgingSteps []AgeStep `yaml:"aging_steps"`
}

// PositionMultipliers holds the format-dependent position weights
type PositionMultipliers struct {
	QBSuperflex float64 `yaml:"qb_superflex"`
	QBSingle    float64 `yaml:"qb_single"`
	WR          float64 `yaml:"wr"`
	TEPremium   float64 `yaml:"te_premium"`
	TE          float64 `yaml:"te"`
	RB          float64 `yaml:"rb"`
	Other       float64 `yaml:"other"`
}

// Config is every constant the dynasty score uses
type Config struct {
	Positions PositionMultipliers              `yaml:"positions"`
	AgeCurves map[asset.Position][]AgeStep     `yaml:"age_curves"`
	Windows   map[asset.Position]WindowRule    `yaml:"windows"`
	Liquidity map[asset.Position]LiquidityRule `yaml:"liquidity"`

	// Fallbacks for positions without their own entry
	DefaultAgeCurve []AgeStep  `yaml:"default_age_curve"`
	DefaultWindow   WindowRule `yaml:"default_window"`
	MinWindow       float64    `yaml:"min_window"`
}

const openEnded = 999

// DefaultConfig returns the production curves
func DefaultConfig() Config {
	youngElite := func(maxAge float64) LiquidityRule {
		return LiquidityRule{
			YoungMaxAge: maxAge,
			TierBonus:   map[asset.Tier]float64{asset.TierElite: 0.15, asset.TierHigh: 0.08},
		}
	}
	return Config{
		Positions: PositionMultipliers{
			QBSuperflex: 1.65,
			QBSingle:    0.90,
			WR:          1.20,
			TEPremium:   1.35,
			TE:          1.15,
			RB:          0.90,
			Other:       1.0,
		},
		AgeCurves: map[asset.Position][]AgeStep{
			asset.RB: {{25, 1.00}, {27, 0.95}, {28, 0.85}, {29, 0.70}, {openEnded, 0.55}},
			asset.QB: {{30, 1.00}, {33, 0.97}, {36, 0.90}, {openEnded, 0.70}},
			asset.WR: {{26, 1.00}, {28, 0.95}, {29, 0.85}, {30, 0.75}, {31, 0.65}, {openEnded, 0.55}},
			asset.TE: {{27, 1.00}, {29, 0.95}, {30, 0.85}, {31, 0.75}, {32, 0.65}, {openEnded, 0.55}},
		},
		DefaultAgeCurve: []AgeStep{{28, 1.00}, {31, 0.90}, {openEnded, 0.80}},
		Windows: map[asset.Position]WindowRule{
			asset.QB: {EndAge: 38, Cap: 12, Unknown: 8},
			asset.WR: {EndAge: 32, Cap: 8, Unknown: 5},
			asset.TE: {EndAge: 33, Cap: 8, Unknown: 5},
			asset.RB: {
				Steps:   []AgeStep{{23, 5}, {24, 4}, {25, 3.5}, {26, 3}, {27, 2}, {28, 1.5}, {29, 1}, {openEnded, 0.5}},
				Floor:   0.5,
				Unknown: 3,
			},
		},
		DefaultWindow: WindowRule{EndAge: 32, Cap: 6, Unknown: 4},
		MinWindow:     0.5,
		Liquidity: map[asset.Position]LiquidityRule{
			asset.QB: youngElite(28),
			asset.WR: youngElite(26),
			asset.TE: youngElite(26),
			asset.RB: {AgingSteps: []AgeStep{{27, 0}, {28, -0.08}, {29, -0.12}, {openEnded, -0.15}}},
		},
	}
}

// lookupStep returns the multiplier of the first step whose MaxAge covers age
func lookupStep(steps []AgeStep, age int) (float64, bool) {
	for _, s := range steps {
		if age <= s.MaxAge {
			return s.Multiplier, true
		}
	}
	if n := len(steps); n > 0 {
		return steps[n-1].Multiplier, true
	}
	return 0, false
}
