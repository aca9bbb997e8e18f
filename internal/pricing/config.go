package pricing

import "github.com/TheCiege23/allfantasy-webapp-sub001/internal/domain/asset"

// VolatilityConfig estimates value volatility when the market publishes none
type VolatilityConfig struct {
	Positions   map[asset.Position]float64 `yaml:"positions"`
	IDP         float64                    `yaml:"idp"`
	Other       float64                    `yaml:"other"`
	PickBase    float64                    `yaml:"pick_base"`
	PickPerYear float64                    `yaml:"pick_per_year"`
	AgingBonus  float64                    `yaml:"aging_bonus"`
}

// Config holds pricer tunables
type Config struct {
	Volatility VolatilityConfig `yaml:"volatility"`
}

// DefaultConfig returns the production volatility table
func DefaultConfig() Config {
	return Config{
		Volatility: VolatilityConfig{
			Positions: map[asset.Position]float64{
				asset.QB: 0.12,
				asset.WR: 0.18,
				asset.TE: 0.20,
				asset.RB: 0.28,
			},
			IDP:         0.30,
			Other:       0.25,
			PickBase:    0.35,
			PickPerYear: 0.05,
			AgingBonus:  0.05,
		},
	}
}

// player returns the default volatility of a position
func (v VolatilityConfig) player(pos asset.Position, aging bool) float64 {
	vol, ok := v.Positions[pos]
	if !ok {
		vol = v.Other
		if pos.IsIDP() {
			vol = v.IDP
		}
	}
	if aging {
		vol += v.AgingBonus
	}
	return asset.ClampVolatility(vol)
}

func (v VolatilityConfig) pick(yearsOut int) float64 {
	if yearsOut < 0 {
		yearsOut = 0
	}
	return asset.ClampVolatility(v.PickBase + v.PickPerYear*float64(yearsOut))
}
