package asset

import "time"

// Source records where an asset's market value came from
type Source string

const (
	SourceHistorical         Source = "historical"
	SourceHistoricalAveraged Source = "historical_averaged"
	SourceMarket             Source = "market"
	SourceModel              Source = "model"
	SourceUnknown            Source = "unknown"
)

// TierSource records how a player's tier was decided
type TierSource string

const (
	TierProvided TierSource = "provided"
	TierCurated  TierSource = "curated"
	TierDefault  TierSource = "default"
	TierNone     TierSource = "none"
)

// Priced is an asset with every value the engine derives for it
type Priced struct {
	Spec Spec `json:"spec"`

	MarketValue      float64   `json:"market_value"`
	ImpactValue      float64   `json:"impact_value"`
	VorpValue        float64   `json:"vorp_value"`
	Volatility       float64   `json:"volatility"`
	Source           Source    `json:"source"`
	SnapshotDate     time.Time `json:"snapshot_date,omitempty"`
	ExactDate        bool      `json:"exact_date"`
	AgeCurveModifier float64   `json:"age_curve_modifier"`
	FormatModifier   float64   `json:"format_modifier"`

	ResolvedName string     `json:"resolved_name,omitempty"`
	ResolvedTier *Tier      `json:"resolved_tier,omitempty"`
	TierSource   TierSource `json:"tier_source"`
	PositionRank int        `json:"position_rank,omitempty"`
}

// Volatility bounds
const (
	MinVolatility = 0.05
	MaxVolatility = 0.6
)

// ClampVolatility keeps a volatility estimate inside [0.05, 0.6]
func ClampVolatility(v float64) float64 {
	if v < MinVolatility {
		return MinVolatility
	}
	if v > MaxVolatility {
		return MaxVolatility
	}
	return v
}

// Unknown is the zero-value sentinel for an asset that could not be resolved
func Unknown(spec Spec) Priced {
	return Priced{
		Spec:             spec,
		Source:           SourceUnknown,
		Volatility:       MaxVolatility,
		AgeCurveModifier: 1,
		FormatModifier:   1,
		TierSource:       TierNone,
	}
}

// Resolved reports whether any data source produced a value
func (p Priced) Resolved() bool { return p.Source != SourceUnknown }

// Historical reports whether the value came from the archive
func (p Priced) Historical() bool {
	return p.Source == SourceHistorical || p.Source == SourceHistoricalAveraged
}
