package asset

// Tier is the ordinal trade desirability of an asset, 0 (elite) to 4 (replaceable)
type Tier int

const (
	TierElite Tier = iota
	TierHigh
	TierStarter
	TierDepth
	TierReplaceable
)

// tierBaseValues is the immutable base-value table
var tierBaseValues = [...]float64{950, 775, 625, 475, 300}

// ClampTier forces any integer into the valid 0..4 range
func ClampTier(t int) Tier {
	if t < int(TierElite) {
		return TierElite
	}
	if t > int(TierReplaceable) {
		return TierReplaceable
	}
	return Tier(t)
}

// BaseValue returns the tier's base value; out-of-range tiers are clamped
func (t Tier) BaseValue() float64 {
	return tierBaseValues[ClampTier(int(t))]
}

// TierBaseValues returns a copy of the base table keyed by tier
func TierBaseValues() map[Tier]float64 {
	out := make(map[Tier]float64, len(tierBaseValues))
	for i, v := range tierBaseValues {
		out[Tier(i)] = v
	}
	return out
}

func (t Tier) String() string {
	switch ClampTier(int(t)) {
	case TierElite:
		return "elite"
	case TierHigh:
		return "high"
	case TierStarter:
		return "starter"
	case TierDepth:
		return "depth"
	default:
		return "replaceable"
	}
}
