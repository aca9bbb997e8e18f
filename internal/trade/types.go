// Package trade evaluates two-sided dynasty trades: it values both packages,
// runs tier parity, timeline and sanity rules over them and grades the
// result.
package trade

import (
	"time"

	"github.com/TheCiege23/allfantasy-webapp-sub001/internal/domain/asset"
	"github.com/TheCiege23/allfantasy-webapp-sub001/internal/domain/confidence"
)

// Timeline is a team's competitive posture
type Timeline string

const (
	TimelineContender Timeline = "contender"
	TimelineRebuild   Timeline = "rebuild"
	TimelineMiddle    Timeline = "middle"
)

// ParseTimeline maps free text to a Timeline; anything unknown is middle
func ParseTimeline(s string) Timeline {
	switch Timeline(s) {
	case TimelineContender, "win-now", "win_now":
		return TimelineContender
	case TimelineRebuild, "rebuilding":
		return TimelineRebuild
	}
	return TimelineMiddle
}

// Classification is the fairness bucket of a trade
type Classification string

const (
	ClassUnrealistic  Classification = "UNREALISTIC"
	ClassVeryLopsided Classification = "VERY_LOPSIDED"
	ClassLopsided     Classification = "LOPSIDED"
	ClassSlightEdge   Classification = "SLIGHT_EDGE"
	ClassFair         Classification = "FAIR"
)

// Verdict is the dynasty window overlay, read from side A's point of view
type Verdict string

const (
	VerdictLongTermWin     Verdict = "LONG_TERM_WIN"
	VerdictShortTermWin    Verdict = "SHORT_TERM_WIN"
	VerdictSlightLongTerm  Verdict = "SLIGHT_LONG_TERM"
	VerdictSlightShortTerm Verdict = "SLIGHT_SHORT_TERM"
	VerdictBalanced        Verdict = "BALANCED"
	VerdictAsymmetric      Verdict = "ASYMMETRIC"
)

// Side labels
const (
	SideA = "A"
	SideB = "B"
)

// Request is one trade. SideA lists what team A gives, SideB what team B
// gives.
type Request struct {
	SideA     []asset.Spec         `json:"side_a" yaml:"side_a"`
	SideB     []asset.Spec         `json:"side_b" yaml:"side_b"`
	League    asset.LeagueSettings `json:"league" yaml:"league"`
	TimelineA Timeline             `json:"timeline_a" yaml:"timeline_a"`
	TimelineB Timeline             `json:"timeline_b" yaml:"timeline_b"`
	AsOf      time.Time            `json:"as_of" yaml:"as_of"`
}

// Asset is a priced asset with its trade-time value
type Asset struct {
	asset.Priced

	Tier             asset.Tier `json:"tier"`
	Value            float64    `json:"value"`
	IDPMultiplier    float64    `json:"idp_multiplier"`
	Window           float64    `json:"window"`
	Aging            bool       `json:"aging"`
	YoungCornerstone bool       `json:"young_cornerstone"`
	FirstRound       bool       `json:"first_round"`
	EarlyFirst       bool       `json:"early_first"`
}

// Side is one team's outgoing package
type Side struct {
	Assets        []Asset  `json:"assets"`
	Timeline      Timeline `json:"timeline"`
	Raw           float64  `json:"raw"`
	Tilt          float64  `json:"tilt"`
	Consolidation float64  `json:"consolidation"`
	Total         float64  `json:"total"`
	AvgWindow     float64  `json:"avg_window"`
}

// RuleCheck is one evaluated rule
type RuleCheck struct {
	Name        string `json:"name"`
	Hit         bool   `json:"hit"`
	Penalty     int    `json:"penalty"`
	Floor       int    `json:"floor"`
	Side        string `json:"side,omitempty"`
	Description string `json:"description"`
}

// ParityViolation names a receiver who gets an elite or high tier asset
// without a qualifying return
type ParityViolation struct {
	Receiver  string     `json:"receiver"`
	BestTier  asset.Tier `json:"best_tier"`
	AssetName string     `json:"asset_name"`
	Required  string     `json:"required"`
}

// ParityResult is the tier parity verdict
type ParityResult struct {
	Passed     bool              `json:"passed"`
	Violations []ParityViolation `json:"violations,omitempty"`
}

// TimelineResult is the timeline alignment verdict
type TimelineResult struct {
	Aligned bool     `json:"aligned"`
	Flags   []string `json:"flags,omitempty"`
}

// SanityResult is the rejection estimate with every rule outcome
type SanityResult struct {
	RejectionEstimate int         `json:"rejection_estimate"`
	Checks            []RuleCheck `json:"checks"`
	HitRules          []string    `json:"hit_rules"`
	QBRBVeto          bool        `json:"qb_rb_veto"`
	Asymmetric        bool        `json:"asymmetric"`
}

// Overlay is the dynasty window overlay
type Overlay struct {
	Verdict  Verdict `json:"verdict"`
	WindowA  float64 `json:"window_a"` // average window team A receives
	WindowB  float64 `json:"window_b"` // average window team B receives
	Gap      float64 `json:"gap"`
	Favoured string  `json:"favoured,omitempty"`
}

// Fix kinds in priority order
const (
	FixTierParity = "tier_parity"
	FixSanity     = "sanity"
	FixValueGap   = "value_gap"
)

// SuggestedFix is the single most useful change to the trade
type SuggestedFix struct {
	Kind    string  `json:"kind"`
	Side    string  `json:"side"`
	Amount  float64 `json:"amount,omitempty"`
	Message string  `json:"message"`
}

// Evaluation is the full result of evaluating a trade
type Evaluation struct {
	ID     string               `json:"id"`
	AsOf   time.Time            `json:"as_of"`
	League asset.LeagueSettings `json:"league"`

	SideA Side `json:"side_a"`
	SideB Side `json:"side_b"`

	PercentDiff int     `json:"percent_diff"`
	ValueRatio  float64 `json:"value_ratio"`
	Favoured    string  `json:"favoured,omitempty"` // team receiving more value

	TierParity           ParityResult   `json:"tier_parity"`
	Timeline             TimelineResult `json:"timeline"`
	Sanity               SanityResult   `json:"sanity"`
	ConsolidationApplied bool           `json:"consolidation_applied"`

	Classification Classification `json:"classification"`
	Grade          string         `json:"grade"`
	Overlay        Overlay        `json:"overlay"`

	Warnings   []string          `json:"warnings"`
	Fix        *SuggestedFix     `json:"suggested_fix,omitempty"`
	Confidence confidence.Result `json:"confidence"`
}

func other(side string) string {
	if side == SideA {
		return SideB
	}
	return SideA
}
