package trade

import (
	"fmt"
	"math"

	"github.com/TheCiege23/allfantasy-webapp-sub001/internal/domain/asset"
)

// view is the read-only state every rule inspects
type view struct {
	cfg         Config
	league      asset.LeagueSettings
	a, b        Side
	percentDiff int
	parity      ParityResult
}

// gives returns the package a team sends away
func (v *view) gives(side string) []Asset {
	if side == SideA {
		return v.a.Assets
	}
	return v.b.Assets
}

// receives returns the package a team gets
func (v *view) receives(side string) []Asset {
	return v.gives(other(side))
}

func (v *view) side(label string) Side {
	if label == SideA {
		return v.a
	}
	return v.b
}

// Sanity rule names
const (
	RuleValueGap              = "value_gap"
	RuleTierParity            = "tier_parity"
	RuleGarbageBundle         = "garbage_bundle"
	RuleQBRBVeto              = "qb_rb_veto"
	RuleWindowMismatch        = "window_mismatch"
	RuleAgingRBForCornerstone = "aging_rb_for_cornerstone"
)

// Rule is one sanity heuristic: a predicate with a penalty or a floor on the
// rejection estimate
type Rule struct {
	Name    string
	Penalty int
	Floor   int
	Fix     string
	Check   func(v *view) (hit bool, side, description string)
}

func count(assets []Asset, pred func(Asset) bool) int {
	n := 0
	for _, a := range assets {
		if pred(a) {
			n++
		}
	}
	return n
}

func anyOf(assets []Asset, pred func(Asset) bool) bool {
	return count(assets, pred) > 0
}

func bestTier(assets []Asset) (Asset, bool) {
	var best Asset
	found := false
	for _, a := range assets {
		if !found || a.Tier < best.Tier || (a.Tier == best.Tier && a.Value > best.Value) {
			best, found = a, true
		}
	}
	return best, found
}

// tierPlusFirst reports whether two distinct assets cover "tier ≤ limit" and
// "a 1st-round pick"
func tierPlusFirst(assets []Asset, limit asset.Tier) bool {
	for i, x := range assets {
		if x.Tier > limit {
			continue
		}
		for j, y := range assets {
			if i != j && y.FirstRound {
				return true
			}
		}
	}
	return false
}

func atMostTier(t asset.Tier) func(Asset) bool {
	return func(a Asset) bool { return a.Tier <= t }
}

func isAging(a Asset) bool { return a.Aging }

func isAgingRB(a Asset) bool { return a.Spec.IsPlayer() && a.Spec.Position == asset.RB && a.Aging }

func isPick(a Asset) bool { return a.Spec.IsPick() }

// checkParity requires an elite or high-tier asset to be answered in kind
func checkParity(a, b []Asset) ParityResult {
	res := ParityResult{Passed: true}
	for _, receiver := range []string{SideA, SideB} {
		received, returned := b, a
		if receiver == SideB {
			received, returned = a, b
		}
		best, ok := bestTier(received)
		if !ok {
			continue
		}

		var passed bool
		var required string
		switch best.Tier {
		case asset.TierElite:
			passed = anyOf(returned, atMostTier(asset.TierElite)) ||
				tierPlusFirst(returned, asset.TierHigh) ||
				count(returned, atMostTier(asset.TierHigh)) >= 2
			required = "a tier-0 asset, a tier-1 asset plus a 1st-round pick, or two tier-1 assets"
		case asset.TierHigh:
			passed = anyOf(returned, atMostTier(asset.TierHigh)) ||
				tierPlusFirst(returned, asset.TierStarter) ||
				count(returned, atMostTier(asset.TierStarter)) >= 2
			required = "a tier-1 asset, a tier-2 asset plus a 1st-round pick, or two tier-2 assets"
		default:
			continue
		}
		if !passed {
			res.Passed = false
			res.Violations = append(res.Violations, ParityViolation{
				Receiver:  receiver,
				BestTier:  best.Tier,
				AssetName: best.Spec.Label(),
				Required:  required,
			})
		}
	}
	return res
}

// checkTimeline flags packages that work against a team's stated timeline
func checkTimeline(a, b Side) TimelineResult {
	res := TimelineResult{Aligned: true}
	for _, team := range []string{SideA, SideB} {
		mine, theirs := a, b
		if team == SideB {
			mine, theirs = b, a
		}
		received, given := theirs.Assets, mine.Assets

		switch mine.Timeline {
		case TimelineRebuild:
			if count(received, isAging) >= 2 &&
				!anyOf(received, isPick) &&
				!anyOf(received, func(x Asset) bool { return x.YoungCornerstone || (x.Tier <= asset.TierHigh && !x.Aging) }) {
				res.Flags = append(res.Flags, fmt.Sprintf(
					"Team %s is rebuilding but takes on %d aging veterans with no picks or young talent back",
					team, count(received, isAging)))
			}
		case TimelineContender:
			if anyOf(given, func(x Asset) bool { return x.YoungCornerstone }) &&
				count(received, isAging) >= 2 &&
				!anyOf(received, func(x Asset) bool { return x.Tier == asset.TierElite || x.EarlyFirst }) {
				res.Flags = append(res.Flags, fmt.Sprintf(
					"Team %s is contending but moves a young cornerstone for aging veterans without an elite or early 1st return",
					team))
			}
		}
	}
	res.Aligned = len(res.Flags) == 0
	return res
}

// Rules returns the ordered sanity heuristics
func Rules(cfg Config) []Rule {
	s := cfg.Sanity
	return []Rule{
		{
			Name:    RuleValueGap,
			Penalty: s.ValueGapPenalty,
			Fix:     "Team %s should add value to close the gap",
			Check: func(v *view) (bool, string, string) {
				if v.percentDiff < s.ValueGapPercent {
					return false, "", ""
				}
				short := SideA
				if v.b.Total < v.a.Total {
					short = SideB
				}
				return true, short, fmt.Sprintf("Value gap %d%% ≥ %d%%", v.percentDiff, s.ValueGapPercent)
			},
		},
		{
			Name:    RuleTierParity,
			Penalty: s.TierParityPenalty,
			Fix:     "Team %s must return a comparable tier",
			Check: func(v *view) (bool, string, string) {
				if v.parity.Passed {
					return false, "", ""
				}
				pv := v.parity.Violations[0]
				return true, pv.Receiver, fmt.Sprintf("Team %s receives %s (tier %d) without %s back",
					pv.Receiver, pv.AssetName, pv.BestTier, pv.Required)
			},
		},
		{
			Name:    RuleGarbageBundle,
			Penalty: s.GarbagePenalty,
			Fix:     "Team %s should offer fewer, better assets instead of a quantity bundle",
			Check: func(v *view) (bool, string, string) {
				for _, giver := range []string{SideA, SideB} {
					given, back := v.gives(giver), v.receives(giver)
					if len(given) >= s.GarbageMinPieces &&
						count(given, func(x Asset) bool { return x.Tier >= asset.TierDepth }) >= s.GarbageMinLowTier &&
						len(back) == 1 && back[0].Tier == asset.TierElite {
						return true, giver, fmt.Sprintf("Team %s bundles %d pieces for elite %s",
							giver, len(given), back[0].Spec.Label())
					}
				}
				return false, "", ""
			},
		},
		{
			Name:  RuleQBRBVeto,
			Floor: s.QBRBVetoFloor,
			Fix:   "Team %s should add a premium asset (WR1, early 1st or QB) to the running back",
			Check: func(v *view) (bool, string, string) {
				if !v.league.Superflex {
					return false, "", ""
				}
				for _, team := range []string{SideA, SideB} {
					received, given := v.receives(team), v.gives(team)
					gotQB := anyOf(received, func(x Asset) bool {
						return x.Spec.IsPlayer() && x.Spec.Position == asset.QB && x.Tier <= asset.TierHigh
					})
					premium := anyOf(given, func(x Asset) bool {
						if x.Spec.IsPick() {
							return x.EarlyFirst
						}
						return x.Spec.Position == asset.QB || (x.Spec.Position == asset.WR && x.Tier <= asset.TierHigh)
					})
					if gotQB && anyOf(given, isAgingRB) && !premium {
						return true, team, fmt.Sprintf("Team %s offers an aging RB for a superflex QB without a premium asset", team)
					}
				}
				return false, "", ""
			},
		},
		{
			Name:    RuleWindowMismatch,
			Penalty: s.WindowMismatchPenalty,
			Fix:     "Team %s should balance the contention windows",
			Check: func(v *view) (bool, string, string) {
				if len(v.a.Assets) == 0 || len(v.b.Assets) == 0 {
					return false, "", ""
				}
				gap := math.Abs(v.a.AvgWindow - v.b.AvgWindow)
				if gap < s.WindowMismatchYears {
					return false, "", ""
				}
				// the team giving the shorter window has to even it out
				short := SideA
				if v.a.AvgWindow > v.b.AvgWindow {
					short = SideB
				}
				return true, short, fmt.Sprintf("Average window gap %.1f years ≥ %.0f", gap, s.WindowMismatchYears)
			},
		},
		{
			Name:    RuleAgingRBForCornerstone,
			Penalty: s.AgingRBPenalty,
			Fix:     "Team %s should not expect a young cornerstone for a single aging running back",
			Check: func(v *view) (bool, string, string) {
				for _, team := range []string{SideA, SideB} {
					given := v.gives(team)
					if len(given) == 1 && isAgingRB(given[0]) &&
						anyOf(v.receives(team), func(x Asset) bool { return x.YoungCornerstone }) {
						return true, team, fmt.Sprintf("Team %s offers only %s for a young cornerstone",
							team, given[0].Spec.Label())
					}
				}
				return false, "", ""
			},
		},
	}
}

// runSanity evaluates rules in order; the estimate is the penalty sum,
// lifted to the highest floor hit and capped at 100
func runSanity(rules []Rule, v *view) SanityResult {
	res := SanityResult{Checks: make([]RuleCheck, 0, len(rules)), HitRules: []string{}}
	sum, floor := 0, 0
	for _, r := range rules {
		hit, side, desc := r.Check(v)
		rc := RuleCheck{Name: r.Name, Hit: hit, Penalty: r.Penalty, Floor: r.Floor, Side: side, Description: desc}
		if hit {
			res.HitRules = append(res.HitRules, r.Name)
			sum += r.Penalty
			if r.Floor > floor {
				floor = r.Floor
			}
			switch r.Name {
			case RuleQBRBVeto:
				res.QBRBVeto = true
			case RuleAgingRBForCornerstone:
				res.Asymmetric = true
			}
		}
		res.Checks = append(res.Checks, rc)
	}
	est := sum
	if floor > est {
		est = floor
	}
	if est > 100 {
		est = 100
	}
	res.RejectionEstimate = est
	return res
}
