package trade

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/TheCiege23/allfantasy-webapp-sub001/internal/domain/asset"
	"github.com/TheCiege23/allfantasy-webapp-sub001/internal/domain/confidence"
	"github.com/TheCiege23/allfantasy-webapp-sub001/internal/domain/dynasty"
	"github.com/TheCiege23/allfantasy-webapp-sub001/internal/metrics"
	"github.com/TheCiege23/allfantasy-webapp-sub001/internal/pricing"
)

// Evaluator grades trades. It holds no per-call state and is safe for
// concurrent use.
type Evaluator struct {
	pricer  *pricing.Pricer
	dynasty *dynasty.Calculator
	scorer  *confidence.Scorer
	metrics *metrics.Registry
	cfg     Config
	rules   []Rule
	now     func() time.Time
	newID   func() string
}

// Option customises an Evaluator
type Option func(*Evaluator)

// WithDynasty replaces the dynasty score model
func WithDynasty(c *dynasty.Calculator) Option {
	return func(e *Evaluator) { e.dynasty = c }
}

// WithConfidence replaces the confidence scorer
func WithConfidence(s *confidence.Scorer) Option {
	return func(e *Evaluator) { e.scorer = s }
}

// WithMetrics records evaluation outcomes
func WithMetrics(m *metrics.Registry) Option {
	return func(e *Evaluator) { e.metrics = m }
}

// WithClock sets the clock used when a request has no AsOf
func WithClock(now func() time.Time) Option {
	return func(e *Evaluator) { e.now = now }
}

// WithIDs overrides evaluation id generation
func WithIDs(newID func() string) Option {
	return func(e *Evaluator) { e.newID = newID }
}

// NewEvaluator creates an evaluator over a pricer; nil cfg uses defaults
func NewEvaluator(p *pricing.Pricer, cfg *Config, opts ...Option) *Evaluator {
	if cfg == nil {
		d := DefaultConfig()
		cfg = &d
	}
	if p == nil {
		p = pricing.New(pricing.Deps{}, nil)
	}
	e := &Evaluator{
		pricer:  p,
		dynasty: dynasty.NewCalculator(nil),
		scorer:  confidence.NewScorer(nil),
		cfg:     *cfg,
		rules:   Rules(*cfg),
		now:     time.Now,
		newID:   uuid.NewString,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Evaluate prices both packages and judges the trade. It never fails:
// unresolved assets lower the confidence instead.
func (e *Evaluator) Evaluate(ctx context.Context, req Request) *Evaluation {
	start := time.Now()

	league := req.League.Normalized()
	asOf := req.AsOf
	if asOf.IsZero() {
		asOf = e.now().UTC()
	}

	pc := pricing.Context{AsOf: asOf, League: &league}
	pricedA := e.pricer.PriceAll(ctx, req.SideA, pc)
	pricedB := e.pricer.PriceAll(ctx, req.SideB, pc)

	val := valuer{cfg: e.cfg, tiers: e.pricer.Classifier(), dynasty: e.dynasty, league: league, asOf: asOf}
	a := e.buildSide(val, pricedA, ParseTimeline(string(req.TimelineA)))
	b := e.buildSide(val, pricedB, ParseTimeline(string(req.TimelineB)))

	// each package is tilted by the team that receives it
	a.Tilt = val.tilt(a.Assets, b.Timeline)
	b.Tilt = val.tilt(b.Assets, a.Timeline)

	ev := &Evaluation{
		ID:       e.newID(),
		AsOf:     asOf,
		League:   league,
		Warnings: []string{},
	}

	// consolidation: the team receiving the top asset while giving a pile
	// of pieces has its outgoing package discounted
	if holder, ok := topAsset(a.Assets, b.Assets); ok {
		giver := &a
		if holder == SideA {
			giver = &b
		}
		if len(giver.Assets) >= e.cfg.ConsolidationPieces {
			giver.Consolidation = -(giver.Raw + giver.Tilt) * e.cfg.ConsolidationDiscount
			ev.ConsolidationApplied = true
		}
	}

	a.Total = a.Raw + a.Tilt + a.Consolidation
	b.Total = b.Raw + b.Tilt + b.Consolidation
	ev.SideA, ev.SideB = a, b

	ev.PercentDiff = percentDiff(a.Total, b.Total)
	ev.ValueRatio = valueRatio(a.Total, b.Total, e.cfg.MaxValueRatio)
	switch {
	case a.Total < b.Total:
		ev.Favoured = SideA // A receives more than it gives
	case b.Total < a.Total:
		ev.Favoured = SideB
	}

	ev.TierParity = checkParity(a.Assets, b.Assets)
	ev.Timeline = checkTimeline(a, b)

	v := &view{cfg: e.cfg, league: league, a: a, b: b, percentDiff: ev.PercentDiff, parity: ev.TierParity}
	ev.Sanity = runSanity(e.rules, v)
	for _, rc := range ev.Sanity.Checks {
		if rc.Hit {
			e.metrics.RuleHit(rc.Name)
			ev.Warnings = append(ev.Warnings, rc.Description)
		}
	}
	ev.Warnings = append(ev.Warnings, ev.Timeline.Flags...)
	ev.Warnings = append(ev.Warnings, unresolvedWarnings(a.Assets, b.Assets)...)

	ev.Classification, ev.Grade = e.classify(ev)
	ev.Overlay = e.overlay(a, b, ev.Sanity.Asymmetric)
	ev.Fix = e.suggestFix(ev)

	all := make([]asset.Priced, 0, len(pricedA)+len(pricedB))
	all = append(all, pricedA...)
	all = append(all, pricedB...)
	players, pickResults, recency := confidence.FromPriced(all)
	ev.Confidence = e.scorer.Compute(players, pickResults, recency)

	e.metrics.ObserveEvaluation(ev.Grade, string(ev.Classification), ev.Sanity.RejectionEstimate, time.Since(start))
	log.Debug().
		Str("id", ev.ID).
		Float64("total_a", a.Total).
		Float64("total_b", b.Total).
		Int("percent_diff", ev.PercentDiff).
		Int("rejection", ev.Sanity.RejectionEstimate).
		Str("grade", ev.Grade).
		Str("confidence", string(ev.Confidence.Label)).
		Msg("Trade evaluated")
	return ev
}

func (e *Evaluator) buildSide(val valuer, priced []asset.Priced, tl Timeline) Side {
	s := Side{Timeline: tl, Assets: make([]Asset, 0, len(priced))}
	for _, p := range priced {
		s.Assets = append(s.Assets, val.value(p))
	}
	s.Raw = sum(s.Assets)
	s.AvgWindow = avgWindow(s.Assets)
	return s
}

func (e *Evaluator) classify(ev *Evaluation) (Classification, string) {
	c := e.cfg.Classification
	d := ev.PercentDiff
	switch {
	case ev.Sanity.RejectionEstimate >= c.UnrealisticRejection || !ev.TierParity.Passed || d >= c.UnrealisticDelta:
		return ClassUnrealistic, "C-"
	case d >= c.VeryLopsidedDelta || !ev.Timeline.Aligned:
		return ClassVeryLopsided, "D"
	case d >= c.LopsidedDelta:
		return ClassLopsided, "C"
	case d >= c.SlightEdgeDelta:
		return ClassSlightEdge, "B"
	}
	aging := count(ev.SideA.Assets, isAging) + count(ev.SideB.Assets, isAging)
	if aging >= c.AgingDowngradeCount {
		return ClassFair, "B+"
	}
	return ClassFair, "A-"
}

// overlay compares the average window each team receives
func (e *Evaluator) overlay(a, b Side, asymmetric bool) Overlay {
	o := Overlay{WindowA: round1(b.AvgWindow), WindowB: round1(a.AvgWindow)}
	o.Gap = round1(o.WindowA - o.WindowB)
	abs := math.Abs(o.Gap)

	switch {
	case asymmetric:
		o.Verdict = VerdictAsymmetric
	case abs >= e.cfg.Overlay.StrongGap && o.Gap > 0:
		o.Verdict = VerdictLongTermWin
	case abs >= e.cfg.Overlay.StrongGap:
		o.Verdict = VerdictShortTermWin
	case abs >= e.cfg.Overlay.SlightGap && o.Gap > 0:
		o.Verdict = VerdictSlightLongTerm
	case abs >= e.cfg.Overlay.SlightGap:
		o.Verdict = VerdictSlightShortTerm
	default:
		o.Verdict = VerdictBalanced
	}
	if abs >= e.cfg.Overlay.SlightGap {
		o.Favoured = SideB
		if o.Gap > 0 {
			o.Favoured = SideA
		}
	}
	return o
}

// suggestFix picks the first active failure: tier parity, then a high
// rejection estimate, then a plain value gap
func (e *Evaluator) suggestFix(ev *Evaluation) *SuggestedFix {
	if !ev.TierParity.Passed {
		pv := ev.TierParity.Violations[0]
		return &SuggestedFix{
			Kind:    FixTierParity,
			Side:    pv.Receiver,
			Message: fmt.Sprintf("Team %s should return %s for %s", pv.Receiver, pv.Required, pv.AssetName),
		}
	}

	if ev.Sanity.RejectionEstimate >= e.cfg.Sanity.FixRejectionThreshold {
		var worst *RuleCheck
		for i, rc := range ev.Sanity.Checks {
			if !rc.Hit {
				continue
			}
			if worst == nil || rc.Floor > worst.Floor || (rc.Floor == worst.Floor && rc.Penalty > worst.Penalty) {
				worst = &ev.Sanity.Checks[i]
			}
		}
		if worst != nil {
			for _, r := range e.rules {
				if r.Name == worst.Name {
					side := worst.Side
					return &SuggestedFix{Kind: FixSanity, Side: side, Message: fmt.Sprintf(r.Fix, side)}
				}
			}
		}
	}

	if ev.PercentDiff >= e.cfg.Classification.SlightEdgeDelta && ev.Favoured != "" {
		gap := math.Abs(ev.SideA.Total - ev.SideB.Total)
		return &SuggestedFix{
			Kind:    FixValueGap,
			Side:    ev.Favoured,
			Amount:  math.Round(gap),
			Message: fmt.Sprintf("Team %s should add about %.0f in value to balance the trade", ev.Favoured, gap),
		}
	}
	return nil
}

func unresolvedWarnings(sides ...[]Asset) []string {
	var out []string
	for _, list := range sides {
		for _, a := range list {
			if !a.Resolved() {
				out = append(out, fmt.Sprintf("%s could not be priced from market data; valued by model only", a.Spec.Label()))
			}
		}
	}
	return out
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
