// Package picks prices future rookie draft picks from a formula:
//
//	value = base[round] × timeDecay(yearsOut) × fever(daysToDraft) × classStrength/80
//
// with slot interpolation toward adjacent rounds and an exact-slot override
// table for the top of the draft.
package picks

import (
	"fmt"
	"math"
	"time"

	"github.com/TheCiege23/allfantasy-webapp-sub001/internal/domain/asset"
)

// Curve is the formula-based pick pricer
type Curve struct {
	cfg Config
}

// NewCurve creates a curve; nil uses defaults
func NewCurve(cfg *Config) *Curve {
	if cfg == nil {
		d := DefaultConfig()
		cfg = &d
	}
	return &Curve{cfg: *cfg}
}

// Input identifies a pick and the moment it is priced at
type Input struct {
	Season        int
	Round         int
	Bucket        asset.Bucket
	Slot          int // pick number within the round, 0 when unknown
	Teams         int
	ClassStrength *float64
	AsOf          time.Time
}

// InputFor builds a curve input from an asset spec
func InputFor(spec asset.Spec, teams int, asOf time.Time) Input {
	return Input{
		Season:        spec.Season,
		Round:         spec.Round,
		Bucket:        spec.Bucket,
		Slot:          spec.PickNumber,
		Teams:         teams,
		ClassStrength: spec.ClassStrength,
		AsOf:          asOf,
	}
}

// Result carries the priced value and every factor behind it
type Result struct {
	Value       float64 `json:"value"`
	Base        float64 `json:"base"`
	YearsOut    int     `json:"years_out"`
	TimeDecay   float64 `json:"time_decay"`
	DaysToDraft *int    `json:"days_to_draft,omitempty"`
	Fever       float64 `json:"fever"`
	ClassFactor float64 `json:"class_factor"`
	Override    bool    `json:"override"`
}

// Value prices a pick
func (c *Curve) Value(in Input) Result {
	round := in.Round
	if round < 1 {
		round = 1
	}
	teams := in.Teams
	if teams <= 1 {
		teams = 12
	}

	r := Result{ClassFactor: 1}
	if v, ok := c.override(round, in.Slot, teams); ok {
		r.Base = v
		r.Override = true
	} else if in.Slot > 0 {
		r.Base = c.SlotValue(round, in.Slot, teams)
	} else {
		r.Base = c.BucketValue(round, in.Bucket)
	}

	r.YearsOut = YearsOut(in.Season, in.AsOf)
	r.TimeDecay = c.TimeDecay(r.YearsOut)
	r.DaysToDraft = c.DaysToDraft(in.AsOf, in.Season)
	r.Fever = c.FeverMultiplier(r.DaysToDraft)
	if in.ClassStrength != nil && *in.ClassStrength > 0 && c.cfg.NeutralClassStrength > 0 {
		r.ClassFactor = *in.ClassStrength / c.cfg.NeutralClassStrength
	}

	r.Value = math.Round(r.Base * r.TimeDecay * r.Fever * r.ClassFactor)
	return r
}

// BaseValue is the value of an average pick in a round
func (c *Curve) BaseValue(round int) float64 {
	if v, ok := c.cfg.RoundBase[round]; ok {
		return v
	}
	return c.cfg.DefaultBase
}

// TimeDecay discounts picks in later drafts
func (c *Curve) TimeDecay(yearsOut int) float64 {
	if yearsOut < 0 {
		yearsOut = 0
	}
	if yearsOut < len(c.cfg.TimeDecay) {
		return c.cfg.TimeDecay[yearsOut]
	}
	return c.cfg.DecayFloor
}

// FeverMultiplier is the rookie-fever premium; nil days means no premium
func (c *Curve) FeverMultiplier(daysToDraft *int) float64 {
	if daysToDraft == nil || *daysToDraft < 0 {
		return 1.0
	}
	for _, step := range c.cfg.Fever {
		if *daysToDraft <= step.WithinDays {
			return 1 + step.Bonus
		}
	}
	return 1.0
}

// DraftDate is the configured rookie draft date of a season
func (c *Curve) DraftDate(season int) time.Time {
	return time.Date(season, time.Month(c.cfg.DraftMonth), c.cfg.DraftDay, 0, 0, 0, 0, time.UTC)
}

// DaysToDraft is defined only for a pick in the asOf season's draft that has
// not happened yet
func (c *Curve) DaysToDraft(asOf time.Time, season int) *int {
	if asOf.IsZero() || season != asOf.Year() {
		return nil
	}
	day := time.Date(asOf.Year(), asOf.Month(), asOf.Day(), 0, 0, 0, 0, time.UTC)
	draft := c.DraftDate(season)
	if day.After(draft) {
		return nil
	}
	d := int(draft.Sub(day).Hours() / 24)
	return &d
}

// YearsOut counts drafts between the asOf season and the pick's season
func YearsOut(season int, asOf time.Time) int {
	if asOf.IsZero() {
		return 0
	}
	n := season - asOf.Year()
	if n < 0 {
		return 0
	}
	return n
}

// SlotValue interpolates within a round by the pick's percentile position:
// early picks blend up toward the previous round, late picks down toward the
// next, by at most SlotBlendMax.
func (c *Curve) SlotValue(round, slot, teams int) float64 {
	if teams <= 1 {
		teams = 12
	}
	if slot < 1 {
		slot = 1
	}
	if slot > teams {
		slot = teams
	}
	p := float64(slot-1) / float64(teams-1)
	return c.blend(round, (0.5-p)*2*c.cfg.SlotBlendMax)
}

// BucketValue prices an early/mid/late pick at the centre of its third
func (c *Curve) BucketValue(round int, bucket asset.Bucket) float64 {
	var p float64
	switch bucket {
	case asset.BucketEarly:
		p = 1.0 / 6
	case asset.BucketLate:
		p = 5.0 / 6
	default:
		p = 0.5
	}
	return c.blend(round, (0.5-p)*2*c.cfg.SlotBlendMax)
}

func (c *Curve) blend(round int, w float64) float64 {
	base := c.BaseValue(round)
	switch {
	case w > 0:
		prev := c.BaseValue(round - 1)
		if round <= 1 {
			prev = base * c.cfg.FirstRoundCeiling
		}
		return base + w*(prev-base)
	case w < 0:
		next := c.BaseValue(round + 1)
		return base + (-w)*(next-base)
	default:
		return base
	}
}

func (c *Curve) override(round, slot, teams int) (float64, bool) {
	if slot <= 0 || (c.cfg.OverrideTeams > 0 && teams != c.cfg.OverrideTeams) {
		return 0, false
	}
	v, ok := c.cfg.SlotOverrides[SlotKey(round, slot)]
	return v, ok
}

// SlotKey formats a round and slot as "R.SS"
func SlotKey(round, slot int) string {
	return fmt.Sprintf("%d.%02d", round, slot)
}

// BucketForSlot maps a slot to early/mid/late thirds of the round
func BucketForSlot(slot, teams int) asset.Bucket {
	if slot <= 0 {
		return asset.BucketUnknown
	}
	if teams <= 0 {
		teams = 12
	}
	third := float64(teams) / 3
	switch {
	case float64(slot) <= third:
		return asset.BucketEarly
	case float64(slot) > 2*third:
		return asset.BucketLate
	default:
		return asset.BucketMid
	}
}
