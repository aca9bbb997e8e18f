package asset

import (
	"fmt"
	"strings"
)

// Kind tags an asset as a rostered player or a future draft pick
type Kind string

const (
	KindPlayer Kind = "player"
	KindPick   Kind = "pick"
)

// Bucket is the coarse slot range of a pick within its round
type Bucket string

const (
	BucketUnknown Bucket = ""
	BucketEarly   Bucket = "early"
	BucketMid     Bucket = "mid"
	BucketLate    Bucket = "late"
)

// ParseBucket accepts early/mid/middle/late in any case; anything else is unknown
func ParseBucket(s string) Bucket {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "early", "e":
		return BucketEarly
	case "mid", "middle", "m":
		return BucketMid
	case "late", "l":
		return BucketLate
	default:
		return BucketUnknown
	}
}

// Spec describes an asset as supplied by a caller, before pricing
type Spec struct {
	Kind Kind `json:"kind" yaml:"kind"`

	// Player fields
	Name     string   `json:"name,omitempty" yaml:"name,omitempty"`
	Position Position `json:"position,omitempty" yaml:"position,omitempty"`
	Age      *float64 `json:"age,omitempty" yaml:"age,omitempty"`
	Tier     *int     `json:"tier,omitempty" yaml:"tier,omitempty"`

	// Pick fields
	Season        int      `json:"season,omitempty" yaml:"season,omitempty"`
	Round         int      `json:"round,omitempty" yaml:"round,omitempty"`
	Bucket        Bucket   `json:"bucket,omitempty" yaml:"bucket,omitempty"`
	PickNumber    int      `json:"pick_number,omitempty" yaml:"pick_number,omitempty"` // slot within the round, 0 = unknown
	ClassStrength *float64 `json:"class_strength,omitempty" yaml:"class_strength,omitempty"`
}

// Player builds a player spec. Age and tier are optional.
func Player(name string, pos Position, age *float64, tier *int) Spec {
	return Spec{Kind: KindPlayer, Name: name, Position: pos, Age: age, Tier: tier}
}

// Pick builds a pick spec for a season and round with an optional bucket
func Pick(season, round int, bucket Bucket) Spec {
	return Spec{Kind: KindPick, Season: season, Round: round, Bucket: bucket}
}

// IsPlayer reports whether the spec is a player
func (s Spec) IsPlayer() bool { return s.Kind != KindPick }

// IsPick reports whether the spec is a draft pick
func (s Spec) IsPick() bool { return s.Kind == KindPick }

// AgeValue returns the clamped age and whether it was supplied
func (s Spec) AgeValue() (float64, bool) {
	if s.Age == nil {
		return 0, false
	}
	if *s.Age < 0 {
		return 0, true
	}
	return *s.Age, true
}

// Label is a short human-readable description used in warnings
func (s Spec) Label() string {
	if s.IsPick() {
		if s.PickNumber > 0 {
			return fmt.Sprintf("%d %d.%02d", s.Season, s.Round, s.PickNumber)
		}
		if s.Bucket != BucketUnknown {
			return fmt.Sprintf("%d %s %s", s.Season, string(s.Bucket), Ordinal(s.Round))
		}
		return fmt.Sprintf("%d %s", s.Season, Ordinal(s.Round))
	}
	if s.Position != "" {
		return fmt.Sprintf("%s (%s)", s.Name, s.Position)
	}
	return s.Name
}

// Ordinal renders a round number as 1st, 2nd, 3rd, 4th ...
func Ordinal(n int) string {
	suffix := "th"
	switch {
	case n%100 >= 11 && n%100 <= 13:
	case n%10 == 1:
		suffix = "st"
	case n%10 == 2:
		suffix = "nd"
	case n%10 == 3:
		suffix = "rd"
	}
	return fmt.Sprintf("%d%s", n, suffix)
}

// Float is a convenience for building optional numeric fields
func Float(v float64) *float64 { return &v }

// Int is a convenience for building optional integer fields
func Int(v int) *int { return &v }
