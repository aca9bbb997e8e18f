package tiers

import (
	"github.com/TheCiege23/allfantasy-webapp-sub001/internal/domain/asset"
	"github.com/TheCiege23/allfantasy-webapp-sub001/internal/domain/names"
)

// Mode decides what an unmatched player resolves to
type Mode int

const (
	// ModePricing leaves unmatched players untiered
	ModePricing Mode = iota
	// ModeTrade defaults unmatched players to the replaceable tier
	ModeTrade
)

// Config holds the curated tables, tier 0 first. Players absent from every
// table are tier 4.
type Config struct {
	Tables [][]string `yaml:"tables"`
}

// Classifier looks players up in priority-ordered curated tables
type Classifier struct {
	indexes []*names.Index[asset.Tier]
}

// Result is the outcome of a classification
type Result struct {
	Tier   *asset.Tier
	Source asset.TierSource
	Name   string
}

// NewClassifier builds one name index per tier table
func NewClassifier(cfg Config) *Classifier {
	c := &Classifier{}
	for i, table := range cfg.Tables {
		tier := asset.ClampTier(i)
		m := make(map[string]asset.Tier, len(table))
		for _, n := range table {
			m[n] = tier
		}
		c.indexes = append(c.indexes, names.NewIndex(m))
	}
	return c
}

// Classify resolves a player's tier. A caller-supplied tier always wins and
// is clamped into range.
func (c *Classifier) Classify(spec asset.Spec, mode Mode) Result {
	if spec.Tier != nil {
		t := asset.ClampTier(*spec.Tier)
		return Result{Tier: &t, Source: asset.TierProvided}
	}
	if spec.IsPlayer() && c != nil {
		for _, idx := range c.indexes {
			// first table with any hit wins; exact before containment inside a tier
			if m, ok := idx.Lookup(spec.Name); ok {
				t := m.Value
				return Result{Tier: &t, Source: asset.TierCurated, Name: m.Name}
			}
		}
	}
	if mode == ModeTrade {
		t := asset.TierReplaceable
		return Result{Tier: &t, Source: asset.TierDefault}
	}
	return Result{Source: asset.TierNone}
}
