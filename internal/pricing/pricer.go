// Package pricing resolves an asset to a priced value from the best
// available source: the historical archive, the live market snapshot, and
// finally a model or the unknown sentinel. Pricing never fails.
package pricing

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/TheCiege23/allfantasy-webapp-sub001/internal/data/history"
	"github.com/TheCiege23/allfantasy-webapp-sub001/internal/data/market"
	"github.com/TheCiege23/allfantasy-webapp-sub001/internal/domain/asset"
	"github.com/TheCiege23/allfantasy-webapp-sub001/internal/domain/dynasty"
	"github.com/TheCiege23/allfantasy-webapp-sub001/internal/domain/picks"
	"github.com/TheCiege23/allfantasy-webapp-sub001/internal/domain/tiers"
	"github.com/TheCiege23/allfantasy-webapp-sub001/internal/domain/vorp"
	"github.com/TheCiege23/allfantasy-webapp-sub001/internal/metrics"
)

// History is the archive the pricer reads first
type History interface {
	At(ctx context.Context, date time.Time) (*history.Snapshot, bool, error)
	Weights() history.BucketWeights
}

// Market serves live snapshots
type Market interface {
	Snapshot(ctx context.Context, q market.Query) (*market.Snapshot, error)
}

// Context is the valuation moment and, when known, the league format
type Context struct {
	AsOf   time.Time
	League *asset.LeagueSettings
}

// Deps are the pricer's collaborators. Nil data sources are skipped and
// nil models fall back to their defaults.
type Deps struct {
	History    History
	Market     Market
	Classifier *tiers.Classifier
	Dynasty    *dynasty.Calculator
	Vorp       *vorp.Engine
	Picks      *picks.Curve
	Metrics    *metrics.Registry
}

// Pricer is safe for concurrent use when its collaborators are
type Pricer struct {
	deps Deps
	cfg  Config
}

// New creates a pricer; nil cfg uses defaults
func New(deps Deps, cfg *Config) *Pricer {
	if cfg == nil {
		d := DefaultConfig()
		cfg = &d
	}
	if deps.Classifier == nil {
		deps.Classifier = tiers.NewClassifier(tiers.DefaultConfig())
	}
	if deps.Dynasty == nil {
		deps.Dynasty = dynasty.NewCalculator(nil)
	}
	if deps.Vorp == nil {
		deps.Vorp = vorp.NewEngine(nil)
	}
	if deps.Picks == nil {
		deps.Picks = picks.NewCurve(nil)
	}
	return &Pricer{deps: deps, cfg: *cfg}
}

// Curve exposes the pick curve the pricer falls back to
func (p *Pricer) Curve() *picks.Curve { return p.deps.Picks }

// Classifier exposes the tier classifier
func (p *Pricer) Classifier() *tiers.Classifier { return p.deps.Classifier }

// Price values one asset
func (p *Pricer) Price(ctx context.Context, spec asset.Spec, pc Context) asset.Priced {
	var out asset.Priced
	if spec.IsPick() {
		out = p.pricePick(ctx, spec, pc)
	} else {
		out = p.pricePlayer(ctx, spec, pc)
	}
	p.deps.Metrics.AssetPriced(string(spec.Kind), string(out.Source))
	return out
}

// PriceAll values assets in order
func (p *Pricer) PriceAll(ctx context.Context, specs []asset.Spec, pc Context) []asset.Priced {
	out := make([]asset.Priced, 0, len(specs))
	for _, s := range specs {
		out = append(out, p.Price(ctx, s, pc))
	}
	return out
}

func (pc Context) league() asset.LeagueSettings {
	if pc.League == nil {
		return asset.DefaultLeagueSettings()
	}
	return pc.League.Normalized()
}

func (pc Context) asOf() time.Time {
	if pc.AsOf.IsZero() {
		return time.Now().UTC()
	}
	return pc.AsOf
}

func (p *Pricer) pricePlayer(ctx context.Context, spec asset.Spec, pc Context) asset.Priced {
	out := asset.Unknown(spec)
	tr := p.deps.Classifier.Classify(spec, tiers.ModePricing)
	out.ResolvedTier = tr.Tier
	out.TierSource = tr.Source

	resolved := p.fromHistory(ctx, spec, pc, &out) || p.fromMarket(ctx, spec, pc, &out)
	if !resolved {
		log.Debug().Str("asset", spec.Label()).Msg("Asset unresolved, using unknown sentinel")
		return out
	}

	league := pc.league()
	age, ageKnown := out.Spec.AgeValue()
	out.AgeCurveModifier = p.deps.Dynasty.AgeCurve(out.Spec.Position, age, ageKnown)
	out.FormatModifier = p.deps.Dynasty.PositionMultiplier(out.Spec.Position, league.Superflex, league.TEPremium)

	out.ImpactValue = out.MarketValue
	if out.ResolvedTier != nil && pc.League != nil {
		in := dynasty.InputFor(out.Spec, *out.ResolvedTier, league)
		out.ImpactValue = float64(p.deps.Dynasty.Score(in))
	}
	if out.PositionRank > 0 {
		out.VorpValue = p.deps.Vorp.PlayerVorpFromRank(out.Spec.Position, out.PositionRank, league)
	}
	if out.Source == asset.SourceHistorical {
		out.Volatility = p.cfg.Volatility.player(out.Spec.Position, out.AgeCurveModifier < 1)
	}
	return out
}

func (p *Pricer) fromHistory(ctx context.Context, spec asset.Spec, pc Context, out *asset.Priced) bool {
	if p.deps.History == nil {
		return false
	}
	snap, exact, err := p.deps.History.At(ctx, pc.asOf())
	if err != nil {
		return false
	}
	v, name, ok := snap.PlayerValue(spec.Name)
	if !ok {
		return false
	}
	out.MarketValue = nonNegative(v)
	out.Source = asset.SourceHistorical
	out.SnapshotDate = snap.Date
	out.ExactDate = exact
	out.ResolvedName = name
	return true
}

func (p *Pricer) fromMarket(ctx context.Context, spec asset.Spec, pc Context, out *asset.Priced) bool {
	if p.deps.Market == nil {
		return false
	}
	snap, err := p.deps.Market.Snapshot(ctx, market.QueryFor(pc.league()))
	if err != nil {
		log.Debug().Err(err).Str("asset", spec.Label()).Msg("Market snapshot unavailable")
		return false
	}
	e, ok := snap.Lookup(spec.Name)
	if !ok {
		return false
	}
	out.MarketValue = nonNegative(e.Value)
	out.Source = asset.SourceMarket
	out.SnapshotDate = snap.FetchedAt
	out.ResolvedName = e.Player.Name
	out.PositionRank = e.PositionRank

	// fill identity gaps from the market
	if out.Spec.Age == nil && e.Player.Age != nil {
		age := *e.Player.Age
		out.Spec.Age = &age
	}
	if out.Spec.Position == "" {
		out.Spec.Position = asset.ParsePosition(e.Player.Position)
	}

	if vol, ok := e.Volatility(); ok {
		out.Volatility = vol
	} else {
		age, known := out.Spec.AgeValue()
		aging := p.deps.Dynasty.AgeCurve(out.Spec.Position, age, known) < 1
		out.Volatility = p.cfg.Volatility.player(out.Spec.Position, aging)
	}
	return true
}

func (p *Pricer) pricePick(ctx context.Context, spec asset.Spec, pc Context) asset.Priced {
	out := asset.Unknown(spec)
	out.TierSource = asset.TierNone
	out.ResolvedName = spec.Label()
	league := pc.league()
	asOf := pc.asOf()

	bucket := spec.Bucket
	if bucket == asset.BucketUnknown && spec.PickNumber > 0 {
		bucket = picks.BucketForSlot(spec.PickNumber, league.Teams)
	}

	resolved := false
	if p.deps.History != nil {
		if snap, exact, err := p.deps.History.At(ctx, asOf); err == nil {
			if v, averaged, ok := snap.PickValue(spec.Season, spec.Round, bucket, p.deps.History.Weights()); ok {
				out.MarketValue = nonNegative(v)
				out.Source = asset.SourceHistorical
				if averaged {
					out.Source = asset.SourceHistoricalAveraged
				}
				out.SnapshotDate = snap.Date
				out.ExactDate = exact
				resolved = true
			}
		}
	}

	if !resolved {
		r := p.deps.Picks.Value(picks.InputFor(spec, league.Teams, asOf))
		out.MarketValue = nonNegative(r.Value)
		out.Source = asset.SourceModel
		out.AgeCurveModifier = r.TimeDecay
	}

	out.ImpactValue = out.MarketValue
	out.VorpValue = p.deps.Vorp.PickVorp(out.ImpactValue, spec.Round)
	out.Volatility = p.cfg.Volatility.pick(picks.YearsOut(spec.Season, asOf))
	return out
}

func nonNegative(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}
