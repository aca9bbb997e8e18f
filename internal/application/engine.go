// Package application wires the data layer, the valuation models and the
// trade evaluator into one engine the CLI drives.
package application

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"

	"github.com/TheCiege23/allfantasy-webapp-sub001/internal/config"
	"github.com/TheCiege23/allfantasy-webapp-sub001/internal/data/history"
	"github.com/TheCiege23/allfantasy-webapp-sub001/internal/data/market"
	"github.com/TheCiege23/allfantasy-webapp-sub001/internal/domain/asset"
	"github.com/TheCiege23/allfantasy-webapp-sub001/internal/domain/confidence"
	"github.com/TheCiege23/allfantasy-webapp-sub001/internal/domain/dynasty"
	"github.com/TheCiege23/allfantasy-webapp-sub001/internal/domain/picks"
	"github.com/TheCiege23/allfantasy-webapp-sub001/internal/domain/tiers"
	"github.com/TheCiege23/allfantasy-webapp-sub001/internal/domain/vorp"
	"github.com/TheCiege23/allfantasy-webapp-sub001/internal/metrics"
	"github.com/TheCiege23/allfantasy-webapp-sub001/internal/pricing"
	"github.com/TheCiege23/allfantasy-webapp-sub001/internal/trade"
)

// RedisAddrEnv overrides market.cache.redis_addr when set
const RedisAddrEnv = "REDIS_ADDR"

// Engine owns every long-lived collaborator
type Engine struct {
	Config    *config.Config
	History   *history.Store
	Market    *market.Cache // nil when no provider is configured
	Pricer    *pricing.Pricer
	Evaluator *trade.Evaluator
	Metrics   *metrics.Registry
	Registry  *prometheus.Registry

	closers []func() error
}

// Option tweaks engine construction
type Option func(*engineOptions)

type engineOptions struct {
	source market.Source
	now    func() time.Time
}

// WithMarketSource replaces the HTTP provider, mainly for tests
func WithMarketSource(s market.Source) Option {
	return func(o *engineOptions) { o.source = s }
}

// WithClock fixes the engine clock
func WithClock(now func() time.Time) Option {
	return func(o *engineOptions) { o.now = now }
}

// NewEngine builds the engine from cfg; nil cfg uses defaults
func NewEngine(ctx context.Context, cfg *config.Config, opts ...Option) (*Engine, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	o := engineOptions{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}

	e := &Engine{Config: cfg, Registry: prometheus.NewRegistry()}
	e.Metrics = metrics.New(e.Registry)

	hist, err := e.openHistory(ctx, cfg.History)
	if err != nil {
		return nil, err
	}
	e.History = hist

	e.Market = e.openMarket(cfg.Market, o)

	deps := pricing.Deps{
		History:    e.History,
		Classifier: tiers.NewClassifier(cfg.Tiers),
		Dynasty:    dynasty.NewCalculator(&cfg.Dynasty),
		Vorp:       vorp.NewEngine(&cfg.Vorp),
		Picks:      picks.NewCurve(&cfg.Picks),
		Metrics:    e.Metrics,
	}
	if e.Market != nil {
		deps.Market = e.Market
	}
	e.Pricer = pricing.New(deps, &cfg.Pricing)

	e.Evaluator = trade.NewEvaluator(e.Pricer, &cfg.Trade,
		trade.WithDynasty(deps.Dynasty),
		trade.WithConfidence(confidence.NewScorer(&cfg.Confidence)),
		trade.WithMetrics(e.Metrics),
		trade.WithClock(o.now),
	)

	log.Info().
		Bool("history", cfg.History.Dir != "" || cfg.History.DSN != "").
		Bool("market", e.Market != nil).
		Msg("Engine initialized")
	return e, nil
}

func (e *Engine) openHistory(ctx context.Context, hc history.Config) (*history.Store, error) {
	switch {
	case hc.DSN != "":
		db, err := history.OpenPostgres(ctx, hc.DSN)
		if err != nil {
			return nil, fmt.Errorf("failed to open history database: %w", err)
		}
		e.closers = append(e.closers, db.Close)
		return history.NewStore(history.NewPostgresLoader(db, hc.QueryTimeout), hc.BucketWeights), nil
	case hc.Dir != "":
		return history.NewStore(history.FileLoader{Dir: hc.Dir}, hc.BucketWeights), nil
	default:
		return history.NewStore(nil, hc.BucketWeights), nil
	}
}

func (e *Engine) openMarket(mc config.MarketConfig, o engineOptions) *market.Cache {
	source := o.source
	if source == nil {
		if mc.BaseURL == "" {
			return nil
		}
		source = market.NewHTTPSource(mc.BaseURL, mc.Timeout)
	}
	guarded := market.NewGuardedSource(source, mc.Guard)

	var store market.Store
	addr := mc.Cache.RedisAddr
	if env := os.Getenv(RedisAddrEnv); env != "" {
		addr = env
	}
	if addr != "" {
		client := redis.NewClient(&redis.Options{Addr: addr})
		e.closers = append(e.closers, client.Close)
		store = market.NewRedisStore(client, mc.Cache.RedisPrefix)
		log.Info().Str("addr", addr).Msg("Market snapshots cached in Redis")
	}

	return market.NewCache(guarded, store, mc.Cache,
		market.WithClock(o.now),
		market.WithMetrics(e.Metrics),
	)
}

// Evaluate runs one trade
func (e *Engine) Evaluate(ctx context.Context, req trade.Request) *trade.Evaluation {
	return e.Evaluator.Evaluate(ctx, req)
}

// Price values one asset for a league
func (e *Engine) Price(ctx context.Context, spec asset.Spec, league asset.LeagueSettings, asOf time.Time) asset.Priced {
	return e.Pricer.Price(ctx, spec, pricing.Context{AsOf: asOf, League: &league})
}

// WriteMetrics dumps the registry in the Prometheus text format
func (e *Engine) WriteMetrics(path string) error {
	if err := prometheus.WriteToTextfile(path, e.Registry); err != nil {
		return fmt.Errorf("failed to write metrics: %w", err)
	}
	return nil
}

// Close releases database and cache connections
func (e *Engine) Close() error {
	var errs []error
	for i := len(e.closers) - 1; i >= 0; i-- {
		if err := e.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	e.closers = nil
	return errors.Join(errs...)
}
