package market

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"
)

// ErrBreakerOpen is returned while the snapshot breaker refuses calls
var ErrBreakerOpen = errors.New("market: circuit breaker open")

// GuardConfig tunes the rate limit and circuit breaker around a Source
type GuardConfig struct {
	Name                string        `yaml:"name"`
	RPS                 float64       `yaml:"rps"`
	Burst               int           `yaml:"burst"`
	MaxRequests         uint32        `yaml:"max_requests"`
	Interval            time.Duration `yaml:"interval"`
	Timeout             time.Duration `yaml:"timeout"`
	ConsecutiveFailures uint32        `yaml:"consecutive_failures"`
	ErrorRateThreshold  float64       `yaml:"error_rate_threshold"`
	MinRequests         uint32        `yaml:"min_requests"`
}

// DefaultGuardConfig returns conservative limits for a public values API
func DefaultGuardConfig() GuardConfig {
	return GuardConfig{
		Name:                "market-snapshot",
		RPS:                 1,
		Burst:               2,
		MaxRequests:         1,
		Interval:            60 * time.Second,
		Timeout:             60 * time.Second,
		ConsecutiveFailures: 3,
		ErrorRateThreshold:  0.5,
		MinRequests:         10,
	}
}

// GuardedSource rate limits and circuit-breaks another Source
type GuardedSource struct {
	next    Source
	name    string
	limiter *rate.Limiter
	breaker *gobreaker.CircuitBreaker
}

// NewGuardedSource wraps next
func NewGuardedSource(next Source, cfg GuardConfig) *GuardedSource {
	burst := cfg.Burst
	if burst < 1 {
		burst = 1
	}
	limit := rate.Limit(cfg.RPS)
	if cfg.RPS <= 0 {
		limit = rate.Inf
	}
	g := &GuardedSource{
		next:    next,
		name:    cfg.Name,
		limiter: rate.NewLimiter(limit, burst),
	}

	st := gobreaker.Settings{
		Name:        cfg.Name,
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
	}
	st.ReadyToTrip = func(counts gobreaker.Counts) bool {
		if cfg.ConsecutiveFailures > 0 && counts.ConsecutiveFailures >= cfg.ConsecutiveFailures {
			return true
		}
		if counts.Requests < cfg.MinRequests || counts.Requests == 0 {
			return false
		}
		return float64(counts.TotalFailures)/float64(counts.Requests) >= cfg.ErrorRateThreshold
	}
	st.OnStateChange = func(name string, from, to gobreaker.State) {
		log.Warn().
			Str("breaker", name).
			Str("from", from.String()).
			Str("to", to.String()).
			Msg("Market snapshot breaker state change")
	}
	g.breaker = gobreaker.NewCircuitBreaker(st)
	return g
}

// State reports the breaker state
func (g *GuardedSource) State() gobreaker.State {
	return g.breaker.State()
}

// Fetch waits for a rate token, then calls through the breaker
func (g *GuardedSource) Fetch(ctx context.Context, q Query) (*Snapshot, error) {
	if err := g.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("market rate limit wait: %w", err)
	}

	res, err := g.breaker.Execute(func() (interface{}, error) {
		return g.next.Fetch(ctx, q)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return nil, fmt.Errorf("%w (%s)", ErrBreakerOpen, g.name)
	}
	if err != nil {
		return nil, err
	}
	return res.(*Snapshot), nil
}
