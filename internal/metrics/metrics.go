// Package metrics holds the Prometheus collectors for valuation and trade
// evaluation. A nil *Registry is valid and records nothing.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"
)

// Cache request outcomes
const (
	CacheHit   = "hit"
	CacheMiss  = "miss"
	CacheStale = "stale"
)

// Registry holds all tradeval metrics
type Registry struct {
	// Evaluation metrics
	Evaluations       *prometheus.CounterVec
	EvaluationLatency prometheus.Histogram
	RejectionEstimate prometheus.Histogram
	RuleHits          *prometheus.CounterVec

	// Pricing metrics
	PricedAssets *prometheus.CounterVec

	// Snapshot cache metrics
	CacheRequests *prometheus.CounterVec
	FetchFailures *prometheus.CounterVec
}

// New creates the collectors and registers them with reg. A nil reg leaves
// them unregistered, which is what tests usually want.
func New(reg prometheus.Registerer) *Registry {
	r := &Registry{
		Evaluations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tradeval_evaluations_total",
				Help: "Total number of trade evaluations by grade and classification",
			},
			[]string{"grade", "classification"},
		),

		EvaluationLatency: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "tradeval_evaluation_duration_seconds",
				Help:    "Duration of a trade evaluation in seconds",
				Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5},
			},
		),

		RejectionEstimate: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "tradeval_rejection_estimate",
				Help:    "Estimated rejection likelihood (0-100) of evaluated trades",
				Buckets: []float64{0, 10, 20, 30, 40, 50, 60, 70, 80, 90, 100},
			},
		),

		RuleHits: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tradeval_sanity_rule_hits_total",
				Help: "Total number of sanity rule hits by rule",
			},
			[]string{"rule"},
		),

		PricedAssets: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tradeval_priced_assets_total",
				Help: "Total number of priced assets by kind and source",
			},
			[]string{"kind", "source"},
		),

		CacheRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tradeval_snapshot_cache_requests_total",
				Help: "Market snapshot cache requests by result",
			},
			[]string{"result"},
		),

		FetchFailures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tradeval_snapshot_fetch_failures_total",
				Help: "Market snapshot fetch failures by reason",
			},
			[]string{"reason"},
		),
	}

	if reg != nil {
		for _, c := range r.collectors() {
			if err := reg.Register(c); err != nil {
				log.Warn().Err(err).Msg("Failed to register metric")
			}
		}
	}
	return r
}

func (r *Registry) collectors() []prometheus.Collector {
	return []prometheus.Collector{
		r.Evaluations,
		r.EvaluationLatency,
		r.RejectionEstimate,
		r.RuleHits,
		r.PricedAssets,
		r.CacheRequests,
		r.FetchFailures,
	}
}

// ObserveEvaluation records one finished evaluation
func (r *Registry) ObserveEvaluation(grade, classification string, rejection int, took time.Duration) {
	if r == nil {
		return
	}
	r.Evaluations.WithLabelValues(grade, classification).Inc()
	r.RejectionEstimate.Observe(float64(rejection))
	r.EvaluationLatency.Observe(took.Seconds())
}

// RuleHit counts a triggered sanity rule
func (r *Registry) RuleHit(rule string) {
	if r == nil {
		return
	}
	r.RuleHits.WithLabelValues(rule).Inc()
}

// AssetPriced counts one pricing outcome
func (r *Registry) AssetPriced(kind, source string) {
	if r == nil {
		return
	}
	r.PricedAssets.WithLabelValues(kind, source).Inc()
}

// CacheRequest counts a snapshot cache lookup by result
func (r *Registry) CacheRequest(result string) {
	if r == nil {
		return
	}
	r.CacheRequests.WithLabelValues(result).Inc()
}

// FetchFailed counts a failed snapshot fetch
func (r *Registry) FetchFailed(reason string) {
	if r == nil {
		return
	}
	r.FetchFailures.WithLabelValues(reason).Inc()
}
