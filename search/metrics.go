// Package search - Prometheus collectors for solver activity.

package search

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics exposes solver activity as Prometheus collectors. A nil *Metrics
// is valid and records nothing.
type Metrics struct {
	steps      *prometheus.CounterVec
	restarts   *prometheus.CounterVec
	solves     *prometheus.CounterVec
	candidates prometheus.Histogram
	score      *prometheus.GaugeVec
	duration   *prometheus.HistogramVec
}

// NewMetrics builds the collectors and registers them on reg. Registering
// twice on the same registry returns the existing collectors.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		steps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "qsearch_steps_total",
			Help: "Chain steps taken, by driver",
		}, []string{"driver"}),
		restarts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "qsearch_restarts_total",
			Help: "Population restarts, by driver",
		}, []string{"driver"}),
		solves: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "qsearch_solves_total",
			Help: "Finished solves, by driver and stop reason",
		}, []string{"driver", "reason"}),
		candidates: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "qsearch_mcmc_candidates",
			Help:    "Candidates scored per MCMC step",
			Buckets: prometheus.ExponentialBuckets(4, 4, 8),
		}),
		score: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "qsearch_best_score",
			Help: "Best chain score of the most recent solve, by driver",
		}, []string{"driver"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "qsearch_solve_duration_seconds",
			Help:    "Wall time per solve, by driver",
			Buckets: prometheus.ExponentialBuckets(0.001, 4, 10),
		}, []string{"driver"}),
	}

	var err error
	if m.steps, err = register(reg, m.steps); err != nil {
		return nil, err
	}
	if m.restarts, err = register(reg, m.restarts); err != nil {
		return nil, err
	}
	if m.solves, err = register(reg, m.solves); err != nil {
		return nil, err
	}
	if m.candidates, err = register(reg, m.candidates); err != nil {
		return nil, err
	}
	if m.score, err = register(reg, m.score); err != nil {
		return nil, err
	}
	if m.duration, err = register(reg, m.duration); err != nil {
		return nil, err
	}

	return m, nil
}

// register adds c to reg, or returns the collector already registered
// under the same descriptor.
func register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	err := reg.Register(c)
	if err == nil {
		return c, nil
	}
	var are prometheus.AlreadyRegisteredError
	if errors.As(err, &are) {
		if existing, ok := are.ExistingCollector.(C); ok {
			return existing, nil
		}
	}

	return c, err
}

func (m *Metrics) observeStep(driver string) {
	if m != nil {
		m.steps.WithLabelValues(driver).Inc()
	}
}

func (m *Metrics) observeRestart(driver string) {
	if m != nil {
		m.restarts.WithLabelValues(driver).Inc()
	}
}

func (m *Metrics) observeCandidates(n int) {
	if m != nil {
		m.candidates.Observe(float64(n))
	}
}

func (m *Metrics) observeSolve(driver string, reason StopReason, best float64, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.solves.WithLabelValues(driver, reason.String()).Inc()
	m.score.WithLabelValues(driver).Set(best)
	m.duration.WithLabelValues(driver).Observe(elapsed.Seconds())
}
