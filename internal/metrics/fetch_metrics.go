// Package metrics exposes Prometheus instrumentation for the fetch pipeline.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// FetchMetrics contains Prometheus metrics describing fetch cycles.
type FetchMetrics struct {
	CyclesStarted  prometheus.Counter
	CyclesFinished *prometheus.CounterVec
	CycleDuration  *prometheus.HistogramVec
	StaleDiscarded prometheus.Counter
	UsersLoaded    prometheus.Gauge
	InFlight       prometheus.Gauge
}

// NewFetchMetrics creates and registers fetch metrics with the given registerer.
func NewFetchMetrics(registerer prometheus.Registerer) *FetchMetrics {
	m := &FetchMetrics{
		CyclesStarted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "userfeed_fetch_cycles_started_total",
			Help: "Total number of fetch cycles started",
		}),
		CyclesFinished: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "userfeed_fetch_cycles_finished_total",
				Help: "Total number of fetch cycles that reached a terminal state",
			},
			[]string{"outcome"}, // success, network_error, status_error, decode_error
		),
		CycleDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "userfeed_fetch_cycle_duration_seconds",
				Help:    "Time from Loading to the terminal state of a cycle",
				Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 15, 30},
			},
			[]string{"outcome"},
		),
		StaleDiscarded: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "userfeed_fetch_stale_results_total",
			Help: "Results dropped because a newer cycle had started",
		}),
		UsersLoaded: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "userfeed_users_loaded",
			Help: "Number of users held by the latest successful cycle",
		}),
		InFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "userfeed_fetch_in_flight",
			Help: "Number of HTTP requests currently outstanding",
		}),
	}

	registerer.MustRegister(
		m.CyclesStarted,
		m.CyclesFinished,
		m.CycleDuration,
		m.StaleDiscarded,
		m.UsersLoaded,
		m.InFlight,
	)

	return m
}

// CycleStarted records a new cycle and its outstanding request.
func (m *FetchMetrics) CycleStarted() {
	m.CyclesStarted.Inc()
	m.InFlight.Inc()
}

// CycleFinished records the terminal outcome of a current cycle.
// users is only meaningful for the success outcome.
func (m *FetchMetrics) CycleFinished(outcome string, took time.Duration, users int) {
	m.InFlight.Dec()
	m.CyclesFinished.WithLabelValues(outcome).Inc()
	m.CycleDuration.WithLabelValues(outcome).Observe(took.Seconds())
	if outcome == OutcomeSuccess {
		m.UsersLoaded.Set(float64(users))
	}
}

// Stale records a result that arrived after a newer cycle started.
func (m *FetchMetrics) Stale() {
	m.InFlight.Dec()
	m.StaleDiscarded.Inc()
}

const (
	OutcomeSuccess      = "success"
	OutcomeNetworkError = "network_error"
	OutcomeStatusError  = "status_error"
	OutcomeDecodeError  = "decode_error"
)
