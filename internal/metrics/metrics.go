// Package metrics exposes Prometheus instruments for the investing engine.
package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	// SimulationsTotal counts completed single-path simulations by profile.
	SimulationsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "investing_simulations_total",
		Help: "Total number of completed portfolio simulations",
	}, []string{"profile"})

	// MonteCarloRunsTotal counts individual Monte Carlo paths executed.
	MonteCarloRunsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "investing_montecarlo_runs_total",
		Help: "Total number of Monte Carlo paths executed",
	})

	// RequestDuration observes handler latency per endpoint and status.
	RequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "investing_request_duration_seconds",
		Help:    "HTTP request duration by endpoint",
		Buckets: prometheus.DefBuckets,
	}, []string{"endpoint", "status"})

	// CoachRequestsTotal counts coach replies by outcome (ai or fallback).
	CoachRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "investing_coach_requests_total",
		Help: "Total number of coach explanations by outcome",
	}, []string{"outcome"})

	// ErrorsTotal counts request failures by taxonomy kind.
	ErrorsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "investing_errors_total",
		Help: "Total number of failed requests by error kind",
	}, []string{"kind"})
)

func init() {
	prometheus.MustRegister(SimulationsTotal)
	prometheus.MustRegister(MonteCarloRunsTotal)
	prometheus.MustRegister(RequestDuration)
	prometheus.MustRegister(CoachRequestsTotal)
	prometheus.MustRegister(ErrorsTotal)
}
