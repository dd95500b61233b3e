package controller

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus metrics for the fetch lifecycle.
var (
	fetchesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "directory_fetches_total",
		Help: "Total completed fetches by outcome (loaded, failed)",
	}, []string{"outcome"})

	fetchDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "directory_fetch_duration_seconds",
		Help:    "Time from StartFetch to a resolved state, including the fetch delay",
		Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10},
	})

	controllerState = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "directory_controller_state",
		Help: "Current controller state (1 for the active state, 0 otherwise)",
	}, []string{"state"})

	pageNavigations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "directory_page_navigations_total",
		Help: "Total successful page moves by direction (next, previous)",
	}, []string{"direction"})

	resetsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "directory_resets_total",
		Help: "Total accepted resets",
	})
)

func recordState(state FetchState) {
	for _, name := range stateNames {
		value := 0.0
		if name == state.Name() {
			value = 1
		}
		controllerState.WithLabelValues(name).Set(value)
	}
}
