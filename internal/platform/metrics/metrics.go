package metrics

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// HTTP metrics
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "routeopt",
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "Total HTTP requests processed",
	}, []string{"method", "path", "status"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "routeopt",
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency in seconds",
		Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 10},
	}, []string{"method", "path"})

	// Optimizer metrics
	MatrixEntriesComputed = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "routeopt",
		Subsystem: "optimizer",
		Name:      "matrix_entries_total",
		Help:      "Total distance matrix pairs computed",
	})

	CandidatesEvaluated = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "routeopt",
		Subsystem: "optimizer",
		Name:      "candidates_evaluated_total",
		Help:      "Total 2-opt candidate reversals scored",
	})

	ImprovementsAccepted = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "routeopt",
		Subsystem: "optimizer",
		Name:      "improvements_accepted_total",
		Help:      "Total 2-opt reversals that shortened the route",
	})

	PassesCompleted = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "routeopt",
		Subsystem: "optimizer",
		Name:      "passes_total",
		Help:      "Total 2-opt passes, by whether the pass improved the route",
	}, []string{"improved"})
)

// ObserveHTTP records one completed request.
func ObserveHTTP(method, path string, status int, seconds float64) {
	HTTPRequestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	HTTPRequestDuration.WithLabelValues(method, path).Observe(seconds)
}

// Handler serves the default registry in the Prometheus text format.
func Handler() http.Handler {
	return promhttp.Handler()
}
