package observers

import (
	"delivery-route-optimizer/internal/platform/metrics"
	"delivery-route-optimizer/internal/ports"
	"strconv"
)

// MetricsObserver counts algorithm steps in the process-wide Prometheus registry.
type MetricsObserver struct{}

func (MetricsObserver) Observe(e ports.RouteEvent) {
	switch e.Kind {
	case ports.EventMatrixEntry:
		metrics.MatrixEntriesComputed.Inc()
	case ports.EventCandidateEvaluated:
		metrics.CandidatesEvaluated.Inc()
	case ports.EventImprovementAccepted:
		metrics.ImprovementsAccepted.Inc()
	case ports.EventPassCompleted:
		metrics.PassesCompleted.WithLabelValues(strconv.FormatBool(e.Improved)).Inc()
	}
}
