package observers

import (
	"context"
	"delivery-route-optimizer/internal/ports"
	"log/slog"
)

// LogObserver narrates algorithm steps as debug records.
// When the logger is not enabled for debug the events are dropped cheaply.
type LogObserver struct {
	ctx    context.Context
	logger *slog.Logger
}

func NewLogObserver(ctx context.Context, logger *slog.Logger) *LogObserver {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogObserver{ctx: ctx, logger: logger}
}

func (o *LogObserver) Observe(e ports.RouteEvent) {
	if !o.logger.Enabled(o.ctx, slog.LevelDebug) {
		return
	}

	switch e.Kind {
	case ports.EventMatrixEntry:
		o.logger.DebugContext(o.ctx, "distance computed",
			"from", e.From, "to", e.To, "km", e.DistanceKm)
	case ports.EventNearestNeighborStep:
		o.logger.DebugContext(o.ctx, "nearest neighbor selected",
			"from", e.From, "to", e.To, "km", e.DistanceKm)
	case ports.EventCandidateEvaluated:
		o.logger.DebugContext(o.ctx, "candidate reversal evaluated",
			"pass", e.Pass, "i", e.I, "j", e.J, "km", e.DistanceKm, "best_km", e.BestKm)
	case ports.EventImprovementAccepted:
		o.logger.DebugContext(o.ctx, "improvement accepted",
			"pass", e.Pass, "i", e.I, "j", e.J, "km", e.DistanceKm, "previous_km", e.BestKm)
	case ports.EventPassCompleted:
		o.logger.DebugContext(o.ctx, "two-opt pass completed",
			"pass", e.Pass, "improved", e.Improved, "best_km", e.BestKm)
	}
}
