package ports

// Kind of intermediate decision reported while a route is built.
type RouteEventKind string

const (
	EventMatrixEntry         RouteEventKind = "matrix_entry"
	EventNearestNeighborStep RouteEventKind = "nearest_neighbor_step"
	EventCandidateEvaluated  RouteEventKind = "candidate_evaluated"
	EventImprovementAccepted RouteEventKind = "improvement_accepted"
	EventPassCompleted       RouteEventKind = "pass_completed"
)

// RouteEvent is a structured record of one algorithm step.
//
// Field use depends on Kind:
//   - matrix_entry: From, To, DistanceKm
//   - nearest_neighbor_step: From, To, DistanceKm
//   - candidate_evaluated: Pass, I, J, DistanceKm (candidate total), BestKm
//   - improvement_accepted: Pass, I, J, DistanceKm (new total), BestKm (previous total)
//   - pass_completed: Pass, Improved, BestKm
type RouteEvent struct {
	Kind       RouteEventKind
	Pass       int
	From, To   int
	I, J       int
	DistanceKm float64
	BestKm     float64
	Improved   bool
}

// Contract for observing route construction without coupling the algorithms to output.
// Observers are called synchronously from the computing goroutine.
type RouteObserver interface {
	Observe(e RouteEvent)
}

// RouteObserverFunc adapts a function to RouteObserver.
type RouteObserverFunc func(e RouteEvent)

func (f RouteObserverFunc) Observe(e RouteEvent) { f(e) }

// NopObserver discards every event.
type NopObserver struct{}

func (NopObserver) Observe(RouteEvent) {}
