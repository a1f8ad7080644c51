package services

import (
	"context"
	"delivery-route-optimizer/internal/domain"
	"delivery-route-optimizer/internal/platform/obs"
	"delivery-route-optimizer/internal/ports"
	"errors"
	"fmt"
	"log/slog"
	"time"
)

type PlanOptions struct {
	// MaxPasses caps 2-opt passes. Values <= 0 use DefaultMaxPasses.
	MaxPasses int
	// MinutesPerKm converts distance to travel time. Values <= 0 use DefaultMinutesPerKm.
	MinutesPerKm float64
	// DepartAt, when set, is used to estimate an arrival time per stop.
	DepartAt time.Time
	Observer ports.RouteObserver
}

// Plan the shortest open route found by nearest-neighbor construction
// followed by 2-opt refinement.
//
// The pipeline is: distance matrix -> nearest-neighbor route -> 2-opt -> summary.
// Each stage is a pure transformation of its input; the PointSet is not modified.
// Returns domain.ErrNoPoints when the set has no points to visit.
func PlanRoute(
	ctx context.Context,
	ps *domain.PointSet,
	opts PlanOptions,
) (_ *domain.RoutePlan, err error) {
	defer obs.Time(ctx, "services.PlanRoute")(&err)

	if ps == nil {
		return nil, errors.New("plan route: point set must be non-nil")
	}

	points := ps.Points()
	if len(points) == 0 {
		return nil, fmt.Errorf("plan route: %w", domain.ErrNoPoints)
	}

	minutesPerKm := opts.MinutesPerKm
	if minutesPerKm <= 0 {
		minutesPerKm = DefaultMinutesPerKm
	}

	matrix := BuildDistanceMatrix(ps.Coordinates(), opts.Observer)
	initial := NearestNeighborRoute(matrix, opts.Observer)

	optimized, stats, err := TwoOpt(ctx, initial, matrix, TwoOptOptions{
		MaxPasses: opts.MaxPasses,
		Observer:  opts.Observer,
	})
	if err != nil {
		return nil, fmt.Errorf("plan route: %w", err)
	}

	if !stats.Converged {
		slog.WarnContext(ctx, "two-opt stopped at pass cap before converging",
			"passes", stats.Passes,
			"improvements", stats.Improvements,
		)
	}

	metrics := Summarize(optimized, matrix, minutesPerKm)

	stops, err := buildStops(ps, optimized, matrix, minutesPerKm, opts.DepartAt)
	if err != nil {
		return nil, fmt.Errorf("plan route: %w", err)
	}

	return &domain.RoutePlan{
		Start:             ps.Start(),
		DepartAt:          opts.DepartAt,
		Stops:             stops,
		TotalDistanceKm:   metrics.DistanceKm,
		TravelTimeMinutes: metrics.TravelTimeMinutes,
		Passes:            stats.Passes,
		Improvements:      stats.Improvements,
		Evaluations:       stats.Evaluations,
		Converged:         stats.Converged,
	}, nil
}

// buildStops resolves route indices to points and accumulates leg distances.
// The start location, if any, is not a stop.
func buildStops(
	ps *domain.PointSet,
	route domain.Route,
	m *DistanceMatrix,
	minutesPerKm float64,
	departAt time.Time,
) ([]domain.RouteStop, error) {
	if err := route.Validate(ps.Len()); err != nil {
		return nil, fmt.Errorf("build stops: %w", err)
	}

	stops := make([]domain.RouteStop, 0, len(route))
	cumulative := 0.0
	for k, idx := range route {
		leg := 0.0
		if k > 0 {
			leg = m.At(route[k-1], idx)
		}
		cumulative += leg

		p, ok := ps.At(idx)
		if !ok {
			continue
		}

		stop := domain.RouteStop{
			Sequence:     len(stops) + 1,
			Point:        p,
			LegKm:        leg,
			CumulativeKm: cumulative,
		}
		if !departAt.IsZero() {
			stop.ArriveAt = departAt.Add(time.Duration(cumulative * minutesPerKm * float64(time.Minute)))
		}
		stops = append(stops, stop)
	}

	return stops, nil
}
