package services

import (
	"context"
	"delivery-route-optimizer/internal/domain"
	"delivery-route-optimizer/internal/ports"
	"fmt"
)

// DefaultMaxPasses bounds the 2-opt loop when TwoOptOptions.MaxPasses is unset.
const DefaultMaxPasses = 1000

type TwoOptOptions struct {
	// MaxPasses caps the number of full scans. Values <= 0 use DefaultMaxPasses.
	MaxPasses int
	Observer  ports.RouteObserver
}

// TwoOptStats describes how a 2-opt run ended.
type TwoOptStats struct {
	Passes       int
	Improvements int
	Evaluations  int
	// Converged is false when MaxPasses stopped the search before a pass
	// without improvement.
	Converged bool
}

// Improve a route with 2-opt local search.
//
// Each pass scans every segment route[i..j] with 1 <= i < len-2 and
// i+2 <= j < len, reverses it in a candidate copy and scores the candidate
// as an open path. A strictly shorter candidate replaces the current route
// immediately and the scan continues over the remaining pairs against the
// new route. The search stops after a pass with no improvement.
//
// Index 0 is never moved. Routes of length <= 3 are returned unchanged.
func TwoOpt(
	ctx context.Context,
	route domain.Route,
	m *DistanceMatrix,
	opts TwoOptOptions,
) (domain.Route, TwoOptStats, error) {
	observer := opts.Observer
	if observer == nil {
		observer = ports.NopObserver{}
	}

	maxPasses := opts.MaxPasses
	if maxPasses <= 0 {
		maxPasses = DefaultMaxPasses
	}

	if len(route) != m.Len() {
		return nil, TwoOptStats{}, fmt.Errorf(
			"two-opt: route length %d does not match matrix size %d",
			len(route), m.Len(),
		)
	}

	best := route.Clone()
	bestDistance := TotalDistance(best, m)
	candidate := make(domain.Route, len(best))

	stats := TwoOptStats{}
	n := len(best)

	for stats.Passes < maxPasses {
		if err := ctx.Err(); err != nil {
			return nil, stats, fmt.Errorf("two-opt: pass %d: %w", stats.Passes+1, err)
		}
		stats.Passes++

		improved := false
		for i := 1; i < n-2; i++ {
			for j := i + 2; j < n; j++ {
				copy(candidate, best)
				reverseSegment(candidate, i, j)

				candidateDistance := TotalDistance(candidate, m)
				stats.Evaluations++

				observer.Observe(ports.RouteEvent{
					Kind:       ports.EventCandidateEvaluated,
					Pass:       stats.Passes,
					I:          i,
					J:          j,
					DistanceKm: candidateDistance,
					BestKm:     bestDistance,
				})

				if candidateDistance < bestDistance {
					observer.Observe(ports.RouteEvent{
						Kind:       ports.EventImprovementAccepted,
						Pass:       stats.Passes,
						I:          i,
						J:          j,
						DistanceKm: candidateDistance,
						BestKm:     bestDistance,
					})

					best, candidate = candidate, best
					bestDistance = candidateDistance
					stats.Improvements++
					improved = true
				}
			}
		}

		observer.Observe(ports.RouteEvent{
			Kind:     ports.EventPassCompleted,
			Pass:     stats.Passes,
			Improved: improved,
			BestKm:   bestDistance,
		})

		if !improved {
			stats.Converged = true
			break
		}
	}

	return best, stats, nil
}

// reverseSegment reverses r[i..j] in place, both ends inclusive.
func reverseSegment(r domain.Route, i, j int) {
	for i < j {
		r[i], r[j] = r[j], r[i]
		i++
		j--
	}
}
