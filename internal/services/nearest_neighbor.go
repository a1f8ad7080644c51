package services

import (
	"delivery-route-optimizer/internal/domain"
	"delivery-route-optimizer/internal/ports"
	"math"
)

// Build an initial route using a greedy nearest-neighbor heuristic.
//
// The route starts at index 0 and repeatedly steps to the closest unvisited
// index. Ties go to the lowest index. There is no backtracking and no
// optimality guarantee; the result only seeds the 2-opt refinement.
func NearestNeighborRoute(m *DistanceMatrix, observer ports.RouteObserver) domain.Route {
	if observer == nil {
		observer = ports.NopObserver{}
	}

	n := m.Len()
	if n == 0 {
		return domain.Route{}
	}

	route := make(domain.Route, 0, n)
	visited := make([]bool, n)

	current := 0
	route = append(route, current)
	visited[current] = true

	for len(route) < n {
		next := -1
		minDistance := math.Inf(1)

		// Strict comparison in ascending scan keeps the lowest index on ties.
		for i := 0; i < n; i++ {
			if visited[i] {
				continue
			}
			if d := m.At(current, i); next == -1 || d < minDistance {
				minDistance = d
				next = i
			}
		}

		observer.Observe(ports.RouteEvent{
			Kind:       ports.EventNearestNeighborStep,
			From:       current,
			To:         next,
			DistanceKm: minDistance,
		})

		route = append(route, next)
		visited[next] = true
		current = next
	}

	return route
}
