package services

import "delivery-route-optimizer/internal/domain"

// DefaultMinutesPerKm is the travel-time conversion used when none is configured.
const DefaultMinutesPerKm = 3.0

// RouteMetrics holds full-precision route totals.
type RouteMetrics struct {
	DistanceKm        float64
	TravelTimeMinutes float64
}

// Rounded returns the totals at display precision: 2 decimals for distance, 1 for time.
func (r RouteMetrics) Rounded() RouteMetrics {
	return RouteMetrics{
		DistanceKm:        domain.RoundTo(r.DistanceKm, 2),
		TravelTimeMinutes: domain.RoundTo(r.TravelTimeMinutes, 1),
	}
}

// TotalDistance sums consecutive legs along an open route.
// There is no closing edge back to the first index.
func TotalDistance(route domain.Route, m *DistanceMatrix) float64 {
	total := 0.0
	for k := 0; k+1 < len(route); k++ {
		total += m.At(route[k], route[k+1])
	}
	return total
}

// Summarize computes total distance and estimated travel time for a finished route.
// minutesPerKm <= 0 falls back to DefaultMinutesPerKm.
func Summarize(route domain.Route, m *DistanceMatrix, minutesPerKm float64) RouteMetrics {
	if minutesPerKm <= 0 {
		minutesPerKm = DefaultMinutesPerKm
	}

	distance := TotalDistance(route, m)
	return RouteMetrics{
		DistanceKm:        distance,
		TravelTimeMinutes: distance * minutesPerKm,
	}
}
