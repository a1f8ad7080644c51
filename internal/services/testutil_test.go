package services

import (
	"delivery-route-optimizer/internal/domain"
	"math/rand"
	"testing"
)

// randomCoords returns n deterministic coordinates around Cúcuta.
func randomCoords(seed int64, n int) []domain.Coordinates {
	rng := rand.New(rand.NewSource(seed))
	out := make([]domain.Coordinates, n)
	for i := range out {
		out[i] = domain.Coordinates{
			Lat: 7.85 + rng.Float64()*0.1,
			Lon: -72.55 + rng.Float64()*0.1,
		}
	}
	return out
}

// assertLocalOptimum fails if any allowed segment reversal shortens route.
func assertLocalOptimum(t *testing.T, route domain.Route, m *DistanceMatrix) {
	t.Helper()

	base := TotalDistance(route, m)
	n := len(route)
	for i := 1; i < n-2; i++ {
		for j := i + 2; j < n; j++ {
			c := route.Clone()
			reverseSegment(c, i, j)
			if d := TotalDistance(c, m); d < base {
				t.Fatalf("reversal [%d..%d] improves %v -> %v", i, j, base, d)
			}
		}
	}
}
