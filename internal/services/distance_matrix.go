package services

import (
	"delivery-route-optimizer/internal/domain"
	"delivery-route-optimizer/internal/geo"
	"delivery-route-optimizer/internal/ports"
)

// DistanceMatrix is a read-only, symmetric table of great-circle distances in
// kilometers between every pair of logical indices, with a zero diagonal.
type DistanceMatrix struct {
	n  int
	km []float64
}

// BuildDistanceMatrix computes the pairwise distance table for coords.
//
// Each unordered pair is computed once and stored in both directions.
// An empty coordinate list yields a 0x0 matrix.
func BuildDistanceMatrix(coords []domain.Coordinates, observer ports.RouteObserver) *DistanceMatrix {
	if observer == nil {
		observer = ports.NopObserver{}
	}

	n := len(coords)
	m := &DistanceMatrix{n: n, km: make([]float64, n*n)}

	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			d := geo.Distance(coords[i], coords[j])
			m.km[i*n+j] = d
			m.km[j*n+i] = d

			observer.Observe(ports.RouteEvent{
				Kind:       ports.EventMatrixEntry,
				From:       i,
				To:         j,
				DistanceKm: d,
			})
		}
	}

	return m
}

// NewDistanceMatrix wraps a precomputed square table. Used when distances come
// from somewhere other than coordinates (tests, fixtures).
func NewDistanceMatrix(rows [][]float64) *DistanceMatrix {
	n := len(rows)
	m := &DistanceMatrix{n: n, km: make([]float64, n*n)}
	for i, row := range rows {
		copy(m.km[i*n:(i+1)*n], row)
	}
	return m
}

func (m *DistanceMatrix) Len() int { return m.n }

// At returns the distance between logical indices i and j.
func (m *DistanceMatrix) At(i, j int) float64 {
	return m.km[i*m.n+j]
}

// Rows returns a copy of the table as a slice of rows.
func (m *DistanceMatrix) Rows() [][]float64 {
	out := make([][]float64, m.n)
	for i := range out {
		out[i] = make([]float64, m.n)
		copy(out[i], m.km[i*m.n:(i+1)*m.n])
	}
	return out
}
