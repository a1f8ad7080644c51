package services

import (
	"delivery-route-optimizer/internal/domain"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNearestNeighborRouteGreedyOrder(t *testing.T) {
	// HUB=0, A=1, B=2, C=3
	m := NewDistanceMatrix([][]float64{
		{0, 1.0, 2.0, 1.5},
		{1.0, 0, 0.8, 0.7},
		{2.0, 0.8, 0, 0.9},
		{1.5, 0.7, 0.9, 0},
	})

	route := NearestNeighborRoute(m, nil)

	assert.Equal(t, domain.Route{0, 1, 3, 2}, route)
	assert.InDelta(t, 2.6, TotalDistance(route, m), 1e-12)
}

func TestNearestNeighborRouteTiesPickLowestIndex(t *testing.T) {
	m := NewDistanceMatrix([][]float64{
		{0, 5, 1, 1},
		{5, 0, 1, 1},
		{1, 1, 0, 1},
		{1, 1, 1, 0},
	})

	assert.Equal(t, domain.Route{0, 2, 1, 3}, NearestNeighborRoute(m, nil))
}

func TestNearestNeighborRouteIsPermutation(t *testing.T) {
	for _, n := range []int{1, 2, 5, 30} {
		m := BuildDistanceMatrix(randomCoords(int64(n), n), nil)
		route := NearestNeighborRoute(m, nil)

		require.Len(t, route, n)
		assert.NoError(t, route.Validate(n))
		assert.Equal(t, 0, route[0])
	}
}

func TestNearestNeighborRouteEmpty(t *testing.T) {
	route := NearestNeighborRoute(NewDistanceMatrix(nil), nil)
	assert.NotNil(t, route)
	assert.Empty(t, route)
}
