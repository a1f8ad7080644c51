package services

import (
	"delivery-route-optimizer/internal/domain"
	"delivery-route-optimizer/internal/ports"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildDistanceMatrixSymmetricZeroDiagonal(t *testing.T) {
	coords := randomCoords(7, 12)
	m := BuildDistanceMatrix(coords, nil)

	require.Equal(t, len(coords), m.Len())
	for i := 0; i < m.Len(); i++ {
		assert.Equal(t, 0.0, m.At(i, i), "diagonal %d", i)
		for j := 0; j < m.Len(); j++ {
			assert.Equal(t, m.At(i, j), m.At(j, i), "pair %d,%d", i, j)
			if i != j {
				assert.Greater(t, m.At(i, j), 0.0)
			}
		}
	}
}

func TestBuildDistanceMatrixEmpty(t *testing.T) {
	m := BuildDistanceMatrix(nil, nil)
	assert.Equal(t, 0, m.Len())
	assert.Empty(t, m.Rows())
}

func TestBuildDistanceMatrixReportsEachPairOnce(t *testing.T) {
	var events []ports.RouteEvent
	obs := ports.RouteObserverFunc(func(e ports.RouteEvent) { events = append(events, e) })

	coords := []domain.Coordinates{{Lat: 0, Lon: 0}, {Lat: 0, Lon: 1}, {Lat: 1, Lon: 1}, {Lat: 1, Lon: 0}}
	m := BuildDistanceMatrix(coords, obs)

	require.Len(t, events, 6)
	for _, e := range events {
		assert.Equal(t, ports.EventMatrixEntry, e.Kind)
		assert.Less(t, e.From, e.To)
		assert.Equal(t, m.At(e.From, e.To), e.DistanceKm)
	}
}

func TestDistanceMatrixRowsIsCopy(t *testing.T) {
	m := NewDistanceMatrix([][]float64{{0, 2}, {2, 0}})

	rows := m.Rows()
	rows[0][1] = 99

	assert.Equal(t, 2.0, m.At(0, 1))
}
