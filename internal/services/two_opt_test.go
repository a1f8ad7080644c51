package services

import (
	"context"
	"delivery-route-optimizer/internal/domain"
	"delivery-route-optimizer/internal/ports"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTwoOptNeverIncreasesAndReachesLocalOptimum(t *testing.T) {
	for _, seed := range []int64{1, 2, 3, 42} {
		m := BuildDistanceMatrix(randomCoords(seed, 25), nil)
		initial := NearestNeighborRoute(m, nil)

		optimized, stats, err := TwoOpt(context.Background(), initial, m, TwoOptOptions{})
		require.NoError(t, err)

		assert.NoError(t, optimized.Validate(m.Len()))
		assert.Equal(t, 0, optimized[0])
		assert.LessOrEqual(t, TotalDistance(optimized, m), TotalDistance(initial, m))
		assert.True(t, stats.Converged)
		assertLocalOptimum(t, optimized, m)
	}
}

func TestTwoOptUncrossesRoute(t *testing.T) {
	// Unit square: 0=(0,0) 1=(0,1) 2=(1,1) 3=(1,0); route 0,2,1,3 crosses itself.
	coords := []domain.Coordinates{{Lat: 0, Lon: 0}, {Lat: 0, Lon: 1}, {Lat: 1, Lon: 1}, {Lat: 1, Lon: 0}}
	m := BuildDistanceMatrix(coords, nil)
	crossed := domain.Route{0, 2, 1, 3}

	optimized, stats, err := TwoOpt(context.Background(), crossed, m, TwoOptOptions{})
	require.NoError(t, err)

	assert.Less(t, TotalDistance(optimized, m), TotalDistance(crossed, m))
	assert.GreaterOrEqual(t, stats.Improvements, 1)
	assertLocalOptimum(t, optimized, m)
}

func TestTwoOptShortRoutesUnchanged(t *testing.T) {
	for n := 0; n <= 3; n++ {
		m := BuildDistanceMatrix(randomCoords(9, n), nil)
		initial := make(domain.Route, n)
		for i := range initial {
			initial[i] = i
		}

		optimized, stats, err := TwoOpt(context.Background(), initial, m, TwoOptOptions{})
		require.NoError(t, err)

		assert.Equal(t, initial, optimized)
		assert.Equal(t, 0, stats.Evaluations)
		assert.Equal(t, 0, stats.Improvements)
		assert.True(t, stats.Converged)
	}
}

func TestTwoOptDoesNotMutateInput(t *testing.T) {
	m := BuildDistanceMatrix(randomCoords(5, 15), nil)
	initial := NearestNeighborRoute(m, nil)
	snapshot := initial.Clone()

	_, _, err := TwoOpt(context.Background(), initial, m, TwoOptOptions{})
	require.NoError(t, err)

	assert.Equal(t, snapshot, initial)
}

func TestTwoOptPassCap(t *testing.T) {
	m := BuildDistanceMatrix(randomCoords(11, 40), nil)
	// A reversed identity order is far from optimal and needs several passes.
	initial := make(domain.Route, m.Len())
	initial[0] = 0
	for i := 1; i < len(initial); i++ {
		initial[i] = len(initial) - i
	}

	optimized, stats, err := TwoOpt(context.Background(), initial, m, TwoOptOptions{MaxPasses: 1})
	require.NoError(t, err)

	assert.Equal(t, 1, stats.Passes)
	assert.NoError(t, optimized.Validate(m.Len()))
	assert.LessOrEqual(t, TotalDistance(optimized, m), TotalDistance(initial, m))
	if stats.Improvements > 0 {
		assert.False(t, stats.Converged)
	}
}

func TestTwoOptObserverSeesEveryCandidate(t *testing.T) {
	m := BuildDistanceMatrix(randomCoords(3, 8), nil)
	initial := NearestNeighborRoute(m, nil)

	counts := map[ports.RouteEventKind]int{}
	obs := ports.RouteObserverFunc(func(e ports.RouteEvent) { counts[e.Kind]++ })

	_, stats, err := TwoOpt(context.Background(), initial, m, TwoOptOptions{Observer: obs})
	require.NoError(t, err)

	// 8 indices: i in 1..5, j in i+2..7 gives 15 candidates per pass.
	assert.Equal(t, 15*stats.Passes, counts[ports.EventCandidateEvaluated])
	assert.Equal(t, stats.Evaluations, counts[ports.EventCandidateEvaluated])
	assert.Equal(t, stats.Improvements, counts[ports.EventImprovementAccepted])
	assert.Equal(t, stats.Passes, counts[ports.EventPassCompleted])
}

// lineMatrix places n indices on a line one unit apart: d(i, j) = |i-j|.
func lineMatrix(n int) *DistanceMatrix {
	rows := make([][]float64, n)
	for i := range rows {
		rows[i] = make([]float64, n)
		for j := range rows[i] {
			if i > j {
				rows[i][j] = float64(i - j)
			} else {
				rows[i][j] = float64(j - i)
			}
		}
	}
	return NewDistanceMatrix(rows)
}

func TestTwoOptContinuesScanAfterImprovement(t *testing.T) {
	m := lineMatrix(6)
	initial := domain.Route{0, 5, 4, 3, 2, 1}

	type step struct {
		kind ports.RouteEventKind
		i, j int
		best float64
	}
	var firstPass []step
	obs := ports.RouteObserverFunc(func(e ports.RouteEvent) {
		if e.Pass == 1 && e.Kind != ports.EventPassCompleted {
			firstPass = append(firstPass, step{e.Kind, e.I, e.J, e.BestKm})
		}
	})

	optimized, stats, err := TwoOpt(context.Background(), initial, m, TwoOptOptions{Observer: obs})
	require.NoError(t, err)

	assert.Equal(t, domain.Route{0, 1, 2, 3, 4, 5}, optimized)
	assert.Equal(t, 1, stats.Improvements)
	assert.Equal(t, 2, stats.Passes)
	assert.True(t, stats.Converged)

	// The pass does not restart after (1,5); later pairs are scored against the new route.
	assert.Equal(t, []step{
		{ports.EventCandidateEvaluated, 1, 3, 9},
		{ports.EventCandidateEvaluated, 1, 4, 9},
		{ports.EventCandidateEvaluated, 1, 5, 9},
		{ports.EventImprovementAccepted, 1, 5, 9},
		{ports.EventCandidateEvaluated, 2, 4, 5},
		{ports.EventCandidateEvaluated, 2, 5, 5},
		{ports.EventCandidateEvaluated, 3, 5, 5},
	}, firstPass)
}

func TestTwoOptCanceledContext(t *testing.T) {
	m := BuildDistanceMatrix(randomCoords(4, 10), nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := TwoOpt(ctx, NearestNeighborRoute(m, nil), m, TwoOptOptions{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestTwoOptRejectsMismatchedRoute(t *testing.T) {
	m := BuildDistanceMatrix(randomCoords(4, 5), nil)

	_, _, err := TwoOpt(context.Background(), domain.Route{0, 1}, m, TwoOptOptions{})
	assert.Error(t, err)
}
