package domain

import (
	"errors"
	"fmt"
	"time"
)

// Route is a visiting order over the logical indices of a PointSet.
// It is an open path: there is no implied return to index 0.
type Route []int

func (r Route) Clone() Route {
	out := make(Route, len(r))
	copy(out, r)
	return out
}

// Validate checks that the route is a permutation of 0..n-1 starting at 0.
func (r Route) Validate(n int) error {
	if len(r) != n {
		return fmt.Errorf("route length %d, want %d", len(r), n)
	}
	if n == 0 {
		return nil
	}
	if r[0] != 0 {
		return errors.New("route must start at index 0")
	}

	seen := make([]bool, n)
	for pos, idx := range r {
		if idx < 0 || idx >= n {
			return fmt.Errorf("route position %d: index %d out of range", pos, idx)
		}
		if seen[idx] {
			return fmt.Errorf("route position %d: index %d visited twice", pos, idx)
		}
		seen[idx] = true
	}
	return nil
}

// Represents a single stop in a planned route.
// LegKm is the distance from the previous stop (or the start location).
type RouteStop struct {
	Sequence     int
	Point        Point
	LegKm        float64
	CumulativeKm float64
	ArriveAt     time.Time
}

// Represents the optimized visiting order for one PointSet.
// Distances and times are kept at full precision; rounding is a
// presentation concern (see Rounded).
type RoutePlan struct {
	Start             *Coordinates
	DepartAt          time.Time
	Stops             []RouteStop
	TotalDistanceKm   float64
	TravelTimeMinutes float64

	Passes       int
	Improvements int
	Evaluations  int
	Converged    bool
}

// Rounded returns the totals at display precision: 2 decimals for distance, 1 for time.
func (p *RoutePlan) Rounded() (distanceKm, minutes float64) {
	return RoundTo(p.TotalDistanceKm, 2), RoundTo(p.TravelTimeMinutes, 1)
}

// IDs returns the visited point identifiers in order.
func (p *RoutePlan) IDs() []string {
	out := make([]string, 0, len(p.Stops))
	for _, s := range p.Stops {
		out = append(out, s.Point.ID)
	}
	return out
}
