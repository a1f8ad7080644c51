package domain

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// PointSet is the immutable input of one optimization run.
//
// When a start location is present it occupies logical index 0 and the points
// occupy indices 1..n; otherwise the points occupy 0..n-1. Indices are stable
// for the lifetime of the set.
type PointSet struct {
	start  *Coordinates
	points []Point
}

// NewPointSet validates the points and the optional start and returns a PointSet
// that owns copies of both.
func NewPointSet(points []Point, start *Coordinates) (*PointSet, error) {
	seen := make(map[string]int, len(points))
	owned := make([]Point, len(points))
	for i, p := range points {
		if err := validate.Struct(p); err != nil {
			return nil, fmt.Errorf("%w: point #%d (id=%q): %v", ErrInvalidPoint, i+1, p.ID, err)
		}

		if first, ok := seen[p.ID]; ok {
			return nil, fmt.Errorf("%w: %q at #%d and #%d", ErrDuplicatePointID, p.ID, first+1, i+1)
		}
		seen[p.ID] = i
		owned[i] = p
	}

	var s *Coordinates
	if start != nil {
		if err := validate.Struct(start); err != nil {
			return nil, fmt.Errorf("%w: start location: %v", ErrInvalidPoint, err)
		}
		c := *start
		s = &c
	}

	return &PointSet{start: s, points: owned}, nil
}

// Start returns the start location, or nil when the route starts at the first point.
func (ps *PointSet) Start() *Coordinates {
	if ps.start == nil {
		return nil
	}
	c := *ps.start
	return &c
}

func (ps *PointSet) HasStart() bool { return ps.start != nil }

// Points returns the points to visit in input order.
func (ps *PointSet) Points() []Point {
	out := make([]Point, len(ps.points))
	copy(out, ps.points)
	return out
}

// Len is the number of logical indices, including the start location.
func (ps *PointSet) Len() int {
	if ps.start != nil {
		return len(ps.points) + 1
	}
	return len(ps.points)
}

// Coordinates returns one coordinate per logical index.
func (ps *PointSet) Coordinates() []Coordinates {
	out := make([]Coordinates, 0, ps.Len())
	if ps.start != nil {
		out = append(out, *ps.start)
	}
	for _, p := range ps.points {
		out = append(out, p.Coordinates)
	}
	return out
}

// At resolves a logical index to its point. ok is false for the start location.
func (ps *PointSet) At(index int) (p Point, ok bool) {
	if ps.start != nil {
		if index == 0 {
			return Point{}, false
		}
		index--
	}
	if index < 0 || index >= len(ps.points) {
		return Point{}, false
	}
	return ps.points[index], true
}

// Resolve maps a route over logical indices back to the visited points,
// skipping the start location.
func (ps *PointSet) Resolve(route Route) ([]Point, error) {
	if err := route.Validate(ps.Len()); err != nil {
		return nil, fmt.Errorf("resolve route: %w", err)
	}

	out := make([]Point, 0, len(ps.points))
	for _, idx := range route {
		p, ok := ps.At(idx)
		if !ok {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}
