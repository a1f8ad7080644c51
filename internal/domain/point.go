package domain

import "strings"

// Represents a single location to visit.
// A Point has a unique, non-empty identifier and a fixed coordinate.
type Point struct {
	ID          string `validate:"required"`
	Coordinates
}

func NewPoint(id string, lat, lon float64) Point {
	return Point{
		ID:          strings.TrimSpace(id),
		Coordinates: Coordinates{Lat: lat, Lon: lon},
	}
}

// SplitStart uses the first point's coordinates as the starting location and
// returns the remaining points as the ones to visit.
// The first point's identifier is dropped.
func SplitStart(points []Point) (*Coordinates, []Point) {
	if len(points) == 0 {
		return nil, nil
	}

	start := points[0].Coordinates
	return &start, points[1:]
}
