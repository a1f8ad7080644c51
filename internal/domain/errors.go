package domain

import "errors"

var (
	// ErrNoPoints is returned when there is nothing to optimize.
	ErrNoPoints = errors.New("no points to optimize")

	ErrInvalidPoint     = errors.New("invalid point")
	ErrDuplicatePointID = errors.New("duplicate point id")
)
