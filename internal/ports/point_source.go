package ports

import (
	"context"
	"delivery-route-optimizer/internal/domain"
)

// Port: a boundary for loading the points to visit from a tabular source.
type PointSource interface {
	// Return all points in source order.
	ListPoints(ctx context.Context) ([]domain.Point, error)
}
