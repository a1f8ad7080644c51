package repositories

import (
	"context"
	"database/sql"
	"delivery-route-optimizer/internal/domain"
	"delivery-route-optimizer/internal/platform/obs"
	"errors"
	"fmt"
)

// Postgres-backed implementation of the PointSource port.
type SQLPointRepository struct{ DB *sql.DB }

func NewSQLPointRepository(db *sql.DB) *SQLPointRepository {
	return &SQLPointRepository{DB: db}
}

// Return all stored points ordered by position.
func (s *SQLPointRepository) ListPoints(ctx context.Context) (_ []domain.Point, err error) {
	defer obs.Time(ctx, "points.ListPoints")(&err)

	if s.DB == nil {
		return nil, errors.New("sql point repository: DB is nil")
	}

	query := `
	SELECT
		point_id,
		lat,
		lon
	FROM route_points
	ORDER BY position, point_id;
	`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list points: query route_points table: %w", err)
	}
	defer rows.Close()

	points := make([]domain.Point, 0, 64)
	for rows.Next() {
		var id string
		var lat, lon float64
		if err := rows.Scan(&id, &lat, &lon); err != nil {
			return nil, fmt.Errorf("list points: scan row: %w", err)
		}
		points = append(points, domain.NewPoint(id, lat, lon))
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list points: row iteration: %w", err)
	}

	return points, nil
}
