package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
)

// Initialize the Postgres schema for route points.
func InitSchema(ctx context.Context, db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createPointsQuery := `
	CREATE TABLE IF NOT EXISTS route_points (
		position INTEGER NOT NULL,
		point_id TEXT PRIMARY KEY,
		lat DOUBLE PRECISION NOT NULL CHECK (lat BETWEEN -90 AND 90),
		lon DOUBLE PRECISION NOT NULL CHECK (lon BETWEEN -180 AND 180)
	);
	`

	createIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_route_points_position
	ON route_points(position);
	`

	statements := []string{
		createPointsQuery,
		createIndexQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}

type PointSeed struct {
	ID        string   `json:"id"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

// parsePointSeeds decodes and checks seed records; positions follow array order.
func parsePointSeeds(data []byte) ([]PointSeed, error) {
	var seeds []PointSeed
	if err := json.Unmarshal(data, &seeds); err != nil {
		return nil, fmt.Errorf("parse json: %w", err)
	}

	seen := make(map[string]struct{}, len(seeds))
	rows := make([]PointSeed, 0, len(seeds))
	for i, item := range seeds {
		id := strings.TrimSpace(item.ID)
		if id == "" {
			return nil, fmt.Errorf("item at index %d: id cannot be empty", i+1)
		}
		if _, ok := seen[id]; ok {
			return nil, fmt.Errorf("item at index %d: duplicate id %q", i+1, id)
		}
		seen[id] = struct{}{}

		if item.Latitude == nil || item.Longitude == nil {
			return nil, fmt.Errorf("item %q: latitude and longitude are required", id)
		}

		rows = append(rows, PointSeed{ID: id, Latitude: item.Latitude, Longitude: item.Longitude})
	}

	return rows, nil
}

// Populate the route_points table from a JSON file of
// [{"id": "...", "latitude": 0, "longitude": 0}, ...].
func SeedFromJSON(ctx context.Context, db *sql.DB, jsonPath string) error {
	if db == nil {
		return errors.New("seed points: DB is nil")
	}

	data, err := os.ReadFile(jsonPath)
	if err != nil {
		return fmt.Errorf("seed points: read %q: %w", jsonPath, err)
	}

	rows, err := parsePointSeeds(data)
	if err != nil {
		return fmt.Errorf("seed points: %w", err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("seed points: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
	INSERT INTO route_points (position, point_id, lat, lon)
	VALUES ($1, $2, $3, $4)
	ON CONFLICT (point_id) DO UPDATE
	SET position = EXCLUDED.position,
		lat = EXCLUDED.lat,
		lon = EXCLUDED.lon;
	`)
	if err != nil {
		return fmt.Errorf("seed points: prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, p := range rows {
		if _, err := stmt.ExecContext(ctx, i+1, p.ID, *p.Latitude, *p.Longitude); err != nil {
			return fmt.Errorf("seed points: insert point_id=%q: %w", p.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed points: commit tx: %w", err)
	}

	return nil
}
