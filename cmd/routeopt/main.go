package main

import (
	"context"
	"delivery-route-optimizer/internal/adapters/observers"
	"delivery-route-optimizer/internal/adapters/repositories"
	"delivery-route-optimizer/internal/adapters/spreadsheet"
	"delivery-route-optimizer/internal/config"
	"delivery-route-optimizer/internal/domain"
	"delivery-route-optimizer/internal/platform/db"
	"delivery-route-optimizer/internal/platform/logging"
	"delivery-route-optimizer/internal/ports"
	"delivery-route-optimizer/internal/report"
	"delivery-route-optimizer/internal/services"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/pflag"
)

// main is the command-line composition root: load points, plan, print and save the report.
func main() {
	flags := pflag.NewFlagSet("routeopt", pflag.ExitOnError)
	flags.String("input-source", config.SourceXLSX, "point source: xlsx or postgres")
	flags.String("input-path", "", "spreadsheet with id, latitude and longitude columns")
	flags.String("input-sheet", "", "sheet to read (default: first sheet)")
	flags.Bool("input-first-row-is-start", true, "use the first point as the starting location")
	flags.Float64("start-lat", 0, "explicit start latitude (overrides first-row start)")
	flags.Float64("start-lon", 0, "explicit start longitude (overrides first-row start)")
	flags.String("output-path", "", "report destination (.txt or .xlsx)")
	flags.Int("optimizer-max-passes", 0, "2-opt pass cap")
	flags.String("log-level", "", "debug, info, warn or error")
	_ = flags.Parse(os.Args[1:])

	cfg, err := config.Load(flags)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	// stdout carries the report.
	slog.SetDefault(logging.New(os.Stderr, cfg.Log.Level, cfg.Log.Format))

	if err := run(context.Background(), cfg, os.Stdout, time.Now()); err != nil {
		slog.Error("routeopt failed", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, out io.Writer, now time.Time) error {
	source, closeSource, err := openSource(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeSource()

	points, err := source.ListPoints(ctx)
	if err != nil {
		return fmt.Errorf("load points: %w", err)
	}

	var start *domain.Coordinates
	if lat, lon, ok := cfg.StartCoordinates(); ok {
		start = &domain.Coordinates{Lat: lat, Lon: lon}
	} else if cfg.Input.FirstRowIsStart {
		start, points = domain.SplitStart(points)
	}

	ps, err := domain.NewPointSet(points, start)
	if err != nil {
		return fmt.Errorf("build point set: %w", err)
	}
	slog.Info("planning route", "points", len(points), "has_start", ps.HasStart())

	plan, err := services.PlanRoute(ctx, ps, services.PlanOptions{
		MaxPasses:    cfg.Optimizer.MaxPasses,
		MinutesPerKm: cfg.Optimizer.MinutesPerKm,
		Observer:     observers.NewLogObserver(ctx, slog.Default()),
	})
	if errors.Is(err, domain.ErrNoPoints) {
		fmt.Fprintln(out, report.NoPointsMessage)
		return nil
	}
	if err != nil {
		return err
	}

	text := report.FormatText(plan, now)
	fmt.Fprintln(out, text)

	if err := save(cfg.Output.Path, plan, text); err != nil {
		return err
	}
	slog.Info("route saved", "path", cfg.Output.Path, "passes", plan.Passes, "improvements", plan.Improvements)

	return nil
}

func openSource(ctx context.Context, cfg *config.Config) (ports.PointSource, func(), error) {
	switch cfg.Input.Source {
	case config.SourcePostgres:
		conn, err := db.Open(ctx, cfg.Database.URL)
		if err != nil {
			return nil, nil, err
		}
		return repositories.NewSQLPointRepository(conn), func() { _ = conn.Close() }, nil
	default:
		return spreadsheet.NewExcelPointSource(cfg.Input.Path, cfg.Input.Sheet), func() {}, nil
	}
}

func save(path string, plan *domain.RoutePlan, text string) error {
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		return report.WriteWorkbook(path, plan)
	}
	return report.WriteFile(path, text)
}
