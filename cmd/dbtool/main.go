package main

import (
	"context"
	"database/sql"
	"delivery-route-optimizer/internal/adapters/repositories"
	"delivery-route-optimizer/internal/config"
	"delivery-route-optimizer/internal/platform/db"
	"delivery-route-optimizer/internal/platform/logging"
	"fmt"
	"log/slog"
	"os"
	"strings"
)

func main() {
	cfg, err := config.Load(nil)
	if err != nil {
		slog.Error("load config", "err", err)
		os.Exit(1)
	}
	logging.Setup(cfg.Log.Level, cfg.Log.Format)

	if strings.TrimSpace(cfg.Database.URL) == "" {
		slog.Error("database.url (DATABASE_URL) is required")
		os.Exit(1)
	}

	ctx := context.Background()

	conn, err := db.Open(ctx, cfg.Database.URL)
	if err != nil {
		slog.Error("open database", "err", err)
		os.Exit(1)
	}
	defer conn.Close()

	if err := initAndSeed(ctx, conn, cfg.Database.SeedPath); err != nil {
		slog.Error("init and seed", "err", err)
		conn.Close()
		os.Exit(1)
	}
}

func initAndSeed(ctx context.Context, conn *sql.DB, seedPath string) error {
	slog.Info("initializing database schema")
	if err := repositories.InitSchema(ctx, conn); err != nil {
		return fmt.Errorf("init and seed: %w", err)
	}
	slog.Info("schema ready")

	slog.Info("seeding database", "path", seedPath)
	if err := repositories.SeedFromJSON(ctx, conn, seedPath); err != nil {
		return fmt.Errorf("init and seed: %w", err)
	}
	slog.Info("seeding complete")

	return nil
}
