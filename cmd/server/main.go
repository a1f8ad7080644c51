package main

import (
	"delivery-route-optimizer/internal/api"
	"delivery-route-optimizer/internal/config"
	"delivery-route-optimizer/internal/platform/logging"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"time"
)

// main is the HTTP composition root.
// It loads configuration, sets up logging and serves the route API.
func main() {
	cfg, err := config.Load(nil)
	if err != nil {
		slog.Error("load config", "err", err)
		os.Exit(1)
	}

	logging.Setup(cfg.Log.Level, cfg.Log.Format)

	router := api.NewRouter(api.RouterConfig{
		MaxPasses:    cfg.Optimizer.MaxPasses,
		MinutesPerKm: cfg.Optimizer.MinutesPerKm,
	})

	addr := ":" + strconv.Itoa(cfg.Server.Port)
	slog.Info("server listening", "addr", addr)

	// Write timeout covers 2-opt on the largest accepted request.
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	if err := srv.ListenAndServe(); err != nil {
		slog.Error("server stopped", "err", err)
		os.Exit(1)
	}
}
