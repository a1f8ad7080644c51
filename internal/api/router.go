package api

import (
	"delivery-route-optimizer/internal/api/handlers"
	"delivery-route-optimizer/internal/platform/metrics"
	"net/http"

	"github.com/go-playground/validator/v10"
)

type RouterConfig struct {
	MaxPasses    int
	MinutesPerKm float64
}

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(cfg RouterConfig) http.Handler {
	mux := http.NewServeMux()

	routeHandler := &handlers.RouteHandler{
		MaxPasses:    cfg.MaxPasses,
		MinutesPerKm: cfg.MinutesPerKm,
		Validate:     validator.New(),
	}

	mux.HandleFunc("/health", handlers.Health)
	mux.HandleFunc("/routes", routeHandler.Plan)
	mux.Handle("/metrics", metrics.Handler())

	return requestIDMiddleware(loggingMiddleware(mux))
}
