package handlers

import (
	"delivery-route-optimizer/internal/adapters/observers"
	"delivery-route-optimizer/internal/api/dto"
	"delivery-route-optimizer/internal/domain"
	"delivery-route-optimizer/internal/report"
	"delivery-route-optimizer/internal/services"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
)

const (
	// Upper bound on points per request; 2-opt passes are O(n^3).
	maxPointsPerRequest = 500
	// Comfortably above maxPointsPerRequest points with long ids.
	maxRequestBytes = 256 << 10
)

// Used when RouteHandler.Validate is nil. Validate is safe for concurrent use.
var defaultValidate = validator.New()

type RouteHandler struct {
	MaxPasses    int
	MinutesPerKm float64
	Validate     *validator.Validate
	// Now is used for report timestamps; defaults to time.Now.
	Now func() time.Time
}

// Plan optimizes the visiting order of the posted points.
// With ?format=text the plain-text report is returned instead of JSON.
func (h *RouteHandler) Plan(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req dto.PlanRouteRequest

	body := http.MaxBytesReader(w, r.Body, maxRequestBytes)
	defer body.Close()

	dec := json.NewDecoder(body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, r, http.StatusRequestEntityTooLarge, "request body too large")
			return
		}
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return
	}

	if err := h.validator().Struct(req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid request: "+err.Error())
		return
	}
	if len(req.Points) > maxPointsPerRequest {
		writeError(w, r, http.StatusBadRequest, "too many points")
		return
	}

	points := make([]domain.Point, 0, len(req.Points))
	for _, p := range req.Points {
		points = append(points, domain.NewPoint(p.ID, *p.Latitude, *p.Longitude))
	}

	var start *domain.Coordinates
	if req.Start != nil {
		start = &domain.Coordinates{Lat: *req.Start.Latitude, Lon: *req.Start.Longitude}
	}

	ps, err := domain.NewPointSet(points, start)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	opts := services.PlanOptions{
		MaxPasses:    h.MaxPasses,
		MinutesPerKm: h.MinutesPerKm,
		Observer: observers.Multi(
			observers.NewLogObserver(r.Context(), slog.Default()),
			observers.MetricsObserver{},
		),
	}
	if req.DepartAt != nil {
		opts.DepartAt = *req.DepartAt
	}

	plan, err := services.PlanRoute(r.Context(), ps, opts)
	if errors.Is(err, domain.ErrNoPoints) {
		writeError(w, r, http.StatusUnprocessableEntity, domain.ErrNoPoints.Error())
		return
	}
	if err != nil {
		slog.ErrorContext(r.Context(), "plan route failed", "err", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	if r.URL.Query().Get("format") == "text" {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = io.WriteString(w, report.FormatText(plan, h.now()))
		return
	}

	writeJSON(w, r, http.StatusOK, toRouteResponse(plan))
}

func (h *RouteHandler) validator() *validator.Validate {
	if h.Validate == nil {
		return defaultValidate
	}
	return h.Validate
}

func (h *RouteHandler) now() time.Time {
	if h.Now != nil {
		return h.Now()
	}
	return time.Now()
}

func toRouteResponse(plan *domain.RoutePlan) dto.RouteResponse {
	km, minutes := plan.Rounded()
	res := dto.RouteResponse{
		Route:             plan.IDs(),
		Stops:             make([]dto.RouteStopResponse, 0, len(plan.Stops)),
		TotalDistanceKm:   km,
		TravelTimeMinutes: minutes,
		Passes:            plan.Passes,
		Improvements:      plan.Improvements,
		Converged:         plan.Converged,
	}

	for _, s := range plan.Stops {
		stop := dto.RouteStopResponse{
			Sequence:     s.Sequence,
			ID:           s.Point.ID,
			Latitude:     s.Point.Lat,
			Longitude:    s.Point.Lon,
			LegKm:        domain.RoundTo(s.LegKm, 2),
			CumulativeKm: domain.RoundTo(s.CumulativeKm, 2),
		}
		if !s.ArriveAt.IsZero() {
			arrive := s.ArriveAt
			stop.ArriveAt = &arrive
		}
		res.Stops = append(res.Stops, stop)
	}

	return res
}
