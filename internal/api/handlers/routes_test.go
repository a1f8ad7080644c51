package handlers

import (
	"delivery-route-optimizer/internal/api/dto"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const squareBody = `{
	"start": {"latitude": 0, "longitude": 0},
	"points": [
		{"id": "B", "latitude": 0, "longitude": 1},
		{"id": "C", "latitude": 1, "longitude": 1},
		{"id": "D", "latitude": 1, "longitude": 0}
	]
}`

func postRoutes(t *testing.T, h *RouteHandler, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Plan(rec, req)
	return rec
}

func TestRouteHandlerPlan(t *testing.T) {
	rec := postRoutes(t, &RouteHandler{}, "/routes", squareBody)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var res dto.RouteResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))

	assert.Len(t, res.Route, 3)
	assert.Equal(t, "C", res.Route[1])
	assert.Equal(t, 333.57, res.TotalDistanceKm)
	assert.Equal(t, 1000.7, res.TravelTimeMinutes)
	assert.True(t, res.Converged)
	require.Len(t, res.Stops, 3)
	assert.Nil(t, res.Stops[0].ArriveAt)
}

func TestRouteHandlerPlanWithDeparture(t *testing.T) {
	body := `{"points": [
		{"id": "001", "latitude": 7.8891, "longitude": -72.5020},
		{"id": "002", "latitude": 7.9010, "longitude": -72.5150}
	], "depart_at": "2026-01-01T08:00:00Z"}`

	rec := postRoutes(t, &RouteHandler{}, "/routes", body)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var res dto.RouteResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))

	assert.Equal(t, []string{"001", "002"}, res.Route)
	require.NotNil(t, res.Stops[0].ArriveAt)
	assert.True(t, res.Stops[0].ArriveAt.Equal(time.Date(2026, 1, 1, 8, 0, 0, 0, time.UTC)))
	assert.True(t, res.Stops[1].ArriveAt.After(*res.Stops[0].ArriveAt))
}

func TestRouteHandlerTextReport(t *testing.T) {
	h := &RouteHandler{Now: func() time.Time { return time.Date(2026, 10, 18, 9, 30, 0, 0, time.UTC) }}

	rec := postRoutes(t, h, "/routes?format=text", squareBody)
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, "text/plain; charset=utf-8", rec.Header().Get("Content-Type"))
	body := rec.Body.String()
	assert.Contains(t, body, "OPTIMAL ROUTE - 2026-10-18 09:30")
	assert.Contains(t, body, "Total distance: 333.57 km")
	assert.Contains(t, body, "Travel time: 1000.7 min")
}

func TestRouteHandlerNoPoints(t *testing.T) {
	rec := postRoutes(t, &RouteHandler{}, "/routes", `{"points": []}`)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "no points to optimize")
}

func TestRouteHandlerBadRequests(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"invalid json", `{`},
		{"unknown field", `{"points": [], "vehicles": 2}`},
		{"two objects", `{"points": []}{"points": []}`},
		{"missing id", `{"points": [{"latitude": 1, "longitude": 1}]}`},
		{"missing latitude", `{"points": [{"id": "a", "longitude": 1}]}`},
		{"latitude out of range", `{"points": [{"id": "a", "latitude": 91, "longitude": 1}]}`},
		{"bad start", `{"start": {"latitude": 0}, "points": [{"id": "a", "latitude": 1, "longitude": 1}]}`},
		{"duplicate ids", `{"points": [{"id": "a", "latitude": 1, "longitude": 1}, {"id": "a", "latitude": 2, "longitude": 2}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := postRoutes(t, &RouteHandler{}, "/routes", tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
		})
	}
}

func TestRouteHandlerMethodNotAllowed(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/routes", nil)
	rec := httptest.NewRecorder()
	(&RouteHandler{}).Plan(rec, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Equal(t, http.MethodPost, rec.Header().Get("Allow"))
}

func TestHealth(t *testing.T) {
	rec := httptest.NewRecorder()
	Health(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok","service":"route-optimizer"}`, rec.Body.String())
}

func TestRouteHandlerRejectsOversizedBody(t *testing.T) {
	body := `{"points": [{"id": "` + strings.Repeat("x", maxRequestBytes) + `", "latitude": 1, "longitude": 1}]}`

	rec := postRoutes(t, &RouteHandler{}, "/routes", body)

	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}

func TestRouteHandlerSharedWithoutValidator(t *testing.T) {
	h := &RouteHandler{}

	var wg sync.WaitGroup
	codes := make([]int, 8)
	for i := range codes {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			req := httptest.NewRequest(http.MethodPost, "/routes", strings.NewReader(squareBody))
			rec := httptest.NewRecorder()
			h.Plan(rec, req)
			codes[i] = rec.Code
		}(i)
	}
	wg.Wait()

	for _, code := range codes {
		assert.Equal(t, http.StatusOK, code)
	}
	// Requests must not write to the shared handler.
	assert.Nil(t, h.Validate)
}
