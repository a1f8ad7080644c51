package dto

import "time"

type CoordinatesRequest struct {
	Latitude  *float64 `json:"latitude" validate:"required,gte=-90,lte=90"`
	Longitude *float64 `json:"longitude" validate:"required,gte=-180,lte=180"`
}

type PointRequest struct {
	ID        string   `json:"id" validate:"required"`
	Latitude  *float64 `json:"latitude" validate:"required,gte=-90,lte=90"`
	Longitude *float64 `json:"longitude" validate:"required,gte=-180,lte=180"`
}

type PlanRouteRequest struct {
	Start    *CoordinatesRequest `json:"start"`
	Points   []PointRequest      `json:"points" validate:"dive"`
	DepartAt *time.Time          `json:"depart_at"`
}

type RouteStopResponse struct {
	Sequence     int        `json:"sequence"`
	ID           string     `json:"id"`
	Latitude     float64    `json:"latitude"`
	Longitude    float64    `json:"longitude"`
	LegKm        float64    `json:"leg_km"`
	CumulativeKm float64    `json:"cumulative_km"`
	ArriveAt     *time.Time `json:"arrive_at,omitempty"`
}

type RouteResponse struct {
	Route             []string            `json:"route"`
	Stops             []RouteStopResponse `json:"stops"`
	TotalDistanceKm   float64             `json:"total_distance_km"`
	TravelTimeMinutes float64             `json:"travel_time_min"`
	Passes            int                 `json:"passes"`
	Improvements      int                 `json:"improvements"`
	Converged         bool                `json:"converged"`
}
