package geo

import (
	"delivery-route-optimizer/internal/domain"

	"github.com/umahmood/haversine"
)

// EarthRadiusKm mirrors the mean Earth radius that umahmood/haversine applies
// internally. Distance does not read it; tests pin the library to this value.
const EarthRadiusKm = 6371.0

// Distance returns the great-circle distance in kilometers between a and b
// using the Haversine formula.
//
// Inputs are not range-checked; NaN or out-of-range coordinates yield
// undefined results. Validation happens when a PointSet is built.
func Distance(a, b domain.Coordinates) float64 {
	_, km := haversine.Distance(
		haversine.Coord{Lat: a.Lat, Lon: a.Lon},
		haversine.Coord{Lat: b.Lat, Lon: b.Lon},
	)
	return km
}
