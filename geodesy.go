package geokdnn

import (
	"github.com/golang/geo/s2"
)

// earthRadiusKm is the mean Earth radius used for all great-circle
// distance conversions.
const earthRadiusKm = 6371.0

// GreatCircleKM returns the great-circle distance, in kilometers, between
// two points given in decimal degrees. It is symmetric and returns ~0 for
// identical inputs up to floating-point rounding.
func GreatCircleKM(lat1, lon1, lat2, lon2 float64) float64 {
	a := s2.LatLngFromDegrees(lat1, lon1)
	b := s2.LatLngFromDegrees(lat2, lon2)
	return float64(a.Distance(b)) * earthRadiusKm
}

// AxisLowerBoundKM returns a lower bound on the great-circle distance
// between query and any point lying on pivot's splitting hyperplane, used
// to decide whether a branch can be pruned during search. It is computed
// as the distance from query to the point sharing query's coordinate on
// the non-split axis and pivot's coordinate on the split axis. This
// underestimates the true perpendicular distance to the plane but is
// monotone in the gap and never exceeds the true minimum distance along
// the plane.
func AxisLowerBoundKM(query, pivot Record, axis Axis) float64 {
	var synthLat, synthLon float64
	if axis == AxisLatitude {
		synthLat = pivot.Latitude
		synthLon = query.Longitude
	} else {
		synthLat = query.Latitude
		synthLon = pivot.Longitude
	}
	return GreatCircleKM(query.Latitude, query.Longitude, synthLat, synthLon)
}
