package spatial

import (
	"github.com/golang/geo/s2"

	"github.com/openpace/trainlog-backend-go/internal/models"
)

// Constants
const (
	// EarthRadiusMeters is the mean Earth radius. The spherical
	// approximation keeps error well under 1% for foot-travel distances,
	// which is below consumer GPS fix error anyway.
	EarthRadiusMeters = 6371000.0

	MetersPerMile = 1609.344
)

// HaversineDistance calculates the great-circle distance between two points
// in meters on a spherical Earth.
func HaversineDistance(lat1, lon1, lat2, lon2 float64) float64 {
	p1 := s2.LatLngFromDegrees(lat1, lon1)
	p2 := s2.LatLngFromDegrees(lat2, lon2)
	return p1.Distance(p2).Radians() * EarthRadiusMeters
}

// AnnotateCumulativeDistance converts a sanitized point sequence into clean
// trackpoints carrying the running great-circle distance from the first
// point. Cumulative distance is non-decreasing by construction.
func AnnotateCumulativeDistance(points []models.RawTrackpoint) []models.CleanTrackpoint {
	clean := make([]models.CleanTrackpoint, len(points))
	total := 0.0
	for i, p := range points {
		if i > 0 {
			prev := points[i-1]
			total += HaversineDistance(prev.Latitude, prev.Longitude, p.Latitude, p.Longitude)
		}
		clean[i] = models.CleanTrackpoint{
			RawTrackpoint:            p,
			CumulativeDistanceMeters: total,
		}
	}
	return clean
}
