package spatial

import (
	"math"
	"testing"
	"time"

	"github.com/openpace/trainlog-backend-go/internal/models"
)

func TestHaversineDistance(t *testing.T) {
	tests := []struct {
		name                   string
		lat1, lon1, lat2, lon2 float64
		want                   float64
		tolerance              float64
	}{
		{"zero distance", 45.0, 7.0, 45.0, 7.0, 0, 0.001},
		// One degree of latitude is ~111.19 km on the mean sphere.
		{"one degree latitude", 45.0, 7.0, 46.0, 7.0, 111194.9, 50},
		// ~1 mile north.
		{"one mile north", 45.0, 7.0, 45.0144732, 7.0, 1609.3, 2},
		// Paris to London, reference value ~343.5 km.
		{"paris to london", 48.8566, 2.3522, 51.5074, -0.1278, 343500, 1000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := HaversineDistance(tt.lat1, tt.lon1, tt.lat2, tt.lon2)
			if math.Abs(got-tt.want) > tt.tolerance {
				t.Errorf("HaversineDistance() = %.1f, want %.1f ± %.1f", got, tt.want, tt.tolerance)
			}
		})
	}
}

func TestHaversineDistanceSymmetry(t *testing.T) {
	d1 := HaversineDistance(59.3293, 18.0686, 59.34, 18.07)
	d2 := HaversineDistance(59.34, 18.07, 59.3293, 18.0686)
	if math.Abs(d1-d2) > 1e-9 {
		t.Errorf("distance not symmetric: %v vs %v", d1, d2)
	}
}

func TestAnnotateCumulativeDistance(t *testing.T) {
	base := time.Date(2026, 3, 14, 8, 0, 0, 0, time.UTC)
	points := []models.RawTrackpoint{
		{Time: base, Latitude: 45.0, Longitude: 7.0},
		{Time: base.Add(10 * time.Second), Latitude: 45.0001, Longitude: 7.0},
		{Time: base.Add(20 * time.Second), Latitude: 45.0002, Longitude: 7.0},
		{Time: base.Add(30 * time.Second), Latitude: 45.0002, Longitude: 7.0}, // stationary
	}

	clean := AnnotateCumulativeDistance(points)

	if len(clean) != len(points) {
		t.Fatalf("got %d clean points, want %d", len(clean), len(points))
	}
	if clean[0].CumulativeDistanceMeters != 0 {
		t.Errorf("first point cumulative distance = %v, want 0", clean[0].CumulativeDistanceMeters)
	}
	for i := 1; i < len(clean); i++ {
		if clean[i].CumulativeDistanceMeters < clean[i-1].CumulativeDistanceMeters {
			t.Errorf("cumulative distance decreased at %d: %v < %v",
				i, clean[i].CumulativeDistanceMeters, clean[i-1].CumulativeDistanceMeters)
		}
	}

	// 0.0001 deg latitude is ~11.1 m per hop, two moving hops total.
	total := clean[len(clean)-1].CumulativeDistanceMeters
	if math.Abs(total-22.2) > 0.5 {
		t.Errorf("total distance = %.2f, want ~22.2", total)
	}
}

func TestAnnotateCumulativeDistanceEmpty(t *testing.T) {
	if got := AnnotateCumulativeDistance(nil); len(got) != 0 {
		t.Errorf("expected empty result, got %d points", len(got))
	}
}
