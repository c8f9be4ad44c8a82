package pipeline

import (
	"errors"
	"fmt"
	"testing"
	"time"
)

const gpxHeader = `<?xml version="1.0" encoding="UTF-8"?>
<gpx version="1.1" creator="unit-test" xmlns="http://www.topografix.com/GPX/1/1"
     xmlns:gpxtpx="http://www.garmin.com/xmlschemas/TrackPointExtension/v1">`

func trkpt(lat, lon float64, ts string, body string) string {
	return fmt.Sprintf(`<trkpt lat="%f" lon="%f"><time>%s</time>%s</trkpt>`, lat, lon, ts, body)
}

func TestParseTrackLog(t *testing.T) {
	doc := gpxHeader + `
	<trk><name>Morning Run</name><trkseg>
		` + trkpt(59.3293, 18.0686, "2026-03-14T08:00:00Z", "<ele>25.4</ele><extensions><gpxtpx:TrackPointExtension><gpxtpx:hr>132</gpxtpx:hr></gpxtpx:TrackPointExtension></extensions>") + `
		` + trkpt(59.3294, 18.0687, "2026-03-14T08:00:10Z", "<ele>25.9</ele>") + `
	</trkseg></trk>
	</gpx>`

	points, err := ParseTrackLog([]byte(doc))
	if err != nil {
		t.Fatalf("ParseTrackLog() error: %v", err)
	}
	if len(points) != 2 {
		t.Fatalf("got %d points, want 2", len(points))
	}

	first := points[0]
	if first.Latitude != 59.3293 || first.Longitude != 18.0686 {
		t.Errorf("first point at (%v, %v), want (59.3293, 18.0686)", first.Latitude, first.Longitude)
	}
	if !first.Time.Equal(time.Date(2026, 3, 14, 8, 0, 0, 0, time.UTC)) {
		t.Errorf("first point time = %v", first.Time)
	}
	if first.ElevationMeters == nil || *first.ElevationMeters != 25.4 {
		t.Errorf("first point elevation = %v, want 25.4", first.ElevationMeters)
	}
	if first.HeartRateBpm == nil || *first.HeartRateBpm != 132 {
		t.Errorf("first point heart rate = %v, want 132", first.HeartRateBpm)
	}
	if points[1].HeartRateBpm != nil {
		t.Errorf("second point heart rate = %v, want nil", *points[1].HeartRateBpm)
	}
}

func TestParseTrackLogMultipleSegments(t *testing.T) {
	doc := gpxHeader + `
	<trk><trkseg>
		` + trkpt(45.0, 7.0, "2026-03-14T08:00:00Z", "") + `
	</trkseg><trkseg>
		` + trkpt(45.001, 7.0, "2026-03-14T08:05:00Z", "") + `
	</trkseg></trk>
	<trk><trkseg>
		` + trkpt(45.002, 7.0, "2026-03-14T08:10:00Z", "") + `
	</trkseg></trk>
	</gpx>`

	points, err := ParseTrackLog([]byte(doc))
	if err != nil {
		t.Fatalf("ParseTrackLog() error: %v", err)
	}
	if len(points) != 3 {
		t.Fatalf("got %d points, want 3 (segments concatenated in document order)", len(points))
	}
	for i := 1; i < len(points); i++ {
		if !points[i].Time.After(points[i-1].Time) {
			t.Errorf("points not in document order at index %d", i)
		}
	}
}

func TestParseTrackLogSkipsMalformedPoints(t *testing.T) {
	doc := gpxHeader + `
	<trk><trkseg>
		` + trkpt(45.0, 7.0, "2026-03-14T08:00:00Z", "") + `
		<trkpt lat="not-a-number" lon="7.0"><time>2026-03-14T08:00:05Z</time></trkpt>
		<trkpt lat="45.0002" lon="7.0"><time>garbled</time></trkpt>
		<trkpt lon="7.0"><time>2026-03-14T08:00:15Z</time></trkpt>
		` + trkpt(45.0004, 7.0, "2026-03-14T08:00:20Z", "<ele>banana</ele>") + `
	</trkseg></trk>
	</gpx>`

	points, err := ParseTrackLog([]byte(doc))
	if err != nil {
		t.Fatalf("ParseTrackLog() error: %v", err)
	}
	if len(points) != 2 {
		t.Fatalf("got %d points, want 2 (malformed points skipped, not fatal)", len(points))
	}
	if points[1].ElevationMeters != nil {
		t.Errorf("garbled elevation should be carried as absent, got %v", *points[1].ElevationMeters)
	}
}

func TestParseTrackLogFailures(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"not xml", "definitely not xml {"},
		{"truncated xml", gpxHeader + "<trk><trkseg>"},
		{"no track element", gpxHeader + "</gpx>"},
		{"track with no points", gpxHeader + "<trk><trkseg></trkseg></trk></gpx>"},
		{"all points malformed", gpxHeader + `<trk><trkseg><trkpt lat="x" lon="y"><time>z</time></trkpt></trkseg></trk></gpx>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseTrackLog([]byte(tt.doc))
			if err == nil {
				t.Fatal("ParseTrackLog() succeeded, want ParseError")
			}
			var parseErr *ParseError
			if !errors.As(err, &parseErr) {
				t.Errorf("error type = %T, want *ParseError", err)
			}
		})
	}
}

func TestParseTrackLogBareHrExtension(t *testing.T) {
	// Some exporters drop the gpxtpx prefix; local-name matching should
	// still find the reading.
	doc := gpxHeader + `
	<trk><trkseg>
		` + trkpt(45.0, 7.0, "2026-03-14T08:00:00Z", "<extensions><TrackPointExtension><hr>141</hr></TrackPointExtension></extensions>") + `
		` + trkpt(45.0001, 7.0, "2026-03-14T08:00:10Z", "") + `
	</trkseg></trk>
	</gpx>`

	points, err := ParseTrackLog([]byte(doc))
	if err != nil {
		t.Fatalf("ParseTrackLog() error: %v", err)
	}
	if points[0].HeartRateBpm == nil || *points[0].HeartRateBpm != 141 {
		t.Errorf("heart rate = %v, want 141", points[0].HeartRateBpm)
	}
}
