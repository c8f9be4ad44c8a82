package pipeline

import (
	"encoding/xml"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/openpace/trainlog-backend-go/internal/models"
)

// ParseError indicates a track log that cannot be processed at all:
// malformed XML, an unsupported schema, or a document with no track data.
// Individually malformed points are skipped and do not raise it.
type ParseError struct {
	Reason string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("parse error: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("parse error: %s", e.Reason)
}

func (e *ParseError) Unwrap() error { return e.Err }

// gpxDocument mirrors the GPX 1.0/1.1 structure this pipeline consumes.
// Numeric fields are kept as strings so one point with a garbled value can
// be skipped without failing the whole document decode. Heart rate comes
// from the Garmin TrackPointExtension most sports devices emit.
type gpxDocument struct {
	XMLName xml.Name   `xml:"gpx"`
	Tracks  []gpxTrack `xml:"trk"`
}

type gpxTrack struct {
	Name     string       `xml:"name"`
	Segments []gpxSegment `xml:"trkseg"`
}

type gpxSegment struct {
	Points []gpxPoint `xml:"trkpt"`
}

type gpxPoint struct {
	Lat       string `xml:"lat,attr"`
	Lon       string `xml:"lon,attr"`
	Elevation string `xml:"ele"`
	Time      string `xml:"time"`
	HeartRate string `xml:"extensions>TrackPointExtension>hr"`
}

// ParseTrackLog converts raw GPX bytes into an ordered raw trackpoint slice.
// Multiple tracks and segments are concatenated in document order; segment
// boundaries do not themselves imply gaps. Points missing coordinates or a
// parseable timestamp are skipped rather than failing the file. This stage is
// a pure structural transform: no distance or plausibility checks happen here.
func ParseTrackLog(data []byte) ([]models.RawTrackpoint, error) {
	var doc gpxDocument
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, &ParseError{Reason: "malformed GPX document", Err: err}
	}

	if len(doc.Tracks) == 0 {
		return nil, &ParseError{Reason: "document contains no track"}
	}

	var points []models.RawTrackpoint
	for _, trk := range doc.Tracks {
		for _, seg := range trk.Segments {
			for _, pt := range seg.Points {
				raw, ok := convertPoint(pt)
				if !ok {
					continue
				}
				points = append(points, raw)
			}
		}
	}

	if len(points) == 0 {
		return nil, &ParseError{Reason: "document contains no usable trackpoints"}
	}

	return points, nil
}

// convertPoint maps one <trkpt> onto the typed model, failing closed on
// missing or garbled required fields instead of defaulting them. Elevation
// and heart rate stay optional: absence is carried as nil, never coerced to
// zero, because zero is itself a legitimate elevation.
func convertPoint(pt gpxPoint) (models.RawTrackpoint, bool) {
	lat, err := strconv.ParseFloat(strings.TrimSpace(pt.Lat), 64)
	if err != nil {
		return models.RawTrackpoint{}, false
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(pt.Lon), 64)
	if err != nil {
		return models.RawTrackpoint{}, false
	}
	ts, err := time.Parse(time.RFC3339, strings.TrimSpace(pt.Time))
	if err != nil {
		return models.RawTrackpoint{}, false
	}

	raw := models.RawTrackpoint{
		Time:      ts.UTC(),
		Latitude:  lat,
		Longitude: lon,
	}

	if s := strings.TrimSpace(pt.Elevation); s != "" {
		if ele, err := strconv.ParseFloat(s, 64); err == nil {
			raw.ElevationMeters = &ele
		}
	}
	if s := strings.TrimSpace(pt.HeartRate); s != "" {
		if hr, err := strconv.Atoi(s); err == nil && hr > 0 {
			raw.HeartRateBpm = &hr
		}
	}

	return raw, true
}
