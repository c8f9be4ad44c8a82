package models

import "time"

// RawTrackpoint is one timestamped position as parsed from a track log,
// before any cleaning. Elevation and heart rate are optional on the wire:
// many devices omit them entirely, and zero is a legitimate elevation, so
// absence is represented by a nil pointer rather than a zero value.
type RawTrackpoint struct {
	Time            time.Time `json:"time"`
	Latitude        float64   `json:"latitude"`
	Longitude       float64   `json:"longitude"`
	ElevationMeters *float64  `json:"elevationMeters,omitempty"`
	HeartRateBpm    *int      `json:"heartRateBpm,omitempty"`
}

// HasElevation reports whether the point carries an elevation reading.
func (p RawTrackpoint) HasElevation() bool {
	return p.ElevationMeters != nil
}

// CleanTrackpoint is a sanitized trackpoint annotated with cumulative
// distance from the start of the track and a gap flag. Within a clean
// sequence timestamps are strictly increasing and cumulative distance is
// non-decreasing.
type CleanTrackpoint struct {
	RawTrackpoint
	CumulativeDistanceMeters float64 `json:"cumulativeDistanceMeters"`
	GapBefore                bool    `json:"gapBefore"`
}

// GapSegment marks a suspected device dropout between two consecutive
// clean trackpoints. It is reporting metadata only and never alters the
// point sequence or its cumulative distances.
type GapSegment struct {
	StartIndex     int     `json:"startIndex"`
	EndIndex       int     `json:"endIndex"`
	ElapsedSeconds float64 `json:"elapsedSeconds"`
	DistanceMeters float64 `json:"distanceMeters"`
}
