package models

// DerivedSample is one row of the resampled time series. Pace, altitude and
// heart rate are nullable: pace is suppressed over detected gaps, and a
// device may never report elevation or heart rate at all.
type DerivedSample struct {
	CumulativeDistanceMeters float64  `json:"cumulativeDistance"`
	CumulativeElapsedSeconds float64  `json:"cumulativeElapsedTime"`
	PaceSecondsPerMile       *float64 `json:"instantaneousPace"`
	AltitudeMeters           *float64 `json:"altitude"`
	HeartRateBpm             *int     `json:"heartRateBpm"`

	// Position of the sample (the window's last trackpoint), kept so the
	// resampled sequence can be rendered and polyline-encoded.
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// PipelineResult is the complete output of a successful pipeline run.
// Built once per input file and immutable afterwards.
type PipelineResult struct {
	CleanPointCount          int             `json:"cleanPointCount"`
	Samples                  []DerivedSample `json:"samples"`
	EncodedPath              string          `json:"encodedPath"`
	TotalDistanceMeters      float64         `json:"totalDistanceMeters"`
	TotalElevationGainMeters float64         `json:"totalElevationGainMeters"`
	TotalDurationSeconds     float64         `json:"totalDurationSeconds"`
	MaxHeartRateBpm          int             `json:"maxHeartRateBpm"`
	HasHeartRate             bool            `json:"hasHeartRate"`
}
