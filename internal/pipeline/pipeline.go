package pipeline

import (
	"github.com/openpace/trainlog-backend-go/internal/models"
	"github.com/openpace/trainlog-backend-go/internal/polyline"
	"github.com/openpace/trainlog-backend-go/internal/spatial"
)

// Status tags the outcome of one pipeline run.
type Status int

const (
	StatusSuccess Status = iota
	// StatusParseFailure: the file is malformed or carries no track data.
	// Fatal for the file, not retryable.
	StatusParseFailure
	// StatusDataQualityFailure: systemic timestamp disorder. Fatal for the
	// file; the diagnostic counts are on the error.
	StatusDataQualityFailure
	// StatusInsufficientData: fewer than 2 usable points survive
	// sanitization. A benign skip, expected in bulk imports.
	StatusInsufficientData
	// StatusEmptyPath: the encoder produced nothing. Defensive; should not
	// occur when insufficient data is checked first.
	StatusEmptyPath
)

func (s Status) String() string {
	switch s {
	case StatusSuccess:
		return "success"
	case StatusParseFailure:
		return "parse_failure"
	case StatusDataQualityFailure:
		return "data_quality_failure"
	case StatusInsufficientData:
		return "insufficient_data"
	case StatusEmptyPath:
		return "empty_path"
	default:
		return "unknown"
	}
}

// Outcome is the tagged result of processing one track log. Result is
// non-nil exactly when Status is StatusSuccess; Err carries the diagnostic
// for parse and data-quality failures. There is no partial success.
type Outcome struct {
	Status Status
	Result *models.PipelineResult
	Err    error
}

// minimum raw points for the pipeline to proceed: below this neither a
// distance nor a path can be computed.
const minUsablePoints = 2

// Run executes the whole transformation on one track log: parse, sanitize,
// annotate distance, detect gaps, resample against the budget, encode the
// resampled path. It is pure and synchronous: same bytes and budget always
// produce an identical outcome, it performs no I/O, and it shares no state
// across invocations, so callers may parallelize and retry freely.
func Run(data []byte, sampleBudget int) Outcome {
	raw, err := ParseTrackLog(data)
	if err != nil {
		return Outcome{Status: StatusParseFailure, Err: err}
	}
	if len(raw) < minUsablePoints {
		return Outcome{Status: StatusInsufficientData}
	}

	sanitized, err := SanitizeTrackpoints(raw)
	if err != nil {
		return Outcome{Status: StatusDataQualityFailure, Err: err}
	}
	if len(sanitized) < minUsablePoints {
		return Outcome{Status: StatusInsufficientData}
	}

	clean := spatial.AnnotateCumulativeDistance(sanitized)
	DetectGaps(clean)

	samples := Resample(clean, sampleBudget)

	coords := make([]polyline.Coordinate, len(samples))
	for i, s := range samples {
		coords[i] = polyline.Coordinate{Lat: s.Latitude, Lon: s.Longitude}
	}
	encoded := polyline.Encode(coords)
	if encoded == "" {
		return Outcome{Status: StatusEmptyPath}
	}

	totalDistance, elevationGain, duration, maxHR, hasHR := Summarize(clean)

	return Outcome{
		Status: StatusSuccess,
		Result: &models.PipelineResult{
			CleanPointCount:          len(clean),
			Samples:                  samples,
			EncodedPath:              encoded,
			TotalDistanceMeters:      totalDistance,
			TotalElevationGainMeters: elevationGain,
			TotalDurationSeconds:     duration,
			MaxHeartRateBpm:          maxHR,
			HasHeartRate:             hasHR,
		},
	}
}
