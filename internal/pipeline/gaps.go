package pipeline

import "github.com/openpace/trainlog-backend-go/internal/models"

// Gap detection thresholds. A pair of neighbours only counts as a gap when
// the elapsed time is long AND the implied speed falls outside what a human
// on foot (or briefly in a vehicle) plausibly sustains; a long steady
// interval at running speed is just a low-rate recording, not a dropout.
const (
	gapElapsedThresholdSeconds = 30.0
	minPlausibleSpeedMps       = 0.2
	maxPlausibleSpeedMps       = 12.0
)

// DetectGaps walks a distance-annotated sequence and flags segments that
// imply a device dropout or pause. Detection is purely annotative: it sets
// GapBefore on the point that follows each gap and returns the segments as
// reporting metadata, leaving points and cumulative distances untouched.
func DetectGaps(points []models.CleanTrackpoint) []models.GapSegment {
	var gaps []models.GapSegment

	for i := 1; i < len(points); i++ {
		elapsed := points[i].Time.Sub(points[i-1].Time).Seconds()
		if elapsed <= gapElapsedThresholdSeconds {
			continue
		}

		dist := points[i].CumulativeDistanceMeters - points[i-1].CumulativeDistanceMeters
		speed := dist / elapsed
		if speed >= minPlausibleSpeedMps && speed <= maxPlausibleSpeedMps {
			continue
		}

		points[i].GapBefore = true
		gaps = append(gaps, models.GapSegment{
			StartIndex:     i - 1,
			EndIndex:       i,
			ElapsedSeconds: elapsed,
			DistanceMeters: dist,
		})
	}

	return gaps
}
