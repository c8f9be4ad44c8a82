package pipeline

import (
	"math"

	"github.com/openpace/trainlog-backend-go/internal/models"
	"github.com/openpace/trainlog-backend-go/internal/spatial"
)

// Number of neighbouring windows averaged when smoothing elevation. GPS
// elevation is the noisiest channel; a short moving average over window
// endpoints damps it without flattening real climbs.
const elevationSmoothingWindows = 3

// Resample reduces a cleaned, distance-annotated sequence to at most budget
// derived samples by partitioning it into equal-size index windows. It never
// fabricates samples: fewer points than the budget yields one sample per
// point. Cumulative distance and elapsed time are taken at each window's last
// point and are therefore non-decreasing across the output.
func Resample(points []models.CleanTrackpoint, budget int) []models.DerivedSample {
	n := len(points)
	if n == 0 || budget <= 0 {
		return nil
	}

	windows := budget
	if windows > n {
		windows = n
	}

	startTime := points[0].Time
	samples := make([]models.DerivedSample, windows)

	for w := 0; w < windows; w++ {
		start := w * n / windows
		end := (w+1)*n/windows - 1
		last := points[end]

		// The pace baseline is the point just before this window, so the
		// delta spans the whole window rather than a single point pair.
		// Single-point jitter would otherwise dominate the pace signal.
		base := start - 1
		if base < 0 {
			base = 0
		}

		sample := models.DerivedSample{
			CumulativeDistanceMeters: last.CumulativeDistanceMeters,
			CumulativeElapsedSeconds: last.Time.Sub(startTime).Seconds(),
			AltitudeMeters:           last.ElevationMeters,
			HeartRateBpm:             windowMeanHeartRate(points[start : end+1]),
			Latitude:                 last.Latitude,
			Longitude:                last.Longitude,
		}

		if !windowOverlapsGap(points, base, end) {
			sample.PaceSecondsPerMile = windowPace(points[base], last)
		}

		samples[w] = sample
	}

	smoothAltitude(samples)
	return samples
}

// windowPace computes pace in seconds per mile from the window's distance
// and time deltas. A window covering no distance or no time yields nil
// rather than a division by zero.
func windowPace(base, last models.CleanTrackpoint) *float64 {
	deltaDist := last.CumulativeDistanceMeters - base.CumulativeDistanceMeters
	deltaTime := last.Time.Sub(base.Time).Seconds()
	if deltaDist <= 1e-6 || deltaTime <= 0 {
		return nil
	}

	pace := deltaTime / (deltaDist / spatial.MetersPerMile)
	return &pace
}

// windowOverlapsGap reports whether any hop inside (base, end] was flagged
// as a gap. Pace over such a window would be a wildly wrong literal value,
// so the caller suppresses it instead.
func windowOverlapsGap(points []models.CleanTrackpoint, base, end int) bool {
	for i := base + 1; i <= end; i++ {
		if points[i].GapBefore {
			return true
		}
	}
	return false
}

// windowMeanHeartRate averages the heart-rate readings present in the
// window. Devices often sample HR at a lower frequency than position, so
// only points that actually carry a value participate; a window with none
// yields nil.
func windowMeanHeartRate(window []models.CleanTrackpoint) *int {
	sum, count := 0, 0
	for _, p := range window {
		if p.HeartRateBpm != nil {
			sum += *p.HeartRateBpm
			count++
		}
	}
	if count == 0 {
		return nil
	}

	mean := int(math.Round(float64(sum) / float64(count)))
	return &mean
}

// smoothAltitude applies a short moving average across neighbouring window
// altitudes, in place. Samples without an altitude stay nil and do not pull
// their neighbours toward zero.
func smoothAltitude(samples []models.DerivedSample) {
	raw := make([]*float64, len(samples))
	for i := range samples {
		raw[i] = samples[i].AltitudeMeters
	}

	half := elevationSmoothingWindows / 2
	for i := range samples {
		if raw[i] == nil {
			continue
		}

		sum, count := 0.0, 0
		for j := i - half; j <= i+half; j++ {
			if j < 0 || j >= len(raw) || raw[j] == nil {
				continue
			}
			sum += *raw[j]
			count++
		}

		smoothed := sum / float64(count)
		samples[i].AltitudeMeters = &smoothed
	}
}

// Summarize computes the scalar summaries from the full clean sequence,
// before resampling, so window boundaries cannot underestimate them.
func Summarize(points []models.CleanTrackpoint) (totalDistance, elevationGain, duration float64, maxHeartRate int, hasHeartRate bool) {
	if len(points) == 0 {
		return 0, 0, 0, 0, false
	}

	last := points[len(points)-1]
	totalDistance = last.CumulativeDistanceMeters
	duration = last.Time.Sub(points[0].Time).Seconds()

	for i, p := range points {
		if p.HeartRateBpm != nil {
			hasHeartRate = true
			if *p.HeartRateBpm > maxHeartRate {
				maxHeartRate = *p.HeartRateBpm
			}
		}
		if i == 0 {
			continue
		}
		prev := points[i-1]
		if p.ElevationMeters != nil && prev.ElevationMeters != nil {
			if delta := *p.ElevationMeters - *prev.ElevationMeters; delta > 0 {
				elevationGain += delta
			}
		}
	}

	return totalDistance, elevationGain, duration, maxHeartRate, hasHeartRate
}
