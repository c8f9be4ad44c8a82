package pipeline

import (
	"fmt"
	"sort"

	"github.com/openpace/trainlog-backend-go/internal/models"
)

// DataQualityError indicates systemic timestamp disorder: so many points out
// of order that the file is more likely corrupt than merely jittery. Stray
// points get reordered silently; this error is reserved for the systemic case.
type DataQualityError struct {
	DisorderedPoints int
	TotalPoints      int
}

func (e *DataQualityError) Error() string {
	return fmt.Sprintf("data quality error: %d of %d points out of timestamp order",
		e.DisorderedPoints, e.TotalPoints)
}

// Fraction of out-of-order points above which the file is rejected rather
// than reordered. A handful of strays is normal GPS behavior; systemic
// disorder signals a corrupt recording.
const maxDisorderFraction = 0.05

// SanitizeTrackpoints removes physically implausible points from a raw
// sequence: out-of-range or exact (0,0) coordinates, then duplicate
// timestamps (keeping the first occurrence in file order). Timestamps in the
// result are strictly increasing. No distance computation happens here.
func SanitizeTrackpoints(points []models.RawTrackpoint) ([]models.RawTrackpoint, error) {
	valid := make([]models.RawTrackpoint, 0, len(points))
	for _, p := range points {
		if !plausibleCoordinate(p.Latitude, p.Longitude) {
			continue
		}
		valid = append(valid, p)
	}

	// Count disorder before touching the ordering so the diagnostic
	// reflects what the device actually wrote.
	disordered := 0
	for i := 1; i < len(valid); i++ {
		if valid[i].Time.Before(valid[i-1].Time) {
			disordered++
		}
	}
	if disordered > disorderBudget(len(valid)) {
		return nil, &DataQualityError{DisorderedPoints: disordered, TotalPoints: len(valid)}
	}
	if disordered > 0 {
		sort.SliceStable(valid, func(i, j int) bool {
			return valid[i].Time.Before(valid[j].Time)
		})
	}

	// Drop duplicate timestamps, keeping the first. The stable sort above
	// preserves file order among equal timestamps.
	deduped := valid[:0]
	for i, p := range valid {
		if i > 0 && !p.Time.After(deduped[len(deduped)-1].Time) {
			continue
		}
		deduped = append(deduped, p)
	}

	return deduped, nil
}

// disorderBudget returns how many out-of-order points are tolerated before
// the file is considered corrupt. Always at least 2 so a single stray fix in
// a short track does not reject the whole file.
func disorderBudget(n int) int {
	budget := int(float64(n) * maxDisorderFraction)
	if budget < 2 {
		budget = 2
	}
	return budget
}

// plausibleCoordinate rejects out-of-range values and the exact (0,0) null
// island fix devices emit before acquiring a signal.
func plausibleCoordinate(lat, lon float64) bool {
	if lat == 0 && lon == 0 {
		return false
	}
	return lat >= -90 && lat <= 90 && lon >= -180 && lon <= 180
}
