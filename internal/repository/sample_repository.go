package repository

import (
	"database/sql"
	"fmt"

	"github.com/openpace/trainlog-backend-go/internal/models"
)

// SampleRepository handles database operations for the derived sample
// time series attached to each session.
type SampleRepository struct {
	db *sql.DB
}

// NewSampleRepository creates a new sample repository
func NewSampleRepository(db *sql.DB) *SampleRepository {
	return &SampleRepository{db: db}
}

// CreateBatch inserts a session's whole sample series inside the given
// transaction, preserving sequence order.
func (r *SampleRepository) CreateBatch(tx *sql.Tx, sessionID string, samples []models.DerivedSample) error {
	if len(samples) == 0 {
		return nil
	}

	query := `
		INSERT INTO session_samples (
			session_id, seq, cumulative_distance_m, cumulative_elapsed_s,
			pace_s_per_mi, altitude_m, heart_rate, latitude, longitude
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	stmt, err := tx.Prepare(query)
	if err != nil {
		return fmt.Errorf("failed to prepare sample insert: %w", err)
	}
	defer stmt.Close()

	for seq, s := range samples {
		_, err := stmt.Exec(
			sessionID, seq,
			s.CumulativeDistanceMeters, s.CumulativeElapsedSeconds,
			nullableFloat(s.PaceSecondsPerMile), nullableFloat(s.AltitudeMeters),
			nullableInt(s.HeartRateBpm),
			s.Latitude, s.Longitude,
		)
		if err != nil {
			return fmt.Errorf("failed to insert sample %d: %w", seq, err)
		}
	}

	return nil
}

// GetBySessionID retrieves a session's sample series in sequence order.
func (r *SampleRepository) GetBySessionID(sessionID string) ([]models.DerivedSample, error) {
	query := `
		SELECT cumulative_distance_m, cumulative_elapsed_s, pace_s_per_mi,
			altitude_m, heart_rate, latitude, longitude
		FROM session_samples
		WHERE session_id = ?
		ORDER BY seq
	`
	rows, err := r.db.Query(query, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query samples for %s: %w", sessionID, err)
	}
	defer rows.Close()

	var samples []models.DerivedSample
	for rows.Next() {
		var s models.DerivedSample
		var pace, altitude sql.NullFloat64
		var heartRate sql.NullInt64

		if err := rows.Scan(
			&s.CumulativeDistanceMeters, &s.CumulativeElapsedSeconds,
			&pace, &altitude, &heartRate, &s.Latitude, &s.Longitude,
		); err != nil {
			return nil, fmt.Errorf("failed to scan sample: %w", err)
		}

		if pace.Valid {
			v := pace.Float64
			s.PaceSecondsPerMile = &v
		}
		if altitude.Valid {
			v := altitude.Float64
			s.AltitudeMeters = &v
		}
		if heartRate.Valid {
			v := int(heartRate.Int64)
			s.HeartRateBpm = &v
		}

		samples = append(samples, s)
	}

	return samples, rows.Err()
}

func nullableFloat(v *float64) interface{} {
	if v == nil {
		return nil
	}
	return *v
}

func nullableInt(v *int) interface{} {
	if v == nil {
		return nil
	}
	return *v
}
