package repository

import (
	"database/sql"
	"fmt"

	"github.com/openpace/trainlog-backend-go/internal/models"
)

// SessionRepository handles database operations for imported sessions
type SessionRepository struct {
	db *sql.DB
}

// NewSessionRepository creates a new session repository
func NewSessionRepository(db *sql.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

// Create inserts a session row inside the given transaction.
func (r *SessionRepository) Create(tx *sql.Tx, s models.Session) error {
	query := `
		INSERT INTO sessions (
			id, source_file, clean_point_count, total_distance_m,
			total_elevation_gain_m, total_duration_s, max_heart_rate,
			has_heart_rate, encoded_path
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := tx.Exec(query,
		s.ID, s.SourceFile, s.CleanPointCount, s.TotalDistanceMeters,
		s.TotalElevationGainMeters, s.TotalDurationSeconds, s.MaxHeartRateBpm,
		s.HasHeartRate, s.EncodedPath,
	)
	if err != nil {
		return fmt.Errorf("failed to insert session: %w", err)
	}
	return nil
}

// GetByID retrieves one session by its identifier.
func (r *SessionRepository) GetByID(id string) (*models.Session, error) {
	query := `
		SELECT id, source_file, imported_at, clean_point_count, total_distance_m,
			total_elevation_gain_m, total_duration_s, max_heart_rate,
			has_heart_rate, encoded_path
		FROM sessions WHERE id = ?
	`
	var s models.Session
	err := r.db.QueryRow(query, id).Scan(
		&s.ID, &s.SourceFile, &s.ImportedAt, &s.CleanPointCount,
		&s.TotalDistanceMeters, &s.TotalElevationGainMeters,
		&s.TotalDurationSeconds, &s.MaxHeartRateBpm, &s.HasHeartRate,
		&s.EncodedPath,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query session %s: %w", id, err)
	}
	return &s, nil
}

// List retrieves sessions with pagination, newest first.
func (r *SessionRepository) List(filter models.SessionFilter) ([]models.Session, int64, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 || filter.PageSize > 500 {
		filter.PageSize = 50
	}

	var total int64
	if err := r.db.QueryRow("SELECT COUNT(*) FROM sessions").Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count sessions: %w", err)
	}

	query := `
		SELECT id, source_file, imported_at, clean_point_count, total_distance_m,
			total_elevation_gain_m, total_duration_s, max_heart_rate,
			has_heart_rate, encoded_path
		FROM sessions
		ORDER BY imported_at DESC, id
		LIMIT ? OFFSET ?
	`
	rows, err := r.db.Query(query, filter.PageSize, (filter.Page-1)*filter.PageSize)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query sessions: %w", err)
	}
	defer rows.Close()

	var sessions []models.Session
	for rows.Next() {
		var s models.Session
		if err := rows.Scan(
			&s.ID, &s.SourceFile, &s.ImportedAt, &s.CleanPointCount,
			&s.TotalDistanceMeters, &s.TotalElevationGainMeters,
			&s.TotalDurationSeconds, &s.MaxHeartRateBpm, &s.HasHeartRate,
			&s.EncodedPath,
		); err != nil {
			return nil, 0, fmt.Errorf("failed to scan session: %w", err)
		}
		sessions = append(sessions, s)
	}

	return sessions, total, rows.Err()
}
