package service

import (
	"fmt"
	"math"

	"github.com/openpace/trainlog-backend-go/internal/models"
	"github.com/openpace/trainlog-backend-go/internal/polyline"
	"github.com/openpace/trainlog-backend-go/internal/repository"
)

// SessionService exposes read access to imported sessions and their
// derived sample streams.
type SessionService struct {
	sessions *repository.SessionRepository
	samples  *repository.SampleRepository
}

// NewSessionService creates a new session service
func NewSessionService(sessions *repository.SessionRepository, samples *repository.SampleRepository) *SessionService {
	return &SessionService{sessions: sessions, samples: samples}
}

// GetSessions lists sessions with pagination.
func (s *SessionService) GetSessions(filter models.SessionFilter) (*models.SessionsResponse, error) {
	sessions, total, err := s.sessions.List(filter)
	if err != nil {
		return nil, err
	}

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 || filter.PageSize > 500 {
		filter.PageSize = 50
	}

	return &models.SessionsResponse{
		Data:       sessions,
		Total:      total,
		Page:       filter.Page,
		PageSize:   filter.PageSize,
		TotalPages: int(math.Ceil(float64(total) / float64(filter.PageSize))),
	}, nil
}

// GetSessionByID retrieves one session.
func (s *SessionService) GetSessionByID(id string) (*models.Session, error) {
	return s.sessions.GetByID(id)
}

// GetSamples retrieves a session's derived sample series.
func (s *SessionService) GetSamples(sessionID string) ([]models.DerivedSample, error) {
	if _, err := s.sessions.GetByID(sessionID); err != nil {
		return nil, err
	}
	return s.samples.GetBySessionID(sessionID)
}

// GetPath decodes a session's stored polyline back into coordinates.
func (s *SessionService) GetPath(sessionID string) ([]polyline.Coordinate, error) {
	session, err := s.sessions.GetByID(sessionID)
	if err != nil {
		return nil, err
	}

	coords, err := polyline.Decode(session.EncodedPath)
	if err != nil {
		return nil, fmt.Errorf("failed to decode path for session %s: %w", sessionID, err)
	}
	return coords, nil
}
