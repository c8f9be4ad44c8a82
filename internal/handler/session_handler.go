package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/openpace/trainlog-backend-go/internal/models"
	"github.com/openpace/trainlog-backend-go/internal/service"
	"github.com/openpace/trainlog-backend-go/pkg/response"
)

// SessionHandler handles HTTP requests for imported sessions
type SessionHandler struct {
	sessionService *service.SessionService
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(sessionService *service.SessionService) *SessionHandler {
	return &SessionHandler{
		sessionService: sessionService,
	}
}

// GetSessions handles GET /api/v1/sessions
func (h *SessionHandler) GetSessions(c *gin.Context) {
	var filter models.SessionFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	result, err := h.sessionService.GetSessions(filter)
	if err != nil {
		response.InternalError(c, err.Error())
		return
	}

	response.Success(c, result)
}

// GetSessionByID handles GET /api/v1/sessions/:id
func (h *SessionHandler) GetSessionByID(c *gin.Context) {
	session, err := h.sessionService.GetSessionByID(c.Param("id"))
	if err != nil {
		response.NotFound(c, "Session not found")
		return
	}

	response.Success(c, session)
}

// GetSessionSamples handles GET /api/v1/sessions/:id/samples
func (h *SessionHandler) GetSessionSamples(c *gin.Context) {
	samples, err := h.sessionService.GetSamples(c.Param("id"))
	if err != nil {
		response.NotFound(c, "Session not found")
		return
	}

	response.Success(c, samples)
}

// GetSessionPath handles GET /api/v1/sessions/:id/path
func (h *SessionHandler) GetSessionPath(c *gin.Context) {
	coords, err := h.sessionService.GetPath(c.Param("id"))
	if err != nil {
		response.NotFound(c, "Session not found")
		return
	}

	points := make([][2]float64, len(coords))
	for i, coord := range coords {
		points[i] = [2]float64{coord.Lat, coord.Lon}
	}

	response.Success(c, gin.H{"points": points})
}
