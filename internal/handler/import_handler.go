package handler

import (
	"io"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/openpace/trainlog-backend-go/internal/pipeline"
	"github.com/openpace/trainlog-backend-go/internal/service"
	"github.com/openpace/trainlog-backend-go/pkg/response"
)

// ImportHandler handles HTTP requests that feed track logs into the pipeline
type ImportHandler struct {
	importService  *service.ImportService
	maxUploadBytes int64
}

// NewImportHandler creates a new import handler
func NewImportHandler(importService *service.ImportService, maxUploadBytes int64) *ImportHandler {
	return &ImportHandler{
		importService:  importService,
		maxUploadBytes: maxUploadBytes,
	}
}

// importResponse wraps the per-file outcome the same way the batch importer
// reports it: imported sessions carry the summary, skips carry the status.
type importResponse struct {
	Status  string      `json:"status"`
	Session interface{} `json:"session,omitempty"`
}

// CreateImport handles POST /api/v1/imports
func (h *ImportHandler) CreateImport(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.BadRequest(c, "Missing track log file")
		return
	}
	if fileHeader.Size > h.maxUploadBytes {
		response.BadRequest(c, "Track log file too large")
		return
	}

	sampleBudget := 0
	if v := c.PostForm("sampleBudget"); v != "" {
		sampleBudget, err = strconv.Atoi(v)
		if err != nil || sampleBudget < 1 {
			response.BadRequest(c, "Invalid sampleBudget")
			return
		}
	}

	file, err := fileHeader.Open()
	if err != nil {
		response.InternalError(c, "Failed to open uploaded file")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, h.maxUploadBytes+1))
	if err != nil {
		response.InternalError(c, "Failed to read uploaded file")
		return
	}
	if int64(len(data)) > h.maxUploadBytes {
		response.BadRequest(c, "Track log file too large")
		return
	}

	session, outcome, err := h.importService.ImportBytes(fileHeader.Filename, data, sampleBudget)
	if err != nil {
		response.InternalError(c, err.Error())
		return
	}

	switch outcome.Status {
	case pipeline.StatusSuccess:
		response.Success(c, importResponse{Status: outcome.Status.String(), Session: session})
	case pipeline.StatusInsufficientData:
		// Short or empty recordings are expected in bulk imports; report
		// the skip rather than an error.
		response.Success(c, importResponse{Status: outcome.Status.String()})
	default:
		msg := outcome.Status.String()
		if outcome.Err != nil {
			msg = outcome.Err.Error()
		}
		response.UnprocessableEntity(c, msg)
	}
}
