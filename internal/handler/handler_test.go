package handler_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openpace/trainlog-backend-go/internal/api"
	"github.com/openpace/trainlog-backend-go/internal/config"
	"github.com/openpace/trainlog-backend-go/internal/database"
	"github.com/openpace/trainlog-backend-go/internal/middleware"
)

const testSecret = "test-secret"

func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := database.Open(database.Config{Path: filepath.Join(t.TempDir(), "test.db")})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, database.Migrate(db))

	cfg := &config.Config{
		Port:           ":0",
		JWTSecret:      testSecret,
		SampleBudget:   25,
		MaxUploadBytes: 1 << 20,
	}
	return api.SetupRouter(cfg, db)
}

func validGPX(n int) string {
	base := time.Date(2026, 3, 14, 8, 0, 0, 0, time.UTC)
	var sb strings.Builder
	sb.WriteString(`<?xml version="1.0" encoding="UTF-8"?><gpx version="1.1" creator="test"><trk><trkseg>`)
	for i := 0; i < n; i++ {
		sb.WriteString(fmt.Sprintf(`<trkpt lat="%.7f" lon="7.0"><time>%s</time></trkpt>`,
			45.0+float64(i)*0.0001,
			base.Add(time.Duration(i*10)*time.Second).Format(time.RFC3339)))
	}
	sb.WriteString(`</trkseg></trk></gpx>`)
	return sb.String()
}

func multipartUpload(t *testing.T, filename, content string, fields map[string]string) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

func authedImport(t *testing.T, router *gin.Engine, filename, content string, fields map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	body, contentType := multipartUpload(t, filename, content, fields)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/imports", body)
	req.Header.Set("Content-Type", contentType)

	token, err := middleware.GenerateToken(testSecret, "importer", time.Hour)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+token)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestImportRequiresAuth(t *testing.T) {
	router := setupRouter(t)

	body, contentType := multipartUpload(t, "run.gpx", validGPX(10), nil)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/imports", body)
	req.Header.Set("Content-Type", contentType)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req = httptest.NewRequest(http.MethodPost, "/api/v1/imports", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer not-a-token")
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestImportAndReadBack(t *testing.T) {
	router := setupRouter(t)

	rec := authedImport(t, router, "evening_run.gpx", validGPX(80), map[string]string{"sampleBudget": "16"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var imported struct {
		Data struct {
			Status  string `json:"status"`
			Session struct {
				ID                  string  `json:"id"`
				SourceFile          string  `json:"sourceFile"`
				TotalDistanceMeters float64 `json:"totalDistanceMeters"`
			} `json:"session"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &imported))
	assert.Equal(t, "success", imported.Data.Status)
	assert.Equal(t, "evening_run.gpx", imported.Data.Session.SourceFile)
	require.NotEmpty(t, imported.Data.Session.ID)

	// List
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/sessions", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), imported.Data.Session.ID)

	// Samples
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/sessions/"+imported.Data.Session.ID+"/samples", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var samples struct {
		Data []struct {
			CumulativeDistance float64 `json:"cumulativeDistance"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &samples))
	assert.Len(t, samples.Data, 16)

	// Decoded path
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/sessions/"+imported.Data.Session.ID+"/path", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var path struct {
		Data struct {
			Points [][2]float64 `json:"points"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &path))
	assert.Len(t, path.Data.Points, 16)
}

func TestImportMalformedFile(t *testing.T) {
	router := setupRouter(t)

	rec := authedImport(t, router, "broken.gpx", "definitely not gpx", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestImportShortRecordingIsASkip(t *testing.T) {
	router := setupRouter(t)

	rec := authedImport(t, router, "short.gpx", validGPX(1), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "insufficient_data")
}

func TestImportMissingFile(t *testing.T) {
	router := setupRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/imports", nil)
	token, err := middleware.GenerateToken(testSecret, "importer", time.Hour)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+token)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSessionNotFound(t *testing.T) {
	router := setupRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/sessions/nope", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
