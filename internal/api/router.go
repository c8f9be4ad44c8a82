package api

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/openpace/trainlog-backend-go/internal/config"
	"github.com/openpace/trainlog-backend-go/internal/handler"
	"github.com/openpace/trainlog-backend-go/internal/middleware"
	"github.com/openpace/trainlog-backend-go/internal/repository"
	"github.com/openpace/trainlog-backend-go/internal/service"
)

// SetupRouter wires repositories, services and handlers onto a gin engine.
func SetupRouter(cfg *config.Config, db *sql.DB) *gin.Engine {
	r := gin.New()
	r.Use(middleware.Logger(), gin.Recovery())

	// CORS middleware
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	sessionRepo := repository.NewSessionRepository(db)
	sampleRepo := repository.NewSampleRepository(db)

	importService := service.NewImportService(db, sessionRepo, sampleRepo, cfg.SampleBudget)
	sessionService := service.NewSessionService(sessionRepo, sampleRepo)

	importHandler := handler.NewImportHandler(importService, cfg.MaxUploadBytes)
	sessionHandler := handler.NewSessionHandler(sessionService)

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Trainlog Backend API is running",
		})
	})

	api := r.Group("/api/v1")
	{
		imports := api.Group("/imports")
		imports.Use(middleware.Auth(cfg.JWTSecret))
		imports.Use(middleware.RateLimit(30, time.Minute))
		{
			imports.POST("", importHandler.CreateImport)
		}

		sessions := api.Group("/sessions")
		{
			sessions.GET("", sessionHandler.GetSessions)
			sessions.GET("/:id", sessionHandler.GetSessionByID)
			sessions.GET("/:id/samples", sessionHandler.GetSessionSamples)
			sessions.GET("/:id/path", sessionHandler.GetSessionPath)
		}
	}

	return r
}
