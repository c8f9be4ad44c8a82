package config

import (
	"os"
	"strconv"
)

// Config holds the application configuration
type Config struct {
	Port           string
	DBPath         string
	JWTSecret      string
	SampleBudget   int   // target number of derived samples per session
	MaxUploadBytes int64 // upload size cap for track log files
}

// Load reads configuration from environment variables with sane defaults
func Load() *Config {
	port := os.Getenv("PORT")
	if port == "" {
		port = ":8080"
	}

	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		dbPath = "./data/sessions/sessions.db"
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		jwtSecret = "your-secret-key-change-in-production"
	}

	sampleBudget := 200
	if v := os.Getenv("SAMPLE_BUDGET"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			sampleBudget = n
		}
	}

	maxUpload := int64(25 * 1024 * 1024) // 25MB covers multi-hour 1Hz recordings
	if v := os.Getenv("MAX_UPLOAD_BYTES"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil && n > 0 {
			maxUpload = n
		}
	}

	return &Config{
		Port:           port,
		DBPath:         dbPath,
		JWTSecret:      jwtSecret,
		SampleBudget:   sampleBudget,
		MaxUploadBytes: maxUpload,
	}
}
