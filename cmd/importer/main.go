package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/openpace/trainlog-backend-go/internal/config"
	"github.com/openpace/trainlog-backend-go/internal/database"
	"github.com/openpace/trainlog-backend-go/internal/middleware"
	"github.com/openpace/trainlog-backend-go/internal/repository"
	"github.com/openpace/trainlog-backend-go/internal/service"
)

func main() {
	dir := flag.String("dir", "", "directory of .gpx track logs to import")
	workers := flag.Int("workers", 0, "concurrent imports (default 2x CPU count)")
	budget := flag.Int("budget", 0, "sample budget per session (default from SAMPLE_BUDGET)")
	issueToken := flag.String("issue-token", "", "print an API token for the given subject and exit")
	flag.Parse()

	cfg := config.Load()

	if *issueToken != "" {
		token, err := middleware.GenerateToken(cfg.JWTSecret, *issueToken, 24*time.Hour)
		if err != nil {
			log.Fatal("Failed to issue token:", err)
		}
		fmt.Println(token)
		return
	}

	if *dir == "" {
		flag.Usage()
		os.Exit(2)
	}

	db, err := database.Open(database.Config{Path: cfg.DBPath})
	if err != nil {
		log.Fatal("Failed to open database:", err)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	sessionRepo := repository.NewSessionRepository(db)
	sampleRepo := repository.NewSampleRepository(db)
	importService := service.NewImportService(db, sessionRepo, sampleRepo, cfg.SampleBudget)

	summary, err := importService.ImportDirectory(*dir, *budget, *workers)
	if err != nil {
		log.Fatal("Import failed:", err)
	}

	fmt.Printf("%d files: %d imported, %d skipped, %d failed\n",
		summary.Files, summary.Imported, summary.Skipped, summary.Failed)

	if summary.Files > 0 && summary.Failed == summary.Files {
		os.Exit(1)
	}
}
