package service

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/openpace/trainlog-backend-go/internal/database"
	"github.com/openpace/trainlog-backend-go/internal/models"
	"github.com/openpace/trainlog-backend-go/internal/pipeline"
	"github.com/openpace/trainlog-backend-go/internal/repository"
)

// ImportService runs the track-log pipeline over uploaded or discovered
// files and persists successful results. The pipeline itself is pure; all
// I/O (file reads, database writes) lives here, on the caller side of it.
type ImportService struct {
	db           *sql.DB
	sessions     *repository.SessionRepository
	samples      *repository.SampleRepository
	sampleBudget int
}

// NewImportService creates a new import service
func NewImportService(db *sql.DB, sessions *repository.SessionRepository, samples *repository.SampleRepository, sampleBudget int) *ImportService {
	return &ImportService{
		db:           db,
		sessions:     sessions,
		samples:      samples,
		sampleBudget: sampleBudget,
	}
}

// ImportBytes processes one track log and persists the result when the
// pipeline succeeds. The returned outcome carries the pipeline status; a
// session is created only for StatusSuccess, and benign skips
// (insufficient data) are not errors.
func (s *ImportService) ImportBytes(sourceName string, data []byte, sampleBudget int) (*models.Session, pipeline.Outcome, error) {
	if sampleBudget <= 0 {
		sampleBudget = s.sampleBudget
	}

	outcome := pipeline.Run(data, sampleBudget)
	if outcome.Status != pipeline.StatusSuccess {
		return nil, outcome, nil
	}

	session := models.Session{
		ID:                       uuid.NewString(),
		SourceFile:               sourceName,
		CleanPointCount:          outcome.Result.CleanPointCount,
		TotalDistanceMeters:      outcome.Result.TotalDistanceMeters,
		TotalElevationGainMeters: outcome.Result.TotalElevationGainMeters,
		TotalDurationSeconds:     outcome.Result.TotalDurationSeconds,
		MaxHeartRateBpm:          outcome.Result.MaxHeartRateBpm,
		HasHeartRate:             outcome.Result.HasHeartRate,
		EncodedPath:              outcome.Result.EncodedPath,
	}

	// Session row and sample series commit together or not at all; a
	// half-imported session would break every downstream monotonicity
	// assumption.
	err := database.Transaction(s.db, func(tx *sql.Tx) error {
		if err := s.sessions.Create(tx, session); err != nil {
			return err
		}
		return s.samples.CreateBatch(tx, session.ID, outcome.Result.Samples)
	})
	if err != nil {
		return nil, outcome, fmt.Errorf("failed to persist session for %s: %w", sourceName, err)
	}

	return &session, outcome, nil
}

// ImportFile reads one file from disk and imports it.
func (s *ImportService) ImportFile(path string, sampleBudget int) (*models.Session, pipeline.Outcome, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, pipeline.Outcome{}, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return s.ImportBytes(filepath.Base(path), data, sampleBudget)
}

// ImportDirectory walks dir for .gpx files and imports them on a bounded
// worker pool. Per-file outcomes are aggregated; one bad file never aborts
// the batch. Each pipeline run is independent and deterministic, so the
// only shared state is the database, which serializes writes itself.
func (s *ImportService) ImportDirectory(dir string, sampleBudget, workers int) (models.ImportSummary, error) {
	var summary models.ImportSummary

	entries, err := os.ReadDir(dir)
	if err != nil {
		return summary, fmt.Errorf("failed to read directory %s: %w", dir, err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".gpx") {
			continue
		}
		files = append(files, filepath.Join(dir, entry.Name()))
	}
	summary.Files = len(files)
	if len(files) == 0 {
		return summary, nil
	}

	if workers <= 0 {
		workers = 2 * runtime.NumCPU()
	}
	if workers > len(files) {
		workers = len(files)
	}

	jobs := make(chan string)
	var mu sync.Mutex
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for path := range jobs {
				session, outcome, err := s.ImportFile(path, sampleBudget)

				mu.Lock()
				switch {
				case err != nil:
					summary.Failed++
					log.Printf("[ImportService] %s: %v", filepath.Base(path), err)
				case outcome.Status == pipeline.StatusSuccess:
					summary.Imported++
					log.Printf("[ImportService] %s: imported session %s (%.0f m, %d samples)",
						filepath.Base(path), session.ID,
						session.TotalDistanceMeters, len(outcome.Result.Samples))
				case outcome.Status == pipeline.StatusInsufficientData:
					summary.Skipped++
					log.Printf("[ImportService] %s: skipped (insufficient data)", filepath.Base(path))
				default:
					summary.Failed++
					log.Printf("[ImportService] %s: %s: %v", filepath.Base(path), outcome.Status, outcome.Err)
				}
				mu.Unlock()
			}
		}()
	}

	for _, path := range files {
		jobs <- path
	}
	close(jobs)
	wg.Wait()

	log.Printf("[ImportService] Batch complete: %d files, %d imported, %d skipped, %d failed",
		summary.Files, summary.Imported, summary.Skipped, summary.Failed)
	return summary, nil
}
