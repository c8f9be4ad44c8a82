package database

import (
	"database/sql"
	"fmt"
	"log"
)

// Migration represents a database migration
type Migration struct {
	Version int
	Name    string
	SQL     string
}

// migrations is the ordered schema history. Embedded rather than read from
// disk so the importer CLI works from any working directory.
var migrations = []Migration{
	{
		Version: 1,
		Name:    "create_sessions",
		SQL: `
			CREATE TABLE IF NOT EXISTS sessions (
				id TEXT PRIMARY KEY,
				source_file TEXT NOT NULL,
				imported_at TEXT NOT NULL DEFAULT (datetime('now')),
				clean_point_count INTEGER NOT NULL,
				total_distance_m REAL NOT NULL,
				total_elevation_gain_m REAL NOT NULL,
				total_duration_s REAL NOT NULL,
				max_heart_rate INTEGER NOT NULL DEFAULT 0,
				has_heart_rate INTEGER NOT NULL DEFAULT 0,
				encoded_path TEXT NOT NULL
			)
		`,
	},
	{
		Version: 2,
		Name:    "create_session_samples",
		SQL: `
			CREATE TABLE IF NOT EXISTS session_samples (
				session_id TEXT NOT NULL REFERENCES sessions(id) ON DELETE CASCADE,
				seq INTEGER NOT NULL,
				cumulative_distance_m REAL NOT NULL,
				cumulative_elapsed_s REAL NOT NULL,
				pace_s_per_mi REAL,
				altitude_m REAL,
				heart_rate INTEGER,
				latitude REAL NOT NULL,
				longitude REAL NOT NULL,
				PRIMARY KEY (session_id, seq)
			)
		`,
	},
	{
		Version: 3,
		Name:    "index_sessions_imported_at",
		SQL:     `CREATE INDEX IF NOT EXISTS idx_sessions_imported_at ON sessions(imported_at)`,
	},
}

// Migrate applies all pending migrations in version order.
func Migrate(db *sql.DB) error {
	if err := initMigrationsTable(db); err != nil {
		return err
	}

	applied, err := appliedVersions(db)
	if err != nil {
		return err
	}

	for _, m := range migrations {
		if applied[m.Version] {
			continue
		}
		if err := apply(db, m); err != nil {
			return err
		}
		log.Printf("[Database] Applied migration %d: %s", m.Version, m.Name)
	}

	return nil
}

func initMigrationsTable(db *sql.DB) error {
	query := `
		CREATE TABLE IF NOT EXISTS migrations (
			version INTEGER PRIMARY KEY,
			name TEXT NOT NULL,
			applied_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
	`
	if _, err := db.Exec(query); err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}
	return nil
}

func appliedVersions(db *sql.DB) (map[int]bool, error) {
	rows, err := db.Query("SELECT version FROM migrations")
	if err != nil {
		return nil, fmt.Errorf("failed to query applied migrations: %w", err)
	}
	defer rows.Close()

	applied := make(map[int]bool)
	for rows.Next() {
		var version int
		if err := rows.Scan(&version); err != nil {
			return nil, fmt.Errorf("failed to scan migration version: %w", err)
		}
		applied[version] = true
	}

	return applied, rows.Err()
}

func apply(db *sql.DB, m Migration) error {
	return Transaction(db, func(tx *sql.Tx) error {
		if _, err := tx.Exec(m.SQL); err != nil {
			return fmt.Errorf("failed to apply migration %d (%s): %w", m.Version, m.Name, err)
		}
		if _, err := tx.Exec("INSERT INTO migrations (version, name) VALUES (?, ?)", m.Version, m.Name); err != nil {
			return fmt.Errorf("failed to record migration %d: %w", m.Version, err)
		}
		return nil
	})
}
