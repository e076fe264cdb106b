// Package store persists the run history of the gesture pipeline: dataset
// extraction runs and model training runs.
package store

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// migrations are applied in order on every open; every statement is
// idempotent.
var migrations = []string{
	// Extraction runs - one row per dataset builder invocation
	`CREATE TABLE IF NOT EXISTS extraction_runs (
		id TEXT PRIMARY KEY,
		dataset_path TEXT NOT NULL,
		samples INTEGER NOT NULL DEFAULT 0,
		skipped INTEGER NOT NULL DEFAULT 0,
		duration_ms INTEGER NOT NULL DEFAULT 0,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	)`,

	// Per-class sample counts for an extraction run. Makes an
	// underrepresented class visible instead of silently absent.
	`CREATE TABLE IF NOT EXISTS extraction_class_counts (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id TEXT NOT NULL REFERENCES extraction_runs(id) ON DELETE CASCADE,
		label TEXT NOT NULL,
		samples INTEGER NOT NULL,
		skipped INTEGER NOT NULL
	)`,

	// Training runs - one row per trainer invocation
	`CREATE TABLE IF NOT EXISTS training_runs (
		id TEXT PRIMARY KEY,
		dataset_path TEXT NOT NULL,
		rows INTEGER NOT NULL,
		classes INTEGER NOT NULL,
		accuracy REAL NOT NULL,
		model_path TEXT NOT NULL,
		encoder_path TEXT NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	)`,

	`CREATE INDEX IF NOT EXISTS idx_extraction_class_counts_run_id ON extraction_class_counts(run_id)`,
	`CREATE INDEX IF NOT EXISTS idx_training_runs_created_at ON training_runs(created_at)`,
}

// Store is the SQLite-backed run history.
type Store struct {
	db *sql.DB
}

// New opens the database at dbPath, enables foreign keys, and applies the
// schema migrations.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}

	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("migration %d: %w", i, err)
		}
	}

	return &Store{db: db}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// DB returns the underlying database connection.
func (s *Store) DB() *sql.DB {
	return s.db
}
