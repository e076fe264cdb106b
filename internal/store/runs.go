package store

import (
	"database/sql"
	"errors"
	"time"
)

// ErrNotFound is returned when a requested resource does not exist.
var ErrNotFound = errors.New("not found")

// ExtractionRun records one dataset builder invocation.
type ExtractionRun struct {
	ID          string
	DatasetPath string
	Samples     int
	Skipped     int
	Duration    time.Duration
	CreatedAt   time.Time
}

// ClassCount records how one class fared during an extraction run.
type ClassCount struct {
	Label   string
	Samples int
	Skipped int
}

// TrainingRun records one trainer invocation and where its artifacts went.
type TrainingRun struct {
	ID          string
	DatasetPath string
	Rows        int
	Classes     int
	Accuracy    float64
	ModelPath   string
	EncoderPath string
	CreatedAt   time.Time
}

// ExtractionRunRepository provides persistence for extraction runs.
type ExtractionRunRepository struct {
	db *sql.DB
}

// ExtractionRuns returns the extraction run repository for this store.
func (s *Store) ExtractionRuns() *ExtractionRunRepository {
	return &ExtractionRunRepository{db: s.db}
}

// Create inserts a run and its per-class counts in a single transaction.
func (r *ExtractionRunRepository) Create(run *ExtractionRun, counts []ClassCount) error {
	run.CreatedAt = time.Now()

	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		`INSERT INTO extraction_runs (id, dataset_path, samples, skipped, duration_ms, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		run.ID, run.DatasetPath, run.Samples, run.Skipped, run.Duration.Milliseconds(), run.CreatedAt,
	)
	if err != nil {
		return err
	}

	stmt, err := tx.Prepare(
		`INSERT INTO extraction_class_counts (run_id, label, samples, skipped) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, c := range counts {
		if _, err := stmt.Exec(run.ID, c.Label, c.Samples, c.Skipped); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// GetByID retrieves an extraction run by its ID.
func (r *ExtractionRunRepository) GetByID(id string) (*ExtractionRun, error) {
	run := &ExtractionRun{}
	var durationMs int64

	err := r.db.QueryRow(
		`SELECT id, dataset_path, samples, skipped, duration_ms, created_at
		 FROM extraction_runs WHERE id = ?`,
		id,
	).Scan(&run.ID, &run.DatasetPath, &run.Samples, &run.Skipped, &durationMs, &run.CreatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	run.Duration = time.Duration(durationMs) * time.Millisecond
	return run, nil
}

// ClassCounts retrieves the per-class counts for a run, in label order.
func (r *ExtractionRunRepository) ClassCounts(runID string) ([]ClassCount, error) {
	rows, err := r.db.Query(
		`SELECT label, samples, skipped
		 FROM extraction_class_counts
		 WHERE run_id = ?
		 ORDER BY label`,
		runID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var counts []ClassCount
	for rows.Next() {
		var c ClassCount
		if err := rows.Scan(&c.Label, &c.Samples, &c.Skipped); err != nil {
			return nil, err
		}
		counts = append(counts, c)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return counts, nil
}

// TrainingRunRepository provides persistence for training runs.
type TrainingRunRepository struct {
	db *sql.DB
}

// TrainingRuns returns the training run repository for this store.
func (s *Store) TrainingRuns() *TrainingRunRepository {
	return &TrainingRunRepository{db: s.db}
}

// Create inserts a new training run.
func (r *TrainingRunRepository) Create(run *TrainingRun) error {
	run.CreatedAt = time.Now()

	_, err := r.db.Exec(
		`INSERT INTO training_runs (id, dataset_path, rows, classes, accuracy, model_path, encoder_path, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.DatasetPath, run.Rows, run.Classes, run.Accuracy,
		run.ModelPath, run.EncoderPath, run.CreatedAt,
	)
	return err
}

// Latest retrieves the most recent training run.
func (r *TrainingRunRepository) Latest() (*TrainingRun, error) {
	run := &TrainingRun{}

	err := r.db.QueryRow(
		`SELECT id, dataset_path, rows, classes, accuracy, model_path, encoder_path, created_at
		 FROM training_runs ORDER BY created_at DESC, rowid DESC LIMIT 1`,
	).Scan(&run.ID, &run.DatasetPath, &run.Rows, &run.Classes, &run.Accuracy,
		&run.ModelPath, &run.EncoderPath, &run.CreatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return run, nil
}

// List retrieves all training runs, most recent first.
func (r *TrainingRunRepository) List() ([]*TrainingRun, error) {
	rows, err := r.db.Query(
		`SELECT id, dataset_path, rows, classes, accuracy, model_path, encoder_path, created_at
		 FROM training_runs ORDER BY created_at DESC, rowid DESC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []*TrainingRun
	for rows.Next() {
		run := &TrainingRun{}
		err := rows.Scan(&run.ID, &run.DatasetPath, &run.Rows, &run.Classes, &run.Accuracy,
			&run.ModelPath, &run.EncoderPath, &run.CreatedAt)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return runs, nil
}
