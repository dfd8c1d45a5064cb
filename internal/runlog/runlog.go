// Package runlog persists a history of gap-fill runs to SQLite.
//
// One row is recorded per run: run id, input/output paths, effective
// filter size, cell counts, and elapsed time. The store is optional; the
// CLI only opens it when a database path is supplied.
package runlog

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// Run is one recorded gap-fill run.
type Run struct {
	RunID         string `json:"run_id"`
	InputPath     string `json:"input_path"`
	OutputPath    string `json:"output_path"`
	FilterSize    int    `json:"filter_size"`
	HoleCells     int    `json:"hole_cells"`
	BoundaryCells int    `json:"boundary_cells"`
	FilledCells   int    `json:"filled_cells"`
	UnfilledCells int    `json:"unfilled_cells"`
	ElapsedNs     int64  `json:"elapsed_ns"`
	CreatedAt     int64  `json:"created_at"`
}

// Store provides persistence for fill runs.
type Store struct {
	db *sql.DB
}

// Open opens (creating if necessary) the run history database at path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open run log: %w", err)
	}

	if _, err := db.Exec("PRAGMA busy_timeout=5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("configure run log: %w", err)
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS fill_runs (
			run_id TEXT PRIMARY KEY,
			input_path TEXT NOT NULL,
			output_path TEXT NOT NULL,
			filter_size INTEGER NOT NULL,
			hole_cells INTEGER NOT NULL,
			boundary_cells INTEGER NOT NULL,
			filled_cells INTEGER NOT NULL,
			unfilled_cells INTEGER NOT NULL,
			elapsed_ns INTEGER NOT NULL,
			created_at INTEGER NOT NULL
		);
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("create run log schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Record persists a run. If RunID is empty, a UUID is generated; if
// CreatedAt is zero, the current time is used.
func (s *Store) Record(r *Run) error {
	if r.RunID == "" {
		r.RunID = uuid.New().String()
	}
	if r.CreatedAt == 0 {
		r.CreatedAt = time.Now().UnixNano()
	}

	return retryOnBusy(func() error {
		_, err := s.db.Exec(`
			INSERT INTO fill_runs (
				run_id, input_path, output_path, filter_size,
				hole_cells, boundary_cells, filled_cells, unfilled_cells,
				elapsed_ns, created_at
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			r.RunID, r.InputPath, r.OutputPath, r.FilterSize,
			r.HoleCells, r.BoundaryCells, r.FilledCells, r.UnfilledCells,
			r.ElapsedNs, r.CreatedAt,
		)
		return err
	})
}

// List returns the most recent runs, newest first. A non-positive limit
// defaults to 50.
func (s *Store) List(limit int) ([]*Run, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.Query(`
		SELECT run_id, input_path, output_path, filter_size,
		       hole_cells, boundary_cells, filled_cells, unfilled_cells,
		       elapsed_ns, created_at
		FROM fill_runs
		ORDER BY created_at DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query fill runs: %w", err)
	}
	defer rows.Close()

	var runs []*Run
	for rows.Next() {
		var r Run
		if err := rows.Scan(
			&r.RunID, &r.InputPath, &r.OutputPath, &r.FilterSize,
			&r.HoleCells, &r.BoundaryCells, &r.FilledCells, &r.UnfilledCells,
			&r.ElapsedNs, &r.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan fill run: %w", err)
		}
		runs = append(runs, &r)
	}
	return runs, rows.Err()
}

// Get returns a single run by id, or sql.ErrNoRows if absent.
func (s *Store) Get(runID string) (*Run, error) {
	row := s.db.QueryRow(`
		SELECT run_id, input_path, output_path, filter_size,
		       hole_cells, boundary_cells, filled_cells, unfilled_cells,
		       elapsed_ns, created_at
		FROM fill_runs
		WHERE run_id = ?`, runID)

	var r Run
	err := row.Scan(
		&r.RunID, &r.InputPath, &r.OutputPath, &r.FilterSize,
		&r.HoleCells, &r.BoundaryCells, &r.FilledCells, &r.UnfilledCells,
		&r.ElapsedNs, &r.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// retryOnBusy retries a write a few times when SQLite reports the database
// is locked by another connection.
func retryOnBusy(fn func() error) error {
	var err error
	for attempt := 0; attempt < 5; attempt++ {
		err = fn()
		if err == nil || !strings.Contains(err.Error(), "busy") {
			return err
		}
		time.Sleep(time.Duration(attempt+1) * 50 * time.Millisecond)
	}
	return err
}
