package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/flightops/crewsolve/internal/plan"
)

const createRunsTableSQL = `
CREATE TABLE IF NOT EXISTS runs (
	date TEXT NOT NULL,
	run_id TEXT NOT NULL,
	created_at TIMESTAMP NOT NULL,
	plan_json TEXT NOT NULL
);`

// SQLiteStore is an optional historical Provider backed by modernc.org/sqlite,
// for rosters too large to comfortably keep in one JSON file.
type SQLiteStore struct {
	path string
	db   *sql.DB
}

// NewSQLiteStore returns a SQLiteStore persisting to path.
func NewSQLiteStore(path string) *SQLiteStore {
	return &SQLiteStore{path: path}
}

// Init opens the database file, creating its parent directory and schema if needed.
func (s *SQLiteStore) Init() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("creating store directory: %w", err)
	}
	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("opening sqlite store: %w", err)
	}
	if _, err := db.Exec(createRunsTableSQL); err != nil {
		db.Close()
		return fmt.Errorf("creating runs table: %w", err)
	}
	s.db = db
	return nil
}

// SaveRun inserts a historical run record.
func (s *SQLiteStore) SaveRun(date, runID string, p *plan.AllocationPlan) error {
	data, err := p.Serialize()
	if err != nil {
		return fmt.Errorf("serializing plan: %w", err)
	}
	_, err = s.db.Exec(
		`INSERT INTO runs (date, run_id, created_at, plan_json) VALUES (?, ?, ?, ?)`,
		date, runID, time.Now(), string(data),
	)
	return err
}

// ListRuns returns date's run history, oldest first.
func (s *SQLiteStore) ListRuns(date string) ([]Run, error) {
	rows, err := s.db.Query(
		`SELECT run_id, created_at, plan_json FROM runs WHERE date = ? ORDER BY created_at ASC`, date,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Run
	for rows.Next() {
		var runID, planJSON string
		var createdAt time.Time
		if err := rows.Scan(&runID, &createdAt, &planJSON); err != nil {
			return nil, err
		}
		p, err := plan.Deserialize([]byte(planJSON))
		if err != nil {
			return nil, fmt.Errorf("deserializing run %s: %w", runID, err)
		}
		out = append(out, Run{RunID: runID, CreatedAt: createdAt, Plan: p})
	}
	return out, rows.Err()
}

// LatestRun returns the most recently saved plan for date, or nil if none exists.
func (s *SQLiteStore) LatestRun(date string) (*plan.AllocationPlan, error) {
	runs, err := s.ListRuns(date)
	if err != nil {
		return nil, err
	}
	if len(runs) == 0 {
		return nil, nil
	}
	return runs[len(runs)-1].Plan, nil
}

// Close closes the underlying database handle.
func (s *SQLiteStore) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}
