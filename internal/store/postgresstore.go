package store

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"

	"github.com/flightops/crewsolve/internal/plan"
)

const createRunsTablePostgresSQL = `
CREATE TABLE IF NOT EXISTS runs (
	date TEXT NOT NULL,
	run_id TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL,
	plan_json TEXT NOT NULL
);`

// PostgresStore is an optional historical Provider backed by lib/pq, for
// deployments that already run Postgres for other ground-ops tooling and
// want the solve history alongside it rather than in a standalone file.
type PostgresStore struct {
	dsn string
	db  *sql.DB
}

// NewPostgresStore returns a PostgresStore for the given connection string.
func NewPostgresStore(dsn string) *PostgresStore {
	return &PostgresStore{dsn: dsn}
}

// Init opens the connection and creates the runs table if absent.
func (s *PostgresStore) Init() error {
	db, err := sql.Open("postgres", s.dsn)
	if err != nil {
		return fmt.Errorf("opening postgres store: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return fmt.Errorf("connecting to postgres: %w", err)
	}
	if _, err := db.Exec(createRunsTablePostgresSQL); err != nil {
		db.Close()
		return fmt.Errorf("creating runs table: %w", err)
	}
	s.db = db
	return nil
}

// SaveRun inserts a historical run record.
func (s *PostgresStore) SaveRun(date, runID string, p *plan.AllocationPlan) error {
	data, err := p.Serialize()
	if err != nil {
		return fmt.Errorf("serializing plan: %w", err)
	}
	_, err = s.db.Exec(
		`INSERT INTO runs (date, run_id, created_at, plan_json) VALUES ($1, $2, $3, $4)`,
		date, runID, time.Now(), string(data),
	)
	return err
}

// ListRuns returns date's run history, oldest first.
func (s *PostgresStore) ListRuns(date string) ([]Run, error) {
	rows, err := s.db.Query(
		`SELECT run_id, created_at, plan_json FROM runs WHERE date = $1 ORDER BY created_at ASC`, date,
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
func (s *PostgresStore) LatestRun(date string) (*plan.AllocationPlan, error) {
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
func (s *PostgresStore) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}
