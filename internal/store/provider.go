// Package store is the historical plan persistence layer SPEC_FULL.md §6
// adds beyond spec.md's single-file AllocationPlan transfer format: a
// Provider keeps a dated history of solved plans per flight day, supporting
// audit and the incremental re-plan workflow (S6) without the caller
// managing files by hand. It is pure persistence plumbing and does not
// change solver semantics.
package store

import (
	"time"

	"github.com/flightops/crewsolve/internal/plan"
)

// Run is one historical solve record.
type Run struct {
	RunID     string
	CreatedAt time.Time
	Plan      *plan.AllocationPlan
}

// Provider is the historical plan store interface. Implementations: a JSON
// file (default), and optional SQLite/Postgres backends for larger rosters.
type Provider interface {
	Init() error
	SaveRun(date, runID string, p *plan.AllocationPlan) error
	ListRuns(date string) ([]Run, error)
	LatestRun(date string) (*plan.AllocationPlan, error)
	Close() error
}
