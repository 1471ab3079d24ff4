package store

import (
	"path/filepath"
	"testing"

	"github.com/flightops/crewsolve/internal/plan"
)

func TestJSONStoreSaveAndListRuns(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.json.gz")
	s := NewJSONStore(path, 3)
	if err := s.Init(); err != nil {
		t.Fatalf("Init error: %v", err)
	}
	defer s.Close()

	p := plan.New()
	p.Add("FL1", 1, 2, true)

	if err := s.SaveRun("2026-07-29", "run-1", p); err != nil {
		t.Fatalf("SaveRun error: %v", err)
	}

	runs, err := s.ListRuns("2026-07-29")
	if err != nil {
		t.Fatalf("ListRuns error: %v", err)
	}
	if len(runs) != 1 || runs[0].RunID != "run-1" {
		t.Fatalf("ListRuns = %+v, want one run-1 entry", runs)
	}

	latest, err := s.LatestRun("2026-07-29")
	if err != nil {
		t.Fatalf("LatestRun error: %v", err)
	}
	v, ok := latest.Get("FL1", 1, 2)
	if !ok || !v {
		t.Errorf("LatestRun plan FL1/1/2 = %v,%v want true,true", v, ok)
	}
}

func TestJSONStoreReloadsExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.json.gz")
	s1 := NewJSONStore(path, 0)
	if err := s1.Init(); err != nil {
		t.Fatalf("Init error: %v", err)
	}
	p := plan.New()
	p.Add("FL1", 1, 2, true)
	if err := s1.SaveRun("2026-07-29", "run-1", p); err != nil {
		t.Fatalf("SaveRun error: %v", err)
	}

	s2 := NewJSONStore(path, 0)
	if err := s2.Init(); err != nil {
		t.Fatalf("second Init error: %v", err)
	}
	runs, err := s2.ListRuns("2026-07-29")
	if err != nil {
		t.Fatalf("ListRuns error: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("expected the reloaded store to see the prior run, got %d", len(runs))
	}
}

func TestLatestRunNilWhenEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.json.gz")
	s := NewJSONStore(path, 0)
	if err := s.Init(); err != nil {
		t.Fatalf("Init error: %v", err)
	}
	latest, err := s.LatestRun("2026-07-29")
	if err != nil {
		t.Fatalf("LatestRun error: %v", err)
	}
	if latest != nil {
		t.Errorf("expected nil plan for a date with no history, got %+v", latest)
	}
}
