package store

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/avast/retry-go"
	"github.com/klauspost/compress/gzip"

	"github.com/flightops/crewsolve/internal/plan"
)

type runRecord struct {
	RunID     string    `json:"run_id"`
	CreatedAt time.Time `json:"created_at"`
	Plan      []byte    `json:"plan"`
}

type jsonDoc struct {
	Version int                    `json:"version"`
	Runs    map[string][]runRecord `json:"runs"` // date -> ordered run history
}

// JSONStore is the default Provider: one gzip-compressed JSON file holding
// every date's run history. It is not the spec-mandated AllocationPlan
// transfer format (plan.Serialize/Deserialize handles that, uncompressed);
// this is the separate historical audit trail SPEC_FULL.md §6 adds.
type JSONStore struct {
	path       string
	maxRetries uint
	mu         sync.Mutex
	doc        *jsonDoc
}

// NewJSONStore returns a JSONStore persisting to path.
func NewJSONStore(path string, maxRetries int) *JSONStore {
	if maxRetries < 0 {
		maxRetries = 0
	}
	return &JSONStore{path: path, maxRetries: uint(maxRetries)}
}

// Init creates the store file if absent, or loads it if present.
func (s *JSONStore) Init() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("creating store directory: %w", err)
	}

	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		s.doc = &jsonDoc{Version: 1, Runs: make(map[string][]runRecord)}
		return s.writeLocked()
	}
	return s.loadLocked()
}

func (s *JSONStore) loadLocked() error {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		return fmt.Errorf("reading store file: %w", err)
	}
	gz, err := gzip.NewReader(bytes.NewReader(raw))
	if err != nil {
		return fmt.Errorf("decompressing store file: %w", err)
	}
	defer gz.Close()

	doc := &jsonDoc{}
	if err := json.NewDecoder(gz).Decode(doc); err != nil {
		return fmt.Errorf("parsing store file: %w", err)
	}
	if doc.Runs == nil {
		doc.Runs = make(map[string][]runRecord)
	}
	s.doc = doc
	return nil
}

func (s *JSONStore) writeLocked() error {
	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	if err := json.NewEncoder(gz).Encode(s.doc); err != nil {
		return fmt.Errorf("serializing store file: %w", err)
	}
	if err := gz.Close(); err != nil {
		return fmt.Errorf("finalizing store file: %w", err)
	}

	return retry.Do(
		func() error { return os.WriteFile(s.path, buf.Bytes(), 0o644) },
		retry.Attempts(s.maxRetries+1),
	)
}

// SaveRun appends p to date's run history.
func (s *JSONStore) SaveRun(date, runID string, p *plan.AllocationPlan) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := p.Serialize()
	if err != nil {
		return fmt.Errorf("serializing plan: %w", err)
	}
	s.doc.Runs[date] = append(s.doc.Runs[date], runRecord{
		RunID:     runID,
		CreatedAt: time.Now(),
		Plan:      data,
	})
	return s.writeLocked()
}

// ListRuns returns date's run history in the order they were saved.
func (s *JSONStore) ListRuns(date string) ([]Run, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	records := s.doc.Runs[date]
	out := make([]Run, 0, len(records))
	for _, r := range records {
		p, err := plan.Deserialize(r.Plan)
		if err != nil {
			return nil, fmt.Errorf("deserializing run %s: %w", r.RunID, err)
		}
		out = append(out, Run{RunID: r.RunID, CreatedAt: r.CreatedAt, Plan: p})
	}
	return out, nil
}

// LatestRun returns the most recently saved plan for date, or nil if none exists.
func (s *JSONStore) LatestRun(date string) (*plan.AllocationPlan, error) {
	runs, err := s.ListRuns(date)
	if err != nil {
		return nil, err
	}
	if len(runs) == 0 {
		return nil, nil
	}
	return runs[len(runs)-1].Plan, nil
}

// Close is a no-op for JSONStore; every write is already flushed to disk.
func (s *JSONStore) Close() error { return nil }
