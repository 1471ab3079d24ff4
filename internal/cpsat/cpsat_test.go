package cpsat

import (
	"context"
	"testing"
)

func TestSolveSimpleAtMostOne(t *testing.T) {
	m := NewModel()
	a := m.NewBoolVar("a")
	b := m.NewBoolVar("b")
	m.AddLinear([]Term{{1, a}, {1, b}}, LE, 1)
	m.SetObjective([]Term{{1, a}, {1, b}})

	res, err := m.Solve(context.Background())
	if err != nil {
		t.Fatalf("Solve error: %v", err)
	}
	if res.Status != StatusOptimal {
		t.Fatalf("status = %v, want Optimal", res.Status)
	}
	if res.ObjectiveValue != 1 {
		t.Errorf("objective = %d, want 1", res.ObjectiveValue)
	}
	if res.Value(a) == res.Value(b) {
		t.Errorf("expected exactly one of a,b true, got a=%v b=%v", res.Value(a), res.Value(b))
	}
}

func TestSolveFixInfeasible(t *testing.T) {
	m := NewModel()
	a := m.NewBoolVar("a")
	b := m.NewBoolVar("b")
	m.Fix(a, true)
	m.Fix(b, true)
	m.AddLinear([]Term{{1, a}, {1, b}}, LE, 1)

	res, err := m.Solve(context.Background())
	if err != nil {
		t.Fatalf("Solve error: %v", err)
	}
	if res.Status != StatusInfeasible {
		t.Fatalf("status = %v, want Infeasible", res.Status)
	}
}

func TestSolveEquality(t *testing.T) {
	m := NewModel()
	a := m.NewBoolVar("a")
	b := m.NewBoolVar("b")
	c := m.NewBoolVar("c")
	m.AddLinear([]Term{{1, a}, {1, b}, {1, c}}, EQ, 2)
	m.SetObjective([]Term{{1, a}, {1, b}, {1, c}})

	res, err := m.Solve(context.Background())
	if err != nil {
		t.Fatalf("Solve error: %v", err)
	}
	if res.Status != StatusOptimal || res.ObjectiveValue != 2 {
		t.Fatalf("status=%v objective=%d, want Optimal/2", res.Status, res.ObjectiveValue)
	}
}

func TestHintDoesNotChangeFeasibilityOrOptimum(t *testing.T) {
	build := func(hint bool) Result {
		m := NewModel()
		a := m.NewBoolVar("a")
		b := m.NewBoolVar("b")
		m.AddLinear([]Term{{1, a}, {1, b}}, LE, 1)
		m.SetObjective([]Term{{2, a}, {1, b}})
		if hint {
			m.Hint(a, false)
			m.Hint(b, true)
		}
		res, err := m.Solve(context.Background())
		if err != nil {
			t.Fatalf("Solve error: %v", err)
		}
		return res
	}

	withoutHint := build(false)
	withHint := build(true)

	if withoutHint.Status != withHint.Status {
		t.Fatalf("hint changed status: %v vs %v", withoutHint.Status, withHint.Status)
	}
	if withoutHint.ObjectiveValue != withHint.ObjectiveValue {
		t.Errorf("hint changed optimum: %d vs %d", withoutHint.ObjectiveValue, withHint.ObjectiveValue)
	}
}
