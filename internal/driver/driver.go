// Package driver implements the solver driver from spec.md §4.5: it creates
// the decision-variable namespace, wires a prior AllocationPlan in as soft
// hints, applies the constraint library, sets the objective, invokes the
// cpsat back-end once, and projects the result into either an
// AllocationPlan or a Schedule.
package driver

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/flightops/crewsolve/internal/constraint"
	"github.com/flightops/crewsolve/internal/cpsat"
	"github.com/flightops/crewsolve/internal/eligibility"
	"github.com/flightops/crewsolve/internal/logger"
	"github.com/flightops/crewsolve/internal/model"
	"github.com/flightops/crewsolve/internal/overlap"
	"github.com/flightops/crewsolve/internal/plan"
	"github.com/flightops/crewsolve/internal/solver"
)

var (
	solveDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "crewsolve",
		Subsystem: "driver",
		Name:      "solve_duration_seconds",
		Help:      "Wall-clock duration of a single Run call's cpsat.Solve invocation.",
	})
	variableCount = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "crewsolve",
		Subsystem: "driver",
		Name:      "variables",
		Help:      "Number of decision variables created by the most recent Run call.",
	})
	runsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "crewsolve",
		Subsystem: "driver",
		Name:      "runs_total",
		Help:      "Number of Run calls completed.",
	})
)

func init() {
	prometheus.MustRegister(solveDuration, variableCount, runsTotal)
}

// Outcome mirrors spec.md §4.5's Result::Found / Result::NotFound.
type Outcome int

const (
	NotFound Outcome = iota
	Found
)

// Result is what Run returns: whether the back-end reported optimal or
// feasible, the run's correlation id, and — when Found — the resulting plan.
type Result struct {
	Outcome Outcome
	RunID   uuid.UUID
	Plan    *plan.AllocationPlan
}

// Options configures one Run call.
type Options struct {
	// Hint, if non-nil, seeds the solve with soft preferences from a prior
	// plan (spec.md §4.5): a truthy entry becomes a hint, never a hard
	// constraint.
	Hint *plan.AllocationPlan
	// SkipIneligibleVariables mirrors solver.BuildOptions.SkipIneligible.
	SkipIneligibleVariables bool
}

// Run builds the model for cat, applies the full constraint library, solves
// it, and returns the resulting AllocationPlan. The solve is single-threaded
// and synchronous from the caller's perspective (spec.md §5): ctx cancellation
// abandons the call without producing a partial plan.
func Run(ctx context.Context, cat model.Catalogs, opts Options) (Result, error) {
	runID := uuid.New()

	checker := eligibility.NewChecker()

	m := cpsat.NewModel()
	vars, err := solver.BuildVariables(m, cat, checker, solver.BuildOptions{SkipIneligible: opts.SkipIneligibleVariables})
	if err != nil {
		return Result{}, err
	}
	variableCount.Set(float64(m.NumVars()))

	overlapMap, err := overlap.Build(cat.Services, cat.Bays, flightSlice(cat), cat.Settings.OverlapToleranceBuffer, cat.Settings.DefaultTravelTime)
	if err != nil {
		return Result{}, err
	}

	if opts.Hint != nil {
		applyHints(m, vars, opts.Hint)
	}

	if err := constraint.ApplyAll(m, vars, cat, checker, overlapMap, cat.Settings.OverlapToleranceBuffer, cat.Settings.DefaultTravelTime); err != nil {
		return Result{}, err
	}

	start := time.Now()
	res, err := m.Solve(ctx)
	if err != nil {
		return Result{}, err
	}
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	solveDuration.Observe(time.Since(start).Seconds())
	runsTotal.Inc()

	logger.ForRun(runID.String()).Debug("solve completed", "status", res.Status, "variables", m.NumVars())

	if res.Status != cpsat.StatusOptimal && res.Status != cpsat.StatusFeasible {
		return Result{Outcome: NotFound, RunID: runID}, nil
	}

	p := plan.New()
	for _, e := range vars.AllEntries() {
		p.Add(e.Flight, e.Service, e.Staff, res.Value(e.Var))
	}

	return Result{Outcome: Found, RunID: runID, Plan: p}, nil
}

// ToSchedule projects res.Plan into a Schedule for cat, the non-resolving
// path spec.md §4.6 calls AllocationPlan.to_schedule.
func (r Result) ToSchedule(cat model.Catalogs) plan.Schedule {
	return r.Plan.ToSchedule(cat)
}

func applyHints(m *cpsat.Model, vars *solver.Vars, hint *plan.AllocationPlan) {
	for _, e := range vars.AllEntries() {
		if v, ok := hint.Get(e.Flight, e.Service, e.Staff); ok && v {
			m.Hint(e.Var, true)
		}
	}
}

func flightSlice(cat model.Catalogs) []model.Flight {
	out := make([]model.Flight, 0, len(cat.Flights))
	for _, f := range cat.Flights {
		out = append(out, f)
	}
	return out
}
