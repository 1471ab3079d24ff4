// Package constraint is the constraint library from spec.md §4.4: one
// independent builder per family, each consuming the cpsat model and the
// solver's variable namespace. Builders compose additively — spec.md §4.4
// notes the order they are applied in does not change the solution set — so
// ApplyAll simply runs them in the spec's own numbering for readability.
package constraint

import (
	"github.com/flightops/crewsolve/internal/cpsat"
	"github.com/flightops/crewsolve/internal/eligibility"
	"github.com/flightops/crewsolve/internal/model"
	"github.com/flightops/crewsolve/internal/overlap"
	"github.com/flightops/crewsolve/internal/solver"
)

// ApplyAll runs every constraint family against m in turn.
func ApplyAll(m *cpsat.Model, vars *solver.Vars, cat model.Catalogs, checker *eligibility.Checker, overlapMap overlap.Map, bufferMinutes, defaultTravel int) error {
	Availability(m, vars, cat, checker)
	Certification(m, vars, cat, checker)
	StaffCount(m, vars, cat)
	FlightLevel(m, vars, cat)
	CommonLevel(m, vars, cat)
	if err := MultiFlight(m, vars, cat); err != nil {
		return err
	}
	if err := FlightTransition(m, vars, cat, checker, overlapMap, bufferMinutes, defaultTravel); err != nil {
		return err
	}
	Objective(m, vars, cat)
	return nil
}
