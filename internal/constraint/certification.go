package constraint

import (
	"github.com/flightops/crewsolve/internal/cpsat"
	"github.com/flightops/crewsolve/internal/eligibility"
	"github.com/flightops/crewsolve/internal/model"
	"github.com/flightops/crewsolve/internal/solver"
)

// Certification implements spec.md §4.4.2: for every x[f,s,st], force it to
// 0 if st cannot perform s under its ALL/ANY certification requirement.
func Certification(m *cpsat.Model, vars *solver.Vars, cat model.Catalogs, checker *eligibility.Checker) {
	for _, e := range vars.AllEntries() {
		svc, ok := cat.Services[e.Service]
		if !ok {
			continue
		}
		st := cat.Staff[e.Staff]
		if !checker.CanPerform(st, svc) {
			m.Fix(e.Var, false)
		}
	}
}
