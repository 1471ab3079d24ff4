package constraint

import (
	"github.com/flightops/crewsolve/internal/constants"
	"github.com/flightops/crewsolve/internal/cpsat"
	"github.com/flightops/crewsolve/internal/model"
	"github.com/flightops/crewsolve/internal/solver"
)

// CommonLevel implements spec.md §4.4.5, the Common-Level/Single family: at
// most one common-level service per (flight, staff), and choosing one
// excludes every other category on that same flight for that staff.
func CommonLevel(m *cpsat.Model, vars *solver.Vars, cat model.Catalogs) {
	for _, flightNum := range vars.Flights() {
		for staffID := range cat.Staff {
			var vc, vo []cpsat.Var
			for _, e := range vars.FlightStaffVars(flightNum, staffID) {
				svc, ok := cat.Services[e.Service]
				if !ok {
					continue
				}
				if svc.Category == constants.CategoryCommonLevel {
					vc = append(vc, e.Var)
				} else {
					vo = append(vo, e.Var)
				}
			}
			applySingleCategoryExclusivity(m, vc, vo)
		}
	}
}
