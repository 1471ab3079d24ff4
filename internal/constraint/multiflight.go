package constraint

import (
	"github.com/flightops/crewsolve/internal/constants"
	"github.com/flightops/crewsolve/internal/cpsat"
	"github.com/flightops/crewsolve/internal/model"
	"github.com/flightops/crewsolve/internal/solver"
)

// MultiFlight implements spec.md §4.4.6, the Multi-Flight/Fixed family. The
// intra-flight portion is applySingleCategoryExclusivity, identical in shape
// to CommonLevel. The cross-flight portion pins each staff member to at
// most one multi-flight service id across the whole flight set: for every
// service id m, an indicator y_m is 1 iff st is assigned to m on any flight,
// and Σ_m y_m <= 1 per staff member.
func MultiFlight(m *cpsat.Model, vars *solver.Vars, cat model.Catalogs) error {
	for _, flightNum := range vars.Flights() {
		for staffID := range cat.Staff {
			var vc, vo []cpsat.Var
			for _, e := range vars.FlightStaffVars(flightNum, staffID) {
				svc, ok := cat.Services[e.Service]
				if !ok {
					continue
				}
				if svc.Category == constants.CategoryMultiFlight {
					vc = append(vc, e.Var)
				} else {
					vo = append(vo, e.Var)
				}
			}
			applySingleCategoryExclusivity(m, vc, vo)
		}
	}

	var multiFlightServiceIDs []int
	for id, svc := range cat.Services {
		if svc.Category == constants.CategoryMultiFlight {
			multiFlightServiceIDs = append(multiFlightServiceIDs, id)
		}
	}

	for staffID := range cat.Staff {
		var indicators []cpsat.Var
		for _, svcID := range multiFlightServiceIDs {
			var xs []cpsat.Var
			for _, flightNum := range vars.StaffServiceFlights(staffID, svcID) {
				if v, ok := vars.Get(flightNum, svcID, staffID); ok {
					xs = append(xs, v)
				}
			}
			if len(xs) == 0 {
				continue
			}
			indicators = append(indicators, applyOrIndicator(m, xs))
		}
		if len(indicators) == 0 {
			continue
		}
		terms := make([]cpsat.Term, len(indicators))
		for i, y := range indicators {
			terms[i] = cpsat.Term{Coeff: 1, Var: y}
		}
		m.AddLinear(terms, cpsat.LE, 1)
	}

	return nil
}
