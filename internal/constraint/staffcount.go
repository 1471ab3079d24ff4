package constraint

import (
	"github.com/flightops/crewsolve/internal/cpsat"
	"github.com/flightops/crewsolve/internal/model"
	"github.com/flightops/crewsolve/internal/solver"
)

// StaffCount implements spec.md §4.4.3: for every (flight, flight_service),
// the number of staff assigned must not exceed the service's required count.
func StaffCount(m *cpsat.Model, vars *solver.Vars, cat model.Catalogs) {
	for _, flightNum := range vars.Flights() {
		flight := cat.Flights[flightNum]
		for _, fs := range flight.Services {
			entries := vars.FlightServiceVars(flightNum, fs.ID)
			if len(entries) == 0 {
				continue
			}
			terms := make([]cpsat.Term, len(entries))
			for i, e := range entries {
				terms[i] = cpsat.Term{Coeff: 1, Var: e.Var}
			}
			m.AddLinear(terms, cpsat.LE, fs.Count)
		}
	}
}
