package constraint

import (
	"github.com/flightops/crewsolve/internal/cpsat"
	"github.com/flightops/crewsolve/internal/eligibility"
	"github.com/flightops/crewsolve/internal/model"
	"github.com/flightops/crewsolve/internal/solver"
	"github.com/flightops/crewsolve/internal/timeexpr"
)

// Availability implements spec.md §4.4.1: for every x[f,s,st], force it to 0
// if st is not available for s's resolved window on f. Variables the solver
// already skipped under BuildOptions.SkipIneligible never reach this loop,
// so it is a no-op in that configuration; it still serves the unfiltered
// configuration used to exercise the constraint directly.
func Availability(m *cpsat.Model, vars *solver.Vars, cat model.Catalogs, checker *eligibility.Checker) {
	for _, e := range vars.AllEntries() {
		flight, ok := cat.Flights[e.Flight]
		if !ok {
			continue
		}
		fs, ok := findFlightService(flight, e.Service)
		if !ok {
			continue
		}
		st := cat.Staff[e.Staff]

		start, end, err := timeexpr.WindowForFlightService(flight, fs)
		if err != nil {
			continue
		}
		if !checker.Available(st, start, end) {
			m.Fix(e.Var, false)
		}
	}
}

func findFlightService(f model.Flight, serviceID int) (model.FlightService, bool) {
	for _, fs := range f.Services {
		if fs.ID == serviceID {
			return fs, true
		}
	}
	return model.FlightService{}, false
}
