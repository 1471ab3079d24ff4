package constraint

import (
	"github.com/flightops/crewsolve/internal/constants"
	"github.com/flightops/crewsolve/internal/cpsat"
	"github.com/flightops/crewsolve/internal/eligibility"
	"github.com/flightops/crewsolve/internal/model"
	"github.com/flightops/crewsolve/internal/overlap"
	"github.com/flightops/crewsolve/internal/solver"
	"github.com/flightops/crewsolve/internal/timeexpr"
)

type windowKey struct {
	flight  string
	service int
}

// FlightTransition implements spec.md §4.4.7: for every staff member and
// every overlap-map pair (A, B), bar them from a same-staff assignment to a
// service on each flight whose windows don't leave enough travel slack.
func FlightTransition(m *cpsat.Model, vars *solver.Vars, cat model.Catalogs, checker *eligibility.Checker, overlapMap overlap.Map, bufferMinutes, defaultTravel int) error {
	windows := make(map[windowKey][2]int)
	windowFor := func(flight model.Flight, fs model.FlightService) ([2]int, error) {
		key := windowKey{flight.Number, fs.ID}
		if w, ok := windows[key]; ok {
			return w, nil
		}
		start, end, err := timeexpr.WindowForFlightService(flight, fs)
		if err != nil {
			return [2]int{}, err
		}
		w := [2]int{start, end}
		windows[key] = w
		return w, nil
	}

	for a, others := range overlapMap {
		flightA, ok := cat.Flights[a]
		if !ok {
			continue
		}
		for _, b := range others {
			flightB, ok := cat.Flights[b]
			if !ok {
				continue
			}
			bayA := cat.Bays[flightA.BayID]
			travel := bayA.TravelTimeTo(flightB.BayID, defaultTravel)

			for _, fsA := range flightA.Services {
				svcA, ok := cat.Services[fsA.ID]
				if !ok || svcA.Category == constants.CategoryMultiFlight {
					continue
				}
				winA, err := windowFor(flightA, fsA)
				if err != nil {
					return err
				}

				for _, fsB := range flightB.Services {
					svcB, ok := cat.Services[fsB.ID]
					if !ok || svcB.Category == constants.CategoryMultiFlight {
						continue
					}
					winB, err := windowFor(flightB, fsB)
					if err != nil {
						return err
					}

					if winA[1]+travel <= winB[0]+bufferMinutes {
						continue
					}

					for staffID, st := range cat.Staff {
						if !checker.Available(st, winA[0], winA[1]) || !checker.CanPerform(st, svcA) {
							continue
						}
						if !checker.Available(st, winB[0], winB[1]) || !checker.CanPerform(st, svcB) {
							continue
						}
						va, okA := vars.Get(a, fsA.ID, staffID)
						vb, okB := vars.Get(b, fsB.ID, staffID)
						if !okA || !okB {
							continue
						}
						m.AddLinear([]cpsat.Term{{Coeff: 1, Var: va}, {Coeff: 1, Var: vb}}, cpsat.LE, 1)
					}
				}
			}
		}
	}
	return nil
}
