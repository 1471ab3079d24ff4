package constraint

import (
	"github.com/flightops/crewsolve/internal/constants"
	"github.com/flightops/crewsolve/internal/cpsat"
	"github.com/flightops/crewsolve/internal/model"
	"github.com/flightops/crewsolve/internal/solver"
)

// FlightLevel implements spec.md §4.4.4, the Flight-Level/Multi-Task family:
// pairwise exclusion between declared-conflicting services, plus a
// cross-utilization cap on how many mutually-compatible FlightLevel services
// one staff member may simultaneously perform on the same flight.
func FlightLevel(m *cpsat.Model, vars *solver.Vars, cat model.Catalogs) {
	for _, flightNum := range vars.Flights() {
		for staffID := range cat.Staff {
			entries := flightLevelEntries(vars, cat, flightNum, staffID)
			if len(entries) == 0 {
				continue
			}

			for i := 0; i < len(entries); i++ {
				for j := i + 1; j < len(entries); j++ {
					a, b := entries[i], entries[j]
					if a.svc.Excludes(b.svc.ID) || b.svc.Excludes(a.svc.ID) {
						m.AddLinear([]cpsat.Term{{Coeff: 1, Var: a.v}, {Coeff: 1, Var: b.v}}, cpsat.LE, 1)
					}
				}
			}

			for _, s := range entries {
				limit := s.svc.CrossUtilizationLimit
				if limit <= 0 {
					continue
				}
				terms := []cpsat.Term{{Coeff: 1, Var: s.v}}
				for _, other := range entries {
					if other.svc.ID == s.svc.ID {
						continue
					}
					if s.svc.Excludes(other.svc.ID) || other.svc.Excludes(s.svc.ID) {
						continue
					}
					terms = append(terms, cpsat.Term{Coeff: 1, Var: other.v})
				}
				if len(terms) > 1 {
					m.AddLinear(terms, cpsat.LE, limit)
				}
			}
		}
	}
}

type categoryEntry struct {
	svc model.Service
	v   cpsat.Var
}

func flightLevelEntries(vars *solver.Vars, cat model.Catalogs, flight string, staff int) []categoryEntry {
	var out []categoryEntry
	for _, e := range vars.FlightStaffVars(flight, staff) {
		svc, ok := cat.Services[e.Service]
		if !ok || svc.Category != constants.CategoryFlightLevel {
			continue
		}
		out = append(out, categoryEntry{svc: svc, v: e.Var})
	}
	return out
}
