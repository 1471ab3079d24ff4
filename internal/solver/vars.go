// Package solver owns the decision-variable namespace (spec.md §4.5's
// variable creation). The driver that wires it to the constraint library,
// the objective, and the cpsat back-end lives in internal/driver.
package solver

import (
	"sort"

	"github.com/flightops/crewsolve/internal/cpsat"
	"github.com/flightops/crewsolve/internal/eligibility"
	"github.com/flightops/crewsolve/internal/model"
	"github.com/flightops/crewsolve/internal/timeexpr"
)

// VarKey identifies one decision variable's (flight, flight_service, staff) triple.
type VarKey struct {
	Flight  string
	Service int
	Staff   int
}

type staffVar struct {
	StaffID int
	Var     cpsat.Var
}

type serviceArena struct {
	FlightService model.FlightService
	Staff         []staffVar
}

type flightArena struct {
	Flight   model.Flight
	Services []serviceArena
}

type flightStaffKey struct {
	Flight string
	Staff  int
}

type staffServiceKey struct {
	Staff   int
	Service int
}

// Vars is the variable namespace spec.md §9 describes as "an array-of-arenas
// layout (flight-major, service-minor, staff-innermost) ... preferable to a
// hash map for cache behaviour and iteration order determinism". Arenas hold
// the canonical, deterministically ordered storage; the maps alongside them
// are convenience indices for the groupings the constraint library needs,
// built once at construction time rather than re-scanned per constraint.
type Vars struct {
	Arenas []flightArena

	byKey         map[VarKey]cpsat.Var
	byFlightStaff map[flightStaffKey][]staffVar // reused type: StaffID field holds service id here
	byStaffService map[staffServiceKey][]string  // staff,service -> flight numbers
}

// Entry is one resolved (flight, service, staff, variable) row, returned by
// the iteration helpers below.
type Entry struct {
	Flight  string
	Service int
	Staff   int
	Var     cpsat.Var
}

// Get looks up the variable for one (flight, service, staff) triple.
func (v *Vars) Get(flight string, service, staff int) (cpsat.Var, bool) {
	vr, ok := v.byKey[VarKey{flight, service, staff}]
	return vr, ok
}

// FlightServiceVars returns the (staff, var) pairs for one flight_service's
// required-count constraint (spec.md §4.4.3), sorted by staff id.
func (v *Vars) FlightServiceVars(flight string, service int) []Entry {
	for _, arena := range v.Arenas {
		if arena.Flight.Number != flight {
			continue
		}
		for _, sa := range arena.Services {
			if sa.FlightService.ID != service {
				continue
			}
			out := make([]Entry, len(sa.Staff))
			for i, sv := range sa.Staff {
				out[i] = Entry{Flight: flight, Service: service, Staff: sv.StaffID, Var: sv.Var}
			}
			return out
		}
	}
	return nil
}

// FlightStaffVars returns every (service, var) the given staff member has on
// the given flight, used by the category-family constraints (spec.md
// §4.4.4-6) which group variables per (flight, staff) across services.
func (v *Vars) FlightStaffVars(flight string, staff int) []Entry {
	entries := v.byFlightStaff[flightStaffKey{flight, staff}]
	out := make([]Entry, len(entries))
	for i, e := range entries {
		out[i] = Entry{Flight: flight, Service: e.StaffID, Staff: staff, Var: e.Var}
	}
	return out
}

// StaffServiceFlights returns the flight numbers on which staff has a
// variable for the given multi-flight service id, used by §4.4.6's
// cross-flight pinning.
func (v *Vars) StaffServiceFlights(staff, service int) []string {
	return v.byStaffService[staffServiceKey{staff, service}]
}

// Flights returns the flight numbers present in the namespace, sorted.
func (v *Vars) Flights() []string {
	out := make([]string, len(v.Arenas))
	for i, a := range v.Arenas {
		out[i] = a.Flight.Number
	}
	return out
}

// AllEntries returns every (flight, service, staff, var) row in
// deterministic arena order, used by the objective builder and hint wiring.
func (v *Vars) AllEntries() []Entry {
	var out []Entry
	for _, arena := range v.Arenas {
		for _, sa := range arena.Services {
			for _, sv := range sa.Staff {
				out = append(out, Entry{
					Flight:  arena.Flight.Number,
					Service: sa.FlightService.ID,
					Staff:   sv.StaffID,
					Var:     sv.Var,
				})
			}
		}
	}
	return out
}

// BuildOptions controls variable creation.
type BuildOptions struct {
	// SkipIneligible omits a variable entirely when the staff member is
	// unavailable or uncertified for it, instead of creating it and letting
	// the Availability/Certification constraints force it to zero. spec.md
	// §9 calls this out as "a valuable implementation-time optimization";
	// tests that exercise the Availability/Certification builders directly
	// leave it false so the forced-zero variables still exist to assert on.
	SkipIneligible bool
}

// BuildVariables creates one boolean variable per (flight, flight_service,
// staff) triple (spec.md §4.5) and returns the populated namespace.
func BuildVariables(m *cpsat.Model, cat model.Catalogs, checker *eligibility.Checker, opts BuildOptions) (*Vars, error) {
	flightNumbers := make([]string, 0, len(cat.Flights))
	for num := range cat.Flights {
		flightNumbers = append(flightNumbers, num)
	}
	sort.Strings(flightNumbers)

	staffIDs := make([]int, 0, len(cat.Staff))
	for id := range cat.Staff {
		staffIDs = append(staffIDs, id)
	}
	sort.Ints(staffIDs)

	v := &Vars{
		byKey:          make(map[VarKey]cpsat.Var),
		byFlightStaff:  make(map[flightStaffKey][]staffVar),
		byStaffService: make(map[staffServiceKey][]string),
	}

	for _, num := range flightNumbers {
		flight := cat.Flights[num]
		arena := flightArena{Flight: flight}

		for _, fs := range flight.Services {
			svc, ok := cat.Services[fs.ID]
			if !ok {
				continue
			}
			start, end, err := timeexpr.WindowForFlightService(flight, fs)
			if err != nil {
				return nil, err
			}

			sa := serviceArena{FlightService: fs}
			for _, staffID := range staffIDs {
				st := cat.Staff[staffID]
				if opts.SkipIneligible {
					if !checker.Available(st, start, end) || !checker.CanPerform(st, svc) {
						continue
					}
				}

				name := varName(num, fs.ID, staffID)
				vr := m.NewBoolVar(name)
				sa.Staff = append(sa.Staff, staffVar{StaffID: staffID, Var: vr})

				key := VarKey{num, fs.ID, staffID}
				v.byKey[key] = vr

				fsKey := flightStaffKey{num, staffID}
				v.byFlightStaff[fsKey] = append(v.byFlightStaff[fsKey], staffVar{StaffID: fs.ID, Var: vr})

				ssKey := staffServiceKey{staffID, fs.ID}
				v.byStaffService[ssKey] = append(v.byStaffService[ssKey], num)
			}
			arena.Services = append(arena.Services, sa)
		}
		v.Arenas = append(v.Arenas, arena)
	}

	return v, nil
}

func varName(flight string, service, staff int) string {
	return flight + "/" + itoa(service) + "/" + itoa(staff)
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var buf [12]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}
