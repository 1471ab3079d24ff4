package plan

import (
	"sort"

	"github.com/flightops/crewsolve/internal/model"
)

// ServiceAssignment is one (flight_service, assigned staff) slot. Staff is
// empty when the service went unfilled; spec.md §4.6 requires unfilled
// services to remain present in the Schedule, not be dropped.
type ServiceAssignment struct {
	ServiceID     int
	RequiredCount int
	Staff         []int
}

// FlightSchedule is one flight's ordered list of service assignments,
// ordered as the flight's catalog entry lists its services.
type FlightSchedule struct {
	Flight   model.Flight
	Services []ServiceAssignment
}

// Schedule is the human-oriented roll-up spec.md §3 describes: flight ->
// ordered list of (service + assigned staff list + required count).
type Schedule struct {
	order    []string
	byFlight map[string]*FlightSchedule
}

// NewSchedule initializes one empty slot per (flight, flight_service) from
// the catalog, ready for assign to populate.
func NewSchedule(cat model.Catalogs) Schedule {
	s := Schedule{byFlight: make(map[string]*FlightSchedule)}

	flightNumbers := make([]string, 0, len(cat.Flights))
	for num := range cat.Flights {
		flightNumbers = append(flightNumbers, num)
	}
	sort.Strings(flightNumbers)

	for _, num := range flightNumbers {
		flight := cat.Flights[num]
		fsched := &FlightSchedule{Flight: flight}
		for _, fs := range flight.Services {
			fsched.Services = append(fsched.Services, ServiceAssignment{
				ServiceID:     fs.ID,
				RequiredCount: fs.Count,
			})
		}
		s.byFlight[num] = fsched
		s.order = append(s.order, num)
	}
	return s
}

// assign records staff as filling flight/service, if that slot exists.
func (s Schedule) assign(flight string, service, staff int) {
	fsched, ok := s.byFlight[flight]
	if !ok {
		return
	}
	for i := range fsched.Services {
		if fsched.Services[i].ServiceID == service {
			fsched.Services[i].Staff = append(fsched.Services[i].Staff, staff)
			sort.Ints(fsched.Services[i].Staff)
			return
		}
	}
}

// Flights returns the flight numbers in the schedule, sorted.
func (s Schedule) Flights() []string {
	return append([]string(nil), s.order...)
}

// Get returns the schedule for one flight.
func (s Schedule) Get(flight string) (*FlightSchedule, bool) {
	fsched, ok := s.byFlight[flight]
	return fsched, ok
}
