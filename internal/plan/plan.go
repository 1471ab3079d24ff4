// Package plan implements the AllocationPlan and Schedule projections from
// spec.md §4.6: a dense boolean tensor that round-trips to JSON and can seed
// a subsequent solve as hints, and a human-oriented schedule roll-up.
package plan

import (
	"encoding/json"
	"sort"
	"strconv"

	"github.com/mitchellh/hashstructure/v2"
	"github.com/mohae/deepcopy"

	"github.com/flightops/crewsolve/internal/model"
)

// AllocationPlan is a dense flight -> service -> staff -> assigned mapping.
// It is not safe for concurrent use (spec.md §5): a single plan must not be
// mutated while it's in use as a hint source or removal target.
type AllocationPlan struct {
	entries map[string]map[int]map[int]bool
}

// New returns an empty AllocationPlan.
func New() *AllocationPlan {
	return &AllocationPlan{entries: make(map[string]map[int]map[int]bool)}
}

// Add records flight/service/staff's assignment value.
func (p *AllocationPlan) Add(flight string, service, staff int, value bool) {
	if p.entries[flight] == nil {
		p.entries[flight] = make(map[int]map[int]bool)
	}
	if p.entries[flight][service] == nil {
		p.entries[flight][service] = make(map[int]bool)
	}
	p.entries[flight][service][staff] = value
}

// Get returns flight/service/staff's recorded value and whether an entry exists.
func (p *AllocationPlan) Get(flight string, service, staff int) (bool, bool) {
	byService, ok := p.entries[flight]
	if !ok {
		return false, false
	}
	byStaff, ok := byService[service]
	if !ok {
		return false, false
	}
	v, ok := byStaff[staff]
	return v, ok
}

// RemoveFlight deletes every entry for the given flight.
func (p *AllocationPlan) RemoveFlight(flight string) {
	delete(p.entries, flight)
}

// RemoveService deletes every entry for the given service id, across all flights.
func (p *AllocationPlan) RemoveService(service int) {
	for _, byService := range p.entries {
		delete(byService, service)
	}
}

// RemoveStaff deletes every entry for the given staff id, across all flights and services.
func (p *AllocationPlan) RemoveStaff(staff int) {
	for _, byService := range p.entries {
		for _, byStaff := range byService {
			delete(byStaff, staff)
		}
	}
}

// Flights returns the flight numbers with at least one recorded entry, sorted.
func (p *AllocationPlan) Flights() []string {
	out := make([]string, 0, len(p.entries))
	for f := range p.entries {
		out = append(out, f)
	}
	sort.Strings(out)
	return out
}

// Services returns the service ids recorded for the given flight, sorted.
func (p *AllocationPlan) Services(flight string) []int {
	byService := p.entries[flight]
	out := make([]int, 0, len(byService))
	for s := range byService {
		out = append(out, s)
	}
	sort.Ints(out)
	return out
}

// Staff returns the staff ids recorded for the given flight/service, sorted.
func (p *AllocationPlan) Staff(flight string, service int) []int {
	byStaff := p.entries[flight][service]
	out := make([]int, 0, len(byStaff))
	for s := range byStaff {
		out = append(out, s)
	}
	sort.Ints(out)
	return out
}

// Clone returns a deep copy, safe to mutate independently of p.
func (p *AllocationPlan) Clone() *AllocationPlan {
	copied := deepcopy.Copy(p.entries)
	return &AllocationPlan{entries: copied.(map[string]map[int]map[int]bool)}
}

// Hash returns a content hash of the plan's entries; two plans with equal
// entries hash equal. The solve/replan commands do not call it: every run is
// recorded in the historical store whether or not its plan changed.
func (p *AllocationPlan) Hash() (uint64, error) {
	return hashstructure.Hash(p.entries, hashstructure.FormatV2, nil)
}

// wireFormat mirrors the JSON shape spec.md §6 documents:
// { "<flight_no>": { "<service_id>": { "<staff_id>": bool } } }.
type wireFormat map[string]map[string]map[string]bool

// Serialize renders the plan to the string-keyed JSON shape spec.md §6 defines.
func (p *AllocationPlan) Serialize() ([]byte, error) {
	out := make(wireFormat, len(p.entries))
	for flight, byService := range p.entries {
		svcMap := make(map[string]map[string]bool, len(byService))
		for service, byStaff := range byService {
			staffMap := make(map[string]bool, len(byStaff))
			for staff, value := range byStaff {
				staffMap[strconv.Itoa(staff)] = value
			}
			svcMap[strconv.Itoa(service)] = staffMap
		}
		out[flight] = svcMap
	}
	return json.Marshal(out)
}

// Deserialize restores a plan from the JSON shape Serialize produces,
// coercing the service_id and staff_id string keys back to integers; flight
// numbers remain strings, per spec.md §6.
func Deserialize(data []byte) (*AllocationPlan, error) {
	var raw wireFormat
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	p := New()
	for flight, byService := range raw {
		for serviceStr, byStaff := range byService {
			service, err := strconv.Atoi(serviceStr)
			if err != nil {
				return nil, err
			}
			for staffStr, value := range byStaff {
				staff, err := strconv.Atoi(staffStr)
				if err != nil {
					return nil, err
				}
				p.Add(flight, service, staff, value)
			}
		}
	}
	return p, nil
}

// ToSchedule projects the plan directly into a Schedule without re-solving,
// per spec.md §4.6's AllocationPlan.to_schedule.
func (p *AllocationPlan) ToSchedule(cat model.Catalogs) Schedule {
	sched := NewSchedule(cat)
	for flight, byService := range p.entries {
		for service, byStaff := range byService {
			for staff, assigned := range byStaff {
				if assigned {
					sched.assign(flight, service, staff)
				}
			}
		}
	}
	return sched
}
