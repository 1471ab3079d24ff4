// Package model holds the static entities spec.md §3 defines: bays, shifts,
// certifications, staff, the service catalog, flights, and their lookup maps.
package model

import "github.com/flightops/crewsolve/internal/constants"

// Bay is a parking position for a flight. TravelTime maps another bay id to
// the travel minutes a staff member needs to move there; a missing entry
// falls back to Settings.DefaultTravelTime, and travel from a bay to itself
// is always 0 regardless of what TravelTime says.
type Bay struct {
	ID         string         `json:"number"`
	TravelTime map[string]int `json:"travel_time"`
}

// TravelTimeTo returns the travel minutes from b to other, applying the
// self-travel-is-zero rule and the supplied default for missing entries.
func (b Bay) TravelTimeTo(other string, def int) int {
	if b.ID == other {
		return 0
	}
	if m, ok := b.TravelTime[other]; ok {
		return m
	}
	return def
}

// Shift is a contiguous on-duty interval, HH:MM clock times within one day.
type Shift struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// Staff is a roster entry: an id, a held certification set, and the shifts
// during which they are on duty.
type Staff struct {
	ID           int     `json:"id"`
	Name         string  `json:"name"`
	Certificates []int   `json:"certifications"`
	Shifts       []Shift `json:"shifts"`
}

// HasCert reports whether st holds the given certification id.
func (st Staff) HasCert(id int) bool {
	for _, c := range st.Certificates {
		if c == id {
			return true
		}
	}
	return false
}

// CertCount returns the number of certifications st holds, used by the
// objective's skill-preference coefficient (spec.md §4.4.8).
func (st Staff) CertCount() int {
	return len(st.Certificates)
}

// Service is a catalog entry: certification/exclusion rules and category.
type Service struct {
	ID                    int              `json:"id"`
	Name                  string           `json:"name"`
	Certifications        []int            `json:"certifications"`
	CertificationRequirement constants.CertRequirement `json:"certification_requirement"`
	Category              constants.Category `json:"-"`
	RawType               string           `json:"type"`
	CrossUtilizationLimit int              `json:"cross_utilization_limit"`
	ExcludeServices       []int            `json:"exclude_services"`
}

// Excludes reports whether service s's own ExcludeServices list contains
// otherID. It checks one direction only; callers that need the symmetric
// relation (spec.md §9) test both a.Excludes(b) and b.Excludes(a).
func (s Service) Excludes(otherID int) bool {
	for _, id := range s.ExcludeServices {
		if id == otherID {
			return true
		}
	}
	return false
}

// FlightService is one required service instance attached to a flight.
type FlightService struct {
	ID         int    `json:"id"`
	Count      int    `json:"count"`
	StartExpr  string `json:"start"`
	EndExpr    string `json:"end"`
}

// Flight is a scheduled arrival/departure parked on a bay with required services.
type Flight struct {
	Number     string          `json:"number"`
	Arrival    string          `json:"arrival"`
	Departure  string          `json:"departure"`
	BayID      string          `json:"bay_number"`
	Services   []FlightService `json:"flight_services"`
}

// Catalogs bundles the four lookup maps every downstream component needs,
// keyed exactly as spec.md §3 describes (bay id, service id, flight number,
// staff id).
type Catalogs struct {
	Bays     map[string]Bay
	Services map[int]Service
	Flights  map[string]Flight
	Staff    map[int]Staff
	Settings Settings
}

// Settings holds the three recognized tunables from spec.md §6.
type Settings struct {
	OverlapToleranceBuffer int `mapstructure:"overlap_tolerance_buffer"`
	DefaultTravelTime      int `mapstructure:"default_travel_time"`
	MaxRetries             int `mapstructure:"max_retries"`
}

// DefaultSettings returns the documented defaults (buffer 15, travel 5, retries 3).
func DefaultSettings() Settings {
	return Settings{
		OverlapToleranceBuffer: constants.DefaultOverlapToleranceBuffer,
		DefaultTravelTime:      constants.DefaultTravelTime,
		MaxRetries:             constants.DefaultMaxRetries,
	}
}
