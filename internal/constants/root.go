package constants

import "time"

const (
	AppName = "crewsolve"
	Version = "v0.1.0"

	// DateFormat is the standard date format used for flight-day identifiers (YYYY-MM-DD).
	DateFormat = "2006-01-02"

	// TimeFormat is the HH:MM clock format all flight, shift, and service-time expressions use.
	TimeFormat = "15:04"

	// DefaultOverlapToleranceBuffer is the default symmetric tolerance (minutes) the overlap
	// detector and the Flight-Transition constraint both apply.
	DefaultOverlapToleranceBuffer = 15

	// DefaultTravelTime is used when the bay-to-bay travel matrix has no entry for a pair.
	DefaultTravelTime = 5

	// DefaultMaxRetries is the default for the reserved max_retries setting, and
	// cmd/crewsolve passes it to the JSON historical store as its write-retry count.
	DefaultMaxRetries = 3

	// DefaultStoreWriteTimeout is a time bound for one historical-store write
	// attempt. No store reads it: JSONStore's retried writes carry no timeout.
	DefaultStoreWriteTimeout = 5 * time.Second
)

// CertRequirement is the ALL/ANY semantics a catalog service declares over its certification set.
type CertRequirement string

const (
	CertRequirementAll CertRequirement = "All"
	CertRequirementAny CertRequirement = "Any"
)

// Category is the closed tagged set of service categories, reconciling the two vocabularies
// noted in spec.md §3/§9: {FlightLevel, CommonLevel, MultiFlight} and {MultiTask, Single, Fixed}.
type Category string

const (
	CategoryFlightLevel Category = "flight_level"
	CategoryCommonLevel Category = "common_level"
	CategoryMultiFlight Category = "multi_flight"
)

// ParseCategory accepts either vocabulary's spelling, plus the raw single-letter JSON "type"
// field from spec.md §6 ("F"|"C"|"M"|"S"), and returns the reconciled tagged category.
func ParseCategory(raw string) (Category, bool) {
	switch raw {
	case "FlightLevel", "MultiTask", "F", "flight_level", "multi_task":
		return CategoryFlightLevel, true
	case "CommonLevel", "Single", "S", "C", "common_level", "single":
		return CategoryCommonLevel, true
	case "MultiFlight", "Fixed", "M", "multi_flight", "fixed":
		return CategoryMultiFlight, true
	default:
		return "", false
	}
}
