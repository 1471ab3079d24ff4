// Package overlap implements the pre-solver overlap-detection pass from
// spec.md §4.3: it cuts the quadratic |flights|² transition search down to
// the pairs of flights that can actually conflict for some staff member,
// after accounting for bay-to-bay travel time and a symmetric tolerance
// buffer.
package overlap

import (
	"sort"

	"github.com/samber/lo"

	"github.com/flightops/crewsolve/internal/constants"
	"github.com/flightops/crewsolve/internal/model"
	"github.com/flightops/crewsolve/internal/timeexpr"
)

// Map is the directed flight-overlap map: flight number -> later flight
// numbers it may conflict with. Commutativity is not required; a missing
// entry means "no conflict possible" from that flight.
type Map map[string][]string

type anchor struct {
	flight        model.Flight
	earliestStart int
	latestEnd     int
}

// Build computes the overlap map for the given flights, filtering to the
// non-MultiFlight services of each flight when deriving anchor times (a
// MultiFlight service is allowed to span multiple flights, so it must not
// anchor the single-flight windows this pass compares).
//
// spec.md §9 flags the early-exit inner-sweep as correct only when flights
// are ordered so that earliest_start is non-decreasing across the sweep.
// Sorting by arrival time (as one evolutionary copy did) does not guarantee
// that; this implementation sorts by earliest_start directly, which
// restores the monotonicity the early exit depends on.
func Build(services map[int]model.Service, bays map[string]model.Bay, flights []model.Flight, bufferMinutes, defaultTravel int) (Map, error) {
	anchors := make([]anchor, 0, len(flights))
	for _, f := range flights {
		a, err := anchorFor(services, f)
		if err != nil {
			return nil, err
		}
		anchors = append(anchors, a)
	}

	sort.SliceStable(anchors, func(i, j int) bool {
		return anchors[i].earliestStart < anchors[j].earliestStart
	})

	result := make(Map)
	for i := 0; i < len(anchors); i++ {
		a := anchors[i]
		for j := i + 1; j < len(anchors); j++ {
			b := anchors[j]

			bayA := bays[a.flight.BayID]
			travel := bayA.TravelTimeTo(b.flight.BayID, defaultTravel)
			slack := travel - bufferMinutes
			if slack < 0 {
				slack = 0
			}

			if a.latestEnd+slack > b.earliestStart {
				result[a.flight.Number] = append(result[a.flight.Number], b.flight.Number)
				continue
			}
			// Monotonicity assumption (spec.md §9): once a later flight (by
			// earliest_start) does not conflict, no even-later flight can.
			break
		}
	}
	return result, nil
}

func anchorFor(services map[int]model.Service, f model.Flight) (anchor, error) {
	arrival, err := timeexpr.ParseClock(f.Arrival)
	if err != nil {
		return anchor{}, err
	}
	departure, err := timeexpr.ParseClock(f.Departure)
	if err != nil {
		return anchor{}, err
	}

	singleFlightServices := lo.Filter(f.Services, func(fs model.FlightService, _ int) bool {
		svc, ok := services[fs.ID]
		return ok && svc.Category != constants.CategoryMultiFlight
	})

	latestEnd := departure
	earliestStart := arrival

	for i, fs := range singleFlightServices {
		start, end, err := timeexpr.WindowForFlightService(f, fs)
		if err != nil {
			return anchor{}, err
		}
		if i == 0 || end > latestEnd {
			latestEnd = end
		}
		if i == 0 || start < earliestStart {
			earliestStart = start
		}
	}

	return anchor{flight: f, earliestStart: earliestStart, latestEnd: latestEnd}, nil
}
