// Package validation implements the UnknownReference checks spec.md §7
// names: a catalog is only usable once every cross-reference it contains
// (a flight's bay, a flight service's id, a service's exclusion ids)
// resolves to something that actually exists. Certification ids are not
// checked, since there is no certification catalog to check them against. Every
// violation found in one pass is reported together via errors.Aggregate,
// rather than stopping at the first one.
package validation

import (
	"fmt"

	"github.com/flightops/crewsolve/internal/errors"
	"github.com/flightops/crewsolve/internal/model"
)

// Catalogs checks cat for unknown references and returns an aggregated
// error (errors.KindUnknownReference) describing every violation found, or
// nil if the catalog is internally consistent.
func Catalogs(cat model.Catalogs) error {
	var violations []error

	for number, flight := range cat.Flights {
		if _, ok := cat.Bays[flight.BayID]; !ok {
			violations = append(violations, fmt.Errorf("flight %s: unknown bay %q", number, flight.BayID))
		}
		for _, fs := range flight.Services {
			if _, ok := cat.Services[fs.ID]; !ok {
				violations = append(violations, fmt.Errorf("flight %s: unknown service id %d", number, fs.ID))
			}
		}
	}

	for id, svc := range cat.Services {
		for _, excludeID := range svc.ExcludeServices {
			if _, ok := cat.Services[excludeID]; !ok {
				violations = append(violations, fmt.Errorf("service %d: unknown excluded service id %d", id, excludeID))
			}
		}
	}

	if len(violations) == 0 {
		return nil
	}
	tagged := make([]error, len(violations))
	for i, v := range violations {
		tagged[i] = errors.New(errors.KindUnknownReference, v)
	}
	return errors.Aggregate(tagged...)
}
