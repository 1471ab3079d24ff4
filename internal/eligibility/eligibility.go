// Package eligibility implements the two predicates from spec.md §4.2:
// staff availability for a time window, and staff certification for a
// service under its ALL/ANY rule. Both are pure functions of static input,
// so results are memoized per solver run with an in-memory TTL cache —
// constraint construction re-derives the same (staff, window) and
// (staff, service) pairs many times across the Availability/Certification/
// Flight-Transition builders.
package eligibility

import (
	"fmt"
	"time"

	cache "github.com/patrickmn/go-cache"

	"github.com/flightops/crewsolve/internal/constants"
	"github.com/flightops/crewsolve/internal/model"
	"github.com/flightops/crewsolve/internal/timeexpr"
)

// Checker evaluates the availability and certification predicates, caching
// results for the lifetime of one solver run.
type Checker struct {
	cache *cache.Cache
}

// NewChecker returns a Checker with a cache sized for one solve; entries
// never expire within a run (ttl -1) since the underlying staff roster and
// service catalog are immutable for the run's duration.
func NewChecker() *Checker {
	return &Checker{cache: cache.New(cache.NoExpiration, time.Minute)}
}

// Available reports whether st has some shift that fully contains [start, end).
func (c *Checker) Available(st model.Staff, start, end int) bool {
	key := fmt.Sprintf("avail:%d:%d:%d", st.ID, start, end)
	if v, ok := c.cache.Get(key); ok {
		return v.(bool)
	}
	result := available(st, start, end)
	c.cache.Set(key, result, cache.NoExpiration)
	return result
}

func available(st model.Staff, start, end int) bool {
	for _, sh := range st.Shifts {
		shStart, err := timeexpr.ParseClock(sh.Start)
		if err != nil {
			continue
		}
		shEnd, err := timeexpr.ParseClock(sh.End)
		if err != nil {
			continue
		}
		if shStart <= start && shEnd >= end {
			return true
		}
	}
	return false
}

// CanPerform reports whether st satisfies svc's certification requirement.
// Under ALL, every required cert must be held (an empty requirement set is
// vacuously satisfied). Under ANY, at least one must be held — including for
// an empty requirement set, which spec.md §9 notes returns false (an open
// question resolved in DESIGN.md: no certification can never be "any of
// none").
func (c *Checker) CanPerform(st model.Staff, svc model.Service) bool {
	key := fmt.Sprintf("cert:%d:%d", st.ID, svc.ID)
	if v, ok := c.cache.Get(key); ok {
		return v.(bool)
	}
	result := canPerform(st, svc)
	c.cache.Set(key, result, cache.NoExpiration)
	return result
}

func canPerform(st model.Staff, svc model.Service) bool {
	switch svc.CertificationRequirement {
	case constants.CertRequirementAny:
		for _, id := range svc.Certifications {
			if st.HasCert(id) {
				return true
			}
		}
		return false
	default: // ALL, including the zero value
		for _, id := range svc.Certifications {
			if !st.HasCert(id) {
				return false
			}
		}
		return true
	}
}
