package constraint

import "github.com/flightops/crewsolve/internal/cpsat"

// applySingleCategoryExclusivity enforces "at most one of vc" and, when both
// vc and vo are non-empty, links an indicator so that choosing any vc
// variable excludes every vo variable. This is the shared shape spec.md
// §4.4.5 defines and §4.4.6 reuses verbatim for its intra-flight portion.
//
// Soundness: the first AddLinear already forces Σvc ∈ {0,1}, so the
// equality Σvc - h = 0 makes h exactly that 0/1 value without needing a
// separate "Σvc=0 ⇔ h=0" constraint. The second AddLinear then forces every
// vo variable to 0 whenever h=1, using len(vo) as the big-M bound.
func applySingleCategoryExclusivity(m *cpsat.Model, vc, vo []cpsat.Var) {
	if len(vc) == 0 {
		return
	}
	vcTerms := make([]cpsat.Term, len(vc))
	for i, v := range vc {
		vcTerms[i] = cpsat.Term{Coeff: 1, Var: v}
	}
	m.AddLinear(append([]cpsat.Term(nil), vcTerms...), cpsat.LE, 1)

	if len(vo) == 0 {
		return
	}
	h := m.NewBoolVar("excl")
	eq := append(append([]cpsat.Term(nil), vcTerms...), cpsat.Term{Coeff: -1, Var: h})
	m.AddLinear(eq, cpsat.EQ, 0)

	voTerms := make([]cpsat.Term, 0, len(vo)+1)
	for _, v := range vo {
		voTerms = append(voTerms, cpsat.Term{Coeff: 1, Var: v})
	}
	voTerms = append(voTerms, cpsat.Term{Coeff: len(vo), Var: h})
	m.AddLinear(voTerms, cpsat.LE, len(vo))
}

// applyOrIndicator introduces a boolean y linked to xs so that y=1 exactly
// when at least one of xs is 1, and y=0 exactly when all of xs are 0. Used
// by the Multi-Flight/Fixed family's cross-flight pinning (spec.md §4.4.6).
func applyOrIndicator(m *cpsat.Model, xs []cpsat.Var) cpsat.Var {
	y := m.NewBoolVar("ind")
	if len(xs) == 0 {
		m.Fix(y, false)
		return y
	}

	// y <= Σxs
	upper := make([]cpsat.Term, 0, len(xs)+1)
	upper = append(upper, cpsat.Term{Coeff: 1, Var: y})
	for _, x := range xs {
		upper = append(upper, cpsat.Term{Coeff: -1, Var: x})
	}
	m.AddLinear(upper, cpsat.LE, 0)

	// Σxs <= len(xs)*y
	lower := make([]cpsat.Term, 0, len(xs)+1)
	for _, x := range xs {
		lower = append(lower, cpsat.Term{Coeff: 1, Var: x})
	}
	lower = append(lower, cpsat.Term{Coeff: -len(xs), Var: y})
	m.AddLinear(lower, cpsat.LE, 0)

	return y
}
