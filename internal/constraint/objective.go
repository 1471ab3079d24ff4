package constraint

import (
	"github.com/flightops/crewsolve/internal/cpsat"
	"github.com/flightops/crewsolve/internal/model"
	"github.com/flightops/crewsolve/internal/solver"
)

// objectiveScale converts the rational per-variable weight
// 1 + 1/max(1, certs(st)) into an integer cpsat coefficient. cpsat.Term
// coefficients are integers, so the fractional skill-preference term can't
// be represented exactly; 1000 gives three decimal digits of precision,
// which is enough to order staff by certification count correctly for any
// roster this system would realistically see (the coefficient only needs to
// rank staff, not reproduce the fraction exactly).
const objectiveScale = 1000

// Objective implements spec.md §4.4.8: maximize coverage while preferring
// less-certified staff when a choice exists, so that highly certified staff
// stay available for assignments only they can cover.
func Objective(m *cpsat.Model, vars *solver.Vars, cat model.Catalogs) {
	var terms []cpsat.Term
	for _, e := range vars.AllEntries() {
		st := cat.Staff[e.Staff]
		certs := st.CertCount()
		if certs < 1 {
			certs = 1
		}
		weight := objectiveScale + objectiveScale/certs
		terms = append(terms, cpsat.Term{Coeff: weight, Var: e.Var})
	}
	m.SetObjective(terms)
}
