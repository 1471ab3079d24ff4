package constraint

import (
	"context"
	"testing"

	"github.com/flightops/crewsolve/internal/constants"
	"github.com/flightops/crewsolve/internal/cpsat"
	"github.com/flightops/crewsolve/internal/eligibility"
	"github.com/flightops/crewsolve/internal/model"
	"github.com/flightops/crewsolve/internal/overlap"
	"github.com/flightops/crewsolve/internal/solver"
)

func baseCatalogs() model.Catalogs {
	return model.Catalogs{
		Bays: map[string]model.Bay{
			"A1": {ID: "A1"},
		},
		Staff: map[int]model.Staff{
			1: {ID: 1, Shifts: []model.Shift{{Start: "00:00", End: "23:59"}}},
			2: {ID: 2, Shifts: []model.Shift{{Start: "00:00", End: "23:59"}}},
		},
		Settings: model.DefaultSettings(),
	}
}

func TestAvailabilityForcesIneligibleToZero(t *testing.T) {
	cat := baseCatalogs()
	cat.Staff[2] = model.Staff{ID: 2, Shifts: []model.Shift{{Start: "12:00", End: "23:59"}}}
	cat.Services = map[int]model.Service{1: {ID: 1, Category: constants.CategoryCommonLevel}}
	cat.Flights = map[string]model.Flight{
		"FL1": {Number: "FL1", Arrival: "06:00", Departure: "08:00", BayID: "A1",
			Services: []model.FlightService{{ID: 1, Count: 1, StartExpr: "A", EndExpr: "D"}}},
	}

	m := cpsat.NewModel()
	checker := eligibility.NewChecker()
	vars, err := solver.BuildVariables(m, cat, checker, solver.BuildOptions{})
	if err != nil {
		t.Fatalf("BuildVariables error: %v", err)
	}

	Availability(m, vars, cat, checker)

	v2, ok := vars.Get("FL1", 1, 2)
	if !ok {
		t.Fatal("expected variable for staff 2")
	}
	res, err := m.Solve(context.Background())
	if err != nil {
		t.Fatalf("Solve error: %v", err)
	}
	if res.Value(v2) {
		t.Error("expected staff 2's variable forced to 0 by Availability")
	}
}

func TestStaffCountCapsAssignments(t *testing.T) {
	cat := baseCatalogs()
	cat.Services = map[int]model.Service{1: {ID: 1, Category: constants.CategoryCommonLevel}}
	cat.Flights = map[string]model.Flight{
		"FL1": {Number: "FL1", Arrival: "06:00", Departure: "08:00", BayID: "A1",
			Services: []model.FlightService{{ID: 1, Count: 1, StartExpr: "A", EndExpr: "D"}}},
	}

	m := cpsat.NewModel()
	checker := eligibility.NewChecker()
	vars, err := solver.BuildVariables(m, cat, checker, solver.BuildOptions{})
	if err != nil {
		t.Fatalf("BuildVariables error: %v", err)
	}
	StaffCount(m, vars, cat)
	Objective(m, vars, cat)

	res, err := m.Solve(context.Background())
	if err != nil {
		t.Fatalf("Solve error: %v", err)
	}
	v1, _ := vars.Get("FL1", 1, 1)
	v2, _ := vars.Get("FL1", 1, 2)
	if res.Value(v1) && res.Value(v2) {
		t.Error("expected at most one staff assigned to a count-1 service")
	}
}

func TestCommonLevelExcludesOtherCategories(t *testing.T) {
	cat := baseCatalogs()
	cat.Staff = map[int]model.Staff{1: {ID: 1, Shifts: []model.Shift{{Start: "00:00", End: "23:59"}}}}
	cat.Services = map[int]model.Service{
		1: {ID: 1, Category: constants.CategoryCommonLevel},
		2: {ID: 2, Category: constants.CategoryFlightLevel},
	}
	cat.Flights = map[string]model.Flight{
		"FL1": {Number: "FL1", Arrival: "06:00", Departure: "08:00", BayID: "A1",
			Services: []model.FlightService{
				{ID: 1, Count: 1, StartExpr: "A", EndExpr: "D"},
				{ID: 2, Count: 1, StartExpr: "A", EndExpr: "D"},
			}},
	}

	m := cpsat.NewModel()
	checker := eligibility.NewChecker()
	vars, err := solver.BuildVariables(m, cat, checker, solver.BuildOptions{})
	if err != nil {
		t.Fatalf("BuildVariables error: %v", err)
	}
	CommonLevel(m, vars, cat)
	terms := []cpsat.Term{}
	for _, e := range vars.AllEntries() {
		terms = append(terms, cpsat.Term{Coeff: 1, Var: e.Var})
	}
	m.SetObjective(terms)

	res, err := m.Solve(context.Background())
	if err != nil {
		t.Fatalf("Solve error: %v", err)
	}
	v1, _ := vars.Get("FL1", 1, 1)
	v2, _ := vars.Get("FL1", 2, 1)
	if res.Value(v1) && res.Value(v2) {
		t.Error("expected CommonLevel assignment to exclude the FlightLevel assignment for the same staff")
	}
}

func TestMultiFlightPinsStaffToOneServiceAcrossFlights(t *testing.T) {
	cat := baseCatalogs()
	cat.Staff = map[int]model.Staff{1: {ID: 1, Shifts: []model.Shift{{Start: "00:00", End: "23:59"}}}}
	cat.Services = map[int]model.Service{
		10: {ID: 10, Category: constants.CategoryMultiFlight},
		20: {ID: 20, Category: constants.CategoryMultiFlight},
	}
	cat.Flights = map[string]model.Flight{
		"FL1": {Number: "FL1", Arrival: "06:00", Departure: "08:00", BayID: "A1",
			Services: []model.FlightService{{ID: 10, Count: 1, StartExpr: "A", EndExpr: "D"}}},
		"FL2": {Number: "FL2", Arrival: "06:00", Departure: "08:00", BayID: "A1",
			Services: []model.FlightService{{ID: 20, Count: 1, StartExpr: "A", EndExpr: "D"}}},
	}

	m := cpsat.NewModel()
	checker := eligibility.NewChecker()
	vars, err := solver.BuildVariables(m, cat, checker, solver.BuildOptions{})
	if err != nil {
		t.Fatalf("BuildVariables error: %v", err)
	}
	if err := MultiFlight(m, vars, cat); err != nil {
		t.Fatalf("MultiFlight error: %v", err)
	}
	var terms []cpsat.Term
	for _, e := range vars.AllEntries() {
		terms = append(terms, cpsat.Term{Coeff: 1, Var: e.Var})
	}
	m.SetObjective(terms)

	res, err := m.Solve(context.Background())
	if err != nil {
		t.Fatalf("Solve error: %v", err)
	}
	v1, _ := vars.Get("FL1", 10, 1)
	v2, _ := vars.Get("FL2", 20, 1)
	if res.Value(v1) && res.Value(v2) {
		t.Error("expected staff pinned to at most one multi-flight service id across flights")
	}
}

func TestFlightTransitionBlocksInsufficientSlack(t *testing.T) {
	cat := baseCatalogs()
	cat.Staff = map[int]model.Staff{1: {ID: 1, Shifts: []model.Shift{{Start: "00:00", End: "23:59"}}}}
	cat.Bays = map[string]model.Bay{
		"A1": {ID: "A1", TravelTime: map[string]int{"A2": 30}},
		"A2": {ID: "A2", TravelTime: map[string]int{"A1": 30}},
	}
	cat.Services = map[int]model.Service{1: {ID: 1, Category: constants.CategoryCommonLevel}}
	cat.Flights = map[string]model.Flight{
		"FL1": {Number: "FL1", Arrival: "05:00", Departure: "06:00", BayID: "A1",
			Services: []model.FlightService{{ID: 1, Count: 1, StartExpr: "A", EndExpr: "D"}}},
		"FL2": {Number: "FL2", Arrival: "06:10", Departure: "07:00", BayID: "A2",
			Services: []model.FlightService{{ID: 1, Count: 1, StartExpr: "A", EndExpr: "D"}}},
	}
	overlapMap := overlap.Map{"FL1": {"FL2"}}

	m := cpsat.NewModel()
	checker := eligibility.NewChecker()
	vars, err := solver.BuildVariables(m, cat, checker, solver.BuildOptions{})
	if err != nil {
		t.Fatalf("BuildVariables error: %v", err)
	}
	if err := FlightTransition(m, vars, cat, checker, overlapMap, 15, 5); err != nil {
		t.Fatalf("FlightTransition error: %v", err)
	}
	var terms []cpsat.Term
	for _, e := range vars.AllEntries() {
		terms = append(terms, cpsat.Term{Coeff: 1, Var: e.Var})
	}
	m.SetObjective(terms)

	res, err := m.Solve(context.Background())
	if err != nil {
		t.Fatalf("Solve error: %v", err)
	}
	v1, _ := vars.Get("FL1", 1, 1)
	v2, _ := vars.Get("FL2", 1, 1)
	if res.Value(v1) && res.Value(v2) {
		t.Error("expected transition constraint to block the same staff on both flights")
	}
}
