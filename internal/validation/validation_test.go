package validation

import (
	"testing"

	"github.com/flightops/crewsolve/internal/errors"
	"github.com/flightops/crewsolve/internal/model"
)

func TestCatalogsOK(t *testing.T) {
	cat := model.Catalogs{
		Bays:     map[string]model.Bay{"A1": {ID: "A1"}},
		Services: map[int]model.Service{1: {ID: 1}},
		Flights: map[string]model.Flight{
			"FL1": {Number: "FL1", BayID: "A1", Services: []model.FlightService{{ID: 1}}},
		},
	}
	if err := Catalogs(cat); err != nil {
		t.Errorf("expected no violations, got %v", err)
	}
}

func TestCatalogsDetectsUnknownBay(t *testing.T) {
	cat := model.Catalogs{
		Bays: map[string]model.Bay{},
		Flights: map[string]model.Flight{
			"FL1": {Number: "FL1", BayID: "GHOST"},
		},
	}
	err := Catalogs(cat)
	if err == nil {
		t.Fatal("expected unknown bay violation")
	}
	if !errors.Is(err, errors.KindUnknownReference) {
		t.Errorf("expected KindUnknownReference, got %v", err)
	}
}

func TestCatalogsDetectsUnknownFlightService(t *testing.T) {
	cat := model.Catalogs{
		Bays:     map[string]model.Bay{"A1": {ID: "A1"}},
		Services: map[int]model.Service{},
		Flights: map[string]model.Flight{
			"FL1": {Number: "FL1", BayID: "A1", Services: []model.FlightService{{ID: 99}}},
		},
	}
	if err := Catalogs(cat); err == nil {
		t.Error("expected unknown service id violation")
	}
}

func TestCatalogsDetectsUnknownExcludedService(t *testing.T) {
	cat := model.Catalogs{
		Services: map[int]model.Service{
			1: {ID: 1, ExcludeServices: []int{2}},
		},
	}
	if err := Catalogs(cat); err == nil {
		t.Error("expected unknown excluded service violation")
	}
}
