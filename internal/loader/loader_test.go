package loader

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/Pallinder/go-randomdata"

	"github.com/flightops/crewsolve/internal/constants"
	"github.com/flightops/crewsolve/internal/model"
)

func TestLoadServicesResolvesCategory(t *testing.T) {
	data := []byte(`[{"id":1,"name":"Fuel","type":"F"},{"id":2,"name":"Cabin","type":"Single"}]`)
	services, err := LoadServices(data)
	if err != nil {
		t.Fatalf("LoadServices error: %v", err)
	}
	if services[0].Category != constants.CategoryFlightLevel {
		t.Errorf("services[0].Category = %v, want FlightLevel", services[0].Category)
	}
	if services[1].Category != constants.CategoryCommonLevel {
		t.Errorf("services[1].Category = %v, want CommonLevel", services[1].Category)
	}
}

func TestLoadServicesRejectsUnknownCategory(t *testing.T) {
	data := []byte(`[{"id":1,"name":"X","type":"bogus"}]`)
	if _, err := LoadServices(data); err == nil {
		t.Error("expected error for unrecognized category")
	}
}

func TestPrecheckRejectsNonArray(t *testing.T) {
	data := []byte(`{"number":"A1"}`)
	if _, err := LoadBays(data); err == nil {
		t.Error("expected error for non-array top level")
	}
}

func TestPrecheckRejectsMissingField(t *testing.T) {
	data := []byte(`[{"arrival":"06:00"}]`)
	if _, err := LoadFlights(data); err == nil {
		t.Error("expected error for missing required field")
	}
}

func TestLoadDirBuildsCatalogs(t *testing.T) {
	dir := t.TempDir()
	files := map[string]string{
		BaysFile:     `[{"number":"A1","travel_time":{"A2":10}}]`,
		ServicesFile: `[{"id":1,"name":"Fuel","type":"F"}]`,
		FlightsFile:  `[{"number":"FL1","arrival":"06:00","departure":"08:00","bay_number":"A1","flight_services":[{"id":1,"count":1,"start":"A","end":"D"}]}]`,
		RosterFile:   `[{"id":1,"name":"Alice","certifications":[],"shifts":[{"start":"00:00","end":"23:59"}]}]`,
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}

	cat, err := LoadDir(dir, model.DefaultSettings())
	if err != nil {
		t.Fatalf("LoadDir error: %v", err)
	}
	if len(cat.Bays) != 1 || len(cat.Services) != 1 || len(cat.Flights) != 1 || len(cat.Staff) != 1 {
		t.Errorf("unexpected catalog sizes: %+v", cat)
	}
}

// TestLoadRosterPreservesNamesForRandomFixtures builds a roster out of
// randomly-named staff (rather than hand-picked fixture names) to make sure
// LoadRoster doesn't depend on any particular name shape.
func TestLoadRosterPreservesNamesForRandomFixtures(t *testing.T) {
	const rosterSize = 20
	names := make(map[int]string, rosterSize)
	fixture := make([]model.Staff, 0, rosterSize)
	for i := 1; i <= rosterSize; i++ {
		name := randomdata.SillyName()
		names[i] = name
		fixture = append(fixture, model.Staff{
			ID:     i,
			Name:   name,
			Shifts: []model.Shift{{Start: "00:00", End: "23:59"}},
		})
	}

	data, err := json.Marshal(fixture)
	if err != nil {
		t.Fatalf("marshaling fixture roster: %v", err)
	}

	staff, err := LoadRoster(data)
	if err != nil {
		t.Fatalf("LoadRoster error: %v", err)
	}
	if len(staff) != rosterSize {
		t.Fatalf("len(staff) = %d, want %d", len(staff), rosterSize)
	}
	for _, st := range staff {
		if st.Name != names[st.ID] {
			t.Errorf("staff %d name = %q, want %q", st.ID, st.Name, names[st.ID])
		}
	}
}
