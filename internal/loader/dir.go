package loader

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/flightops/crewsolve/internal/model"
)

// Filenames are the four catalog files spec.md §6's CLI reads from a data/ directory.
const (
	BaysFile     = "bays.json"
	ServicesFile = "services.json"
	FlightsFile  = "flights.json"
	RosterFile   = "roster.json"
)

// LoadDir reads and parses the four catalog files from dir and assembles a Catalogs.
func LoadDir(dir string, settings model.Settings) (model.Catalogs, error) {
	bayData, err := os.ReadFile(filepath.Join(dir, BaysFile))
	if err != nil {
		return model.Catalogs{}, fmt.Errorf("reading %s: %w", BaysFile, err)
	}
	bays, err := LoadBays(bayData)
	if err != nil {
		return model.Catalogs{}, err
	}

	serviceData, err := os.ReadFile(filepath.Join(dir, ServicesFile))
	if err != nil {
		return model.Catalogs{}, fmt.Errorf("reading %s: %w", ServicesFile, err)
	}
	services, err := LoadServices(serviceData)
	if err != nil {
		return model.Catalogs{}, err
	}

	flightData, err := os.ReadFile(filepath.Join(dir, FlightsFile))
	if err != nil {
		return model.Catalogs{}, fmt.Errorf("reading %s: %w", FlightsFile, err)
	}
	flights, err := LoadFlights(flightData)
	if err != nil {
		return model.Catalogs{}, err
	}

	rosterData, err := os.ReadFile(filepath.Join(dir, RosterFile))
	if err != nil {
		return model.Catalogs{}, fmt.Errorf("reading %s: %w", RosterFile, err)
	}
	staff, err := LoadRoster(rosterData)
	if err != nil {
		return model.Catalogs{}, err
	}

	return BuildCatalogs(bays, services, flights, staff, settings), nil
}
