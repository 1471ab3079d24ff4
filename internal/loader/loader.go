// Package loader ingests the four JSON catalog files spec.md §6 defines
// (bays, services, flights, roster) into internal/model's Catalogs. A fast
// fastjson pass checks each file is a well-formed array of objects carrying
// the fields this system actually reads before the slower, strict
// encoding/json unmarshal runs — so a malformed catalog fails with a clear
// per-file message instead of a generic unmarshal error.
package loader

import (
	"encoding/json"
	"fmt"

	"github.com/valyala/fastjson"

	"github.com/flightops/crewsolve/internal/constants"
	"github.com/flightops/crewsolve/internal/errors"
	"github.com/flightops/crewsolve/internal/model"
)

var jsonParserPool fastjson.ParserPool

// precheckArray parses data with fastjson just far enough to confirm it is a
// JSON array of objects, each carrying every field in requiredFields.
func precheckArray(file string, data []byte, requiredFields ...string) error {
	p := jsonParserPool.Get()
	defer jsonParserPool.Put(p)

	v, err := p.ParseBytes(data)
	if err != nil {
		return errors.Newf(errors.KindUnknownReference, "%s: invalid JSON: %w", file, err)
	}
	arr, err := v.Array()
	if err != nil {
		return errors.Newf(errors.KindUnknownReference, "%s: expected a top-level JSON array", file)
	}
	for i, elem := range arr {
		obj, err := elem.Object()
		if err != nil {
			return errors.Newf(errors.KindUnknownReference, "%s[%d]: expected a JSON object", file, i)
		}
		for _, field := range requiredFields {
			if obj.Get(field) == nil {
				return errors.Newf(errors.KindUnknownReference, "%s[%d]: missing required field %q", file, i, field)
			}
		}
	}
	return nil
}

// LoadBays parses the bays.json contents.
func LoadBays(data []byte) ([]model.Bay, error) {
	if err := precheckArray("bays", data, "number"); err != nil {
		return nil, err
	}
	var bays []model.Bay
	if err := json.Unmarshal(data, &bays); err != nil {
		return nil, fmt.Errorf("bays: %w", err)
	}
	return bays, nil
}

// LoadServices parses the services.json contents and resolves each entry's
// reconciled Category from its raw "type" field.
func LoadServices(data []byte) ([]model.Service, error) {
	if err := precheckArray("services", data, "id"); err != nil {
		return nil, err
	}
	var services []model.Service
	if err := json.Unmarshal(data, &services); err != nil {
		return nil, fmt.Errorf("services: %w", err)
	}
	for i := range services {
		cat, ok := constants.ParseCategory(services[i].RawType)
		if !ok {
			return nil, errors.Newf(errors.KindUnknownReference, "services[%d]: unrecognized category %q", i, services[i].RawType)
		}
		services[i].Category = cat
	}
	return services, nil
}

// LoadFlights parses the flights.json contents.
func LoadFlights(data []byte) ([]model.Flight, error) {
	if err := precheckArray("flights", data, "number", "arrival", "departure", "bay_number"); err != nil {
		return nil, err
	}
	var flights []model.Flight
	if err := json.Unmarshal(data, &flights); err != nil {
		return nil, fmt.Errorf("flights: %w", err)
	}
	return flights, nil
}

// LoadRoster parses the roster.json contents.
func LoadRoster(data []byte) ([]model.Staff, error) {
	if err := precheckArray("roster", data, "id"); err != nil {
		return nil, err
	}
	var staff []model.Staff
	if err := json.Unmarshal(data, &staff); err != nil {
		return nil, fmt.Errorf("roster: %w", err)
	}
	return staff, nil
}

// BuildCatalogs assembles the four parsed slices into the keyed lookup maps
// internal/model.Catalogs requires.
func BuildCatalogs(bays []model.Bay, services []model.Service, flights []model.Flight, staff []model.Staff, settings model.Settings) model.Catalogs {
	cat := model.Catalogs{
		Bays:     make(map[string]model.Bay, len(bays)),
		Services: make(map[int]model.Service, len(services)),
		Flights:  make(map[string]model.Flight, len(flights)),
		Staff:    make(map[int]model.Staff, len(staff)),
		Settings: settings,
	}
	for _, b := range bays {
		cat.Bays[b.ID] = b
	}
	for _, s := range services {
		cat.Services[s.ID] = s
	}
	for _, f := range flights {
		cat.Flights[f.Number] = f
	}
	for _, st := range staff {
		cat.Staff[st.ID] = st
	}
	return cat
}
