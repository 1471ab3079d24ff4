package main

import (
	"fmt"
	"strings"

	"github.com/flightops/crewsolve/internal/constants"
	"github.com/flightops/crewsolve/internal/keyring"
	"github.com/flightops/crewsolve/internal/store"
)

// openStore picks a store.Provider from the --store value: a postgres DSN
// (given literally, or as "keyring://" to pull one stashed with "crewsolve
// keyring-set" instead of passing it on the command line or in
// CREWSOLVE_STORE), a sqlite: prefixed path, or (the default) a
// gzip-compressed JSON file.
func openStore(raw string) (store.Provider, error) {
	if raw == "keyring://" {
		dsn, err := keyring.GetDSN()
		if err != nil {
			return nil, fmt.Errorf("resolving --store keyring://: %w", err)
		}
		return store.NewPostgresStore(dsn), nil
	}

	path := expandPath(raw)
	switch {
	case strings.HasPrefix(path, "postgres://"), strings.HasPrefix(path, "postgresql://"):
		return store.NewPostgresStore(path), nil
	case strings.HasPrefix(path, "sqlite:"):
		return store.NewSQLiteStore(strings.TrimPrefix(path, "sqlite:")), nil
	default:
		return store.NewJSONStore(path, constants.DefaultMaxRetries), nil
	}
}
