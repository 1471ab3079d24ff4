// Package keyring protects the Postgres DSN an optional
// internal/store.PostgresStore connects with. A DSN carries a password the
// same way the plan catalogs never do, so it is the one piece of crewsolve
// configuration worth keeping out of shell history and process environment
// dumps: when --store/CREWSOLVE_STORE is set to "keyring://", cmd/crewsolve
// reads the DSN from the keyring instead of taking a literal connection
// string. Any other --store value is used as given, even if a DSN is stored.
package keyring

import (
	"errors"
	"fmt"

	"github.com/zalando/go-keyring"

	"github.com/flightops/crewsolve/internal/constants"
)

var (
	// ErrNotFound is returned when no DSN has been stored under the current service/user pair.
	ErrNotFound = errors.New("no postgres dsn stored in keyring")
	// ErrUnavailable is returned when the OS keyring backend cannot be reached.
	ErrUnavailable = errors.New("OS keyring is not available")
)

const keyringUser = "postgres-store"

// GetDSN retrieves the stored Postgres DSN, or ErrNotFound if none is stored.
func GetDSN() (string, error) {
	dsn, err := keyring.Get(constants.AppName, keyringUser)
	if err != nil {
		if err == keyring.ErrNotFound {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return dsn, nil
}

// SetDSN stores dsn under the OS keyring, replacing any previous value.
func SetDSN(dsn string) error {
	if dsn == "" {
		return errors.New("dsn cannot be empty")
	}
	if err := keyring.Set(constants.AppName, keyringUser, dsn); err != nil {
		return fmt.Errorf("storing dsn in keyring: %w", err)
	}
	return nil
}

// DeleteDSN removes the stored DSN, or ErrNotFound if none was stored.
func DeleteDSN() error {
	if err := keyring.Delete(constants.AppName, keyringUser); err != nil {
		if err == keyring.ErrNotFound {
			return ErrNotFound
		}
		return fmt.Errorf("deleting dsn from keyring: %w", err)
	}
	return nil
}

// Available best-effort probes whether the OS keyring backend can be reached
// at all, distinguishing "no DSN stored yet" from "no keyring on this host".
func Available() bool {
	_, err := keyring.Get(constants.AppName, "crewsolve-availability-probe")
	return err == nil || err == keyring.ErrNotFound
}
