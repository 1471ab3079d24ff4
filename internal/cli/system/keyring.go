// Package system holds crewsolve subcommands that manage local machine
// state rather than a solve run: OS keyring storage for the optional
// Postgres historical store's connection string.
package system

import (
	"errors"
	"fmt"
	"strings"

	"github.com/flightops/crewsolve/internal/cli"
	"github.com/flightops/crewsolve/internal/keyring"
)

// KeyringSetCmd stores a Postgres DSN in the OS keyring, so --store/
// CREWSOLVE_STORE never needs to carry the connection string in plaintext.
type KeyringSetCmd struct {
	DSN string `arg:"" help:"Postgres DSN to store in the OS keyring."`
}

func (c *KeyringSetCmd) Run(_ *cli.Context) error {
	if !strings.HasPrefix(c.DSN, "postgres://") && !strings.HasPrefix(c.DSN, "postgresql://") && !strings.Contains(c.DSN, "host=") {
		return errors.New("dsn must be a postgres:// URL or a key=value connection string")
	}
	if err := keyring.SetDSN(c.DSN); err != nil {
		return fmt.Errorf("storing dsn: %w", err)
	}
	fmt.Println("Postgres DSN stored in OS keyring.")
	fmt.Println(`Run crewsolve with --store keyring:// to use it.`)
	return nil
}

// KeyringGetCmd prints the stored DSN with its password masked.
type KeyringGetCmd struct{}

func (c *KeyringGetCmd) Run(_ *cli.Context) error {
	dsn, err := keyring.GetDSN()
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return errors.New("no dsn stored; run 'crewsolve keyring-set'")
		}
		return err
	}
	fmt.Println(maskPassword(dsn))
	return nil
}

// KeyringDeleteCmd removes the stored DSN.
type KeyringDeleteCmd struct{}

func (c *KeyringDeleteCmd) Run(_ *cli.Context) error {
	if err := keyring.DeleteDSN(); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return errors.New("no dsn stored")
		}
		return err
	}
	fmt.Println("Postgres DSN deleted from OS keyring.")
	return nil
}

// KeyringStatusCmd reports whether the OS keyring backend is reachable and
// whether a DSN is currently stored in it.
type KeyringStatusCmd struct{}

func (c *KeyringStatusCmd) Run(_ *cli.Context) error {
	if !keyring.Available() {
		fmt.Println("OS keyring is not available on this system.")
		return errors.New("keyring unavailable")
	}
	fmt.Println("OS keyring is available.")
	if _, err := keyring.GetDSN(); err == nil {
		fmt.Println("A Postgres DSN is stored.")
	} else if errors.Is(err, keyring.ErrNotFound) {
		fmt.Println("No Postgres DSN is stored.")
	}
	return nil
}

func maskPassword(dsn string) string {
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		if idx := strings.Index(dsn, "://"); idx != -1 {
			rest := dsn[idx+3:]
			if at := strings.LastIndex(rest, "@"); at != -1 {
				userinfo := rest[:at]
				if colon := strings.Index(userinfo, ":"); colon != -1 {
					return dsn[:idx+3] + userinfo[:colon] + ":****" + dsn[idx+3+at:]
				}
			}
		}
		return dsn
	}
	if strings.Contains(dsn, "password=") {
		fields := strings.Fields(dsn)
		for i, f := range fields {
			if strings.HasPrefix(f, "password=") {
				fields[i] = "password=****"
			}
		}
		return strings.Join(fields, " ")
	}
	return dsn
}
