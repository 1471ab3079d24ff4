package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"

	"github.com/flightops/crewsolve/internal/cli"
	"github.com/flightops/crewsolve/internal/cli/solve"
	"github.com/flightops/crewsolve/internal/cli/system"
	"github.com/flightops/crewsolve/internal/config"
	"github.com/flightops/crewsolve/internal/constants"
	"github.com/flightops/crewsolve/internal/logger"
	"github.com/flightops/crewsolve/internal/store"
)

const defaultConfigDir = "~/.config/crewsolve"

type CLI struct {
	Version kong.VersionFlag `help:"Show version." name:"version"`

	Debug  bool   `help:"Enable debug logging." name:"debug"`
	Config string `help:"Path to a YAML/TOML settings file." name:"config" type:"path"`
	Store  string `help:"Path to the historical run store (JSON), a postgres://... DSN, a sqlite:<path> database file, or keyring:// to use the DSN stored via 'keyring-set'." name:"store" default:"~/.config/crewsolve/history.json.gz" env:"CREWSOLVE_STORE"`

	OverlapBuffer *int `help:"Override the overlap tolerance buffer (minutes)." name:"overlap-buffer"`
	TravelTime    *int `help:"Override the default bay-to-bay travel time (minutes)." name:"travel-time"`

	Solve  solve.Cmd       `cmd:"" help:"Solve a fresh staff allocation from a directory of catalog files."`
	Replan solve.ReplanCmd `cmd:"" help:"Re-solve using a prior saved plan's assignments as hints."`

	KeyringSet    system.KeyringSetCmd    `cmd:"" name:"keyring-set" help:"Store a Postgres DSN in the OS keyring."`
	KeyringGet    system.KeyringGetCmd    `cmd:"" name:"keyring-get" help:"Print the DSN stored in the OS keyring, password masked."`
	KeyringDelete system.KeyringDeleteCmd `cmd:"" name:"keyring-delete" help:"Remove the DSN stored in the OS keyring."`
	KeyringStatus system.KeyringStatusCmd `cmd:"" name:"keyring-status" help:"Report whether the OS keyring is reachable and populated."`

	store store.Provider
}

func (c *CLI) AfterApply(kctx *kong.Context) error {
	configDir := defaultConfigDir
	if c.Store != "keyring://" {
		configDir = filepath.Dir(expandPath(c.Store))
	}
	if err := logger.Init(logger.Config{Debug: c.Debug, ConfigDir: expandPath(configDir)}); err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to initialize logger: %v\n", err)
	}

	provider, err := openStore(c.Store)
	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}
	if err := provider.Init(); err != nil {
		return fmt.Errorf("initializing store: %w", err)
	}
	c.store = provider

	return nil
}

func main() {
	kongCLI := CLI{}
	kctx := kong.Parse(&kongCLI,
		kong.Name(constants.AppName),
		kong.Description("Ground-handling staff-to-flight-service allocation solver"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{Compact: true}),
		kong.Vars{"version": constants.Version},
	)

	settings, err := config.Load(kongCLI.Config, config.Overrides{
		OverlapToleranceBuffer: kongCLI.OverlapBuffer,
		DefaultTravelTime:      kongCLI.TravelTime,
	})
	if err != nil {
		logger.Error("invalid settings", "error", err)
		os.Exit(1)
	}

	appCtx := &cli.Context{Store: kongCLI.store, Settings: settings}

	if err := kctx.Run(appCtx); err != nil {
		logger.Error("command failed", "error", err)
		os.Exit(1)
	}

	if kongCLI.store != nil {
		if err := kongCLI.store.Close(); err != nil {
			logger.Warn("failed to close store cleanly", "error", err)
		}
	}
}

func expandPath(path string) string {
	if len(path) >= 2 && path[:2] == "~/" {
		home, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}
