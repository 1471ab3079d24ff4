// Package config loads Settings (spec.md §6) with defaults, an optional
// YAML/TOML config file, environment variables, and CLI flag overrides
// layered in that order of increasing precedence, per SPEC_FULL.md §6.
package config

import (
	"github.com/imdario/mergo"
	"github.com/spf13/viper"

	"github.com/flightops/crewsolve/internal/constants"
	"github.com/flightops/crewsolve/internal/errors"
	"github.com/flightops/crewsolve/internal/model"
)

// EnvPrefix is the environment variable prefix recognized for Settings
// overrides (e.g. CREWSOLVE_OVERLAP_TOLERANCE_BUFFER).
const EnvPrefix = "CREWSOLVE"

// Overrides holds CLI-flag-sourced values; a nil field means "flag not set,
// don't override the file/env/default layers".
type Overrides struct {
	OverlapToleranceBuffer *int
	DefaultTravelTime      *int
	MaxRetries             *int
}

// Load builds Settings from defaults, then configFile (if non-empty),
// then CREWSOLVE_* environment variables, then overrides — in that order
// of increasing precedence — and validates the result.
func Load(configFile string, overrides Overrides) (model.Settings, error) {
	v := viper.New()
	v.SetDefault("overlap_tolerance_buffer", constants.DefaultOverlapToleranceBuffer)
	v.SetDefault("default_travel_time", constants.DefaultTravelTime)
	v.SetDefault("max_retries", constants.DefaultMaxRetries)

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return model.Settings{}, errors.Newf(errors.KindInvalidSettings, "reading config file %s: %w", configFile, err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	var settings model.Settings
	if err := v.Unmarshal(&settings); err != nil {
		return model.Settings{}, errors.Newf(errors.KindInvalidSettings, "parsing settings: %w", err)
	}

	// Backstop: if a custom config source ever bypasses viper's own
	// SetDefault layering and leaves a field at its zero value, mergo fills
	// it from the built-in defaults without disturbing anything already set.
	if err := mergo.Merge(&settings, model.DefaultSettings()); err != nil {
		return model.Settings{}, errors.Newf(errors.KindInvalidSettings, "applying default settings: %w", err)
	}

	if overrides.OverlapToleranceBuffer != nil {
		settings.OverlapToleranceBuffer = *overrides.OverlapToleranceBuffer
	}
	if overrides.DefaultTravelTime != nil {
		settings.DefaultTravelTime = *overrides.DefaultTravelTime
	}
	if overrides.MaxRetries != nil {
		settings.MaxRetries = *overrides.MaxRetries
	}

	if err := Validate(settings); err != nil {
		return model.Settings{}, err
	}
	return settings, nil
}

// Validate enforces spec.md §6/§7's InvalidSettings rule: the overlap
// tolerance buffer must be non-negative, and the default travel time must be
// positive.
func Validate(s model.Settings) error {
	if s.OverlapToleranceBuffer < 0 {
		return errors.Newf(errors.KindInvalidSettings, "overlap_tolerance_buffer must be >= 0, got %d", s.OverlapToleranceBuffer)
	}
	if s.DefaultTravelTime <= 0 {
		return errors.Newf(errors.KindInvalidSettings, "default_travel_time must be > 0, got %d", s.DefaultTravelTime)
	}
	return nil
}
