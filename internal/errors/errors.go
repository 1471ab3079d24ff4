// Package errors defines the closed error taxonomy from spec.md §7 and
// console-facing formatting/fatal helpers.
package errors

import (
	"errors"
	"fmt"
	"os"

	"go.uber.org/multierr"

	"github.com/flightops/crewsolve/internal/logger"
)

// Kind is one of the five error origins spec.md §7 enumerates.
type Kind string

const (
	// KindMalformedTimeExpr means a service-time expression did not match the
	// A|D[+-]k grammar (spec.md §4.1).
	KindMalformedTimeExpr Kind = "malformed_time_expr"
	// KindUnknownReference means model construction found a reference to a
	// bay, service, flight, or certification id that does not exist.
	KindUnknownReference Kind = "unknown_reference"
	// KindInvalidSettings means a Settings value failed construction-time validation.
	KindInvalidSettings Kind = "invalid_settings"
	// KindInfeasible means the back-end reported no feasible/optimal solution.
	KindInfeasible Kind = "infeasible"
	// KindBackendError means the solver back-end failed for reasons unrelated
	// to feasibility (a bug or internal failure); callers treat it as fatal.
	KindBackendError Kind = "backend_error"
)

// TypedError pairs an error Kind with the underlying cause so callers can
// branch with errors.Is/errors.As while still printing a useful message.
type TypedError struct {
	Kind Kind
	Err  error
}

func (e *TypedError) Error() string {
	return fmt.Sprintf("%s: %v", e.Kind, e.Err)
}

func (e *TypedError) Unwrap() error { return e.Err }

// New wraps err with the given Kind.
func New(kind Kind, err error) error {
	if err == nil {
		return nil
	}
	return &TypedError{Kind: kind, Err: err}
}

// Newf is the formatted convenience form of New.
func Newf(kind Kind, format string, args ...interface{}) error {
	return New(kind, fmt.Errorf(format, args...))
}

// Is reports whether err carries the given Kind anywhere in its chain.
func Is(err error, kind Kind) bool {
	var te *TypedError
	for errors.As(err, &te) {
		if te.Kind == kind {
			return true
		}
		err = te.Err
	}
	return false
}

// Aggregate combines zero or more errors discovered during a single pass
// (e.g. every UnknownReference violation found while validating a catalog)
// into one error, so a caller sees the whole set instead of just the first.
// A nil slice, or a slice of all-nil errors, returns nil.
func Aggregate(errs ...error) error {
	return multierr.Combine(errs...)
}

// Format formats an error message with a consistent "Error: " prefix
func Format(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Error: %v", err)
}

// Formatf formats an error message with a consistent "Error: " prefix using a format string
func Formatf(format string, args ...interface{}) string {
	return fmt.Sprintf("Error: "+format, args...)
}

// Fatal logs an error and exits the program with exit code 1
func Fatal(err error) {
	if err != nil {
		logger.Error("command execution failed", "error", err)
		fmt.Fprintf(os.Stderr, "%s\n", Format(err))
		os.Exit(1)
	}
}

// Fatalf logs and formats an error message, then exits the program with exit code 1
func Fatalf(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	logger.Error("command execution failed", "error", msg)
	fmt.Fprintf(os.Stderr, "%s\n", Formatf(format, args...))
	os.Exit(1)
}
