// Package timeexpr resolves the service-time expression grammar from
// spec.md §4.1: A | D | A±k | D±k, against a flight's arrival/departure,
// into an absolute timestamp expressed as minutes-from-midnight.
package timeexpr

import (
	"regexp"
	"strconv"

	"github.com/flightops/crewsolve/internal/errors"
	"github.com/flightops/crewsolve/internal/model"
)

var exprPattern = regexp.MustCompile(`^([AD])([+-][0-9]+)?$`)

// ParseClock parses an HH:MM clock string into minutes from midnight.
func ParseClock(s string) (int, error) {
	if len(s) != 5 || s[2] != ':' {
		return 0, errors.Newf(errors.KindMalformedTimeExpr, "malformed clock time %q, want HH:MM", s)
	}
	h, err := strconv.Atoi(s[0:2])
	if err != nil {
		return 0, errors.Newf(errors.KindMalformedTimeExpr, "malformed clock time %q: %v", s, err)
	}
	m, err := strconv.Atoi(s[3:5])
	if err != nil {
		return 0, errors.Newf(errors.KindMalformedTimeExpr, "malformed clock time %q: %v", s, err)
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, errors.Newf(errors.KindMalformedTimeExpr, "clock time %q out of range", s)
	}
	return h*60 + m, nil
}

// FormatClock is the inverse of ParseClock.
func FormatClock(minutes int) string {
	if minutes < 0 {
		minutes = 0
	}
	h := minutes / 60
	m := minutes % 60
	return padTwo(h) + ":" + padTwo(m)
}

func padTwo(n int) string {
	if n < 10 {
		return "0" + strconv.Itoa(n)
	}
	return strconv.Itoa(n)
}

// Resolve resolves expr (one of "A", "D", "A+k", "A-k", "D+k", "D-k") against
// a flight's arrival/departure (already-parsed minutes-from-midnight) into
// an absolute timestamp. It fails with errors.KindMalformedTimeExpr for
// anything not matching the grammar.
func Resolve(expr string, arrival, departure int) (int, error) {
	m := exprPattern.FindStringSubmatch(expr)
	if m == nil {
		return 0, errors.Newf(errors.KindMalformedTimeExpr, "malformed time expression %q", expr)
	}

	base := arrival
	if m[1] == "D" {
		base = departure
	}

	if m[2] == "" {
		return base, nil
	}

	offset, err := strconv.Atoi(m[2])
	if err != nil {
		return 0, errors.Newf(errors.KindMalformedTimeExpr, "malformed time expression %q: %v", expr, err)
	}
	return base + offset, nil
}

// WindowForFlightService resolves both endpoints of fs's time window against flight f.
func WindowForFlightService(f model.Flight, fs model.FlightService) (start, end int, err error) {
	arrival, err := ParseClock(f.Arrival)
	if err != nil {
		return 0, 0, err
	}
	departure, err := ParseClock(f.Departure)
	if err != nil {
		return 0, 0, err
	}
	start, err = Resolve(fs.StartExpr, arrival, departure)
	if err != nil {
		return 0, 0, err
	}
	end, err = Resolve(fs.EndExpr, arrival, departure)
	if err != nil {
		return 0, 0, err
	}
	return start, end, nil
}
