package timeexpr

import (
	"testing"

	"github.com/flightops/crewsolve/internal/errors"
	"github.com/flightops/crewsolve/internal/model"
)

func TestResolve(t *testing.T) {
	arrival, departure := 330, 405 // 05:30, 06:45

	cases := []struct {
		expr string
		want int
	}{
		{"A", 330},
		{"D", 405},
		{"A+10", 340},
		{"A-10", 320},
		{"D-15", 390},
		{"D+0", 405},
	}
	for _, c := range cases {
		got, err := Resolve(c.expr, arrival, departure)
		if err != nil {
			t.Fatalf("Resolve(%q) error: %v", c.expr, err)
		}
		if got != c.want {
			t.Errorf("Resolve(%q) = %d, want %d", c.expr, got, c.want)
		}
	}
}

func TestResolveMalformed(t *testing.T) {
	for _, expr := range []string{"", "X", "A*5", "A+", "AD", "A++5"} {
		_, err := Resolve(expr, 0, 0)
		if err == nil {
			t.Fatalf("Resolve(%q) = nil error, want malformed", expr)
		}
		if !errors.Is(err, errors.KindMalformedTimeExpr) {
			t.Errorf("Resolve(%q) error kind = %v, want KindMalformedTimeExpr", expr, err)
		}
	}
}

func TestParseClockRoundTrip(t *testing.T) {
	m, err := ParseClock("05:30")
	if err != nil {
		t.Fatalf("ParseClock error: %v", err)
	}
	if m != 330 {
		t.Fatalf("ParseClock(05:30) = %d, want 330", m)
	}
	if got := FormatClock(330); got != "05:30" {
		t.Errorf("FormatClock(330) = %q, want 05:30", got)
	}
}

func TestWindowForFlightService(t *testing.T) {
	f := model.Flight{Number: "DL101", Arrival: "05:30", Departure: "06:45"}
	fs := model.FlightService{ID: 1, StartExpr: "A-10", EndExpr: "A+15"}
	start, end, err := WindowForFlightService(f, fs)
	if err != nil {
		t.Fatalf("WindowForFlightService error: %v", err)
	}
	if start != 320 || end != 345 {
		t.Errorf("window = [%d,%d), want [320,345)", start, end)
	}
}
