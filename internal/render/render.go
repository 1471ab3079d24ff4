// Package render prints a Schedule to the console. It is an external
// collaborator per spec.md §6 (the scheduler hands off a Schedule; how a
// terminal displays it is not a solver concern) so it carries no coverage
// obligation beyond basic formatting correctness.
package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/flightops/crewsolve/internal/model"
	"github.com/flightops/crewsolve/internal/plan"
)

var (
	flightStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true)

	bayStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	serviceStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	staffStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("78"))

	unfilledStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)
)

// Schedule renders sched to a plain string suitable for terminal output,
// one block per flight in the schedule's flight-number order, one line per
// flight_service, highlighting services that didn't reach their required
// count.
func Schedule(sched plan.Schedule, cat model.Catalogs) string {
	var b strings.Builder

	for _, num := range sched.Flights() {
		fsched, ok := sched.Get(num)
		if !ok {
			continue
		}
		b.WriteString(flightBlock(fsched, cat))
		b.WriteString("\n")
	}
	return b.String()
}

func flightBlock(fsched *plan.FlightSchedule, cat model.Catalogs) string {
	var b strings.Builder

	header := fmt.Sprintf("%s  %s", flightStyle.Render(fsched.Flight.Number),
		bayStyle.Render(fmt.Sprintf("bay %s  %s -> %s", fsched.Flight.BayID, fsched.Flight.Arrival, fsched.Flight.Departure)))
	b.WriteString(header + "\n")

	for _, sa := range fsched.Services {
		b.WriteString("  " + serviceLine(sa, cat) + "\n")
	}
	return b.String()
}

func serviceLine(sa plan.ServiceAssignment, cat model.Catalogs) string {
	name := fmt.Sprintf("service %d", sa.ServiceID)
	if svc, ok := cat.Services[sa.ServiceID]; ok {
		name = svc.Name
	}

	assigned := len(sa.Staff)
	countText := fmt.Sprintf("%d/%d", assigned, sa.RequiredCount)
	if assigned < sa.RequiredCount {
		countText = unfilledStyle.Render(countText + " UNFILLED")
	}

	staffNames := make([]string, 0, len(sa.Staff))
	for _, id := range sa.Staff {
		if st, ok := cat.Staff[id]; ok {
			staffNames = append(staffNames, st.Name)
		} else {
			staffNames = append(staffNames, fmt.Sprintf("#%d", id))
		}
	}

	line := fmt.Sprintf("%-28s %s", serviceStyle.Render(name), countText)
	if len(staffNames) > 0 {
		line += "  " + staffStyle.Render(strings.Join(staffNames, ", "))
	}
	return line
}
