// Package solve implements the crewsolve "solve" and "replan" subcommands.
package solve

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/flightops/crewsolve/internal/cli"
	"github.com/flightops/crewsolve/internal/driver"
	"github.com/flightops/crewsolve/internal/loader"
	"github.com/flightops/crewsolve/internal/logger"
	"github.com/flightops/crewsolve/internal/model"
	"github.com/flightops/crewsolve/internal/plan"
	"github.com/flightops/crewsolve/internal/render"
	"github.com/flightops/crewsolve/internal/validation"
)

// Cmd solves a fresh allocation from a directory of catalog files.
type Cmd struct {
	Dir    string `arg:"" help:"Directory containing bays.json, services.json, flights.json, roster.json." type:"existingdir"`
	Date   string `help:"Flight day this solve covers, for run history." default:"today"`
	Out    string `help:"Write the resulting AllocationPlan JSON to this file instead of stdout." name:"out" type:"path"`
	NoSave bool   `help:"Don't record this run in the historical store." name:"no-save"`
}

func (c *Cmd) Run(ctx *cli.Context) error {
	date := resolveDate(c.Date)

	cat, err := loader.LoadDir(c.Dir, ctx.Settings)
	if err != nil {
		return fmt.Errorf("loading catalogs: %w", err)
	}
	if err := validation.Catalogs(cat); err != nil {
		return fmt.Errorf("validating catalogs: %w", err)
	}

	result, err := driver.Run(context.Background(), cat, driver.Options{})
	if err != nil {
		return fmt.Errorf("solving: %w", err)
	}

	return finish(ctx, cat, date, result, c.Out, c.NoSave)
}

// ReplanCmd re-solves using a prior saved plan as hints, dropping any
// entries for flights no longer present in the fresh catalog data (the
// incremental re-plan workflow).
type ReplanCmd struct {
	Dir    string `arg:"" help:"Directory containing bays.json, services.json, flights.json, roster.json." type:"existingdir"`
	Date   string `arg:"" help:"Flight day whose last saved plan seeds this re-plan (YYYY-MM-DD or 'today')."`
	Out    string `help:"Write the resulting AllocationPlan JSON to this file instead of stdout." name:"out" type:"path"`
	NoSave bool   `help:"Don't record this run in the historical store." name:"no-save"`
}

func (c *ReplanCmd) Run(ctx *cli.Context) error {
	date := resolveDate(c.Date)

	cat, err := loader.LoadDir(c.Dir, ctx.Settings)
	if err != nil {
		return fmt.Errorf("loading catalogs: %w", err)
	}
	if err := validation.Catalogs(cat); err != nil {
		return fmt.Errorf("validating catalogs: %w", err)
	}

	prior, err := ctx.Store.LatestRun(date)
	if err != nil {
		return fmt.Errorf("loading prior run for %s: %w", date, err)
	}
	if prior != nil {
		dropStaleFlights(prior, cat)
	}

	result, err := driver.Run(context.Background(), cat, driver.Options{Hint: prior})
	if err != nil {
		return fmt.Errorf("solving: %w", err)
	}

	return finish(ctx, cat, date, result, c.Out, c.NoSave)
}

// dropStaleFlights removes hint entries for flights no longer present in
// cat, so a hint never references a variable the fresh solve won't create.
func dropStaleFlights(p *plan.AllocationPlan, cat model.Catalogs) {
	for _, flight := range p.Flights() {
		if _, ok := cat.Flights[flight]; !ok {
			p.RemoveFlight(flight)
		}
	}
}

func resolveDate(raw string) string {
	if raw == "" || raw == "today" {
		return time.Now().Format("2006-01-02")
	}
	return raw
}

func finish(ctx *cli.Context, cat model.Catalogs, date string, result driver.Result, out string, noSave bool) error {
	if result.Outcome != driver.Found {
		fmt.Println("No feasible allocation found.")
		return nil
	}

	if !noSave && ctx.Store != nil {
		if err := ctx.Store.SaveRun(date, result.RunID.String(), result.Plan); err != nil {
			logger.Warn("failed to record run history", "error", err)
		}
	}

	data, err := result.Plan.Serialize()
	if err != nil {
		return fmt.Errorf("serializing plan: %w", err)
	}

	if out != "" {
		if err := os.WriteFile(out, data, 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", out, err)
		}
		fmt.Printf("Plan written to %s\n", out)
	} else {
		fmt.Println(string(data))
	}

	fmt.Println()
	fmt.Print(render.Schedule(result.Plan.ToSchedule(cat), cat))
	return nil
}
