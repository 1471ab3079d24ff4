// Package cli holds the shared context threaded through every crewsolve
// subcommand, following the same thin-Context pattern the teacher's CLI
// layer uses: one struct carrying the wired collaborators, so a subcommand's
// Run method only needs *Context plus its own flags.
package cli

import (
	"github.com/flightops/crewsolve/internal/model"
	"github.com/flightops/crewsolve/internal/store"
)

// Context is threaded into every subcommand's Run method.
type Context struct {
	Store    store.Provider
	Settings model.Settings
}
