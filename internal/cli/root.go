// Package cli is the terminal surface: a cobra command tree, a huh
// trip form, and a bubbletea schedule editor over the session state.
package cli

import (
	"github.com/alexanderramin/wanderplan/internal/planner"
	"github.com/spf13/cobra"
)

// App holds the services and environment hooks the CLI commands use.
type App struct {
	Planner planner.Service

	// IsInteractive reports whether stdin is a terminal; without one
	// the plan command skips the form and the editor.
	IsInteractive func() bool
}

// NewRootCmd creates the top-level "wanderplan" command and registers
// all subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "wanderplan",
		Short: "Trip itinerary planner and schedule editor",
	}

	root.AddCommand(
		newPlanCmd(app),
	)

	return root
}
