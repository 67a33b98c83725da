package cli

import (
	"time"

	"github.com/alexanderramin/wbs/internal/domain"
	"github.com/alexanderramin/wbs/internal/service"
	"github.com/spf13/cobra"
)

// App holds the services and settings used by CLI commands.
type App struct {
	WBS   service.WBSService
	Tasks service.TaskService
	Views service.ViewService

	Statuses domain.StatusSet
	// Indent is repeated once per depth level in schedule row names.
	Indent string
	// Today returns the reference date for in-progress bars and due labels.
	Today func() time.Time
	// IsInteractive reports whether missing fields may be prompted for.
	IsInteractive func() bool
}

func (a *App) today() time.Time {
	if a.Today == nil {
		return time.Now().UTC()
	}
	return a.Today()
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

// NewRootCmd creates the top-level "wbs" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "wbs",
		Short:         "Work breakdown structure planner",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newNodeCmd(app),
		newTaskCmd(app),
		newSummaryCmd(app),
		newScheduleCmd(app),
		newRiskCmd(app),
	)

	return root
}
