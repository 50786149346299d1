package cli

import (
	"github.com/annafors/planera/internal/service"
	"github.com/spf13/cobra"
)

// App holds references to all service interfaces used by CLI commands,
// plus the tenant scope every command runs under.
type App struct {
	Plans        service.PlanService
	Periods      service.PeriodService
	Objectives   service.ObjectiveService
	Meetings     service.MeetingService
	Library      service.LibraryService
	Distribution service.DistributionService
	Achievements service.AchievementService
	Reminders    service.ReminderService

	OrgID   string
	ActorID string

	// Config-driven defaults for new plans and meetings.
	DefaultLocation  string
	DefaultStartTime string
	DefaultEndTime   string

	// IsInteractive reports whether stdin is a terminal; wizards only
	// run when it returns true.
	IsInteractive func() bool

	// JSON switches data-bearing commands from formatted output to raw
	// JSON on stdout. Set by the root --json flag.
	JSON bool
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

// planSettings seeds a new plan's settings from the configured defaults.
func (a *App) planSettings() map[string]any {
	settings := map[string]any{}
	if a.DefaultStartTime != "" {
		settings["start_time"] = a.DefaultStartTime
	}
	if a.DefaultEndTime != "" {
		settings["end_time"] = a.DefaultEndTime
	}
	return settings
}

// NewRootCmd creates the top-level "planera" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "planera",
		Short: "Yearly meeting planner for youth groups",
	}

	root.PersistentFlags().BoolVar(&app.JSON, "json", false,
		"Emit JSON instead of formatted output")

	root.AddCommand(
		newPlanCmd(app),
		newPeriodCmd(app),
		newMeetingCmd(app),
		newObjectiveCmd(app),
		newLibraryCmd(app),
		newRuleCmd(app),
		newAchievementCmd(app),
		newReminderCmd(app),
	)

	return root
}
