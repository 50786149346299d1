package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/annafors/planera/internal/cli/formatter"
	"github.com/annafors/planera/internal/domain"
	"github.com/spf13/cobra"
)

func resolveMeetingID(ctx context.Context, app *App, planID, input string) (string, error) {
	meetings, err := app.Meetings.ListByPlan(ctx, app.OrgID, planID)
	if err != nil {
		return "", err
	}

	// Dates are friendlier handles than UUIDs for calendar entries.
	if date, err := time.Parse(domain.DateLayout, input); err == nil {
		for _, m := range meetings {
			if domain.SameDay(m.MeetingDate, date) {
				return m.ID, nil
			}
		}
		return "", fmt.Errorf("no meeting on %s", input)
	}

	ids := make([]string, 0, len(meetings))
	for _, m := range meetings {
		ids = append(ids, m.ID)
	}
	return resolveID("meeting", input, ids)
}

func newMeetingCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "meeting",
		Short: "Inspect and adjust calendar meetings",
	}

	cmd.AddCommand(
		newMeetingListCmd(app),
		newMeetingInspectCmd(app),
		newMeetingUpdateCmd(app),
		newMeetingCancelCmd(app),
		newMeetingRestoreCmd(app),
		newMeetingActivityCmd(app),
	)

	return cmd
}

func newMeetingListCmd(app *App) *cobra.Command {
	var plan string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List a plan's meetings",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			planID, err := resolvePlanID(ctx, app, plan)
			if err != nil {
				return err
			}
			meetings, err := app.Meetings.ListByPlan(ctx, app.OrgID, planID)
			if err != nil {
				return err
			}
			if app.JSON {
				return writeJSON(cmd, meetings)
			}
			fmt.Printf("%s\n", formatter.FormatMeetingList(meetings, time.Now()))
			return nil
		},
	}

	cmd.Flags().StringVar(&plan, "plan", "", "Plan ID")
	_ = cmd.MarkFlagRequired("plan")

	return cmd
}

func newMeetingInspectCmd(app *App) *cobra.Command {
	var plan string

	cmd := &cobra.Command{
		Use:   "inspect <meeting>",
		Short: "Show a meeting with its agenda",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			planID, err := resolvePlanID(ctx, app, plan)
			if err != nil {
				return err
			}
			id, err := resolveMeetingID(ctx, app, planID, args[0])
			if err != nil {
				return err
			}

			meeting, err := app.Meetings.GetByID(ctx, app.OrgID, id)
			if err != nil {
				return err
			}
			activities, err := app.Meetings.ListActivities(ctx, app.OrgID, id)
			if err != nil {
				return err
			}

			if app.JSON {
				return writeJSON(cmd, map[string]any{
					"meeting":    meeting,
					"activities": activities,
				})
			}
			fmt.Printf("%s\n", formatter.FormatAgenda(meeting, activities, time.Now()))
			return nil
		},
	}

	cmd.Flags().StringVar(&plan, "plan", "", "Plan ID")
	_ = cmd.MarkFlagRequired("plan")

	return cmd
}

func newMeetingUpdateCmd(app *App) *cobra.Command {
	var plan, theme, location, notes, startTime, endTime string

	cmd := &cobra.Command{
		Use:   "update <meeting>",
		Short: "Update an upcoming meeting",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			planID, err := resolvePlanID(ctx, app, plan)
			if err != nil {
				return err
			}
			id, err := resolveMeetingID(ctx, app, planID, args[0])
			if err != nil {
				return err
			}
			meeting, err := app.Meetings.GetByID(ctx, app.OrgID, id)
			if err != nil {
				return err
			}

			if theme != "" {
				meeting.Theme = theme
			}
			if location != "" {
				meeting.Location = location
			}
			if notes != "" {
				meeting.Notes = notes
			}
			if startTime != "" {
				meeting.StartTime = startTime
			}
			if endTime != "" {
				meeting.EndTime = endTime
			}

			if err := app.Meetings.Update(ctx, app.OrgID, meeting); err != nil {
				return err
			}
			fmt.Printf("Updated meeting on %s\n", meeting.MeetingDate.Format(domain.DateLayout))
			return nil
		},
	}

	cmd.Flags().StringVar(&plan, "plan", "", "Plan ID")
	cmd.Flags().StringVar(&theme, "theme", "", "Meeting theme")
	cmd.Flags().StringVar(&location, "location", "", "Meeting location")
	cmd.Flags().StringVar(&notes, "notes", "", "Meeting notes")
	cmd.Flags().StringVar(&startTime, "from", "", "Start time (HH:MM)")
	cmd.Flags().StringVar(&endTime, "to", "", "End time (HH:MM)")
	_ = cmd.MarkFlagRequired("plan")

	return cmd
}

func newMeetingCancelCmd(app *App) *cobra.Command {
	var plan string

	cmd := &cobra.Command{
		Use:   "cancel <meeting>",
		Short: "Cancel an upcoming meeting, keeping its calendar slot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			planID, err := resolvePlanID(ctx, app, plan)
			if err != nil {
				return err
			}
			id, err := resolveMeetingID(ctx, app, planID, args[0])
			if err != nil {
				return err
			}
			if err := app.Meetings.Cancel(ctx, app.OrgID, id); err != nil {
				return err
			}
			fmt.Println("Meeting cancelled.")
			return nil
		},
	}

	cmd.Flags().StringVar(&plan, "plan", "", "Plan ID")
	_ = cmd.MarkFlagRequired("plan")

	return cmd
}

func newMeetingRestoreCmd(app *App) *cobra.Command {
	var plan string

	cmd := &cobra.Command{
		Use:   "restore <meeting>",
		Short: "Reinstate a cancelled meeting",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			planID, err := resolvePlanID(ctx, app, plan)
			if err != nil {
				return err
			}
			id, err := resolveMeetingID(ctx, app, planID, args[0])
			if err != nil {
				return err
			}
			if err := app.Meetings.Restore(ctx, app.OrgID, id); err != nil {
				return err
			}
			fmt.Println("Meeting restored.")
			return nil
		},
	}

	cmd.Flags().StringVar(&plan, "plan", "", "Plan ID")
	_ = cmd.MarkFlagRequired("plan")

	return cmd
}

func newMeetingActivityCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "activity",
		Short: "Manage a meeting's agenda",
	}

	cmd.AddCommand(
		newActivityAddCmd(app),
		newActivityRemoveCmd(app),
	)

	return cmd
}

func newActivityAddCmd(app *App) *cobra.Command {
	var plan, meeting, name, description, objectives string
	var duration, order int

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add an activity to a meeting's agenda",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			planID, err := resolvePlanID(ctx, app, plan)
			if err != nil {
				return err
			}
			meetingID, err := resolveMeetingID(ctx, app, planID, meeting)
			if err != nil {
				return err
			}

			a := &domain.MeetingActivity{
				MeetingID:       meetingID,
				Name:            name,
				Description:     description,
				DurationMinutes: duration,
				SortOrder:       order,
			}
			if objectives != "" {
				a.ObjectiveIDs = strings.Split(objectives, ",")
			}
			if err := app.Meetings.AddActivity(ctx, app.OrgID, a); err != nil {
				return err
			}
			fmt.Printf("Added %s to the agenda\n", a.Name)
			return nil
		},
	}

	cmd.Flags().StringVar(&plan, "plan", "", "Plan ID")
	cmd.Flags().StringVar(&meeting, "meeting", "", "Meeting ID or date")
	cmd.Flags().StringVar(&name, "name", "", "Activity name")
	cmd.Flags().StringVar(&description, "desc", "", "Activity description")
	cmd.Flags().StringVar(&objectives, "objectives", "", "Comma-separated objective IDs")
	cmd.Flags().IntVar(&duration, "duration", 0, "Duration in minutes")
	cmd.Flags().IntVar(&order, "order", 0, "Agenda position")
	_ = cmd.MarkFlagRequired("plan")
	_ = cmd.MarkFlagRequired("meeting")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newActivityRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <activity-id>",
		Short: "Remove an activity from its agenda",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Meetings.RemoveActivity(context.Background(), app.OrgID, args[0]); err != nil {
				return err
			}
			fmt.Println("Activity removed.")
			return nil
		},
	}
}
