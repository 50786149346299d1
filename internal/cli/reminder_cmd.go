package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/annafors/planera/internal/cli/formatter"
	"github.com/annafors/planera/internal/domain"
	"github.com/spf13/cobra"
)

func newReminderCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reminder",
		Short: "Schedule meeting reminders",
	}

	cmd.AddCommand(
		newReminderAddCmd(app),
		newReminderListCmd(app),
		newReminderPendingCmd(app),
		newReminderRemoveCmd(app),
	)

	return cmd
}

func newReminderAddCmd(app *App) *cobra.Command {
	var plan, meeting, channel, lead, message string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Schedule a reminder some lead time before a meeting",
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
			leadDur, err := time.ParseDuration(lead)
			if err != nil {
				return fmt.Errorf("invalid lead %q: %w", lead, err)
			}

			r, err := app.Reminders.Schedule(ctx, app.OrgID, meetingID,
				domain.ReminderChannel(channel), leadDur, message)
			if err != nil {
				return err
			}
			fmt.Printf("Reminder scheduled for %s\n", formatter.HumanTimestamp(r.ScheduledAt))
			return nil
		},
	}

	cmd.Flags().StringVar(&plan, "plan", "", "Plan ID")
	cmd.Flags().StringVar(&meeting, "meeting", "", "Meeting ID or date")
	cmd.Flags().StringVar(&channel, "channel", "email", "Channel: email, sms or push")
	cmd.Flags().StringVar(&lead, "lead", "24h", "Lead time before the meeting (e.g. 24h, 90m)")
	cmd.Flags().StringVar(&message, "message", "", "Custom message")
	_ = cmd.MarkFlagRequired("plan")
	_ = cmd.MarkFlagRequired("meeting")

	return cmd
}

func newReminderListCmd(app *App) *cobra.Command {
	var plan, meeting string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List a meeting's reminders",
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
			reminders, err := app.Reminders.ListByMeeting(ctx, app.OrgID, meetingID)
			if err != nil {
				return err
			}
			if app.JSON {
				return writeJSON(cmd, reminders)
			}
			if len(reminders) == 0 {
				fmt.Println("No reminders scheduled.")
				return nil
			}
			fmt.Printf("%s\n", formatter.FormatReminderList(reminders))
			return nil
		},
	}

	cmd.Flags().StringVar(&plan, "plan", "", "Plan ID")
	cmd.Flags().StringVar(&meeting, "meeting", "", "Meeting ID or date")
	_ = cmd.MarkFlagRequired("plan")
	_ = cmd.MarkFlagRequired("meeting")

	return cmd
}

func newReminderPendingCmd(app *App) *cobra.Command {
	var within string

	cmd := &cobra.Command{
		Use:   "pending",
		Short: "Show unsent reminders due within a window",
		RunE: func(cmd *cobra.Command, args []string) error {
			window, err := time.ParseDuration(within)
			if err != nil {
				return fmt.Errorf("invalid window %q: %w", within, err)
			}
			pending, err := app.Reminders.ListPending(context.Background(), time.Now().Add(window))
			if err != nil {
				return err
			}
			if app.JSON {
				return writeJSON(cmd, pending)
			}
			if len(pending) == 0 {
				fmt.Println("Nothing due.")
				return nil
			}
			fmt.Printf("%s\n", formatter.FormatReminderList(pending))
			return nil
		},
	}

	cmd.Flags().StringVar(&within, "within", "168h", "Look-ahead window")

	return cmd
}

func newReminderRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <reminder-id>",
		Short: "Delete a scheduled reminder",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Reminders.Delete(context.Background(), app.OrgID, args[0]); err != nil {
				return err
			}
			fmt.Println("Reminder removed.")
			return nil
		},
	}
}
