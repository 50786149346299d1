package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/annafors/planera/internal/cli/formatter"
	"github.com/annafors/planera/internal/domain"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

func resolvePlanID(ctx context.Context, app *App, input string) (string, error) {
	plans, err := app.Plans.List(ctx, app.OrgID)
	if err != nil {
		return "", err
	}
	ids := make([]string, 0, len(plans))
	for _, p := range plans {
		ids = append(ids, p.ID)
	}
	return resolveID("plan", input, ids)
}

func newPlanCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Manage year plans",
	}

	cmd.AddCommand(
		newPlanAddCmd(app),
		newPlanListCmd(app),
		newPlanInspectCmd(app),
		newPlanUpdateCmd(app),
		newPlanRemoveCmd(app),
	)

	return cmd
}

func newPlanAddCmd(app *App) *cobra.Command {
	var title, start, end, weekday, pattern, location string
	var blackouts, anchors []string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a year plan and generate its meeting calendar",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			// No flags on a terminal: walk through the wizard instead.
			if title == "" && app.interactive() {
				return runPlanWizard(ctx, app)
			}

			startDate, err := time.Parse(domain.DateLayout, start)
			if err != nil {
				return fmt.Errorf("invalid start date %q: %w", start, err)
			}
			endDate, err := time.Parse(domain.DateLayout, end)
			if err != nil {
				return fmt.Errorf("invalid end date %q: %w", end, err)
			}

			if location == "" {
				location = app.DefaultLocation
			}
			p := &domain.YearPlan{
				Settings:        app.planSettings(),
				OrgID:           app.OrgID,
				Title:           title,
				StartDate:       startDate,
				EndDate:         endDate,
				MeetingWeekday:  weekday,
				Pattern:         domain.RecurrencePattern(pattern),
				DefaultLocation: location,
				CreatedBy:       app.ActorID,
			}
			for _, spec := range blackouts {
				b, err := parseBlackout(spec)
				if err != nil {
					return err
				}
				p.Blackouts = append(p.Blackouts, b)
			}
			for _, spec := range anchors {
				a, err := parseAnchor(spec)
				if err != nil {
					return err
				}
				p.Anchors = append(p.Anchors, a)
			}

			result, err := app.Plans.Create(ctx, p)
			if err != nil {
				return err
			}

			fmt.Printf("Created plan %s with %d meetings\n", p.Title, result.MeetingCount)
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Plan title")
	cmd.Flags().StringVar(&start, "start", "", "Season start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&end, "end", "", "Season end date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&weekday, "day", "", "Meeting weekday (e.g. tuesday)")
	cmd.Flags().StringVar(&pattern, "pattern", "weekly", "Cadence: weekly or biweekly")
	cmd.Flags().StringVar(&location, "location", "", "Default meeting location")
	cmd.Flags().StringArrayVar(&blackouts, "blackout", nil,
		"Blackout range START:END[:LABEL], repeatable")
	cmd.Flags().StringArrayVar(&anchors, "anchor", nil,
		"Anchor DATE:TYPE[:THEME[:LOCATION]], repeatable (types: holiday, camp, special_event, no_meeting)")

	return cmd
}

// parseBlackout parses START:END[:LABEL] into a blackout range.
func parseBlackout(spec string) (domain.BlackoutRange, error) {
	parts := strings.SplitN(spec, ":", 3)
	if len(parts) < 2 {
		return domain.BlackoutRange{}, fmt.Errorf("invalid blackout %q: want START:END[:LABEL]", spec)
	}
	start, err := time.Parse(domain.DateLayout, parts[0])
	if err != nil {
		return domain.BlackoutRange{}, fmt.Errorf("invalid blackout start %q: %w", parts[0], err)
	}
	end, err := time.Parse(domain.DateLayout, parts[1])
	if err != nil {
		return domain.BlackoutRange{}, fmt.Errorf("invalid blackout end %q: %w", parts[1], err)
	}
	b := domain.BlackoutRange{Start: start, End: end}
	if len(parts) == 3 {
		b.Label = parts[2]
	}
	return b, nil
}

// parseAnchor parses DATE:TYPE[:THEME[:LOCATION]] into a plan anchor.
func parseAnchor(spec string) (domain.Anchor, error) {
	parts := strings.SplitN(spec, ":", 4)
	if len(parts) < 2 {
		return domain.Anchor{}, fmt.Errorf("invalid anchor %q: want DATE:TYPE[:THEME[:LOCATION]]", spec)
	}
	date, err := time.Parse(domain.DateLayout, parts[0])
	if err != nil {
		return domain.Anchor{}, fmt.Errorf("invalid anchor date %q: %w", parts[0], err)
	}
	if !domain.ValidAnchorTypes[parts[1]] {
		return domain.Anchor{}, fmt.Errorf("invalid anchor type %q (want holiday, camp, special_event or no_meeting)", parts[1])
	}
	a := domain.Anchor{
		ID:   uuid.New().String(),
		Date: date,
		Type: domain.AnchorType(parts[1]),
	}
	if len(parts) > 2 {
		a.Theme = parts[2]
	}
	if len(parts) > 3 {
		a.Location = parts[3]
	}
	return a, nil
}

func newPlanListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List year plans",
		RunE: func(cmd *cobra.Command, args []string) error {
			plans, err := app.Plans.List(context.Background(), app.OrgID)
			if err != nil {
				return err
			}
			if app.JSON {
				return writeJSON(cmd, plans)
			}
			if len(plans) == 0 {
				fmt.Println("No plans found.")
				return nil
			}
			fmt.Printf("%s\n", formatter.FormatPlanList(plans))
			return nil
		},
	}
}

func newPlanInspectCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <plan>",
		Short: "Show a plan with its periods and calendar summary",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolvePlanID(ctx, app, args[0])
			if err != nil {
				return err
			}

			plan, err := app.Plans.GetByID(ctx, app.OrgID, id)
			if err != nil {
				return err
			}
			periods, err := app.Periods.ListByPlan(ctx, app.OrgID, id)
			if err != nil {
				return err
			}
			meetings, err := app.Meetings.ListByPlan(ctx, app.OrgID, id)
			if err != nil {
				return err
			}

			if app.JSON {
				return writeJSON(cmd, map[string]any{
					"plan":     plan,
					"periods":  periods,
					"meetings": meetings,
				})
			}
			fmt.Printf("%s\n", formatter.FormatPlanInspect(formatter.PlanInspectData{
				Plan:     plan,
				Periods:  periods,
				Meetings: meetings,
			}))
			return nil
		},
	}
}

func newPlanUpdateCmd(app *App) *cobra.Command {
	var title, location string

	cmd := &cobra.Command{
		Use:   "update <plan>",
		Short: "Update a plan's title or default location",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolvePlanID(ctx, app, args[0])
			if err != nil {
				return err
			}
			plan, err := app.Plans.GetByID(ctx, app.OrgID, id)
			if err != nil {
				return err
			}

			if title != "" {
				plan.Title = title
			}
			if location != "" {
				plan.DefaultLocation = location
			}
			if err := app.Plans.Update(ctx, app.OrgID, plan); err != nil {
				return err
			}
			fmt.Printf("Updated plan %s\n", plan.Title)
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "New title")
	cmd.Flags().StringVar(&location, "location", "", "New default location")

	return cmd
}

func newPlanRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <plan>",
		Short: "Delete a plan and its calendar",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolvePlanID(ctx, app, args[0])
			if err != nil {
				return err
			}
			if err := app.Plans.Delete(ctx, app.OrgID, id); err != nil {
				return err
			}
			fmt.Println("Plan removed.")
			return nil
		},
	}
}
