package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/annafors/planera/internal/cli/formatter"
	"github.com/annafors/planera/internal/domain"
	"github.com/spf13/cobra"
)

func resolvePeriodID(ctx context.Context, app *App, planID, input string) (string, error) {
	periods, err := app.Periods.ListByPlan(ctx, app.OrgID, planID)
	if err != nil {
		return "", err
	}
	ids := make([]string, 0, len(periods))
	for _, p := range periods {
		ids = append(ids, p.ID)
	}
	return resolveID("period", input, ids)
}

func newPeriodCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "period",
		Short: "Manage plan periods (terms)",
	}

	cmd.AddCommand(
		newPeriodAddCmd(app),
		newPeriodListCmd(app),
		newPeriodRemoveCmd(app),
	)

	return cmd
}

func newPeriodAddCmd(app *App) *cobra.Command {
	var plan, title, start, end string
	var sortOrder int

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a period and claim its unassigned meetings",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			planID, err := resolvePlanID(ctx, app, plan)
			if err != nil {
				return err
			}
			startDate, err := time.Parse(domain.DateLayout, start)
			if err != nil {
				return fmt.Errorf("invalid start date %q: %w", start, err)
			}
			endDate, err := time.Parse(domain.DateLayout, end)
			if err != nil {
				return fmt.Errorf("invalid end date %q: %w", end, err)
			}

			p := &domain.Period{
				YearPlanID: planID,
				Title:      title,
				StartDate:  startDate,
				EndDate:    endDate,
				SortOrder:  sortOrder,
			}
			claimed, err := app.Periods.Create(ctx, app.OrgID, p)
			if err != nil {
				return err
			}

			fmt.Printf("Created period %s, claimed %d meetings\n", p.Title, claimed)
			return nil
		},
	}

	cmd.Flags().StringVar(&plan, "plan", "", "Plan ID")
	cmd.Flags().StringVar(&title, "title", "", "Period title")
	cmd.Flags().StringVar(&start, "start", "", "Period start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&end, "end", "", "Period end date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&sortOrder, "order", 0, "Sort order")
	_ = cmd.MarkFlagRequired("plan")
	_ = cmd.MarkFlagRequired("title")
	_ = cmd.MarkFlagRequired("start")
	_ = cmd.MarkFlagRequired("end")

	return cmd
}

func newPeriodListCmd(app *App) *cobra.Command {
	var plan string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List a plan's periods",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			planID, err := resolvePlanID(ctx, app, plan)
			if err != nil {
				return err
			}
			periods, err := app.Periods.ListByPlan(ctx, app.OrgID, planID)
			if err != nil {
				return err
			}
			if app.JSON {
				return writeJSON(cmd, periods)
			}
			if len(periods) == 0 {
				fmt.Println("No periods defined.")
				return nil
			}

			headers := []string{"ID", "TITLE", "START", "END"}
			rows := make([][]string, 0, len(periods))
			for _, p := range periods {
				rows = append(rows, []string{
					formatter.TruncID(p.ID),
					formatter.Bold(p.Title),
					p.StartDate.Format(domain.DateLayout),
					p.EndDate.Format(domain.DateLayout),
				})
			}
			fmt.Printf("%s\n", formatter.RenderBox("Periods", formatter.RenderTable(headers, rows)))
			return nil
		},
	}

	cmd.Flags().StringVar(&plan, "plan", "", "Plan ID")
	_ = cmd.MarkFlagRequired("plan")

	return cmd
}

func newPeriodRemoveCmd(app *App) *cobra.Command {
	var plan string

	cmd := &cobra.Command{
		Use:   "remove <period>",
		Short: "Delete a period, leaving its meetings in place",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			planID, err := resolvePlanID(ctx, app, plan)
			if err != nil {
				return err
			}
			id, err := resolvePeriodID(ctx, app, planID, args[0])
			if err != nil {
				return err
			}
			if err := app.Periods.Delete(ctx, app.OrgID, id); err != nil {
				return err
			}
			fmt.Println("Period removed; meetings kept.")
			return nil
		},
	}

	cmd.Flags().StringVar(&plan, "plan", "", "Plan ID")
	_ = cmd.MarkFlagRequired("plan")

	return cmd
}
