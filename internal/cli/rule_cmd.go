package cli

import (
	"context"
	"fmt"

	"github.com/annafors/planera/internal/cli/formatter"
	"github.com/annafors/planera/internal/domain"
	"github.com/spf13/cobra"
)

func resolveRuleID(ctx context.Context, app *App, planID, input string) (string, error) {
	rules, err := app.Distribution.ListRules(ctx, app.OrgID, planID)
	if err != nil {
		return "", err
	}
	ids := make([]string, 0, len(rules))
	for _, r := range rules {
		ids = append(ids, r.ID)
	}
	return resolveID("rule", input, ids)
}

func newRuleCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rule",
		Short: "Manage activity distribution rules",
	}

	cmd.AddCommand(
		newRuleAddCmd(app),
		newRuleListCmd(app),
		newRulePreviewCmd(app),
		newRuleApplyCmd(app),
		newRuleRemoveCmd(app),
	)

	return cmd
}

func newRuleAddCmd(app *App) *cobra.Command {
	var plan, activity, library, scope, placement string
	var occurrences int

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Declare how often an activity recurs in each scope unit",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			planID, err := resolvePlanID(ctx, app, plan)
			if err != nil {
				return err
			}

			r := &domain.DistributionRule{
				YearPlanID:          planID,
				ActivityName:        activity,
				Scope:               domain.DistributionScope(scope),
				Placement:           domain.PlacementRule(placement),
				OccurrencesPerScope: occurrences,
			}
			if library != "" {
				libraryID, err := resolveLibraryID(ctx, app, library)
				if err != nil {
					return err
				}
				r.ActivityLibraryID = &libraryID
			}
			if err := app.Distribution.CreateRule(ctx, app.OrgID, r); err != nil {
				return err
			}
			fmt.Printf("Created rule for %s\n", r.ActivityName)
			return nil
		},
	}

	cmd.Flags().StringVar(&plan, "plan", "", "Plan ID")
	cmd.Flags().StringVar(&activity, "activity", "", "Activity name")
	cmd.Flags().StringVar(&library, "library", "", "Library item to link (name or ID)")
	cmd.Flags().StringVar(&scope, "scope", "year", "Counting scope: year, period or month")
	cmd.Flags().StringVar(&placement, "placement", "evenly_spaced",
		"Placement: near_start, near_end, evenly_spaced or manual")
	cmd.Flags().IntVar(&occurrences, "count", 1, "Occurrences per scope unit")
	_ = cmd.MarkFlagRequired("plan")
	_ = cmd.MarkFlagRequired("activity")

	return cmd
}

func newRuleListCmd(app *App) *cobra.Command {
	var plan string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List a plan's distribution rules",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			planID, err := resolvePlanID(ctx, app, plan)
			if err != nil {
				return err
			}
			rules, err := app.Distribution.ListRules(ctx, app.OrgID, planID)
			if err != nil {
				return err
			}
			if app.JSON {
				return writeJSON(cmd, rules)
			}
			if len(rules) == 0 {
				fmt.Println("No rules defined.")
				return nil
			}
			fmt.Printf("%s\n", formatter.FormatRuleList(rules))
			return nil
		},
	}

	cmd.Flags().StringVar(&plan, "plan", "", "Plan ID")
	_ = cmd.MarkFlagRequired("plan")

	return cmd
}

func newRulePreviewCmd(app *App) *cobra.Command {
	var plan string

	cmd := &cobra.Command{
		Use:   "preview <rule>",
		Short: "Show where a rule would place its activity, without writing",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			planID, err := resolvePlanID(ctx, app, plan)
			if err != nil {
				return err
			}
			id, err := resolveRuleID(ctx, app, planID, args[0])
			if err != nil {
				return err
			}

			rule, err := app.Distribution.GetRule(ctx, app.OrgID, id)
			if err != nil {
				return err
			}
			placements, err := app.Distribution.Preview(ctx, app.OrgID, id)
			if err != nil {
				return err
			}
			if app.JSON {
				return writeJSON(cmd, placements)
			}
			fmt.Printf("%s\n", formatter.FormatPlacements(rule.ActivityName, placements))
			return nil
		},
	}

	cmd.Flags().StringVar(&plan, "plan", "", "Plan ID")
	_ = cmd.MarkFlagRequired("plan")

	return cmd
}

func newRuleApplyCmd(app *App) *cobra.Command {
	var plan string

	cmd := &cobra.Command{
		Use:   "apply <rule>",
		Short: "Materialize a rule's placements onto meeting agendas",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			planID, err := resolvePlanID(ctx, app, plan)
			if err != nil {
				return err
			}
			id, err := resolveRuleID(ctx, app, planID, args[0])
			if err != nil {
				return err
			}

			rule, err := app.Distribution.GetRule(ctx, app.OrgID, id)
			if err != nil {
				return err
			}
			placements, err := app.Distribution.Apply(ctx, app.OrgID, id)
			if err != nil {
				return err
			}
			if app.JSON {
				return writeJSON(cmd, placements)
			}
			fmt.Printf("%s\n", formatter.FormatPlacements(rule.ActivityName, placements))
			return nil
		},
	}

	cmd.Flags().StringVar(&plan, "plan", "", "Plan ID")
	_ = cmd.MarkFlagRequired("plan")

	return cmd
}

func newRuleRemoveCmd(app *App) *cobra.Command {
	var plan string

	cmd := &cobra.Command{
		Use:   "remove <rule>",
		Short: "Delete a rule; already placed activities stay",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			planID, err := resolvePlanID(ctx, app, plan)
			if err != nil {
				return err
			}
			id, err := resolveRuleID(ctx, app, planID, args[0])
			if err != nil {
				return err
			}
			if err := app.Distribution.DeleteRule(ctx, app.OrgID, id); err != nil {
				return err
			}
			fmt.Println("Rule removed.")
			return nil
		},
	}

	cmd.Flags().StringVar(&plan, "plan", "", "Plan ID")
	_ = cmd.MarkFlagRequired("plan")

	return cmd
}
