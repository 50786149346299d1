package cli

import (
	"context"
	"fmt"

	"github.com/annafors/planera/internal/cli/formatter"
	"github.com/annafors/planera/internal/domain"
	"github.com/spf13/cobra"
)

func resolveObjectiveID(ctx context.Context, app *App, planID, input string) (string, error) {
	objectives, err := app.Objectives.ListByPlan(ctx, app.OrgID, planID)
	if err != nil {
		return "", err
	}
	ids := make([]string, 0, len(objectives))
	for _, o := range objectives {
		ids = append(ids, o.ID)
	}
	return resolveID("objective", input, ids)
}

func newObjectiveCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "objective",
		Short: "Manage a plan's learning objectives",
	}

	cmd.AddCommand(
		newObjectiveAddCmd(app),
		newObjectiveTreeCmd(app),
		newObjectiveMoveCmd(app),
		newObjectiveRemoveCmd(app),
	)

	return cmd
}

func newObjectiveAddCmd(app *App) *cobra.Command {
	var plan, title, description, parent string
	var order int

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add an objective, optionally under a parent",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			planID, err := resolvePlanID(ctx, app, plan)
			if err != nil {
				return err
			}

			o := &domain.Objective{
				YearPlanID:  planID,
				Title:       title,
				Description: description,
				SortOrder:   order,
			}
			if parent != "" {
				parentID, err := resolveObjectiveID(ctx, app, planID, parent)
				if err != nil {
					return err
				}
				o.ParentID = &parentID
			}
			if err := app.Objectives.Create(ctx, app.OrgID, o); err != nil {
				return err
			}
			fmt.Printf("Added objective %s\n", o.Title)
			return nil
		},
	}

	cmd.Flags().StringVar(&plan, "plan", "", "Plan ID")
	cmd.Flags().StringVar(&title, "title", "", "Objective title")
	cmd.Flags().StringVar(&description, "desc", "", "Objective description")
	cmd.Flags().StringVar(&parent, "parent", "", "Parent objective ID")
	cmd.Flags().IntVar(&order, "order", 0, "Sort order among siblings")
	_ = cmd.MarkFlagRequired("plan")
	_ = cmd.MarkFlagRequired("title")

	return cmd
}

func newObjectiveTreeCmd(app *App) *cobra.Command {
	var plan string

	cmd := &cobra.Command{
		Use:   "tree",
		Short: "Show a plan's objective forest with achievement counts",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			planID, err := resolvePlanID(ctx, app, plan)
			if err != nil {
				return err
			}
			objectives, err := app.Objectives.ListByPlan(ctx, app.OrgID, planID)
			if err != nil {
				return err
			}
			if app.JSON {
				return writeJSON(cmd, objectives)
			}

			achieved := make(map[string]int, len(objectives))
			for _, o := range objectives {
				list, err := app.Achievements.ListByObjective(ctx, app.OrgID, o.ID)
				if err != nil {
					return err
				}
				achieved[o.ID] = len(list)
			}

			fmt.Printf("%s\n", formatter.FormatObjectiveTree(objectives, achieved))
			return nil
		},
	}

	cmd.Flags().StringVar(&plan, "plan", "", "Plan ID")
	_ = cmd.MarkFlagRequired("plan")

	return cmd
}

func newObjectiveMoveCmd(app *App) *cobra.Command {
	var plan, parent string

	cmd := &cobra.Command{
		Use:   "move <objective>",
		Short: "Re-parent an objective (empty --parent makes it a root)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			planID, err := resolvePlanID(ctx, app, plan)
			if err != nil {
				return err
			}
			id, err := resolveObjectiveID(ctx, app, planID, args[0])
			if err != nil {
				return err
			}
			o, err := app.Objectives.GetByID(ctx, app.OrgID, id)
			if err != nil {
				return err
			}

			o.ParentID = nil
			if parent != "" {
				parentID, err := resolveObjectiveID(ctx, app, planID, parent)
				if err != nil {
					return err
				}
				o.ParentID = &parentID
			}
			if err := app.Objectives.Update(ctx, app.OrgID, o); err != nil {
				return err
			}
			fmt.Printf("Moved objective %s\n", o.Title)
			return nil
		},
	}

	cmd.Flags().StringVar(&plan, "plan", "", "Plan ID")
	cmd.Flags().StringVar(&parent, "parent", "", "New parent objective ID")
	_ = cmd.MarkFlagRequired("plan")

	return cmd
}

func newObjectiveRemoveCmd(app *App) *cobra.Command {
	var plan string

	cmd := &cobra.Command{
		Use:   "remove <objective>",
		Short: "Delete an objective, re-parenting its children",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			planID, err := resolvePlanID(ctx, app, plan)
			if err != nil {
				return err
			}
			id, err := resolveObjectiveID(ctx, app, planID, args[0])
			if err != nil {
				return err
			}
			if err := app.Objectives.Delete(ctx, app.OrgID, id); err != nil {
				return err
			}
			fmt.Println("Objective removed.")
			return nil
		},
	}

	cmd.Flags().StringVar(&plan, "plan", "", "Plan ID")
	_ = cmd.MarkFlagRequired("plan")

	return cmd
}
