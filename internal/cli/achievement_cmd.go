package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/annafors/planera/internal/cli/formatter"
	"github.com/annafors/planera/internal/domain"
	"github.com/annafors/planera/internal/service"
	"github.com/spf13/cobra"
)

func newAchievementCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "achievement",
		Short: "Record and inspect objective completions",
	}

	cmd.AddCommand(
		newAchievementGrantCmd(app),
		newAchievementListCmd(app),
		newAchievementRevokeCmd(app),
	)

	return cmd
}

func newAchievementGrantCmd(app *App) *cobra.Command {
	var plan, objective, participants, date, source, notes string

	cmd := &cobra.Command{
		Use:   "grant",
		Short: "Grant an objective to one or more participants",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			planID, err := resolvePlanID(ctx, app, plan)
			if err != nil {
				return err
			}
			objectiveID, err := resolveObjectiveID(ctx, app, planID, objective)
			if err != nil {
				return err
			}

			req := service.GrantRequest{
				ObjectiveID:       objectiveID,
				ParticipantIDs:    strings.Split(participants, ","),
				AttributionSource: source,
				Notes:             notes,
			}
			if date != "" {
				d, err := time.Parse(domain.DateLayout, date)
				if err != nil {
					return fmt.Errorf("invalid date %q: %w", date, err)
				}
				req.AchievedDate = &d
			}

			outcomes, err := app.Achievements.Grant(ctx, app.OrgID, app.ActorID, req)
			if err != nil {
				return err
			}
			if app.JSON {
				return writeJSON(cmd, outcomes)
			}
			fmt.Printf("%s\n", formatter.FormatGrantOutcomes(outcomes))
			return nil
		},
	}

	cmd.Flags().StringVar(&plan, "plan", "", "Plan ID")
	cmd.Flags().StringVar(&objective, "objective", "", "Objective ID")
	cmd.Flags().StringVar(&participants, "participants", "", "Comma-separated participant IDs")
	cmd.Flags().StringVar(&date, "date", "", "Achievement date (YYYY-MM-DD, default today)")
	cmd.Flags().StringVar(&source, "source", "", "Attribution source (meeting, camp, ...)")
	cmd.Flags().StringVar(&notes, "notes", "", "Free-form notes")
	_ = cmd.MarkFlagRequired("plan")
	_ = cmd.MarkFlagRequired("objective")
	_ = cmd.MarkFlagRequired("participants")

	return cmd
}

func newAchievementListCmd(app *App) *cobra.Command {
	var plan, objective, participant string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List achievements by objective or by participant",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			if participant != "" {
				list, err := app.Achievements.ListByParticipant(ctx, app.OrgID, participant)
				if err != nil {
					return err
				}
				if app.JSON {
					return writeJSON(cmd, list)
				}
				fmt.Printf("%s\n", formatter.FormatAchievementList("Achievements of "+participant, list))
				return nil
			}

			if objective == "" {
				return fmt.Errorf("either --objective or --participant is required")
			}
			planID, err := resolvePlanID(ctx, app, plan)
			if err != nil {
				return err
			}
			objectiveID, err := resolveObjectiveID(ctx, app, planID, objective)
			if err != nil {
				return err
			}
			list, err := app.Achievements.ListByObjective(ctx, app.OrgID, objectiveID)
			if err != nil {
				return err
			}
			if app.JSON {
				return writeJSON(cmd, list)
			}
			fmt.Printf("%s\n", formatter.FormatAchievementList("Achievements", list))
			return nil
		},
	}

	cmd.Flags().StringVar(&plan, "plan", "", "Plan ID (with --objective)")
	cmd.Flags().StringVar(&objective, "objective", "", "Objective ID")
	cmd.Flags().StringVar(&participant, "participant", "", "Participant ID")

	return cmd
}

func newAchievementRevokeCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "revoke <achievement-id>",
		Short: "Remove a recorded achievement",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Achievements.Revoke(context.Background(), app.OrgID, args[0]); err != nil {
				return err
			}
			fmt.Println("Achievement revoked.")
			return nil
		},
	}
}
