package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/annafors/planera/internal/cli/formatter"
	"github.com/annafors/planera/internal/domain"
	"github.com/annafors/planera/internal/service"
	"github.com/spf13/cobra"
)

func resolveLibraryID(ctx context.Context, app *App, input string) (string, error) {
	items, err := app.Library.List(ctx, app.OrgID, service.LibraryFilter{IncludeInactive: true})
	if err != nil {
		return "", err
	}

	// Names are the natural handle for catalog entries.
	for _, item := range items {
		if strings.EqualFold(item.Name, input) {
			return item.ID, nil
		}
	}

	ids := make([]string, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ID)
	}
	return resolveID("library item", input, ids)
}

func newLibraryCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "library",
		Short: "Manage the reusable activity catalog",
	}

	cmd.AddCommand(
		newLibraryAddCmd(app),
		newLibraryListCmd(app),
		newLibraryRateCmd(app),
		newLibraryRetireCmd(app),
	)

	return cmd
}

func newLibraryAddCmd(app *App) *cobra.Command {
	var name, category, tags string
	var minDur, maxDur int

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add an activity to the catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			item := &domain.ActivityLibraryItem{
				OrgID:              app.OrgID,
				Name:               name,
				Category:           category,
				MinDurationMinutes: minDur,
				MaxDurationMinutes: maxDur,
			}
			if tags != "" {
				item.Tags = strings.Split(tags, ",")
			}
			if err := app.Library.Create(context.Background(), item); err != nil {
				return err
			}
			fmt.Printf("Added %s to the library\n", item.Name)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Activity name")
	cmd.Flags().StringVar(&category, "category", "", "Category (games, crafts, ...)")
	cmd.Flags().StringVar(&tags, "tags", "", "Comma-separated tags")
	cmd.Flags().IntVar(&minDur, "min", 0, "Minimum duration in minutes")
	cmd.Flags().IntVar(&maxDur, "max", 0, "Maximum duration in minutes")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newLibraryListCmd(app *App) *cobra.Command {
	var all bool
	var category, tag string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List catalog activities",
		RunE: func(cmd *cobra.Command, args []string) error {
			filter := service.LibraryFilter{
				Category:        category,
				Tag:             tag,
				IncludeInactive: all,
			}
			items, err := app.Library.List(context.Background(), app.OrgID, filter)
			if err != nil {
				return err
			}
			if app.JSON {
				return writeJSON(cmd, items)
			}
			if len(items) == 0 {
				fmt.Println("The library is empty.")
				return nil
			}
			fmt.Printf("%s\n", formatter.FormatLibraryList(items))
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "Include retired activities")
	cmd.Flags().StringVar(&category, "category", "", "Only this category")
	cmd.Flags().StringVar(&tag, "tag", "", "Only activities carrying this tag")

	return cmd
}

func newLibraryRateCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "rate <item> <rating>",
		Short: "Rate an activity from 1 to 5",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveLibraryID(ctx, app, args[0])
			if err != nil {
				return err
			}
			rating, err := strconv.ParseFloat(args[1], 64)
			if err != nil {
				return fmt.Errorf("invalid rating %q: %w", args[1], err)
			}
			if err := app.Library.RecordRating(ctx, app.OrgID, id, rating); err != nil {
				return err
			}
			fmt.Println("Rating recorded.")
			return nil
		},
	}
}

func newLibraryRetireCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "retire <item>",
		Short: "Retire an activity (soft delete, history kept)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveLibraryID(ctx, app, args[0])
			if err != nil {
				return err
			}
			if err := app.Library.Deactivate(ctx, app.OrgID, id); err != nil {
				return err
			}
			fmt.Println("Activity retired.")
			return nil
		},
	}
}
