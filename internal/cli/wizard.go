package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/annafors/planera/internal/cli/formatter"
	"github.com/annafors/planera/internal/domain"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// planeraHuhTheme returns a custom huh theme using the existing Gruvbox palette.
func planeraHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

func validateWizardDate(s string) error {
	if _, err := time.Parse(domain.DateLayout, s); err != nil {
		return fmt.Errorf("use YYYY-MM-DD")
	}
	return nil
}

// runPlanWizard walks through the season definition interactively and
// creates the plan with its generated calendar.
func runPlanWizard(ctx context.Context, app *App) error {
	var title, start, end, weekday, pattern, location string

	weekdayOptions := []huh.Option[string]{
		huh.NewOption("Monday", "monday"),
		huh.NewOption("Tuesday", "tuesday"),
		huh.NewOption("Wednesday", "wednesday"),
		huh.NewOption("Thursday", "thursday"),
		huh.NewOption("Friday", "friday"),
		huh.NewOption("Saturday", "saturday"),
		huh.NewOption("Sunday", "sunday"),
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Plan title").
				Placeholder("Autumn 2025").
				Value(&title),
			huh.NewInput().
				Title("Season start (YYYY-MM-DD)").
				Validate(validateWizardDate).
				Value(&start),
			huh.NewInput().
				Title("Season end (YYYY-MM-DD)").
				Validate(validateWizardDate).
				Value(&end),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Meeting day").
				Options(weekdayOptions...).
				Value(&weekday),
			huh.NewSelect[string]().
				Title("Cadence").
				Options(
					huh.NewOption("Every week", "weekly"),
					huh.NewOption("Every other week", "biweekly"),
				).
				Value(&pattern),
			huh.NewInput().
				Title("Default location").
				Placeholder("Clubhouse").
				Value(&location),
		),
	).WithTheme(planeraHuhTheme()).WithShowHelp(false)

	if err := form.Run(); err != nil {
		return err
	}
	if location == "" {
		location = app.DefaultLocation
	}

	startDate, err := time.Parse(domain.DateLayout, start)
	if err != nil {
		return fmt.Errorf("invalid start date %q: %w", start, err)
	}
	endDate, err := time.Parse(domain.DateLayout, end)
	if err != nil {
		return fmt.Errorf("invalid end date %q: %w", end, err)
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
	result, err := app.Plans.Create(ctx, p)
	if err != nil {
		return err
	}

	fmt.Printf("Created plan %s with %d meetings\n", p.Title, result.MeetingCount)
	return nil
}
