package formatter

import (
	"fmt"
	"strings"

	"github.com/annafors/planera/internal/domain"
)

// FormatPlanList renders a styled year-plan list inside a bordered box.
func FormatPlanList(plans []*domain.YearPlan) string {
	headers := []string{"ID", "TITLE", "SEASON", "CADENCE", "DAY"}
	rows := make([][]string, 0, len(plans))

	for _, p := range plans {
		season := fmt.Sprintf("%s → %s",
			p.StartDate.Format(domain.DateLayout), p.EndDate.Format(domain.DateLayout))
		rows = append(rows, []string{
			TruncID(p.ID),
			Bold(p.Title),
			StyleFg.Render(season),
			cadenceBadge(p.Pattern),
			StyleBlue.Render(titleCase(p.MeetingWeekday)),
		})
	}

	return RenderBox("Year plans", RenderTable(headers, rows))
}

// PlanInspectData bundles everything the plan inspect view shows.
type PlanInspectData struct {
	Plan     *domain.YearPlan
	Periods  []*domain.Period
	Meetings []*domain.Meeting
}

// FormatPlanInspect renders the plan metadata panel with its period list.
func FormatPlanInspect(data PlanInspectData) string {
	var b strings.Builder
	p := data.Plan

	b.WriteString(StyleBold.Render(p.Title) + "\n")
	b.WriteString(cadenceBadge(p.Pattern) + "\n\n")

	b.WriteString(fmt.Sprintf("%s  %s\n", StyleDim.Render("UUID   "), TruncID(p.ID)))
	b.WriteString(fmt.Sprintf("%s  %s\n", StyleDim.Render("SEASON "),
		StyleFg.Render(fmt.Sprintf("%s → %s", HumanDate(p.StartDate), HumanDate(p.EndDate)))))
	b.WriteString(fmt.Sprintf("%s  %s\n", StyleDim.Render("DAY    "), StyleBlue.Render(titleCase(p.MeetingWeekday))))
	if p.DefaultLocation != "" {
		b.WriteString(fmt.Sprintf("%s  %s\n", StyleDim.Render("WHERE  "), StyleFg.Render(p.DefaultLocation)))
	}
	if len(p.Blackouts) > 0 {
		b.WriteString(fmt.Sprintf("%s  %s\n", StyleDim.Render("DARK   "), blackoutSummary(p.Blackouts)))
	}

	cancelled := 0
	for _, m := range data.Meetings {
		if m.IsCancelled {
			cancelled++
		}
	}
	b.WriteString(fmt.Sprintf("%s  %s\n", StyleDim.Render("SLOTS  "),
		StyleFg.Render(fmt.Sprintf("%d meetings, %d cancelled", len(data.Meetings), cancelled))))

	if len(data.Periods) > 0 {
		b.WriteString("\n" + Header("Periods") + "\n")
		for _, per := range data.Periods {
			b.WriteString(fmt.Sprintf("%s %s %s\n",
				StylePurple.Render("▪"),
				Bold(per.Title),
				Dim(fmt.Sprintf("%s → %s",
					per.StartDate.Format(domain.DateLayout), per.EndDate.Format(domain.DateLayout)))))
		}
	}

	return RenderBox("", strings.TrimRight(b.String(), "\n"))
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
}

func cadenceBadge(p domain.RecurrencePattern) string {
	switch p {
	case domain.PatternBiweekly:
		return StylePurple.Render("⟳ biweekly")
	default:
		return StyleBlue.Render("⟳ weekly")
	}
}

func blackoutSummary(blackouts []domain.BlackoutRange) string {
	parts := make([]string, 0, len(blackouts))
	for _, b := range blackouts {
		label := b.Label
		if label == "" {
			label = "blackout"
		}
		parts = append(parts, fmt.Sprintf("%s (%s → %s)", label,
			b.Start.Format(domain.DateLayout), b.End.Format(domain.DateLayout)))
	}
	return StyleYellow.Render(strings.Join(parts, ", "))
}
