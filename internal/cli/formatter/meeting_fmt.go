package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/annafors/planera/internal/domain"
)

// MeetingStatusPill renders the derived state of a meeting slot.
func MeetingStatusPill(m *domain.Meeting, now time.Time) string {
	switch {
	case m.IsCancelled:
		return StyleRed.Render("● CANCELLED")
	case m.IsLocked(now):
		return StyleDim.Render("● PAST")
	default:
		return StyleGreen.Render("● OPEN")
	}
}

// FormatMeetingList renders the calendar of a plan.
func FormatMeetingList(meetings []*domain.Meeting, now time.Time) string {
	headers := []string{"ID", "DATE", "TIME", "STATUS", "PERIOD", "THEME"}
	rows := make([][]string, 0, len(meetings))

	for _, m := range meetings {
		period := Dim("--")
		if m.PeriodID != nil {
			period = TruncID(*m.PeriodID)
		}
		theme := Dim("--")
		if m.Theme != "" {
			theme = StylePurple.Render(m.Theme)
		}
		rows = append(rows, []string{
			TruncID(m.ID),
			StyleFg.Render(HumanDate(m.MeetingDate)),
			Dim(TimeSpan(m.StartTime, m.EndTime)),
			MeetingStatusPill(m, now),
			period,
			theme,
		})
	}

	return RenderBox("Meetings", RenderTable(headers, rows))
}

// FormatAgenda renders a meeting's activity list in sort order.
func FormatAgenda(m *domain.Meeting, activities []*domain.MeetingActivity, now time.Time) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("%s  %s\n", StyleBold.Render(HumanDate(m.MeetingDate)), MeetingStatusPill(m, now)))
	if m.Location != "" {
		b.WriteString(Dim(m.Location) + "  " + Dim(TimeSpan(m.StartTime, m.EndTime)) + "\n")
	}
	b.WriteString("\n")

	if len(activities) == 0 {
		b.WriteString(Dim("No activities planned"))
		return RenderBox("Agenda", strings.TrimRight(b.String(), "\n"))
	}

	for i, a := range activities {
		dur := ""
		if a.DurationMinutes > 0 {
			dur = Dim(fmt.Sprintf(" (%dm)", a.DurationMinutes))
		}
		series := ""
		if a.SeriesID != nil {
			series = StylePurple.Render(fmt.Sprintf(" #%d", a.SeriesOccurrence))
		}
		b.WriteString(fmt.Sprintf("%s %s%s%s\n", StyleHeader.Render(fmt.Sprintf("%2d.", i+1)), Bold(a.Name), dur, series))
		if a.Description != "" {
			b.WriteString("    " + Dim(a.Description) + "\n")
		}
		if len(a.ObjectiveIDs) > 0 {
			b.WriteString("    " + StyleBlue.Render(fmt.Sprintf("⊕ %d objectives", len(a.ObjectiveIDs))) + "\n")
		}
	}

	return RenderBox("Agenda", strings.TrimRight(b.String(), "\n"))
}
