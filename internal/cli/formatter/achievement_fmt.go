package formatter

import (
	"github.com/annafors/planera/internal/domain"
)

// GrantOutcomePill colors a single grant outcome.
func GrantOutcomePill(status domain.GrantStatus) string {
	switch status {
	case domain.GrantGranted:
		return StyleGreen.Render("✔ granted")
	case domain.GrantAlreadyAchieved:
		return StyleYellow.Render("= already achieved")
	default:
		return StyleRed.Render("✘ failed")
	}
}

// FormatGrantOutcomes renders the per-participant result of a batch grant.
func FormatGrantOutcomes(outcomes []domain.GrantOutcome) string {
	headers := []string{"PARTICIPANT", "RESULT", "DETAIL"}
	rows := make([][]string, 0, len(outcomes))
	for _, out := range outcomes {
		detail := Dim("--")
		if out.Error != "" {
			detail = StyleRed.Render(out.Error)
		}
		rows = append(rows, []string{
			Bold(out.ParticipantID),
			GrantOutcomePill(out.Status),
			detail,
		})
	}
	return RenderBox("Grant results", RenderTable(headers, rows))
}

// FormatAchievementList renders recorded achievements.
func FormatAchievementList(title string, achievements []*domain.ObjectiveAchievement) string {
	headers := []string{"ID", "PARTICIPANT", "OBJECTIVE", "DATE", "SOURCE"}
	rows := make([][]string, 0, len(achievements))
	for _, a := range achievements {
		source := Dim("--")
		if a.AttributionSource != "" {
			source = StylePurple.Render(a.AttributionSource)
		}
		rows = append(rows, []string{
			TruncID(a.ID),
			Bold(a.ParticipantID),
			TruncID(a.ObjectiveID),
			StyleFg.Render(a.AchievedDate.Format(domain.DateLayout)),
			source,
		})
	}
	return RenderBox(title, RenderTable(headers, rows))
}

// FormatReminderList renders a meeting's reminder schedule.
func FormatReminderList(reminders []*domain.Reminder) string {
	headers := []string{"ID", "CHANNEL", "SCHEDULED", "STATE"}
	rows := make([][]string, 0, len(reminders))
	for _, r := range reminders {
		state := StyleYellow.Render("pending")
		if r.SentAt != nil {
			state = StyleGreen.Render("sent " + HumanTimestamp(*r.SentAt))
		}
		rows = append(rows, []string{
			TruncID(r.ID),
			StyleBlue.Render(string(r.Channel)),
			StyleFg.Render(HumanTimestamp(r.ScheduledAt)),
			state,
		})
	}
	return RenderBox("Reminders", RenderTable(headers, rows))
}
