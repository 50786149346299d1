package formatter

import (
	"fmt"

	"github.com/annafors/planera/internal/distribution"
	"github.com/annafors/planera/internal/domain"
)

// FormatRuleList renders a plan's distribution rules.
func FormatRuleList(rules []*domain.DistributionRule) string {
	headers := []string{"ID", "ACTIVITY", "SCOPE", "PLACEMENT", "PER SCOPE"}
	rows := make([][]string, 0, len(rules))

	for _, r := range rules {
		rows = append(rows, []string{
			TruncID(r.ID),
			Bold(r.ActivityName),
			StyleBlue.Render(string(r.Scope)),
			StylePurple.Render(string(r.Placement)),
			StyleFg.Render(fmt.Sprintf("%d", r.OccurrencesPerScope)),
		})
	}

	return RenderBox("Distribution rules", RenderTable(headers, rows))
}

// FormatPlacements renders the outcome of a rule preview or apply.
func FormatPlacements(activityName string, placements []distribution.Placement) string {
	if len(placements) == 0 {
		return RenderBox("Placements", Dim("Nothing to place: every scope unit is full or has no open meetings"))
	}

	headers := []string{"SCOPE", "DATE", "OCCURRENCE", "MEETING"}
	rows := make([][]string, 0, len(placements))
	for _, p := range placements {
		rows = append(rows, []string{
			StyleBlue.Render(p.ScopeKey),
			StyleFg.Render(HumanDate(p.Date)),
			StylePurple.Render(fmt.Sprintf("#%d", p.Occurrence)),
			TruncID(p.MeetingID),
		})
	}

	title := fmt.Sprintf("%s: %d placements", activityName, len(placements))
	return RenderBox(title, RenderTable(headers, rows))
}
