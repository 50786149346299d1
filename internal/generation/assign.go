package generation

import "github.com/annafors/planera/internal/domain"

// AssignablePeriodMeetings applies the period auto-assignment policy:
// a meeting is claimed by a new period when it belongs to the same plan,
// its date falls inside the period's range, and no earlier period has
// claimed it (first writer wins; already-linked meetings are never
// reassigned). Returns the claimed meeting IDs in input order.
func AssignablePeriodMeetings(period *domain.Period, meetings []*domain.Meeting) []string {
	var ids []string
	for _, m := range meetings {
		if m.YearPlanID != period.YearPlanID {
			continue
		}
		if m.PeriodID != nil {
			continue
		}
		if !period.Contains(m.MeetingDate) {
			continue
		}
		ids = append(ids, m.ID)
	}
	return ids
}
