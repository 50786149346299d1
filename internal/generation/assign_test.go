package generation

import (
	"testing"
	"time"

	"github.com/annafors/planera/internal/domain"
	"github.com/stretchr/testify/assert"
)

func meeting(id, planID string, d time.Time, periodID *string) *domain.Meeting {
	return &domain.Meeting{ID: id, YearPlanID: planID, MeetingDate: d, PeriodID: periodID}
}

func TestAssignablePeriodMeetings_FirstUnassignedWins(t *testing.T) {
	period := &domain.Period{
		ID: "per-1", YearPlanID: "plan-1",
		StartDate: date(2025, 9, 1), EndDate: date(2025, 10, 31),
	}
	other := "per-0"

	meetings := []*domain.Meeting{
		meeting("m1", "plan-1", date(2025, 9, 2), nil),
		meeting("m2", "plan-1", date(2025, 9, 9), &other), // already claimed
		meeting("m3", "plan-1", date(2025, 11, 4), nil),   // outside range
		meeting("m4", "plan-2", date(2025, 9, 16), nil),   // different plan
		meeting("m5", "plan-1", date(2025, 10, 31), nil),  // inclusive end
	}

	got := AssignablePeriodMeetings(period, meetings)
	assert.Equal(t, []string{"m1", "m5"}, got)
}

func TestAssignablePeriodMeetings_EmptyWhenNothingEligible(t *testing.T) {
	period := &domain.Period{
		ID: "per-1", YearPlanID: "plan-1",
		StartDate: date(2026, 1, 1), EndDate: date(2026, 1, 31),
	}
	claimed := "per-9"
	got := AssignablePeriodMeetings(period, []*domain.Meeting{
		meeting("m1", "plan-1", date(2026, 1, 7), &claimed),
	})
	assert.Empty(t, got)
}
