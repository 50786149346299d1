package domain

import (
	"fmt"
	"time"
)

// Meeting is one dated entry of a plan's calendar. Meetings are created
// in bulk at plan creation and become immutable once their date has
// passed; lock state is derived, never stored.
type Meeting struct {
	ID              string
	YearPlanID      string
	PeriodID        *string
	MeetingDate     time.Time
	StartTime       string // HH:MM, empty if unset
	EndTime         string
	DurationMinutes int
	Location        string
	IsCancelled     bool
	AnchorID        *string
	Theme           string
	Metadata        map[string]any
	Notes           string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// IsLocked reports whether the meeting's calendar day is strictly before
// now's calendar day. Recomputed per request; there is no stored flag
// and no lock/unlock transition.
func (m *Meeting) IsLocked(now time.Time) bool {
	return DateOnly(m.MeetingDate).Before(DateOnly(now))
}

func (m *Meeting) Validate() error {
	if m.YearPlanID == "" {
		return fmt.Errorf("%w: meeting requires a year plan", ErrValidation)
	}
	if m.MeetingDate.IsZero() {
		return fmt.Errorf("%w: meeting date is required", ErrValidation)
	}
	if err := ValidateClockTime(m.StartTime, "start_time"); err != nil {
		return err
	}
	if err := ValidateClockTime(m.EndTime, "end_time"); err != nil {
		return err
	}
	if m.DurationMinutes < 0 {
		return fmt.Errorf("%w: duration must not be negative", ErrValidation)
	}
	return nil
}
