package domain

import (
	"fmt"
	"time"
)

// BlackoutRange is an inclusive date interval during which regular
// meetings are auto-cancelled.
type BlackoutRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
	Label string    `json:"label,omitempty"`
}

// Contains reports whether d falls inside the range, inclusive on both ends.
func (b BlackoutRange) Contains(d time.Time) bool {
	day := DateOnly(d)
	return !day.Before(DateOnly(b.Start)) && !day.After(DateOnly(b.End))
}

// Anchor is a plan-level, date-specific override that can cancel or
// customize a generated meeting (holiday, camp, special event).
type Anchor struct {
	ID       string     `json:"id"`
	Date     time.Time  `json:"date"`
	Type     AnchorType `json:"type"`
	Theme    string     `json:"theme,omitempty"`
	Location string     `json:"location,omitempty"`
}

type YearPlan struct {
	ID              string
	OrgID           string
	Title           string
	StartDate       time.Time
	EndDate         time.Time
	MeetingWeekday  string
	Pattern         RecurrencePattern
	DefaultLocation string
	Blackouts       []BlackoutRange
	Anchors         []Anchor
	Settings        map[string]any
	CreatedBy       string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Validate checks the plan definition before any write.
func (p *YearPlan) Validate() error {
	if p.Title == "" {
		return fmt.Errorf("%w: plan title is required", ErrValidation)
	}
	if p.StartDate.IsZero() || p.EndDate.IsZero() {
		return fmt.Errorf("%w: plan start and end dates are required", ErrValidation)
	}
	if p.EndDate.Before(p.StartDate) {
		return fmt.Errorf("%w: plan end date %s precedes start date %s",
			ErrValidation, p.EndDate.Format(DateLayout), p.StartDate.Format(DateLayout))
	}
	if !ValidRecurrencePatterns[string(p.Pattern)] {
		return fmt.Errorf("%w: unknown recurrence pattern %q", ErrValidation, p.Pattern)
	}
	if _, err := ParseWeekday(p.MeetingWeekday); err != nil {
		return err
	}
	for i, b := range p.Blackouts {
		if b.End.Before(b.Start) {
			return fmt.Errorf("%w: blackout %d: end date precedes start date", ErrValidation, i)
		}
	}
	for i, a := range p.Anchors {
		if a.Date.IsZero() {
			return fmt.Errorf("%w: anchor %d: date is required", ErrValidation, i)
		}
		if !ValidAnchorTypes[string(a.Type)] {
			return fmt.Errorf("%w: anchor %d: unknown type %q", ErrValidation, i, a.Type)
		}
	}
	return nil
}
