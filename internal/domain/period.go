package domain

import (
	"fmt"
	"time"
)

// Period is a titled slice of a year plan (a term, a semester). Periods
// may overlap or leave gaps; containment in the plan range is not
// enforced at the storage level.
type Period struct {
	ID         string
	YearPlanID string
	Title      string
	StartDate  time.Time
	EndDate    time.Time
	SortOrder  int
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (p *Period) Validate() error {
	if p.Title == "" {
		return fmt.Errorf("%w: period title is required", ErrValidation)
	}
	if p.YearPlanID == "" {
		return fmt.Errorf("%w: period requires a year plan", ErrValidation)
	}
	if p.StartDate.IsZero() || p.EndDate.IsZero() {
		return fmt.Errorf("%w: period start and end dates are required", ErrValidation)
	}
	if p.EndDate.Before(p.StartDate) {
		return fmt.Errorf("%w: period end date %s precedes start date %s",
			ErrValidation, p.EndDate.Format(DateLayout), p.StartDate.Format(DateLayout))
	}
	return nil
}

// Contains reports whether d falls inside the period, inclusive.
func (p *Period) Contains(d time.Time) bool {
	day := DateOnly(d)
	return !day.Before(DateOnly(p.StartDate)) && !day.After(DateOnly(p.EndDate))
}
