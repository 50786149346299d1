package domain

import (
	"fmt"
	"time"
)

// DistributionRule declares how often a named activity recurs within
// each unit of its scope, and where inside the unit it lands.
type DistributionRule struct {
	ID                  string
	YearPlanID          string
	ActivityLibraryID   *string
	ActivityName        string
	Scope               DistributionScope
	Placement           PlacementRule
	OccurrencesPerScope int
	Settings            map[string]any
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

func (r *DistributionRule) Validate() error {
	if r.YearPlanID == "" {
		return fmt.Errorf("%w: rule requires a year plan", ErrValidation)
	}
	if r.ActivityName == "" {
		return fmt.Errorf("%w: rule activity name is required", ErrValidation)
	}
	if !ValidDistributionScopes[string(r.Scope)] {
		return fmt.Errorf("%w: unknown distribution scope %q", ErrValidation, r.Scope)
	}
	if !ValidPlacementRules[string(r.Placement)] {
		return fmt.Errorf("%w: unknown placement rule %q", ErrValidation, r.Placement)
	}
	if r.OccurrencesPerScope < 1 {
		return fmt.Errorf("%w: occurrences per scope must be at least 1", ErrValidation)
	}
	return nil
}
