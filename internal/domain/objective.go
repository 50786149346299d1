package domain

import (
	"fmt"
	"time"
)

// Objective is one node of a plan's learning-objective forest. A node is
// optionally scoped to a period and optionally parented to another
// objective of the same plan; the application keeps the forest acyclic.
type Objective struct {
	ID          string
	YearPlanID  string
	PeriodID    *string
	ParentID    *string
	Title       string
	Description string
	Scope       string
	SortOrder   int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (o *Objective) Validate() error {
	if o.Title == "" {
		return fmt.Errorf("%w: objective title is required", ErrValidation)
	}
	if o.YearPlanID == "" {
		return fmt.Errorf("%w: objective requires a year plan", ErrValidation)
	}
	if o.ParentID != nil && *o.ParentID == o.ID {
		return fmt.Errorf("%w: objective cannot be its own parent", ErrValidation)
	}
	return nil
}

// WouldCycle walks the ancestor chain from candidateParent using the
// supplied lookup and reports whether nodeID appears in it. Used before
// accepting a parent_id change.
func WouldCycle(nodeID string, candidateParent *string, parentOf func(id string) (*string, bool)) bool {
	seen := map[string]bool{nodeID: true}
	cur := candidateParent
	for cur != nil {
		if seen[*cur] {
			return true
		}
		seen[*cur] = true
		next, ok := parentOf(*cur)
		if !ok {
			return false
		}
		cur = next
	}
	return false
}
