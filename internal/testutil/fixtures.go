package testutil

import (
	"time"

	"github.com/annafors/planera/internal/domain"
	"github.com/google/uuid"
)

// TestOrg is the organization scope used by fixtures.
const TestOrg = "org-test"

// Date builds a UTC calendar date.
func Date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// YearPlan options
type PlanOption func(*domain.YearPlan)

func WithPattern(p domain.RecurrencePattern) PlanOption {
	return func(plan *domain.YearPlan) {
		plan.Pattern = p
	}
}

func WithBlackout(start, end time.Time, label string) PlanOption {
	return func(plan *domain.YearPlan) {
		plan.Blackouts = append(plan.Blackouts, domain.BlackoutRange{Start: start, End: end, Label: label})
	}
}

func WithAnchor(a domain.Anchor) PlanOption {
	return func(plan *domain.YearPlan) {
		plan.Anchors = append(plan.Anchors, a)
	}
}

func WithPlanRange(start, end time.Time) PlanOption {
	return func(plan *domain.YearPlan) {
		plan.StartDate = start
		plan.EndDate = end
	}
}

func WithWeekday(name string) PlanOption {
	return func(plan *domain.YearPlan) {
		plan.MeetingWeekday = name
	}
}

// NewTestPlan builds a weekly Tuesday season for September 2025.
func NewTestPlan(title string, opts ...PlanOption) *domain.YearPlan {
	now := time.Now().UTC()
	p := &domain.YearPlan{
		ID:              uuid.New().String(),
		OrgID:           TestOrg,
		Title:           title,
		StartDate:       Date(2025, 9, 2),
		EndDate:         Date(2025, 9, 30),
		MeetingWeekday:  "tuesday",
		Pattern:         domain.PatternWeekly,
		DefaultLocation: "Clubhouse",
		CreatedBy:       "leader-1",
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// NewTestPeriod builds a period covering the given range.
func NewTestPeriod(planID, title string, start, end time.Time) *domain.Period {
	now := time.Now().UTC()
	return &domain.Period{
		ID:         uuid.New().String(),
		YearPlanID: planID,
		Title:      title,
		StartDate:  start,
		EndDate:    end,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// Meeting options
type MeetingOption func(*domain.Meeting)

func WithMeetingPeriod(periodID string) MeetingOption {
	return func(m *domain.Meeting) {
		m.PeriodID = &periodID
	}
}

func WithCancelled() MeetingOption {
	return func(m *domain.Meeting) {
		m.IsCancelled = true
	}
}

// NewTestMeeting builds a meeting on the given date.
func NewTestMeeting(planID string, date time.Time, opts ...MeetingOption) *domain.Meeting {
	now := time.Now().UTC()
	m := &domain.Meeting{
		ID:          uuid.New().String(),
		YearPlanID:  planID,
		MeetingDate: date,
		StartTime:   "18:30",
		EndTime:     "20:00",
		Location:    "Clubhouse",
		Metadata:    map[string]any{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Objective options
type ObjectiveOption func(*domain.Objective)

func WithObjectiveParent(parentID string) ObjectiveOption {
	return func(o *domain.Objective) {
		o.ParentID = &parentID
	}
}

func WithObjectivePeriod(periodID string) ObjectiveOption {
	return func(o *domain.Objective) {
		o.PeriodID = &periodID
	}
}

// NewTestObjective builds an objective for the given plan.
func NewTestObjective(planID, title string, opts ...ObjectiveOption) *domain.Objective {
	now := time.Now().UTC()
	o := &domain.Objective{
		ID:         uuid.New().String(),
		YearPlanID: planID,
		Title:      title,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// NewTestLibraryItem builds an active library item.
func NewTestLibraryItem(name string) *domain.ActivityLibraryItem {
	now := time.Now().UTC()
	return &domain.ActivityLibraryItem{
		ID:        uuid.New().String(),
		OrgID:     TestOrg,
		Name:      name,
		Category:  "games",
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// NewTestRule builds a distribution rule for the given plan.
func NewTestRule(planID, activityName string, scope domain.DistributionScope, placement domain.PlacementRule, occurrences int) *domain.DistributionRule {
	now := time.Now().UTC()
	return &domain.DistributionRule{
		ID:                  uuid.New().String(),
		YearPlanID:          planID,
		ActivityName:        activityName,
		Scope:               scope,
		Placement:           placement,
		OccurrencesPerScope: occurrences,
		CreatedAt:           now,
		UpdatedAt:           now,
	}
}
