package service

import (
	"context"
	"time"

	"github.com/annafors/planera/internal/distribution"
	"github.com/annafors/planera/internal/domain"
)

// PlanCreateResult holds the outcome of an atomic plan creation.
type PlanCreateResult struct {
	Plan         *domain.YearPlan
	MeetingCount int
}

type PlanService interface {
	// Create validates the season definition, generates the full
	// meeting calendar, and persists plan plus meetings atomically.
	Create(ctx context.Context, p *domain.YearPlan) (*PlanCreateResult, error)
	GetByID(ctx context.Context, orgID, id string) (*domain.YearPlan, error)
	List(ctx context.Context, orgID string) ([]*domain.YearPlan, error)
	Update(ctx context.Context, orgID string, p *domain.YearPlan) error
	Delete(ctx context.Context, orgID, id string) error
}

type PeriodService interface {
	// Create inserts the period and claims unassigned meetings in its
	// date range within one transaction.
	Create(ctx context.Context, orgID string, p *domain.Period) (claimed int, err error)
	GetByID(ctx context.Context, orgID, id string) (*domain.Period, error)
	ListByPlan(ctx context.Context, orgID, planID string) ([]*domain.Period, error)
	Update(ctx context.Context, orgID string, p *domain.Period) error
	// Delete unlinks the period's meetings, never cascade-deletes them.
	Delete(ctx context.Context, orgID, id string) error
}

type ObjectiveService interface {
	Create(ctx context.Context, orgID string, o *domain.Objective) error
	GetByID(ctx context.Context, orgID, id string) (*domain.Objective, error)
	ListByPlan(ctx context.Context, orgID, planID string) ([]*domain.Objective, error)
	Update(ctx context.Context, orgID string, o *domain.Objective) error
	Delete(ctx context.Context, orgID, id string) error
}

type MeetingService interface {
	GetByID(ctx context.Context, orgID, id string) (*domain.Meeting, error)
	ListByPlan(ctx context.Context, orgID, planID string) ([]*domain.Meeting, error)
	// Update rejects any change to a locked meeting.
	Update(ctx context.Context, orgID string, m *domain.Meeting) error
	Cancel(ctx context.Context, orgID, id string) error
	// Restore clears the cancelled flag on an upcoming meeting.
	Restore(ctx context.Context, orgID, id string) error

	AddActivity(ctx context.Context, orgID string, a *domain.MeetingActivity) error
	UpdateActivity(ctx context.Context, orgID string, a *domain.MeetingActivity) error
	RemoveActivity(ctx context.Context, orgID, activityID string) error
	ListActivities(ctx context.Context, orgID, meetingID string) ([]*domain.MeetingActivity, error)
}

// LibraryFilter narrows a catalog listing. Zero value lists active items.
type LibraryFilter struct {
	Category        string
	Tag             string
	IncludeInactive bool
}

type LibraryService interface {
	Create(ctx context.Context, item *domain.ActivityLibraryItem) error
	GetByID(ctx context.Context, orgID, id string) (*domain.ActivityLibraryItem, error)
	List(ctx context.Context, orgID string, filter LibraryFilter) ([]*domain.ActivityLibraryItem, error)
	Update(ctx context.Context, orgID string, item *domain.ActivityLibraryItem) error
	RecordRating(ctx context.Context, orgID, id string, rating float64) error
	Deactivate(ctx context.Context, orgID, id string) error
}

type DistributionService interface {
	CreateRule(ctx context.Context, orgID string, r *domain.DistributionRule) error
	GetRule(ctx context.Context, orgID, id string) (*domain.DistributionRule, error)
	ListRules(ctx context.Context, orgID, planID string) ([]*domain.DistributionRule, error)
	DeleteRule(ctx context.Context, orgID, id string) error

	// Preview computes placements without writing anything.
	Preview(ctx context.Context, orgID, ruleID string) ([]distribution.Placement, error)
	// Apply materializes placements as meeting activities, skipping
	// locked meetings and respecting the per-scope occurrence cap.
	Apply(ctx context.Context, orgID, ruleID string) ([]distribution.Placement, error)
}

// GrantRequest is one batch grant of an objective to many participants.
type GrantRequest struct {
	ObjectiveID       string
	ParticipantIDs    []string
	MeetingID         *string
	AchievedDate      *time.Time
	AttributionSource string
	Notes             string
}

type AchievementService interface {
	// Grant processes participants independently: duplicates are
	// reported as already achieved, other failures are logged and
	// skipped, and the rest commit. Never all-or-nothing.
	Grant(ctx context.Context, orgID, actorID string, req GrantRequest) ([]domain.GrantOutcome, error)
	ListByObjective(ctx context.Context, orgID, objectiveID string) ([]*domain.ObjectiveAchievement, error)
	ListByParticipant(ctx context.Context, orgID, participantID string) ([]*domain.ObjectiveAchievement, error)
	Revoke(ctx context.Context, orgID, id string) error
}

type ReminderService interface {
	// Schedule creates a reminder record; lead is how long before the
	// meeting's start the reminder fires.
	Schedule(ctx context.Context, orgID, meetingID string, channel domain.ReminderChannel, lead time.Duration, message string) (*domain.Reminder, error)
	ListByMeeting(ctx context.Context, orgID, meetingID string) ([]*domain.Reminder, error)
	ListPending(ctx context.Context, horizon time.Time) ([]*domain.Reminder, error)
	MarkSent(ctx context.Context, id string) error
	Delete(ctx context.Context, orgID, id string) error
}
