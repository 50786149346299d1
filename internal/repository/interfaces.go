package repository

import (
	"context"
	"time"

	"github.com/annafors/planera/internal/domain"
)

type YearPlanRepo interface {
	Create(ctx context.Context, p *domain.YearPlan) error
	GetByID(ctx context.Context, id string) (*domain.YearPlan, error)
	ListByOrg(ctx context.Context, orgID string) ([]*domain.YearPlan, error)
	Update(ctx context.Context, p *domain.YearPlan) error
	Delete(ctx context.Context, id string) error
}

type PeriodRepo interface {
	Create(ctx context.Context, p *domain.Period) error
	GetByID(ctx context.Context, id string) (*domain.Period, error)
	ListByPlan(ctx context.Context, planID string) ([]*domain.Period, error)
	Update(ctx context.Context, p *domain.Period) error
	Delete(ctx context.Context, id string) error
}

type ObjectiveRepo interface {
	Create(ctx context.Context, o *domain.Objective) error
	GetByID(ctx context.Context, id string) (*domain.Objective, error)
	ListByPlan(ctx context.Context, planID string) ([]*domain.Objective, error)
	ListByPeriod(ctx context.Context, periodID string) ([]*domain.Objective, error)
	ListChildren(ctx context.Context, parentID string) ([]*domain.Objective, error)
	Update(ctx context.Context, o *domain.Objective) error
	Delete(ctx context.Context, id string) error
}

type MeetingRepo interface {
	Create(ctx context.Context, m *domain.Meeting) error
	GetByID(ctx context.Context, id string) (*domain.Meeting, error)
	ListByPlan(ctx context.Context, planID string) ([]*domain.Meeting, error)
	ListByPeriod(ctx context.Context, periodID string) ([]*domain.Meeting, error)
	Update(ctx context.Context, m *domain.Meeting) error
	AssignPeriod(ctx context.Context, periodID string, meetingIDs []string, now time.Time) error
	UnassignPeriod(ctx context.Context, periodID string, now time.Time) error
	Delete(ctx context.Context, id string) error
}

type MeetingActivityRepo interface {
	Create(ctx context.Context, a *domain.MeetingActivity) error
	GetByID(ctx context.Context, id string) (*domain.MeetingActivity, error)
	ListByMeeting(ctx context.Context, meetingID string) ([]*domain.MeetingActivity, error)
	// CountBySeries returns per-meeting placement counts keyed by meeting ID
	// for one distribution series across a plan.
	CountBySeries(ctx context.Context, seriesID string) (map[string]int, error)
	Update(ctx context.Context, a *domain.MeetingActivity) error
	Delete(ctx context.Context, id string) error
}

type ActivityLibraryRepo interface {
	Create(ctx context.Context, item *domain.ActivityLibraryItem) error
	GetByID(ctx context.Context, id string) (*domain.ActivityLibraryItem, error)
	List(ctx context.Context, orgID string, includeInactive bool) ([]*domain.ActivityLibraryItem, error)
	Update(ctx context.Context, item *domain.ActivityLibraryItem) error
	// RecordUse increments times_used and stamps last_used_date.
	RecordUse(ctx context.Context, id string, usedOn, now time.Time) error
	Deactivate(ctx context.Context, id string, now time.Time) error
}

type DistributionRuleRepo interface {
	Create(ctx context.Context, r *domain.DistributionRule) error
	GetByID(ctx context.Context, id string) (*domain.DistributionRule, error)
	ListByPlan(ctx context.Context, planID string) ([]*domain.DistributionRule, error)
	Update(ctx context.Context, r *domain.DistributionRule) error
	Delete(ctx context.Context, id string) error
}

type AchievementRepo interface {
	// Create inserts one achievement; a uniqueness conflict on
	// (org, objective, participant) surfaces as domain.ErrConflict.
	Create(ctx context.Context, a *domain.ObjectiveAchievement) error
	GetByID(ctx context.Context, id string) (*domain.ObjectiveAchievement, error)
	ListByObjective(ctx context.Context, orgID, objectiveID string) ([]*domain.ObjectiveAchievement, error)
	ListByParticipant(ctx context.Context, orgID, participantID string) ([]*domain.ObjectiveAchievement, error)
	CountByObjective(ctx context.Context, objectiveID string) (int, error)
	Delete(ctx context.Context, id string) error
}

type ReminderRepo interface {
	Create(ctx context.Context, r *domain.Reminder) error
	GetByID(ctx context.Context, id string) (*domain.Reminder, error)
	ListByMeeting(ctx context.Context, meetingID string) ([]*domain.Reminder, error)
	// ListPending returns unsent reminders scheduled at or before the horizon.
	ListPending(ctx context.Context, horizon time.Time) ([]*domain.Reminder, error)
	MarkSent(ctx context.Context, id string, sentAt time.Time) error
	Delete(ctx context.Context, id string) error
}
