package service

import (
	"context"
	"fmt"

	"github.com/annafors/planera/internal/domain"
	"github.com/annafors/planera/internal/repository"
	"github.com/google/uuid"
)

type meetingService struct {
	meetings   repository.MeetingRepo
	plans      repository.YearPlanRepo
	activities repository.MeetingActivityRepo
	objectives repository.ObjectiveRepo
	clock      Clock
}

func NewMeetingService(
	meetings repository.MeetingRepo,
	plans repository.YearPlanRepo,
	activities repository.MeetingActivityRepo,
	objectives repository.ObjectiveRepo,
	clock Clock,
) MeetingService {
	return &meetingService{
		meetings:   meetings,
		plans:      plans,
		activities: activities,
		objectives: objectives,
		clock:      clockOrWallClock(clock),
	}
}

func (s *meetingService) GetByID(ctx context.Context, orgID, id string) (*domain.Meeting, error) {
	m, err := s.meetings.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.guardPlan(ctx, orgID, m.YearPlanID); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *meetingService) ListByPlan(ctx context.Context, orgID, planID string) ([]*domain.Meeting, error) {
	if err := s.guardPlan(ctx, orgID, planID); err != nil {
		return nil, err
	}
	return s.meetings.ListByPlan(ctx, planID)
}

// Update changes the adjustable details of an upcoming meeting. The
// date itself is part of the generated calendar and does not move; past
// meetings reject every change.
func (s *meetingService) Update(ctx context.Context, orgID string, m *domain.Meeting) error {
	existing, err := s.GetByID(ctx, orgID, m.ID)
	if err != nil {
		return err
	}
	if err := guardUnlocked(existing, s.clock()); err != nil {
		return err
	}
	if err := domain.ValidateClockTime(m.StartTime, "start_time"); err != nil {
		return err
	}
	if err := domain.ValidateClockTime(m.EndTime, "end_time"); err != nil {
		return err
	}
	if m.DurationMinutes < 0 {
		return fmt.Errorf("%w: duration must not be negative", domain.ErrValidation)
	}

	existing.StartTime = m.StartTime
	existing.EndTime = m.EndTime
	existing.DurationMinutes = m.DurationMinutes
	existing.Location = m.Location
	existing.Theme = m.Theme
	existing.Notes = m.Notes
	existing.Metadata = m.Metadata
	existing.UpdatedAt = s.clock()
	return s.meetings.Update(ctx, existing)
}

// Cancel flags the meeting without deleting it; the calendar slot stays
// visible. Locked meetings cannot be cancelled after the fact.
func (s *meetingService) Cancel(ctx context.Context, orgID, id string) error {
	m, err := s.GetByID(ctx, orgID, id)
	if err != nil {
		return err
	}
	now := s.clock()
	if err := guardUnlocked(m, now); err != nil {
		return err
	}
	m.IsCancelled = true
	m.UpdatedAt = now
	return s.meetings.Update(ctx, m)
}

// Restore reinstates a cancelled meeting whose date has not yet passed.
func (s *meetingService) Restore(ctx context.Context, orgID, id string) error {
	m, err := s.GetByID(ctx, orgID, id)
	if err != nil {
		return err
	}
	now := s.clock()
	if err := guardUnlocked(m, now); err != nil {
		return err
	}
	if !m.IsCancelled {
		return nil
	}
	m.IsCancelled = false
	m.UpdatedAt = now
	return s.meetings.Update(ctx, m)
}

func (s *meetingService) AddActivity(ctx context.Context, orgID string, a *domain.MeetingActivity) error {
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	if err := a.Validate(); err != nil {
		return err
	}
	m, err := s.GetByID(ctx, orgID, a.MeetingID)
	if err != nil {
		return err
	}
	now := s.clock()
	if err := guardUnlocked(m, now); err != nil {
		return err
	}
	if err := s.checkObjectiveRefs(ctx, m.YearPlanID, a.ObjectiveIDs); err != nil {
		return err
	}

	a.CreatedAt = now
	a.UpdatedAt = now
	return s.activities.Create(ctx, a)
}

func (s *meetingService) UpdateActivity(ctx context.Context, orgID string, a *domain.MeetingActivity) error {
	existing, err := s.activities.GetByID(ctx, a.ID)
	if err != nil {
		return err
	}
	m, err := s.GetByID(ctx, orgID, existing.MeetingID)
	if err != nil {
		return err
	}
	now := s.clock()
	if err := guardUnlocked(m, now); err != nil {
		return err
	}
	if a.Name == "" {
		return fmt.Errorf("%w: activity name is required", domain.ErrValidation)
	}
	if a.DurationMinutes < 0 {
		return fmt.Errorf("%w: activity duration must not be negative", domain.ErrValidation)
	}
	if err := s.checkObjectiveRefs(ctx, m.YearPlanID, a.ObjectiveIDs); err != nil {
		return err
	}

	existing.Name = a.Name
	existing.Description = a.Description
	existing.DurationMinutes = a.DurationMinutes
	existing.SortOrder = a.SortOrder
	existing.ObjectiveIDs = a.ObjectiveIDs
	existing.Metadata = a.Metadata
	existing.UpdatedAt = now
	return s.activities.Update(ctx, existing)
}

func (s *meetingService) RemoveActivity(ctx context.Context, orgID, activityID string) error {
	existing, err := s.activities.GetByID(ctx, activityID)
	if err != nil {
		return err
	}
	m, err := s.GetByID(ctx, orgID, existing.MeetingID)
	if err != nil {
		return err
	}
	if err := guardUnlocked(m, s.clock()); err != nil {
		return err
	}
	return s.activities.Delete(ctx, activityID)
}

func (s *meetingService) ListActivities(ctx context.Context, orgID, meetingID string) ([]*domain.MeetingActivity, error) {
	if _, err := s.GetByID(ctx, orgID, meetingID); err != nil {
		return nil, err
	}
	return s.activities.ListByMeeting(ctx, meetingID)
}

// checkObjectiveRefs rejects objective links that point outside the
// meeting's own plan.
func (s *meetingService) checkObjectiveRefs(ctx context.Context, planID string, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	all, err := s.objectives.ListByPlan(ctx, planID)
	if err != nil {
		return err
	}
	known := make(map[string]bool, len(all))
	for _, o := range all {
		known[o.ID] = true
	}
	for _, id := range ids {
		if !known[id] {
			return fmt.Errorf("%w: objective %s does not belong to the meeting's plan", domain.ErrValidation, id)
		}
	}
	return nil
}

func (s *meetingService) guardPlan(ctx context.Context, orgID, planID string) error {
	plan, err := s.plans.GetByID(ctx, planID)
	if err != nil {
		return err
	}
	return guardOrg(orgID, plan.OrgID, "year plan")
}
