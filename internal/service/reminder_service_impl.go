package service

import (
	"context"
	"fmt"
	"time"

	"github.com/annafors/planera/internal/domain"
	"github.com/annafors/planera/internal/repository"
	"github.com/google/uuid"
)

type reminderService struct {
	reminders repository.ReminderRepo
	meetings  repository.MeetingRepo
	plans     repository.YearPlanRepo
	clock     Clock
}

func NewReminderService(
	reminders repository.ReminderRepo,
	meetings repository.MeetingRepo,
	plans repository.YearPlanRepo,
	clock Clock,
) ReminderService {
	return &reminderService{
		reminders: reminders,
		meetings:  meetings,
		plans:     plans,
		clock:     clockOrWallClock(clock),
	}
}

// Schedule creates the reminder row lead before the meeting starts.
// Nothing is delivered here; a polling worker owns delivery.
func (s *reminderService) Schedule(ctx context.Context, orgID, meetingID string, channel domain.ReminderChannel, lead time.Duration, message string) (*domain.Reminder, error) {
	if lead < 0 {
		return nil, fmt.Errorf("%w: reminder lead must not be negative", domain.ErrValidation)
	}
	m, err := s.guardMeeting(ctx, orgID, meetingID)
	if err != nil {
		return nil, err
	}
	if m.IsCancelled {
		return nil, fmt.Errorf("%w: meeting %s is cancelled", domain.ErrValidation, meetingID)
	}

	start := domain.DateOnly(m.MeetingDate)
	if m.StartTime != "" {
		t, err := time.Parse(domain.TimeLayout, m.StartTime)
		if err != nil {
			return nil, fmt.Errorf("%w: meeting start time %q", domain.ErrValidation, m.StartTime)
		}
		start = start.Add(time.Duration(t.Hour())*time.Hour + time.Duration(t.Minute())*time.Minute)
	}

	now := s.clock()
	scheduledAt := start.Add(-lead)
	if !scheduledAt.After(now) {
		return nil, fmt.Errorf("%w: reminder time %s is in the past", domain.ErrValidation, scheduledAt.Format(time.RFC3339))
	}

	r := &domain.Reminder{
		ID:            uuid.New().String(),
		MeetingID:     meetingID,
		Channel:       channel,
		ScheduledAt:   scheduledAt,
		CustomMessage: message,
		CreatedAt:     now,
	}
	if err := r.Validate(); err != nil {
		return nil, err
	}
	if err := s.reminders.Create(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}

func (s *reminderService) ListByMeeting(ctx context.Context, orgID, meetingID string) ([]*domain.Reminder, error) {
	if _, err := s.guardMeeting(ctx, orgID, meetingID); err != nil {
		return nil, err
	}
	return s.reminders.ListByMeeting(ctx, meetingID)
}

func (s *reminderService) ListPending(ctx context.Context, horizon time.Time) ([]*domain.Reminder, error) {
	return s.reminders.ListPending(ctx, horizon)
}

func (s *reminderService) MarkSent(ctx context.Context, id string) error {
	return s.reminders.MarkSent(ctx, id, s.clock())
}

func (s *reminderService) Delete(ctx context.Context, orgID, id string) error {
	r, err := s.reminders.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if _, err := s.guardMeeting(ctx, orgID, r.MeetingID); err != nil {
		return err
	}
	return s.reminders.Delete(ctx, id)
}

func (s *reminderService) guardMeeting(ctx context.Context, orgID, meetingID string) (*domain.Meeting, error) {
	m, err := s.meetings.GetByID(ctx, meetingID)
	if err != nil {
		return nil, err
	}
	plan, err := s.plans.GetByID(ctx, m.YearPlanID)
	if err != nil {
		return nil, err
	}
	if err := guardOrg(orgID, plan.OrgID, "meeting"); err != nil {
		return nil, err
	}
	return m, nil
}
