package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/annafors/planera/internal/domain"
	"github.com/annafors/planera/internal/repository"
	"github.com/google/uuid"
)

type achievementService struct {
	achievements repository.AchievementRepo
	objectives   repository.ObjectiveRepo
	plans        repository.YearPlanRepo
	clock        Clock
	observer     UseCaseObserver
}

func NewAchievementService(
	achievements repository.AchievementRepo,
	objectives repository.ObjectiveRepo,
	plans repository.YearPlanRepo,
	clock Clock,
	observers ...UseCaseObserver,
) AchievementService {
	return &achievementService{
		achievements: achievements,
		objectives:   objectives,
		plans:        plans,
		clock:        clockOrWallClock(clock),
		observer:     useCaseObserverOrNoop(observers),
	}
}

// Grant records the objective for each participant in turn. Each insert
// stands alone: a duplicate reports already_achieved, any other failure
// reports failed, and neither stops the rest of the batch.
func (s *achievementService) Grant(ctx context.Context, orgID, actorID string, req GrantRequest) (outcomes []domain.GrantOutcome, err error) {
	startedAt := s.clock()
	fields := map[string]any{"org": orgID, "objective": req.ObjectiveID, "participants": len(req.ParticipantIDs)}
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "grant-achievements",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    fields,
		})
	}()

	if req.ObjectiveID == "" {
		return nil, fmt.Errorf("%w: objective is required", domain.ErrValidation)
	}
	if len(req.ParticipantIDs) == 0 {
		return nil, fmt.Errorf("%w: at least one participant is required", domain.ErrValidation)
	}
	if err = s.guardObjective(ctx, orgID, req.ObjectiveID); err != nil {
		return nil, err
	}

	now := s.clock()
	achievedDate := domain.DateOnly(now)
	if req.AchievedDate != nil {
		achievedDate = domain.DateOnly(*req.AchievedDate)
	}

	granted, alreadyAchieved, failed := 0, 0, 0
	var failures []string
	outcomes = make([]domain.GrantOutcome, 0, len(req.ParticipantIDs))
	for _, participantID := range req.ParticipantIDs {
		outcome := domain.GrantOutcome{ParticipantID: participantID, Status: domain.GrantGranted}

		a := &domain.ObjectiveAchievement{
			ID:                uuid.New().String(),
			OrgID:             orgID,
			ObjectiveID:       req.ObjectiveID,
			ParticipantID:     participantID,
			MeetingID:         req.MeetingID,
			AchievedDate:      achievedDate,
			AttributionSource: req.AttributionSource,
			Notes:             req.Notes,
			CreatedBy:         actorID,
			CreatedAt:         now,
		}
		switch createErr := s.achievements.Create(ctx, a); {
		case createErr == nil:
			granted++
		case errors.Is(createErr, domain.ErrConflict):
			outcome.Status = domain.GrantAlreadyAchieved
			alreadyAchieved++
		default:
			outcome.Status = domain.GrantFailed
			outcome.Error = createErr.Error()
			failed++
			failures = append(failures, fmt.Sprintf("%s: %v", participantID, createErr))
		}
		outcomes = append(outcomes, outcome)
	}
	fields["granted"] = granted
	fields["already_achieved"] = alreadyAchieved
	fields["failed"] = failed
	if len(failures) > 0 {
		fields["failures"] = failures
	}

	return outcomes, nil
}

func (s *achievementService) ListByObjective(ctx context.Context, orgID, objectiveID string) ([]*domain.ObjectiveAchievement, error) {
	if err := s.guardObjective(ctx, orgID, objectiveID); err != nil {
		return nil, err
	}
	return s.achievements.ListByObjective(ctx, orgID, objectiveID)
}

func (s *achievementService) ListByParticipant(ctx context.Context, orgID, participantID string) ([]*domain.ObjectiveAchievement, error) {
	return s.achievements.ListByParticipant(ctx, orgID, participantID)
}

func (s *achievementService) Revoke(ctx context.Context, orgID, id string) error {
	a, err := s.achievements.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := guardOrg(orgID, a.OrgID, "achievement"); err != nil {
		return err
	}
	return s.achievements.Delete(ctx, id)
}

func (s *achievementService) guardObjective(ctx context.Context, orgID, objectiveID string) error {
	o, err := s.objectives.GetByID(ctx, objectiveID)
	if err != nil {
		return err
	}
	plan, err := s.plans.GetByID(ctx, o.YearPlanID)
	if err != nil {
		return err
	}
	return guardOrg(orgID, plan.OrgID, "objective")
}
