package service

import (
	"context"
	"fmt"
	"time"

	"github.com/annafors/planera/internal/db"
	"github.com/annafors/planera/internal/distribution"
	"github.com/annafors/planera/internal/domain"
	"github.com/annafors/planera/internal/repository"
	"github.com/google/uuid"
)

type distributionService struct {
	rules      repository.DistributionRuleRepo
	plans      repository.YearPlanRepo
	periods    repository.PeriodRepo
	meetings   repository.MeetingRepo
	activities repository.MeetingActivityRepo
	uow        db.UnitOfWork
	clock      Clock
	observer   UseCaseObserver
}

func NewDistributionService(
	rules repository.DistributionRuleRepo,
	plans repository.YearPlanRepo,
	periods repository.PeriodRepo,
	meetings repository.MeetingRepo,
	activities repository.MeetingActivityRepo,
	uow db.UnitOfWork,
	clock Clock,
	observers ...UseCaseObserver,
) DistributionService {
	return &distributionService{
		rules:      rules,
		plans:      plans,
		periods:    periods,
		meetings:   meetings,
		activities: activities,
		uow:        uow,
		clock:      clockOrWallClock(clock),
		observer:   useCaseObserverOrNoop(observers),
	}
}

func (s *distributionService) CreateRule(ctx context.Context, orgID string, r *domain.DistributionRule) error {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	if err := r.Validate(); err != nil {
		return err
	}
	if err := s.guardPlan(ctx, orgID, r.YearPlanID); err != nil {
		return err
	}
	now := s.clock()
	r.CreatedAt = now
	r.UpdatedAt = now
	return s.rules.Create(ctx, r)
}

func (s *distributionService) GetRule(ctx context.Context, orgID, id string) (*domain.DistributionRule, error) {
	r, err := s.rules.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.guardPlan(ctx, orgID, r.YearPlanID); err != nil {
		return nil, err
	}
	return r, nil
}

func (s *distributionService) ListRules(ctx context.Context, orgID, planID string) ([]*domain.DistributionRule, error) {
	if err := s.guardPlan(ctx, orgID, planID); err != nil {
		return nil, err
	}
	return s.rules.ListByPlan(ctx, planID)
}

func (s *distributionService) DeleteRule(ctx context.Context, orgID, id string) error {
	if _, err := s.GetRule(ctx, orgID, id); err != nil {
		return err
	}
	return s.rules.Delete(ctx, id)
}

func (s *distributionService) Preview(ctx context.Context, orgID, ruleID string) ([]distribution.Placement, error) {
	rule, err := s.GetRule(ctx, orgID, ruleID)
	if err != nil {
		return nil, err
	}
	return s.plan(ctx, rule)
}

func (s *distributionService) Apply(ctx context.Context, orgID, ruleID string) (placements []distribution.Placement, err error) {
	startedAt := s.clock()
	fields := map[string]any{"org": orgID, "rule": ruleID}
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "apply-distribution-rule",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    fields,
		})
	}()

	rule, err := s.GetRule(ctx, orgID, ruleID)
	if err != nil {
		return nil, err
	}
	placements, err = s.plan(ctx, rule)
	if err != nil {
		return nil, err
	}
	fields["placements"] = len(placements)
	if len(placements) == 0 {
		return placements, nil
	}

	now := s.clock()
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txActivities := repository.NewSQLiteMeetingActivityRepo(tx)
		txLibrary := repository.NewSQLiteActivityLibraryRepo(tx)

		seriesID := rule.ID
		for _, p := range placements {
			a := &domain.MeetingActivity{
				ID:                uuid.New().String(),
				MeetingID:         p.MeetingID,
				ActivityLibraryID: rule.ActivityLibraryID,
				Name:              rule.ActivityName,
				SeriesID:          &seriesID,
				SeriesOccurrence:  p.Occurrence,
				CreatedAt:         now,
				UpdatedAt:         now,
			}
			if err := txActivities.Create(ctx, a); err != nil {
				return fmt.Errorf("placing %s on meeting %s: %w", rule.ActivityName, p.MeetingID, err)
			}
			if rule.ActivityLibraryID != nil {
				if err := txLibrary.RecordUse(ctx, *rule.ActivityLibraryID, p.Date, now); err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return placements, nil
}

// plan computes a rule's placements from the current calendar state:
// locked and cancelled meetings are excluded up front, and occurrences
// already materialized for this rule count against each unit's cap.
func (s *distributionService) plan(ctx context.Context, rule *domain.DistributionRule) ([]distribution.Placement, error) {
	all, err := s.meetings.ListByPlan(ctx, rule.YearPlanID)
	if err != nil {
		return nil, err
	}
	now := s.clock()

	var eligible []*domain.Meeting
	for _, m := range all {
		if m.IsCancelled || m.IsLocked(now) {
			continue
		}
		eligible = append(eligible, m)
	}

	toEligible := func(m *domain.Meeting) distribution.EligibleMeeting {
		return distribution.EligibleMeeting{ID: m.ID, Date: m.MeetingDate}
	}

	var units []distribution.ScopeUnit
	switch rule.Scope {
	case domain.ScopeYear:
		flat := make([]distribution.EligibleMeeting, 0, len(eligible))
		for _, m := range eligible {
			flat = append(flat, toEligible(m))
		}
		units = distribution.YearUnits(flat)
	case domain.ScopeMonth:
		flat := make([]distribution.EligibleMeeting, 0, len(eligible))
		for _, m := range eligible {
			flat = append(flat, toEligible(m))
		}
		units = distribution.MonthUnits(flat)
	case domain.ScopePeriod:
		periods, err := s.periods.ListByPlan(ctx, rule.YearPlanID)
		if err != nil {
			return nil, err
		}
		units = distribution.PeriodUnits(periods, eligible, toEligible)
	default:
		return nil, fmt.Errorf("%w: unknown distribution scope %q", domain.ErrValidation, rule.Scope)
	}

	// Occurrences already materialized count against the cap even when
	// their meeting has since locked or been cancelled, so the tally
	// runs over the full calendar rather than the eligible subset.
	perMeeting, err := s.activities.CountBySeries(ctx, rule.ID)
	if err != nil {
		return nil, err
	}
	existing := make(map[string]int)
	for _, m := range all {
		n := perMeeting[m.ID]
		if n == 0 {
			continue
		}
		switch rule.Scope {
		case domain.ScopeYear:
			existing["year"] += n
		case domain.ScopeMonth:
			existing[m.MeetingDate.Format("2006-01")] += n
		case domain.ScopePeriod:
			if m.PeriodID != nil {
				existing[*m.PeriodID] += n
			}
		}
	}

	return distribution.Plan(rule, units, existing), nil
}

func (s *distributionService) guardPlan(ctx context.Context, orgID, planID string) error {
	plan, err := s.plans.GetByID(ctx, planID)
	if err != nil {
		return err
	}
	return guardOrg(orgID, plan.OrgID, "year plan")
}
