package service

import (
	"context"

	"github.com/annafors/planera/internal/db"
	"github.com/annafors/planera/internal/domain"
	"github.com/annafors/planera/internal/generation"
	"github.com/annafors/planera/internal/repository"
	"github.com/google/uuid"
)

type periodService struct {
	periods  repository.PeriodRepo
	plans    repository.YearPlanRepo
	meetings repository.MeetingRepo
	uow      db.UnitOfWork
	clock    Clock
}

func NewPeriodService(
	periods repository.PeriodRepo,
	plans repository.YearPlanRepo,
	meetings repository.MeetingRepo,
	uow db.UnitOfWork,
	clock Clock,
) PeriodService {
	return &periodService{
		periods:  periods,
		plans:    plans,
		meetings: meetings,
		uow:      uow,
		clock:    clockOrWallClock(clock),
	}
}

func (s *periodService) Create(ctx context.Context, orgID string, p *domain.Period) (int, error) {
	if err := p.Validate(); err != nil {
		return 0, err
	}
	if err := s.guardPlan(ctx, orgID, p.YearPlanID); err != nil {
		return 0, err
	}

	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	now := s.clock()
	p.CreatedAt = now
	p.UpdatedAt = now

	// Insert and claim run in one transaction so a reader never sees
	// the period without its meetings. Claiming re-checks period_id
	// IS NULL in the UPDATE itself, so overlapping periods race on
	// "first unassigned wins" and nothing is ever reassigned.
	var claimed int
	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txPeriods := repository.NewSQLitePeriodRepo(tx)
		txMeetings := repository.NewSQLiteMeetingRepo(tx)

		if err := txPeriods.Create(ctx, p); err != nil {
			return err
		}

		meetings, err := txMeetings.ListByPlan(ctx, p.YearPlanID)
		if err != nil {
			return err
		}
		ids := generation.AssignablePeriodMeetings(p, meetings)
		if err := txMeetings.AssignPeriod(ctx, p.ID, ids, now); err != nil {
			return err
		}
		claimed = len(ids)
		return nil
	})
	if err != nil {
		return 0, err
	}
	return claimed, nil
}

func (s *periodService) GetByID(ctx context.Context, orgID, id string) (*domain.Period, error) {
	p, err := s.periods.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.guardPlan(ctx, orgID, p.YearPlanID); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *periodService) ListByPlan(ctx context.Context, orgID, planID string) ([]*domain.Period, error) {
	if err := s.guardPlan(ctx, orgID, planID); err != nil {
		return nil, err
	}
	return s.periods.ListByPlan(ctx, planID)
}

func (s *periodService) Update(ctx context.Context, orgID string, p *domain.Period) error {
	existing, err := s.GetByID(ctx, orgID, p.ID)
	if err != nil {
		return err
	}
	p.YearPlanID = existing.YearPlanID
	if err := p.Validate(); err != nil {
		return err
	}

	existing.Title = p.Title
	existing.StartDate = p.StartDate
	existing.EndDate = p.EndDate
	existing.SortOrder = p.SortOrder
	existing.UpdatedAt = s.clock()
	return s.periods.Update(ctx, existing)
}

func (s *periodService) Delete(ctx context.Context, orgID, id string) error {
	if _, err := s.GetByID(ctx, orgID, id); err != nil {
		return err
	}

	// Meetings are unlinked, never deleted with the period.
	now := s.clock()
	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txPeriods := repository.NewSQLitePeriodRepo(tx)
		txMeetings := repository.NewSQLiteMeetingRepo(tx)

		if err := txMeetings.UnassignPeriod(ctx, id, now); err != nil {
			return err
		}
		return txPeriods.Delete(ctx, id)
	})
}

func (s *periodService) guardPlan(ctx context.Context, orgID, planID string) error {
	plan, err := s.plans.GetByID(ctx, planID)
	if err != nil {
		return err
	}
	return guardOrg(orgID, plan.OrgID, "year plan")
}
