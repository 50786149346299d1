package service

import (
	"context"
	"fmt"
	"time"

	"github.com/annafors/planera/internal/db"
	"github.com/annafors/planera/internal/domain"
	"github.com/annafors/planera/internal/generation"
	"github.com/annafors/planera/internal/repository"
	"github.com/google/uuid"
)

type planService struct {
	plans    repository.YearPlanRepo
	uow      db.UnitOfWork
	clock    Clock
	observer UseCaseObserver
}

func NewPlanService(plans repository.YearPlanRepo, uow db.UnitOfWork, clock Clock, observers ...UseCaseObserver) PlanService {
	return &planService{
		plans:    plans,
		uow:      uow,
		clock:    clockOrWallClock(clock),
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *planService) Create(ctx context.Context, p *domain.YearPlan) (result *PlanCreateResult, err error) {
	startedAt := s.clock()
	fields := map[string]any{"org": p.OrgID, "title": p.Title}
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "create-plan",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    fields,
		})
	}()

	if err = p.Validate(); err != nil {
		return nil, err
	}

	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	now := s.clock()
	p.CreatedAt = now
	p.UpdatedAt = now

	skeletons, err := generation.Generate(generation.GenerateInput{
		StartDate:      p.StartDate,
		EndDate:        p.EndDate,
		MeetingWeekday: p.MeetingWeekday,
		Pattern:        p.Pattern,
		Blackouts:      p.Blackouts,
		Anchors:        p.Anchors,
	})
	if err != nil {
		return nil, err
	}
	fields["meeting_count"] = len(skeletons)

	// Plan row and all meeting rows commit or roll back together; a
	// plan never exists without its calendar.
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txPlans := repository.NewSQLiteYearPlanRepo(tx)
		txMeetings := repository.NewSQLiteMeetingRepo(tx)

		if err := txPlans.Create(ctx, p); err != nil {
			return err
		}
		startTime, endTime := defaultTimes(p.Settings)
		for _, sk := range skeletons {
			location := sk.Location
			if location == "" && !sk.IsCancelled {
				location = p.DefaultLocation
			}
			m := &domain.Meeting{
				ID:          uuid.New().String(),
				YearPlanID:  p.ID,
				MeetingDate: sk.Date,
				StartTime:   startTime,
				EndTime:     endTime,
				Location:    location,
				IsCancelled: sk.IsCancelled,
				AnchorID:    sk.AnchorID,
				Theme:       sk.Theme,
				Metadata:    sk.Metadata,
				CreatedAt:   now,
				UpdatedAt:   now,
			}
			if err := txMeetings.Create(ctx, m); err != nil {
				return fmt.Errorf("creating meeting for %s: %w", sk.Date.Format(domain.DateLayout), err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &PlanCreateResult{Plan: p, MeetingCount: len(skeletons)}, nil
}

// defaultTimes reads the optional start_time/end_time plan settings that
// seed every generated meeting.
func defaultTimes(settings map[string]any) (start, end string) {
	if settings == nil {
		return "", ""
	}
	if v, ok := settings["start_time"].(string); ok && domain.ValidateClockTime(v, "start_time") == nil {
		start = v
	}
	if v, ok := settings["end_time"].(string); ok && domain.ValidateClockTime(v, "end_time") == nil {
		end = v
	}
	return start, end
}

func (s *planService) GetByID(ctx context.Context, orgID, id string) (*domain.YearPlan, error) {
	p, err := s.plans.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := guardOrg(orgID, p.OrgID, "year plan"); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *planService) List(ctx context.Context, orgID string) ([]*domain.YearPlan, error) {
	return s.plans.ListByOrg(ctx, orgID)
}

func (s *planService) Update(ctx context.Context, orgID string, p *domain.YearPlan) error {
	existing, err := s.GetByID(ctx, orgID, p.ID)
	if err != nil {
		return err
	}
	if p.Title == "" {
		return fmt.Errorf("%w: plan title is required", domain.ErrValidation)
	}

	// The season shape (dates, weekday, cadence) is fixed at creation;
	// only descriptive fields change here.
	existing.Title = p.Title
	existing.DefaultLocation = p.DefaultLocation
	existing.Settings = p.Settings
	existing.UpdatedAt = s.clock()
	return s.plans.Update(ctx, existing)
}

func (s *planService) Delete(ctx context.Context, orgID, id string) error {
	if _, err := s.GetByID(ctx, orgID, id); err != nil {
		return err
	}
	return s.plans.Delete(ctx, id)
}
