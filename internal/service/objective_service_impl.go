package service

import (
	"context"
	"fmt"

	"github.com/annafors/planera/internal/domain"
	"github.com/annafors/planera/internal/repository"
	"github.com/google/uuid"
)

type objectiveService struct {
	objectives   repository.ObjectiveRepo
	plans        repository.YearPlanRepo
	achievements repository.AchievementRepo
	clock        Clock
}

func NewObjectiveService(
	objectives repository.ObjectiveRepo,
	plans repository.YearPlanRepo,
	achievements repository.AchievementRepo,
	clock Clock,
) ObjectiveService {
	return &objectiveService{
		objectives:   objectives,
		plans:        plans,
		achievements: achievements,
		clock:        clockOrWallClock(clock),
	}
}

func (s *objectiveService) Create(ctx context.Context, orgID string, o *domain.Objective) error {
	if o.ID == "" {
		o.ID = uuid.New().String()
	}
	if err := o.Validate(); err != nil {
		return err
	}
	if err := s.guardPlan(ctx, orgID, o.YearPlanID); err != nil {
		return err
	}
	if err := s.checkParent(ctx, o); err != nil {
		return err
	}

	now := s.clock()
	o.CreatedAt = now
	o.UpdatedAt = now
	return s.objectives.Create(ctx, o)
}

func (s *objectiveService) GetByID(ctx context.Context, orgID, id string) (*domain.Objective, error) {
	o, err := s.objectives.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.guardPlan(ctx, orgID, o.YearPlanID); err != nil {
		return nil, err
	}
	return o, nil
}

func (s *objectiveService) ListByPlan(ctx context.Context, orgID, planID string) ([]*domain.Objective, error) {
	if err := s.guardPlan(ctx, orgID, planID); err != nil {
		return nil, err
	}
	return s.objectives.ListByPlan(ctx, planID)
}

func (s *objectiveService) Update(ctx context.Context, orgID string, o *domain.Objective) error {
	existing, err := s.GetByID(ctx, orgID, o.ID)
	if err != nil {
		return err
	}
	o.YearPlanID = existing.YearPlanID
	if err := o.Validate(); err != nil {
		return err
	}
	if err := s.checkParent(ctx, o); err != nil {
		return err
	}

	existing.Title = o.Title
	existing.Description = o.Description
	existing.Scope = o.Scope
	existing.SortOrder = o.SortOrder
	existing.PeriodID = o.PeriodID
	existing.ParentID = o.ParentID
	existing.UpdatedAt = s.clock()
	return s.objectives.Update(ctx, existing)
}

// Delete re-parents the node's children to its own parent so the forest
// stays connected, then removes the node. Objectives with recorded
// achievements cannot be removed.
func (s *objectiveService) Delete(ctx context.Context, orgID, id string) error {
	o, err := s.GetByID(ctx, orgID, id)
	if err != nil {
		return err
	}

	n, err := s.achievements.CountByObjective(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return fmt.Errorf("objective %s has %d recorded achievements: %w", id, n, domain.ErrConflict)
	}

	children, err := s.objectives.ListChildren(ctx, id)
	if err != nil {
		return err
	}
	now := s.clock()
	for _, child := range children {
		child.ParentID = o.ParentID
		child.UpdatedAt = now
		if err := s.objectives.Update(ctx, child); err != nil {
			return err
		}
	}
	return s.objectives.Delete(ctx, id)
}

// checkParent validates the parent reference: same plan, existing node,
// and no cycle through the ancestor chain.
func (s *objectiveService) checkParent(ctx context.Context, o *domain.Objective) error {
	if o.ParentID == nil {
		return nil
	}

	all, err := s.objectives.ListByPlan(ctx, o.YearPlanID)
	if err != nil {
		return err
	}
	byID := make(map[string]*domain.Objective, len(all))
	for _, node := range all {
		byID[node.ID] = node
	}

	if _, ok := byID[*o.ParentID]; !ok {
		return fmt.Errorf("parent objective: %w", repository.ErrNotFound)
	}

	parentOf := func(id string) (*string, bool) {
		node, ok := byID[id]
		if !ok {
			return nil, false
		}
		return node.ParentID, true
	}
	if domain.WouldCycle(o.ID, o.ParentID, parentOf) {
		return fmt.Errorf("%w: parent %s would create a cycle", domain.ErrValidation, *o.ParentID)
	}
	return nil
}

func (s *objectiveService) guardPlan(ctx context.Context, orgID, planID string) error {
	plan, err := s.plans.GetByID(ctx, planID)
	if err != nil {
		return err
	}
	return guardOrg(orgID, plan.OrgID, "year plan")
}
