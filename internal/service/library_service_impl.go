package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/annafors/planera/internal/domain"
	"github.com/annafors/planera/internal/repository"
	"github.com/google/uuid"
)

type libraryService struct {
	library repository.ActivityLibraryRepo
	clock   Clock
}

func NewLibraryService(library repository.ActivityLibraryRepo, clock Clock) LibraryService {
	return &libraryService{
		library: library,
		clock:   clockOrWallClock(clock),
	}
}

func (s *libraryService) Create(ctx context.Context, item *domain.ActivityLibraryItem) error {
	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	if err := item.Validate(); err != nil {
		return err
	}
	now := s.clock()
	item.IsActive = true
	item.CreatedAt = now
	item.UpdatedAt = now
	return s.library.Create(ctx, item)
}

func (s *libraryService) GetByID(ctx context.Context, orgID, id string) (*domain.ActivityLibraryItem, error) {
	item, err := s.library.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := guardOrg(orgID, item.OrgID, "library item"); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *libraryService) List(ctx context.Context, orgID string, filter LibraryFilter) ([]*domain.ActivityLibraryItem, error) {
	items, err := s.library.List(ctx, orgID, filter.IncludeInactive)
	if err != nil {
		return nil, err
	}
	if filter.Category == "" && filter.Tag == "" {
		return items, nil
	}

	var filtered []*domain.ActivityLibraryItem
	for _, item := range items {
		if filter.Category != "" && !strings.EqualFold(item.Category, filter.Category) {
			continue
		}
		if filter.Tag != "" && !hasTag(item.Tags, filter.Tag) {
			continue
		}
		filtered = append(filtered, item)
	}
	return filtered, nil
}

func hasTag(tags []string, want string) bool {
	for _, tag := range tags {
		if strings.EqualFold(tag, want) {
			return true
		}
	}
	return false
}

func (s *libraryService) Update(ctx context.Context, orgID string, item *domain.ActivityLibraryItem) error {
	existing, err := s.GetByID(ctx, orgID, item.ID)
	if err != nil {
		return err
	}
	item.OrgID = existing.OrgID
	if err := item.Validate(); err != nil {
		return err
	}

	existing.Name = item.Name
	existing.Category = item.Category
	existing.Tags = item.Tags
	existing.MinDurationMinutes = item.MinDurationMinutes
	existing.MaxDurationMinutes = item.MaxDurationMinutes
	existing.ObjectiveIDs = item.ObjectiveIDs
	existing.UpdatedAt = s.clock()
	return s.library.Update(ctx, existing)
}

func (s *libraryService) RecordRating(ctx context.Context, orgID, id string, rating float64) error {
	if rating < 1 || rating > 5 {
		return fmt.Errorf("%w: rating must be between 1 and 5", domain.ErrValidation)
	}
	item, err := s.GetByID(ctx, orgID, id)
	if err != nil {
		return err
	}
	item.RecordRating(rating)
	item.UpdatedAt = s.clock()
	return s.library.Update(ctx, item)
}

func (s *libraryService) Deactivate(ctx context.Context, orgID, id string) error {
	if _, err := s.GetByID(ctx, orgID, id); err != nil {
		return err
	}
	return s.library.Deactivate(ctx, id, s.clock())
}
