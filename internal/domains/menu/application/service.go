package application

import (
	"context"
	"errors"
	"fmt"
	"iter"

	"github.com/firaolassefa/restaurant-management-system/internal/domains/menu/domain"
	"github.com/firaolassefa/restaurant-management-system/internal/domains/menu/ports"
)

// Service orchestrates menu catalog use cases.
type Service struct {
	repo ports.Repository
}

func NewService(repo ports.Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) AddItem(ctx context.Context, item *domain.Item) (*domain.Item, error) {
	if item == nil {
		return nil, errors.New("menu item is nil")
	}
	candidate := item.Clone()
	// ids are always assigned by the store
	candidate.ID = 0
	if err := candidate.Validate(); err != nil {
		return nil, mapError(err)
	}
	return s.repo.Save(ctx, candidate)
}

func (s *Service) UpdateItem(ctx context.Context, id int64, patch domain.Patch) (*domain.Item, error) {
	updated, err := s.repo.Update(ctx, id, func(item *domain.Item) error {
		return item.Apply(patch)
	})
	return updated, mapError(err)
}

// DeleteItem removes an item. Deleting an absent item reports ports.ErrNotFound.
func (s *Service) DeleteItem(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

func (s *Service) ToggleAvailability(ctx context.Context, id int64) (*domain.Item, error) {
	return s.repo.Update(ctx, id, func(item *domain.Item) error {
		item.ToggleAvailability()
		return nil
	})
}

func (s *Service) GetItem(ctx context.Context, id int64) (*domain.Item, error) {
	return s.repo.GetByID(ctx, id)
}

// ReplaceAll swaps the whole catalog. Items without an id receive a fresh one.
func (s *Service) ReplaceAll(ctx context.Context, items []*domain.Item) ([]*domain.Item, error) {
	seen := make(map[int64]struct{}, len(items))
	candidates := make([]*domain.Item, 0, len(items))
	for idx, item := range items {
		if item == nil {
			return nil, fmt.Errorf("menu item %d is nil", idx)
		}
		if err := item.Validate(); err != nil {
			return nil, mapError(err)
		}
		if item.ID != 0 {
			if _, dup := seen[item.ID]; dup {
				return nil, mapError(fmt.Errorf("%w: %d", domain.ErrDuplicateID, item.ID))
			}
			seen[item.ID] = struct{}{}
		}
		candidates = append(candidates, item.Clone())
	}
	return s.repo.ReplaceAll(ctx, candidates)
}

// Search returns a lazy, restartable sequence over a snapshot of the catalog.
func (s *Service) Search(ctx context.Context, query domain.SearchQuery) (iter.Seq[*domain.Item], error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return query.Filter(items), nil
}

// Seed loads the given items when the catalog is empty and reports whether it did.
func (s *Service) Seed(ctx context.Context, items []*domain.Item) (bool, error) {
	existing, err := s.repo.List(ctx)
	if err != nil {
		return false, err
	}
	if len(existing) > 0 {
		return false, nil
	}
	if _, err := s.ReplaceAll(ctx, items); err != nil {
		return false, err
	}
	return true, nil
}

var _ ports.Service = (*Service)(nil)
