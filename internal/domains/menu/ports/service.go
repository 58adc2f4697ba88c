package ports

import (
	"context"
	"iter"

	"github.com/firaolassefa/restaurant-management-system/internal/domains/menu/domain"
)

// Service exposes menu catalog use cases to adapters.
type Service interface {
	AddItem(ctx context.Context, item *domain.Item) (*domain.Item, error)
	UpdateItem(ctx context.Context, id int64, patch domain.Patch) (*domain.Item, error)
	DeleteItem(ctx context.Context, id int64) error
	ToggleAvailability(ctx context.Context, id int64) (*domain.Item, error)
	GetItem(ctx context.Context, id int64) (*domain.Item, error)
	ReplaceAll(ctx context.Context, items []*domain.Item) ([]*domain.Item, error)
	Search(ctx context.Context, query domain.SearchQuery) (iter.Seq[*domain.Item], error)
}
