package ports

import (
	"context"
	"errors"

	"github.com/firaolassefa/restaurant-management-system/internal/domains/menu/domain"
)

var ErrNotFound = errors.New("menu item not found")

// Repository persists the catalog. List returns items in catalog order.
type Repository interface {
	Save(ctx context.Context, item *domain.Item) (*domain.Item, error)
	GetByID(ctx context.Context, id int64) (*domain.Item, error)
	Update(ctx context.Context, id int64, mutate func(*domain.Item) error) (*domain.Item, error)
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]*domain.Item, error)
	ReplaceAll(ctx context.Context, items []*domain.Item) ([]*domain.Item, error)
}
