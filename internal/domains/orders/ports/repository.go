package ports

import (
	"context"
	"errors"

	"github.com/firaolassefa/restaurant-management-system/internal/domains/orders/domain"
)

var ErrNotFound = errors.New("order not found")

// Repository persists orders. Insert assigns the id and order number.
// Update must run mutate and the write as one atomic unit.
// List returns orders matching the filter's statuses and term in placement order.
type Repository interface {
	Insert(ctx context.Context, order *domain.Order) (*domain.Order, error)
	GetByID(ctx context.Context, id int64) (*domain.Order, error)
	Update(ctx context.Context, id int64, mutate func(*domain.Order) error) (*domain.Order, error)
	List(ctx context.Context, filter domain.Filter) ([]*domain.Order, error)
}
