package ports

import (
	"context"
	"iter"

	"github.com/firaolassefa/restaurant-management-system/internal/domains/orders/domain"
)

// Service exposes order lifecycle use cases to adapters.
type Service interface {
	Place(ctx context.Context, order *domain.Order) (*domain.Order, error)
	Transition(ctx context.Context, id int64, to domain.Status) (*domain.Order, error)
	Find(ctx context.Context, id int64) (*domain.Order, error)
	FindByNumber(ctx context.Context, number string) (*domain.Order, error)
	List(ctx context.Context, filter domain.Filter) (iter.Seq[*domain.Order], error)
	Summary(ctx context.Context) (domain.Summary, error)
}
