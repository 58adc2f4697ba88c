package ports

import (
	"context"

	"github.com/firaolassefa/restaurant-management-system/internal/domains/orders/domain"
)

// PlacementOrchestrator places orders either inline or through a durable workflow.
// A non-empty idempotency key makes retried placements return the first result.
type PlacementOrchestrator interface {
	PlaceOrder(ctx context.Context, order *domain.Order, idempotencyKey string) (*domain.Order, error)
}
