package ports

import (
	"context"

	"github.com/firaolassefa/restaurant-management-system/internal/domains/cart/domain"
	ordersdomain "github.com/firaolassefa/restaurant-management-system/internal/domains/orders/domain"
)

// Service exposes cart use cases to adapters. Every cart view is returned as a Quote.
type Service interface {
	Open(ctx context.Context) (*domain.Quote, error)
	Quote(ctx context.Context, cartID string) (*domain.Quote, error)
	AddItem(ctx context.Context, cartID string, itemID int64) (*domain.Quote, error)
	RemoveItem(ctx context.Context, cartID string, itemID int64) (*domain.Quote, error)
	SetQuantity(ctx context.Context, cartID string, itemID int64, quantity int) (*domain.Quote, error)
	Clear(ctx context.Context, cartID string) (*domain.Quote, error)
	Checkout(ctx context.Context, cartID string, details domain.OrderDetails, idempotencyKey string) (*ordersdomain.Order, error)
	Reorder(ctx context.Context, cartID string, order *ordersdomain.Order) (*domain.Quote, []string, error)
}
