package ports

import (
	"context"
	"errors"
	"time"

	"github.com/firaolassefa/restaurant-management-system/internal/domains/cart/domain"
)

var ErrNotFound = errors.New("cart not found")

// Repository stores carts. Update runs mutate while holding the cart exclusively.
// PurgeIdle drops carts whose last update is before cutoff and reports how many it removed.
type Repository interface {
	Create(ctx context.Context, cart *domain.Cart) error
	Get(ctx context.Context, id string) (*domain.Cart, error)
	Update(ctx context.Context, id string, mutate func(*domain.Cart) error) (*domain.Cart, error)
	PurgeIdle(ctx context.Context, cutoff time.Time) (int, error)
}
