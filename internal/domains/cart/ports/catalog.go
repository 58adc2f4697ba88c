package ports

import (
	"context"

	menudomain "github.com/firaolassefa/restaurant-management-system/internal/domains/menu/domain"
	ordersdomain "github.com/firaolassefa/restaurant-management-system/internal/domains/orders/domain"
)

// ItemLookup resolves menu items by id. The menu service satisfies it.
type ItemLookup interface {
	GetItem(ctx context.Context, id int64) (*menudomain.Item, error)
}

// OrderPlacer hands a priced order to the order store. The orders placement
// orchestrators satisfy it. A nil order with a key already used replays the first result.
type OrderPlacer interface {
	PlaceOrder(ctx context.Context, order *ordersdomain.Order, idempotencyKey string) (*ordersdomain.Order, error)
}
