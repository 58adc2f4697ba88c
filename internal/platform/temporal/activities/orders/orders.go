package orders

import (
	"context"
	"errors"

	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/temporal"

	ordersapp "github.com/firaolassefa/restaurant-management-system/internal/domains/orders/application"
	ordersdomain "github.com/firaolassefa/restaurant-management-system/internal/domains/orders/domain"
	ordersports "github.com/firaolassefa/restaurant-management-system/internal/domains/orders/ports"
)

const (
	// PlaceOrderActivityName persists a priced order in Pending.
	PlaceOrderActivityName = "orders.activities.PlaceOrder"
	// InvalidInputErrorType marks failures that retries cannot fix.
	InvalidInputErrorType = "InvalidOrderInput"
)

// Activities groups activities that operate on the orders bounded context.
type Activities struct {
	service ordersports.Service
}

// NewActivities wires the order service into the Temporal activities bundle.
func NewActivities(service ordersports.Service) *Activities {
	return &Activities{service: service}
}

// PlaceOrder stores the order and returns it with id and number assigned.
func (a *Activities) PlaceOrder(ctx context.Context, order *ordersdomain.Order) (*ordersdomain.Order, error) {
	logger := activity.GetLogger(ctx)
	if a == nil || a.service == nil {
		logger.Error("order placement activity not initialized")
		return nil, errors.New("order placement activity not initialized")
	}
	if order == nil {
		return nil, temporal.NewNonRetryableApplicationError("order is nil", InvalidInputErrorType, nil)
	}
	logger.Info("PlaceOrder activity started", "customer", order.Customer, "table", order.Table)
	placed, err := a.service.Place(ctx, order)
	if err != nil {
		logger.Error("PlaceOrder activity failed", "customer", order.Customer, "error", err)
		if errors.Is(err, ordersapp.ErrInvalidInput) {
			return nil, temporal.NewNonRetryableApplicationError(err.Error(), InvalidInputErrorType, err)
		}
		return nil, err
	}
	logger.Info("PlaceOrder activity completed", "orderId", placed.ID, "orderNumber", placed.Number)
	return placed, nil
}
