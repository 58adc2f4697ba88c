package sequences

import (
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"

	ordersdomain "github.com/firaolassefa/restaurant-management-system/internal/domains/orders/domain"
	orderactivities "github.com/firaolassefa/restaurant-management-system/internal/platform/temporal/activities/orders"
)

// RunOrderPlacementSequence executes the activities needed to persist a placed order.
func RunOrderPlacementSequence(ctx workflow.Context, order *ordersdomain.Order) (*ordersdomain.Order, error) {
	logger := workflow.GetLogger(ctx)
	logger.Info("order placement sequence started", "customer", order.Customer)
	placeOptions := workflow.ActivityOptions{
		StartToCloseTimeout: time.Minute,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:        2 * time.Second,
			BackoffCoefficient:     2.0,
			MaximumInterval:        10 * time.Second,
			MaximumAttempts:        5,
			NonRetryableErrorTypes: []string{orderactivities.InvalidInputErrorType},
		},
	}

	var placed ordersdomain.Order
	err := workflow.ExecuteActivity(workflow.WithActivityOptions(ctx, placeOptions), orderactivities.PlaceOrderActivityName, order).Get(ctx, &placed)
	if err != nil {
		logger.Error("order placement sequence failed", "customer", order.Customer, "error", err)
		return nil, err
	}
	logger.Info("order placement sequence persisted", "orderId", placed.ID, "orderNumber", placed.Number)
	return &placed, nil
}
