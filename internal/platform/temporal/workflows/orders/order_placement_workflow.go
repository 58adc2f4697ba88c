package orders

import (
	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"

	ordersdomain "github.com/firaolassefa/restaurant-management-system/internal/domains/orders/domain"
	orderactivities "github.com/firaolassefa/restaurant-management-system/internal/platform/temporal/activities/orders"
	"github.com/firaolassefa/restaurant-management-system/internal/platform/temporal/sequences"
)

const (
	// OrderPlacementWorkflowName is the public identifier for registering the workflow.
	OrderPlacementWorkflowName = "orders.workflows.Placement"
	// OrderPlacementTaskQueue is the queue consumed by the worker processing order workflows.
	OrderPlacementTaskQueue = "ORDER_PLACEMENT"
)

// OrderPlacementWorkflowInput carries the priced order built at checkout.
type OrderPlacementWorkflowInput struct {
	Order   *ordersdomain.Order
	TraceID string
}

// OrderPlacementWorkflow durably persists an order so a retried checkout never places it twice.
func OrderPlacementWorkflow(ctx workflow.Context, input OrderPlacementWorkflowInput) (*ordersdomain.Order, error) {
	logger := workflow.GetLogger(ctx)
	if input.Order == nil {
		return nil, temporal.NewNonRetryableApplicationError("order is nil", orderactivities.InvalidInputErrorType, nil)
	}
	logger.Info("OrderPlacementWorkflow started", withTraceID(input.TraceID, "customer", input.Order.Customer)...)
	placed, err := sequences.RunOrderPlacementSequence(ctx, input.Order)
	if err != nil {
		logger.Error("OrderPlacementWorkflow failed", withTraceID(input.TraceID, "customer", input.Order.Customer, "error", err)...)
		return nil, err
	}
	logger.Info("OrderPlacementWorkflow completed", withTraceID(input.TraceID, "orderId", placed.ID, "orderNumber", placed.Number)...)
	return placed, nil
}

func withTraceID(traceID string, keyvals ...interface{}) []interface{} {
	if traceID == "" {
		return keyvals
	}
	return append(keyvals, "traceId", traceID)
}
