package workflows

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.temporal.io/sdk/client"
	"go.temporal.io/sdk/mocks"
	"go.temporal.io/sdk/temporal"

	"github.com/firaolassefa/restaurant-management-system/internal/domains/orders/adapters/memory"
	"github.com/firaolassefa/restaurant-management-system/internal/domains/orders/application"
	"github.com/firaolassefa/restaurant-management-system/internal/domains/orders/domain"
	orderactivities "github.com/firaolassefa/restaurant-management-system/internal/platform/temporal/activities/orders"
	orderworkflows "github.com/firaolassefa/restaurant-management-system/internal/platform/temporal/workflows/orders"
)

func pricedOrder(t *testing.T) *domain.Order {
	t.Helper()
	order, err := domain.NewOrder(domain.Draft{
		Items:    []domain.LineItem{{Name: "Burger", Quantity: 2, UnitPrice: decimal.RequireFromString("10.50")}},
		Customer: "Alice",
		Table:    "5",
		TaxRate:  decimal.RequireFromString("0.08"),
	})
	require.NoError(t, err)
	return order
}

func TestInlineOrderWorkflows_IdempotencyKeyReturnsFirstOrder(t *testing.T) {
	svc := application.NewService(memory.NewRepository())
	orchestrator := NewInlineOrderWorkflows(svc)
	ctx := context.Background()

	var wg sync.WaitGroup
	results := make([]*domain.Order, 8)
	errs := make([]error, len(results))
	for i := range results {
		order := pricedOrder(t)
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = orchestrator.PlaceOrder(ctx, order, "checkout-42")
		}(i)
	}
	wg.Wait()

	for i, placed := range results {
		require.NoError(t, errs[i])
		require.Equal(t, results[0].ID, placed.ID)
	}
	all, err := svc.List(ctx, domain.Filter{})
	require.NoError(t, err)
	count := 0
	for range all {
		count++
	}
	require.Equal(t, 1, count)
}

func TestInlineOrderWorkflows_WithoutKeyPlacesEachTime(t *testing.T) {
	orchestrator := NewInlineOrderWorkflows(application.NewService(memory.NewRepository()))
	first, err := orchestrator.PlaceOrder(context.Background(), pricedOrder(t), "")
	require.NoError(t, err)
	second, err := orchestrator.PlaceOrder(context.Background(), pricedOrder(t), " ")
	require.NoError(t, err)
	require.NotEqual(t, first.ID, second.ID)
}

func TestInlineOrderWorkflows_NotConfigured(t *testing.T) {
	var orchestrator *InlineOrderWorkflows
	_, err := orchestrator.PlaceOrder(context.Background(), pricedOrder(t), "")
	require.Error(t, err)
}

func TestBuildOrderPlacementWorkflowID(t *testing.T) {
	a := buildOrderPlacementWorkflowID("key-1", "trace")
	b := buildOrderPlacementWorkflowID("  key-1 ", "other")
	require.Equal(t, a, b)
	require.Contains(t, a, "order-placement-idem-")
	require.Contains(t, buildOrderPlacementWorkflowID("", "trace"), "-trace")
}

func TestUnwrapWorkflowError(t *testing.T) {
	appErr := temporal.NewNonRetryableApplicationError("customer name is required", orderactivities.InvalidInputErrorType, nil)
	err := unwrapWorkflowError(appErr)
	require.ErrorIs(t, err, application.ErrInvalidInput)

	other := errors.New("boom")
	require.Equal(t, other, unwrapWorkflowError(other))
}

func TestTemporalOrderWorkflows_StartsWorkflowByRegisteredName(t *testing.T) {
	placed := pricedOrder(t)
	placed.ID, placed.Number = 7, "ORD-007"

	run := &mocks.WorkflowRun{}
	run.On("Get", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		*args.Get(1).(*domain.Order) = *placed
	}).Return(nil)
	temporalClient := &mocks.Client{}
	temporalClient.On("ExecuteWorkflow",
		mock.Anything,
		mock.MatchedBy(func(opts client.StartWorkflowOptions) bool {
			return opts.TaskQueue == orderworkflows.OrderPlacementTaskQueue &&
				opts.ID == buildOrderPlacementWorkflowID("cart-1:key-1", "")
		}),
		orderworkflows.OrderPlacementWorkflowName,
		mock.Anything,
	).Return(run, nil)

	got, err := NewTemporalOrderWorkflows(temporalClient).PlaceOrder(context.Background(), pricedOrder(t), "cart-1:key-1")
	require.NoError(t, err)
	require.Equal(t, "ORD-007", got.Number)
	temporalClient.AssertExpectations(t)
	run.AssertExpectations(t)
}
