package orders_test

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/testsuite"

	"github.com/firaolassefa/restaurant-management-system/internal/domains/orders/adapters/memory"
	"github.com/firaolassefa/restaurant-management-system/internal/domains/orders/application"
	ordersdomain "github.com/firaolassefa/restaurant-management-system/internal/domains/orders/domain"
	orderactivities "github.com/firaolassefa/restaurant-management-system/internal/platform/temporal/activities/orders"
	orderworkflows "github.com/firaolassefa/restaurant-management-system/internal/platform/temporal/workflows/orders"
)

func newWorkflowEnv(t *testing.T) *testsuite.TestWorkflowEnvironment {
	t.Helper()
	var suite testsuite.WorkflowTestSuite
	env := suite.NewTestWorkflowEnvironment()
	// same registration as cmd/worker
	orderworkflows.Register(env, orderactivities.NewActivities(application.NewService(memory.NewRepository())))
	return env
}

func TestOrderPlacementWorkflow_PersistsOrder(t *testing.T) {
	env := newWorkflowEnv(t)
	order, err := ordersdomain.NewOrder(ordersdomain.Draft{
		Items:    []ordersdomain.LineItem{{Name: "Burger", Quantity: 2, UnitPrice: decimal.RequireFromString("10.50")}},
		Customer: "Alice",
		Table:    "5",
		Waiter:   "Dana",
		TaxRate:  decimal.RequireFromString("0.08"),
	})
	require.NoError(t, err)

	env.ExecuteWorkflow(orderworkflows.OrderPlacementWorkflowName, orderworkflows.OrderPlacementWorkflowInput{Order: order, TraceID: "trace-1"})

	require.True(t, env.IsWorkflowCompleted())
	require.NoError(t, env.GetWorkflowError())
	var placed ordersdomain.Order
	require.NoError(t, env.GetWorkflowResult(&placed))
	require.Equal(t, int64(1), placed.ID)
	require.Equal(t, "ORD-001", placed.Number)
	require.Equal(t, ordersdomain.StatusPending, placed.Status)
	require.True(t, placed.Total.Equal(decimal.RequireFromString("22.68")))
}

func TestOrderPlacementWorkflow_InvalidOrderIsNotRetried(t *testing.T) {
	env := newWorkflowEnv(t)
	order := &ordersdomain.Order{
		Items: []ordersdomain.LineItem{{Name: "Burger", Quantity: 1, UnitPrice: decimal.RequireFromString("10.50")}},
		Table: "5",
	}

	env.ExecuteWorkflow(orderworkflows.OrderPlacementWorkflowName, orderworkflows.OrderPlacementWorkflowInput{Order: order})

	require.True(t, env.IsWorkflowCompleted())
	err := env.GetWorkflowError()
	require.Error(t, err)
	var appErr *temporal.ApplicationError
	require.True(t, errors.As(err, &appErr))
	require.Equal(t, orderactivities.InvalidInputErrorType, appErr.Type())
	require.True(t, appErr.NonRetryable())
}
