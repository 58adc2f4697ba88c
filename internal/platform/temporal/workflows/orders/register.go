package orders

import (
	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/workflow"

	orderactivities "github.com/firaolassefa/restaurant-management-system/internal/platform/temporal/activities/orders"
)

// Registry is implemented by worker.Worker and by the SDK test environment.
type Registry interface {
	RegisterWorkflowWithOptions(w interface{}, options workflow.RegisterOptions)
	RegisterActivityWithOptions(a interface{}, options activity.RegisterOptions)
}

// Register binds the placement workflow and its activity under the names
// clients start them by. Clients must start the workflow with
// OrderPlacementWorkflowName, not the function value.
func Register(r Registry, activities *orderactivities.Activities) {
	r.RegisterWorkflowWithOptions(OrderPlacementWorkflow, workflow.RegisterOptions{Name: OrderPlacementWorkflowName})
	r.RegisterActivityWithOptions(activities.PlaceOrder, activity.RegisterOptions{Name: orderactivities.PlaceOrderActivityName})
}
