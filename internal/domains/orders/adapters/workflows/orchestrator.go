package workflows

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	oteltrace "go.opentelemetry.io/otel/trace"
	"go.temporal.io/api/enums/v1"
	"go.temporal.io/api/serviceerror"
	"go.temporal.io/sdk/client"
	"go.temporal.io/sdk/temporal"

	"github.com/firaolassefa/restaurant-management-system/internal/domains/orders/application"
	"github.com/firaolassefa/restaurant-management-system/internal/domains/orders/domain"
	"github.com/firaolassefa/restaurant-management-system/internal/domains/orders/ports"
	orderactivities "github.com/firaolassefa/restaurant-management-system/internal/platform/temporal/activities/orders"
	orderworkflows "github.com/firaolassefa/restaurant-management-system/internal/platform/temporal/workflows/orders"
)

var (
	_ ports.PlacementOrchestrator = (*TemporalOrderWorkflows)(nil)
	_ ports.PlacementOrchestrator = (*InlineOrderWorkflows)(nil)
)

// TemporalOrderWorkflows starts order placement workflows on a Temporal cluster.
type TemporalOrderWorkflows struct {
	client    client.Client
	taskQueue string
}

// NewTemporalOrderWorkflows wires a Temporal client into the orchestrator.
func NewTemporalOrderWorkflows(c client.Client) *TemporalOrderWorkflows {
	return &TemporalOrderWorkflows{client: c, taskQueue: orderworkflows.OrderPlacementTaskQueue}
}

// PlaceOrder starts the placement workflow and waits for the stored order.
func (o *TemporalOrderWorkflows) PlaceOrder(ctx context.Context, order *domain.Order, idempotencyKey string) (*domain.Order, error) {
	if o == nil || o.client == nil {
		return nil, errors.New("temporal order workflows not configured")
	}
	traceComponent := workflowTraceComponent(ctx)
	workflowID := buildOrderPlacementWorkflowID(idempotencyKey, traceComponent)
	options := client.StartWorkflowOptions{
		ID:        workflowID,
		TaskQueue: o.taskQueue,
		// a completed placement must not run again for the same key
		WorkflowIDReusePolicy:                    enums.WORKFLOW_ID_REUSE_POLICY_REJECT_DUPLICATE,
		WorkflowExecutionErrorWhenAlreadyStarted: true,
	}
	run, err := o.client.ExecuteWorkflow(
		ctx,
		options,
		orderworkflows.OrderPlacementWorkflowName,
		orderworkflows.OrderPlacementWorkflowInput{Order: order, TraceID: traceComponent},
	)
	if err != nil {
		var alreadyStarted *serviceerror.WorkflowExecutionAlreadyStarted
		if errors.As(err, &alreadyStarted) && strings.TrimSpace(idempotencyKey) != "" {
			run = o.client.GetWorkflow(ctx, workflowID, alreadyStarted.RunId)
		} else {
			return nil, err
		}
	}
	var placed domain.Order
	if err := run.Get(ctx, &placed); err != nil {
		return nil, unwrapWorkflowError(err)
	}
	return &placed, nil
}

// unwrapWorkflowError restores the invalid-input classification lost across the workflow boundary.
func unwrapWorkflowError(err error) error {
	var appErr *temporal.ApplicationError
	if errors.As(err, &appErr) && appErr.Type() == orderactivities.InvalidInputErrorType {
		return fmt.Errorf("%w: %s", application.ErrInvalidInput, appErr.Message())
	}
	return err
}

// InlineOrderWorkflows places orders directly through the service, for tests and dev fallbacks.
// Idempotency keys are remembered for the life of the process.
type InlineOrderWorkflows struct {
	service ports.Service

	mu     sync.Mutex
	placed map[string]int64
}

// NewInlineOrderWorkflows wraps the orders service for synchronous execution.
func NewInlineOrderWorkflows(service ports.Service) *InlineOrderWorkflows {
	return &InlineOrderWorkflows{service: service, placed: make(map[string]int64)}
}

// PlaceOrder delegates to the application service without durable orchestration.
func (o *InlineOrderWorkflows) PlaceOrder(ctx context.Context, order *domain.Order, idempotencyKey string) (*domain.Order, error) {
	if o == nil || o.service == nil {
		return nil, errors.New("inline order workflows not configured")
	}
	key := strings.TrimSpace(idempotencyKey)
	if key == "" {
		return o.service.Place(ctx, order)
	}
	// Held across Place so two retries with the same key cannot both insert.
	o.mu.Lock()
	defer o.mu.Unlock()
	if id, ok := o.placed[key]; ok {
		return o.service.Find(ctx, id)
	}
	placed, err := o.service.Place(ctx, order)
	if err != nil {
		return nil, err
	}
	o.placed[key] = placed.ID
	return placed, nil
}

func buildOrderPlacementWorkflowID(idempotencyKey, traceComponent string) string {
	if key := strings.TrimSpace(idempotencyKey); key != "" {
		return fmt.Sprintf("order-placement-idem-%s", hashIdempotencyKey(key))
	}
	return fmt.Sprintf("order-placement-%d-%s", time.Now().UnixNano(), traceComponent)
}

func hashIdempotencyKey(key string) string {
	sum := sha256.Sum256([]byte(key))
	return hex.EncodeToString(sum[:8])
}

func workflowTraceComponent(ctx context.Context) string {
	if traceID := workflowTraceID(ctx); traceID != "" {
		return traceID
	}
	return fmt.Sprintf("fallback-%d", time.Now().UnixNano())
}

func workflowTraceID(ctx context.Context) string {
	spanCtx := oteltrace.SpanFromContext(ctx).SpanContext()
	if !spanCtx.IsValid() {
		return ""
	}
	return spanCtx.TraceID().String()
}
