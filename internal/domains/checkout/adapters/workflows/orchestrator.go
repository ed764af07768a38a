package workflows

import (
	"context"
	"errors"
	"fmt"
	"time"

	oteltrace "go.opentelemetry.io/otel/trace"
	"go.temporal.io/api/serviceerror"
	"go.temporal.io/sdk/client"
	"go.temporal.io/sdk/temporal"

	"github.com/vegefoods/cart-service/internal/domains/checkout/domain"
	"github.com/vegefoods/cart-service/internal/domains/checkout/ports"
	checkoutactivities "github.com/vegefoods/cart-service/internal/durable/temporal/activities/checkout"
	checkoutworkflows "github.com/vegefoods/cart-service/internal/durable/temporal/workflows/checkout"
)

var (
	_ ports.WorkflowOrchestrator = (*TemporalOrderWorkflows)(nil)
	_ ports.WorkflowOrchestrator = (*InlineOrderWorkflows)(nil)
)

// TemporalOrderWorkflows starts order submissions on a Temporal cluster.
type TemporalOrderWorkflows struct {
	client    client.Client
	taskQueue string
}

// NewTemporalOrderWorkflows wires a Temporal client into the orchestrator.
func NewTemporalOrderWorkflows(c client.Client) *TemporalOrderWorkflows {
	return &TemporalOrderWorkflows{client: c, taskQueue: checkoutworkflows.OrderSubmissionTaskQueue}
}

// SubmitOrder starts the Temporal workflow that confirms a simulated order.
func (o *TemporalOrderWorkflows) SubmitOrder(ctx context.Context, request domain.OrderRequest) (*domain.Confirmation, error) {
	if o == nil || o.client == nil {
		return nil, errors.New("temporal order workflows not configured")
	}
	traceComponent := workflowTraceComponent(ctx)
	options := client.StartWorkflowOptions{
		ID:        fmt.Sprintf("order-submission-%s", traceComponent),
		TaskQueue: o.taskQueue,
	}
	run, err := o.client.ExecuteWorkflow(
		ctx,
		options,
		checkoutworkflows.OrderSubmissionWorkflow,
		checkoutworkflows.OrderSubmissionWorkflowInput{Request: request, TraceID: traceComponent},
	)
	if err != nil {
		// A replayed submission under the same trace attaches to the
		// run already in flight instead of double-ordering.
		var alreadyStarted *serviceerror.WorkflowExecutionAlreadyStarted
		if errors.As(err, &alreadyStarted) {
			existingRun := o.client.GetWorkflow(ctx, options.ID, alreadyStarted.RunId)
			var confirmation domain.Confirmation
			if err := existingRun.Get(ctx, &confirmation); err != nil {
				return nil, mapWorkflowError(err)
			}
			return &confirmation, nil
		}
		return nil, err
	}
	var confirmation domain.Confirmation
	if err := run.Get(ctx, &confirmation); err != nil {
		return nil, mapWorkflowError(err)
	}
	return &confirmation, nil
}

// InlineOrderWorkflows executes the service directly without Temporal, useful for tests or dev fallbacks.
type InlineOrderWorkflows struct {
	service ports.Service
}

// NewInlineOrderWorkflows wraps the checkout service for synchronous execution.
func NewInlineOrderWorkflows(service ports.Service) *InlineOrderWorkflows {
	return &InlineOrderWorkflows{service: service}
}

// SubmitOrder delegates to the application service without durable orchestration.
func (o *InlineOrderWorkflows) SubmitOrder(ctx context.Context, request domain.OrderRequest) (*domain.Confirmation, error) {
	if o == nil || o.service == nil {
		return nil, errors.New("inline order workflows not configured")
	}
	return o.service.SubmitOrder(ctx, request)
}

// mapWorkflowError restores the empty-cart rejection to its domain
// sentinel after the round trip through Temporal's error encoding.
func mapWorkflowError(err error) error {
	var appErr *temporal.ApplicationError
	if errors.As(err, &appErr) && appErr.Type() == checkoutactivities.EmptyCartErrorType {
		return domain.ErrEmptyCart
	}
	return err
}

func workflowTraceComponent(ctx context.Context) string {
	traceComponent := workflowTraceID(ctx)
	if traceComponent != "" {
		return traceComponent
	}
	return fmt.Sprintf("fallback-%d", time.Now().UnixNano())
}

func workflowTraceID(ctx context.Context) string {
	span := oteltrace.SpanFromContext(ctx)
	if span == nil {
		return ""
	}
	spanCtx := span.SpanContext()
	if !spanCtx.IsValid() {
		return ""
	}
	traceID := spanCtx.TraceID()
	if !traceID.IsValid() {
		return ""
	}
	return traceID.String()
}
