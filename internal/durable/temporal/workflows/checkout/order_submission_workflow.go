package checkout

import (
	"go.temporal.io/sdk/workflow"

	"github.com/vegefoods/cart-service/internal/domains/checkout/domain"
	"github.com/vegefoods/cart-service/internal/durable/temporal/sequences"
)

const (
	// OrderSubmissionWorkflowName is the public identifier for registering the workflow.
	OrderSubmissionWorkflowName = "checkout.workflows.Submission"
	// OrderSubmissionTaskQueue is the queue consumed by the worker processing checkout workflows.
	OrderSubmissionTaskQueue = "ORDER_SUBMISSION"
)

// OrderSubmissionWorkflowInput captures the payload required to submit an order.
type OrderSubmissionWorkflowInput struct {
	Request domain.OrderRequest
	TraceID string
}

// OrderSubmissionWorkflow orchestrates the activities needed to confirm a simulated order.
func OrderSubmissionWorkflow(ctx workflow.Context, input OrderSubmissionWorkflowInput) (*domain.Confirmation, error) {
	logger := workflow.GetLogger(ctx)
	logger.Info("OrderSubmissionWorkflow started", withTraceID(input.TraceID)...)
	confirmation, err := sequences.RunOrderSubmissionSequence(ctx, input.Request)
	if err != nil {
		logger.Error("OrderSubmissionWorkflow failed", withTraceID(input.TraceID, "error", err)...)
		return nil, err
	}
	logger.Info("OrderSubmissionWorkflow completed", withTraceID(input.TraceID, "orderId", confirmation.OrderID)...)
	return confirmation, nil
}

func withTraceID(traceID string, keyvals ...interface{}) []interface{} {
	if traceID == "" {
		return keyvals
	}
	return append(keyvals, "traceId", traceID)
}
