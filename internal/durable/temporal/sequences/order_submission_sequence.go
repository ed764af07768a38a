package sequences

import (
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"

	"github.com/vegefoods/cart-service/internal/domains/checkout/domain"
	checkoutactivities "github.com/vegefoods/cart-service/internal/durable/temporal/activities/checkout"
)

// RunOrderSubmissionSequence executes the ordered set of activities
// needed to turn a cart into a confirmed simulated order.
func RunOrderSubmissionSequence(ctx workflow.Context, request domain.OrderRequest) (*domain.Confirmation, error) {
	logger := workflow.GetLogger(ctx)
	logger.Info("order submission sequence started")
	options := workflow.ActivityOptions{
		StartToCloseTimeout: time.Minute,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:    2 * time.Second,
			BackoffCoefficient: 2.0,
			MaximumInterval:    10 * time.Second,
			MaximumAttempts:    5,
		},
	}
	ctx = workflow.WithActivityOptions(ctx, options)

	var confirmation domain.Confirmation
	err := workflow.ExecuteActivity(ctx, checkoutactivities.SubmitOrderActivityName, request).Get(ctx, &confirmation)
	if err != nil {
		logger.Error("order submission sequence failed", "error", err)
		return nil, err
	}
	logger.Info("order submission sequence completed", "orderId", confirmation.OrderID)
	return &confirmation, nil
}
