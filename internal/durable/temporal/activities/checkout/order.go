package checkout

import (
	"context"
	"errors"

	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/temporal"

	"github.com/vegefoods/cart-service/internal/domains/checkout/domain"
	"github.com/vegefoods/cart-service/internal/domains/checkout/ports"
)

const (
	// SubmitOrderActivityName runs the simulated checkout against the cart.
	SubmitOrderActivityName = "checkout.activities.SubmitOrder"

	// EmptyCartErrorType marks the non-retryable empty-cart rejection so
	// callers can map it back to the domain error across the wire.
	EmptyCartErrorType = "EmptyCart"
)

// Activities groups activities that operate on the checkout bounded context.
type Activities struct {
	service ports.Service
}

// NewActivities wires the checkout service into the Temporal activities bundle.
func NewActivities(service ports.Service) *Activities {
	return &Activities{service: service}
}

// SubmitOrder runs the checkout use case and returns the confirmation.
// An empty cart is a business rejection, not a transient fault, so it
// surfaces as a non-retryable application error.
func (a *Activities) SubmitOrder(ctx context.Context, request domain.OrderRequest) (*domain.Confirmation, error) {
	logger := activity.GetLogger(ctx)
	if a == nil || a.service == nil {
		logger.Error("order submission activity not initialized")
		return nil, errors.New("order submission activity not initialized")
	}
	logger.Info("SubmitOrder activity started")
	confirmation, err := a.service.SubmitOrder(ctx, request)
	if err != nil {
		if errors.Is(err, domain.ErrEmptyCart) {
			logger.Info("SubmitOrder rejected an empty cart")
			return nil, temporal.NewNonRetryableApplicationError(err.Error(), EmptyCartErrorType, err)
		}
		logger.Error("SubmitOrder activity failed", "error", err)
		return nil, err
	}
	logger.Info("SubmitOrder activity completed", "orderId", confirmation.OrderID)
	return confirmation, nil
}
