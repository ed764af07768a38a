package ports

import (
	"context"

	"github.com/vegefoods/cart-service/internal/domains/checkout/domain"
)

// WorkflowOrchestrator runs the order submission, either inline or on a
// durable workflow engine.
type WorkflowOrchestrator interface {
	SubmitOrder(ctx context.Context, request domain.OrderRequest) (*domain.Confirmation, error)
}
