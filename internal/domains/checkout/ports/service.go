package ports

import (
	"context"

	"github.com/vegefoods/cart-service/internal/domains/checkout/domain"
)

// Service exposes the checkout use case to adapters.
type Service interface {
	SubmitOrder(ctx context.Context, request domain.OrderRequest) (*domain.Confirmation, error)
}
