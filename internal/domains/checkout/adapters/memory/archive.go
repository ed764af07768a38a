package memory

import (
	"context"
	"sync"

	"github.com/vegefoods/cart-service/internal/domains/checkout/domain"
	"github.com/vegefoods/cart-service/internal/domains/checkout/ports"
)

var _ ports.OrderArchive = (*Archive)(nil)

// Archive keeps submitted orders in process memory. Used for tests and
// as the fallback when no durable backend is configured.
type Archive struct {
	mu     sync.RWMutex
	orders []domain.Order
}

func NewArchive() *Archive {
	return &Archive{}
}

func (a *Archive) Record(_ context.Context, order domain.Order) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	order.Lines = append([]domain.OrderLine{}, order.Lines...)
	a.orders = append(a.orders, order)
	return nil
}

// Orders returns a copy of every recorded order, oldest first.
func (a *Archive) Orders() []domain.Order {
	a.mu.RLock()
	defer a.mu.RUnlock()
	out := make([]domain.Order, 0, len(a.orders))
	for _, order := range a.orders {
		order.Lines = append([]domain.OrderLine{}, order.Lines...)
		out = append(out, order)
	}
	return out
}
