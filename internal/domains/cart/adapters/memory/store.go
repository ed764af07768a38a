package memory

import (
	"context"
	"sync"

	"github.com/vegefoods/cart-service/internal/domains/cart/domain"
	"github.com/vegefoods/cart-service/internal/domains/cart/ports"
)

var _ ports.Repository = (*Store)(nil)

// Store keeps the cart record in process memory. Used for tests and as
// the fallback when no durable backend is configured.
type Store struct {
	mu   sync.RWMutex
	cart domain.Cart
}

func NewStore() *Store {
	return &Store{cart: domain.EmptyCart()}
}

func (s *Store) Load(_ context.Context) (domain.Cart, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cart.Clone(), nil
}

func (s *Store) Save(_ context.Context, cart domain.Cart) (domain.Cart, error) {
	sanitized := domain.Sanitize(cart)
	s.mu.Lock()
	s.cart = sanitized.Clone()
	s.mu.Unlock()
	return sanitized, nil
}
