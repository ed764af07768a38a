package application

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/vegefoods/cart-service/internal/domains/cart/domain"
	"github.com/vegefoods/cart-service/internal/domains/cart/ports"
)

// Observer is invoked with the canonical cart after every successful
// mutation and after an external-change refresh.
type Observer func(domain.Cart)

// Store orchestrates the cart use cases. Each mutation is an atomic
// load-mutate-sanitize-save cycle over the single persisted record;
// in-process calls are serialized by a mutex, cross-process writers stay
// last-write-wins.
type Store struct {
	repo    ports.Repository
	catalog domain.Catalog
	logger  *slog.Logger

	mu        sync.Mutex
	observers []Observer
}

// Option configures optional Store collaborators.
type Option func(*Store)

// WithLogger injects a slog logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewStore wires the cart store over a repository and a promo catalog.
func NewStore(repo ports.Repository, catalog domain.Catalog, opts ...Option) *Store {
	s := &Store{
		repo:    repo,
		catalog: catalog,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Subscribe registers an observer notified after each persisted change.
func (s *Store) Subscribe(fn Observer) {
	if fn == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observers = append(s.observers, fn)
}

// Cart returns the current sanitized cart and its computed totals.
func (s *Store) Cart(ctx context.Context) (domain.Cart, domain.Totals, error) {
	cart, err := s.repo.Load(ctx)
	if err != nil {
		return domain.EmptyCart(), domain.Totals{}, mapError(err)
	}
	return cart, domain.ComputeTotals(cart, s.catalog), nil
}

// AddItem merges a product into the cart. Quantity is clamped to at
// least 1 and price to at least 0; a product without id or name is
// silently ignored.
func (s *Store) AddItem(ctx context.Context, product ports.ProductInput, quantity int64) (*ports.MutationResult, error) {
	if product.ID == "" || product.Name == "" {
		return s.unchanged(ctx)
	}
	if quantity < 1 {
		quantity = 1
	}
	price := product.Price
	if price < 0 {
		price = 0
	}
	return s.mutate(ctx, func(cart *domain.Cart) (bool, string) {
		if i := cart.FindItem(product.ID); i >= 0 {
			cart.Items[i].Quantity += quantity
		} else {
			url := product.URL
			if url == "" {
				url = domain.DefaultProductURL
			}
			cart.Items = append(cart.Items, domain.CartItem{
				ID:       product.ID,
				Name:     product.Name,
				Price:    price,
				Quantity: quantity,
				Image:    product.Image,
				URL:      url,
				Category: product.Category,
			})
		}
		return true, fmt.Sprintf("« %s » a été ajouté au panier.", product.Name)
	})
}

// SetQuantity sets an existing item's quantity to max(1, quantity).
// Unknown ids are a no-op.
func (s *Store) SetQuantity(ctx context.Context, id string, quantity int64) (*ports.MutationResult, error) {
	if quantity < 1 {
		quantity = 1
	}
	return s.mutate(ctx, func(cart *domain.Cart) (bool, string) {
		i := cart.FindItem(id)
		if i < 0 {
			return false, ""
		}
		cart.Items[i].Quantity = quantity
		return true, ""
	})
}

// RemoveItem drops the item with the given id, if present.
func (s *Store) RemoveItem(ctx context.Context, id string) (*ports.MutationResult, error) {
	return s.mutate(ctx, func(cart *domain.Cart) (bool, string) {
		i := cart.FindItem(id)
		if i < 0 {
			return false, ""
		}
		removed := cart.Items[i]
		cart.Items = append(cart.Items[:i], cart.Items[i+1:]...)
		return true, fmt.Sprintf("« %s » a été retiré du panier.", removed.Name)
	})
}

// Clear resets the cart to empty with no promo.
func (s *Store) Clear(ctx context.Context) (*ports.MutationResult, error) {
	return s.mutate(ctx, func(cart *domain.Cart) (bool, string) {
		*cart = domain.EmptyCart()
		return true, ""
	})
}

// ApplyPromo stores, replaces, or clears the promo reference. An empty
// code clears the promo and still reports success; a code the catalog
// does not know reports failure and leaves the cart untouched.
func (s *Store) ApplyPromo(ctx context.Context, code string) (*ports.PromoResult, error) {
	normalized, promo, known := s.catalog.Lookup(code)

	if normalized == "" {
		result, err := s.mutate(ctx, func(cart *domain.Cart) (bool, string) {
			cart.Promo = nil
			return true, ""
		})
		if err != nil {
			return nil, err
		}
		return &ports.PromoResult{
			Cart:    result.Cart,
			Totals:  result.Totals,
			Success: true,
			Message: "Aucune promotion appliquée.",
		}, nil
	}

	if !known {
		cart, totals, err := s.Cart(ctx)
		if err != nil {
			return nil, err
		}
		return &ports.PromoResult{
			Cart:    cart,
			Totals:  totals,
			Success: false,
			Message: "Ce code n'est pas valide.",
		}, nil
	}

	result, err := s.mutate(ctx, func(cart *domain.Cart) (bool, string) {
		cart.Promo = &domain.PromoRef{Code: normalized}
		return true, ""
	})
	if err != nil {
		return nil, err
	}
	return &ports.PromoResult{
		Cart:    result.Cart,
		Totals:  result.Totals,
		Success: true,
		Message: fmt.Sprintf("Code %s appliqué : %s.", normalized, promo.Label),
	}, nil
}

// Refresh reloads the persisted record and notifies observers, used
// when an external writer changed the record underneath this process.
func (s *Store) Refresh(ctx context.Context) error {
	cart, err := s.repo.Load(ctx)
	if err != nil {
		return mapError(err)
	}
	s.notify(cart)
	return nil
}

// mutate runs one load-mutate-sanitize-save cycle under the store lock.
// When apply reports no change the persisted record is left untouched.
func (s *Store) mutate(ctx context.Context, apply func(*domain.Cart) (bool, string)) (*ports.MutationResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cart, err := s.repo.Load(ctx)
	if err != nil {
		return nil, mapError(err)
	}
	changed, announcement := apply(&cart)
	if !changed {
		return &ports.MutationResult{
			Cart:   cart,
			Totals: domain.ComputeTotals(cart, s.catalog),
		}, nil
	}
	saved, err := s.repo.Save(ctx, cart)
	if err != nil {
		return nil, mapError(err)
	}
	result := &ports.MutationResult{
		Cart:         saved,
		Totals:       domain.ComputeTotals(saved, s.catalog),
		Changed:      true,
		Announcement: announcement,
	}
	s.notifyLocked(saved)
	return result, nil
}

// unchanged reports the current state without touching storage, for
// mutations that were silently ignored.
func (s *Store) unchanged(ctx context.Context) (*ports.MutationResult, error) {
	cart, totals, err := s.Cart(ctx)
	if err != nil {
		return nil, err
	}
	return &ports.MutationResult{Cart: cart, Totals: totals}, nil
}

func (s *Store) notify(cart domain.Cart) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notifyLocked(cart)
}

func (s *Store) notifyLocked(cart domain.Cart) {
	for _, observer := range s.observers {
		observer(cart.Clone())
	}
}

var _ ports.Service = (*Store)(nil)
