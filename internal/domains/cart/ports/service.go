package ports

import (
	"context"

	"github.com/vegefoods/cart-service/internal/domains/cart/domain"
)

// ProductInput carries the product attributes a storefront surface
// exposes on its product cards.
type ProductInput struct {
	ID       string
	Name     string
	Price    int64
	Image    string
	URL      string
	Category string
}

// MutationResult reports the outcome of a cart mutation. Changed is
// false when the request was silently ignored (missing id, unknown
// item); Announcement carries the polite status line surfaces read out.
type MutationResult struct {
	Cart         domain.Cart
	Totals       domain.Totals
	Changed      bool
	Announcement string
}

// PromoResult reports the outcome of a promo application attempt.
// Success with an empty code means the promo was cleared; an unknown
// code reports failure and leaves the cart untouched.
type PromoResult struct {
	Cart    domain.Cart
	Totals  domain.Totals
	Success bool
	Message string
}

// Service exposes the cart store use cases to adapters. Every mutation
// is a full load-mutate-sanitize-save cycle followed by observer
// notification.
type Service interface {
	Cart(ctx context.Context) (domain.Cart, domain.Totals, error)
	AddItem(ctx context.Context, product ProductInput, quantity int64) (*MutationResult, error)
	SetQuantity(ctx context.Context, id string, quantity int64) (*MutationResult, error)
	RemoveItem(ctx context.Context, id string) (*MutationResult, error)
	Clear(ctx context.Context) (*MutationResult, error)
	ApplyPromo(ctx context.Context, code string) (*PromoResult, error)
}
