package ports

import (
	"context"

	"github.com/vegefoods/cart-service/internal/domains/cart/domain"
)

// Repository persists the single cart record for one storage key.
//
// Load returns the sanitized stored cart. A missing or malformed record
// degrades to the empty cart with a logged warning; only genuine I/O
// failures surface as errors. Save persists the sanitized form of the
// given cart whole (no partial updates) and returns the canonical value
// actually stored, so callers operate on what the store will replay.
type Repository interface {
	Load(ctx context.Context) (domain.Cart, error)
	Save(ctx context.Context, cart domain.Cart) (domain.Cart, error)
}
