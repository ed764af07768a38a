package application

import (
	"context"
	"fmt"

	"github.com/vegefoods/cart-service/internal/domains/cart/ports"
)

// Command is the tagged mutation variant dispatched through the store.
// Surfaces translate their events into commands instead of calling the
// service methods directly, which keeps dispatch testable without a UI.
type Command interface {
	isCommand()
}

// AddItem merges a product into the cart.
type AddItem struct {
	Product  ports.ProductInput
	Quantity int64
}

// SetQuantity pins an existing item's quantity.
type SetQuantity struct {
	ID       string
	Quantity int64
}

// RemoveItem drops an item by id.
type RemoveItem struct {
	ID string
}

// Clear resets the cart.
type Clear struct{}

// ApplyPromo stores or clears the promo reference.
type ApplyPromo struct {
	Code string
}

func (AddItem) isCommand()     {}
func (SetQuantity) isCommand() {}
func (RemoveItem) isCommand()  {}
func (Clear) isCommand()       {}
func (ApplyPromo) isCommand()  {}

// Outcome is the uniform dispatch result. For ApplyPromo, Success and
// Message carry the promo feedback; other commands always succeed.
type Outcome struct {
	ports.MutationResult
	Success bool
	Message string
}

// Dispatch routes a command to the matching store operation.
func (s *Store) Dispatch(ctx context.Context, cmd Command) (*Outcome, error) {
	switch c := cmd.(type) {
	case AddItem:
		return asOutcome(s.AddItem(ctx, c.Product, c.Quantity))
	case SetQuantity:
		return asOutcome(s.SetQuantity(ctx, c.ID, c.Quantity))
	case RemoveItem:
		return asOutcome(s.RemoveItem(ctx, c.ID))
	case Clear:
		return asOutcome(s.Clear(ctx))
	case ApplyPromo:
		result, err := s.ApplyPromo(ctx, c.Code)
		if err != nil {
			return nil, err
		}
		return &Outcome{
			MutationResult: ports.MutationResult{
				Cart:    result.Cart,
				Totals:  result.Totals,
				Changed: result.Success,
			},
			Success: result.Success,
			Message: result.Message,
		}, nil
	default:
		return nil, fmt.Errorf("unknown cart command %T", cmd)
	}
}

func asOutcome(result *ports.MutationResult, err error) (*Outcome, error) {
	if err != nil {
		return nil, err
	}
	return &Outcome{MutationResult: *result, Success: true, Message: result.Announcement}, nil
}
