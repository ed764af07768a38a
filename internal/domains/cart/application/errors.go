package application

import (
	"errors"
	"fmt"
)

// ErrStorage signals the cart record could not be read or written.
// Malformed stored data never raises it; only genuine I/O failures do.
var ErrStorage = errors.New("cart storage unavailable")

func mapError(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrStorage, err)
}
