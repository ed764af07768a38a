package domain

import (
	"errors"
	"fmt"
	"strconv"
	"time"
)

// ErrEmptyCart rejects a submission against an empty cart.
var ErrEmptyCart = errors.New("le panier est vide, la commande ne peut pas être créée")

// CustomerInfo is the checkout form payload. Only the first name feeds
// the confirmation message; everything else is recorded as supplied.
type CustomerInfo struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string
	Address   string
	City      string
	Notes     string
}

// OrderRequest is a checkout submission: the form fields plus an
// optional promo code entered on the checkout page.
type OrderRequest struct {
	Customer  CustomerInfo
	PromoCode string
}

// OrderLine is a snapshot of one cart item at submission time.
type OrderLine struct {
	ProductID string
	Name      string
	Quantity  int64
	LineTotal int64
}

// Order is the simulated order captured when a checkout is submitted.
// There is no payment or fulfilment behind it; it exists for the
// confirmation message and the archive.
type Order struct {
	ID        string
	Customer  CustomerInfo
	Lines     []OrderLine
	Subtotal  int64
	Discount  int64
	Delivery  int64
	Total     int64
	PromoCode string
	CreatedAt time.Time
}

// Confirmation is returned to the storefront after a submission.
type Confirmation struct {
	OrderID string
	Message string
}

// NewOrderID derives the order number from the submission instant:
// "VEG-" plus the last six digits of the unix-millisecond timestamp.
func NewOrderID(now time.Time) string {
	millis := strconv.FormatInt(now.UnixMilli(), 10)
	if len(millis) > 6 {
		millis = millis[len(millis)-6:]
	}
	return "VEG-" + millis
}

// ConfirmationMessage builds the customer-facing confirmation line.
func ConfirmationMessage(firstName, orderID string) string {
	if firstName == "" {
		firstName = "client·e"
	}
	return fmt.Sprintf(
		"Merci %s, votre commande %s a bien été enregistrée. Nous revenons vers vous sous 2 heures pour confirmer la livraison.",
		firstName, orderID,
	)
}
