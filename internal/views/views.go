// Package views projects cart state onto the storefront's three display
// surfaces: the header badge, the cart page, and the checkout summary.
// Renderers are pure and idempotent; surfaces re-invoke them after every
// mutation and on lifecycle or external-change events.
package views

import (
	"fmt"

	"github.com/vegefoods/cart-service/internal/domains/cart/domain"
)

// BadgeView is the header cart counter.
type BadgeView struct {
	Count int64  `json:"count"`
	Label string `json:"label"`
}

// CartRow is one line of the cart page table.
type CartRow struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Category    string `json:"category,omitempty"`
	Image       string `json:"image"`
	URL         string `json:"url"`
	Quantity    int64  `json:"quantity"`
	UnitPrice   string `json:"unitPrice"`
	LineTotal   string `json:"lineTotal"`
	CanDecrease bool   `json:"canDecrease"`
}

// CartPageView is the itemized cart table plus its totals block and
// promo entry state.
type CartPageView struct {
	Empty           bool      `json:"empty"`
	Rows            []CartRow `json:"rows"`
	Subtotal        string    `json:"subtotal"`
	Delivery        string    `json:"delivery"`
	Total           string    `json:"total"`
	DiscountVisible bool      `json:"discountVisible"`
	Discount        string    `json:"discount"`
	PromoCode       string    `json:"promoCode"`
	Note            string    `json:"note"`
}

// SummaryLine is one entry of the checkout order recap.
type SummaryLine struct {
	Label  string `json:"label"`
	Amount string `json:"amount"`
}

// CheckoutSummaryView is the checkout recap with the submit-enablement
// flag; submission stays disabled while the cart is empty.
type CheckoutSummaryView struct {
	Empty           bool          `json:"empty"`
	Lines           []SummaryLine `json:"lines"`
	Subtotal        string        `json:"subtotal"`
	Delivery        string        `json:"delivery"`
	Total           string        `json:"total"`
	DiscountVisible bool          `json:"discountVisible"`
	Discount        string        `json:"discount"`
	PromoCode       string        `json:"promoCode,omitempty"`
	SubmitEnabled   bool          `json:"submitEnabled"`
}

const deliveryFreeLabel = "Offerte"

// RenderBadge projects the cart onto the header counter.
func RenderBadge(cart domain.Cart) BadgeView {
	count := cart.ItemCount()
	label := "0 article dans le panier"
	switch {
	case count == 1:
		label = "1 article dans le panier"
	case count > 1:
		label = fmt.Sprintf("%d articles dans le panier", count)
	}
	return BadgeView{Count: count, Label: label}
}

// RenderCartPage projects the cart and its totals onto the cart page.
func RenderCartPage(cart domain.Cart, totals domain.Totals) CartPageView {
	view := CartPageView{
		Empty:    cart.IsEmpty(),
		Rows:     make([]CartRow, 0, len(cart.Items)),
		Subtotal: domain.FormatAmount(totals.Subtotal),
		Delivery: deliveryLabel(totals.Delivery),
		Total:    domain.FormatAmount(totals.Total),
		Discount: "-0 " + domain.CurrencySuffix,
		Note:     cartNote(totals.Subtotal),
	}
	for _, item := range cart.Items {
		view.Rows = append(view.Rows, CartRow{
			ID:          item.ID,
			Name:        item.Name,
			Category:    item.Category,
			Image:       item.Image,
			URL:         item.URL,
			Quantity:    item.Quantity,
			UnitPrice:   domain.FormatAmount(item.Price),
			LineTotal:   domain.FormatAmount(item.LineTotal()),
			CanDecrease: item.Quantity > 1,
		})
	}
	if totals.Discount > 0 {
		view.DiscountVisible = true
		view.Discount = "- " + domain.FormatAmount(totals.Discount)
	}
	if totals.Promo != nil {
		view.PromoCode = totals.Promo.Code
	}
	return view
}

// RenderCheckoutSummary projects the cart and its totals onto the
// checkout recap.
func RenderCheckoutSummary(cart domain.Cart, totals domain.Totals) CheckoutSummaryView {
	view := CheckoutSummaryView{
		Empty:         cart.IsEmpty(),
		Lines:         make([]SummaryLine, 0, len(cart.Items)),
		Subtotal:      domain.FormatAmount(totals.Subtotal),
		Delivery:      deliveryLabel(totals.Delivery),
		Total:         domain.FormatAmount(totals.Total),
		Discount:      "-0 " + domain.CurrencySuffix,
		SubmitEnabled: !cart.IsEmpty(),
	}
	for _, item := range cart.Items {
		view.Lines = append(view.Lines, SummaryLine{
			Label:  fmt.Sprintf("%s × %d", item.Name, item.Quantity),
			Amount: domain.FormatAmount(item.LineTotal()),
		})
	}
	if totals.Discount > 0 {
		view.DiscountVisible = true
		view.Discount = "- " + domain.FormatAmount(totals.Discount)
	}
	if totals.Promo != nil {
		view.PromoCode = totals.Promo.Code
	}
	return view
}

func deliveryLabel(delivery int64) string {
	if delivery == 0 {
		return deliveryFreeLabel
	}
	return domain.FormatAmount(delivery)
}

// cartNote picks the reassurance line shown under the cart totals.
func cartNote(subtotal int64) string {
	const payment = "Paiement sécurisé · Orange Money, MTN, cartes Visa/Mastercard"
	switch {
	case subtotal == 0:
		return payment
	case subtotal < domain.FreeDeliveryThreshold:
		remaining := domain.FreeDeliveryThreshold - subtotal
		return fmt.Sprintf("Ajoutez %s pour profiter de la livraison offerte.", domain.FormatAmount(remaining))
	default:
		return "Livraison offerte sur votre commande. " + payment
	}
}
