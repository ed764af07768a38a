// Package mapper defines the transport-layer shapes exchanged with the
// cart HTTP handlers and their conversions to and from the domain.
package mapper

import (
	"github.com/vegefoods/cart-service/internal/domains/cart/domain"
	"github.com/vegefoods/cart-service/internal/domains/cart/ports"
)

// AddItemRequest is the payload for adding a product to the cart.
// Quantity defaults to 1 when omitted.
type AddItemRequest struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Price    int64  `json:"price"`
	Image    string `json:"image"`
	URL      string `json:"url"`
	Category string `json:"category"`
	Quantity int64  `json:"quantity"`
}

// QuantityRequest pins an item quantity.
type QuantityRequest struct {
	Quantity int64 `json:"quantity"`
}

// PromoRequest carries a promo code to apply; an empty code clears the
// active promo.
type PromoRequest struct {
	Code string `json:"code"`
}

// CartItem is the transport shape of one cart line.
type CartItem struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Price     int64  `json:"price"`
	Quantity  int64  `json:"quantity"`
	Image     string `json:"image"`
	URL       string `json:"url"`
	Category  string `json:"category,omitempty"`
	LineTotal int64  `json:"lineTotal"`
}

// Totals is the transport shape of the computed totals block.
type Totals struct {
	Subtotal   int64  `json:"subtotal"`
	Discount   int64  `json:"discount"`
	Delivery   int64  `json:"delivery"`
	Total      int64  `json:"total"`
	PromoCode  string `json:"promoCode,omitempty"`
	PromoLabel string `json:"promoLabel,omitempty"`
}

// CartResponse is the canonical cart state returned by every endpoint.
type CartResponse struct {
	Items     []CartItem `json:"items"`
	ItemCount int64      `json:"itemCount"`
	Totals    Totals     `json:"totals"`
}

// MutationResponse reports a mutation outcome alongside the new state.
type MutationResponse struct {
	Cart         CartResponse `json:"cart"`
	Changed      bool         `json:"changed"`
	Announcement string       `json:"announcement,omitempty"`
}

// PromoResponse reports a promo application attempt.
type PromoResponse struct {
	Cart    CartResponse `json:"cart"`
	Success bool         `json:"success"`
	Message string       `json:"message"`
}

// ToProductInput converts an add-item payload to the application input.
func ToProductInput(req AddItemRequest) ports.ProductInput {
	return ports.ProductInput{
		ID:       req.ID,
		Name:     req.Name,
		Price:    req.Price,
		Image:    req.Image,
		URL:      req.URL,
		Category: req.Category,
	}
}

// FromCart converts domain state to the transport representation.
func FromCart(cart domain.Cart, totals domain.Totals) CartResponse {
	items := make([]CartItem, 0, len(cart.Items))
	for _, item := range cart.Items {
		items = append(items, CartItem{
			ID:        item.ID,
			Name:      item.Name,
			Price:     item.Price,
			Quantity:  item.Quantity,
			Image:     item.Image,
			URL:       item.URL,
			Category:  item.Category,
			LineTotal: item.LineTotal(),
		})
	}
	response := CartResponse{
		Items:     items,
		ItemCount: cart.ItemCount(),
		Totals: Totals{
			Subtotal: totals.Subtotal,
			Discount: totals.Discount,
			Delivery: totals.Delivery,
			Total:    totals.Total,
		},
	}
	if totals.Promo != nil {
		response.Totals.PromoCode = totals.Promo.Code
		response.Totals.PromoLabel = totals.Promo.Label
	}
	return response
}

// FromMutation converts a mutation result to the transport representation.
func FromMutation(result *ports.MutationResult) MutationResponse {
	if result == nil {
		return MutationResponse{}
	}
	return MutationResponse{
		Cart:         FromCart(result.Cart, result.Totals),
		Changed:      result.Changed,
		Announcement: result.Announcement,
	}
}

// FromPromo converts a promo result to the transport representation.
func FromPromo(result *ports.PromoResult) PromoResponse {
	if result == nil {
		return PromoResponse{}
	}
	return PromoResponse{
		Cart:    FromCart(result.Cart, result.Totals),
		Success: result.Success,
		Message: result.Message,
	}
}
