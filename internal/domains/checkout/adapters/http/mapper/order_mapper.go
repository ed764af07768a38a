// Package mapper defines the transport-layer shapes exchanged with the
// checkout HTTP handlers.
package mapper

import (
	checkoutdomain "github.com/vegefoods/cart-service/internal/domains/checkout/domain"
)

// OrderRequest is the checkout form payload.
type OrderRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
	City      string `json:"city"`
	Notes     string `json:"notes"`
	PromoCode string `json:"promoCode"`
}

// ConfirmationResponse is returned after a successful submission.
type ConfirmationResponse struct {
	OrderID string `json:"orderId"`
	Message string `json:"message"`
}

// ToDomainRequest converts the transport payload to the domain request.
func ToDomainRequest(req OrderRequest) checkoutdomain.OrderRequest {
	return checkoutdomain.OrderRequest{
		Customer: checkoutdomain.CustomerInfo{
			FirstName: req.FirstName,
			LastName:  req.LastName,
			Email:     req.Email,
			Phone:     req.Phone,
			Address:   req.Address,
			City:      req.City,
			Notes:     req.Notes,
		},
		PromoCode: req.PromoCode,
	}
}

// FromConfirmation converts the domain confirmation to the transport shape.
func FromConfirmation(confirmation *checkoutdomain.Confirmation) ConfirmationResponse {
	if confirmation == nil {
		return ConfirmationResponse{}
	}
	return ConfirmationResponse{
		OrderID: confirmation.OrderID,
		Message: confirmation.Message,
	}
}
