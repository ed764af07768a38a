package cartserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	carthttpmapper "github.com/vegefoods/cart-service/internal/domains/cart/adapters/http/mapper"
	cartports "github.com/vegefoods/cart-service/internal/domains/cart/ports"
)

// CartAPI wires HTTP transport with the cart bounded context service.
type CartAPI struct {
	service cartports.Service
}

// NewCartAPI creates a CartAPI backed by the provided service.
func NewCartAPI(service cartports.Service) CartAPI {
	return CartAPI{service: service}
}

// Get /v2/cart
// Current cart state with computed totals
func (api *CartAPI) GetCart(c *gin.Context) {
	cart, totals, err := api.service.Cart(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, carthttpmapper.FromCart(cart, totals))
}

// Post /v2/cart/items
// Add a product to the cart, merging with an existing line
func (api *CartAPI) AddItem(c *gin.Context) {
	var payload carthttpmapper.AddItemRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	result, err := api.service.AddItem(c.Request.Context(), carthttpmapper.ToProductInput(payload), payload.Quantity)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, carthttpmapper.FromMutation(result))
}

// Put /v2/cart/items/:itemId
// Pin an item quantity
func (api *CartAPI) SetQuantity(c *gin.Context) {
	var payload carthttpmapper.QuantityRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	result, err := api.service.SetQuantity(c.Request.Context(), c.Param("itemId"), payload.Quantity)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, carthttpmapper.FromMutation(result))
}

// Post /v2/cart/items/:itemId/increment
// Bump an item quantity by one
func (api *CartAPI) IncrementItem(c *gin.Context) {
	api.stepQuantity(c, +1)
}

// Post /v2/cart/items/:itemId/decrement
// Lower an item quantity by one, stopping at one
func (api *CartAPI) DecrementItem(c *gin.Context) {
	api.stepQuantity(c, -1)
}

// stepQuantity reads the current quantity and re-pins it shifted by
// delta. Stepping below one is a silent no-op, like the storefront's
// disabled minus button.
func (api *CartAPI) stepQuantity(c *gin.Context, delta int64) {
	ctx := c.Request.Context()
	id := c.Param("itemId")
	cart, totals, err := api.service.Cart(ctx)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	i := cart.FindItem(id)
	if i < 0 || cart.Items[i].Quantity+delta < 1 {
		c.JSON(http.StatusOK, carthttpmapper.MutationResponse{Cart: carthttpmapper.FromCart(cart, totals)})
		return
	}
	result, err := api.service.SetQuantity(ctx, id, cart.Items[i].Quantity+delta)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, carthttpmapper.FromMutation(result))
}

// Delete /v2/cart/items/:itemId
// Remove an item from the cart
func (api *CartAPI) RemoveItem(c *gin.Context) {
	result, err := api.service.RemoveItem(c.Request.Context(), c.Param("itemId"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, carthttpmapper.FromMutation(result))
}

// Delete /v2/cart
// Empty the cart and drop any promo
func (api *CartAPI) ClearCart(c *gin.Context) {
	result, err := api.service.Clear(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, carthttpmapper.FromMutation(result))
}

// Post /v2/cart/promo
// Apply, replace, or clear the promo code
func (api *CartAPI) ApplyPromo(c *gin.Context) {
	var payload carthttpmapper.PromoRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	result, err := api.service.ApplyPromo(c.Request.Context(), payload.Code)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, carthttpmapper.FromPromo(result))
}
