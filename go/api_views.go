package cartserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	cartports "github.com/vegefoods/cart-service/internal/domains/cart/ports"
	"github.com/vegefoods/cart-service/internal/views"
)

// ViewsAPI serves the pre-rendered storefront surface projections.
type ViewsAPI struct {
	service cartports.Service
}

// NewViewsAPI creates a ViewsAPI backed by the provided cart service.
func NewViewsAPI(service cartports.Service) ViewsAPI {
	return ViewsAPI{service: service}
}

// Get /v2/views/badge
// Header cart counter
func (api *ViewsAPI) GetBadge(c *gin.Context) {
	cart, _, err := api.service.Cart(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, views.RenderBadge(cart))
}

// Get /v2/views/cart
// Itemized cart page with totals block and promo entry state
func (api *ViewsAPI) GetCartPage(c *gin.Context) {
	cart, totals, err := api.service.Cart(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, views.RenderCartPage(cart, totals))
}

// Get /v2/views/checkout
// Checkout order recap with submit enablement
func (api *ViewsAPI) GetCheckoutSummary(c *gin.Context) {
	cart, totals, err := api.service.Cart(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, views.RenderCheckoutSummary(cart, totals))
}
