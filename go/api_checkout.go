package cartserver

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	checkouthttpmapper "github.com/vegefoods/cart-service/internal/domains/checkout/adapters/http/mapper"
	checkoutdomain "github.com/vegefoods/cart-service/internal/domains/checkout/domain"
	checkoutports "github.com/vegefoods/cart-service/internal/domains/checkout/ports"
)

// CheckoutAPI wires HTTP transport with the checkout bounded context
// service and workflows.
type CheckoutAPI struct {
	service   checkoutports.Service
	workflows checkoutports.WorkflowOrchestrator
}

// NewCheckoutAPI creates a CheckoutAPI backed by the provided service.
func NewCheckoutAPI(service checkoutports.Service, workflows checkoutports.WorkflowOrchestrator) CheckoutAPI {
	return CheckoutAPI{service: service, workflows: workflows}
}

// Post /v2/checkout/orders
// Submit the checkout form against the current cart
func (api *CheckoutAPI) SubmitOrder(c *gin.Context) {
	var payload checkouthttpmapper.OrderRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	confirmation, err := api.submit(c.Request.Context(), checkouthttpmapper.ToDomainRequest(payload))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, checkouthttpmapper.FromConfirmation(confirmation))
}

func (api *CheckoutAPI) submit(ctx context.Context, request checkoutdomain.OrderRequest) (*checkoutdomain.Confirmation, error) {
	if api.workflows != nil {
		return api.workflows.SubmitOrder(ctx, request)
	}
	return api.service.SubmitOrder(ctx, request)
}
