package cartserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Route is the information for every API endpoint.
type Route struct {
	Name        string
	Method      string
	Pattern     string
	HandlerFunc gin.HandlerFunc
}

// Routes is a map of defined API endpoints.
type Routes map[string][]Route

// ApiHandleFunctions groups the handler implementations per API.
type ApiHandleFunctions struct {
	CartAPI     CartAPI
	ViewsAPI    ViewsAPI
	CheckoutAPI CheckoutAPI
}

// NewRouter returns a new gin engine with all routes attached.
func NewRouter(handleFunctions ApiHandleFunctions) *gin.Engine {
	return NewRouterWithGinEngine(gin.Default(), handleFunctions)
}

// NewRouterWithGinEngine attaches all routes to an existing gin engine.
func NewRouterWithGinEngine(router *gin.Engine, handleFunctions ApiHandleFunctions) *gin.Engine {
	for _, routes := range getRoutes(handleFunctions) {
		for _, route := range routes {
			if route.HandlerFunc == nil {
				route.HandlerFunc = DefaultHandleFunc
			}
			switch route.Method {
			case http.MethodGet:
				router.GET(route.Pattern, route.HandlerFunc)
			case http.MethodPost:
				router.POST(route.Pattern, route.HandlerFunc)
			case http.MethodPut:
				router.PUT(route.Pattern, route.HandlerFunc)
			case http.MethodPatch:
				router.PATCH(route.Pattern, route.HandlerFunc)
			case http.MethodDelete:
				router.DELETE(route.Pattern, route.HandlerFunc)
			}
		}
	}
	return router
}

// DefaultHandleFunc returns 501 for routes without an implementation.
func DefaultHandleFunc(c *gin.Context) {
	c.String(http.StatusNotImplemented, "501 not implemented")
}

func getRoutes(handleFunctions ApiHandleFunctions) Routes {
	return Routes{
		"CartAPI": {
			{
				"GetCart",
				http.MethodGet,
				"/v2/cart",
				handleFunctions.CartAPI.GetCart,
			},
			{
				"AddItem",
				http.MethodPost,
				"/v2/cart/items",
				handleFunctions.CartAPI.AddItem,
			},
			{
				"SetQuantity",
				http.MethodPut,
				"/v2/cart/items/:itemId",
				handleFunctions.CartAPI.SetQuantity,
			},
			{
				"IncrementItem",
				http.MethodPost,
				"/v2/cart/items/:itemId/increment",
				handleFunctions.CartAPI.IncrementItem,
			},
			{
				"DecrementItem",
				http.MethodPost,
				"/v2/cart/items/:itemId/decrement",
				handleFunctions.CartAPI.DecrementItem,
			},
			{
				"RemoveItem",
				http.MethodDelete,
				"/v2/cart/items/:itemId",
				handleFunctions.CartAPI.RemoveItem,
			},
			{
				"ClearCart",
				http.MethodDelete,
				"/v2/cart",
				handleFunctions.CartAPI.ClearCart,
			},
			{
				"ApplyPromo",
				http.MethodPost,
				"/v2/cart/promo",
				handleFunctions.CartAPI.ApplyPromo,
			},
		},
		"ViewsAPI": {
			{
				"GetBadge",
				http.MethodGet,
				"/v2/views/badge",
				handleFunctions.ViewsAPI.GetBadge,
			},
			{
				"GetCartPage",
				http.MethodGet,
				"/v2/views/cart",
				handleFunctions.ViewsAPI.GetCartPage,
			},
			{
				"GetCheckoutSummary",
				http.MethodGet,
				"/v2/views/checkout",
				handleFunctions.ViewsAPI.GetCheckoutSummary,
			},
		},
		"CheckoutAPI": {
			{
				"SubmitOrder",
				http.MethodPost,
				"/v2/checkout/orders",
				handleFunctions.CheckoutAPI.SubmitOrder,
			},
		},
	}
}
