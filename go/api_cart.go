package restaurantserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	carthttpmapper "github.com/firaolassefa/restaurant-management-system/internal/domains/cart/adapters/http/mapper"
	cartports "github.com/firaolassefa/restaurant-management-system/internal/domains/cart/ports"
	ordershttpmapper "github.com/firaolassefa/restaurant-management-system/internal/domains/orders/adapters/http/mapper"
	ordersports "github.com/firaolassefa/restaurant-management-system/internal/domains/orders/ports"
)

// IdempotencyKeyHeader lets clients retry a checkout without placing a second order.
const IdempotencyKeyHeader = "Idempotency-Key"

// CartAPI wires HTTP transport with the cart service. Orders backs reorders.
type CartAPI struct {
	service cartports.Service
	orders  ordersports.Service
}

// NewCartAPI creates a CartAPI backed by the provided services.
func NewCartAPI(service cartports.Service, orders ordersports.Service) CartAPI {
	return CartAPI{service: service, orders: orders}
}

// Post /api/v1/carts
func (api *CartAPI) OpenCart(c *gin.Context) {
	quote, err := api.service.Open(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.Header("Location", BasePath+"/carts/"+quote.CartID)
	c.JSON(http.StatusCreated, carthttpmapper.FromDomainQuote(quote))
}

// Get /api/v1/carts/:cartId
// Returns the cart priced against the live catalog.
func (api *CartAPI) GetCart(c *gin.Context) {
	cartID, ok := parseStringParam(c, "cartId")
	if !ok {
		return
	}
	quote, err := api.service.Quote(c.Request.Context(), cartID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, carthttpmapper.FromDomainQuote(quote))
}

// Delete /api/v1/carts/:cartId
func (api *CartAPI) ClearCart(c *gin.Context) {
	cartID, ok := parseStringParam(c, "cartId")
	if !ok {
		return
	}
	quote, err := api.service.Clear(c.Request.Context(), cartID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, carthttpmapper.FromDomainQuote(quote))
}

// Post /api/v1/carts/:cartId/items
// Add one unit of a menu item.
func (api *CartAPI) AddCartItem(c *gin.Context) {
	cartID, ok := parseStringParam(c, "cartId")
	if !ok {
		return
	}
	var payload carthttpmapper.AddItemRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBadRequest(c, err)
		return
	}
	quote, err := api.service.AddItem(c.Request.Context(), cartID, payload.MenuItemID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, carthttpmapper.FromDomainQuote(quote))
}

// Delete /api/v1/carts/:cartId/items/:itemId
func (api *CartAPI) RemoveCartItem(c *gin.Context) {
	cartID, ok := parseStringParam(c, "cartId")
	if !ok {
		return
	}
	itemID, ok := parseIDParam(c, "itemId")
	if !ok {
		return
	}
	quote, err := api.service.RemoveItem(c.Request.Context(), cartID, itemID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, carthttpmapper.FromDomainQuote(quote))
}

// Put /api/v1/carts/:cartId/items/:itemId
// A quantity of zero or less removes the line.
func (api *CartAPI) SetCartItemQuantity(c *gin.Context) {
	cartID, ok := parseStringParam(c, "cartId")
	if !ok {
		return
	}
	itemID, ok := parseIDParam(c, "itemId")
	if !ok {
		return
	}
	var payload carthttpmapper.SetQuantityRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBadRequest(c, err)
		return
	}
	quote, err := api.service.SetQuantity(c.Request.Context(), cartID, itemID, *payload.Quantity)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, carthttpmapper.FromDomainQuote(quote))
}

// Post /api/v1/carts/:cartId/checkout
// Turn the cart into a pending order. Retries carrying the same
// Idempotency-Key return the order placed by the first attempt.
func (api *CartAPI) CheckoutCart(c *gin.Context) {
	cartID, ok := parseStringParam(c, "cartId")
	if !ok {
		return
	}
	var payload carthttpmapper.CheckoutRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBadRequest(c, err)
		return
	}
	key := c.GetHeader(IdempotencyKeyHeader)
	order, err := api.service.Checkout(c.Request.Context(), cartID, payload.ToDomain(), key)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, ordershttpmapper.FromDomainOrderForCustomer(order))
}

// Post /api/v1/carts/:cartId/reorder
// Refill the cart from an earlier order at current prices. Guests name the
// order's table the same way they do for order lookup.
func (api *CartAPI) ReorderCart(c *gin.Context) {
	cartID, ok := parseStringParam(c, "cartId")
	if !ok {
		return
	}
	var payload carthttpmapper.ReorderRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBadRequest(c, err)
		return
	}
	if api.orders == nil {
		respondServiceError(c, errors.New("order lookup not configured"))
		return
	}
	order, err := findOrderForCaller(c, api.orders, payload.OrderNumber, payload.TableNumber)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	quote, skipped, err := api.service.Reorder(c.Request.Context(), cartID, order)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, carthttpmapper.FromDomainReorder(quote, skipped))
}
