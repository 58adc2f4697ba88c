package restaurantserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// BasePath prefixes every route.
const BasePath = "/api/v1"

// Access is the minimum caller privilege a route requires.
type Access int

const (
	// AccessPublic resolves a bearer token when one is sent but does not require it.
	AccessPublic Access = iota
	AccessStaff
	AccessAdmin
	// AccessCredentials skips identity resolution; the handler deals with credentials itself.
	AccessCredentials
)

// Route is the information for every URI.
type Route struct {
	// Name is the name of this Route.
	Name string
	// Method is the string for the HTTP method. ex) GET, POST etc..
	Method string
	// Pattern is the pattern of the URI, relative to BasePath.
	Pattern string
	// HandlerFunc is the handler function of this route.
	HandlerFunc gin.HandlerFunc
	Access      Access
}

// NewRouter returns a new router with gin's default middleware.
func NewRouter(handleFunctions ApiHandleFunctions) *gin.Engine {
	return NewRouterWithGinEngine(gin.Default(), handleFunctions)
}

// NewRouterWithGinEngine adds routes to an existing gin engine. Middleware
// such as tracing and CORS must be installed on the engine beforehand.
func NewRouterWithGinEngine(router *gin.Engine, handleFunctions ApiHandleFunctions) *gin.Engine {
	group := router.Group(BasePath)
	resolveIdentity := IdentityMiddleware(handleFunctions.Authenticator)
	for _, route := range getRoutes(handleFunctions) {
		if route.HandlerFunc == nil {
			route.HandlerFunc = DefaultHandleFunc
		}
		var handlers []gin.HandlerFunc
		switch route.Access {
		case AccessPublic:
			handlers = append(handlers, resolveIdentity)
		case AccessStaff:
			handlers = append(handlers, resolveIdentity, RequireStaff())
		case AccessAdmin:
			handlers = append(handlers, resolveIdentity, RequireAdmin())
		}
		handlers = append(handlers, route.HandlerFunc)
		group.Handle(route.Method, route.Pattern, handlers...)
	}
	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	return router
}

// DefaultHandleFunc is used for routes whose handler is not wired.
func DefaultHandleFunc(c *gin.Context) {
	c.String(http.StatusNotImplemented, "501 not implemented")
}

// ApiHandleFunctions groups the handlers for every API plus the authenticator
// used to resolve bearer tokens. A nil Authenticator rejects every token.
type ApiHandleFunctions struct {
	MenuAPI       MenuAPI
	CartAPI       CartAPI
	OrderAPI      OrderAPI
	StaffAPI      StaffAPI
	AuthAPI       AuthAPI
	TrackingAPI   TrackingAPI
	Authenticator Authenticator
}

func getRoutes(h ApiHandleFunctions) []Route {
	return []Route{
		{"SearchMenu", http.MethodGet, "/menu", h.MenuAPI.SearchMenu, AccessPublic},
		{"GetMenuItem", http.MethodGet, "/menu/:itemId", h.MenuAPI.GetMenuItem, AccessPublic},
		{"AddMenuItem", http.MethodPost, "/menu", h.MenuAPI.AddMenuItem, AccessAdmin},
		{"ReplaceMenu", http.MethodPut, "/menu", h.MenuAPI.ReplaceMenu, AccessAdmin},
		{"UpdateMenuItem", http.MethodPatch, "/menu/:itemId", h.MenuAPI.UpdateMenuItem, AccessAdmin},
		{"DeleteMenuItem", http.MethodDelete, "/menu/:itemId", h.MenuAPI.DeleteMenuItem, AccessAdmin},
		{"ToggleMenuItemAvailability", http.MethodPost, "/menu/:itemId/availability", h.MenuAPI.ToggleAvailability, AccessAdmin},

		{"OpenCart", http.MethodPost, "/carts", h.CartAPI.OpenCart, AccessPublic},
		{"GetCart", http.MethodGet, "/carts/:cartId", h.CartAPI.GetCart, AccessPublic},
		{"ClearCart", http.MethodDelete, "/carts/:cartId", h.CartAPI.ClearCart, AccessPublic},
		{"AddCartItem", http.MethodPost, "/carts/:cartId/items", h.CartAPI.AddCartItem, AccessPublic},
		{"RemoveCartItem", http.MethodDelete, "/carts/:cartId/items/:itemId", h.CartAPI.RemoveCartItem, AccessPublic},
		{"SetCartItemQuantity", http.MethodPut, "/carts/:cartId/items/:itemId", h.CartAPI.SetCartItemQuantity, AccessPublic},
		{"CheckoutCart", http.MethodPost, "/carts/:cartId/checkout", h.CartAPI.CheckoutCart, AccessPublic},
		{"ReorderCart", http.MethodPost, "/carts/:cartId/reorder", h.CartAPI.ReorderCart, AccessPublic},

		{"ListOrders", http.MethodGet, "/orders", h.OrderAPI.ListOrders, AccessStaff},
		{"GetOrderSummary", http.MethodGet, "/orders/summary", h.OrderAPI.GetOrderSummary, AccessStaff},
		{"TrackOrders", http.MethodGet, "/orders/track", h.TrackingAPI.TrackOrders, AccessPublic},
		{"LookupOrder", http.MethodGet, "/orders/track/:number", h.OrderAPI.LookupOrder, AccessPublic},
		{"GetOrder", http.MethodGet, "/orders/:orderId", h.OrderAPI.GetOrder, AccessStaff},
		{"TransitionOrder", http.MethodPost, "/orders/:orderId/status", h.OrderAPI.TransitionOrder, AccessStaff},

		{"Login", http.MethodPost, "/auth/login", h.AuthAPI.Login, AccessCredentials},
		{"Logout", http.MethodPost, "/auth/logout", h.AuthAPI.Logout, AccessCredentials},
		{"Me", http.MethodGet, "/auth/me", h.AuthAPI.Me, AccessStaff},

		{"ListStaff", http.MethodGet, "/staff", h.StaffAPI.ListStaff, AccessAdmin},
		{"CreateStaff", http.MethodPost, "/staff", h.StaffAPI.CreateStaff, AccessAdmin},
		{"GetStaff", http.MethodGet, "/staff/:staffId", h.StaffAPI.GetStaff, AccessAdmin},
		{"UpdateStaff", http.MethodPut, "/staff/:staffId", h.StaffAPI.UpdateStaff, AccessAdmin},
		{"DeleteStaff", http.MethodDelete, "/staff/:staffId", h.StaffAPI.DeleteStaff, AccessAdmin},
	}
}
