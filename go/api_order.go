package restaurantserver

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	ordershttpmapper "github.com/firaolassefa/restaurant-management-system/internal/domains/orders/adapters/http/mapper"
	ordersdomain "github.com/firaolassefa/restaurant-management-system/internal/domains/orders/domain"
	ordersports "github.com/firaolassefa/restaurant-management-system/internal/domains/orders/ports"
	"github.com/firaolassefa/restaurant-management-system/internal/shared/identity"
)

const (
	viewCustomer = "customer"
	sortNewest   = "newest"
	sortOldest   = "oldest"
)

// OrderAPI wires HTTP transport with the order lifecycle service.
type OrderAPI struct {
	service ordersports.Service
}

// NewOrderAPI creates an OrderAPI backed by the provided service.
func NewOrderAPI(service ordersports.Service) OrderAPI {
	return OrderAPI{service: service}
}

// Get /api/v1/orders
// Lists orders. With view=customer, statuses are read and written in the guest vocabulary.
func (api *OrderAPI) ListOrders(c *gin.Context) {
	customerView := strings.EqualFold(c.Query("view"), viewCustomer)
	filter, err := parseOrderFilter(c, customerView)
	if err != nil {
		respondBadRequest(c, err)
		return
	}
	orders, err := api.service.List(c.Request.Context(), filter)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	out := []ordershttpmapper.Order{}
	for order := range orders {
		if customerView {
			out = append(out, ordershttpmapper.FromDomainOrderForCustomer(order))
			continue
		}
		out = append(out, ordershttpmapper.FromDomainOrder(order))
	}
	c.JSON(http.StatusOK, out)
}

// Get /api/v1/orders/summary
func (api *OrderAPI) GetOrderSummary(c *gin.Context) {
	summary, err := api.service.Summary(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, ordershttpmapper.FromDomainSummary(summary))
}

// Get /api/v1/orders/:orderId
func (api *OrderAPI) GetOrder(c *gin.Context) {
	id, ok := parseIDParam(c, "orderId")
	if !ok {
		return
	}
	order, err := api.service.Find(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, ordershttpmapper.FromDomainOrder(order))
}

// Get /api/v1/orders/track/:number
// Looks up one order by its number. Guests must pass the order's table as ?table=.
func (api *OrderAPI) LookupOrder(c *gin.Context) {
	number, ok := parseStringParam(c, "number")
	if !ok {
		return
	}
	order, err := findOrderForCaller(c, api.service, number, c.Query("table"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, ordershttpmapper.FromDomainOrderForCustomer(order))
}

// findOrderForCaller resolves an order by number. Guests must also name its table;
// a wrong table reads as an unknown order.
func findOrderForCaller(c *gin.Context, orders ordersports.Service, number, table string) (*ordersdomain.Order, error) {
	order, err := orders.FindByNumber(c.Request.Context(), number)
	if err != nil {
		return nil, err
	}
	if _, staff := identity.FromContext(c.Request.Context()); staff {
		return order, nil
	}
	if !strings.EqualFold(strings.TrimSpace(table), order.Table) {
		return nil, fmt.Errorf("%w: %s", ordersports.ErrNotFound, strings.TrimSpace(number))
	}
	return order, nil
}

// Post /api/v1/orders/:orderId/status
// Moves the order along the kitchen workflow.
func (api *OrderAPI) TransitionOrder(c *gin.Context) {
	id, ok := parseIDParam(c, "orderId")
	if !ok {
		return
	}
	var payload ordershttpmapper.TransitionRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBadRequest(c, err)
		return
	}
	to, err := ordersdomain.ParseStatus(payload.Status)
	if err != nil {
		respondBadRequest(c, fmt.Errorf("%w: %q", err, payload.Status))
		return
	}
	order, err := api.service.Transition(c.Request.Context(), id, to)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, ordershttpmapper.FromDomainOrder(order))
}

func parseOrderFilter(c *gin.Context, customerView bool) (ordersdomain.Filter, error) {
	filter := ordersdomain.Filter{Term: c.Query("q")}
	switch sort := strings.ToLower(strings.TrimSpace(c.Query("sort"))); sort {
	case "", sortOldest:
	case sortNewest:
		filter.Newest = true
	default:
		return ordersdomain.Filter{}, fmt.Errorf("invalid sort %q", sort)
	}
	for _, raw := range c.QueryArray("status") {
		for _, part := range strings.Split(raw, ",") {
			part = strings.TrimSpace(part)
			if part == "" || strings.EqualFold(part, ordersdomain.StatusAll) {
				continue
			}
			if customerView {
				status, err := ordersdomain.ParseCustomerStatus(part)
				if err != nil {
					return ordersdomain.Filter{}, fmt.Errorf("%w: %q", err, part)
				}
				filter.Statuses = append(filter.Statuses, status.Statuses()...)
				continue
			}
			status, err := ordersdomain.ParseStatus(part)
			if err != nil {
				return ordersdomain.Filter{}, fmt.Errorf("%w: %q", err, part)
			}
			filter.Statuses = append(filter.Statuses, status)
		}
	}
	return filter, nil
}
