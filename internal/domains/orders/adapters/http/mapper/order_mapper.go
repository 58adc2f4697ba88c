package mapper

import (
	"time"

	ordersdomain "github.com/firaolassefa/restaurant-management-system/internal/domains/orders/domain"
	"github.com/firaolassefa/restaurant-management-system/internal/shared/money"
)

// LineItem is the transport shape of an order line.
type LineItem struct {
	ItemID    int64  `json:"itemId,omitempty"`
	Name      string `json:"name"`
	Quantity  int    `json:"quantity"`
	UnitPrice string `json:"unitPrice"`
	LineTotal string `json:"lineTotal"`
}

// StatusChange is one entry of the order timeline.
type StatusChange struct {
	From string    `json:"from"`
	To   string    `json:"to"`
	By   string    `json:"by,omitempty"`
	At   time.Time `json:"at"`
}

// Order is the transport shape of a placed order. Money fields carry two decimals.
type Order struct {
	ID                  int64          `json:"id"`
	OrderNumber         string         `json:"orderNumber"`
	Items               []LineItem     `json:"items"`
	CustomerName        string         `json:"customerName"`
	TableNumber         string         `json:"tableNumber"`
	Waiter              string         `json:"waiter,omitempty"`
	OrderType           string         `json:"orderType"`
	SpecialInstructions string         `json:"specialInstructions,omitempty"`
	Subtotal            string         `json:"subtotal"`
	Tax                 string         `json:"tax"`
	Total               string         `json:"total"`
	Status              string         `json:"status"`
	PlacedAt            time.Time      `json:"placedAt"`
	UpdatedAt           time.Time      `json:"updatedAt"`
	History             []StatusChange `json:"history,omitempty"`
}

// Summary is the dashboard payload.
type Summary struct {
	TotalOrders int            `json:"totalOrders"`
	OpenOrders  int            `json:"openOrders"`
	Revenue     string         `json:"revenue"`
	ByStatus    map[string]int `json:"byStatus"`
}

// TransitionRequest asks for a status change.
type TransitionRequest struct {
	Status string `json:"status"`
}

// FromDomainOrder converts an order for staff views.
func FromDomainOrder(order *ordersdomain.Order) Order {
	if order == nil {
		return Order{}
	}
	out := Order{
		ID:                  order.ID,
		OrderNumber:         order.Number,
		Items:               make([]LineItem, 0, len(order.Items)),
		CustomerName:        order.Customer,
		TableNumber:         order.Table,
		Waiter:              order.Waiter,
		OrderType:           string(order.Type),
		SpecialInstructions: order.Instructions,
		Subtotal:            money.Format(order.Subtotal),
		Tax:                 money.Format(order.Tax),
		Total:               money.Format(order.Total),
		Status:              string(order.Status),
		PlacedAt:            order.PlacedAt,
		UpdatedAt:           order.UpdatedAt,
	}
	for _, line := range order.Items {
		out.Items = append(out.Items, LineItem{
			ItemID:    line.ItemID,
			Name:      line.Name,
			Quantity:  line.Quantity,
			UnitPrice: money.Format(line.UnitPrice),
			LineTotal: money.Format(line.Total()),
		})
	}
	for _, change := range order.History {
		out.History = append(out.History, StatusChange{From: string(change.From), To: string(change.To), By: change.By, At: change.At})
	}
	return out
}

// FromDomainOrderForCustomer converts an order for guest views: customer status vocabulary, no staff details.
func FromDomainOrderForCustomer(order *ordersdomain.Order) Order {
	out := FromDomainOrder(order)
	if order == nil {
		return out
	}
	out.Status = string(order.CustomerStatus())
	out.Waiter = ""
	out.History = nil
	return out
}

// FromDomainSummary converts dashboard figures.
func FromDomainSummary(summary ordersdomain.Summary) Summary {
	byStatus := make(map[string]int, len(summary.ByStatus))
	for status, n := range summary.ByStatus {
		byStatus[string(status)] = n
	}
	return Summary{
		TotalOrders: summary.TotalOrders,
		OpenOrders:  summary.Open,
		Revenue:     money.Format(summary.Revenue),
		ByStatus:    byStatus,
	}
}
