package mapper

import (
	cartdomain "github.com/firaolassefa/restaurant-management-system/internal/domains/cart/domain"
	"github.com/firaolassefa/restaurant-management-system/internal/shared/money"
)

// CartLine is a priced line as shown to the customer.
type CartLine struct {
	MenuItemID int64  `json:"menuItemId"`
	Name       string `json:"name,omitempty"`
	UnitPrice  string `json:"unitPrice"`
	Quantity   int    `json:"quantity"`
	LineTotal  string `json:"lineTotal"`
	Available  bool   `json:"available"`
}

// Cart is the transport shape of a quoted cart.
type Cart struct {
	ID        string     `json:"cartId"`
	Lines     []CartLine `json:"lines"`
	ItemCount int        `json:"itemCount"`
	TaxRate   string     `json:"taxRate"`
	Subtotal  string     `json:"subtotal"`
	Tax       string     `json:"tax"`
	Total     string     `json:"total"`
}

type AddItemRequest struct {
	MenuItemID int64 `json:"menuItemId" binding:"required"`
}

type SetQuantityRequest struct {
	Quantity *int `json:"quantity" binding:"required"`
}

// CheckoutRequest carries the order details typed in at checkout.
type CheckoutRequest struct {
	CustomerName        string `json:"customerName"`
	TableNumber         string `json:"tableNumber"`
	OrderType           string `json:"orderType,omitempty"`
	SpecialInstructions string `json:"specialInstructions,omitempty"`
}

func (r CheckoutRequest) ToDomain() cartdomain.OrderDetails {
	return cartdomain.OrderDetails{
		CustomerName:        r.CustomerName,
		TableNumber:         r.TableNumber,
		OrderType:           r.OrderType,
		SpecialInstructions: r.SpecialInstructions,
	}
}

// ReorderRequest names the earlier order to copy. TableNumber is required for guests.
type ReorderRequest struct {
	OrderNumber string `json:"orderNumber" binding:"required"`
	TableNumber string `json:"tableNumber"`
}

// Reorder is the refilled cart plus the names of lines that could not be copied.
type Reorder struct {
	Cart
	Skipped []string `json:"skipped"`
}

func FromDomainReorder(q *cartdomain.Quote, skipped []string) Reorder {
	out := Reorder{Cart: FromDomainQuote(q), Skipped: []string{}}
	out.Skipped = append(out.Skipped, skipped...)
	return out
}

// FromDomainQuote rounds every amount to cents for display.
func FromDomainQuote(q *cartdomain.Quote) Cart {
	if q == nil {
		return Cart{Lines: []CartLine{}}
	}
	out := Cart{
		ID:        q.CartID,
		Lines:     make([]CartLine, 0, len(q.Lines)),
		ItemCount: q.ItemCount(),
		TaxRate:   q.TaxRate.String(),
		Subtotal:  money.Format(q.Subtotal),
		Tax:       money.Format(q.Tax),
		Total:     money.Format(q.Total),
	}
	for _, line := range q.Lines {
		out.Lines = append(out.Lines, CartLine{
			MenuItemID: line.ItemID,
			Name:       line.Name,
			UnitPrice:  money.Format(line.UnitPrice),
			Quantity:   line.Quantity,
			LineTotal:  money.Format(line.Total),
			Available:  line.Available,
		})
	}
	return out
}
