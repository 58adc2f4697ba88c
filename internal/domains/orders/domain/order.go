package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Type describes how the order is served.
type Type string

const (
	TypeDineIn   Type = "Dine In"
	TypeTakeaway Type = "Takeaway"
	TypeDelivery Type = "Delivery"
)

var (
	ErrNoItems         = errors.New("order must contain at least one item")
	ErrInvalidQuantity = errors.New("order item quantity must be greater than zero")
	ErrNegativePrice   = errors.New("order item price must not be negative")
	ErrEmptyItemName   = errors.New("order item name is required")
	ErrMissingCustomer = errors.New("customer name is required")
	ErrMissingTable    = errors.New("table number is required")
	ErrInvalidType     = errors.New("order type is invalid")
	ErrNegativeTaxRate = errors.New("tax rate must not be negative")
	ErrTotalsMismatch  = errors.New("order total must equal subtotal plus tax")
)

// ParseType resolves an order type, defaulting blank input to dine in.
func ParseType(raw string) (Type, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return TypeDineIn, nil
	}
	for _, t := range []Type{TypeDineIn, TypeTakeaway, TypeDelivery} {
		if strings.EqualFold(raw, string(t)) {
			return t, nil
		}
	}
	return "", ErrInvalidType
}

// LineItem is a snapshot of a menu item taken when the order was placed.
// ItemID points back at the catalog entry for reorders; it is zero when unknown.
type LineItem struct {
	ItemID    int64
	Name      string
	Quantity  int
	UnitPrice decimal.Decimal
}

// Total is the line's extended price.
func (l LineItem) Total() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

func (l LineItem) validate() error {
	if strings.TrimSpace(l.Name) == "" {
		return ErrEmptyItemName
	}
	if l.Quantity <= 0 {
		return ErrInvalidQuantity
	}
	if l.UnitPrice.IsNegative() {
		return ErrNegativePrice
	}
	return nil
}

// StatusChange records one lifecycle step.
type StatusChange struct {
	From Status
	To   Status
	By   string
	At   time.Time
}

// Order is the placed-order aggregate. Totals are fixed at creation and never recomputed.
type Order struct {
	ID           int64
	Number       string
	Items        []LineItem
	Customer     string
	Table        string
	Waiter       string
	Type         Type
	Instructions string
	Subtotal     decimal.Decimal
	Tax          decimal.Decimal
	Total        decimal.Decimal
	Status       Status
	PlacedAt     time.Time
	UpdatedAt    time.Time
	History      []StatusChange
}

// Draft holds everything needed to price and create an order.
type Draft struct {
	Items        []LineItem
	Customer     string
	Table        string
	Waiter       string
	Type         Type
	Instructions string
	TaxRate      decimal.Decimal
	PlacedAt     time.Time
}

// NewOrder prices the draft and returns a pending order.
func NewOrder(d Draft) (*Order, error) {
	if d.TaxRate.IsNegative() {
		return nil, ErrNegativeTaxRate
	}
	orderType, err := ParseType(string(d.Type))
	if err != nil {
		return nil, err
	}
	placedAt := d.PlacedAt
	if placedAt.IsZero() {
		placedAt = time.Now().UTC()
	}
	order := &Order{
		Items:        append([]LineItem(nil), d.Items...),
		Customer:     strings.TrimSpace(d.Customer),
		Table:        strings.TrimSpace(d.Table),
		Waiter:       strings.TrimSpace(d.Waiter),
		Type:         orderType,
		Instructions: strings.TrimSpace(d.Instructions),
		Status:       StatusPending,
		PlacedAt:     placedAt,
		UpdatedAt:    placedAt,
	}
	order.Subtotal = decimal.Zero
	for _, line := range order.Items {
		order.Subtotal = order.Subtotal.Add(line.Total())
	}
	order.Tax = order.Subtotal.Mul(d.TaxRate)
	order.Total = order.Subtotal.Add(order.Tax)
	if err := order.Validate(); err != nil {
		return nil, err
	}
	return order, nil
}

// Validate enforces invariants on the aggregate.
func (o *Order) Validate() error {
	if len(o.Items) == 0 {
		return ErrNoItems
	}
	for _, line := range o.Items {
		if err := line.validate(); err != nil {
			return err
		}
	}
	if strings.TrimSpace(o.Customer) == "" {
		return ErrMissingCustomer
	}
	if strings.TrimSpace(o.Table) == "" {
		return ErrMissingTable
	}
	if !o.Status.Valid() {
		return ErrInvalidStatus
	}
	if !o.Subtotal.Add(o.Tax).Equal(o.Total) {
		return ErrTotalsMismatch
	}
	return nil
}

// TransitionTo moves the order along one edge of the lifecycle graph.
func (o *Order) TransitionTo(to Status, by string, at time.Time) error {
	if !to.Valid() {
		return ErrInvalidStatus
	}
	if !o.Status.CanTransitionTo(to) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, o.Status, to)
	}
	if at.IsZero() {
		at = time.Now().UTC()
	}
	o.History = append(o.History, StatusChange{From: o.Status, To: to, By: strings.TrimSpace(by), At: at})
	o.Status = to
	o.UpdatedAt = at
	return nil
}

// CustomerStatus is the guest-facing view of the current status.
func (o *Order) CustomerStatus() CustomerStatus {
	return o.Status.ForCustomer()
}

// ItemCount sums quantities across lines.
func (o *Order) ItemCount() int {
	n := 0
	for _, line := range o.Items {
		n += line.Quantity
	}
	return n
}

// Clone returns a deep copy.
func (o *Order) Clone() *Order {
	if o == nil {
		return nil
	}
	clone := *o
	clone.Items = append([]LineItem(nil), o.Items...)
	clone.History = append([]StatusChange(nil), o.History...)
	return &clone
}

// FormatNumber renders the human-facing order number for an id, e.g. ORD-001.
func FormatNumber(id int64) string {
	return fmt.Sprintf("ORD-%03d", id)
}
