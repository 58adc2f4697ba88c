package domain

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrItemUnavailable = errors.New("menu item is unavailable")
	ErrLineNotFound    = errors.New("item is not in the cart")
	ErrEmptyCart       = errors.New("cart is empty")
	ErrMissingCustomer = errors.New("customer name is required")
	ErrMissingTable    = errors.New("table number is required")
)

// Product is the slice of a menu item the cart needs. The cart never owns it.
type Product struct {
	ID        int64
	Name      string
	Price     decimal.Decimal
	Available bool
}

// Line references a menu item by id. Quantity is always at least one.
type Line struct {
	ItemID   int64
	Quantity int
}

// Cart is the unsubmitted selection of one customer session.
type Cart struct {
	ID    string
	Lines []Line
	// LastCheckoutKey is the idempotency key of the checkout that last emptied the cart.
	LastCheckoutKey string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// New returns an empty cart.
func New(id string, now time.Time) *Cart {
	return &Cart{ID: id, CreatedAt: now, UpdatedAt: now}
}

// Add increments the line for p or creates it with quantity one.
func (c *Cart) Add(p Product) error {
	return c.AddQuantity(p, 1)
}

// AddQuantity adds n units of p. n <= 0 is a no-op.
func (c *Cart) AddQuantity(p Product, n int) error {
	if !p.Available {
		return fmt.Errorf("%w: %s", ErrItemUnavailable, p.Name)
	}
	if n <= 0 {
		return nil
	}
	if i := c.index(p.ID); i >= 0 {
		c.Lines[i].Quantity += n
		return nil
	}
	c.Lines = append(c.Lines, Line{ItemID: p.ID, Quantity: n})
	return nil
}

// Remove decrements the line for itemID, dropping it at zero. Absent items are ignored.
func (c *Cart) Remove(itemID int64) {
	i := c.index(itemID)
	if i < 0 {
		return
	}
	c.Lines[i].Quantity--
	if c.Lines[i].Quantity <= 0 {
		c.Lines = slices.Delete(c.Lines, i, i+1)
	}
}

// SetQuantity overwrites the quantity of an existing line; n <= 0 removes it.
func (c *Cart) SetQuantity(itemID int64, n int) error {
	i := c.index(itemID)
	if n <= 0 {
		if i >= 0 {
			c.Lines = slices.Delete(c.Lines, i, i+1)
		}
		return nil
	}
	if i < 0 {
		return fmt.Errorf("%w: item %d", ErrLineNotFound, itemID)
	}
	c.Lines[i].Quantity = n
	return nil
}

func (c *Cart) Clear() {
	c.Lines = nil
}

func (c *Cart) IsEmpty() bool {
	return len(c.Lines) == 0
}

// Quantity reports how many of itemID are in the cart.
func (c *Cart) Quantity(itemID int64) int {
	if i := c.index(itemID); i >= 0 {
		return c.Lines[i].Quantity
	}
	return 0
}

// TotalItems is the sum of all line quantities.
func (c *Cart) TotalItems() int {
	total := 0
	for _, line := range c.Lines {
		total += line.Quantity
	}
	return total
}

func (c *Cart) Clone() *Cart {
	if c == nil {
		return nil
	}
	clone := *c
	clone.Lines = slices.Clone(c.Lines)
	return &clone
}

func (c *Cart) index(itemID int64) int {
	return slices.IndexFunc(c.Lines, func(l Line) bool { return l.ItemID == itemID })
}

// OrderDetails is what the customer supplies at checkout.
type OrderDetails struct {
	CustomerName        string
	TableNumber         string
	OrderType           string
	SpecialInstructions string
}

// Normalize trims every field.
func (d OrderDetails) Normalize() OrderDetails {
	return OrderDetails{
		CustomerName:        strings.TrimSpace(d.CustomerName),
		TableNumber:         strings.TrimSpace(d.TableNumber),
		OrderType:           strings.TrimSpace(d.OrderType),
		SpecialInstructions: strings.TrimSpace(d.SpecialInstructions),
	}
}

func (d OrderDetails) Validate() error {
	d = d.Normalize()
	if d.CustomerName == "" {
		return ErrMissingCustomer
	}
	if d.TableNumber == "" {
		return ErrMissingTable
	}
	return nil
}
