package domain

import "github.com/shopspring/decimal"

// PricedLine is a cart line valued against the current catalog.
type PricedLine struct {
	ItemID    int64
	Name      string
	UnitPrice decimal.Decimal
	Quantity  int
	Total     decimal.Decimal
	// Available is false when the item vanished from the catalog or was switched off.
	Available bool
}

// Quote values a cart. Amounts keep full precision; rounding is a presentation concern.
type Quote struct {
	CartID   string
	Lines    []PricedLine
	TaxRate  decimal.Decimal
	Subtotal decimal.Decimal
	Tax      decimal.Decimal
	Total    decimal.Decimal
}

// NewQuote prices cart with products keyed by item id. Lines that cannot be served
// are reported but excluded from the totals.
func NewQuote(cart *Cart, products map[int64]Product, taxRate decimal.Decimal) *Quote {
	q := &Quote{TaxRate: taxRate, Subtotal: decimal.Zero}
	if cart == nil {
		q.Tax, q.Total = decimal.Zero, decimal.Zero
		return q
	}
	q.CartID = cart.ID
	q.Lines = make([]PricedLine, 0, len(cart.Lines))
	for _, line := range cart.Lines {
		priced := PricedLine{ItemID: line.ItemID, Quantity: line.Quantity, UnitPrice: decimal.Zero, Total: decimal.Zero}
		if p, ok := products[line.ItemID]; ok {
			priced.Name = p.Name
			priced.UnitPrice = p.Price
			priced.Total = p.Price.Mul(decimal.NewFromInt(int64(line.Quantity)))
			priced.Available = p.Available
		}
		if priced.Available {
			q.Subtotal = q.Subtotal.Add(priced.Total)
		}
		q.Lines = append(q.Lines, priced)
	}
	q.Tax = q.Subtotal.Mul(taxRate)
	q.Total = q.Subtotal.Add(q.Tax)
	return q
}

// Unavailable returns the lines that cannot be ordered right now.
func (q *Quote) Unavailable() []PricedLine {
	var out []PricedLine
	for _, line := range q.Lines {
		if !line.Available {
			out = append(out, line)
		}
	}
	return out
}

// ItemCount is the number of servable units in the quote.
func (q *Quote) ItemCount() int {
	n := 0
	for _, line := range q.Lines {
		if line.Available {
			n += line.Quantity
		}
	}
	return n
}
