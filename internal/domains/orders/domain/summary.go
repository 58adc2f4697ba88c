package domain

import (
	"iter"

	"github.com/shopspring/decimal"
)

// Summary aggregates the dashboard figures.
type Summary struct {
	TotalOrders int
	ByStatus    map[Status]int
	// Open counts orders that have not reached a terminal status.
	Open int
	// Revenue sums totals of every order that was not cancelled.
	Revenue decimal.Decimal
}

// Summarize folds a sequence of orders into dashboard figures.
func Summarize(orders iter.Seq[*Order]) Summary {
	summary := Summary{ByStatus: make(map[Status]int, len(transitions)), Revenue: decimal.Zero}
	for _, s := range Statuses() {
		summary.ByStatus[s] = 0
	}
	for o := range orders {
		summary.TotalOrders++
		summary.ByStatus[o.Status]++
		if !o.Status.Terminal() {
			summary.Open++
		}
		if o.Status != StatusCancelled {
			summary.Revenue = summary.Revenue.Add(o.Total)
		}
	}
	return summary
}
