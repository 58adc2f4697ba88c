package domain

import (
	"iter"
	"slices"
	"strings"
)

// Filter selects orders for the admin and customer lists.
type Filter struct {
	// Statuses restricts results; empty means all statuses.
	Statuses []Status
	// Term matches order number, customer name or table, case-insensitively.
	Term string
	// Newest yields the most recently placed orders first.
	Newest bool
}

// Matches reports whether a single order satisfies the filter.
func (f Filter) Matches(o *Order) bool {
	if o == nil {
		return false
	}
	if len(f.Statuses) > 0 && !slices.Contains(f.Statuses, o.Status) {
		return false
	}
	term := strings.ToLower(strings.TrimSpace(f.Term))
	if term == "" {
		return true
	}
	return strings.Contains(strings.ToLower(o.Number), term) ||
		strings.Contains(strings.ToLower(o.Customer), term) ||
		strings.Contains(strings.ToLower(o.Table), term)
}

// Apply lazily yields matching orders from a placement-ordered slice. The sequence is restartable.
func (f Filter) Apply(orders []*Order) iter.Seq[*Order] {
	return func(yield func(*Order) bool) {
		emit := func(o *Order) bool {
			if !f.Matches(o) {
				return true
			}
			return yield(o.Clone())
		}
		if f.Newest {
			for i := len(orders) - 1; i >= 0; i-- {
				if !emit(orders[i]) {
					return
				}
			}
			return
		}
		for _, o := range orders {
			if !emit(o) {
				return
			}
		}
	}
}
