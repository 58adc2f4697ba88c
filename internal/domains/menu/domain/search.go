package domain

import (
	"iter"
	"strings"
)

// SearchQuery filters the catalog for browse and admin views.
type SearchQuery struct {
	// Term matches name or description, case-insensitively. Blank matches everything.
	Term string
	// Category restricts results; the zero value means all categories.
	Category Category
	// AvailableOnly hides items that cannot currently be ordered.
	AvailableOnly bool
}

// Matches reports whether a single item satisfies the query.
func (q SearchQuery) Matches(item *Item) bool {
	if item == nil {
		return false
	}
	if q.AvailableOnly && !item.Available {
		return false
	}
	if q.Category != "" && item.Category != q.Category {
		return false
	}
	term := strings.TrimSpace(q.Term)
	if term == "" {
		return true
	}
	return containsFold(item.Name, term) || containsFold(item.Description, term)
}

// Filter lazily yields matching items in catalog order. The sequence can be ranged over repeatedly.
func (q SearchQuery) Filter(items []*Item) iter.Seq[*Item] {
	return func(yield func(*Item) bool) {
		for _, item := range items {
			if !q.Matches(item) {
				continue
			}
			if !yield(item.Clone()) {
				return
			}
		}
	}
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
