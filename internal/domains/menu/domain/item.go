package domain

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

// Category groups menu items for browsing.
type Category string

const (
	CategoryAppetizer  Category = "Appetizer"
	CategoryMainCourse Category = "Main Course"
	CategoryDessert    Category = "Dessert"
	CategoryBeverage   Category = "Beverage"
)

// CategoryAll is the browse filter that matches every category.
const CategoryAll = "All"

var (
	ErrEmptyName       = errors.New("menu item name is required")
	ErrNegativePrice   = errors.New("menu item price must not be negative")
	ErrPricePrecision  = errors.New("menu item price must have at most two decimal places")
	ErrInvalidCategory = errors.New("menu item category is invalid")
	ErrDuplicateID     = errors.New("menu item id is duplicated")
)

// Categories lists the known categories in display order.
func Categories() []Category {
	return []Category{CategoryAppetizer, CategoryMainCourse, CategoryDessert, CategoryBeverage}
}

// ParseCategory resolves a category name case-insensitively.
func ParseCategory(raw string) (Category, error) {
	raw = strings.TrimSpace(raw)
	for _, c := range Categories() {
		if strings.EqualFold(raw, string(c)) {
			return c, nil
		}
	}
	return "", ErrInvalidCategory
}

// ParseCategoryFilter is ParseCategory that also accepts "" and "All", both returning "".
func ParseCategoryFilter(raw string) (Category, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" || strings.EqualFold(raw, CategoryAll) {
		return "", nil
	}
	return ParseCategory(raw)
}

// Item is a dish or drink offered by the restaurant.
type Item struct {
	ID          int64
	Name        string
	Description string
	Price       decimal.Decimal
	Category    Category
	Image       string
	Available   bool
}

// NewItem builds an available item ensuring core invariants.
func NewItem(id int64, name string, price decimal.Decimal, category Category) (*Item, error) {
	item := &Item{ID: id, Available: true}
	if err := item.Rename(name); err != nil {
		return nil, err
	}
	if err := item.Reprice(price); err != nil {
		return nil, err
	}
	if err := item.Recategorize(category); err != nil {
		return nil, err
	}
	return item, nil
}

// Rename trims and validates the display name.
func (i *Item) Rename(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyName
	}
	i.Name = name
	return nil
}

// Reprice sets a non-negative price in whole cents.
func (i *Item) Reprice(price decimal.Decimal) error {
	if price.IsNegative() {
		return ErrNegativePrice
	}
	if !price.Equal(price.Round(2)) {
		return ErrPricePrecision
	}
	i.Price = price
	return nil
}

// Recategorize moves the item to a known category.
func (i *Item) Recategorize(category Category) error {
	parsed, err := ParseCategory(string(category))
	if err != nil {
		return err
	}
	i.Category = parsed
	return nil
}

// Describe updates free-form presentation fields.
func (i *Item) Describe(description, image string) {
	i.Description = strings.TrimSpace(description)
	i.Image = strings.TrimSpace(image)
}

// ToggleAvailability flips whether customers may order the item.
func (i *Item) ToggleAvailability() {
	i.Available = !i.Available
}

// Validate re-applies invariants before persistence.
func (i *Item) Validate() error {
	if err := i.Rename(i.Name); err != nil {
		return err
	}
	if err := i.Reprice(i.Price); err != nil {
		return err
	}
	return i.Recategorize(i.Category)
}

// Clone returns a detached copy.
func (i *Item) Clone() *Item {
	if i == nil {
		return nil
	}
	clone := *i
	return &clone
}

// Patch carries a partial update; nil fields are left untouched.
type Patch struct {
	Name        *string
	Description *string
	Price       *decimal.Decimal
	Category    *Category
	Image       *string
	Available   *bool
}

// IsEmpty reports whether the patch changes nothing.
func (p Patch) IsEmpty() bool {
	return p.Name == nil && p.Description == nil && p.Price == nil &&
		p.Category == nil && p.Image == nil && p.Available == nil
}

// Apply merges the patch into the item. On error the item is left unchanged.
func (i *Item) Apply(p Patch) error {
	next := *i
	if p.Name != nil {
		if err := next.Rename(*p.Name); err != nil {
			return err
		}
	}
	if p.Price != nil {
		if err := next.Reprice(*p.Price); err != nil {
			return err
		}
	}
	if p.Category != nil {
		if err := next.Recategorize(*p.Category); err != nil {
			return err
		}
	}
	description, image := next.Description, next.Image
	if p.Description != nil {
		description = *p.Description
	}
	if p.Image != nil {
		image = *p.Image
	}
	next.Describe(description, image)
	if p.Available != nil {
		next.Available = *p.Available
	}
	*i = next
	return nil
}
