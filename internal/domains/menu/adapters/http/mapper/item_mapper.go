package mapper

import (
	"errors"

	"github.com/shopspring/decimal"

	menudomain "github.com/firaolassefa/restaurant-management-system/internal/domains/menu/domain"
	"github.com/firaolassefa/restaurant-management-system/internal/shared/money"
)

// ErrPriceRequired is returned when a create payload omits the price.
var ErrPriceRequired = errors.New("price is required")

// MenuItem is the transport shape of a catalog entry. Prices are rendered with two decimals.
type MenuItem struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Price       string `json:"price"`
	Category    string `json:"category"`
	Image       string `json:"image,omitempty"`
	Available   bool   `json:"available"`
}

// MenuItemInput is accepted when creating or replacing items. Price may be a JSON number or string.
type MenuItemInput struct {
	ID          int64            `json:"id,omitempty"`
	Name        string           `json:"name"`
	Description string           `json:"description,omitempty"`
	Price       *decimal.Decimal `json:"price"`
	Category    string           `json:"category"`
	Image       string           `json:"image,omitempty"`
	Available   *bool            `json:"available,omitempty"`
}

// MenuItemPatch carries a partial update.
type MenuItemPatch struct {
	Name        *string          `json:"name,omitempty"`
	Description *string          `json:"description,omitempty"`
	Price       *decimal.Decimal `json:"price,omitempty"`
	Category    *string          `json:"category,omitempty"`
	Image       *string          `json:"image,omitempty"`
	Available   *bool            `json:"available,omitempty"`
}

// ToDomainItem converts a transport payload into a validated domain item.
func ToDomainItem(input MenuItemInput) (*menudomain.Item, error) {
	if input.Price == nil {
		return nil, ErrPriceRequired
	}
	item, err := menudomain.NewItem(input.ID, input.Name, *input.Price, menudomain.Category(input.Category))
	if err != nil {
		return nil, err
	}
	item.Describe(input.Description, input.Image)
	if input.Available != nil {
		item.Available = *input.Available
	}
	return item, nil
}

// ToDomainItems converts a batch, stopping at the first invalid entry.
func ToDomainItems(inputs []MenuItemInput) ([]*menudomain.Item, error) {
	items := make([]*menudomain.Item, 0, len(inputs))
	for _, input := range inputs {
		item, err := ToDomainItem(input)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

// ToDomainPatch converts a transport patch.
func ToDomainPatch(patch MenuItemPatch) menudomain.Patch {
	out := menudomain.Patch{
		Name:        patch.Name,
		Description: patch.Description,
		Price:       patch.Price,
		Image:       patch.Image,
		Available:   patch.Available,
	}
	if patch.Category != nil {
		category := menudomain.Category(*patch.Category)
		out.Category = &category
	}
	return out
}

// FromDomainItem converts a domain item to the transport representation.
func FromDomainItem(item *menudomain.Item) MenuItem {
	if item == nil {
		return MenuItem{}
	}
	return MenuItem{
		ID:          item.ID,
		Name:        item.Name,
		Description: item.Description,
		Price:       money.Format(item.Price),
		Category:    string(item.Category),
		Image:       item.Image,
		Available:   item.Available,
	}
}
