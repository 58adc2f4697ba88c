package domain

import (
	"slices"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestNewItem_ValidatesInvariants(t *testing.T) {
	_, err := NewItem(0, "  ", decimal.NewFromInt(1), CategoryDessert)
	require.ErrorIs(t, err, ErrEmptyName)

	_, err = NewItem(0, "Soup", decimal.NewFromInt(-1), CategoryAppetizer)
	require.ErrorIs(t, err, ErrNegativePrice)

	_, err = NewItem(0, "Soup", decimal.RequireFromString("4.999"), CategoryAppetizer)
	require.ErrorIs(t, err, ErrPricePrecision)
	_, err = NewItem(0, "Soup", decimal.RequireFromString("4.500"), CategoryAppetizer)
	require.NoError(t, err)

	_, err = NewItem(0, "Soup", decimal.NewFromInt(3), Category("Soups"))
	require.ErrorIs(t, err, ErrInvalidCategory)

	item, err := NewItem(0, " Soup ", decimal.Zero, Category("appetizer"))
	require.NoError(t, err)
	require.Equal(t, "Soup", item.Name)
	require.Equal(t, CategoryAppetizer, item.Category)
	require.True(t, item.Available)
}

func TestApply_IsAtomic(t *testing.T) {
	item, err := NewItem(1, "Burger", decimal.RequireFromString("10.50"), CategoryMainCourse)
	require.NoError(t, err)

	name := "Double Burger"
	negative := decimal.NewFromInt(-2)
	err = item.Apply(Patch{Name: &name, Price: &negative})
	require.ErrorIs(t, err, ErrNegativePrice)
	require.Equal(t, "Burger", item.Name)

	price := decimal.RequireFromString("12.75")
	off := false
	require.NoError(t, item.Apply(Patch{Name: &name, Price: &price, Available: &off}))
	require.Equal(t, "Double Burger", item.Name)
	require.True(t, item.Price.Equal(price))
	require.False(t, item.Available)
}

func TestParseCategoryFilter(t *testing.T) {
	c, err := ParseCategoryFilter("All")
	require.NoError(t, err)
	require.Empty(t, c)

	c, err = ParseCategoryFilter("main course")
	require.NoError(t, err)
	require.Equal(t, CategoryMainCourse, c)

	_, err = ParseCategoryFilter("Brunch")
	require.ErrorIs(t, err, ErrInvalidCategory)
}

func TestSearchQuery_Filter(t *testing.T) {
	menu := DefaultMenu()

	names := func(q SearchQuery) []string {
		var out []string
		for item := range q.Filter(menu) {
			out = append(out, item.Name)
		}
		return out
	}

	require.Equal(t, []string{"Cheese Pizza"}, names(SearchQuery{Term: "pizza"}))
	require.Empty(t, names(SearchQuery{Term: "pizza", Category: CategoryDessert}))
	require.Equal(t, []string{"Coffee", "Lemonade", "Mango Smoothie"}, names(SearchQuery{Category: CategoryBeverage}))
	// description matches too
	require.Contains(t, names(SearchQuery{Term: "MOZZARELLA"}), "Cheese Pizza")

	menu[0].Available = false
	require.Empty(t, names(SearchQuery{Term: "pizza", AvailableOnly: true}))
}

func TestSearchQuery_FilterIsRestartable(t *testing.T) {
	seq := SearchQuery{Category: CategoryDessert}.Filter(DefaultMenu())

	first := slices.Collect(seq)
	second := slices.Collect(seq)
	require.Len(t, first, 2)
	require.Equal(t, len(first), len(second))
}

func TestDefaultMenu(t *testing.T) {
	menu := DefaultMenu()
	require.Len(t, menu, 12)
	for _, item := range menu {
		require.NoError(t, item.Validate())
	}
}
