package application

import (
	"context"
	"slices"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/firaolassefa/restaurant-management-system/internal/domains/menu/adapters/memory"
	"github.com/firaolassefa/restaurant-management-system/internal/domains/menu/domain"
	"github.com/firaolassefa/restaurant-management-system/internal/domains/menu/ports"
)

func seededService(t *testing.T) *Service {
	t.Helper()
	svc := NewService(memory.NewRepository())
	seeded, err := svc.Seed(context.Background(), domain.DefaultMenu())
	require.NoError(t, err)
	require.True(t, seeded)
	return svc
}

func TestAddItem_AssignsFreshID(t *testing.T) {
	svc := seededService(t)

	saved, err := svc.AddItem(context.Background(), &domain.Item{
		ID:        3,
		Name:      "Tiramisu",
		Price:     decimal.RequireFromString("7.25"),
		Category:  domain.CategoryDessert,
		Available: true,
	})
	require.NoError(t, err)
	require.Equal(t, int64(13), saved.ID)

	original, err := svc.GetItem(context.Background(), 3)
	require.NoError(t, err)
	require.Equal(t, "Caesar Salad", original.Name)
}

func TestAddItem_RejectsInvalid(t *testing.T) {
	svc := seededService(t)

	_, err := svc.AddItem(context.Background(), &domain.Item{Name: "Soup", Price: decimal.NewFromInt(-1), Category: domain.CategoryAppetizer})
	require.ErrorIs(t, err, ErrInvalidInput)
	require.ErrorIs(t, err, domain.ErrNegativePrice)

	_, err = svc.AddItem(context.Background(), &domain.Item{Name: "", Price: decimal.NewFromInt(1), Category: domain.CategoryAppetizer})
	require.ErrorIs(t, err, domain.ErrEmptyName)

	_, err = svc.AddItem(context.Background(), &domain.Item{Name: "Soup", Price: decimal.RequireFromString("4.999"), Category: domain.CategoryAppetizer})
	require.ErrorIs(t, err, ErrInvalidInput)
	require.ErrorIs(t, err, domain.ErrPricePrecision)
}

func TestUpdateItem(t *testing.T) {
	svc := seededService(t)
	ctx := context.Background()

	price := decimal.RequireFromString("11.00")
	updated, err := svc.UpdateItem(ctx, 2, domain.Patch{Price: &price})
	require.NoError(t, err)
	require.True(t, updated.Price.Equal(price))
	require.Equal(t, "Burger", updated.Name)

	category := domain.Category("Snacks")
	_, err = svc.UpdateItem(ctx, 2, domain.Patch{Category: &category})
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.UpdateItem(ctx, 404, domain.Patch{Price: &price})
	require.ErrorIs(t, err, ports.ErrNotFound)
}

func TestDeleteAndToggle_MissingItem(t *testing.T) {
	svc := seededService(t)
	ctx := context.Background()

	require.NoError(t, svc.DeleteItem(ctx, 1))
	require.ErrorIs(t, svc.DeleteItem(ctx, 1), ports.ErrNotFound)

	_, err := svc.ToggleAvailability(ctx, 1)
	require.ErrorIs(t, err, ports.ErrNotFound)

	toggled, err := svc.ToggleAvailability(ctx, 2)
	require.NoError(t, err)
	require.False(t, toggled.Available)
}

func TestSearch_SeesLatestMutation(t *testing.T) {
	svc := seededService(t)
	ctx := context.Background()

	seq, err := svc.Search(ctx, domain.SearchQuery{Term: "pizza"})
	require.NoError(t, err)
	results := slices.Collect(seq)
	require.Len(t, results, 1)
	require.Equal(t, "Cheese Pizza", results[0].Name)

	seq, err = svc.Search(ctx, domain.SearchQuery{Term: "pizza", Category: domain.CategoryDessert})
	require.NoError(t, err)
	require.Empty(t, slices.Collect(seq))

	_, err = svc.ToggleAvailability(ctx, 1)
	require.NoError(t, err)
	seq, err = svc.Search(ctx, domain.SearchQuery{Term: "pizza", AvailableOnly: true})
	require.NoError(t, err)
	require.Empty(t, slices.Collect(seq))
}

func TestReplaceAll_RejectsDuplicateIDs(t *testing.T) {
	svc := seededService(t)

	items := domain.DefaultMenu()[:2]
	items[1].ID = items[0].ID
	_, err := svc.ReplaceAll(context.Background(), items)
	require.ErrorIs(t, err, ErrInvalidInput)
	require.ErrorIs(t, err, domain.ErrDuplicateID)
}

func TestSeed_SkipsNonEmptyCatalog(t *testing.T) {
	svc := seededService(t)

	seeded, err := svc.Seed(context.Background(), domain.DefaultMenu())
	require.NoError(t, err)
	require.False(t, seeded)
}
