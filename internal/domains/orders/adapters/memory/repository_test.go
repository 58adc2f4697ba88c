package memory

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/firaolassefa/restaurant-management-system/internal/domains/orders/domain"
	"github.com/firaolassefa/restaurant-management-system/internal/domains/orders/ports"
)

func newOrder(t *testing.T, customer string) *domain.Order {
	t.Helper()
	order, err := domain.NewOrder(domain.Draft{
		Items:    []domain.LineItem{{Name: "Coffee", Quantity: 1, UnitPrice: decimal.RequireFromString("3.00")}},
		Customer: customer,
		Table:    "12",
		TaxRate:  decimal.RequireFromString("0.08"),
	})
	require.NoError(t, err)
	return order
}

func TestRepository_InsertAssignsNumbers(t *testing.T) {
	repo := NewRepository()
	ctx := context.Background()

	first, err := repo.Insert(ctx, newOrder(t, "Alice"))
	require.NoError(t, err)
	second, err := repo.Insert(ctx, newOrder(t, "Bob"))
	require.NoError(t, err)

	require.Equal(t, "ORD-001", first.Number)
	require.Equal(t, "ORD-002", second.Number)

	list, err := repo.List(ctx, domain.Filter{})
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.Equal(t, "Alice", list[0].Customer)

	list, err = repo.List(ctx, domain.Filter{Term: "bob"})
	require.NoError(t, err)
	require.Len(t, list, 1)
}

func TestRepository_UpdateMissing(t *testing.T) {
	repo := NewRepository()
	_, err := repo.Update(context.Background(), 7, func(*domain.Order) error { return nil })
	require.ErrorIs(t, err, ports.ErrNotFound)

	_, err = repo.GetByID(context.Background(), 7)
	require.ErrorIs(t, err, ports.ErrNotFound)
}

func TestRepository_UpdateKeepsStoredOrderOnError(t *testing.T) {
	repo := NewRepository()
	ctx := context.Background()
	saved, err := repo.Insert(ctx, newOrder(t, "Alice"))
	require.NoError(t, err)

	boom := errors.New("boom")
	_, err = repo.Update(ctx, saved.ID, func(o *domain.Order) error {
		o.Customer = "Mallory"
		return boom
	})
	require.ErrorIs(t, err, boom)

	fetched, err := repo.GetByID(ctx, saved.ID)
	require.NoError(t, err)
	require.Equal(t, "Alice", fetched.Customer)
}

func TestRepository_ConcurrentTransitionsFromSameStatus(t *testing.T) {
	repo := NewRepository()
	ctx := context.Background()
	saved, err := repo.Insert(ctx, newOrder(t, "Alice"))
	require.NoError(t, err)

	var wins atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := repo.Update(ctx, saved.ID, func(o *domain.Order) error {
				return o.TransitionTo(domain.StatusPreparing, "", time.Now())
			})
			if err == nil {
				wins.Add(1)
			}
		}()
	}
	wg.Wait()

	require.Equal(t, int32(1), wins.Load())
	fetched, err := repo.GetByID(ctx, saved.ID)
	require.NoError(t, err)
	require.Len(t, fetched.History, 1)
}
