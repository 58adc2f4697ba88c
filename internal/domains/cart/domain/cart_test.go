package domain

import (
	"math/rand"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

var (
	burger = Product{ID: 1, Name: "Burger", Price: decimal.RequireFromString("10.50"), Available: true}
	salad  = Product{ID: 2, Name: "Caesar Salad", Price: decimal.RequireFromString("8.99"), Available: true}
	rate   = decimal.RequireFromString("0.08")
)

func TestCart_AddTwiceMergesLine(t *testing.T) {
	cart := New("c1", time.Now())
	require.NoError(t, cart.Add(burger))
	require.NoError(t, cart.Add(burger))

	require.Equal(t, []Line{{ItemID: 1, Quantity: 2}}, cart.Lines)
	require.Equal(t, 2, cart.TotalItems())
}

func TestCart_AddQuantity(t *testing.T) {
	cart := New("c1", time.Now())
	require.NoError(t, cart.Add(burger))
	require.NoError(t, cart.AddQuantity(burger, 3))
	require.NoError(t, cart.AddQuantity(salad, 0))

	require.Equal(t, []Line{{ItemID: 1, Quantity: 4}}, cart.Lines)
}

func TestCart_AddUnavailable(t *testing.T) {
	cart := New("c1", time.Now())
	off := burger
	off.Available = false

	err := cart.Add(off)
	require.ErrorIs(t, err, ErrItemUnavailable)
	require.True(t, cart.IsEmpty())
}

func TestCart_AddRemoveSequenceClampsAtZero(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for run := 0; run < 50; run++ {
		cart := New("c1", time.Now())
		want := 0
		for step := 0; step < 40; step++ {
			if rng.Intn(2) == 0 {
				require.NoError(t, cart.Add(burger))
				want++
			} else {
				cart.Remove(burger.ID)
				if want > 0 {
					want--
				}
			}
			require.Equal(t, want, cart.Quantity(burger.ID))
			if want == 0 {
				require.True(t, cart.IsEmpty())
			}
		}
	}
}

func TestCart_SetQuantity(t *testing.T) {
	cart := New("c1", time.Now())
	require.NoError(t, cart.Add(burger))

	require.NoError(t, cart.SetQuantity(burger.ID, 5))
	require.Equal(t, 5, cart.Quantity(burger.ID))

	require.ErrorIs(t, cart.SetQuantity(salad.ID, 3), ErrLineNotFound)

	require.NoError(t, cart.SetQuantity(burger.ID, 0))
	require.True(t, cart.IsEmpty())
	require.NoError(t, cart.SetQuantity(burger.ID, -1))
}

func TestCart_CloneIsIndependent(t *testing.T) {
	cart := New("c1", time.Now())
	require.NoError(t, cart.Add(burger))
	clone := cart.Clone()
	clone.Lines[0].Quantity = 9
	require.Equal(t, 1, cart.Quantity(burger.ID))
}

func TestNewQuote_BurgerScenario(t *testing.T) {
	cart := New("c1", time.Now())
	require.NoError(t, cart.Add(burger))
	require.NoError(t, cart.Add(burger))

	q := NewQuote(cart, map[int64]Product{burger.ID: burger}, rate)

	require.True(t, q.Subtotal.Equal(decimal.RequireFromString("21.00")))
	require.True(t, q.Tax.Equal(decimal.RequireFromString("1.68")))
	require.True(t, q.Total.Equal(decimal.RequireFromString("22.68")))
	require.True(t, q.Total.Equal(q.Subtotal.Add(q.Tax)))
	require.Equal(t, 2, q.ItemCount())
	require.Empty(t, q.Unavailable())
}

func TestNewQuote_KeepsFullPrecision(t *testing.T) {
	cart := New("c1", time.Now())
	require.NoError(t, cart.Add(salad))

	q := NewQuote(cart, map[int64]Product{salad.ID: salad}, rate)

	require.Equal(t, "0.7192", q.Tax.String())
	require.Equal(t, "9.7092", q.Total.String())
}

func TestNewQuote_ExcludesUnservableLines(t *testing.T) {
	cart := New("c1", time.Now())
	require.NoError(t, cart.Add(burger))
	require.NoError(t, cart.Add(salad))
	off := salad
	off.Available = false

	q := NewQuote(cart, map[int64]Product{salad.ID: off}, rate)

	require.True(t, q.Subtotal.IsZero())
	require.Len(t, q.Unavailable(), 2)
	require.Equal(t, "", q.Lines[0].Name)
	require.Equal(t, "Caesar Salad", q.Lines[1].Name)
}

func TestOrderDetails_Validate(t *testing.T) {
	require.ErrorIs(t, OrderDetails{TableNumber: "5"}.Validate(), ErrMissingCustomer)
	require.ErrorIs(t, OrderDetails{CustomerName: "Alice", TableNumber: "  "}.Validate(), ErrMissingTable)
	require.NoError(t, OrderDetails{CustomerName: " Alice ", TableNumber: "5"}.Validate())
	require.Equal(t, "Alice", OrderDetails{CustomerName: " Alice "}.Normalize().CustomerName)
}
