package application

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/firaolassefa/restaurant-management-system/internal/domains/cart/domain"
	"github.com/firaolassefa/restaurant-management-system/internal/domains/cart/ports"
	menuports "github.com/firaolassefa/restaurant-management-system/internal/domains/menu/ports"
	ordersdomain "github.com/firaolassefa/restaurant-management-system/internal/domains/orders/domain"
	"github.com/firaolassefa/restaurant-management-system/internal/shared/identity"
	"github.com/firaolassefa/restaurant-management-system/internal/shared/money"
)

var _ ports.Service = (*Service)(nil)

// Service implements the cart use cases.
type Service struct {
	repo    ports.Repository
	items   ports.ItemLookup
	placer  ports.OrderPlacer
	taxRate decimal.Decimal
	now     func() time.Time
}

type Option func(*Service)

// WithTaxRate overrides money.DefaultTaxRate.
func WithTaxRate(rate decimal.Decimal) Option {
	return func(s *Service) {
		s.taxRate = rate
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// NewService wires the cart store, the catalog and the order placer.
func NewService(repo ports.Repository, items ports.ItemLookup, placer ports.OrderPlacer, opts ...Option) *Service {
	s := &Service{
		repo:    repo,
		items:   items,
		placer:  placer,
		taxRate: money.DefaultTaxRate,
		now:     func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Open starts an empty cart.
func (s *Service) Open(ctx context.Context) (*domain.Quote, error) {
	cart := domain.New(uuid.NewString(), s.now())
	if err := s.repo.Create(ctx, cart); err != nil {
		return nil, err
	}
	return domain.NewQuote(cart, nil, s.taxRate), nil
}

// Quote prices the cart against the current catalog.
func (s *Service) Quote(ctx context.Context, cartID string) (*domain.Quote, error) {
	cart, err := s.repo.Get(ctx, cartID)
	if err != nil {
		return nil, err
	}
	return s.quote(ctx, cart)
}

// AddItem adds one unit of itemID. Only available items may be added.
func (s *Service) AddItem(ctx context.Context, cartID string, itemID int64) (*domain.Quote, error) {
	product, err := s.lookup(ctx, itemID)
	if err != nil {
		return nil, err
	}
	return s.mutate(ctx, cartID, func(c *domain.Cart) error {
		return c.Add(product)
	})
}

// RemoveItem takes one unit of itemID out of the cart.
func (s *Service) RemoveItem(ctx context.Context, cartID string, itemID int64) (*domain.Quote, error) {
	return s.mutate(ctx, cartID, func(c *domain.Cart) error {
		c.Remove(itemID)
		return nil
	})
}

// SetQuantity sets the quantity of a line already in the cart. quantity <= 0 removes it.
func (s *Service) SetQuantity(ctx context.Context, cartID string, itemID int64, quantity int) (*domain.Quote, error) {
	return s.mutate(ctx, cartID, func(c *domain.Cart) error {
		return c.SetQuantity(itemID, quantity)
	})
}

func (s *Service) Clear(ctx context.Context, cartID string) (*domain.Quote, error) {
	return s.mutate(ctx, cartID, func(c *domain.Cart) error {
		c.Clear()
		return nil
	})
}

// Checkout turns the cart into a Pending order and empties it. Details are checked
// before the cart contents. Repeating a successful checkout with the same
// idempotency key returns the order it placed.
func (s *Service) Checkout(ctx context.Context, cartID string, details domain.OrderDetails, idempotencyKey string) (*ordersdomain.Order, error) {
	if err := details.Validate(); err != nil {
		return nil, mapError(err)
	}
	details = details.Normalize()
	orderType, err := ordersdomain.ParseType(details.OrderType)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	if s.placer == nil {
		return nil, errors.New("order placer not configured")
	}
	key := strings.TrimSpace(idempotencyKey)
	placementKey := scopedKey(cartID, key)

	var placed *ordersdomain.Order
	_, err = s.repo.Update(ctx, cartID, func(c *domain.Cart) error {
		if c.IsEmpty() {
			if key != "" && key == c.LastCheckoutKey {
				var err error
				placed, err = s.placer.PlaceOrder(ctx, nil, placementKey)
				return err
			}
			return domain.ErrEmptyCart
		}
		quote, err := s.quote(ctx, c)
		if err != nil {
			return err
		}
		if missing := quote.Unavailable(); len(missing) > 0 {
			return unavailableError(missing)
		}
		items := make([]ordersdomain.LineItem, 0, len(quote.Lines))
		for _, line := range quote.Lines {
			items = append(items, ordersdomain.LineItem{ItemID: line.ItemID, Name: line.Name, Quantity: line.Quantity, UnitPrice: line.UnitPrice})
		}
		order, err := ordersdomain.NewOrder(ordersdomain.Draft{
			Items:        items,
			Customer:     details.CustomerName,
			Table:        details.TableNumber,
			Waiter:       identity.NameFromContext(ctx),
			Type:         orderType,
			Instructions: details.SpecialInstructions,
			TaxRate:      s.taxRate,
			PlacedAt:     s.now(),
		})
		if err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidInput, err)
		}
		placed, err = s.placer.PlaceOrder(ctx, order, placementKey)
		if err != nil {
			return err
		}
		c.Clear()
		c.LastCheckoutKey = key
		c.UpdatedAt = s.now()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return placed, nil
}

// Reorder adds the lines of a placed order to the cart at today's prices. Lines whose
// item was removed or switched off are skipped and their names returned.
func (s *Service) Reorder(ctx context.Context, cartID string, order *ordersdomain.Order) (*domain.Quote, []string, error) {
	if order == nil {
		return nil, nil, errors.New("order is nil")
	}
	products := make(map[int64]domain.Product, len(order.Items))
	var skipped []string
	for _, line := range order.Items {
		if line.ItemID == 0 {
			skipped = append(skipped, line.Name)
			continue
		}
		product, err := s.lookup(ctx, line.ItemID)
		if errors.Is(err, menuports.ErrNotFound) || (err == nil && !product.Available) {
			skipped = append(skipped, line.Name)
			continue
		}
		if err != nil {
			return nil, nil, err
		}
		products[line.ItemID] = product
	}
	quote, err := s.mutate(ctx, cartID, func(c *domain.Cart) error {
		for _, line := range order.Items {
			product, ok := products[line.ItemID]
			if !ok {
				continue
			}
			if err := c.AddQuantity(product, line.Quantity); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return quote, skipped, nil
}

// scopedKey ties a client idempotency key to one cart, so two carts reusing a key place two orders.
func scopedKey(cartID, key string) string {
	if key == "" {
		return ""
	}
	return cartID + ":" + key
}

func (s *Service) mutate(ctx context.Context, cartID string, fn func(*domain.Cart) error) (*domain.Quote, error) {
	cart, err := s.repo.Update(ctx, cartID, func(c *domain.Cart) error {
		if err := fn(c); err != nil {
			return err
		}
		c.UpdatedAt = s.now()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.quote(ctx, cart)
}

func (s *Service) quote(ctx context.Context, cart *domain.Cart) (*domain.Quote, error) {
	products := make(map[int64]domain.Product, len(cart.Lines))
	for _, line := range cart.Lines {
		product, err := s.lookup(ctx, line.ItemID)
		if errors.Is(err, menuports.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		products[line.ItemID] = product
	}
	return domain.NewQuote(cart, products, s.taxRate), nil
}

func (s *Service) lookup(ctx context.Context, itemID int64) (domain.Product, error) {
	if s.items == nil {
		return domain.Product{}, errors.New("menu lookup not configured")
	}
	item, err := s.items.GetItem(ctx, itemID)
	if err != nil {
		return domain.Product{}, err
	}
	return domain.Product{ID: item.ID, Name: item.Name, Price: item.Price, Available: item.Available}, nil
}

func unavailableError(lines []domain.PricedLine) error {
	names := make([]string, 0, len(lines))
	for _, line := range lines {
		if line.Name == "" {
			names = append(names, fmt.Sprintf("item %d", line.ItemID))
			continue
		}
		names = append(names, line.Name)
	}
	return fmt.Errorf("%w: %s", domain.ErrItemUnavailable, strings.Join(names, ", "))
}
