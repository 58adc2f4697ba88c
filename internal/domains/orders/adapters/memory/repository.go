package memory

import (
	"context"
	"errors"
	"sync"

	"github.com/firaolassefa/restaurant-management-system/internal/domains/orders/domain"
	"github.com/firaolassefa/restaurant-management-system/internal/domains/orders/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository is an in-memory order store. Orders are kept in placement order.
type Repository struct {
	mu     sync.RWMutex
	orders map[int64]*domain.Order
	order  []int64
	nextID int64
}

func NewRepository() *Repository {
	return &Repository{orders: map[int64]*domain.Order{}}
}

func (r *Repository) Insert(_ context.Context, order *domain.Order) (*domain.Order, error) {
	if order == nil {
		return nil, errors.New("order is nil")
	}
	clone := order.Clone()
	if err := clone.Validate(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	clone.ID = r.nextID
	clone.Number = domain.FormatNumber(clone.ID)
	r.orders[clone.ID] = clone
	r.order = append(r.order, clone.ID)
	return clone.Clone(), nil
}

func (r *Repository) GetByID(_ context.Context, id int64) (*domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	order, ok := r.orders[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	return order.Clone(), nil
}

// Update holds the write lock across read, mutate and write so concurrent transitions serialize.
func (r *Repository) Update(_ context.Context, id int64, mutate func(*domain.Order) error) (*domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	current, ok := r.orders[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	next := current.Clone()
	if err := mutate(next); err != nil {
		return nil, err
	}
	next.ID, next.Number = current.ID, current.Number
	if err := next.Validate(); err != nil {
		return nil, err
	}
	r.orders[id] = next
	return next.Clone(), nil
}

func (r *Repository) List(_ context.Context, filter domain.Filter) ([]*domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := make([]*domain.Order, 0, len(r.order))
	for _, id := range r.order {
		order := r.orders[id]
		if filter.Matches(order) {
			list = append(list, order.Clone())
		}
	}
	return list, nil
}
