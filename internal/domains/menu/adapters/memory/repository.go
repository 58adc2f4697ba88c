package memory

import (
	"context"
	"errors"
	"slices"
	"sync"

	"github.com/firaolassefa/restaurant-management-system/internal/domains/menu/domain"
	"github.com/firaolassefa/restaurant-management-system/internal/domains/menu/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository is an in-memory catalog that preserves insertion order.
type Repository struct {
	mu     sync.RWMutex
	items  map[int64]*domain.Item
	order  []int64
	nextID int64
}

func NewRepository() *Repository {
	return &Repository{items: map[int64]*domain.Item{}}
}

func (r *Repository) Save(_ context.Context, item *domain.Item) (*domain.Item, error) {
	if item == nil {
		return nil, errors.New("menu item is nil")
	}
	clone := item.Clone()
	if err := clone.Validate(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.put(clone)
	return clone.Clone(), nil
}

func (r *Repository) GetByID(_ context.Context, id int64) (*domain.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	item, ok := r.items[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	return item.Clone(), nil
}

// Update applies mutate to a copy under the write lock and stores it only if it stays valid.
func (r *Repository) Update(_ context.Context, id int64, mutate func(*domain.Item) error) (*domain.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	current, ok := r.items[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	next := current.Clone()
	if err := mutate(next); err != nil {
		return nil, err
	}
	next.ID = id
	if err := next.Validate(); err != nil {
		return nil, err
	}
	r.items[id] = next
	return next.Clone(), nil
}

func (r *Repository) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return ports.ErrNotFound
	}
	delete(r.items, id)
	r.order = slices.DeleteFunc(r.order, func(existing int64) bool { return existing == id })
	return nil
}

func (r *Repository) List(_ context.Context) ([]*domain.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := make([]*domain.Item, 0, len(r.order))
	for _, id := range r.order {
		list = append(list, r.items[id].Clone())
	}
	return list, nil
}

func (r *Repository) ReplaceAll(_ context.Context, items []*domain.Item) ([]*domain.Item, error) {
	clones := make([]*domain.Item, 0, len(items))
	for _, item := range items {
		if item == nil {
			return nil, errors.New("menu item is nil")
		}
		clone := item.Clone()
		if err := clone.Validate(); err != nil {
			return nil, err
		}
		clones = append(clones, clone)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = make(map[int64]*domain.Item, len(clones))
	r.order = make([]int64, 0, len(clones))
	// explicit ids first so fresh ones never collide with them
	for _, clone := range clones {
		if clone.ID > r.nextID {
			r.nextID = clone.ID
		}
	}
	result := make([]*domain.Item, 0, len(clones))
	for _, clone := range clones {
		r.put(clone)
		result = append(result, clone.Clone())
	}
	return result, nil
}

// put must be called with the write lock held.
func (r *Repository) put(item *domain.Item) {
	if item.ID == 0 {
		r.nextID++
		item.ID = r.nextID
	} else if item.ID > r.nextID {
		r.nextID = item.ID
	}
	if _, exists := r.items[item.ID]; !exists {
		r.order = append(r.order, item.ID)
	}
	r.items[item.ID] = item
}
