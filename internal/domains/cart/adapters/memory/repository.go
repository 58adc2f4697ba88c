package memory

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/firaolassefa/restaurant-management-system/internal/domains/cart/domain"
	"github.com/firaolassefa/restaurant-management-system/internal/domains/cart/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository keeps carts in process memory. Each cart has its own lock so a slow
// checkout only blocks edits to that cart.
type Repository struct {
	mu    sync.RWMutex
	carts map[string]*entry
}

type entry struct {
	mu      sync.Mutex
	cart    *domain.Cart
	deleted bool
}

func NewRepository() *Repository {
	return &Repository{carts: map[string]*entry{}}
}

func (r *Repository) Create(_ context.Context, cart *domain.Cart) error {
	if cart == nil {
		return errors.New("cart is nil")
	}
	if cart.ID == "" {
		return errors.New("cart id is required")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.carts[cart.ID]; exists {
		return errors.New("cart already exists")
	}
	r.carts[cart.ID] = &entry{cart: cart.Clone()}
	return nil
}

func (r *Repository) Get(_ context.Context, id string) (*domain.Cart, error) {
	e, err := r.entry(id)
	if err != nil {
		return nil, err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.deleted {
		return nil, ports.ErrNotFound
	}
	return e.cart.Clone(), nil
}

// Update applies mutate to a copy and keeps it only when mutate succeeds.
func (r *Repository) Update(_ context.Context, id string, mutate func(*domain.Cart) error) (*domain.Cart, error) {
	e, err := r.entry(id)
	if err != nil {
		return nil, err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.deleted {
		return nil, ports.ErrNotFound
	}
	next := e.cart.Clone()
	if err := mutate(next); err != nil {
		return nil, err
	}
	next.ID = id
	e.cart = next
	return next.Clone(), nil
}

// PurgeIdle skips carts held by an in-flight edit; the next sweep sees them again.
func (r *Repository) PurgeIdle(_ context.Context, cutoff time.Time) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	purged := 0
	for id, e := range r.carts {
		if !e.mu.TryLock() {
			continue
		}
		if e.cart.UpdatedAt.Before(cutoff) {
			e.deleted = true
			delete(r.carts, id)
			purged++
		}
		e.mu.Unlock()
	}
	return purged, nil
}

func (r *Repository) entry(id string) (*entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.carts[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	return e, nil
}
