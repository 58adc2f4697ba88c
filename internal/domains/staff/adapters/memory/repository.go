package memory

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/firaolassefa/restaurant-management-system/internal/domains/staff/domain"
	"github.com/firaolassefa/restaurant-management-system/internal/domains/staff/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository is an in-memory staff store with a unique email index.
type Repository struct {
	mu      sync.RWMutex
	members map[int64]*domain.Member
	byEmail map[string]int64
	order   []int64
	nextID  int64
}

func NewRepository() *Repository {
	return &Repository{members: map[int64]*domain.Member{}, byEmail: map[string]int64{}}
}

func (r *Repository) Create(_ context.Context, member *domain.Member) (*domain.Member, error) {
	if member == nil {
		return nil, errors.New("staff member is nil")
	}
	clone := member.Clone()
	if err := clone.Validate(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, taken := r.byEmail[clone.Email]; taken {
		return nil, ports.ErrDuplicateEmail
	}
	r.nextID++
	clone.ID = r.nextID
	r.members[clone.ID] = clone
	r.byEmail[clone.Email] = clone.ID
	r.order = append(r.order, clone.ID)
	return clone.Clone(), nil
}

func (r *Repository) GetByID(_ context.Context, id int64) (*domain.Member, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	member, ok := r.members[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	return member.Clone(), nil
}

func (r *Repository) GetByEmail(_ context.Context, email string) (*domain.Member, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.byEmail[strings.ToLower(strings.TrimSpace(email))]
	if !ok {
		return nil, ports.ErrNotFound
	}
	return r.members[id].Clone(), nil
}

func (r *Repository) Update(_ context.Context, id int64, mutate func(*domain.Member) error) (*domain.Member, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	current, ok := r.members[id]
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
	if next.Email != current.Email {
		if _, taken := r.byEmail[next.Email]; taken {
			return nil, ports.ErrDuplicateEmail
		}
		delete(r.byEmail, current.Email)
		r.byEmail[next.Email] = id
	}
	r.members[id] = next
	return next.Clone(), nil
}

func (r *Repository) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	member, ok := r.members[id]
	if !ok {
		return ports.ErrNotFound
	}
	delete(r.members, id)
	delete(r.byEmail, member.Email)
	for i, existing := range r.order {
		if existing == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

func (r *Repository) List(_ context.Context) ([]*domain.Member, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*domain.Member, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.members[id].Clone())
	}
	return out, nil
}
