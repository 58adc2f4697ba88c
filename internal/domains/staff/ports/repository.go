package ports

import (
	"context"
	"errors"

	"github.com/firaolassefa/restaurant-management-system/internal/domains/staff/domain"
)

var (
	ErrNotFound       = errors.New("staff member not found")
	ErrDuplicateEmail = errors.New("email is already registered")
)

// Repository stores staff members. Emails are unique.
type Repository interface {
	Create(ctx context.Context, member *domain.Member) (*domain.Member, error)
	GetByID(ctx context.Context, id int64) (*domain.Member, error)
	GetByEmail(ctx context.Context, email string) (*domain.Member, error)
	Update(ctx context.Context, id int64, mutate func(*domain.Member) error) (*domain.Member, error)
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]*domain.Member, error)
}
