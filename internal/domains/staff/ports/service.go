package ports

import (
	"context"
	"time"

	"github.com/firaolassefa/restaurant-management-system/internal/domains/staff/domain"
	"github.com/firaolassefa/restaurant-management-system/internal/shared/identity"
)

// Token is a signed credential handed out by Login.
type Token struct {
	Value     string
	ExpiresAt time.Time
	Member    *domain.Member
}

// NewMember is the input for CreateMember.
type NewMember struct {
	Name     string
	Email    string
	Phone    string
	Password string
	Role     identity.Role
	Position domain.Position
}

// Service exposes staff and authentication use cases to adapters.
type Service interface {
	CreateMember(ctx context.Context, input NewMember) (*domain.Member, error)
	UpdateMember(ctx context.Context, id int64, patch domain.Patch) (*domain.Member, error)
	DeleteMember(ctx context.Context, id int64) error
	GetMember(ctx context.Context, id int64) (*domain.Member, error)
	ListMembers(ctx context.Context, term string) ([]*domain.Member, error)
	Login(ctx context.Context, email, password string) (*Token, error)
	Logout(ctx context.Context, token string) error
	Authenticate(ctx context.Context, token string) (identity.Identity, error)
}
