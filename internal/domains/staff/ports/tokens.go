package ports

import (
	"errors"
	"time"

	"github.com/firaolassefa/restaurant-management-system/internal/shared/identity"
)

var ErrInvalidToken = errors.New("invalid or expired token")

// Claims is what a signed token asserts.
type Claims struct {
	SessionID string
	Identity  identity.Identity
	ExpiresAt time.Time
}

// TokenIssuer signs and verifies bearer tokens.
type TokenIssuer interface {
	Issue(claims Claims) (string, error)
	Parse(token string) (Claims, error)
}
