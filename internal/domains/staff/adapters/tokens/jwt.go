package tokens

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/firaolassefa/restaurant-management-system/internal/domains/staff/ports"
	"github.com/firaolassefa/restaurant-management-system/internal/shared/identity"
)

// Issuer is the token issuer name written into every token.
const Issuer = "restaurant-management-system"

var _ ports.TokenIssuer = (*JWTIssuer)(nil)

// JWTIssuer signs HS256 tokens whose jti is the session id.
type JWTIssuer struct {
	secret []byte
	now    func() time.Time
}

type claims struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

func NewJWTIssuer(secret string) (*JWTIssuer, error) {
	if len(secret) < 16 {
		return nil, errors.New("jwt secret must be at least 16 bytes")
	}
	return &JWTIssuer{secret: []byte(secret), now: time.Now}, nil
}

func (i *JWTIssuer) Issue(c ports.Claims) (string, error) {
	now := i.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		Name:  c.Identity.Name,
		Email: c.Identity.Email,
		Role:  string(c.Identity.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        c.SessionID,
			Subject:   strconv.FormatInt(c.Identity.ID, 10),
			Issuer:    Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(c.ExpiresAt),
		},
	})
	return token.SignedString(i.secret)
}

func (i *JWTIssuer) Parse(raw string) (ports.Claims, error) {
	var parsed claims
	_, err := jwt.ParseWithClaims(raw, &parsed, func(*jwt.Token) (any, error) {
		return i.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(Issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(i.now),
	)
	if err != nil {
		return ports.Claims{}, fmt.Errorf("%w: %w", ports.ErrInvalidToken, err)
	}
	id, err := strconv.ParseInt(parsed.Subject, 10, 64)
	if err != nil || parsed.ID == "" {
		return ports.Claims{}, ports.ErrInvalidToken
	}
	return ports.Claims{
		SessionID: parsed.ID,
		Identity:  identity.Identity{ID: id, Name: parsed.Name, Email: parsed.Email, Role: identity.Role(parsed.Role)},
		ExpiresAt: parsed.ExpiresAt.Time,
	}, nil
}
