package tokens

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/firaolassefa/restaurant-management-system/internal/domains/staff/ports"
	"github.com/firaolassefa/restaurant-management-system/internal/shared/identity"
)

const secret = "0123456789abcdef0123456789abcdef"

func TestJWTIssuer_RoundTrip(t *testing.T) {
	issuer, err := NewJWTIssuer(secret)
	require.NoError(t, err)
	in := ports.Claims{
		SessionID: "sess-1",
		Identity:  identity.Identity{ID: 4, Name: "Dana", Email: "dana@example.com", Role: identity.RoleAdmin},
		ExpiresAt: time.Now().Add(time.Hour).Truncate(time.Second),
	}

	token, err := issuer.Issue(in)
	require.NoError(t, err)
	out, err := issuer.Parse(token)
	require.NoError(t, err)
	require.Equal(t, in.SessionID, out.SessionID)
	require.Equal(t, in.Identity, out.Identity)
	require.True(t, in.ExpiresAt.Equal(out.ExpiresAt))
}

func TestJWTIssuer_Rejects(t *testing.T) {
	issuer, err := NewJWTIssuer(secret)
	require.NoError(t, err)
	other, err := NewJWTIssuer("another-secret-of-enough-length")
	require.NoError(t, err)

	expired, err := issuer.Issue(ports.Claims{SessionID: "s", Identity: identity.Identity{ID: 1}, ExpiresAt: time.Now().Add(-time.Minute)})
	require.NoError(t, err)
	_, err = issuer.Parse(expired)
	require.ErrorIs(t, err, ports.ErrInvalidToken)

	foreign, err := other.Issue(ports.Claims{SessionID: "s", Identity: identity.Identity{ID: 1}, ExpiresAt: time.Now().Add(time.Hour)})
	require.NoError(t, err)
	_, err = issuer.Parse(foreign)
	require.ErrorIs(t, err, ports.ErrInvalidToken)

	none := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{"sub": "1", "jti": "s", "iss": Issuer, "exp": time.Now().Add(time.Hour).Unix()})
	unsigned, err := none.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = issuer.Parse(unsigned)
	require.ErrorIs(t, err, ports.ErrInvalidToken)

	_, err = issuer.Parse("not-a-token")
	require.ErrorIs(t, err, ports.ErrInvalidToken)

	_, err = NewJWTIssuer("short")
	require.Error(t, err)
}
