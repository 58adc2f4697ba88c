package restaurantserver

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"

	apierrors "github.com/firaolassefa/restaurant-management-system/internal/shared/errors"
	"github.com/firaolassefa/restaurant-management-system/internal/shared/identity"
)

// Authenticator resolves a bearer token into the caller's identity.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (identity.Identity, error)
}

// IdentityMiddleware attaches the caller's identity to the request context
// when an Authorization header is present. Requests without one pass through
// anonymously; a header carrying a bad token is rejected.
func IdentityMiddleware(auth Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, present := bearerToken(c)
		if !present {
			c.Next()
			return
		}
		if token == "" || auth == nil {
			respondProblem(c, apierrors.ErrUnauthorized.WithDetail("invalid bearer token"))
			c.Abort()
			return
		}
		id, err := auth.Authenticate(c.Request.Context(), token)
		if err != nil {
			respondServiceError(c, err)
			c.Abort()
			return
		}
		c.Request = c.Request.WithContext(identity.WithIdentity(c.Request.Context(), id))
		c.Next()
	}
}

// RequireStaff rejects anonymous callers.
func RequireStaff() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := identity.FromContext(c.Request.Context()); !ok {
			respondProblem(c, apierrors.ErrUnauthorized.WithDetail("sign in required"))
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireAdmin rejects anonymous callers with 401 and non-admins with 403.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := identity.FromContext(c.Request.Context())
		if !ok {
			respondProblem(c, apierrors.ErrUnauthorized.WithDetail("sign in required"))
			c.Abort()
			return
		}
		if !id.IsAdmin() {
			respondProblem(c, apierrors.ErrForbidden.WithDetail("admin role required"))
			c.Abort()
			return
		}
		c.Next()
	}
}

// bearerToken reports the token from the Authorization header and whether the header was sent at all.
func bearerToken(c *gin.Context) (string, bool) {
	header := strings.TrimSpace(c.GetHeader("Authorization"))
	if header == "" {
		return "", false
	}
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", true
	}
	return strings.TrimSpace(token), true
}
