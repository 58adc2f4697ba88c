// Package identity carries the authenticated actor through request contexts.
//
// The restaurant core never validates credentials itself; it trusts whatever
// Identity the transport layer attaches and only reads it to attribute work.
package identity

import "context"

// Role distinguishes administrators from regular staff.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleStaff Role = "staff"
)

// Valid reports whether the role is known.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleStaff
}

// Identity is the session record handed to the core.
type Identity struct {
	ID    int64
	Name  string
	Email string
	Role  Role
}

// IsAdmin reports whether the identity may manage the catalog and staff.
func (i Identity) IsAdmin() bool {
	return i.Role == RoleAdmin
}

// IsZero reports whether no identity is present.
func (i Identity) IsZero() bool {
	return i == Identity{}
}

type contextKey struct{}

// WithIdentity stores the identity on the context.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, contextKey{}, id)
}

// FromContext returns the identity stored by WithIdentity.
func FromContext(ctx context.Context) (Identity, bool) {
	if ctx == nil {
		return Identity{}, false
	}
	id, ok := ctx.Value(contextKey{}).(Identity)
	if !ok || id.IsZero() {
		return Identity{}, false
	}
	return id, true
}

// NameFromContext returns the display name of the acting identity, or "".
func NameFromContext(ctx context.Context) string {
	id, ok := FromContext(ctx)
	if !ok {
		return ""
	}
	return id.Name
}
