package auth

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// Role names stored in the session. Admin unlocks category and user
// management; both roles may record sales.
const (
	RoleAdmin = "admin"
	RoleSales = "sales"
)

// Identity is the authenticated user fact this service consumes: who they
// are and which role gates their access. Session establishment (login) is
// owned by the auth service sharing the Redis session store.
type Identity struct {
	UserID uuid.UUID
	Role   string
}

// IsAdmin reports whether the identity carries the admin role.
func (i Identity) IsAdmin() bool {
	return i.Role == RoleAdmin
}

// contextKey is an unexported type to prevent key collisions in context.
type contextKey string

const identityKey contextKey = "identity"

// ErrIdentityNotFound is returned when no Identity exists in the request context.
// Handlers should return 401 when this error occurs.
var ErrIdentityNotFound = errors.New("identity not found in context")

// IdentityFromCtx extracts the authenticated identity from the request context.
// Returns ErrIdentityNotFound if none is set (unauthenticated request).
func IdentityFromCtx(ctx context.Context) (Identity, error) {
	id, ok := ctx.Value(identityKey).(Identity)
	if !ok || id.UserID == uuid.Nil {
		return Identity{}, ErrIdentityNotFound
	}
	return id, nil
}

// WithIdentity returns a new context with the given Identity attached.
// Used by authentication middleware after validating the session.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}
