package session

import (
	"context"

	"github.com/google/uuid"
)

// Role of an authenticated caller.
type Role string

const (
	RoleUser   Role = "user"
	RoleAuthor Role = "author"
	RoleAdmin  Role = "admin"
)

// AllRoles returns all valid roles
func AllRoles() []Role {
	return []Role{RoleUser, RoleAuthor, RoleAdmin}
}

// IsValid reports whether r is a known role
func (r Role) IsValid() bool {
	switch r {
	case RoleUser, RoleAuthor, RoleAdmin:
		return true
	}
	return false
}

func (r Role) String() string {
	return string(r)
}

// Identity is the resolved caller of a request. It is built once per
// request by the session middleware and passed explicitly to services.
type Identity struct {
	UserID   uuid.UUID  `json:"user_id"`
	Email    string     `json:"email"`
	Name     string     `json:"name"`
	Image    string     `json:"image"`
	Role     Role       `json:"role"`
	AuthorID *uuid.UUID `json:"author_id,omitempty"`
}

// EffectiveRole defaults an empty role to "user".
func (i *Identity) EffectiveRole() Role {
	if i == nil || i.Role == "" {
		return RoleUser
	}
	return i.Role
}

func (i *Identity) IsAdmin() bool {
	return i != nil && i.EffectiveRole() == RoleAdmin
}

type contextKey struct{}

// WithIdentity returns a copy of ctx carrying id.
func WithIdentity(ctx context.Context, id *Identity) context.Context {
	return context.WithValue(ctx, contextKey{}, id)
}

// FromContext returns the identity stored in ctx, or nil for anonymous callers.
func FromContext(ctx context.Context) *Identity {
	id, _ := ctx.Value(contextKey{}).(*Identity)
	return id
}
