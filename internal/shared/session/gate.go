package session

import (
	"github.com/google/uuid"

	"infinite-ideas-hub/internal/shared/result"
)

var (
	ErrNoSession      = result.Unauthenticated("authentication required")
	ErrRoleNotAllowed = result.Forbidden("access denied")
	ErrNotOwner       = result.Forbidden("you do not own this resource")
)

// RequireRole checks that id is present and holds one of allowed.
// It returns the identity so callers can use it without a second lookup.
func RequireRole(id *Identity, allowed ...Role) (*Identity, error) {
	if id == nil {
		return nil, ErrNoSession
	}
	role := id.EffectiveRole()
	for _, r := range allowed {
		if r == role {
			return id, nil
		}
	}
	return nil, ErrRoleNotAllowed
}

// CanModifyBlog enforces blog ownership: the caller's author profile must
// own the blog, unless the caller is an admin.
func CanModifyBlog(id *Identity, blogAuthorID *uuid.UUID) error {
	if id == nil {
		return ErrNoSession
	}
	if id.IsAdmin() {
		return nil
	}
	if id.AuthorID == nil || blogAuthorID == nil || *id.AuthorID != *blogAuthorID {
		return ErrNotOwner
	}
	return nil
}

// CanModifyDraft enforces draft ownership by user id, admins excepted.
func CanModifyDraft(id *Identity, draftUserID uuid.UUID) error {
	if id == nil {
		return ErrNoSession
	}
	if id.IsAdmin() || id.UserID == draftUserID {
		return nil
	}
	return ErrNotOwner
}
