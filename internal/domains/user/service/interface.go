package service

import (
	"context"

	"github.com/google/uuid"

	"infinite-ideas-hub/internal/domains/user/model"
	"infinite-ideas-hub/internal/shared/session"
)

type ServiceInterface interface {
	Register(ctx context.Context, req model.RegisterRequest) (*model.UserDTO, error)
	Login(ctx context.Context, req model.LoginRequest) (*model.LoginResponse, error)
	// Refresh trades a refresh token for a new token pair carrying the
	// user's current role.
	Refresh(ctx context.Context, req model.RefreshRequest) (*model.LoginResponse, error)
	Me(ctx context.Context, identity *session.Identity) (*model.UserDTO, error)

	// ResolveIdentity loads the current role and author link for userID.
	// Results are cached briefly; see InvalidateIdentity.
	ResolveIdentity(ctx context.Context, userID uuid.UUID) (*session.Identity, error)
	InvalidateIdentity(ctx context.Context, userID uuid.UUID)

	// Admin
	ListUsers(ctx context.Context, req model.ListUsersRequest) (*model.ListUsersResponse, error)
	SetRole(ctx context.Context, admin *session.Identity, userID uuid.UUID, req model.UpdateRoleRequest) (*model.UserDTO, []string, error)
}
