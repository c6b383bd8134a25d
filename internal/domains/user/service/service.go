package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	auditModel "infinite-ideas-hub/internal/domains/audit/model"
	"infinite-ideas-hub/internal/domains/user/model"
	"infinite-ideas-hub/internal/domains/user/repository"
	"infinite-ideas-hub/internal/shared/result"
	"infinite-ideas-hub/internal/shared/session"
	"infinite-ideas-hub/pkg/cache"
	"infinite-ideas-hub/pkg/jwt"
)

const (
	bcryptCost       = 12
	identityCacheTTL = 5 * time.Minute
)

// AuditRecorder is the slice of the audit service used here.
type AuditRecorder interface {
	Record(ctx context.Context, e auditModel.Entry) error
}

type userService struct {
	repo  repository.Repository
	cache cache.Cache
	jwt   *jwt.Manager
	audit AuditRecorder
}

func NewUserService(repo repository.Repository, c cache.Cache, jwtManager *jwt.Manager, audit AuditRecorder) ServiceInterface {
	return &userService{
		repo:  repo,
		cache: c,
		jwt:   jwtManager,
		audit: audit,
	}
}

func identityKey(id uuid.UUID) string {
	return "identity:" + id.String()
}

// =====================================================
// AUTH
// =====================================================

func (s *userService) Register(ctx context.Context, req model.RegisterRequest) (*model.UserDTO, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, result.InvalidErr(err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		return nil, result.Internal(fmt.Errorf("hash password: %w", err))
	}
	hashStr := string(hash)

	u := &model.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: &hashStr,
		Role:         session.RoleUser,
	}
	if err := s.repo.Create(ctx, u); err != nil {
		if errors.Is(err, model.ErrEmailTaken) {
			return nil, err
		}
		return nil, result.Internal(err)
	}

	dto := u.ToDTO()
	return &dto, nil
}

func (s *userService) Login(ctx context.Context, req model.LoginRequest) (*model.LoginResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, result.InvalidErr(err)
	}

	u, err := s.repo.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			return nil, model.ErrInvalidCredentials
		}
		return nil, result.Internal(err)
	}

	// OAuth-only accounts carry no password hash
	if u.PasswordHash == nil {
		return nil, model.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(*u.PasswordHash), []byte(req.Password)); err != nil {
		return nil, model.ErrInvalidCredentials
	}

	return s.issueTokens(u)
}

func (s *userService) Refresh(ctx context.Context, req model.RefreshRequest) (*model.LoginResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, result.InvalidErr(err)
	}

	claims, err := s.jwt.ValidateRefreshToken(req.RefreshToken)
	if err != nil {
		return nil, model.ErrInvalidRefresh
	}
	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil, model.ErrInvalidRefresh
	}

	u, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			return nil, model.ErrInvalidRefresh
		}
		return nil, result.Internal(err)
	}
	return s.issueTokens(u)
}

func (s *userService) issueTokens(u *model.User) (*model.LoginResponse, error) {
	access, err := s.jwt.GenerateAccessToken(u.ID.String(), u.Email, u.Role.String())
	if err != nil {
		return nil, result.Internal(fmt.Errorf("sign token: %w", err))
	}
	refresh, err := s.jwt.GenerateRefreshToken(u.ID.String())
	if err != nil {
		return nil, result.Internal(fmt.Errorf("sign refresh token: %w", err))
	}

	return &model.LoginResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresAt:    time.Now().Add(s.jwt.AccessTTL()),
		User:         u.ToDTO(),
	}, nil
}

func (s *userService) Me(ctx context.Context, identity *session.Identity) (*model.UserDTO, error) {
	if identity == nil {
		return nil, session.ErrNoSession
	}
	u, err := s.repo.FindByID(ctx, identity.UserID)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			return nil, err
		}
		return nil, result.Internal(err)
	}
	dto := u.ToDTO()
	return &dto, nil
}

// =====================================================
// IDENTITY
// =====================================================

func (s *userService) ResolveIdentity(ctx context.Context, userID uuid.UUID) (*session.Identity, error) {
	var cached session.Identity
	if found, err := s.cache.Get(ctx, identityKey(userID), &cached); err == nil && found {
		return &cached, nil
	}

	u, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			return nil, session.ErrNoSession
		}
		return nil, result.Internal(err)
	}

	identity := u.ToIdentity()
	if err := s.cache.Set(ctx, identityKey(userID), identity, identityCacheTTL); err != nil {
		log.Warn().Err(err).Str("user_id", userID.String()).Msg("cache identity failed")
	}
	return identity, nil
}

func (s *userService) InvalidateIdentity(ctx context.Context, userID uuid.UUID) {
	if err := s.cache.Delete(ctx, identityKey(userID)); err != nil {
		log.Warn().Err(err).Str("user_id", userID.String()).Msg("invalidate identity failed")
	}
}

// =====================================================
// ADMIN
// =====================================================

func (s *userService) ListUsers(ctx context.Context, req model.ListUsersRequest) (*model.ListUsersResponse, error) {
	users, total, err := s.repo.List(ctx, req.Page, req.Limit)
	if err != nil {
		return nil, result.Internal(err)
	}

	out := &model.ListUsersResponse{Users: make([]model.UserDTO, 0, len(users)), Total: total}
	for _, u := range users {
		out.Users = append(out.Users, u.ToDTO())
	}
	return out, nil
}

func (s *userService) SetRole(ctx context.Context, admin *session.Identity, userID uuid.UUID, req model.UpdateRoleRequest) (*model.UserDTO, []string, error) {
	if _, err := session.RequireRole(admin, session.RoleAdmin); err != nil {
		return nil, nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, nil, result.InvalidErr(err)
	}

	before, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			return nil, nil, err
		}
		return nil, nil, result.Internal(err)
	}

	if err := s.repo.UpdateRole(ctx, userID, req.Role); err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			return nil, nil, err
		}
		return nil, nil, result.Internal(err)
	}
	s.InvalidateIdentity(ctx, userID)

	var warnings []string
	adminID := admin.UserID
	err = s.audit.Record(ctx, auditModel.Entry{
		Action:     auditModel.ActionChangeUserRole,
		ByUserID:   &adminID,
		TargetType: auditModel.TargetUser,
		TargetID:   userID.String(),
		Meta: map[string]interface{}{
			"from": before.Role,
			"to":   req.Role,
		},
	})
	if err != nil {
		warnings = append(warnings, "audit log entry could not be written")
	}

	before.Role = req.Role
	dto := before.ToDTO()
	return &dto, warnings, nil
}
