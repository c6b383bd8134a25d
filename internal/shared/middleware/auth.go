package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"infinite-ideas-hub/internal/shared/response"
	"infinite-ideas-hub/internal/shared/result"
	"infinite-ideas-hub/internal/shared/session"
	"infinite-ideas-hub/pkg/jwt"
)

var ErrInvalidToken = result.Unauthenticated("invalid or expired token")

// TokenValidator is satisfied by *jwt.Manager.
type TokenValidator interface {
	ValidateAccessToken(token string) (*jwt.Claims, error)
}

// IdentityResolver loads the caller's current role and author link.
type IdentityResolver interface {
	ResolveIdentity(ctx context.Context, userID uuid.UUID) (*session.Identity, error)
}

// Session resolves the bearer token, when present, into a session.Identity
// on the request context. Requests without a token continue anonymously;
// a token that fails to verify is rejected.
func Session(tokens TokenValidator, resolver IdentityResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.Next()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
			response.AbortWithError(c, result.Unauthenticated("invalid authorization header format"))
			return
		}

		claims, err := tokens.ValidateAccessToken(strings.TrimSpace(parts[1]))
		if err != nil {
			log.Debug().Err(err).Msg("access token rejected")
			response.AbortWithError(c, ErrInvalidToken)
			return
		}

		userID, err := uuid.Parse(claims.UserID)
		if err != nil {
			response.AbortWithError(c, ErrInvalidToken)
			return
		}

		identity, err := resolver.ResolveIdentity(c.Request.Context(), userID)
		if err != nil {
			response.AbortWithError(c, err)
			return
		}

		c.Set("user_id", userID.String())
		c.Request = c.Request.WithContext(session.WithIdentity(c.Request.Context(), identity))
		c.Next()
	}
}

// RequireRole guards a route group. Services re-check roles themselves.
func RequireRole(roles ...session.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, err := session.RequireRole(session.FromContext(c.Request.Context()), roles...); err != nil {
			response.AbortWithError(c, err)
			return
		}
		c.Next()
	}
}
