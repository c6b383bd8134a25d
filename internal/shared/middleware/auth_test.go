package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"infinite-ideas-hub/internal/shared/session"
	"infinite-ideas-hub/pkg/jwt"
)

type stubResolver struct {
	role session.Role
}

func (r stubResolver) ResolveIdentity(_ context.Context, userID uuid.UUID) (*session.Identity, error) {
	return &session.Identity{UserID: userID, Role: r.role}, nil
}

func newTestRouter(tokens *jwt.Manager, role session.Role) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Session(tokens, stubResolver{role: role}))

	r.GET("/whoami", func(c *gin.Context) {
		id := session.FromContext(c.Request.Context())
		if id == nil {
			c.String(http.StatusOK, "anonymous")
			return
		}
		c.String(http.StatusOK, string(id.Role))
	})
	r.GET("/content", RequireRole(session.RoleAuthor, session.RoleAdmin), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	return r
}

func do(r http.Handler, path, auth string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestSession(t *testing.T) {
	tokens := jwt.NewManager("secret", time.Hour, time.Hour)
	token, err := tokens.GenerateAccessToken(uuid.NewString(), "a@example.com", "author")
	require.NoError(t, err)

	t.Run("anonymous passes through", func(t *testing.T) {
		w := do(newTestRouter(tokens, session.RoleAuthor), "/whoami", "")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "anonymous", w.Body.String())
	})

	t.Run("valid token resolves identity", func(t *testing.T) {
		w := do(newTestRouter(tokens, session.RoleAuthor), "/whoami", "Bearer "+token)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "author", w.Body.String())
	})

	t.Run("malformed header", func(t *testing.T) {
		w := do(newTestRouter(tokens, session.RoleAuthor), "/whoami", "Token abc")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("bad token", func(t *testing.T) {
		w := do(newTestRouter(tokens, session.RoleAuthor), "/whoami", "Bearer nope")
		assert.Equal(t, http.StatusUnauthorized, w.Code)

		var body map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, false, body["ok"])
		assert.Equal(t, "unauthenticated", body["kind"])
	})
}

func TestRequireRole(t *testing.T) {
	tokens := jwt.NewManager("secret", time.Hour, time.Hour)
	token, err := tokens.GenerateAccessToken(uuid.NewString(), "u@example.com", "user")
	require.NoError(t, err)

	w := do(newTestRouter(tokens, session.RoleAuthor), "/content", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = do(newTestRouter(tokens, session.RoleUser), "/content", "Bearer "+token)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = do(newTestRouter(tokens, session.RoleAdmin), "/content", "Bearer "+token)
	assert.Equal(t, http.StatusNoContent, w.Code)
}
