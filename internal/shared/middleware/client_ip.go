package middleware

import (
	"context"

	"github.com/gin-gonic/gin"

	"infinite-ideas-hub/internal/shared/utils"
)

type clientIPKey struct{}

// ClientIP stores the resolved client address on both the gin and the
// request context.
func ClientIP() gin.HandlerFunc {
	return func(c *gin.Context) {
		clientIP := utils.ExtractClientIP(c)

		c.Set("client_ip", clientIP)
		c.Request = c.Request.WithContext(context.WithValue(c.Request.Context(), clientIPKey{}, clientIP))

		c.Next()
	}
}

// ClientIPFromContext returns "" when the middleware did not run.
func ClientIPFromContext(ctx context.Context) string {
	ip, _ := ctx.Value(clientIPKey{}).(string)
	return ip
}
