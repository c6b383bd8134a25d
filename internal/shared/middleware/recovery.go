package middleware

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"infinite-ideas-hub/internal/shared/response"
	"infinite-ideas-hub/internal/shared/result"
)

// Recovery turns a panic into the standard internal-error envelope.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				log.Error().
					Str("request_id", c.GetString("request_id")).
					Interface("error", err).
					Msg("Panic recovered")

				response.AbortWithError(c, result.Internal(fmt.Errorf("panic: %v", err)))
			}
		}()

		c.Next()
	}
}
