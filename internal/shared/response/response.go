package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"infinite-ideas-hub/internal/shared/result"
)

// Response is the single JSON envelope returned by every route.
type Response struct {
	result.Result[any]
	Meta *Meta `json:"meta,omitempty"`
}

type Meta struct {
	Page  int `json:"page,omitempty"`
	Limit int `json:"limit,omitempty"`
	Total int `json:"total"`
}

// Success responses
func Success(c *gin.Context, statusCode int, value interface{}) {
	c.JSON(statusCode, Response{Result: result.Ok[any](value)})
}

func SuccessWithWarnings(c *gin.Context, statusCode int, value interface{}, warnings []string) {
	c.JSON(statusCode, Response{Result: result.Ok[any](value, warnings...)})
}

func SuccessWithMeta(c *gin.Context, statusCode int, value interface{}, meta *Meta) {
	c.JSON(statusCode, Response{Result: result.Ok[any](value), Meta: meta})
}

// Error responses
func ErrorResponse(c *gin.Context, statusCode int, kind result.Kind, message string) {
	c.JSON(statusCode, Response{Result: result.Fail[any](result.New(kind, message))})
}

// Fail writes err using its kind. Internal errors are logged with their
// cause and reported with a generic message.
func Fail(c *gin.Context, err error) {
	status := result.HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		log.Error().
			Err(err).
			Str("request_id", c.GetString("request_id")).
			Str("path", c.Request.URL.Path).
			Msg("request failed")
	}
	ErrorResponse(c, status, result.KindOf(err), result.PublicMessage(err))
}

// AbortWithError writes err and stops the handler chain.
func AbortWithError(c *gin.Context, err error) {
	Fail(c, err)
	c.Abort()
}

// Common error responses
func BadRequest(c *gin.Context, message string) {
	ErrorResponse(c, http.StatusBadRequest, result.KindInvalidInput, message)
}

func Forbidden(c *gin.Context, message string) {
	ErrorResponse(c, http.StatusForbidden, result.KindForbidden, message)
}

func NotFound(c *gin.Context, message string) {
	ErrorResponse(c, http.StatusNotFound, result.KindNotFound, message)
}
