package model

import (
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/google/uuid"

	"infinite-ideas-hub/internal/shared/result"
)

var (
	ErrTokenRequired = result.Invalid("token is required")
	ErrTokenInvalid  = result.NotFound("confirmation link is invalid or has expired")
	ErrEmailRequired = result.Invalid("email is required")
)

type Subscriber struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	SubscribedAt time.Time `json:"subscribedAt"`
}

// PendingSubscriber is an unconfirmed sign-up awaiting its emailed token.
type PendingSubscriber struct {
	ID        uuid.UUID
	Email     string
	Token     string
	CreatedAt time.Time
	ExpiresAt time.Time
}

type SubscribeRequest struct {
	Email string `json:"email"`
}

func (r *SubscribeRequest) Normalize() {
	r.Email = NormalizeEmail(r.Email)
}

func (r SubscribeRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, is.EmailFormat),
	)
}

type SubscribeResponse struct {
	Already bool `json:"already"`
}

type CheckResponse struct {
	Exists bool `json:"exists"`
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
