package model

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

const (
	MaxNameLength    = 100
	MaxMessageLength = 2000
)

// CreateRequest is the body of POST /comments.
type CreateRequest struct {
	BlogID  string `json:"blogId"`
	Name    string `json:"name"`
	Message string `json:"message"`
}

func (r CreateRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.BlogID, validation.Required, is.UUID),
		validation.Field(&r.Name, validation.Required, validation.RuneLength(1, MaxNameLength)),
		validation.Field(&r.Message, validation.Required, validation.RuneLength(1, MaxMessageLength)),
	)
}

type CreateResponse struct {
	ID string `json:"id"`
}
