package model

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// imageRule accepts an absolute URL, a site-relative path or "".
var imageRule = validation.By(func(v interface{}) error {
	var s string
	switch t := v.(type) {
	case string:
		s = t
	case *string:
		if t == nil {
			return nil
		}
		s = *t
	}
	if s == "" || strings.HasPrefix(s, "/") {
		return nil
	}
	return is.URL.Validate(s)
})

var statusRule = validation.In(StatusDraft, StatusPublished).Error("status must be draft or published")

// CreateRequest is the body of POST /content/blog.
type CreateRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Image       string `json:"image"`
	Category    string `json:"category"`
	Slug        string `json:"slug"`
	Status      Status `json:"status"`
}

func (r *CreateRequest) Normalize() {
	r.Title = strings.TrimSpace(r.Title)
	r.Category = strings.TrimSpace(r.Category)
	r.Image = strings.TrimSpace(r.Image)
	if r.Status == "" {
		r.Status = StatusDraft
	}
}

func (r CreateRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.Required, validation.RuneLength(MinTitleLength, 0)),
		validation.Field(&r.Description, validation.Required, validation.RuneLength(MinDescriptionLength, 0)),
		validation.Field(&r.Image, imageRule),
		validation.Field(&r.Status, statusRule),
	)
}

// UpdateRequest is the body of PATCH /content/blog. Nil fields are left untouched.
type UpdateRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Image       *string `json:"image"`
	Category    *string `json:"category"`
	Slug        *string `json:"slug"`
	Status      *Status `json:"status"`
}

func (r UpdateRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.By(func(v interface{}) error {
			if r.Title == nil {
				return nil
			}
			return validation.Validate(strings.TrimSpace(*r.Title), validation.Required, validation.RuneLength(MinTitleLength, 0))
		})),
		validation.Field(&r.Description, validation.By(func(v interface{}) error {
			if r.Description == nil {
				return nil
			}
			return validation.Validate(*r.Description, validation.Required, validation.RuneLength(MinDescriptionLength, 0))
		})),
		validation.Field(&r.Image, imageRule),
		validation.Field(&r.Status, statusRule),
	)
}

// RecoverRequest recreates a blog whose edit target disappeared.
// MissingID is informational only.
type RecoverRequest struct {
	CreateRequest
	MissingID string `json:"id"`
}

type LikeRequest struct {
	Slug string `json:"slug" binding:"required"`
}

type LikeResponse struct {
	Likes   int  `json:"likes"`
	Changed bool `json:"changed"`
}
