package model

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	blogModel "infinite-ideas-hub/internal/domains/blog/model"
)

// PublishRequest is the body of POST /content/publish.
type PublishRequest struct {
	DraftID     string `json:"draftId"`
	BlogID      string `json:"blogId"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Image       string `json:"image"`
	Category    string `json:"category"`
	Slug        string `json:"slug"`
}

func (r PublishRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.DraftID, is.UUID.Error("invalid draftId")),
		validation.Field(&r.BlogID, is.UUID.Error("invalid blogId")),
	)
}

type PublishResponse struct {
	Blog    *blogModel.Blog `json:"blog"`
	Created bool            `json:"-"`
}

type Action string

const (
	ActionPublish   Action = "publish"
	ActionUnpublish Action = "unpublish"
	ActionDelete    Action = "delete"
)

// AdminActionRequest is the body of PATCH /admin/posts.
type AdminActionRequest struct {
	ID     string `json:"id"`
	Action Action `json:"action"`
}

func (r AdminActionRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.ID, validation.Required, is.UUID),
		validation.Field(&r.Action, validation.Required,
			validation.In(ActionPublish, ActionUnpublish, ActionDelete).Error("action must be publish, unpublish or delete")),
	)
}

type AdminActionResponse struct {
	ID     string          `json:"id"`
	Action Action          `json:"action"`
	Blog   *blogModel.Blog `json:"blog,omitempty"`
}
