package model

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	blogModel "infinite-ideas-hub/internal/domains/blog/model"
)

var statusRule = validation.In(blogModel.StatusDraft, blogModel.StatusPublished).Error("status must be draft or published")

// SaveRequest is the body of POST /content/drafts. A blogId links the
// draft to that blog; without one a new standalone draft is stored.
type SaveRequest struct {
	BlogID       string           `json:"blogId"`
	Title        string           `json:"title"`
	Description  string           `json:"description"`
	Image        string           `json:"image"`
	Category     string           `json:"category"`
	Status       blogModel.Status `json:"status"`
	BaseRevision *int64           `json:"baseRevision"`
}

func (r SaveRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.BlogID, is.UUID.Error("invalid blogId")),
		validation.Field(&r.Title, validation.RuneLength(0, 300)),
		validation.Field(&r.Status, statusRule),
		validation.Field(&r.BaseRevision, validation.Min(int64(1))),
	)
}

type SaveResponse struct {
	Draft   *Draft `json:"draft"`
	Created bool   `json:"-"`
	// StaleRevision reports that the write was based on an older revision
	// than the one it replaced.
	StaleRevision bool `json:"staleRevision,omitempty"`
}

// UpdateRequest is the body of PATCH /content/drafts.
type UpdateRequest struct {
	DraftID     string            `json:"draftId"`
	Title       *string           `json:"title"`
	Description *string           `json:"description"`
	Image       *string           `json:"image"`
	Category    *string           `json:"category"`
	Status      *blogModel.Status `json:"status"`
}

func (r UpdateRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.DraftID, validation.Required.Error("draftId is required"), is.UUID.Error("invalid draftId")),
		validation.Field(&r.Status, statusRule),
	)
}

type DeleteResponse struct {
	DeletedCount int64 `json:"deletedCount"`
}
