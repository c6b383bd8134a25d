package model

import (
	"time"

	"github.com/google/uuid"

	blogModel "infinite-ideas-hub/internal/domains/blog/model"
	"infinite-ideas-hub/internal/shared/result"
)

var (
	ErrDraftNotFound = result.NotFound("draft not found")
	ErrBlogMissing   = result.Invalid("blogId does not reference an existing blog")
)

// Draft is a user's working copy, optionally linked to a blog.
// Revision starts at 1 and grows by one on every write.
type Draft struct {
	ID          uuid.UUID        `json:"id"`
	UserID      uuid.UUID        `json:"userId"`
	BlogID      *uuid.UUID       `json:"blogId"`
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Image       string           `json:"image"`
	Category    string           `json:"category"`
	Status      blogModel.Status `json:"status"`
	Revision    int64            `json:"revision"`
	CreatedAt   time.Time        `json:"createdAt"`
	UpdatedAt   time.Time        `json:"updatedAt"`
}

// Patch is the resolved column set for UpdateDraft.
type Patch struct {
	Title       *string
	Description *string
	Image       *string
	Category    *string
	Status      *blogModel.Status
}

func (p Patch) IsEmpty() bool {
	return p.Title == nil && p.Description == nil && p.Image == nil && p.Category == nil && p.Status == nil
}
