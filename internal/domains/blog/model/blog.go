package model

import (
	"time"

	"github.com/google/uuid"

	"infinite-ideas-hub/internal/shared/result"
)

type Status string

const (
	StatusDraft     Status = "draft"
	StatusPublished Status = "published"
)

func (s Status) IsValid() bool {
	return s == StatusDraft || s == StatusPublished
}

const (
	DefaultImage    = "/fallback.avif"
	DefaultCategory = "Uncategorized"

	MinTitleLength       = 3
	MinDescriptionLength = 10
)

var (
	ErrBlogNotFound = result.NotFound("blog not found")
	ErrSlugTaken    = result.Conflict("blog slug already taken")
)

// Blog is a row of the blogs table. AuthorName and AuthorSlug are
// denormalized copies kept in sync by author updates.
type Blog struct {
	ID          uuid.UUID  `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Image       string     `json:"image"`
	Category    string     `json:"category"`
	Slug        string     `json:"slug"`
	Likes       int        `json:"likes"`
	Status      Status     `json:"status"`
	AuthorID    *uuid.UUID `json:"authorId"`
	AuthorName  string     `json:"authorName"`
	AuthorSlug  string     `json:"authorSlug"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// ListFilter selects published blogs for public listings.
type ListFilter struct {
	Category   string
	AuthorSlug string
	Page       int
	Limit      int
}

// AdminFilter selects blogs of any status for the admin posts table.
type AdminFilter struct {
	Status Status
	Search string
	Page   int
	Limit  int
}

// Patch is the resolved column set for an update. Nil fields are kept.
type Patch struct {
	Title       *string
	Description *string
	Image       *string
	Category    *string
	Slug        *string
	Status      *Status
}

func (p Patch) IsEmpty() bool {
	return p.Title == nil && p.Description == nil && p.Image == nil &&
		p.Category == nil && p.Slug == nil && p.Status == nil
}
