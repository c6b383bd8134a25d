package model

import (
	"time"

	"github.com/google/uuid"

	"infinite-ideas-hub/internal/shared/result"
)

const (
	UnknownAuthorName = "Unknown Author"
	DefaultImage      = "/fallback.avif"
)

var (
	ErrAuthorNotFound = result.NotFound("author not found")
	ErrUserNotFound   = result.NotFound("no user found with given identifier")
	ErrSlugTaken      = result.Conflict("author slug already taken")
	ErrAuthorExists   = result.Conflict("user already has an author profile")

	ErrAuthorResolution = result.New(result.KindInternal, "author resolution failed")
)

type Author struct {
	ID           uuid.UUID  `json:"id"`
	UserID       *uuid.UUID `json:"userId,omitempty"`
	Name         string     `json:"name"`
	Bio          string     `json:"bio"`
	ProfileImage string     `json:"profileImage"`
	Slug         string     `json:"slug"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}
