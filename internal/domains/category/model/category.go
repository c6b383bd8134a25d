package model

import (
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/google/uuid"

	blogModel "infinite-ideas-hub/internal/domains/blog/model"
	"infinite-ideas-hub/internal/shared/result"
)

const DefaultImage = "/fallback.avif"

var (
	ErrCategoryNotFound = result.NotFound("category not found")
	ErrCategoryExists   = result.Conflict("a category with this name already exists")
)

type Category struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	Slug          string    `json:"slug"`
	Description   string    `json:"description"`
	CategoryImage string    `json:"categoryImage"`
	CreatedAt     time.Time `json:"createdAt"`
}

type CategoryWithBlogs struct {
	Category *Category         `json:"category"`
	Blogs    []*blogModel.Blog `json:"blogs"`
}

// CreateRequest is the body of POST /admin/categories.
type CreateRequest struct {
	Name          string `json:"name"`
	Description   string `json:"description"`
	CategoryImage string `json:"categoryImage"`
}

func (r *CreateRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Description = strings.TrimSpace(r.Description)
	r.CategoryImage = strings.TrimSpace(r.CategoryImage)
}

func (r CreateRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.RuneLength(2, 60)),
		validation.Field(&r.Description, validation.RuneLength(0, 500)),
		validation.Field(&r.CategoryImage, is.URL),
	)
}
