package model

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	blogModel "infinite-ideas-hub/internal/domains/blog/model"
)

// PromoteRequest turns an existing user into an author. Exactly one of
// UserID or Email identifies the user.
type PromoteRequest struct {
	UserID       string `json:"userId"`
	Email        string `json:"email"`
	Name         string `json:"name"`
	Bio          string `json:"bio"`
	ProfileImage string `json:"profileImage"`
	Slug         string `json:"slug"`
}

func (r PromoteRequest) Validate() error {
	if (strings.TrimSpace(r.UserID) == "") == (strings.TrimSpace(r.Email) == "") {
		return validation.NewError("identifier", "either userId or email is required")
	}
	return validation.ValidateStruct(&r,
		validation.Field(&r.UserID, is.UUID.Error("invalid userId")),
		validation.Field(&r.Email, is.EmailFormat),
		validation.Field(&r.Name, validation.When(r.Name != "", validation.Length(2, 100))),
		validation.Field(&r.ProfileImage, is.URL),
	)
}

type PromoteResponse struct {
	Author  *Author `json:"author"`
	Created bool    `json:"-"`
	Message string  `json:"message,omitempty"`
}

// UpdateRequest patches an author; nil fields are left untouched.
type UpdateRequest struct {
	Name         *string `json:"name"`
	Bio          *string `json:"bio"`
	ProfileImage *string `json:"profileImage"`
	Slug         *string `json:"slug"`
}

func (r UpdateRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.NilOrNotEmpty, validation.Length(2, 100)),
		validation.Field(&r.ProfileImage, is.URL),
	)
}

func (r UpdateRequest) IsEmpty() bool {
	return r.Name == nil && r.Bio == nil && r.ProfileImage == nil && r.Slug == nil
}

// AuthorPatch is the resolved column set written by the repository.
type AuthorPatch struct {
	Name         *string
	Bio          *string
	ProfileImage *string
	Slug         *string
}

// AuthorWithBlogs is the public author page payload.
type AuthorWithBlogs struct {
	Author *Author           `json:"author"`
	Blogs  []*blogModel.Blog `json:"blogs"`
}

// AdminPatchRequest is the body of PATCH /admin/authors.
type AdminPatchRequest struct {
	ID      string        `json:"id"`
	Updates UpdateRequest `json:"updates"`
}
