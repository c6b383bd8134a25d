package model

import (
	"time"

	"github.com/google/uuid"

	"infinite-ideas-hub/internal/shared/session"
)

// User is a row of the users table. AuthorID is derived from the linked
// author profile and is nil until the user is promoted.
type User struct {
	ID           uuid.UUID
	Name         string
	Email        string
	PasswordHash *string
	Role         session.Role
	Image        string
	AuthorID     *uuid.UUID
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// ToIdentity builds the request identity for u.
func (u *User) ToIdentity() *session.Identity {
	return &session.Identity{
		UserID:   u.ID,
		Email:    u.Email,
		Name:     u.Name,
		Image:    u.Image,
		Role:     u.Role,
		AuthorID: u.AuthorID,
	}
}

func (u *User) ToDTO() UserDTO {
	return UserDTO{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      u.Role,
		Image:     u.Image,
		AuthorID:  u.AuthorID,
		CreatedAt: u.CreatedAt,
	}
}
