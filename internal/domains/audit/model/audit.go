package model

import (
	"time"

	"github.com/google/uuid"
)

const (
	ActionPromoteUserToAuthor = "promote_user_to_author"
	ActionChangeUserRole      = "change_user_role"

	TargetUser = "user"
)

// Entry is an append-only audit record of an administrative action.
type Entry struct {
	ID         uuid.UUID              `json:"id"`
	Action     string                 `json:"action"`
	ByUserID   *uuid.UUID             `json:"by"`
	TargetType string                 `json:"targetType"`
	TargetID   string                 `json:"targetId"`
	Meta       map[string]interface{} `json:"meta"`
	CreatedAt  time.Time              `json:"createdAt"`
}

type ListRequest struct {
	Action string
	Page   int
	Limit  int
}
