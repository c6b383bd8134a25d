package model

import (
	"strings"
	"unicode/utf8"

	"infinite-ideas-hub/internal/shared/result"
	"infinite-ideas-hub/internal/shared/utils"
)

// MinContentLength is the minimum plain-text length of a publishable body.
const MinContentLength = 20

var (
	ErrTitleTooShort   = result.Invalid("title must be at least 3 characters")
	ErrContentTooShort = result.Invalid("content must be at least 20 characters of text")
)

// CheckGuards reports whether title and description are publishable.
// It runs on every transition into published, whatever the route.
func CheckGuards(title, description string) error {
	if utf8.RuneCountInString(strings.TrimSpace(title)) < MinTitleLength {
		return ErrTitleTooShort
	}
	if utf8.RuneCountInString(utils.PlainText(description)) < MinContentLength {
		return ErrContentTooShort
	}
	return nil
}
