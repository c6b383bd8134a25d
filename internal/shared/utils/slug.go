package utils

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"infinite-ideas-hub/internal/shared/result"
)

const (
	// MaxSlugAttempts bounds the numeric suffix search.
	MaxSlugAttempts = 1000
	// SlugWriteRounds bounds re-probing after the unique index rejects a write.
	SlugWriteRounds = 3
)

var (
	slugInvalidChars = regexp.MustCompile(`[^a-z0-9\s-]`)
	slugWhitespace   = regexp.MustCompile(`\s+`)
	slugHyphens      = regexp.MustCompile(`-+`)

	ErrSlugExhausted = result.New(result.KindSlugExhausted, "could not find a free slug")
)

// Slugify normalizes s into a URL-safe slug.
// "  Hello, World!  " → "hello-world"
func Slugify(s string) string {
	lower := strings.TrimSpace(strings.ToLower(s))
	cleaned := slugInvalidChars.ReplaceAllString(lower, "")
	hyphenated := slugWhitespace.ReplaceAllString(cleaned, "-")
	return slugHyphens.ReplaceAllString(hyphenated, "-")
}

// FallbackSlug is used when a candidate normalizes to nothing.
func FallbackSlug(entity string, now time.Time) string {
	return fmt.Sprintf("%s-%d", entity, now.UnixMilli())
}

// SlugExistsFunc reports whether slug is already taken by a row other
// than the one being updated.
type SlugExistsFunc func(ctx context.Context, slug string) (bool, error)

// UniqueSlug derives a free slug from candidate, appending -1, -2, ...
// on collision. It fails with ErrSlugExhausted after MaxSlugAttempts.
func UniqueSlug(ctx context.Context, entity, candidate string, exists SlugExistsFunc) (string, error) {
	base := Slugify(candidate)
	if base == "" {
		base = FallbackSlug(entity, time.Now())
	}

	slug := base
	for n := 1; n <= MaxSlugAttempts; n++ {
		taken, err := exists(ctx, slug)
		if err != nil {
			return "", fmt.Errorf("check slug %q: %w", slug, err)
		}
		if !taken {
			return slug, nil
		}
		slug = fmt.Sprintf("%s-%d", base, n)
	}

	return "", ErrSlugExhausted
}
