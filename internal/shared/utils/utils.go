package utils

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"os"
	"strconv"

	"github.com/google/uuid"
)

// GenerateSecureToken returns n random bytes hex-encoded.
func GenerateSecureToken(n int) (string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// GetEnvVariable reads key, falling back to defaultValue when unset.
func GetEnvVariable(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// ParsePagination clamps page/limit query values.
func ParsePagination(pageStr, limitStr string, defaultLimit, maxLimit int) (page, limit int) {
	page, limit = 1, defaultLimit
	if p, err := strconv.Atoi(pageStr); err == nil && p > 0 {
		page = p
	}
	if l, err := strconv.Atoi(limitStr); err == nil && l > 0 {
		limit = l
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	return page, limit
}

// StringOr returns fallback when s is empty.
func StringOr(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}

// ParseUUIDParam parses a required id from a path or query value.
func ParseUUIDParam(s string) (uuid.UUID, error) {
	if s == "" {
		return uuid.Nil, errors.New("missing id")
	}
	return uuid.Parse(s)
}
