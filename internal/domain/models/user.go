package models

import (
	"regexp"
	"strings"
	"time"
)

// User is an account holder. Every folder and note is scoped to exactly
// one user; queries never cross user boundaries.
type User struct {
	ID           string    `json:"id" db:"id"`
	Username     string    `json:"username" db:"username"`
	PasswordHash string    `json:"-" db:"password_hash"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

var innerWhitespace = regexp.MustCompile(`\s+`)

// NormalizeUsername lowercases, trims, and replaces internal whitespace
// with underscores. Uniqueness is enforced on the normalized form.
func NormalizeUsername(username string) string {
	username = strings.ToLower(strings.TrimSpace(username))
	return innerWhitespace.ReplaceAllString(username, "_")
}
