package domain

import (
	"errors"
	"time"
	"unicode/utf8"
)

const (
	MessageMinLen = 5
	MessageMaxLen = 140
)

var (
	ErrThoughtNotFound  = errors.New("thought not found")
	ErrInvalidThoughtID = errors.New("invalid thought id")
	ErrMessageLength    = errors.New("message must be between 5 and 140 characters")
	ErrNotThoughtOwner  = errors.New("not the owner of this thought")
)

type Thought struct {
	ID      string
	Message string
	Hearts  int

	// OwnerID is nil for thoughts posted anonymously.
	OwnerID       *string
	OwnerUsername *string

	CreatedAt time.Time // set once, never updated
}

// ValidMessage reports whether msg fits the allowed length bounds.
// Bounds are in characters, not bytes, matching the database CHECK.
func ValidMessage(msg string) bool {
	n := utf8.RuneCountInString(msg)
	return n >= MessageMinLen && n <= MessageMaxLen
}
