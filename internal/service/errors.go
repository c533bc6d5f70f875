package service

import (
	"errors"

	"github.com/fathima-sithara/social-api/internal/repository"
)

var (
	// ErrInvalidOperation covers self-targeting a chat and malformed
	// notification payloads.
	ErrInvalidOperation = errors.New("invalid operation")

	// ErrNotFound covers missing users, conversations, or notifications.
	ErrNotFound = errors.New("not found")

	// ErrForbidden is returned when someone other than the request
	// recipient tries to accept a pending conversation.
	ErrForbidden = errors.New("forbidden")
)

// translateNotFound maps the store-level miss onto the service taxonomy and
// leaves every other error (a real persistence failure) untouched.
func translateNotFound(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return ErrNotFound
	}
	return err
}
