package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrPageNotFound signals that no record exists for a username.
	// It is a normal branch (the page-creation flow), not a failure.
	ErrPageNotFound = errors.New("page not found")

	// ErrRemoteUnavailable tags store failures on load or save. Both
	// are recoverable: a failed load degrades to the creation flow, a
	// failed save leaves the draft intact so the user can retry.
	ErrRemoteUnavailable = errors.New("remote store unavailable")
)

// ValidationError reports a save precondition that the user can fix:
// a missing username or a missing password on first save.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
