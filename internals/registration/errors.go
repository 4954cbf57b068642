package registration

import (
	"errors"
	"strings"
)

// ValidationError aggregates the human-readable messages for a rejected
// submission. It never partially applies a request.
type ValidationError struct {
	Messages []string
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Messages, "; ")
}

var (
	// ErrDuplicateUser reports the benign race where a user with the
	// request's email or user id was created between the state check and the
	// insert (e.g. two admins approving at once).
	ErrDuplicateUser = errors.New("a user with that email or user id already exists")

	// ErrRequestNotFound reports an operation on an email with no signup request.
	ErrRequestNotFound = errors.New("signup request not found")

	// ErrInvalidState reports an admin decision on a request that is not
	// awaiting approval.
	ErrInvalidState = errors.New("signup request is not awaiting approval")
)
