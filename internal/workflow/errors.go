package workflow

import "errors"

// Kind tags a workflow failure so callers can branch on the failure class
// instead of parsing message text.
type Kind string

const (
	KindValidation  Kind = "validation"
	KindNotFound    Kind = "not_found"
	KindIntegration Kind = "integration"
	KindPersistence Kind = "persistence"
)

// Error is a workflow step failure. Message is safe to surface to callers;
// Err carries the underlying cause.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func E(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf extracts the failure kind from err, or "" if err is not a
// workflow error.
func KindOf(err error) Kind {
	var we *Error
	if errors.As(err, &we) {
		return we.Kind
	}
	return ""
}

// MessageOf extracts the caller-safe message from err, falling back to
// err.Error() for non-workflow errors.
func MessageOf(err error) string {
	var we *Error
	if errors.As(err, &we) {
		return we.Message
	}
	return err.Error()
}
