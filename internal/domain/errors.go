package domain

import (
	"fmt"
	"strings"
)

// NotFoundError represents a missing resource.
type NotFoundError struct {
	Resource string
}

func (e NotFoundError) Error() string {
	if e.Resource == "" {
		return "not found"
	}
	return fmt.Sprintf("%s not found", e.Resource)
}

// Is enables errors.Is matching on NotFoundError.
func (e NotFoundError) Is(target error) bool {
	_, ok := target.(NotFoundError)
	if ok {
		return true
	}
	_, ok = target.(*NotFoundError)
	return ok
}

// ErrNotFound is the sentinel error for missing resources.
var ErrNotFound = NotFoundError{}

// ValidationError represents user-fixable bad input. Maps to 400.
type ValidationError struct {
	Reason string
}

func (e ValidationError) Error() string {
	if e.Reason == "" {
		return "invalid input"
	}
	return e.Reason
}

func (e ValidationError) Is(target error) bool {
	_, ok := target.(ValidationError)
	if ok {
		return true
	}
	_, ok = target.(*ValidationError)
	return ok
}

var ErrValidation = ValidationError{}

// ModerationError is returned when text matches the prohibited-word
// policy. Matches carries the offending terms so the caller can fix them.
type ModerationError struct {
	Matches []string
}

func (e ModerationError) Error() string {
	if len(e.Matches) == 0 {
		return "text rejected by moderation"
	}
	return fmt.Sprintf("text rejected by moderation: %s", strings.Join(e.Matches, ", "))
}

func (e ModerationError) Is(target error) bool {
	_, ok := target.(ModerationError)
	if ok {
		return true
	}
	_, ok = target.(*ModerationError)
	return ok
}

var ErrModeration = ModerationError{}

// CommentsDisabledError is returned when commenting on a confession whose
// author disabled comments. Maps to 403.
type CommentsDisabledError struct {
	ConfessionID string
}

func (e CommentsDisabledError) Error() string {
	return "comments are disabled for this confession"
}

func (e CommentsDisabledError) Is(target error) bool {
	_, ok := target.(CommentsDisabledError)
	if ok {
		return true
	}
	_, ok = target.(*CommentsDisabledError)
	return ok
}

var ErrCommentsDisabled = CommentsDisabledError{}

// UnauthorizedError represents a missing or invalid bearer token.
type UnauthorizedError struct {
	Reason string
}

func (e UnauthorizedError) Error() string {
	if e.Reason == "" {
		return "unauthorized"
	}
	return e.Reason
}

func (e UnauthorizedError) Is(target error) bool {
	_, ok := target.(UnauthorizedError)
	if ok {
		return true
	}
	_, ok = target.(*UnauthorizedError)
	return ok
}

var ErrUnauthorized = UnauthorizedError{}

// RemoteUnavailableError means the remote feed service failed and no
// cached fallback exists. Detail carries the upstream failure message.
type RemoteUnavailableError struct {
	Detail string
	Err    error
}

func (e RemoteUnavailableError) Error() string {
	if e.Detail == "" {
		return "remote feed service unavailable"
	}
	return fmt.Sprintf("remote feed service unavailable: %s", e.Detail)
}

func (e RemoteUnavailableError) Unwrap() error { return e.Err }

func (e RemoteUnavailableError) Is(target error) bool {
	_, ok := target.(RemoteUnavailableError)
	if ok {
		return true
	}
	_, ok = target.(*RemoteUnavailableError)
	return ok
}

var ErrRemoteUnavailable = RemoteUnavailableError{}

// StoreError wraps an engagement persistence failure. Maps to 500.
type StoreError struct {
	Err error
}

func (e StoreError) Error() string {
	if e.Err == nil {
		return "engagement store failure"
	}
	return fmt.Sprintf("engagement store failure: %v", e.Err)
}

func (e StoreError) Unwrap() error { return e.Err }

func (e StoreError) Is(target error) bool {
	_, ok := target.(StoreError)
	if ok {
		return true
	}
	_, ok = target.(*StoreError)
	return ok
}

var ErrStore = StoreError{}
