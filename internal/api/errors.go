package api

import (
	"errors"
	"fmt"
)

var (
	// ErrUnavailable indicates the backend could not be reached (transport
	// failure or timeout), as opposed to an HTTP error response.
	ErrUnavailable = errors.New("server unavailable")
	// ErrUnauthorized covers 401/403 responses regardless of their tag.
	ErrUnauthorized = errors.New("unauthorized")
)

// ErrorTag is the coarse error classification the backend sends in the
// X-Error response header.
type ErrorTag string

const (
	TagDuplicated         ErrorTag = "DUPLICATED"
	TagEmailNotConfirmed  ErrorTag = "EMAIL_NOT_CONFIRMED"
	TagForbidden          ErrorTag = "FORBIDDEN"
	TagInvalidCredentials ErrorTag = "INVALID_CREDENTIALS"
	TagInvalidEmail       ErrorTag = "INVALID_EMAIL"
	TagInvalidParameters  ErrorTag = "INVALID_PARAMETERS"
	TagInvalidPassword    ErrorTag = "INVALID_PASSWORD"
	TagNotFound           ErrorTag = "NOT_FOUND"
	TagPaymentRequired    ErrorTag = "PAYMENT_REQUIRED"
	TagTooManyRequests    ErrorTag = "TOO_MANY_REQUESTS"
	TagValidation         ErrorTag = "VALIDATION"
	TagUnknown            ErrorTag = "UNKNOWN"
)

// Error is an HTTP error response from the backend. Tag carries the X-Error
// header classification, TagUnknown when the header is missing.
type Error struct {
	StatusCode int
	Tag        ErrorTag
}

func (e *Error) Error() string {
	return fmt.Sprintf("api error: status %d, tag %s", e.StatusCode, e.Tag)
}

// Unwrap maps authentication/authorization statuses onto ErrUnauthorized so
// callers can use errors.Is without inspecting tags.
func (e *Error) Unwrap() error {
	if e.StatusCode == 401 || e.StatusCode == 403 {
		return ErrUnauthorized
	}
	return nil
}

// HasTag reports whether err is an api.Error carrying the given tag.
func HasTag(err error, tag ErrorTag) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Tag == tag
}
