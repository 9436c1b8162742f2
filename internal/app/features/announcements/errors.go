// internal/app/features/announcements/errors.go
package announcements

import (
	"errors"
	"net/http"
)

// Kind classifies a request failure.
type Kind int

const (
	KindInternal Kind = iota
	KindUnauthorized
	KindInvalidArgument
	KindNotFound
	KindRateLimited
)

// Error is a request failure with a fixed, client-safe message.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string { return e.Message }

// Failures returned by the Service. Compare with errors.Is.
var (
	ErrAuthRequired       = &Error{Kind: KindUnauthorized, Message: "Authentication required"}
	ErrInvalidCredentials = &Error{Kind: KindUnauthorized, Message: "Invalid credentials"}

	ErrMessageRequired    = &Error{Kind: KindInvalidArgument, Message: "Message is required"}
	ErrExpirationRequired = &Error{Kind: KindInvalidArgument, Message: "Expiration is required"}
	ErrInvalidDatetime    = &Error{Kind: KindInvalidArgument, Message: "Invalid datetime format"}
	ErrInvalidBody        = &Error{Kind: KindInvalidArgument, Message: "Invalid request body"}

	ErrNotFound = &Error{Kind: KindNotFound, Message: "Announcement not found"}

	ErrTooManyAttempts = &Error{Kind: KindRateLimited, Message: "Too many failed attempts"}
)

// KindOf returns the Kind of err, or KindInternal for anything that is not an *Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// httpStatus maps a failure kind to its response code.
func httpStatus(k Kind) int {
	switch k {
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindInvalidArgument:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindRateLimited:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}
