package opsapi

import (
	"errors"
	"fmt"
)

var (
	// ErrInternal is returned when the request cannot be built.
	ErrInternal = errors.New("opsapi client: internal error")

	// ErrUnavailable is returned for network failures and non-2xx responses without an error envelope.
	ErrUnavailable = errors.New("opsapi client: service unavailable")

	// ErrInvalidResponse is returned when a 2xx body cannot be decoded.
	ErrInvalidResponse = errors.New("opsapi client: invalid response")

	// ErrRejected matches every *APIError.
	ErrRejected = errors.New("opsapi client: request rejected")
)

// defaultRejectMessage is used when the backend reports failure without a message.
const defaultRejectMessage = "The request could not be completed."

// APIError is a structured error returned by the operations API.
// Message is meant to be shown to the visitor as is.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("opsapi: status %d: %s", e.Status, e.Message)
}

func (e *APIError) Unwrap() error {
	return ErrRejected
}

// Message returns the visitor-facing message of err if it carries one.
func Message(err error) (string, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message, true
	}
	return "", false
}

// IsTransport reports whether err is a transport-level failure rather than a backend verdict.
func IsTransport(err error) bool {
	return errors.Is(err, ErrUnavailable) || errors.Is(err, ErrInvalidResponse)
}
