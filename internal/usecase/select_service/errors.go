package select_service

import "errors"

var (
	// ErrServiceNotFound is returned when the service is not offered in the draft's postcode area
	ErrServiceNotFound = errors.New("select_service: service not found for postcode")

	// ErrInvalidMode is returned for an unknown booking mode
	ErrInvalidMode = errors.New("select_service: invalid booking mode")

	// ErrRejected wraps a backend error message
	ErrRejected = errors.New("select_service: request rejected")

	// ErrUnavailable is returned when the backend could not be reached
	ErrUnavailable = errors.New("select_service: service list unavailable")

	// ErrInternal is returned on session store failures
	ErrInternal = errors.New("select_service: internal error")
)
