package draft

import "errors"

var (
	// ErrUnknownStep is returned for a step name outside the booking flow
	ErrUnknownStep = errors.New("draft: unknown step")

	// ErrInvalidInput is returned for a bad service id or quantity
	ErrInvalidInput = errors.New("draft: invalid input data")

	// ErrServiceNotFound is returned when the service is not offered for the postcode
	ErrServiceNotFound = errors.New("draft: service not offered for postcode")

	// ErrRejected wraps a backend error message
	ErrRejected = errors.New("draft: request rejected")

	// ErrUnavailable is returned when the service list could not be loaded
	ErrUnavailable = errors.New("draft: services unavailable")

	// ErrInternal is returned on session store failures
	ErrInternal = errors.New("draft: internal error")
)
