package submit_postcode

import "errors"

var (
	// ErrInvalidPostcode is returned when the postcode fails the local format check
	ErrInvalidPostcode = errors.New("submit_postcode: invalid postcode format")

	// ErrRejected is returned when the backend does not serve the postcode; the backend message is wrapped
	ErrRejected = errors.New("submit_postcode: postcode rejected")

	// ErrUnavailable is returned when the backend could not be reached
	ErrUnavailable = errors.New("submit_postcode: validation service unavailable")

	// ErrInternal is returned on session store failures
	ErrInternal = errors.New("submit_postcode: internal error")
)
