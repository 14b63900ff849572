package submit_guest_details

import "errors"

var (
	// ErrInvalidInput is returned when the guest payload fails validation
	ErrInvalidInput = errors.New("submit_guest_details: invalid input data")

	// ErrInternal is returned on session store and database failures
	ErrInternal = errors.New("submit_guest_details: internal error")
)
