package handoffs

import "errors"

var (
	// ErrHandoffNotFound is returned when no handoff has the reference
	ErrHandoffNotFound = errors.New("handoff not found")

	// ErrAlreadyClaimed is returned when the handoff was picked up before
	ErrAlreadyClaimed = errors.New("handoff already claimed")

	// ErrInvalidInput is returned for an empty reference or a bad limit
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal is returned on repository failures
	ErrInternal = errors.New("service: internal error")
)
