package choose_subscription

import "errors"

var (
	// ErrInvalidFrequency is returned for an unknown cadence
	ErrInvalidFrequency = errors.New("choose_subscription: invalid frequency")

	// ErrInvalidDuration is returned when months is outside 1..12
	ErrInvalidDuration = errors.New("choose_subscription: invalid duration")

	// ErrInternal is returned on session store failures
	ErrInternal = errors.New("choose_subscription: internal error")
)
