package pick_slot

import "errors"

var (
	// ErrInvalidInput is returned for a missing date or a malformed time
	ErrInvalidInput = errors.New("pick_slot: invalid input data")

	// ErrDateInPast is returned for dates before today
	ErrDateInPast = errors.New("pick_slot: date is in the past")

	// ErrSlotNotLoaded is returned when the day of the slot is not the loaded, selected day
	ErrSlotNotLoaded = errors.New("pick_slot: slots for this date are not loaded")

	// ErrSlotNotAvailable is returned for unknown or unavailable slots and staff not on the slot
	ErrSlotNotAvailable = errors.New("pick_slot: slot is not available")

	// ErrRejected wraps a backend error message
	ErrRejected = errors.New("pick_slot: request rejected")

	// ErrUnavailable is returned when slots could not be loaded
	ErrUnavailable = errors.New("pick_slot: availability service unavailable")

	// ErrInternal is returned on session store failures
	ErrInternal = errors.New("pick_slot: internal error")
)
