package slots

import "errors"

var (
	// ErrNotLoaded is returned when a slot is picked before any day was loaded.
	ErrNotLoaded = errors.New("slots: no day loaded")

	// ErrLoading is returned when the selected day's fetch has not finished.
	ErrLoading = errors.New("slots: day is still loading")

	// ErrWrongDate is returned when the slot's date is not the currently selected day.
	ErrWrongDate = errors.New("slots: date is not the selected day")

	// ErrUnknownSlot is returned when the time is not in the loaded list.
	ErrUnknownSlot = errors.New("slots: unknown slot")

	// ErrUnavailable is returned when the slot exists but cannot be booked.
	ErrUnavailable = errors.New("slots: slot is not available")

	// ErrFetchFailed is returned when the selected day failed to load.
	ErrFetchFailed = errors.New("slots: day failed to load")
)

// transportMessage is shown when the backend gave no message of its own.
const transportMessage = "We could not load available times. Please try again."
