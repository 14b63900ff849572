package get_week_calendar

import "errors"

var (
	// ErrInvalidScope is returned for a role other than staff, admin or customer
	ErrInvalidScope = errors.New("get_week_calendar: invalid calendar scope")

	// ErrInvalidInput is returned for an unknown navigation direction
	ErrInvalidInput = errors.New("get_week_calendar: invalid input data")

	// ErrRejected wraps a backend error message
	ErrRejected = errors.New("get_week_calendar: request rejected")

	// ErrUnavailable is returned when appointments could not be loaded
	ErrUnavailable = errors.New("get_week_calendar: appointments service unavailable")
)
