package session

import "errors"

var (
	// ErrStore is returned when the draft store fails.
	ErrStore = errors.New("session: draft store error")

	// ErrInvalidID is returned for ids that are not issued by NewID.
	ErrInvalidID = errors.New("session: invalid session id")
)
