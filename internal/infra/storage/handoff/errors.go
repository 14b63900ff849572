package handoff

import "errors"

var (
	// ErrHandoffNotFound is returned when no handoff has the reference
	ErrHandoffNotFound = errors.New("handoff.repository: handoff not found")

	// ErrAlreadyClaimed is returned when claiming a handoff that is no longer pending
	ErrAlreadyClaimed = errors.New("handoff.repository: handoff already claimed")

	// ErrBuildQuery is returned when a SQL query cannot be built
	ErrBuildQuery = errors.New("handoff.repository: failed to build query")

	// ErrExecQuery is returned when a SQL query fails
	ErrExecQuery = errors.New("handoff.repository: failed to execute query")

	// ErrScanRow is returned when a result row cannot be read
	ErrScanRow = errors.New("handoff.repository: failed to scan row")
)
