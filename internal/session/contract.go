package session

import (
	"context"

	"github.com/m04kA/SMC-BookingPortal/internal/flow"
)

// DraftStore persists one draft per session id. Load reports false for unknown or expired ids.
type DraftStore interface {
	Load(ctx context.Context, id string) (flow.Draft, bool, error)
	Save(ctx context.Context, id string, d flow.Draft) error
	Delete(ctx context.Context, id string) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
