package get_draft

import (
	"context"

	"github.com/m04kA/SMC-BookingPortal/internal/service/draft"
	"github.com/m04kA/SMC-BookingPortal/internal/service/draft/models"
)

type DraftService interface {
	Snapshot(ctx context.Context, session draft.DraftSession) (*models.DraftResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
