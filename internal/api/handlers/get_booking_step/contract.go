package get_booking_step

import (
	"context"

	"github.com/m04kA/SMC-BookingPortal/internal/service/draft"
	"github.com/m04kA/SMC-BookingPortal/internal/service/draft/models"
)

type DraftService interface {
	Step(ctx context.Context, session draft.DraftSession, name string) (*models.StepResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
