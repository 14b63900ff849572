package get_details

import (
	"context"

	submitGuestDetails "github.com/m04kA/SMC-BookingPortal/internal/usecase/submit_guest_details"
)

type SubmitGuestDetailsUseCase interface {
	Enter(ctx context.Context, session submitGuestDetails.DraftSession) (*submitGuestDetails.Summary, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
