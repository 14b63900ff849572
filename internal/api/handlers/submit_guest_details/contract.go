package submit_guest_details

import (
	"context"

	submitGuestDetails "github.com/m04kA/SMC-BookingPortal/internal/usecase/submit_guest_details"
)

type SubmitGuestDetailsUseCase interface {
	Submit(ctx context.Context, session submitGuestDetails.DraftSession, req *submitGuestDetails.Request) (*submitGuestDetails.SubmitResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
