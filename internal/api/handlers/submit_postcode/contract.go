package submit_postcode

import (
	"context"

	submitPostcode "github.com/m04kA/SMC-BookingPortal/internal/usecase/submit_postcode"
)

type SubmitPostcodeUseCase interface {
	Execute(ctx context.Context, session submitPostcode.DraftSession, req *submitPostcode.Request) (*submitPostcode.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
