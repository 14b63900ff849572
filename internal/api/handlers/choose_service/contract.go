package choose_service

import (
	"context"

	selectService "github.com/m04kA/SMC-BookingPortal/internal/usecase/select_service"
)

type SelectServiceUseCase interface {
	Choose(ctx context.Context, session selectService.DraftSession, req *selectService.ChooseRequest) (*selectService.ChooseResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
