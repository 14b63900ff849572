package get_service

import (
	"context"

	selectService "github.com/m04kA/SMC-BookingPortal/internal/usecase/select_service"
)

type SelectServiceUseCase interface {
	Detail(ctx context.Context, session selectService.DraftSession, serviceID int64) (*selectService.DetailResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
