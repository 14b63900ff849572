package list_services

import (
	"context"

	selectService "github.com/m04kA/SMC-BookingPortal/internal/usecase/select_service"
)

type SelectServiceUseCase interface {
	List(ctx context.Context, session selectService.DraftSession) (*selectService.ListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
