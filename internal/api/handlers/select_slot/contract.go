package select_slot

import (
	"context"

	pickSlot "github.com/m04kA/SMC-BookingPortal/internal/usecase/pick_slot"
)

type PickSlotUseCase interface {
	Select(ctx context.Context, session pickSlot.DraftSession, req *pickSlot.SelectRequest) (*pickSlot.SelectResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
