package get_date_page

import (
	"context"

	pickSlot "github.com/m04kA/SMC-BookingPortal/internal/usecase/pick_slot"
)

type PickSlotUseCase interface {
	Page(ctx context.Context, session pickSlot.DraftSession, req *pickSlot.PageRequest) (*pickSlot.PageResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
