package get_slots

import (
	"context"

	pickSlot "github.com/m04kA/SMC-BookingPortal/internal/usecase/pick_slot"
)

type PickSlotUseCase interface {
	LoadSlots(ctx context.Context, session pickSlot.DraftSession, req *pickSlot.LoadRequest) (*pickSlot.SlotsResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
