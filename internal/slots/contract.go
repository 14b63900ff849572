package slots

import (
	"context"

	"github.com/m04kA/SMC-BookingPortal/internal/domain"
	"github.com/m04kA/SMC-BookingPortal/internal/integrations/opsapi"
)

// Fetcher loads the slots of one day.
type Fetcher interface {
	GetSlots(ctx context.Context, req opsapi.SlotsRequest) ([]domain.Slot, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
}

type Metrics interface {
	ObserveSlotFetch(outcome string)
	ObserveStaleResponse()
}
