package remove_order_item

import (
	"context"

	"github.com/m04kA/SMC-BookingPortal/internal/service/draft"
	"github.com/m04kA/SMC-BookingPortal/internal/service/draft/models"
)

type DraftService interface {
	RemoveOrderItem(ctx context.Context, session draft.DraftSession, serviceID int64) (*models.OrderResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
