package add_order_item

import (
	"context"

	"github.com/m04kA/SMC-BookingPortal/internal/service/draft"
	"github.com/m04kA/SMC-BookingPortal/internal/service/draft/models"
)

type DraftService interface {
	AddOrderItem(ctx context.Context, session draft.DraftSession, req *models.OrderItemRequest) (*models.OrderResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
