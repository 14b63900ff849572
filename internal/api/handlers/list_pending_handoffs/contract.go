package list_pending_handoffs

import (
	"context"

	"github.com/m04kA/SMC-BookingPortal/internal/service/handoffs/models"
)

type HandoffService interface {
	ListPending(ctx context.Context, req *models.ListPendingRequest) (*models.HandoffListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
