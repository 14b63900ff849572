package claim_handoff

import (
	"context"

	"github.com/m04kA/SMC-BookingPortal/internal/service/handoffs/models"
)

type HandoffService interface {
	Claim(ctx context.Context, reference string) (*models.HandoffResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
