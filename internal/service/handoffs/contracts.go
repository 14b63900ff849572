package handoffs

import (
	"context"

	"github.com/m04kA/SMC-BookingPortal/internal/domain"
)

// HandoffRepository is the checkout handoff outbox
type HandoffRepository interface {
	GetByReference(ctx context.Context, reference string) (*domain.CheckoutHandoff, error)
	ListPending(ctx context.Context, limit uint64) ([]*domain.CheckoutHandoff, error)
	Claim(ctx context.Context, reference string) error
}

// TransactionManager runs fn inside a database transaction
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger is the logging interface of the service
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
