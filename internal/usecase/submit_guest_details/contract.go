package submit_guest_details

import (
	"context"

	"github.com/m04kA/SMC-BookingPortal/internal/domain"
	"github.com/m04kA/SMC-BookingPortal/internal/flow"
)

// DraftSession is the visitor's booking draft
type DraftSession interface {
	ID() string
	Snapshot(ctx context.Context) (flow.Draft, error)
	Update(ctx context.Context, fn func(s *flow.Store) error) (flow.Draft, error)
	Forget()
}

// HandoffRepository persists completed drafts for the checkout collaborator
type HandoffRepository interface {
	Create(ctx context.Context, h *domain.CheckoutHandoff) (*domain.CheckoutHandoff, error)
}

// TransactionManager runs fn inside a database transaction
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

type Metrics interface {
	ObserveTransition(from, to string)
}

// Logger is the logging interface of the use case
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
