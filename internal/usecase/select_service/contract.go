package select_service

import (
	"context"

	"github.com/m04kA/SMC-BookingPortal/internal/domain"
	"github.com/m04kA/SMC-BookingPortal/internal/flow"
)

// OpsClient lists services of a postcode area
type OpsClient interface {
	ListServices(ctx context.Context, postcode string) ([]domain.Service, error)
}

// DraftSession is the visitor's booking draft
type DraftSession interface {
	ID() string
	Snapshot(ctx context.Context) (flow.Draft, error)
	Update(ctx context.Context, fn func(s *flow.Store) error) (flow.Draft, error)
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
