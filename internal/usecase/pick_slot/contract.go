package pick_slot

import (
	"context"
	"time"

	"github.com/m04kA/SMC-BookingPortal/internal/flow"
	"github.com/m04kA/SMC-BookingPortal/internal/slots"
)

// DraftSession is the visitor's booking draft together with its slot picker
type DraftSession interface {
	ID() string
	Snapshot(ctx context.Context) (flow.Draft, error)
	Update(ctx context.Context, fn func(s *flow.Store) error) (flow.Draft, error)
	Picker() *slots.Picker
}

type Metrics interface {
	ObserveTransition(from, to string)
}

// TimeProvider returns the current time (replaced in tests)
type TimeProvider interface {
	Now() time.Time
}

// Logger is the logging interface of the use case
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider is the wall clock
type RealTimeProvider struct{}

func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
