package get_week_calendar

import (
	"context"
	"time"

	"github.com/m04kA/SMC-BookingPortal/internal/domain"
	"github.com/m04kA/SMC-BookingPortal/internal/integrations/opsapi"
)

// OpsClient lists appointments of a calendar scope
type OpsClient interface {
	ListAppointments(ctx context.Context, req opsapi.AppointmentsRequest) ([]domain.Appointment, error)
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
