package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/m04kA/SMC-BookingPortal/internal/domain"
	"github.com/m04kA/SMC-BookingPortal/internal/integrations/opsapi"
)

// OpsClient is the part of the operations API the commands read from
type OpsClient interface {
	ValidatePostcode(ctx context.Context, postcode string) ([]domain.Service, error)
	GetSlots(ctx context.Context, req opsapi.SlotsRequest) ([]domain.Slot, error)
	ListAppointments(ctx context.Context, req opsapi.AppointmentsRequest) ([]domain.Appointment, error)
}

// Context is passed to every command's Run
type Context struct {
	Ops    OpsClient
	Portal *PortalClient
	Loc    *time.Location
	Log    *log.Logger
	Out    io.Writer
	Now    func() time.Time
}

// OpsLogger adapts charmbracelet/log to the printf-style Logger of the API client
type OpsLogger struct {
	l *log.Logger
}

func NewOpsLogger(l *log.Logger) *OpsLogger {
	return &OpsLogger{l: l}
}

func (o *OpsLogger) Info(format string, v ...interface{})  { o.l.Infof(format, v...) }
func (o *OpsLogger) Warn(format string, v ...interface{})  { o.l.Warnf(format, v...) }
func (o *OpsLogger) Error(format string, v ...interface{}) { o.l.Errorf(format, v...) }
