package get_week_calendar

import (
	"context"

	getWeekCalendar "github.com/m04kA/SMC-BookingPortal/internal/usecase/get_week_calendar"
)

type GetWeekCalendarUseCase interface {
	Execute(ctx context.Context, req *getWeekCalendar.Request) (*getWeekCalendar.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
