package get_week_calendar

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-BookingPortal/internal/calendar"
	"github.com/m04kA/SMC-BookingPortal/internal/domain"
)

func validateRequest(req *Request) error {
	if !req.Scope.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidScope, req.Scope)
	}
	if !req.Direction.IsValid() {
		return fmt.Errorf("%w: unknown direction %q", ErrInvalidInput, req.Direction)
	}
	if req.StaffID != nil && *req.StaffID <= 0 {
		return fmt.Errorf("%w: staff id must be positive", ErrInvalidInput)
	}
	return nil
}

// detailPath is the front-end route of an appointment for the viewing role
func detailPath(scope domain.CalendarScope, id int64) string {
	return fmt.Sprintf("/%s/appointments/%d", scope, id)
}

func currentCell(now, weekStart time.Time) *CellRef {
	for day := 0; day < domain.DaysInWeek; day++ {
		for _, hour := range calendar.Hours() {
			if calendar.IsCurrentCell(now, weekStart, day, hour) {
				return &CellRef{Day: day, Hour: hour}
			}
		}
	}
	return nil
}

func toAppointments(scope domain.CalendarScope, appts []domain.Appointment) []Appointment {
	out := make([]Appointment, 0, len(appts))
	for _, a := range appts {
		view := Appointment{
			ID:         a.ID,
			StartTime:  a.StartTime,
			EndTime:    a.EndTime,
			Status:     a.Status,
			Service:    a.Service,
			Staff:      a.Staff,
			DetailPath: detailPath(scope, a.ID),
		}
		if a.CustomerBooking != nil {
			view.CustomerName = a.CustomerBooking.CustomerName
		}
		out = append(out, view)
	}
	return out
}
