package get_week_calendar

import (
	"time"

	"github.com/m04kA/SMC-BookingPortal/internal/domain"
	"github.com/m04kA/SMC-BookingPortal/internal/navigator"
)

// Request selects the week to show. A nil Date means the current week.
type Request struct {
	Scope     domain.CalendarScope
	Date      *time.Time
	Direction navigator.Direction
	StaffID   *int64
}

// Day is one column header
type Day struct {
	Date  time.Time
	Today bool
}

// Appointment is one entry of a cell
type Appointment struct {
	ID           int64
	StartTime    time.Time
	EndTime      time.Time
	Status       domain.AppointmentStatus
	Service      domain.Ref
	Staff        domain.Ref
	CustomerName string
	DetailPath   string
}

// Cell is an occupied grid cell; empty cells are not listed
type Cell struct {
	Key          string
	Day          int
	Hour         int
	Current      bool
	Appointments []Appointment
}

// CellRef points at a grid cell
type CellRef struct {
	Day  int
	Hour int
}

// Response is the week grid
type Response struct {
	Scope     domain.CalendarScope
	WeekStart time.Time
	Prev      time.Time
	Next      time.Time
	Days      []Day
	Hours     []int
	Cells     []Cell
	// Current is the cell containing now, nil when now is outside the week or the grid hours.
	Current *CellRef
	Total   int
}
