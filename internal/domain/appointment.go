package domain

import "time"

// AppointmentStatus is the backend status string; the portal does not interpret it.
type AppointmentStatus string

const (
	AppointmentScheduled  AppointmentStatus = "scheduled"
	AppointmentConfirmed  AppointmentStatus = "confirmed"
	AppointmentInProgress AppointmentStatus = "in_progress"
	AppointmentCompleted  AppointmentStatus = "completed"
	AppointmentCancelled  AppointmentStatus = "cancelled"
)

// Ref is an id/name pair for embedded records (service, staff member).
type Ref struct {
	ID   int64
	Name string
}

// CustomerBooking links an appointment to the customer booking it came from.
type CustomerBooking struct {
	ID           int64
	CustomerName string
}

// Appointment is a scheduled job as listed by the calendar endpoints.
type Appointment struct {
	ID              int64
	StartTime       time.Time
	EndTime         time.Time
	Status          AppointmentStatus
	Service         Ref
	Staff           Ref
	CustomerBooking *CustomerBooking
}

// IsCancelled returns true for cancelled appointments.
func (a *Appointment) IsCancelled() bool {
	return a.Status == AppointmentCancelled
}

// Duration returns the scheduled length, zero when the end is missing or before the start.
func (a *Appointment) Duration() time.Duration {
	if a.EndTime.Before(a.StartTime) {
		return 0
	}
	return a.EndTime.Sub(a.StartTime)
}

// CalendarScope selects whose appointments a calendar page shows.
type CalendarScope string

const (
	ScopeStaff    CalendarScope = "staff"
	ScopeAdmin    CalendarScope = "admin"
	ScopeCustomer CalendarScope = "customer"
)

// IsValid reports whether the scope is known.
func (s CalendarScope) IsValid() bool {
	switch s {
	case ScopeStaff, ScopeAdmin, ScopeCustomer:
		return true
	default:
		return false
	}
}
