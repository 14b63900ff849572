package flow

import (
	"time"

	"github.com/m04kA/SMC-BookingPortal/internal/domain"
	"github.com/m04kA/SMC-BookingPortal/pkg/types"
)

// Store is the single source of truth for one session's booking draft.
// Setters change one step's fields each; they never validate across fields and never do I/O.
// A Store is not safe for concurrent use; the session layer serializes access.
type Store struct {
	draft Draft
}

// NewStore returns a store holding the initial empty draft.
func NewStore() *Store {
	return &Store{}
}

// Restore returns a store holding a copy of d.
func Restore(d Draft) *Store {
	return &Store{draft: d.clone()}
}

// Draft returns a snapshot of the current draft.
func (s *Store) Draft() Draft {
	return s.draft.clone()
}

// SetPostcode stores an already validated and normalized postcode.
func (s *Store) SetPostcode(postcode string) {
	s.draft.Postcode = &postcode
}

// SetSelectedService sets or clears (nil) the selected service.
func (s *Store) SetSelectedService(serviceID *int64) {
	s.draft.ServiceID = copyPtr(serviceID)
}

// SetBookingType switches the draft to the empty variant of t. Choosing the type the draft
// already has keeps the variant's fields. An empty type clears the path.
func (s *Store) SetBookingType(t domain.BookingType) {
	if t == "" {
		s.draft.Path = nil
		return
	}
	if s.draft.Path != nil && s.draft.Path.Type() == t {
		return
	}
	switch t {
	case domain.BookingSingle:
		s.draft.Path = SinglePath{}
	case domain.BookingSubscription:
		s.draft.Path = SubscriptionPath{}
	case domain.BookingOrder:
		s.draft.Path = OrderPath{}
	}
}

// SetDateAndTime writes date, time and staff at once so the draft never has a date without a time.
func (s *Store) SetDateAndTime(date time.Time, at types.TimeString, staffID *int64) {
	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	s.draft.Date = &day
	s.draft.Time = &at
	s.draft.StaffID = copyPtr(staffID)
}

// SetSubscriptionDetails puts the draft on the subscription path with the given cadence.
// months is stored as given; range checks belong to the caller.
func (s *Store) SetSubscriptionDetails(freq domain.Frequency, months int) {
	s.draft.Path = SubscriptionPath{Frequency: freq, DurationMonths: months}
}

// AddServiceToOrder adds a service line, or replaces quantity and staff of an existing line
// with the same service id. quantity <= 0 means domain.DefaultOrderQuantity.
func (s *Store) AddServiceToOrder(serviceID int64, quantity int, staffID *int64) {
	if quantity <= 0 {
		quantity = domain.DefaultOrderQuantity
	}

	order, ok := s.draft.Path.(OrderPath)
	if !ok {
		order = OrderPath{}
	}

	item := domain.OrderItem{ServiceID: serviceID, Quantity: quantity, StaffID: copyPtr(staffID)}
	for i := range order.Items {
		if order.Items[i].ServiceID == serviceID {
			order.Items[i] = item
			s.draft.Path = order
			return
		}
	}

	order.Items = append(order.Items, item)
	s.draft.Path = order
}

// RemoveServiceFromOrder drops the line for serviceID. It is a no-op when absent.
func (s *Store) RemoveServiceFromOrder(serviceID int64) {
	order, ok := s.draft.Path.(OrderPath)
	if !ok {
		return
	}

	kept := make([]domain.OrderItem, 0, len(order.Items))
	for _, item := range order.Items {
		if item.ServiceID != serviceID {
			kept = append(kept, item)
		}
	}
	s.draft.Path = OrderPath{Items: kept}
}

// SetGuestDetails stores the terminal-step payload.
func (s *Store) SetGuestDetails(guest domain.Guest) {
	guest.Notes = copyPtr(guest.Notes)
	s.draft.Guest = guest
}

// Reset restores the initial empty draft.
func (s *Store) Reset() {
	s.draft = Draft{}
}
