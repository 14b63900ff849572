package domain

import (
	"time"

	"github.com/m04kA/SMC-BookingPortal/pkg/types"
)

// BookingType is the path discriminant of a booking draft
type BookingType string

const (
	BookingSingle       BookingType = "single"
	BookingSubscription BookingType = "subscription"
	BookingOrder        BookingType = "order"
)

// IsValid reports whether t is one of the known booking types.
func (t BookingType) IsValid() bool {
	switch t {
	case BookingSingle, BookingSubscription, BookingOrder:
		return true
	default:
		return false
	}
}

// Frequency is the recurrence cadence of a subscription
type Frequency string

const (
	FrequencyWeekly   Frequency = "weekly"
	FrequencyBiweekly Frequency = "biweekly"
	FrequencyMonthly  Frequency = "monthly"
)

// Frequencies lists the cadences in display order.
var Frequencies = []Frequency{FrequencyWeekly, FrequencyBiweekly, FrequencyMonthly}

// IsValid reports whether f is one of the known cadences.
func (f Frequency) IsValid() bool {
	for _, known := range Frequencies {
		if f == known {
			return true
		}
	}
	return false
}

// OrderItem is one service line of a multi-service order
type OrderItem struct {
	ServiceID int64  `json:"service_id"`
	Quantity  int    `json:"quantity"`
	StaffID   *int64 `json:"staff_id,omitempty"`
}

// Guest holds the contact details collected at the last step; no account is needed.
type Guest struct {
	Email   string
	Name    string
	Phone   string
	Address string
	Notes   *string
}

// IsComplete reports whether every required field is filled.
func (g *Guest) IsComplete() bool {
	return g.Email != "" && g.Name != "" && g.Phone != "" && g.Address != ""
}

// HandoffStatus is the state of a completed booking waiting for checkout
type HandoffStatus string

const (
	HandoffPending HandoffStatus = "pending"
	HandoffClaimed HandoffStatus = "claimed"
)

// CheckoutHandoff is a completed booking draft handed to the guest checkout / payment collaborator
type CheckoutHandoff struct {
	ID          int64
	Reference   string // public reference shown to the guest
	SessionID   string
	BookingType BookingType
	Postcode    string

	ServiceID      *int64
	Frequency      *Frequency
	DurationMonths *int
	OrderItems     []OrderItem

	BookingDate time.Time
	StartTime   types.TimeString
	StaffID     *int64

	Guest Guest

	Status    HandoffStatus
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsPending returns true if the payment collaborator has not picked the handoff up yet
func (h *CheckoutHandoff) IsPending() bool {
	return h.Status == HandoffPending
}
