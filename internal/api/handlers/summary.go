package handlers

import (
	"github.com/m04kA/SMC-BookingPortal/internal/domain"
	submitGuestDetails "github.com/m04kA/SMC-BookingPortal/internal/usecase/submit_guest_details"
)

// SubscriptionSummary is the cadence of a subscription booking
type SubscriptionSummary struct {
	Frequency      string `json:"frequency"`
	DurationMonths int    `json:"durationMonths"`
}

// OrderItemSummary is one line of an order booking
type OrderItemSummary struct {
	ServiceID int64  `json:"serviceId"`
	Quantity  int    `json:"quantity"`
	StaffID   *int64 `json:"staffId,omitempty"`
}

// GuestSummary is the guest's contact data
type GuestSummary struct {
	Email   string  `json:"email"`
	Name    string  `json:"name"`
	Phone   string  `json:"phone"`
	Address string  `json:"address"`
	Notes   *string `json:"notes,omitempty"`
}

// BookingSummary is the draft as confirmed on the details step
type BookingSummary struct {
	Postcode     string               `json:"postcode"`
	BookingType  string               `json:"bookingType"`
	ServiceID    *int64               `json:"serviceId,omitempty"`
	Subscription *SubscriptionSummary `json:"subscription,omitempty"`
	OrderItems   []OrderItemSummary   `json:"orderItems,omitempty"`
	Date         string               `json:"date"`
	Time         string               `json:"time"`
	StaffID      *int64               `json:"staffId,omitempty"`
	Guest        *GuestSummary        `json:"guest,omitempty"`
}

// FromSummary converts the details step summary
func FromSummary(s *submitGuestDetails.Summary) *BookingSummary {
	out := &BookingSummary{
		Postcode:    s.Postcode,
		BookingType: string(s.BookingType),
		ServiceID:   s.ServiceID,
		Date:        s.Date.Format(domain.DateFormat),
		Time:        s.Time,
		StaffID:     s.StaffID,
	}
	if s.Subscription != nil {
		out.Subscription = &SubscriptionSummary{
			Frequency:      string(s.Subscription.Frequency),
			DurationMonths: s.Subscription.DurationMonths,
		}
	}
	for _, item := range s.OrderItems {
		out.OrderItems = append(out.OrderItems, OrderItemSummary{
			ServiceID: item.ServiceID,
			Quantity:  item.Quantity,
			StaffID:   item.StaffID,
		})
	}
	if s.Guest != nil {
		out.Guest = &GuestSummary{
			Email:   s.Guest.Email,
			Name:    s.Guest.Name,
			Phone:   s.Guest.Phone,
			Address: s.Guest.Address,
			Notes:   s.Guest.Notes,
		}
	}
	return out
}
