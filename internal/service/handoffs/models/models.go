package models

import (
	"time"

	"github.com/m04kA/SMC-BookingPortal/internal/domain"
)

// DefaultListLimit is used when the checkout collaborator does not ask for a page size
const DefaultListLimit = 50

// MaxListLimit caps one page of pending handoffs
const MaxListLimit = 500

// Request models

// ListPendingRequest asks for the oldest pending handoffs
type ListPendingRequest struct {
	Limit uint64 `json:"limit,omitempty"`
}

// Response models

// OrderItemResponse is one line of a multi-service order
type OrderItemResponse struct {
	ServiceID int64  `json:"serviceId"`
	Quantity  int    `json:"quantity"`
	StaffID   *int64 `json:"staffId,omitempty"`
}

// GuestResponse is the contact data of the guest
type GuestResponse struct {
	Email   string  `json:"email"`
	Name    string  `json:"name"`
	Phone   string  `json:"phone"`
	Address string  `json:"address"`
	Notes   *string `json:"notes,omitempty"`
}

// HandoffResponse is a completed booking as the checkout collaborator sees it
type HandoffResponse struct {
	Reference      string              `json:"reference"`
	BookingType    string              `json:"bookingType"`
	Postcode       string              `json:"postcode"`
	ServiceID      *int64              `json:"serviceId,omitempty"`
	Frequency      *string             `json:"frequency,omitempty"`
	DurationMonths *int                `json:"durationMonths,omitempty"`
	OrderItems     []OrderItemResponse `json:"orderItems"`
	BookingDate    string              `json:"bookingDate"` // "2025-03-10"
	StartTime      string              `json:"startTime"`   // "09:00"
	StaffID        *int64              `json:"staffId,omitempty"`
	Guest          GuestResponse       `json:"guest"`
	Status         string              `json:"status"`
	CreatedAt      string              `json:"createdAt"`
}

// HandoffListResponse is a page of handoffs
type HandoffListResponse struct {
	Handoffs []HandoffResponse `json:"handoffs"`
	Total    int               `json:"total"`
}

// FromDomainHandoff converts a domain handoff to its response
func FromDomainHandoff(h *domain.CheckoutHandoff) *HandoffResponse {
	resp := &HandoffResponse{
		Reference:      h.Reference,
		BookingType:    string(h.BookingType),
		Postcode:       h.Postcode,
		ServiceID:      h.ServiceID,
		DurationMonths: h.DurationMonths,
		OrderItems:     make([]OrderItemResponse, 0, len(h.OrderItems)),
		BookingDate:    h.BookingDate.Format(domain.DateFormat),
		StartTime:      h.StartTime.String(),
		StaffID:        h.StaffID,
		Guest: GuestResponse{
			Email:   h.Guest.Email,
			Name:    h.Guest.Name,
			Phone:   h.Guest.Phone,
			Address: h.Guest.Address,
			Notes:   h.Guest.Notes,
		},
		Status:    string(h.Status),
		CreatedAt: h.CreatedAt.UTC().Format(time.RFC3339),
	}

	if h.Frequency != nil {
		freq := string(*h.Frequency)
		resp.Frequency = &freq
	}
	for _, item := range h.OrderItems {
		resp.OrderItems = append(resp.OrderItems, OrderItemResponse{
			ServiceID: item.ServiceID,
			Quantity:  item.Quantity,
			StaffID:   item.StaffID,
		})
	}

	return resp
}

// FromDomainHandoffs converts a list of handoffs
func FromDomainHandoffs(handoffs []*domain.CheckoutHandoff) *HandoffListResponse {
	list := make([]HandoffResponse, 0, len(handoffs))
	for _, h := range handoffs {
		list = append(list, *FromDomainHandoff(h))
	}
	return &HandoffListResponse{Handoffs: list, Total: len(list)}
}
