package models

import (
	"github.com/m04kA/SMC-BookingPortal/internal/domain"
	"github.com/m04kA/SMC-BookingPortal/internal/flow"
)

// Request models

// OrderItemRequest adds a service line to a multi-service order. A zero quantity means one.
type OrderItemRequest struct {
	ServiceID int64  `json:"serviceId"`
	Quantity  int    `json:"quantity,omitempty"`
	StaffID   *int64 `json:"staffId,omitempty"`
}

// Response models

// SubscriptionResponse is the cadence of a subscription draft
type SubscriptionResponse struct {
	Frequency      *string `json:"frequency,omitempty"`
	DurationMonths *int    `json:"durationMonths,omitempty"`
}

// OrderItemResponse is one line of an order draft
type OrderItemResponse struct {
	ServiceID int64  `json:"serviceId"`
	Quantity  int    `json:"quantity"`
	StaffID   *int64 `json:"staffId,omitempty"`
}

// GuestResponse is the contact data entered so far
type GuestResponse struct {
	Email   string  `json:"email,omitempty"`
	Name    string  `json:"name,omitempty"`
	Phone   string  `json:"phone,omitempty"`
	Address string  `json:"address,omitempty"`
	Notes   *string `json:"notes,omitempty"`
}

// DraftResponse is the visitor's booking draft
type DraftResponse struct {
	Postcode     *string               `json:"postcode"`
	ServiceID    *int64                `json:"serviceId"`
	BookingType  *string               `json:"bookingType"`
	Subscription *SubscriptionResponse `json:"subscription,omitempty"`
	OrderItems   []OrderItemResponse   `json:"orderItems,omitempty"`
	Date         *string               `json:"date"` // "2025-03-10"
	Time         *string               `json:"time"` // "09:00"
	StaffID      *int64                `json:"staffId"`
	Guest        *GuestResponse        `json:"guest,omitempty"`
	// Resume is the route of the first step still to fill in
	Resume string `json:"resume"`
}

// StepResponse is returned when a step may render
type StepResponse struct {
	Step  string         `json:"step"`
	Path  string         `json:"path"`
	Next  *string        `json:"next"`
	Draft *DraftResponse `json:"draft"`
}

// OrderResponse is the order after a change
type OrderResponse struct {
	Items []OrderItemResponse `json:"items"`
	Next  *string             `json:"next"`
}

// FromDraft converts a draft snapshot to its response
func FromDraft(d flow.Draft) *DraftResponse {
	resp := &DraftResponse{
		Postcode:  d.Postcode,
		ServiceID: d.ServiceID,
		StaffID:   d.StaffID,
		Resume:    flow.Resume(d).Path(),
	}

	if t := d.BookingType(); t != "" {
		s := string(t)
		resp.BookingType = &s
	}
	if d.Date != nil {
		s := d.Date.Format(domain.DateFormat)
		resp.Date = &s
	}
	if d.Time != nil {
		s := d.Time.String()
		resp.Time = &s
	}

	switch p := d.Path.(type) {
	case flow.SubscriptionPath:
		sub := &SubscriptionResponse{}
		if p.Frequency != "" {
			f := string(p.Frequency)
			sub.Frequency = &f
		}
		if p.DurationMonths != 0 {
			m := p.DurationMonths
			sub.DurationMonths = &m
		}
		resp.Subscription = sub
	case flow.OrderPath:
		resp.OrderItems = FromOrderItems(p.Items)
	}

	if d.Guest != (domain.Guest{}) {
		resp.Guest = &GuestResponse{
			Email:   d.Guest.Email,
			Name:    d.Guest.Name,
			Phone:   d.Guest.Phone,
			Address: d.Guest.Address,
			Notes:   d.Guest.Notes,
		}
	}

	return resp
}

// FromOrderItems converts order lines; an empty order is an empty list, not null
func FromOrderItems(items []domain.OrderItem) []OrderItemResponse {
	out := make([]OrderItemResponse, 0, len(items))
	for _, item := range items {
		out = append(out, OrderItemResponse{ServiceID: item.ServiceID, Quantity: item.Quantity, StaffID: item.StaffID})
	}
	return out
}

// StepPath returns the route of step, nil at the end of the flow
func StepPath(step flow.Step) *string {
	if step == "" {
		return nil
	}
	p := step.Path()
	return &p
}
