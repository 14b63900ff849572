package flow

import (
	"time"

	"github.com/m04kA/SMC-BookingPortal/internal/domain"
	"github.com/m04kA/SMC-BookingPortal/pkg/types"
)

// Path is the booking-type variant of a draft: SinglePath, SubscriptionPath or OrderPath.
// A nil Path means no booking type has been chosen yet.
type Path interface {
	Type() domain.BookingType
	clone() Path
}

// SinglePath is a one-time booking of the selected service.
type SinglePath struct{}

func (SinglePath) Type() domain.BookingType { return domain.BookingSingle }
func (p SinglePath) clone() Path            { return p }

// SubscriptionPath is a recurring booking. Zero values mean the details have not been chosen.
type SubscriptionPath struct {
	Frequency      domain.Frequency
	DurationMonths int
}

func (SubscriptionPath) Type() domain.BookingType { return domain.BookingSubscription }
func (p SubscriptionPath) clone() Path            { return p }

// HasDetails reports whether both subscription fields were set.
func (p SubscriptionPath) HasDetails() bool {
	return p.Frequency != "" && p.DurationMonths != 0
}

// OrderPath is a multi-service order.
type OrderPath struct {
	Items []domain.OrderItem
}

func (OrderPath) Type() domain.BookingType { return domain.BookingOrder }

func (p OrderPath) clone() Path {
	items := make([]domain.OrderItem, len(p.Items))
	for i, item := range p.Items {
		items[i] = item
		if item.StaffID != nil {
			staff := *item.StaffID
			items[i].StaffID = &staff
		}
	}
	return OrderPath{Items: items}
}

// Draft is the in-progress guest booking. The zero value is the initial state.
type Draft struct {
	Postcode  *string
	ServiceID *int64
	Path      Path

	// Chosen slot; written together by SetDateAndTime.
	Date    *time.Time
	Time    *types.TimeString
	StaffID *int64

	Guest domain.Guest
}

// BookingType returns the path discriminant, "" when no path is chosen.
func (d Draft) BookingType() domain.BookingType {
	if d.Path == nil {
		return ""
	}
	return d.Path.Type()
}

// Subscription returns the subscription variant, if that is the current path.
func (d Draft) Subscription() (SubscriptionPath, bool) {
	p, ok := d.Path.(SubscriptionPath)
	return p, ok
}

// Order returns the order variant, if that is the current path.
func (d Draft) Order() (OrderPath, bool) {
	p, ok := d.Path.(OrderPath)
	return p, ok
}

// HasSlot reports whether date and time were chosen.
func (d Draft) HasSlot() bool {
	return d.Date != nil && d.Time != nil
}

// IsEmpty reports whether the draft is in its initial state.
func (d Draft) IsEmpty() bool {
	return d.Postcode == nil && d.ServiceID == nil && d.Path == nil &&
		d.Date == nil && d.Time == nil && d.StaffID == nil &&
		d.Guest == (domain.Guest{})
}

// clone deep-copies every pointer and slice so callers cannot mutate the store through a snapshot.
func (d Draft) clone() Draft {
	out := Draft{
		Postcode:  copyPtr(d.Postcode),
		ServiceID: copyPtr(d.ServiceID),
		Date:      copyPtr(d.Date),
		Time:      copyPtr(d.Time),
		StaffID:   copyPtr(d.StaffID),
		Guest:     d.Guest,
	}
	out.Guest.Notes = copyPtr(d.Guest.Notes)
	if d.Path != nil {
		out.Path = d.Path.clone()
	}
	return out
}

func copyPtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
