package flow

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/m04kA/SMC-BookingPortal/internal/domain"
	"github.com/m04kA/SMC-BookingPortal/pkg/types"
)

// draftJSON is the wire form of a Draft: the path variant is flattened behind booking_type.
type draftJSON struct {
	Postcode       *string             `json:"postcode"`
	ServiceID      *int64              `json:"selected_service"`
	BookingType    *domain.BookingType `json:"booking_type"`
	Frequency      *domain.Frequency   `json:"subscription_frequency"`
	DurationMonths *int                `json:"subscription_duration"`
	OrderServices  []domain.OrderItem  `json:"order_services"`
	Date           *string             `json:"selected_date"`
	Time           *types.TimeString   `json:"selected_time"`
	StaffID        *int64              `json:"selected_staff"`
	GuestEmail     string              `json:"guest_email"`
	GuestName      string              `json:"guest_name"`
	GuestPhone     string              `json:"guest_phone"`
	Address        string              `json:"address"`
	Notes          *string             `json:"notes"`
}

func (d Draft) MarshalJSON() ([]byte, error) {
	out := draftJSON{
		Postcode:      d.Postcode,
		ServiceID:     d.ServiceID,
		OrderServices: []domain.OrderItem{},
		Time:          d.Time,
		StaffID:       d.StaffID,
		GuestEmail:    d.Guest.Email,
		GuestName:     d.Guest.Name,
		GuestPhone:    d.Guest.Phone,
		Address:       d.Guest.Address,
		Notes:         d.Guest.Notes,
	}

	if d.Path != nil {
		t := d.Path.Type()
		out.BookingType = &t
	}
	switch p := d.Path.(type) {
	case SubscriptionPath:
		if p.Frequency != "" {
			out.Frequency = &p.Frequency
		}
		if p.DurationMonths != 0 {
			out.DurationMonths = &p.DurationMonths
		}
	case OrderPath:
		out.OrderServices = append(out.OrderServices, p.Items...)
	}

	if d.Date != nil {
		date := d.Date.Format(domain.DateFormat)
		out.Date = &date
	}

	return json.Marshal(out)
}

func (d *Draft) UnmarshalJSON(data []byte) error {
	var in draftJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}

	*d = Draft{
		Postcode:  in.Postcode,
		ServiceID: in.ServiceID,
		Time:      in.Time,
		StaffID:   in.StaffID,
		Guest: domain.Guest{
			Email:   in.GuestEmail,
			Name:    in.GuestName,
			Phone:   in.GuestPhone,
			Address: in.Address,
			Notes:   in.Notes,
		},
	}

	if in.BookingType != nil {
		switch *in.BookingType {
		case domain.BookingSingle:
			d.Path = SinglePath{}
		case domain.BookingSubscription:
			sub := SubscriptionPath{}
			if in.Frequency != nil {
				sub.Frequency = *in.Frequency
			}
			if in.DurationMonths != nil {
				sub.DurationMonths = *in.DurationMonths
			}
			d.Path = sub
		case domain.BookingOrder:
			d.Path = OrderPath{Items: in.OrderServices}
		default:
			return fmt.Errorf("flow: unknown booking type %q", *in.BookingType)
		}
	}

	if in.Date != nil {
		date, err := time.Parse(domain.DateFormat, *in.Date)
		if err != nil {
			return fmt.Errorf("flow: invalid selected_date: %w", err)
		}
		d.Date = &date
	}

	return nil
}
