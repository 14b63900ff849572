package opsapi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/m04kA/SMC-BookingPortal/internal/domain"
	"github.com/m04kA/SMC-BookingPortal/pkg/types"
)

// SlotsRequest is the availability query for one day.
type SlotsRequest struct {
	Postcode  string
	ServiceID int64
	Date      time.Time
	StaffID   *int64
}

// AppointmentsRequest is a calendar date-range query. To is inclusive.
type AppointmentsRequest struct {
	Scope   domain.CalendarScope
	From    time.Time
	To      time.Time
	StaffID *int64
}

type postcodeRequest struct {
	Postcode string `json:"postcode"`
}

// envelope covers every response wrapper the API is known to use.
type envelope struct {
	Success *bool           `json:"success"`
	Data    json.RawMessage `json:"data"`
	Results json.RawMessage `json:"results"`
	Error   json.RawMessage `json:"error"`
	Message string          `json:"message"`
	Detail  string          `json:"detail"`
}

type errorObject struct {
	Message string `json:"message"`
	Detail  string `json:"detail"`
}

type serviceDTO struct {
	ID                  int64     `json:"id"`
	Name                string    `json:"name"`
	Duration            int       `json:"duration"`
	Price               flexFloat `json:"price"`
	Currency            *string   `json:"currency"`
	CategoryName        *string   `json:"category_name"`
	AvailableStaffCount *int      `json:"available_staff_count"`
}

func (s serviceDTO) toDomain() domain.Service {
	return domain.Service{
		ID:                  s.ID,
		Name:                s.Name,
		DurationMinutes:     s.Duration,
		Price:               float64(s.Price),
		Currency:            s.Currency,
		CategoryName:        s.CategoryName,
		AvailableStaffCount: s.AvailableStaffCount,
	}
}

type slotsDTO struct {
	Slots []slotDTO `json:"slots"`
}

type slotDTO struct {
	Time      string  `json:"time"`
	Available bool    `json:"available"`
	StaffIDs  []int64 `json:"staff_ids"`
	StaffID   *int64  `json:"staff_id"`
	Reason    string  `json:"reason"`
}

func (s slotDTO) toDomain() (domain.Slot, error) {
	ts, err := types.NewTimeStringFromString(s.Time)
	if err != nil {
		return domain.Slot{}, err
	}
	staff := s.StaffIDs
	if len(staff) == 0 && s.StaffID != nil {
		staff = []int64{*s.StaffID}
	}
	return domain.Slot{Time: ts, Available: s.Available, StaffIDs: staff, Reason: s.Reason}, nil
}

type appointmentDTO struct {
	ID              int64               `json:"id"`
	StartTime       string              `json:"start_time"`
	EndTime         string              `json:"end_time"`
	Status          string              `json:"status"`
	Service         flexRef             `json:"service"`
	Staff           flexRef             `json:"staff"`
	CustomerBooking *customerBookingDTO `json:"customer_booking"`
}

type customerBookingDTO struct {
	ID           int64  `json:"id"`
	CustomerName string `json:"customer_name"`
}

func (a appointmentDTO) toDomain(loc *time.Location) (domain.Appointment, error) {
	start, err := parseTimestamp(a.StartTime, loc)
	if err != nil {
		return domain.Appointment{}, fmt.Errorf("appointment %d start_time: %w", a.ID, err)
	}

	end := start
	if a.EndTime != "" {
		end, err = parseTimestamp(a.EndTime, loc)
		if err != nil {
			return domain.Appointment{}, fmt.Errorf("appointment %d end_time: %w", a.ID, err)
		}
	}

	out := domain.Appointment{
		ID:        a.ID,
		StartTime: start,
		EndTime:   end,
		Status:    domain.AppointmentStatus(a.Status),
		Service:   domain.Ref(a.Service),
		Staff:     domain.Ref(a.Staff),
	}
	if a.CustomerBooking != nil {
		out.CustomerBooking = &domain.CustomerBooking{
			ID:           a.CustomerBooking.ID,
			CustomerName: a.CustomerBooking.CustomerName,
		}
	}
	return out, nil
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
}

// parseTimestamp accepts RFC 3339 and zone-less timestamps; the latter are read in loc.
func parseTimestamp(s string, loc *time.Location) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t.In(loc), nil
	}
	for _, layout := range timestampLayouts[1:] {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unsupported timestamp %q", s)
}

// flexFloat decodes a JSON number or a numeric string ("45.00").
type flexFloat float64

func (f *flexFloat) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		if s == "" {
			return nil
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return fmt.Errorf("price %q: %w", s, err)
		}
		*f = flexFloat(v)
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*f = flexFloat(v)
	return nil
}

// flexRef decodes an embedded record given as {id, name}, a bare id, or a bare name.
type flexRef struct {
	ID   int64
	Name string
}

func (r *flexRef) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}

	switch data[0] {
	case '{':
		var obj struct {
			ID       int64  `json:"id"`
			Name     string `json:"name"`
			FullName string `json:"full_name"`
		}
		if err := json.Unmarshal(data, &obj); err != nil {
			return err
		}
		r.ID = obj.ID
		r.Name = obj.Name
		if r.Name == "" {
			r.Name = obj.FullName
		}
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		if id, err := strconv.ParseInt(s, 10, 64); err == nil {
			r.ID = id
		} else {
			r.Name = s
		}
	default:
		var id int64
		if err := json.Unmarshal(data, &id); err != nil {
			return err
		}
		r.ID = id
	}
	return nil
}
