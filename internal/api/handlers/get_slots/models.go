package get_slots

import (
	"errors"
	"net/url"
	"strconv"
	"time"

	"github.com/m04kA/SMC-BookingPortal/internal/domain"
	pickSlot "github.com/m04kA/SMC-BookingPortal/internal/usecase/pick_slot"
)

var (
	errMissingDate = errors.New("date is required")
	errBadStaffID  = errors.New("invalid staffId")
)

// SlotResponse is one bookable time
type SlotResponse struct {
	Time      string  `json:"time"`
	Available bool    `json:"available"`
	StaffIDs  []int64 `json:"staffIds"`
	Reason    string  `json:"reason,omitempty"`
}

// SlotsResponse HTTP response model. When superseded, date is the day that won.
type SlotsResponse struct {
	Date       *string        `json:"date"`
	StaffID    *int64         `json:"staffId"`
	Slots      []SlotResponse `json:"slots"`
	Loading    bool           `json:"loading"`
	Error      string         `json:"error,omitempty"`
	Superseded bool           `json:"superseded"`
}

// ParseLoadRequest reads ?date=YYYY-MM-DD[&staffId=N]
func ParseLoadRequest(q url.Values) (*pickSlot.LoadRequest, error) {
	raw := q.Get("date")
	if raw == "" {
		return nil, errMissingDate
	}
	date, err := time.Parse(domain.DateFormat, raw)
	if err != nil {
		return nil, err
	}

	req := &pickSlot.LoadRequest{Date: date}
	if rawStaff := q.Get("staffId"); rawStaff != "" {
		staffID, err := strconv.ParseInt(rawStaff, 10, 64)
		if err != nil {
			return nil, errBadStaffID
		}
		req.StaffID = &staffID
	}
	return req, nil
}

func FromUseCaseResponse(resp *pickSlot.SlotsResponse) *SlotsResponse {
	out := &SlotsResponse{
		StaffID:    resp.StaffID,
		Slots:      make([]SlotResponse, 0, len(resp.Slots)),
		Loading:    resp.Loading,
		Error:      resp.Error,
		Superseded: resp.Superseded,
	}
	if !resp.Date.IsZero() {
		date := resp.Date.Format(domain.DateFormat)
		out.Date = &date
	}
	for _, s := range resp.Slots {
		staff := s.StaffIDs
		if staff == nil {
			staff = []int64{}
		}
		out.Slots = append(out.Slots, SlotResponse{
			Time:      s.Time.String(),
			Available: s.Available,
			StaffIDs:  staff,
			Reason:    s.Reason,
		})
	}
	return out
}
