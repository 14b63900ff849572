package select_slot

import (
	"time"

	"github.com/m04kA/SMC-BookingPortal/internal/api/handlers"
	"github.com/m04kA/SMC-BookingPortal/internal/domain"
	pickSlot "github.com/m04kA/SMC-BookingPortal/internal/usecase/pick_slot"
	"github.com/m04kA/SMC-BookingPortal/pkg/types"
)

// SelectRequest HTTP request model
type SelectRequest struct {
	Date    string `json:"date"` // "2025-03-10"
	Time    string `json:"time"` // "09:00"
	StaffID *int64 `json:"staffId,omitempty"`
}

// SelectResponse HTTP response model
type SelectResponse struct {
	Date    string  `json:"date"`
	Time    string  `json:"time"`
	StaffID *int64  `json:"staffId"`
	Next    *string `json:"next"`
}

func (r *SelectRequest) ToUseCaseRequest() (*pickSlot.SelectRequest, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	at, err := types.NewTimeStringFromString(r.Time)
	if err != nil {
		return nil, err
	}

	return &pickSlot.SelectRequest{Date: date, Time: at, StaffID: r.StaffID}, nil
}

func FromUseCaseResponse(resp *pickSlot.SelectResponse) *SelectResponse {
	return &SelectResponse{
		Date:    resp.Date.Format(domain.DateFormat),
		Time:    resp.Time.String(),
		StaffID: resp.StaffID,
		Next:    handlers.StepPath(resp.Next),
	}
}
