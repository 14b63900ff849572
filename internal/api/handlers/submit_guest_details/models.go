package submit_guest_details

import (
	"github.com/m04kA/SMC-BookingPortal/internal/api/handlers"
	submitGuestDetails "github.com/m04kA/SMC-BookingPortal/internal/usecase/submit_guest_details"
)

// GuestDetailsRequest HTTP request model
type GuestDetailsRequest struct {
	Email   string  `json:"email"`
	Name    string  `json:"name"`
	Phone   string  `json:"phone"`
	Address string  `json:"address"`
	Notes   *string `json:"notes,omitempty"`
}

// BookingCompletedResponse HTTP response model
type BookingCompletedResponse struct {
	Reference string                   `json:"reference"`
	Status    string                   `json:"status"`
	Booking   *handlers.BookingSummary `json:"booking"`
	Next      string                   `json:"next"`
}

func (r *GuestDetailsRequest) ToUseCaseRequest() *submitGuestDetails.Request {
	return &submitGuestDetails.Request{
		Email:   r.Email,
		Name:    r.Name,
		Phone:   r.Phone,
		Address: r.Address,
		Notes:   r.Notes,
	}
}

func FromUseCaseResponse(resp *submitGuestDetails.SubmitResponse) *BookingCompletedResponse {
	return &BookingCompletedResponse{
		Reference: resp.Reference,
		Status:    string(resp.Status),
		Booking:   handlers.FromSummary(&resp.Summary),
		Next:      resp.Next,
	}
}
