package choose_service

import (
	"github.com/m04kA/SMC-BookingPortal/internal/api/handlers"
	"github.com/m04kA/SMC-BookingPortal/internal/domain"
	selectService "github.com/m04kA/SMC-BookingPortal/internal/usecase/select_service"
)

// ChooseRequest HTTP request model
type ChooseRequest struct {
	Mode string `json:"mode"` // "single" or "subscription"
}

// ChooseResponse HTTP response model
type ChooseResponse struct {
	ServiceID int64   `json:"serviceId"`
	Mode      string  `json:"mode"`
	Next      *string `json:"next"`
}

func (r *ChooseRequest) ToUseCaseRequest(serviceID int64) *selectService.ChooseRequest {
	return &selectService.ChooseRequest{
		ServiceID: serviceID,
		Mode:      domain.BookingType(r.Mode),
	}
}

func FromUseCaseResponse(resp *selectService.ChooseResponse) *ChooseResponse {
	return &ChooseResponse{
		ServiceID: resp.ServiceID,
		Mode:      string(resp.Mode),
		Next:      handlers.StepPath(resp.Next),
	}
}
