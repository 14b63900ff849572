package list_services

import (
	"github.com/m04kA/SMC-BookingPortal/internal/api/handlers"
	selectService "github.com/m04kA/SMC-BookingPortal/internal/usecase/select_service"
)

// ServicesResponse HTTP response model
type ServicesResponse struct {
	Postcode   string                     `json:"postcode"`
	Services   []handlers.ServiceResponse `json:"services"`
	SelectedID *int64                     `json:"selectedId"`
}

func FromUseCaseResponse(resp *selectService.ListResponse) *ServicesResponse {
	return &ServicesResponse{
		Postcode:   resp.Postcode,
		Services:   handlers.FromDomainServices(resp.Services),
		SelectedID: resp.Selected,
	}
}
