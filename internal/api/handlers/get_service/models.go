package get_service

import (
	"github.com/m04kA/SMC-BookingPortal/internal/api/handlers"
	selectService "github.com/m04kA/SMC-BookingPortal/internal/usecase/select_service"
)

// ActionResponse is one way to book the service
type ActionResponse struct {
	Mode string  `json:"mode"`
	Next *string `json:"next"`
}

// ServiceDetailResponse HTTP response model
type ServiceDetailResponse struct {
	Service handlers.ServiceResponse `json:"service"`
	Actions []ActionResponse         `json:"actions"`
}

func FromUseCaseResponse(resp *selectService.DetailResponse) *ServiceDetailResponse {
	actions := make([]ActionResponse, 0, len(resp.Actions))
	for _, a := range resp.Actions {
		actions = append(actions, ActionResponse{Mode: string(a.Mode), Next: handlers.StepPath(a.Next)})
	}
	return &ServiceDetailResponse{
		Service: handlers.FromDomainService(resp.Service),
		Actions: actions,
	}
}
