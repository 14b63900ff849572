package handlers

import (
	"github.com/m04kA/SMC-BookingPortal/internal/domain"
	"github.com/m04kA/SMC-BookingPortal/internal/flow"
)

// ServiceResponse is a bookable service as shown on the services step
type ServiceResponse struct {
	ID                  int64   `json:"id"`
	Name                string  `json:"name"`
	DurationMinutes     int     `json:"durationMinutes"`
	Price               float64 `json:"price"`
	Currency            *string `json:"currency,omitempty"`
	CategoryName        *string `json:"categoryName,omitempty"`
	AvailableStaffCount *int    `json:"availableStaffCount,omitempty"`
}

// FromDomainService converts a service
func FromDomainService(s domain.Service) ServiceResponse {
	return ServiceResponse{
		ID:                  s.ID,
		Name:                s.Name,
		DurationMinutes:     s.DurationMinutes,
		Price:               s.Price,
		Currency:            s.Currency,
		CategoryName:        s.CategoryName,
		AvailableStaffCount: s.AvailableStaffCount,
	}
}

// FromDomainServices converts a list; nil becomes an empty list
func FromDomainServices(services []domain.Service) []ServiceResponse {
	out := make([]ServiceResponse, 0, len(services))
	for _, s := range services {
		out = append(out, FromDomainService(s))
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
