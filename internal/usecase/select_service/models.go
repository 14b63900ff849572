package select_service

import (
	"github.com/m04kA/SMC-BookingPortal/internal/domain"
	"github.com/m04kA/SMC-BookingPortal/internal/flow"
)

// ListResponse is the services step
type ListResponse struct {
	Postcode string
	Services []domain.Service
	Selected *int64
}

// Action is one terminal choice on the service detail view
type Action struct {
	Mode domain.BookingType
	Next flow.Step
}

// DetailResponse is one service with the actions it offers
type DetailResponse struct {
	Service domain.Service
	Actions []Action
}

// ChooseRequest books the service one-time (single) or as a subscription
type ChooseRequest struct {
	ServiceID int64
	Mode      domain.BookingType
}

// ChooseResponse is the step to continue with
type ChooseResponse struct {
	ServiceID int64
	Mode      domain.BookingType
	Next      flow.Step
}
