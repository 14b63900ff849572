package submit_postcode

import (
	"github.com/m04kA/SMC-BookingPortal/internal/domain"
	"github.com/m04kA/SMC-BookingPortal/internal/flow"
)

// Request is the postcode as typed by the visitor
type Request struct {
	Postcode string
}

// Response is the accepted postcode and the step to continue with
type Response struct {
	Postcode string           // normalized
	Services []domain.Service // services listed with the confirmation, may be empty
	Next     flow.Step
}
