package submit_postcode

import (
	"github.com/m04kA/SMC-BookingPortal/internal/api/handlers"
	submitPostcode "github.com/m04kA/SMC-BookingPortal/internal/usecase/submit_postcode"
)

// PostcodeRequest HTTP request model
type PostcodeRequest struct {
	Postcode string `json:"postcode"`
}

// PostcodeResponse HTTP response model
type PostcodeResponse struct {
	Postcode string                     `json:"postcode"`
	Services []handlers.ServiceResponse `json:"services"`
	Next     *string                    `json:"next"`
}

func (r *PostcodeRequest) ToUseCaseRequest() *submitPostcode.Request {
	return &submitPostcode.Request{Postcode: r.Postcode}
}

func FromUseCaseResponse(resp *submitPostcode.Response) *PostcodeResponse {
	return &PostcodeResponse{
		Postcode: resp.Postcode,
		Services: handlers.FromDomainServices(resp.Services),
		Next:     handlers.StepPath(resp.Next),
	}
}
