package choose_subscription

import (
	"github.com/m04kA/SMC-BookingPortal/internal/api/handlers"
	"github.com/m04kA/SMC-BookingPortal/internal/domain"
	chooseSubscription "github.com/m04kA/SMC-BookingPortal/internal/usecase/choose_subscription"
)

// SubscriptionRequest HTTP request model
type SubscriptionRequest struct {
	Frequency string `json:"frequency"` // weekly, biweekly, monthly
	Months    int    `json:"months"`
}

// SubscriptionResponse HTTP response model
type SubscriptionResponse struct {
	Frequency string  `json:"frequency"`
	Months    int     `json:"months"`
	Next      *string `json:"next"`
}

func (r *SubscriptionRequest) ToUseCaseRequest() *chooseSubscription.Request {
	return &chooseSubscription.Request{
		Frequency: domain.Frequency(r.Frequency),
		Months:    r.Months,
	}
}

func FromUseCaseResponse(resp *chooseSubscription.Response) *SubscriptionResponse {
	return &SubscriptionResponse{
		Frequency: string(resp.Selection.Frequency),
		Months:    resp.Selection.Months,
		Next:      handlers.StepPath(resp.Next),
	}
}
