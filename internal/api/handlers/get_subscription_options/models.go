package get_subscription_options

import (
	chooseSubscription "github.com/m04kA/SMC-BookingPortal/internal/usecase/choose_subscription"
)

// SelectionResponse is the cadence already chosen
type SelectionResponse struct {
	Frequency string `json:"frequency"`
	Months    int    `json:"months"`
}

// OptionsResponse HTTP response model
type OptionsResponse struct {
	ServiceID   int64              `json:"serviceId"`
	Frequencies []string           `json:"frequencies"`
	Durations   []int              `json:"durations"`
	Current     *SelectionResponse `json:"current"`
}

func FromUseCaseResponse(resp *chooseSubscription.OptionsResponse) *OptionsResponse {
	freqs := make([]string, 0, len(resp.Frequencies))
	for _, f := range resp.Frequencies {
		freqs = append(freqs, string(f))
	}

	out := &OptionsResponse{
		ServiceID:   resp.ServiceID,
		Frequencies: freqs,
		Durations:   resp.Durations,
	}
	if resp.Current != nil {
		out.Current = &SelectionResponse{Frequency: string(resp.Current.Frequency), Months: resp.Current.Months}
	}
	return out
}
