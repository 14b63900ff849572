package choose_subscription

import (
	"github.com/m04kA/SMC-BookingPortal/internal/domain"
	"github.com/m04kA/SMC-BookingPortal/internal/flow"
)

// OptionsResponse lists the choices of the subscription step
type OptionsResponse struct {
	ServiceID   int64
	Frequencies []domain.Frequency
	Durations   []int // months
	Current     *Selection
}

// Selection is a chosen cadence
type Selection struct {
	Frequency domain.Frequency
	Months    int
}

// Request is the visitor's choice
type Request struct {
	Frequency domain.Frequency
	Months    int
}

// Response is the step to continue with; the start date is picked there
type Response struct {
	Selection Selection
	Next      flow.Step
}
