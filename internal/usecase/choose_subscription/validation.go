package choose_subscription

import (
	"fmt"

	"github.com/m04kA/SMC-BookingPortal/internal/domain"
)

func validateRequest(req *Request) error {
	if !req.Frequency.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidFrequency, req.Frequency)
	}

	if req.Months < domain.MinSubscriptionMonths || req.Months > domain.MaxSubscriptionMonths {
		return fmt.Errorf("%w: %d months, expected %d..%d",
			ErrInvalidDuration, req.Months, domain.MinSubscriptionMonths, domain.MaxSubscriptionMonths)
	}

	return nil
}

// durations returns the month buttons of the step
func durations() []int {
	out := make([]int, 0, domain.MaxSubscriptionMonths-domain.MinSubscriptionMonths+1)
	for m := domain.MinSubscriptionMonths; m <= domain.MaxSubscriptionMonths; m++ {
		out = append(out, m)
	}
	return out
}
