package select_service

import (
	"fmt"

	"github.com/m04kA/SMC-BookingPortal/internal/domain"
)

// validateChooseRequest checks the request before any I/O
func validateChooseRequest(req *ChooseRequest) error {
	if req.ServiceID <= 0 {
		return fmt.Errorf("%w: serviceID must be positive", ErrServiceNotFound)
	}

	switch req.Mode {
	case domain.BookingSingle, domain.BookingSubscription:
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrInvalidMode, req.Mode)
	}
}
