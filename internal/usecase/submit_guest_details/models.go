package submit_guest_details

import (
	"time"

	"github.com/m04kA/SMC-BookingPortal/internal/domain"
)

// Request is the contact form of the last step
type Request struct {
	Email   string  `validate:"required,email,max=254"`
	Name    string  `validate:"required,max=120"`
	Phone   string  `validate:"required,min=7,max=20,ukphone"`
	Address string  `validate:"required,max=300"`
	Notes   *string `validate:"omitempty,max=500"`
}

// Subscription is the cadence of a subscription booking
type Subscription struct {
	Frequency      domain.Frequency
	DurationMonths int
}

// Summary is the draft as shown before the guest confirms
type Summary struct {
	Postcode     string
	BookingType  domain.BookingType
	ServiceID    *int64
	Subscription *Subscription
	OrderItems   []domain.OrderItem
	Date         time.Time
	Time         string
	StaffID      *int64
	Guest        *domain.Guest
}

// SubmitResponse identifies the handoff created for the booking
type SubmitResponse struct {
	Reference string
	Status    domain.HandoffStatus
	Summary   Summary
	Next      string
}
