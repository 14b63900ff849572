package submit_guest_details

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/m04kA/SMC-BookingPortal/internal/flow"
	"github.com/m04kA/SMC-BookingPortal/pkg/ptr"
)

// Digits with an optional leading +, spaces, dashes and brackets.
var phonePattern = regexp.MustCompile(`^\+?[0-9][0-9 ()\-]*[0-9]$`)

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("ukphone", func(fl validator.FieldLevel) bool {
		return phonePattern.MatchString(fl.Field().String())
	})
	return v
}

// normalize trims every field; blank notes become nil
func normalize(req *Request) {
	req.Email = strings.TrimSpace(req.Email)
	req.Name = strings.TrimSpace(req.Name)
	req.Phone = strings.TrimSpace(req.Phone)
	req.Address = strings.TrimSpace(req.Address)
	if req.Notes != nil {
		notes := strings.TrimSpace(*req.Notes)
		if notes == "" {
			req.Notes = nil
		} else {
			req.Notes = ptr.Ptr(notes)
		}
	}
}

func validateRequest(v *validator.Validate, req *Request) error {
	if req == nil {
		return fmt.Errorf("%w: empty request", ErrInvalidInput)
	}

	err := v.Struct(req)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		return fmt.Errorf("%w: %s", ErrInvalidInput, fieldMessage(fe.Field(), fe.Tag()))
	}
	return fmt.Errorf("%w: %v", ErrInvalidInput, err)
}

func fieldMessage(field, tag string) string {
	name := strings.ToLower(field)
	switch tag {
	case "required":
		return name + " is required"
	case "email":
		return "email is not a valid address"
	case "ukphone", "min":
		return name + " is not a valid phone number"
	case "max":
		return name + " is too long"
	default:
		return name + " is invalid"
	}
}

// buildSummary assumes the draft passed the details guard
func buildSummary(d flow.Draft) Summary {
	s := Summary{
		Postcode:    ptr.Value(d.Postcode),
		BookingType: d.BookingType(),
		ServiceID:   d.ServiceID,
		StaffID:     d.StaffID,
	}
	if d.Date != nil {
		s.Date = *d.Date
	}
	if d.Time != nil {
		s.Time = d.Time.String()
	}
	if sub, ok := d.Subscription(); ok {
		s.Subscription = &Subscription{Frequency: sub.Frequency, DurationMonths: sub.DurationMonths}
	}
	if order, ok := d.Order(); ok {
		s.OrderItems = order.Items
	}
	if d.Guest.IsComplete() {
		guest := d.Guest
		s.Guest = &guest
	}
	return s
}
