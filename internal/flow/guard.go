package flow

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-BookingPortal/internal/domain"
)

// Step is one screen of the guest booking flow.
type Step string

const (
	StepPostcode     Step = "postcode"
	StepServices     Step = "services"
	StepSubscription Step = "subscription"
	StepDateTime     Step = "datetime"
	StepDetails      Step = "details"
)

// ErrRedirect matches every *RedirectError.
var ErrRedirect = errors.New("flow: step prerequisites not met")

// RedirectError tells the caller to send the visitor to To instead of Requested.
type RedirectError struct {
	Requested Step
	To        Step
}

func (e *RedirectError) Error() string {
	return fmt.Sprintf("flow: cannot enter %s, redirect to %s", e.Requested, e.To)
}

func (e *RedirectError) Unwrap() error {
	return ErrRedirect
}

// Steps lists every step in forward order.
var Steps = []Step{StepPostcode, StepServices, StepSubscription, StepDateTime, StepDetails}

// ParseStep maps a route segment to a Step.
func ParseStep(s string) (Step, error) {
	for _, step := range Steps {
		if string(step) == s {
			return step, nil
		}
	}
	return "", fmt.Errorf("flow: unknown step %q", s)
}

// Path returns the front-end route of the step.
func (s Step) Path() string {
	return "/booking/" + string(s)
}

// Sequence returns the steps the draft's path goes through. The subscription step
// only belongs to the subscription path.
func Sequence(d Draft) []Step {
	if d.BookingType() == domain.BookingSubscription {
		return []Step{StepPostcode, StepServices, StepSubscription, StepDateTime, StepDetails}
	}
	return []Step{StepPostcode, StepServices, StepDateTime, StepDetails}
}

// Completed reports whether the fields written by step are all present in d.
func Completed(step Step, d Draft) bool {
	switch step {
	case StepPostcode:
		return d.Postcode != nil
	case StepServices:
		switch p := d.Path.(type) {
		case nil:
			return false
		case OrderPath:
			return len(p.Items) > 0
		default:
			return d.ServiceID != nil
		}
	case StepSubscription:
		sub, ok := d.Subscription()
		return ok && sub.HasDetails()
	case StepDateTime:
		return d.HasSlot()
	case StepDetails:
		return d.Guest.IsComplete()
	default:
		return false
	}
}

// CanEnter decides whether step may render for d. When it may not, it returns the
// earliest unsatisfied step to redirect to. A step outside the draft's path (the
// subscription step on a single or order booking) redirects to the services step,
// where the booking type is chosen.
func CanEnter(step Step, d Draft) (Step, bool) {
	seq := Sequence(d)

	idx := -1
	for i, s := range seq {
		if s == step {
			idx = i
			break
		}
	}
	if idx < 0 {
		if !Completed(StepPostcode, d) {
			return StepPostcode, false
		}
		return StepServices, false
	}

	for _, prior := range seq[:idx] {
		if !Completed(prior, d) {
			return prior, false
		}
	}
	return step, true
}

// Require is CanEnter as an error: nil when step may render, a *RedirectError otherwise.
func Require(step Step, d Draft) error {
	to, ok := CanEnter(step, d)
	if ok {
		return nil
	}
	return &RedirectError{Requested: step, To: to}
}

// Resume returns the first step of the draft's path that is not completed yet,
// which is where a returning visitor continues.
func Resume(d Draft) Step {
	for _, s := range Sequence(d) {
		if !Completed(s, d) {
			return s
		}
	}
	return StepDetails
}

// Next returns the step after step on the draft's path, or "" at the end.
func Next(step Step, d Draft) Step {
	seq := Sequence(d)
	for i, s := range seq {
		if s == step && i+1 < len(seq) {
			return seq[i+1]
		}
	}
	return ""
}
