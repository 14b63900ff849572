package choose_subscription

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-BookingPortal/internal/domain"
	"github.com/m04kA/SMC-BookingPortal/internal/flow"
)

// UseCase handles the subscription options step
type UseCase struct {
	metrics Metrics
	logger  Logger
}

func NewUseCase(metrics Metrics, logger Logger) *UseCase {
	return &UseCase{
		metrics: metrics,
		logger:  logger,
	}
}

// Options returns the frequencies and durations to choose from, with the current choice if any
func (uc *UseCase) Options(ctx context.Context, session DraftSession) (*OptionsResponse, error) {
	draft, err := uc.enter(ctx, session)
	if err != nil {
		return nil, err
	}

	resp := &OptionsResponse{
		ServiceID:   *draft.ServiceID,
		Frequencies: append([]domain.Frequency(nil), domain.Frequencies...),
		Durations:   durations(),
	}
	if sub, ok := draft.Subscription(); ok && sub.HasDetails() {
		resp.Current = &Selection{Frequency: sub.Frequency, Months: sub.DurationMonths}
	}
	return resp, nil
}

// Choose writes frequency and duration and routes to the date/time step
func (uc *UseCase) Choose(ctx context.Context, session DraftSession, req *Request) (*Response, error) {
	uc.logger.Info("ChooseSubscription: session=%s, frequency=%s, months=%d", session.ID(), req.Frequency, req.Months)

	// 1. Guard
	if _, err := uc.enter(ctx, session); err != nil {
		return nil, err
	}

	// 2. Validation; the store itself does not range-check
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("ChooseSubscription: validation failed: %v", err)
		return nil, err
	}

	// 3. Write, re-checking the guard under the session lock
	draft, err := session.Update(ctx, func(s *flow.Store) error {
		if err := flow.Require(flow.StepSubscription, s.Draft()); err != nil {
			return err
		}
		s.SetSubscriptionDetails(req.Frequency, req.Months)
		return nil
	})
	var redirect *flow.RedirectError
	if errors.As(err, &redirect) {
		uc.logger.Info("ChooseSubscription: session=%s, %v", session.ID(), err)
		return nil, err
	}
	if err != nil {
		uc.logger.Error("ChooseSubscription: session=%s, failed to save draft: %v", session.ID(), err)
		return nil, fmt.Errorf("%w: failed to save draft: %v", ErrInternal, err)
	}

	next := flow.Next(flow.StepSubscription, draft)
	uc.metrics.ObserveTransition(string(flow.StepSubscription), string(next))

	return &Response{Selection: Selection{Frequency: req.Frequency, Months: req.Months}, Next: next}, nil
}

func (uc *UseCase) enter(ctx context.Context, session DraftSession) (flow.Draft, error) {
	draft, err := session.Snapshot(ctx)
	if err != nil {
		uc.logger.Error("ChooseSubscription: session=%s, failed to load draft: %v", session.ID(), err)
		return flow.Draft{}, fmt.Errorf("%w: failed to load draft: %v", ErrInternal, err)
	}
	if err := flow.Require(flow.StepSubscription, draft); err != nil {
		uc.logger.Info("ChooseSubscription: session=%s, %v", session.ID(), err)
		return flow.Draft{}, err
	}
	return draft, nil
}
