package submit_guest_details

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/m04kA/SMC-BookingPortal/internal/domain"
	"github.com/m04kA/SMC-BookingPortal/internal/flow"
)

// stepComplete labels the transition out of the last step in metrics
const stepComplete = "complete"

// UseCase handles the guest details step and hands completed drafts to checkout
type UseCase struct {
	handoffRepo HandoffRepository
	txManager   TransactionManager
	validate    *validator.Validate
	metrics     Metrics
	logger      Logger
}

func NewUseCase(handoffRepo HandoffRepository, txManager TransactionManager, metrics Metrics, logger Logger) *UseCase {
	return &UseCase{
		handoffRepo: handoffRepo,
		txManager:   txManager,
		validate:    newValidator(),
		metrics:     metrics,
		logger:      logger,
	}
}

// Enter returns the summary shown on the details step
func (uc *UseCase) Enter(ctx context.Context, session DraftSession) (*Summary, error) {
	draft, err := uc.enter(ctx, session)
	if err != nil {
		return nil, err
	}
	summary := buildSummary(draft)
	return &summary, nil
}

// Submit creates a checkout handoff for the completed draft and resets the draft. The guard,
// the insert and the reset run under the session lock, so concurrent submits of one draft
// produce a single handoff. When the handoff cannot be stored the draft is left untouched.
func (uc *UseCase) Submit(ctx context.Context, session DraftSession, req *Request) (*SubmitResponse, error) {
	// 1. Validation
	if req != nil {
		normalize(req)
	}
	if err := validateRequest(uc.validate, req); err != nil {
		uc.logger.Warn("SubmitGuestDetails: session=%s, validation failed: %v", session.ID(), err)
		return nil, err
	}
	guest := domain.Guest{
		Email:   req.Email,
		Name:    req.Name,
		Phone:   req.Phone,
		Address: req.Address,
		Notes:   req.Notes,
	}

	// 2. Guard, hand over and start over in one locked update
	var (
		handoff   *domain.CheckoutHandoff
		submitted flow.Draft
		createErr error
	)
	_, err := session.Update(ctx, func(s *flow.Store) error {
		if err := flow.Require(flow.StepDetails, s.Draft()); err != nil {
			return err
		}

		submitted = s.Draft()
		submitted.Guest = guest
		pending := buildHandoff(session.ID(), submitted)
		createErr = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
			created, err := uc.handoffRepo.Create(txCtx, pending)
			if err != nil {
				return err
			}
			handoff = created
			return nil
		})
		if createErr != nil {
			return createErr
		}

		s.Reset()
		return nil
	})

	var redirect *flow.RedirectError
	switch {
	case errors.As(err, &redirect):
		uc.logger.Info("SubmitGuestDetails: session=%s, %v", session.ID(), err)
		return nil, err
	case createErr != nil:
		uc.logger.Error("SubmitGuestDetails: session=%s, failed to create handoff: %v", session.ID(), createErr)
		return nil, fmt.Errorf("%w: failed to create handoff: %v", ErrInternal, createErr)
	case err != nil && handoff == nil:
		uc.logger.Error("SubmitGuestDetails: session=%s, failed to load draft: %v", session.ID(), err)
		return nil, fmt.Errorf("%w: failed to load draft: %v", ErrInternal, err)
	case err != nil:
		// the handoff is already stored, so a failed reset is only logged
		uc.logger.Error("SubmitGuestDetails: session=%s, failed to reset draft: %v", session.ID(), err)
	}

	uc.logger.Info("SubmitGuestDetails: session=%s, handoff %s created, type=%s",
		session.ID(), handoff.Reference, handoff.BookingType)

	session.Forget()
	uc.metrics.ObserveTransition(string(flow.StepDetails), stepComplete)

	return &SubmitResponse{
		Reference: handoff.Reference,
		Status:    handoff.Status,
		Summary:   buildSummary(submitted),
		Next:      flow.StepPostcode.Path(),
	}, nil
}

func (uc *UseCase) enter(ctx context.Context, session DraftSession) (flow.Draft, error) {
	draft, err := session.Snapshot(ctx)
	if err != nil {
		uc.logger.Error("SubmitGuestDetails: session=%s, failed to load draft: %v", session.ID(), err)
		return flow.Draft{}, fmt.Errorf("%w: failed to load draft: %v", ErrInternal, err)
	}
	if err := flow.Require(flow.StepDetails, draft); err != nil {
		uc.logger.Info("SubmitGuestDetails: session=%s, %v", session.ID(), err)
		return flow.Draft{}, err
	}
	return draft, nil
}

func buildHandoff(sessionID string, d flow.Draft) *domain.CheckoutHandoff {
	h := &domain.CheckoutHandoff{
		Reference:   uuid.NewString(),
		SessionID:   sessionID,
		BookingType: d.BookingType(),
		StaffID:     d.StaffID,
		Guest:       d.Guest,
		Status:      domain.HandoffPending,
	}
	if d.Postcode != nil {
		h.Postcode = *d.Postcode
	}
	if d.Date != nil {
		h.BookingDate = *d.Date
	}
	if d.Time != nil {
		h.StartTime = *d.Time
	}
	if _, ok := d.Order(); !ok {
		h.ServiceID = d.ServiceID
	}
	if sub, ok := d.Subscription(); ok {
		freq := sub.Frequency
		months := sub.DurationMonths
		h.Frequency = &freq
		h.DurationMonths = &months
	}
	if order, ok := d.Order(); ok {
		h.OrderItems = order.Items
	}
	return h
}
