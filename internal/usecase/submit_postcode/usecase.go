package submit_postcode

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-BookingPortal/internal/domain"
	"github.com/m04kA/SMC-BookingPortal/internal/flow"
	"github.com/m04kA/SMC-BookingPortal/internal/integrations/opsapi"
)

// UseCase handles the postcode step
type UseCase struct {
	client  OpsClient
	metrics Metrics
	logger  Logger
}

func NewUseCase(client OpsClient, metrics Metrics, logger Logger) *UseCase {
	return &UseCase{
		client:  client,
		metrics: metrics,
		logger:  logger,
	}
}

// Execute checks the postcode format locally, confirms it with the backend and only then writes it.
// A postcode that fails the format check never reaches the network.
func (uc *UseCase) Execute(ctx context.Context, session DraftSession, req *Request) (*Response, error) {
	// 1. Local format check
	postcode, err := domain.ValidatePostcode(req.Postcode)
	if err != nil {
		uc.logger.Warn("SubmitPostcode: session=%s, invalid format %q", session.ID(), req.Postcode)
		return nil, fmt.Errorf("%w: %q", ErrInvalidPostcode, req.Postcode)
	}

	// 2. Current draft, for the change warning below
	current, err := session.Snapshot(ctx)
	if err != nil {
		uc.logger.Error("SubmitPostcode: session=%s, failed to load draft: %v", session.ID(), err)
		return nil, fmt.Errorf("%w: failed to load draft: %v", ErrInternal, err)
	}

	// 3. Backend confirmation
	services, err := uc.client.ValidatePostcode(ctx, postcode)
	if err != nil {
		if _, ok := opsapi.Message(err); ok {
			uc.logger.Info("SubmitPostcode: session=%s, postcode=%s rejected: %v", session.ID(), postcode, err)
			return nil, fmt.Errorf("%w: %w", ErrRejected, err)
		}
		uc.logger.Error("SubmitPostcode: session=%s, postcode=%s, validation failed: %v", session.ID(), postcode, err)
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}

	// 4. Later steps are left as they are when the postcode changes
	if current.Postcode != nil && *current.Postcode != postcode && (current.ServiceID != nil || current.Path != nil) {
		uc.logger.Warn("SubmitPostcode: session=%s, postcode changed %s -> %s with later steps filled; they are kept unvalidated",
			session.ID(), *current.Postcode, postcode)
	}

	// 5. Write
	draft, err := session.Update(ctx, func(s *flow.Store) error {
		s.SetPostcode(postcode)
		return nil
	})
	if err != nil {
		uc.logger.Error("SubmitPostcode: session=%s, failed to save draft: %v", session.ID(), err)
		return nil, fmt.Errorf("%w: failed to save draft: %v", ErrInternal, err)
	}

	next := flow.Next(flow.StepPostcode, draft)
	uc.metrics.ObserveTransition(string(flow.StepPostcode), string(next))
	uc.logger.Info("SubmitPostcode: session=%s, postcode=%s accepted, %d services", session.ID(), postcode, len(services))

	return &Response{Postcode: postcode, Services: services, Next: next}, nil
}
