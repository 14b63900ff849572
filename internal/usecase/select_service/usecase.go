package select_service

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-BookingPortal/internal/domain"
	"github.com/m04kA/SMC-BookingPortal/internal/flow"
	"github.com/m04kA/SMC-BookingPortal/internal/integrations/opsapi"
)

// UseCase handles the service selection step
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

// List returns the services offered in the draft's postcode area
func (uc *UseCase) List(ctx context.Context, session DraftSession) (*ListResponse, error) {
	draft, err := uc.enter(ctx, session)
	if err != nil {
		return nil, err
	}

	services, err := uc.listServices(ctx, session, *draft.Postcode)
	if err != nil {
		return nil, err
	}

	return &ListResponse{Postcode: *draft.Postcode, Services: services, Selected: draft.ServiceID}, nil
}

// Detail returns one service with its "book one-time" and "subscribe" actions
func (uc *UseCase) Detail(ctx context.Context, session DraftSession, serviceID int64) (*DetailResponse, error) {
	draft, err := uc.enter(ctx, session)
	if err != nil {
		return nil, err
	}

	service, err := uc.findService(ctx, session, *draft.Postcode, serviceID)
	if err != nil {
		return nil, err
	}

	return &DetailResponse{
		Service: service,
		Actions: []Action{
			{Mode: domain.BookingSingle, Next: flow.StepDateTime},
			{Mode: domain.BookingSubscription, Next: flow.StepSubscription},
		},
	}, nil
}

// Choose re-checks the service against the postcode's list, then writes service and booking type
func (uc *UseCase) Choose(ctx context.Context, session DraftSession, req *ChooseRequest) (*ChooseResponse, error) {
	uc.logger.Info("SelectService: session=%s, service=%d, mode=%s", session.ID(), req.ServiceID, req.Mode)

	// 1. Request validation
	if err := validateChooseRequest(req); err != nil {
		uc.logger.Warn("SelectService: validation failed: %v", err)
		return nil, err
	}

	// 2. Guard
	draft, err := uc.enter(ctx, session)
	if err != nil {
		return nil, err
	}

	// 3. The service must be offered for the postcode
	if _, err := uc.findService(ctx, session, *draft.Postcode, req.ServiceID); err != nil {
		return nil, err
	}

	// 4. Write, unless the draft left the step or its postcode changed since the check
	serviceID := req.ServiceID
	checked := *draft.Postcode
	draft, err = session.Update(ctx, func(s *flow.Store) error {
		latest := s.Draft()
		if err := flow.Require(flow.StepServices, latest); err != nil {
			return err
		}
		if *latest.Postcode != checked {
			return &flow.RedirectError{Requested: flow.StepServices, To: flow.StepServices}
		}
		s.SetSelectedService(&serviceID)
		s.SetBookingType(req.Mode)
		return nil
	})
	var redirect *flow.RedirectError
	if errors.As(err, &redirect) {
		uc.logger.Info("SelectService: session=%s, draft changed before write: %v", session.ID(), err)
		return nil, err
	}
	if err != nil {
		uc.logger.Error("SelectService: session=%s, failed to save draft: %v", session.ID(), err)
		return nil, fmt.Errorf("%w: failed to save draft: %v", ErrInternal, err)
	}

	next := flow.Next(flow.StepServices, draft)
	uc.metrics.ObserveTransition(string(flow.StepServices), string(next))

	return &ChooseResponse{ServiceID: serviceID, Mode: req.Mode, Next: next}, nil
}

func (uc *UseCase) enter(ctx context.Context, session DraftSession) (flow.Draft, error) {
	draft, err := session.Snapshot(ctx)
	if err != nil {
		uc.logger.Error("SelectService: session=%s, failed to load draft: %v", session.ID(), err)
		return flow.Draft{}, fmt.Errorf("%w: failed to load draft: %v", ErrInternal, err)
	}
	if err := flow.Require(flow.StepServices, draft); err != nil {
		uc.logger.Info("SelectService: session=%s, %v", session.ID(), err)
		return flow.Draft{}, err
	}
	return draft, nil
}

func (uc *UseCase) listServices(ctx context.Context, session DraftSession, postcode string) ([]domain.Service, error) {
	services, err := uc.client.ListServices(ctx, postcode)
	if err != nil {
		if _, ok := opsapi.Message(err); ok {
			uc.logger.Info("SelectService: session=%s, postcode=%s, list rejected: %v", session.ID(), postcode, err)
			return nil, fmt.Errorf("%w: %w", ErrRejected, err)
		}
		uc.logger.Error("SelectService: session=%s, postcode=%s, list failed: %v", session.ID(), postcode, err)
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	return services, nil
}

func (uc *UseCase) findService(ctx context.Context, session DraftSession, postcode string, serviceID int64) (domain.Service, error) {
	services, err := uc.listServices(ctx, session, postcode)
	if err != nil {
		return domain.Service{}, err
	}

	service, ok := domain.FindService(services, serviceID)
	if !ok {
		uc.logger.Warn("SelectService: session=%s, service=%d not offered for postcode=%s", session.ID(), serviceID, postcode)
		return domain.Service{}, fmt.Errorf("%w: id=%d", ErrServiceNotFound, serviceID)
	}
	return service, nil
}
