package draft

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-BookingPortal/internal/domain"
	"github.com/m04kA/SMC-BookingPortal/internal/flow"
	"github.com/m04kA/SMC-BookingPortal/internal/integrations/opsapi"
	"github.com/m04kA/SMC-BookingPortal/internal/service/draft/models"
)

// Service reads and resets the booking draft and edits multi-service orders
type Service struct {
	client  OpsClient
	metrics Metrics
	logger  Logger
}

func NewService(client OpsClient, metrics Metrics, logger Logger) *Service {
	return &Service{
		client:  client,
		metrics: metrics,
		logger:  logger,
	}
}

// Snapshot returns the current draft
func (s *Service) Snapshot(ctx context.Context, session DraftSession) (*models.DraftResponse, error) {
	d, err := s.load(ctx, session)
	if err != nil {
		return nil, err
	}
	return models.FromDraft(d), nil
}

// Reset clears the draft and drops the session's loaded slots
func (s *Service) Reset(ctx context.Context, session DraftSession) (*models.DraftResponse, error) {
	d, err := session.Update(ctx, func(st *flow.Store) error {
		st.Reset()
		return nil
	})
	if err != nil {
		s.logger.Error("Reset: session=%s, failed to save draft: %v", session.ID(), err)
		return nil, fmt.Errorf("%w: Reset - save draft: %v", ErrInternal, err)
	}
	session.Forget()

	s.logger.Info("Reset: session=%s, draft cleared", session.ID())
	return models.FromDraft(d), nil
}

// Step checks whether the named step may render. When it may not, the *flow.RedirectError
// from the guard is returned as is.
func (s *Service) Step(ctx context.Context, session DraftSession, name string) (*models.StepResponse, error) {
	step, err := flow.ParseStep(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownStep, name)
	}

	d, err := s.load(ctx, session)
	if err != nil {
		return nil, err
	}

	if err := flow.Require(step, d); err != nil {
		s.logger.Info("Step: session=%s, %v", session.ID(), err)
		return nil, err
	}

	return &models.StepResponse{
		Step:  string(step),
		Path:  step.Path(),
		Next:  models.StepPath(flow.Next(step, d)),
		Draft: models.FromDraft(d),
	}, nil
}

// AddOrderItem puts a service line on the draft's order, switching the draft to the order path
func (s *Service) AddOrderItem(ctx context.Context, session DraftSession, req *models.OrderItemRequest) (*models.OrderResponse, error) {
	// 1. Validation
	if err := validateOrderItem(req); err != nil {
		s.logger.Warn("AddOrderItem: session=%s, validation failed: %v", session.ID(), err)
		return nil, err
	}

	// 2. Guard
	d, err := s.enter(ctx, session)
	if err != nil {
		return nil, err
	}

	// 3. The service must be offered for the postcode
	services, err := s.client.ListServices(ctx, *d.Postcode)
	if err != nil {
		if _, ok := opsapi.Message(err); ok {
			s.logger.Info("AddOrderItem: session=%s, list rejected: %v", session.ID(), err)
			return nil, fmt.Errorf("%w: %w", ErrRejected, err)
		}
		s.logger.Error("AddOrderItem: session=%s, list failed: %v", session.ID(), err)
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	if _, ok := domain.FindService(services, req.ServiceID); !ok {
		s.logger.Warn("AddOrderItem: session=%s, service=%d not offered for postcode=%s", session.ID(), req.ServiceID, *d.Postcode)
		return nil, fmt.Errorf("%w: id=%d", ErrServiceNotFound, req.ServiceID)
	}

	// 4. Write, unless the draft left the step or its postcode changed since the check
	var wasComplete bool
	checked := *d.Postcode
	d, err = session.Update(ctx, func(st *flow.Store) error {
		latest := st.Draft()
		if err := requireServices(latest, checked); err != nil {
			return err
		}
		wasComplete = flow.Completed(flow.StepServices, latest)
		st.AddServiceToOrder(req.ServiceID, req.Quantity, req.StaffID)
		return nil
	})
	var redirect *flow.RedirectError
	if errors.As(err, &redirect) {
		s.logger.Info("AddOrderItem: session=%s, draft changed before write: %v", session.ID(), err)
		return nil, err
	}
	if err != nil {
		s.logger.Error("AddOrderItem: session=%s, failed to save draft: %v", session.ID(), err)
		return nil, fmt.Errorf("%w: AddOrderItem - save draft: %v", ErrInternal, err)
	}

	next := flow.Next(flow.StepServices, d)
	if !wasComplete {
		s.metrics.ObserveTransition(string(flow.StepServices), string(next))
	}

	s.logger.Info("AddOrderItem: session=%s, service=%d added", session.ID(), req.ServiceID)
	return orderResponse(d, next), nil
}

// RemoveOrderItem drops a service line; removing an absent line changes nothing
func (s *Service) RemoveOrderItem(ctx context.Context, session DraftSession, serviceID int64) (*models.OrderResponse, error) {
	if serviceID <= 0 {
		return nil, fmt.Errorf("%w: service id must be positive", ErrInvalidInput)
	}

	if _, err := s.enter(ctx, session); err != nil {
		return nil, err
	}

	d, err := session.Update(ctx, func(st *flow.Store) error {
		if err := flow.Require(flow.StepServices, st.Draft()); err != nil {
			return err
		}
		st.RemoveServiceFromOrder(serviceID)
		return nil
	})
	var redirect *flow.RedirectError
	if errors.As(err, &redirect) {
		s.logger.Info("RemoveOrderItem: session=%s, %v", session.ID(), err)
		return nil, err
	}
	if err != nil {
		s.logger.Error("RemoveOrderItem: session=%s, failed to save draft: %v", session.ID(), err)
		return nil, fmt.Errorf("%w: RemoveOrderItem - save draft: %v", ErrInternal, err)
	}

	s.logger.Info("RemoveOrderItem: session=%s, service=%d removed", session.ID(), serviceID)
	return orderResponse(d, flow.Next(flow.StepServices, d)), nil
}

func (s *Service) load(ctx context.Context, session DraftSession) (flow.Draft, error) {
	d, err := session.Snapshot(ctx)
	if err != nil {
		s.logger.Error("Draft: session=%s, failed to load draft: %v", session.ID(), err)
		return flow.Draft{}, fmt.Errorf("%w: load draft: %v", ErrInternal, err)
	}
	return d, nil
}

// enter applies the services step guard, which needs a postcode
func (s *Service) enter(ctx context.Context, session DraftSession) (flow.Draft, error) {
	d, err := s.load(ctx, session)
	if err != nil {
		return flow.Draft{}, err
	}
	if err := flow.Require(flow.StepServices, d); err != nil {
		s.logger.Info("Draft: session=%s, %v", session.ID(), err)
		return flow.Draft{}, err
	}
	return d, nil
}

// requireServices is the services step guard plus a check that the postcode the service
// was looked up for is still the draft's
func requireServices(d flow.Draft, postcode string) error {
	if err := flow.Require(flow.StepServices, d); err != nil {
		return err
	}
	if *d.Postcode != postcode {
		return &flow.RedirectError{Requested: flow.StepServices, To: flow.StepServices}
	}
	return nil
}

func validateOrderItem(req *models.OrderItemRequest) error {
	if req == nil {
		return fmt.Errorf("%w: empty request", ErrInvalidInput)
	}
	if req.ServiceID <= 0 {
		return fmt.Errorf("%w: service id must be positive", ErrInvalidInput)
	}
	if req.Quantity < 0 || req.Quantity > domain.MaxOrderQuantity {
		return fmt.Errorf("%w: quantity must be between 1 and %d", ErrInvalidInput, domain.MaxOrderQuantity)
	}
	if req.StaffID != nil && *req.StaffID <= 0 {
		return fmt.Errorf("%w: staff id must be positive", ErrInvalidInput)
	}
	return nil
}

// orderResponse reports the next step only while the order has items
func orderResponse(d flow.Draft, next flow.Step) *models.OrderResponse {
	resp := &models.OrderResponse{Items: []models.OrderItemResponse{}}
	if order, ok := d.Order(); ok {
		resp.Items = models.FromOrderItems(order.Items)
	}
	if flow.Completed(flow.StepServices, d) {
		resp.Next = models.StepPath(next)
	}
	return resp
}
