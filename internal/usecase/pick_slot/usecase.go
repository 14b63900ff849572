package pick_slot

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-BookingPortal/internal/domain"
	"github.com/m04kA/SMC-BookingPortal/internal/flow"
	"github.com/m04kA/SMC-BookingPortal/internal/integrations/opsapi"
	"github.com/m04kA/SMC-BookingPortal/internal/navigator"
	"github.com/m04kA/SMC-BookingPortal/internal/slots"
)

// UseCase handles the date and time step
type UseCase struct {
	loc          *time.Location
	metrics      Metrics
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase creates the use case; loc decides what "today" is for the visitor
func NewUseCase(loc *time.Location, metrics Metrics, logger Logger) *UseCase {
	if loc == nil {
		loc = time.UTC
	}
	return &UseCase{
		loc:          loc,
		metrics:      metrics,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Page returns four weeks of the date picker
func (uc *UseCase) Page(ctx context.Context, session DraftSession, req *PageRequest) (*PageResponse, error) {
	if err := validatePageRequest(req); err != nil {
		return nil, err
	}

	draft, err := uc.enter(ctx, session)
	if err != nil {
		return nil, err
	}

	today := uc.today()
	anchor := navigator.Page(pageAnchor(req, draft, today), req.Direction)

	return &PageResponse{
		Anchor: anchor,
		Prev:   navigator.PrevPage(anchor),
		Next:   navigator.NextPage(anchor),
		Days:   buildDays(anchor, draft, today),
	}, nil
}

// LoadSlots makes req.Date the selected day and loads its slots through the session's picker.
// When a later LoadSlots for the same session wins the race, the later day's view is returned.
func (uc *UseCase) LoadSlots(ctx context.Context, session DraftSession, req *LoadRequest) (*SlotsResponse, error) {
	// 1. Validation
	if err := validateLoadRequest(req, uc.today()); err != nil {
		uc.logger.Warn("PickSlot: session=%s, load validation failed: %v", session.ID(), err)
		return nil, err
	}

	// 2. Guard
	draft, err := uc.enter(ctx, session)
	if err != nil {
		return nil, err
	}

	// 3. Fetch through the picker
	query, err := buildQuery(draft, req.Date, req.StaffID)
	if err != nil {
		return nil, err
	}
	view := session.Picker().Select(ctx, query)

	// 4. Only this request's failure is reported as an error
	superseded := view.Query == nil || !view.Query.SameAs(query)
	if !superseded && view.Err() != nil {
		return nil, uc.fetchError(session, view.Err())
	}

	return toSlotsResponse(view, superseded), nil
}

// Select writes a slot of the loaded day. If postcode, service or staff changed since the day
// was loaded, the day is fetched again first.
func (uc *UseCase) Select(ctx context.Context, session DraftSession, req *SelectRequest) (*SelectResponse, error) {
	uc.logger.Info("PickSlot: session=%s, date=%s, time=%s", session.ID(), req.Date.Format(domain.DateFormat), req.Time)

	// 1. Validation
	if err := validateSelectRequest(req, uc.today()); err != nil {
		uc.logger.Warn("PickSlot: session=%s, select validation failed: %v", session.ID(), err)
		return nil, err
	}

	// 2. Guard
	draft, err := uc.enter(ctx, session)
	if err != nil {
		return nil, err
	}

	// 3. The day must be the picker's selected day
	picker := session.Picker()
	current := picker.Current()
	if current.Query == nil || !isSameDay(current.Query.Date, req.Date) {
		uc.logger.Warn("PickSlot: session=%s, %s is not the loaded day", session.ID(), req.Date.Format(domain.DateFormat))
		return nil, fmt.Errorf("%w: %s", ErrSlotNotLoaded, req.Date.Format(domain.DateFormat))
	}

	// 4. Refresh when the draft moved under the loaded day
	query, err := buildQuery(draft, req.Date, current.Query.StaffID)
	if err != nil {
		return nil, err
	}
	if picker.NeedsRefresh(query) {
		uc.logger.Info("PickSlot: session=%s, draft changed since slots were loaded, refreshing", session.ID())
		view := picker.Select(ctx, query)
		if view.Query != nil && view.Query.SameAs(query) && view.Err() != nil {
			return nil, uc.fetchError(session, view.Err())
		}
	}

	// 5. The slot must be loaded and available
	slot, err := picker.Find(req.Date, req.Time)
	if err != nil {
		uc.logger.Warn("PickSlot: session=%s, cannot pick %s: %v", session.ID(), req.Time, err)
		return nil, mapFindError(err)
	}

	staffID, err := resolveStaff(slot, req.StaffID, query.StaffID)
	if err != nil {
		return nil, err
	}

	// 6. Write, unless the draft left the step or moved off the checked day meanwhile
	draft, err = session.Update(ctx, func(s *flow.Store) error {
		latest := s.Draft()
		if err := flow.Require(flow.StepDateTime, latest); err != nil {
			return err
		}
		if q, err := buildQuery(latest, req.Date, query.StaffID); err != nil || !q.SameAs(query) {
			return fmt.Errorf("%w: draft changed while picking %s", ErrSlotNotLoaded, req.Time)
		}
		s.SetDateAndTime(req.Date, req.Time, staffID)
		return nil
	})
	var redirect *flow.RedirectError
	switch {
	case errors.As(err, &redirect):
		uc.logger.Info("PickSlot: session=%s, %v", session.ID(), err)
		return nil, err
	case errors.Is(err, ErrSlotNotLoaded):
		uc.logger.Warn("PickSlot: session=%s, %v", session.ID(), err)
		return nil, err
	case err != nil:
		uc.logger.Error("PickSlot: session=%s, failed to save draft: %v", session.ID(), err)
		return nil, fmt.Errorf("%w: failed to save draft: %v", ErrInternal, err)
	}

	next := flow.Next(flow.StepDateTime, draft)
	uc.metrics.ObserveTransition(string(flow.StepDateTime), string(next))

	return &SelectResponse{Date: *draft.Date, Time: *draft.Time, StaffID: draft.StaffID, Next: next}, nil
}

func (uc *UseCase) enter(ctx context.Context, session DraftSession) (flow.Draft, error) {
	draft, err := session.Snapshot(ctx)
	if err != nil {
		uc.logger.Error("PickSlot: session=%s, failed to load draft: %v", session.ID(), err)
		return flow.Draft{}, fmt.Errorf("%w: failed to load draft: %v", ErrInternal, err)
	}
	if err := flow.Require(flow.StepDateTime, draft); err != nil {
		uc.logger.Info("PickSlot: session=%s, %v", session.ID(), err)
		return flow.Draft{}, err
	}
	return draft, nil
}

func (uc *UseCase) today() time.Time {
	return dateOnly(uc.timeProvider.Now().In(uc.loc))
}

func (uc *UseCase) fetchError(session DraftSession, err error) error {
	if _, ok := opsapi.Message(err); ok {
		return fmt.Errorf("%w: %w", ErrRejected, err)
	}
	uc.logger.Error("PickSlot: session=%s, slots unavailable: %v", session.ID(), err)
	return fmt.Errorf("%w: %w", ErrUnavailable, err)
}

func buildQuery(d flow.Draft, date time.Time, staffID *int64) (slots.Query, error) {
	serviceID, ok := slotServiceID(d)
	if !ok || d.Postcode == nil {
		return slots.Query{}, fmt.Errorf("%w: draft has no service", ErrInternal)
	}
	return slots.Query{Postcode: *d.Postcode, ServiceID: serviceID, Date: dateOnly(date), StaffID: staffID}, nil
}

// resolveStaff picks the staff member to book: the requested one, the one the day was
// loaded for, or the only one on the slot.
func resolveStaff(slot domain.Slot, requested, loadedFor *int64) (*int64, error) {
	switch {
	case requested != nil:
		if !slot.HasStaff(*requested) {
			return nil, fmt.Errorf("%w: staff %d is not on %s", ErrSlotNotAvailable, *requested, slot.Time)
		}
		return requested, nil
	case loadedFor != nil:
		return loadedFor, nil
	case len(slot.StaffIDs) == 1:
		id := slot.StaffIDs[0]
		return &id, nil
	default:
		return nil, nil
	}
}

func mapFindError(err error) error {
	switch {
	case errors.Is(err, slots.ErrUnavailable), errors.Is(err, slots.ErrUnknownSlot):
		return fmt.Errorf("%w: %v", ErrSlotNotAvailable, err)
	case errors.Is(err, slots.ErrFetchFailed):
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	default:
		return fmt.Errorf("%w: %v", ErrSlotNotLoaded, err)
	}
}

func toSlotsResponse(view slots.View, superseded bool) *SlotsResponse {
	resp := &SlotsResponse{Slots: view.Slots, Loading: view.Loading, Error: view.Error, Superseded: superseded}
	if view.Query != nil {
		resp.Date = view.Query.Date
		resp.StaffID = view.Query.StaffID
	}
	if resp.Slots == nil {
		resp.Slots = []domain.Slot{}
	}
	return resp
}
