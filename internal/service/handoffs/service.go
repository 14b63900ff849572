package handoffs

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-BookingPortal/internal/domain"
	handoffRepo "github.com/m04kA/SMC-BookingPortal/internal/infra/storage/handoff"
	"github.com/m04kA/SMC-BookingPortal/internal/service/handoffs/models"
)

// Service exposes the checkout handoff outbox to the payment collaborator
type Service struct {
	handoffRepo HandoffRepository
	txManager   TransactionManager
	logger      Logger
}

func NewService(handoffRepo HandoffRepository, txManager TransactionManager, logger Logger) *Service {
	return &Service{
		handoffRepo: handoffRepo,
		txManager:   txManager,
		logger:      logger,
	}
}

// GetByReference returns one handoff
func (s *Service) GetByReference(ctx context.Context, reference string) (*models.HandoffResponse, error) {
	reference = strings.TrimSpace(reference)
	if reference == "" {
		return nil, fmt.Errorf("%w: reference is required", ErrInvalidInput)
	}

	h, err := s.handoffRepo.GetByReference(ctx, reference)
	if err != nil {
		if errors.Is(err, handoffRepo.ErrHandoffNotFound) {
			s.logger.Warn("GetByReference: handoff %s not found", reference)
			return nil, ErrHandoffNotFound
		}
		s.logger.Error("GetByReference: repository error for handoff %s: %v", reference, err)
		return nil, fmt.Errorf("%w: GetByReference - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainHandoff(h), nil
}

// ListPending returns the oldest unclaimed handoffs
func (s *Service) ListPending(ctx context.Context, req *models.ListPendingRequest) (*models.HandoffListResponse, error) {
	var limit uint64
	if req != nil {
		limit = req.Limit
	}
	if limit == 0 {
		limit = models.DefaultListLimit
	}
	if limit > models.MaxListLimit {
		return nil, fmt.Errorf("%w: limit must not exceed %d", ErrInvalidInput, models.MaxListLimit)
	}

	handoffs, err := s.handoffRepo.ListPending(ctx, limit)
	if err != nil {
		s.logger.Error("ListPending: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListPending - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListPending: %d pending handoffs", len(handoffs))
	return models.FromDomainHandoffs(handoffs), nil
}

// Claim marks a pending handoff as taken by the checkout collaborator. The read and the
// update share a transaction so a missing reference and a second claim are told apart.
func (s *Service) Claim(ctx context.Context, reference string) (*models.HandoffResponse, error) {
	reference = strings.TrimSpace(reference)
	if reference == "" {
		return nil, fmt.Errorf("%w: reference is required", ErrInvalidInput)
	}

	var result *models.HandoffResponse
	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		h, err := s.handoffRepo.GetByReference(txCtx, reference)
		if err != nil {
			if errors.Is(err, handoffRepo.ErrHandoffNotFound) {
				return ErrHandoffNotFound
			}
			return fmt.Errorf("%w: Claim - get handoff: %v", ErrInternal, err)
		}

		if !h.IsPending() {
			return ErrAlreadyClaimed
		}

		if err := s.handoffRepo.Claim(txCtx, reference); err != nil {
			if errors.Is(err, handoffRepo.ErrAlreadyClaimed) {
				return ErrAlreadyClaimed
			}
			return fmt.Errorf("%w: Claim - update status: %v", ErrInternal, err)
		}

		result = models.FromDomainHandoff(h)
		result.Status = string(domain.HandoffClaimed)
		return nil
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrHandoffNotFound), errors.Is(err, ErrAlreadyClaimed):
			s.logger.Warn("Claim: handoff %s: %v", reference, err)
		default:
			s.logger.Error("Claim: handoff %s: %v", reference, err)
		}
		return nil, err
	}

	s.logger.Info("Claim: handoff %s claimed", reference)
	return result, nil
}
