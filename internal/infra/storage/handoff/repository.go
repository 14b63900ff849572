package handoff

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-BookingPortal/internal/domain"
	"github.com/m04kA/SMC-BookingPortal/pkg/dbmetrics"
	"github.com/m04kA/SMC-BookingPortal/pkg/psqlbuilder"
	"github.com/m04kA/SMC-BookingPortal/pkg/types"
)

const table = "checkout_handoffs"

var columns = []string{
	"id",
	"reference",
	"session_id",
	"booking_type",
	"postcode",
	"service_id",
	"frequency",
	"duration_months",
	"order_items",
	"booking_date",
	"start_time",
	"staff_id",
	"guest_email",
	"guest_name",
	"guest_phone",
	"address",
	"notes",
	"status",
	"created_at",
	"updated_at",
}

// Repository stores completed drafts until the checkout collaborator claims them
type Repository struct {
	db DBExecutor
}

func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create inserts a pending handoff. The transaction from ctx is used when there is one.
func (r *Repository) Create(ctx context.Context, h *domain.CheckoutHandoff) (*domain.CheckoutHandoff, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	items, err := json.Marshal(orderItems(h.OrderItems))
	if err != nil {
		return nil, fmt.Errorf("%w: Create - encode order items: %v", ErrBuildQuery, err)
	}

	query, args, err := psqlbuilder.Insert(table).
		Columns(
			"reference",
			"session_id",
			"booking_type",
			"postcode",
			"service_id",
			"frequency",
			"duration_months",
			"order_items",
			"booking_date",
			"start_time",
			"staff_id",
			"guest_email",
			"guest_name",
			"guest_phone",
			"address",
			"notes",
			"status",
		).
		Values(
			h.Reference,
			h.SessionID,
			h.BookingType,
			h.Postcode,
			h.ServiceID,
			h.Frequency,
			h.DurationMonths,
			string(items),
			h.BookingDate,
			h.StartTime,
			h.StaffID,
			h.Guest.Email,
			h.Guest.Name,
			h.Guest.Phone,
			h.Guest.Address,
			h.Guest.Notes,
			domain.HandoffPending,
		).
		Suffix("RETURNING id, status, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&h.ID,
		&h.Status,
		&h.CreatedAt,
		&h.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return h, nil
}

// GetByReference returns the handoff with the public reference
func (r *Repository) GetByReference(ctx context.Context, reference string) (*domain.CheckoutHandoff, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"reference": reference}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByReference - build select query: %v", ErrBuildQuery, err)
	}

	h, err := scanHandoff(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrHandoffNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByReference - scan handoff: %v", ErrScanRow, err)
	}
	return h, nil
}

// ListPending returns up to limit pending handoffs, oldest first
func (r *Repository) ListPending(ctx context.Context, limit uint64) ([]*domain.CheckoutHandoff, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"status": domain.HandoffPending}).
		OrderBy("created_at ASC", "id ASC").
		Limit(limit).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListPending - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListPending - execute select: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	result := make([]*domain.CheckoutHandoff, 0)
	for rows.Next() {
		h, err := scanHandoff(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListPending - scan handoff: %v", ErrScanRow, err)
		}
		result = append(result, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListPending - rows error: %v", ErrScanRow, err)
	}

	return result, nil
}

// Claim moves a pending handoff to claimed. Run it inside a transaction together with
// GetByReference to tell "not found" from "already claimed".
func (r *Repository) Claim(ctx context.Context, reference string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(table).
		Set("status", domain.HandoffClaimed).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"reference": reference, "status": domain.HandoffPending}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Claim - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Claim - execute update: %v", ErrExecQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Claim - get rows affected: %v", ErrExecQuery, err)
	}
	if affected == 0 {
		return ErrAlreadyClaimed
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanHandoff(row rowScanner) (*domain.CheckoutHandoff, error) {
	var (
		h         domain.CheckoutHandoff
		serviceID sql.NullInt64
		frequency sql.NullString
		months    sql.NullInt32
		items     []byte
		staffID   sql.NullInt64
		notes     sql.NullString
		startTime types.TimeString
	)

	err := row.Scan(
		&h.ID,
		&h.Reference,
		&h.SessionID,
		&h.BookingType,
		&h.Postcode,
		&serviceID,
		&frequency,
		&months,
		&items,
		&h.BookingDate,
		&startTime,
		&staffID,
		&h.Guest.Email,
		&h.Guest.Name,
		&h.Guest.Phone,
		&h.Guest.Address,
		&notes,
		&h.Status,
		&h.CreatedAt,
		&h.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	h.StartTime = startTime
	if serviceID.Valid {
		h.ServiceID = &serviceID.Int64
	}
	if frequency.Valid {
		f := domain.Frequency(frequency.String)
		h.Frequency = &f
	}
	if months.Valid {
		m := int(months.Int32)
		h.DurationMonths = &m
	}
	if staffID.Valid {
		h.StaffID = &staffID.Int64
	}
	if notes.Valid {
		h.Guest.Notes = &notes.String
	}
	if len(items) > 0 {
		if err := json.Unmarshal(items, &h.OrderItems); err != nil {
			return nil, fmt.Errorf("decode order_items: %w", err)
		}
	}

	return &h, nil
}

// orderItems keeps an empty order as [] rather than null.
func orderItems(items []domain.OrderItem) []domain.OrderItem {
	if items == nil {
		return []domain.OrderItem{}
	}
	return items
}
