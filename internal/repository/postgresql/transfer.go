package postgresql

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/peopledesk/hr-backend-go/internal/domain/transfer"
	"github.com/peopledesk/hr-backend-go/internal/pkg/database"
)

type transferRepositoryImpl struct {
	db *database.DB
}

func NewTransferRepository(db *database.DB) transfer.TransferRepository {
	return &transferRepositoryImpl{db: db}
}

const transferColumns = `
	t.id, t.employee_id, t.from_branch_id, t.to_branch_id,
	t.effective_date, t.reason,
	t.status, t.approved_by, t.approved_at, t.rejection_reason, t.completed_at,
	t.requested_at, t.created_at, t.updated_at,
	e.full_name AS employee_name,
	fb.name AS from_branch_name, tb.name AS to_branch_name
`

func scanTransfer(row pgx.Row) (transfer.TransferRequest, error) {
	var t transfer.TransferRequest
	err := row.Scan(
		&t.ID, &t.EmployeeID, &t.FromBranchID, &t.ToBranchID,
		&t.EffectiveDate, &t.Reason,
		&t.Status, &t.ApprovedBy, &t.ApprovedAt, &t.RejectionReason, &t.CompletedAt,
		&t.RequestedAt, &t.CreatedAt, &t.UpdatedAt,
		&t.EmployeeName, &t.FromBranchName, &t.ToBranchName,
	)
	return t, err
}

// Create implements transfer.TransferRepository.
func (r *transferRepositoryImpl) Create(ctx context.Context, req transfer.TransferRequest) (transfer.TransferRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO transfer_requests (
			id, employee_id, from_branch_id, to_branch_id,
			effective_date, reason, status,
			requested_at, created_at, updated_at
		) VALUES (
			uuidv7(), $1, $2, $3, $4, $5, $6, NOW(), NOW(), NOW()
		) RETURNING id, requested_at, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		req.EmployeeID, req.FromBranchID, req.ToBranchID,
		req.EffectiveDate, req.Reason, req.Status,
	).Scan(&req.ID, &req.RequestedAt, &req.CreatedAt, &req.UpdatedAt)
	if err != nil {
		return transfer.TransferRequest{}, fmt.Errorf("failed to create transfer request: %w", err)
	}

	return req, nil
}

// GetByID implements transfer.TransferRepository.
func (r *transferRepositoryImpl) GetByID(ctx context.Context, id string) (transfer.TransferRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + transferColumns + `
		FROM transfer_requests t
		JOIN employees e ON e.id = t.employee_id
		JOIN branches fb ON fb.id = t.from_branch_id
		JOIN branches tb ON tb.id = t.to_branch_id
		WHERE t.id = $1
	`

	t, err := scanTransfer(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return transfer.TransferRequest{}, transfer.ErrTransferNotFound
		}
		return transfer.TransferRequest{}, err
	}
	return t, nil
}

// List implements transfer.TransferRepository.
func (r *transferRepositoryImpl) List(ctx context.Context, filter transfer.ListFilter) ([]transfer.TransferRequest, int64, error) {
	q := GetQuerier(ctx, r.db)

	conditions := []string{}
	args := []interface{}{}

	if filter.EmployeeID != nil {
		args = append(args, *filter.EmployeeID)
		conditions = append(conditions, fmt.Sprintf("t.employee_id = $%d", len(args)))
	}
	if filter.Status != nil {
		args = append(args, *filter.Status)
		conditions = append(conditions, fmt.Sprintf("t.status = $%d", len(args)))
	}

	where := ""
	if len(conditions) > 0 {
		where = " WHERE " + strings.Join(conditions, " AND ")
	}

	var total int64
	countQuery := `SELECT COUNT(*) FROM transfer_requests t` + where
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count transfer requests: %w", err)
	}

	offset := (filter.Page - 1) * filter.Limit
	args = append(args, filter.Limit, offset)
	query := `
		SELECT ` + transferColumns + `
		FROM transfer_requests t
		JOIN employees e ON e.id = t.employee_id
		JOIN branches fb ON fb.id = t.from_branch_id
		JOIN branches tb ON tb.id = t.to_branch_id` + where +
		fmt.Sprintf(" ORDER BY t.requested_at DESC LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list transfer requests: %w", err)
	}
	defer rows.Close()

	transfers := make([]transfer.TransferRequest, 0)
	for rows.Next() {
		t, err := scanTransfer(rows)
		if err != nil {
			return nil, 0, err
		}
		transfers = append(transfers, t)
	}

	return transfers, total, rows.Err()
}

// UpdateStatus implements transfer.TransferRepository. Same prior
// status guard as leave applications.
func (r *transferRepositoryImpl) UpdateStatus(ctx context.Context, upd transfer.StatusUpdate) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE transfer_requests
		SET status = $1,
			approved_by = COALESCE($2, approved_by),
			approved_at = COALESCE($3, approved_at),
			rejection_reason = COALESCE($4, rejection_reason),
			completed_at = COALESCE($5, completed_at),
			updated_at = NOW()
		WHERE id = $6 AND status = $7
	`

	tag, err := q.Exec(ctx, query,
		upd.ToStatus, upd.ApprovedBy, upd.ApprovedAt, upd.RejectionReason, upd.CompletedAt,
		upd.ID, upd.FromStatus,
	)
	if err != nil {
		return false, fmt.Errorf("failed to update transfer %s status: %w", upd.ID, err)
	}

	return tag.RowsAffected() > 0, nil
}
