package postgresql

import (
	"context"
	"fmt"

	"github.com/peopledesk/hr-backend-go/internal/domain/leave"
	"github.com/peopledesk/hr-backend-go/internal/pkg/database"
)

type leaveApprovalRepositoryImpl struct {
	db *database.DB
}

func NewLeaveApprovalRepository(db *database.DB) leave.LeaveApprovalRepository {
	return &leaveApprovalRepositoryImpl{db: db}
}

// Append implements leave.LeaveApprovalRepository. The log is insert
// only; there is no update or delete path.
func (r *leaveApprovalRepositoryImpl) Append(ctx context.Context, approval leave.LeaveApproval) (leave.LeaveApproval, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO leave_approvals (
			id, application_id, approver_id, level, status, comment, decided_at
		) VALUES (
			uuidv7(), $1, $2, $3, $4, $5, NOW()
		) RETURNING id, decided_at
	`

	err := q.QueryRow(ctx, query,
		approval.ApplicationID, approval.ApproverID, approval.Level,
		approval.Status, approval.Comment,
	).Scan(&approval.ID, &approval.DecidedAt)
	if err != nil {
		return leave.LeaveApproval{}, fmt.Errorf("failed to append leave approval: %w", err)
	}

	return approval, nil
}

// ListByApplication implements leave.LeaveApprovalRepository.
func (r *leaveApprovalRepositoryImpl) ListByApplication(ctx context.Context, applicationID string) ([]leave.LeaveApproval, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT a.id, a.application_id, a.approver_id, a.level, a.status, a.comment, a.decided_at,
			e.full_name AS approver_name
		FROM leave_approvals a
		JOIN employees e ON e.id = a.approver_id
		WHERE a.application_id = $1
		ORDER BY a.decided_at
	`

	rows, err := q.Query(ctx, query, applicationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	approvals := make([]leave.LeaveApproval, 0)
	for rows.Next() {
		var a leave.LeaveApproval
		if err := rows.Scan(
			&a.ID, &a.ApplicationID, &a.ApproverID, &a.Level, &a.Status, &a.Comment, &a.DecidedAt,
			&a.ApproverName,
		); err != nil {
			return nil, err
		}
		approvals = append(approvals, a)
	}

	return approvals, rows.Err()
}
