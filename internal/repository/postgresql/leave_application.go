package postgresql

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/peopledesk/hr-backend-go/internal/domain/leave"
	"github.com/peopledesk/hr-backend-go/internal/pkg/database"
)

type leaveApplicationRepositoryImpl struct {
	db *database.DB
}

func NewLeaveApplicationRepository(db *database.DB) leave.LeaveApplicationRepository {
	return &leaveApplicationRepositoryImpl{db: db}
}

const leaveApplicationColumns = `
	la.id, la.employee_id, la.leave_type_id,
	la.start_date, la.end_date, la.days,
	la.reason, la.attachment_url,
	la.status, la.approved_by, la.approved_at, la.rejection_reason,
	la.cancelled_by, la.cancelled_at,
	la.applied_at, la.created_at, la.updated_at,
	lt.name AS leave_type_name, e.full_name AS employee_name
`

func scanLeaveApplication(row pgx.Row) (leave.LeaveApplication, error) {
	var a leave.LeaveApplication
	err := row.Scan(
		&a.ID, &a.EmployeeID, &a.LeaveTypeID,
		&a.StartDate, &a.EndDate, &a.Days,
		&a.Reason, &a.AttachmentURL,
		&a.Status, &a.ApprovedBy, &a.ApprovedAt, &a.RejectionReason,
		&a.CancelledBy, &a.CancelledAt,
		&a.AppliedAt, &a.CreatedAt, &a.UpdatedAt,
		&a.LeaveTypeName, &a.EmployeeName,
	)
	return a, err
}

// Create implements leave.LeaveApplicationRepository.
func (r *leaveApplicationRepositoryImpl) Create(ctx context.Context, application leave.LeaveApplication) (leave.LeaveApplication, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO leave_applications (
			id, employee_id, leave_type_id,
			start_date, end_date, days,
			reason, attachment_url, status,
			applied_at, created_at, updated_at
		) VALUES (
			uuidv7(), $1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW(), NOW()
		) RETURNING id, applied_at, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		application.EmployeeID, application.LeaveTypeID,
		application.StartDate, application.EndDate, application.Days,
		application.Reason, application.AttachmentURL, application.Status,
	).Scan(&application.ID, &application.AppliedAt, &application.CreatedAt, &application.UpdatedAt)
	if err != nil {
		return leave.LeaveApplication{}, fmt.Errorf("failed to create leave application: %w", err)
	}

	return application, nil
}

// GetByID implements leave.LeaveApplicationRepository.
func (r *leaveApplicationRepositoryImpl) GetByID(ctx context.Context, id string) (leave.LeaveApplication, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + leaveApplicationColumns + `
		FROM leave_applications la
		JOIN leave_types lt ON lt.id = la.leave_type_id
		JOIN employees e ON e.id = la.employee_id
		WHERE la.id = $1
	`

	a, err := scanLeaveApplication(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return leave.LeaveApplication{}, leave.ErrApplicationNotFound
		}
		return leave.LeaveApplication{}, err
	}
	return a, nil
}

// ListByEmployee implements leave.LeaveApplicationRepository.
func (r *leaveApplicationRepositoryImpl) ListByEmployee(ctx context.Context, employeeID string, filter leave.ApplicationFilter) ([]leave.LeaveApplication, int64, error) {
	conditions := []string{"la.employee_id = $1"}
	args := []interface{}{employeeID}
	return r.list(ctx, filter, conditions, args)
}

// List implements leave.LeaveApplicationRepository.
func (r *leaveApplicationRepositoryImpl) List(ctx context.Context, filter leave.ApplicationFilter) ([]leave.LeaveApplication, int64, error) {
	return r.list(ctx, filter, nil, nil)
}

func (r *leaveApplicationRepositoryImpl) list(ctx context.Context, filter leave.ApplicationFilter, conditions []string, args []interface{}) ([]leave.LeaveApplication, int64, error) {
	q := GetQuerier(ctx, r.db)

	if filter.LeaveTypeID != nil {
		args = append(args, *filter.LeaveTypeID)
		conditions = append(conditions, fmt.Sprintf("la.leave_type_id = $%d", len(args)))
	}
	if filter.Status != nil {
		args = append(args, *filter.Status)
		conditions = append(conditions, fmt.Sprintf("la.status = $%d", len(args)))
	}
	if filter.StartDate != nil {
		args = append(args, *filter.StartDate)
		conditions = append(conditions, fmt.Sprintf("la.end_date >= $%d", len(args)))
	}
	if filter.EndDate != nil {
		args = append(args, *filter.EndDate)
		conditions = append(conditions, fmt.Sprintf("la.start_date <= $%d", len(args)))
	}

	where := ""
	if len(conditions) > 0 {
		where = " WHERE " + strings.Join(conditions, " AND ")
	}

	countQuery := `SELECT COUNT(*) FROM leave_applications la` + where
	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count leave applications: %w", err)
	}

	offset := (filter.Page - 1) * filter.Limit
	args = append(args, filter.Limit, offset)
	query := `
		SELECT ` + leaveApplicationColumns + `
		FROM leave_applications la
		JOIN leave_types lt ON lt.id = la.leave_type_id
		JOIN employees e ON e.id = la.employee_id` + where +
		fmt.Sprintf(" ORDER BY la.applied_at DESC LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list leave applications: %w", err)
	}
	defer rows.Close()

	applications := make([]leave.LeaveApplication, 0)
	for rows.Next() {
		a, err := scanLeaveApplication(rows)
		if err != nil {
			return nil, 0, err
		}
		applications = append(applications, a)
	}

	return applications, total, rows.Err()
}

// UpdateStatus implements leave.LeaveApplicationRepository. The prior
// status guard in the WHERE clause is what makes each transition fire
// at most once under concurrent decisions.
func (r *leaveApplicationRepositoryImpl) UpdateStatus(ctx context.Context, upd leave.StatusUpdate) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE leave_applications
		SET status = $1,
			approved_by = COALESCE($2, approved_by),
			approved_at = COALESCE($3, approved_at),
			rejection_reason = COALESCE($4, rejection_reason),
			cancelled_by = COALESCE($5, cancelled_by),
			cancelled_at = COALESCE($6, cancelled_at),
			updated_at = NOW()
		WHERE id = $7 AND status = $8
	`

	tag, err := q.Exec(ctx, query,
		upd.ToStatus, upd.ApprovedBy, upd.ApprovedAt, upd.RejectionReason,
		upd.CancelledBy, upd.CancelledAt,
		upd.ID, upd.FromStatus,
	)
	if err != nil {
		return false, fmt.Errorf("failed to update application %s status: %w", upd.ID, err)
	}

	return tag.RowsAffected() > 0, nil
}

// HasOverlapping implements leave.LeaveApplicationRepository. Only
// pending and approved applications block; rejected and cancelled
// ones free their dates.
func (r *leaveApplicationRepositoryImpl) HasOverlapping(ctx context.Context, employeeID string, start, end time.Time) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT EXISTS (
			SELECT 1 FROM leave_applications
			WHERE employee_id = $1
			  AND status IN ('pending', 'approved')
			  AND start_date <= $3
			  AND end_date >= $2
		)
	`

	var exists bool
	if err := q.QueryRow(ctx, query, employeeID, start, end).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}
