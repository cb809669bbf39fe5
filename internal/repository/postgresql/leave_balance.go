package postgresql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/peopledesk/hr-backend-go/internal/domain/leave"
	"github.com/peopledesk/hr-backend-go/internal/pkg/database"
)

type leaveBalanceRepositoryImpl struct {
	db *database.DB
}

func NewLeaveBalanceRepository(db *database.DB) leave.LeaveBalanceRepository {
	return &leaveBalanceRepositoryImpl{db: db}
}

const leaveBalanceColumns = `
	lb.id, lb.employee_id, lb.leave_type_id, lb.year,
	lb.allocated_days, lb.used_days, lb.created_at, lb.updated_at,
	lt.name AS leave_type_name, e.full_name AS employee_name
`

func scanLeaveBalance(row pgx.Row) (leave.LeaveBalance, error) {
	var b leave.LeaveBalance
	err := row.Scan(
		&b.ID, &b.EmployeeID, &b.LeaveTypeID, &b.Year,
		&b.AllocatedDays, &b.UsedDays, &b.CreatedAt, &b.UpdatedAt,
		&b.LeaveTypeName, &b.EmployeeName,
	)
	return b, err
}

// Upsert implements leave.LeaveBalanceRepository. Allocating for an
// employee/type/year pair that already has a row overwrites the
// allocation in place.
func (r *leaveBalanceRepositoryImpl) Upsert(ctx context.Context, balance leave.LeaveBalance) (leave.LeaveBalance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO leave_balances (
			id, employee_id, leave_type_id, year, allocated_days, used_days, created_at, updated_at
		) VALUES (
			uuidv7(), $1, $2, $3, $4, $5, NOW(), NOW()
		)
		ON CONFLICT (employee_id, leave_type_id, year) DO UPDATE SET
			allocated_days = EXCLUDED.allocated_days,
			used_days = EXCLUDED.used_days,
			updated_at = NOW()
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		balance.EmployeeID, balance.LeaveTypeID, balance.Year,
		balance.AllocatedDays, balance.UsedDays,
	).Scan(&balance.ID, &balance.CreatedAt, &balance.UpdatedAt)
	if err != nil {
		return leave.LeaveBalance{}, fmt.Errorf("failed to upsert leave balance: %w", err)
	}

	return balance, nil
}

// GetByID implements leave.LeaveBalanceRepository.
func (r *leaveBalanceRepositoryImpl) GetByID(ctx context.Context, id string) (leave.LeaveBalance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + leaveBalanceColumns + `
		FROM leave_balances lb
		JOIN leave_types lt ON lt.id = lb.leave_type_id
		JOIN employees e ON e.id = lb.employee_id
		WHERE lb.id = $1
	`

	b, err := scanLeaveBalance(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return leave.LeaveBalance{}, leave.ErrBalanceNotFound
		}
		return leave.LeaveBalance{}, err
	}
	return b, nil
}

// GetByEmployeeTypeYear implements leave.LeaveBalanceRepository.
func (r *leaveBalanceRepositoryImpl) GetByEmployeeTypeYear(ctx context.Context, employeeID, leaveTypeID string, year int) (leave.LeaveBalance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + leaveBalanceColumns + `
		FROM leave_balances lb
		JOIN leave_types lt ON lt.id = lb.leave_type_id
		JOIN employees e ON e.id = lb.employee_id
		WHERE lb.employee_id = $1 AND lb.leave_type_id = $2 AND lb.year = $3
	`

	b, err := scanLeaveBalance(q.QueryRow(ctx, query, employeeID, leaveTypeID, year))
	if err != nil {
		if err == pgx.ErrNoRows {
			return leave.LeaveBalance{}, leave.ErrBalanceNotFound
		}
		return leave.LeaveBalance{}, err
	}
	return b, nil
}

// GetForUpdate implements leave.LeaveBalanceRepository. Takes a row
// write lock so concurrent approvals against the same balance serialize.
// Must be called inside a transaction.
func (r *leaveBalanceRepositoryImpl) GetForUpdate(ctx context.Context, employeeID, leaveTypeID string, year int) (leave.LeaveBalance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, leave_type_id, year, allocated_days, used_days, created_at, updated_at
		FROM leave_balances
		WHERE employee_id = $1 AND leave_type_id = $2 AND year = $3
		FOR UPDATE
	`

	var b leave.LeaveBalance
	err := q.QueryRow(ctx, query, employeeID, leaveTypeID, year).Scan(
		&b.ID, &b.EmployeeID, &b.LeaveTypeID, &b.Year,
		&b.AllocatedDays, &b.UsedDays, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return leave.LeaveBalance{}, leave.ErrBalanceNotFound
		}
		return leave.LeaveBalance{}, err
	}
	return b, nil
}

// GetByEmployeeYear implements leave.LeaveBalanceRepository.
func (r *leaveBalanceRepositoryImpl) GetByEmployeeYear(ctx context.Context, employeeID string, year int) ([]leave.LeaveBalance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + leaveBalanceColumns + `
		FROM leave_balances lb
		JOIN leave_types lt ON lt.id = lb.leave_type_id
		JOIN employees e ON e.id = lb.employee_id
		WHERE lb.employee_id = $1 AND lb.year = $2
		ORDER BY lt.name
	`

	rows, err := q.Query(ctx, query, employeeID, year)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	balances := make([]leave.LeaveBalance, 0)
	for rows.Next() {
		b, err := scanLeaveBalance(rows)
		if err != nil {
			return nil, err
		}
		balances = append(balances, b)
	}
	return balances, rows.Err()
}

// ListByYear implements leave.LeaveBalanceRepository.
func (r *leaveBalanceRepositoryImpl) ListByYear(ctx context.Context, year int) ([]leave.LeaveBalance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + leaveBalanceColumns + `
		FROM leave_balances lb
		JOIN leave_types lt ON lt.id = lb.leave_type_id
		JOIN employees e ON e.id = lb.employee_id
		WHERE lb.year = $1
		ORDER BY e.full_name, lt.name
	`

	rows, err := q.Query(ctx, query, year)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	balances := make([]leave.LeaveBalance, 0)
	for rows.Next() {
		b, err := scanLeaveBalance(rows)
		if err != nil {
			return nil, err
		}
		balances = append(balances, b)
	}
	return balances, rows.Err()
}

// AddUsedDays implements leave.LeaveBalanceRepository. The guard
// clause refuses to push used_days past allocated_days so a stale
// balance read can never overdraw.
func (r *leaveBalanceRepositoryImpl) AddUsedDays(ctx context.Context, id string, days int) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE leave_balances
		SET used_days = used_days + $1, updated_at = NOW()
		WHERE id = $2 AND used_days + $1 <= allocated_days
	`

	tag, err := q.Exec(ctx, query, days, id)
	if err != nil {
		return fmt.Errorf("failed to add used days to balance %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return leave.ErrInsufficientBalance
	}
	return nil
}
