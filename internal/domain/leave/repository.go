package leave

import (
	"context"
	"time"
)

// LeaveTypeRepository - interface for the leave_types table
type LeaveTypeRepository interface {
	Create(ctx context.Context, leaveType LeaveType) (LeaveType, error)
	GetByID(ctx context.Context, id string) (LeaveType, error)
	GetByName(ctx context.Context, name string) (LeaveType, error)
	List(ctx context.Context) ([]LeaveType, error)
	Update(ctx context.Context, req UpdateLeaveTypeRequest) error
	Delete(ctx context.Context, id string) error
}

// LeaveBalanceRepository - interface for the leave_balances table
type LeaveBalanceRepository interface {
	// Upsert creates or overwrites the (employee, leave type, year) row.
	Upsert(ctx context.Context, balance LeaveBalance) (LeaveBalance, error)
	GetByID(ctx context.Context, id string) (LeaveBalance, error)
	GetByEmployeeTypeYear(ctx context.Context, employeeID, leaveTypeID string, year int) (LeaveBalance, error)
	// GetForUpdate is GetByEmployeeTypeYear with a row write lock; callers
	// must hold an open transaction.
	GetForUpdate(ctx context.Context, employeeID, leaveTypeID string, year int) (LeaveBalance, error)
	GetByEmployeeYear(ctx context.Context, employeeID string, year int) ([]LeaveBalance, error)
	ListByYear(ctx context.Context, year int) ([]LeaveBalance, error)
	AddUsedDays(ctx context.Context, id string, days int) error
}

// LeaveApplicationRepository - interface for the leave_applications table
type LeaveApplicationRepository interface {
	Create(ctx context.Context, application LeaveApplication) (LeaveApplication, error)
	GetByID(ctx context.Context, id string) (LeaveApplication, error)
	ListByEmployee(ctx context.Context, employeeID string, filter ApplicationFilter) ([]LeaveApplication, int64, error)
	List(ctx context.Context, filter ApplicationFilter) ([]LeaveApplication, int64, error)
	// UpdateStatus writes the decision fields; it only touches rows still in
	// the expected prior status and reports whether a row was changed.
	UpdateStatus(ctx context.Context, upd StatusUpdate) (bool, error)
	HasOverlapping(ctx context.Context, employeeID string, start, end time.Time) (bool, error)
}

// LeaveApprovalRepository - append-only interface for the leave_approvals log
type LeaveApprovalRepository interface {
	Append(ctx context.Context, approval LeaveApproval) (LeaveApproval, error)
	ListByApplication(ctx context.Context, applicationID string) ([]LeaveApproval, error)
}

// StatusUpdate carries a single state transition for an application.
type StatusUpdate struct {
	ID              string
	FromStatus      ApplicationStatus
	ToStatus        ApplicationStatus
	ApprovedBy      *string
	ApprovedAt      *time.Time
	RejectionReason *string
	CancelledBy     *string
	CancelledAt     *time.Time
}
