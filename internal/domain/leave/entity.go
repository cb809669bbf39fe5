package leave

import "time"

// LeaveType is static reference data describing one category of leave.
type LeaveType struct {
	ID           string
	Name         string
	IsPaid       bool
	DefaultDays  int
	CarryForward bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// LeaveBalance holds the day counters for one employee, one leave type, one
// calendar year. At most one row exists per (employee, leave type, year).
// The remaining count is always derived, never stored.
type LeaveBalance struct {
	ID            string
	EmployeeID    string
	LeaveTypeID   string
	Year          int
	AllocatedDays int
	UsedDays      int
	CreatedAt     time.Time
	UpdatedAt     time.Time

	// Joined for responses
	LeaveTypeName *string
	EmployeeName  *string
}

// Remaining returns allocated minus used, clamped at zero. The clamp is a
// display guard only; validation keeps used from exceeding allocated.
func (b LeaveBalance) Remaining() int {
	remaining := b.AllocatedDays - b.UsedDays
	if remaining < 0 {
		return 0
	}
	return remaining
}

type ApplicationStatus string

const (
	StatusPending   ApplicationStatus = "pending"
	StatusApproved  ApplicationStatus = "approved"
	StatusRejected  ApplicationStatus = "rejected"
	StatusCancelled ApplicationStatus = "cancelled"
)

// Terminal reports whether the status admits no further transitions.
// Approval is final for leave; there is no completed/reversal stage.
func (s ApplicationStatus) Terminal() bool {
	return s != StatusPending
}

// LeaveApplication is one leave request. Days is the inclusive calendar-day
// count of [StartDate, EndDate]; a single-day leave has Days == 1.
type LeaveApplication struct {
	ID          string
	EmployeeID  string
	LeaveTypeID string

	StartDate time.Time
	EndDate   time.Time
	Days      int

	Reason        string
	AttachmentURL *string

	Status          ApplicationStatus
	ApprovedBy      *string
	ApprovedAt      *time.Time
	RejectionReason *string
	CancelledBy     *string
	CancelledAt     *time.Time

	AppliedAt time.Time
	CreatedAt time.Time
	UpdatedAt time.Time

	// Joined for responses
	LeaveTypeName *string
	EmployeeName  *string
}

type ApprovalStatus string

const (
	ApprovalStatusApproved ApprovalStatus = "approved"
	ApprovalStatusRejected ApprovalStatus = "rejected"
)

// LeaveApproval is one row of the append-only decision log. Rows are never
// updated or deleted.
type LeaveApproval struct {
	ID            string
	ApplicationID string
	ApproverID    string
	Level         int
	Status        ApprovalStatus
	Comment       *string
	DecidedAt     time.Time

	ApproverName *string
}
