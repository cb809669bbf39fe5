package transfer

import "time"

type TransferStatus string

const (
	StatusPending   TransferStatus = "pending"
	StatusApproved  TransferStatus = "approved"
	StatusRejected  TransferStatus = "rejected"
	StatusCancelled TransferStatus = "cancelled"
	StatusCompleted TransferStatus = "completed"
)

// Terminal reports whether no further transition exists. Unlike leave,
// approved transfers are not terminal: completion still applies the move.
func (s TransferStatus) Terminal() bool {
	return s == StatusRejected || s == StatusCancelled || s == StatusCompleted
}

// TransferRequest moves an employee between branches. The employee row only
// changes when the request completes.
type TransferRequest struct {
	ID            string
	EmployeeID    string
	FromBranchID  string
	ToBranchID    string
	EffectiveDate time.Time
	Reason        string

	Status          TransferStatus
	ApprovedBy      *string
	ApprovedAt      *time.Time
	RejectionReason *string
	CompletedAt     *time.Time

	RequestedAt time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time

	EmployeeName   *string
	FromBranchName *string
	ToBranchName   *string
}
