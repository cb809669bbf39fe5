package transfer

import (
	"time"

	"github.com/peopledesk/hr-backend-go/internal/pkg/validator"
)

type SubmitTransferRequest struct {
	EmployeeID    string `json:"employee_id"`
	ToBranchID    string `json:"to_branch_id"`
	EffectiveDate string `json:"effective_date"`
	Reason        string `json:"reason"`
}

func (r *SubmitTransferRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if validator.IsEmpty(r.ToBranchID) {
		errs = append(errs, validator.ValidationError{
			Field:   "to_branch_id",
			Message: "to_branch_id is required",
		})
	}

	if _, ok := validator.IsValidDate(r.EffectiveDate); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "effective_date",
			Message: "effective_date must be a valid date (YYYY-MM-DD)",
		})
	}

	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{
			Field:   "reason",
			Message: "reason is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type RejectTransferRequest struct {
	TransferID string `json:"-"`
	Reason     string `json:"rejection_reason"`
}

func (r *RejectTransferRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.TransferID) {
		errs = append(errs, validator.ValidationError{
			Field:   "transfer_id",
			Message: "transfer_id is required",
		})
	}

	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{
			Field:   "rejection_reason",
			Message: "rejection_reason is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ListFilter struct {
	EmployeeID *string
	Status     *string
	Page       int
	Limit      int
}

func (f *ListFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Status != nil && !validator.IsInSlice(*f.Status, []string{
		string(StatusPending), string(StatusApproved), string(StatusRejected),
		string(StatusCancelled), string(StatusCompleted),
	}) {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be one of pending, approved, rejected, cancelled, completed",
		})
	}

	if f.Page <= 0 {
		f.Page = 1
	}
	if f.Limit <= 0 || f.Limit > 100 {
		f.Limit = 20
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type TransferResponse struct {
	ID              string     `json:"id"`
	EmployeeID      string     `json:"employee_id"`
	EmployeeName    string     `json:"employee_name,omitempty"`
	FromBranchID    string     `json:"from_branch_id"`
	FromBranchName  string     `json:"from_branch_name,omitempty"`
	ToBranchID      string     `json:"to_branch_id"`
	ToBranchName    string     `json:"to_branch_name,omitempty"`
	EffectiveDate   time.Time  `json:"effective_date"`
	Reason          string     `json:"reason"`
	Status          string     `json:"status"`
	RequestedAt     time.Time  `json:"requested_at"`
	ApprovedBy      *string    `json:"approved_by,omitempty"`
	ApprovedAt      *time.Time `json:"approved_at,omitempty"`
	RejectionReason *string    `json:"rejection_reason,omitempty"`
	CompletedAt     *time.Time `json:"completed_at,omitempty"`
}

func ToResponse(t TransferRequest) TransferResponse {
	resp := TransferResponse{
		ID:              t.ID,
		EmployeeID:      t.EmployeeID,
		FromBranchID:    t.FromBranchID,
		ToBranchID:      t.ToBranchID,
		EffectiveDate:   t.EffectiveDate,
		Reason:          t.Reason,
		Status:          string(t.Status),
		RequestedAt:     t.RequestedAt,
		ApprovedBy:      t.ApprovedBy,
		ApprovedAt:      t.ApprovedAt,
		RejectionReason: t.RejectionReason,
		CompletedAt:     t.CompletedAt,
	}
	if t.EmployeeName != nil {
		resp.EmployeeName = *t.EmployeeName
	}
	if t.FromBranchName != nil {
		resp.FromBranchName = *t.FromBranchName
	}
	if t.ToBranchName != nil {
		resp.ToBranchName = *t.ToBranchName
	}
	return resp
}
