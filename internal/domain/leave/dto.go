package leave

import (
	"fmt"
	"time"

	"github.com/peopledesk/hr-backend-go/internal/pkg/validator"
)

type CreateLeaveTypeRequest struct {
	Name         string `json:"leave_type_name"`
	IsPaid       bool   `json:"is_paid"`
	DefaultDays  int    `json:"default_days"`
	CarryForward bool   `json:"carry_forward"`
}

func (r *CreateLeaveTypeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "leave_type_name",
			Message: "leave_type_name is required",
		})
	}
	if len(r.Name) > 255 {
		errs = append(errs, validator.ValidationError{
			Field:   "leave_type_name",
			Message: "leave_type_name must not exceed 255 characters",
		})
	}

	if r.DefaultDays < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "default_days",
			Message: "default_days must not be negative",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type UpdateLeaveTypeRequest struct {
	ID           string  `json:"-"`
	Name         *string `json:"leave_type_name,omitempty"`
	IsPaid       *bool   `json:"is_paid,omitempty"`
	DefaultDays  *int    `json:"default_days,omitempty"`
	CarryForward *bool   `json:"carry_forward,omitempty"`
}

func (r *UpdateLeaveTypeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "leave_type_id",
			Message: "leave_type_id is required",
		})
	}

	if r.Name != nil && validator.IsEmpty(*r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "leave_type_name",
			Message: "leave_type_name must not be empty",
		})
	}

	if r.DefaultDays != nil && *r.DefaultDays < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "default_days",
			Message: "default_days must not be negative",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// SubmitApplicationRequest carries one leave submission. EmployeeID and the
// capability set come from the authenticated context, never the body.
type SubmitApplicationRequest struct {
	EmployeeID    string  `json:"-"`
	LeaveTypeID   string  `json:"leave_type_id"`
	StartDate     string  `json:"start_date"`
	EndDate       string  `json:"end_date"`
	Reason        string  `json:"reason"`
	AttachmentURL *string `json:"-"`
	AutoApprove   bool    `json:"auto_approve,omitempty"`
}

// Validate applies the structural submission rules in order: leave type,
// dates present and ordered, reason present. Capability-dependent rules
// (backdating, balance coverage) belong to the workflow service.
func (r *SubmitApplicationRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.LeaveTypeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "leave_type_id",
			Message: "leave_type_id is required",
		})
	}

	start, startOK := validator.IsValidDate(r.StartDate)
	if !startOK {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date is required (YYYY-MM-DD)",
		})
	}

	end, endOK := validator.IsValidDate(r.EndDate)
	if !endOK {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date is required (YYYY-MM-DD)",
		})
	}

	if startOK && endOK && end.Before(start) {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must be on or after start_date",
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

// Dates returns the parsed date pair; Validate must have passed.
func (r *SubmitApplicationRequest) Dates() (start, end time.Time) {
	start, _ = validator.IsValidDate(r.StartDate)
	end, _ = validator.IsValidDate(r.EndDate)
	return start, end
}

type RejectApplicationRequest struct {
	ApplicationID string `json:"-"`
	Reason        string `json:"rejection_reason"`
	Comment       string `json:"comment,omitempty"`
}

func (r *RejectApplicationRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ApplicationID) {
		errs = append(errs, validator.ValidationError{
			Field:   "application_id",
			Message: "application_id is required",
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

type AllocateBalanceRequest struct {
	EmployeeID    string `json:"employee_id"`
	LeaveTypeID   string `json:"leave_type_id"`
	Year          int    `json:"year"`
	AllocatedDays int    `json:"allocated_days"`
	UsedDays      int    `json:"used_days"`
}

func (r *AllocateBalanceRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if validator.IsEmpty(r.LeaveTypeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "leave_type_id",
			Message: "leave_type_id is required",
		})
	}

	if r.Year <= 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "year",
			Message: "year must be a positive integer",
		})
	}

	if r.AllocatedDays < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "allocated_days",
			Message: "allocated_days must not be negative",
		})
	}

	if r.UsedDays < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "used_days",
			Message: "used_days must not be negative",
		})
	}

	if r.UsedDays > r.AllocatedDays {
		errs = append(errs, validator.ValidationError{
			Field:   "used_days",
			Message: "used_days must not exceed allocated_days",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type BulkAllocateRequest struct {
	EmployeeIDs   []string `json:"employee_ids"`
	LeaveTypeID   string   `json:"leave_type_id"`
	Year          int      `json:"year"`
	AllocatedDays int      `json:"allocated_days"`
}

func (r *BulkAllocateRequest) Validate() error {
	var errs validator.ValidationErrors

	if len(r.EmployeeIDs) == 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_ids",
			Message: "employee_ids must not be empty",
		})
	}
	for i, id := range r.EmployeeIDs {
		if validator.IsEmpty(id) {
			errs = append(errs, validator.ValidationError{
				Field:   fmt.Sprintf("employee_ids[%d]", i),
				Message: "employee id must not be empty",
			})
		}
	}

	if validator.IsEmpty(r.LeaveTypeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "leave_type_id",
			Message: "leave_type_id is required",
		})
	}

	if r.Year <= 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "year",
			Message: "year must be a positive integer",
		})
	}

	if r.AllocatedDays < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "allocated_days",
			Message: "allocated_days must not be negative",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type RolloverRequest struct {
	FromYear int `json:"from_year"`
	ToYear   int `json:"to_year"`
}

func (r *RolloverRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.FromYear <= 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "from_year",
			Message: "from_year must be a positive integer",
		})
	}

	if r.ToYear <= 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "to_year",
			Message: "to_year must be a positive integer",
		})
	}

	if r.FromYear > 0 && r.FromYear == r.ToYear {
		errs = append(errs, validator.ValidationError{
			Field:   "to_year",
			Message: "to_year must differ from from_year",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ApplicationFilter struct {
	LeaveTypeID *string
	Status      *string
	StartDate   *string
	EndDate     *string
	Page        int
	Limit       int
}

func (f *ApplicationFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Status != nil && !validator.IsInSlice(*f.Status, []string{
		string(StatusPending), string(StatusApproved), string(StatusRejected), string(StatusCancelled),
	}) {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be one of pending, approved, rejected, cancelled",
		})
	}

	if f.StartDate != nil {
		if _, ok := validator.IsValidDate(*f.StartDate); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "start_date",
				Message: "start_date must be a valid date (YYYY-MM-DD)",
			})
		}
	}

	if f.EndDate != nil {
		if _, ok := validator.IsValidDate(*f.EndDate); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "end_date",
				Message: "end_date must be a valid date (YYYY-MM-DD)",
			})
		}
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

type ApplicationResponse struct {
	ID              string     `json:"id"`
	EmployeeID      string     `json:"employee_id"`
	EmployeeName    string     `json:"employee_name,omitempty"`
	LeaveTypeID     string     `json:"leave_type_id"`
	LeaveTypeName   string     `json:"leave_type_name,omitempty"`
	StartDate       time.Time  `json:"start_date"`
	EndDate         time.Time  `json:"end_date"`
	Days            int        `json:"days"`
	Reason          string     `json:"reason"`
	AttachmentURL   *string    `json:"attachment_url,omitempty"`
	Status          string     `json:"status"`
	AppliedAt       time.Time  `json:"applied_at"`
	ApprovedBy      *string    `json:"approved_by,omitempty"`
	ApprovedAt      *time.Time `json:"approved_at,omitempty"`
	RejectionReason *string    `json:"rejection_reason,omitempty"`
}

type ListApplicationsResponse struct {
	TotalCount   int64                 `json:"total_count"`
	Page         int                   `json:"page"`
	Limit        int                   `json:"limit"`
	Applications []ApplicationResponse `json:"applications"`
}

type BalanceResponse struct {
	ID            string `json:"id"`
	EmployeeID    string `json:"employee_id"`
	EmployeeName  string `json:"employee_name,omitempty"`
	LeaveTypeID   string `json:"leave_type_id"`
	LeaveTypeName string `json:"leave_type_name,omitempty"`
	Year          int    `json:"year"`
	AllocatedDays int    `json:"allocated_days"`
	UsedDays      int    `json:"used_days"`
	RemainingDays int    `json:"remaining_days"`
}

type ApprovalResponse struct {
	ID           string    `json:"id"`
	ApproverID   string    `json:"approver_id"`
	ApproverName string    `json:"approver_name,omitempty"`
	Level        int       `json:"level"`
	Status       string    `json:"status"`
	Comment      *string   `json:"comment,omitempty"`
	DecidedAt    time.Time `json:"decided_at"`
}
