package response

import (
	"errors"
	"net/http"

	"github.com/peopledesk/hr-backend-go/internal/domain/attendance"
	"github.com/peopledesk/hr-backend-go/internal/domain/auth"
	"github.com/peopledesk/hr-backend-go/internal/domain/employee"
	"github.com/peopledesk/hr-backend-go/internal/domain/leave"
	"github.com/peopledesk/hr-backend-go/internal/domain/master/branch"
	"github.com/peopledesk/hr-backend-go/internal/domain/transfer"
	"github.com/peopledesk/hr-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	// Auth domain errors
	switch {
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid or expired token")

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrEmployeeCodeExists):
		Conflict(w, "Employee code already exists")
	case errors.Is(err, employee.ErrEmailExists):
		Conflict(w, "Email already registered")
	case errors.Is(err, employee.ErrEmployeeInactive):
		Forbidden(w, "Employee is deactivated")

	// Leave domain errors
	case errors.Is(err, leave.ErrLeaveTypeNotFound):
		NotFound(w, "Leave type not found")
	case errors.Is(err, leave.ErrLeaveTypeNameExists):
		Conflict(w, "Leave type name already exists")
	case errors.Is(err, leave.ErrApplicationNotFound):
		NotFound(w, "Leave application not found")
	case errors.Is(err, leave.ErrBalanceNotFound):
		Conflict(w, "No leave balance allocated for this leave type and year")
	case errors.Is(err, leave.ErrInsufficientBalance):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, leave.ErrOverlappingLeave):
		Conflict(w, "An overlapping leave application already exists")
	case errors.Is(err, leave.ErrAlreadyProcessed):
		Conflict(w, "Leave application already processed")
	case errors.Is(err, leave.ErrNotApplicationOwner):
		Forbidden(w, "Leave application belongs to another employee")
	case errors.Is(err, leave.ErrApprovalNotPermitted):
		Forbidden(w, "Approval authority required")

	// Attendance domain errors
	case errors.Is(err, attendance.ErrAlreadyClockedIn):
		Conflict(w, "Already clocked in today")
	case errors.Is(err, attendance.ErrNotClockedIn):
		Conflict(w, "No clock-in found for today")
	case errors.Is(err, attendance.ErrAlreadyClockedOut):
		Conflict(w, "Already clocked out today")
	case errors.Is(err, attendance.ErrRecordNotFound):
		NotFound(w, "Attendance record not found")

	// Transfer domain errors
	case errors.Is(err, transfer.ErrTransferNotFound):
		NotFound(w, "Transfer request not found")
	case errors.Is(err, transfer.ErrAlreadyProcessed):
		Conflict(w, "Transfer request already processed")
	case errors.Is(err, transfer.ErrNotApproved):
		Conflict(w, "Transfer request is not approved")
	case errors.Is(err, transfer.ErrSameBranch):
		BadRequest(w, "Target branch equals current branch", nil)
	case errors.Is(err, transfer.ErrNotTransferOwner):
		Forbidden(w, "Transfer request belongs to another employee")
	case errors.Is(err, transfer.ErrApprovalForbidden):
		Forbidden(w, "Approval authority required")

	// Master data errors
	case errors.Is(err, branch.ErrBranchNotFound):
		NotFound(w, "Branch not found")
	case errors.Is(err, branch.ErrBranchNameExists):
		Conflict(w, "Branch name already exists")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
