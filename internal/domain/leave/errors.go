package leave

import (
	"errors"
	"fmt"
)

var (
	ErrLeaveTypeNotFound    = errors.New("leave type not found")
	ErrLeaveTypeNameExists  = errors.New("leave type name already exists")
	ErrApplicationNotFound  = errors.New("leave application not found")
	ErrBalanceNotFound      = errors.New("leave balance not found")
	ErrAlreadyProcessed     = errors.New("leave application already processed")
	ErrInsufficientBalance  = errors.New("insufficient leave balance")
	ErrOverlappingLeave     = errors.New("overlapping leave application exists")
	ErrNotApplicationOwner  = errors.New("leave application belongs to another employee")
	ErrApprovalNotPermitted = errors.New("approval authority required")
)

// InsufficientBalanceError carries the requested and available day counts so
// the caller can see both sides of the shortfall. errors.Is matches it
// against ErrInsufficientBalance.
type InsufficientBalanceError struct {
	Requested int
	Available int
}

func (e *InsufficientBalanceError) Error() string {
	return fmt.Sprintf("insufficient leave balance: requested %d days, %d available", e.Requested, e.Available)
}

func (e *InsufficientBalanceError) Is(target error) bool {
	return target == ErrInsufficientBalance
}
