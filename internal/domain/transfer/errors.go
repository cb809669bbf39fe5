package transfer

import "errors"

var (
	ErrTransferNotFound  = errors.New("transfer request not found")
	ErrAlreadyProcessed  = errors.New("transfer request already processed")
	ErrNotApproved       = errors.New("transfer request is not approved")
	ErrSameBranch        = errors.New("target branch equals current branch")
	ErrNotTransferOwner  = errors.New("transfer request belongs to another employee")
	ErrApprovalForbidden = errors.New("approval authority required")
)
