package leave

import "context"

type LeaveService interface {
	// Types
	CreateLeaveType(ctx context.Context, req CreateLeaveTypeRequest) (LeaveType, error)
	UpdateLeaveType(ctx context.Context, req UpdateLeaveTypeRequest) error
	GetLeaveType(ctx context.Context, id string) (LeaveType, error)
	ListLeaveTypes(ctx context.Context) ([]LeaveType, error)
	DeleteLeaveType(ctx context.Context, id string) error

	// Balances
	Allocate(ctx context.Context, req AllocateBalanceRequest) (BalanceResponse, error)
	BulkAllocate(ctx context.Context, req BulkAllocateRequest) ([]BalanceResponse, error)
	RolloverYear(ctx context.Context, req RolloverRequest) (int, error)
	GetEmployeeBalances(ctx context.Context, employeeID string, year int) ([]BalanceResponse, error)
	ListBalances(ctx context.Context, year int) ([]BalanceResponse, error)

	// Applications
	Submit(ctx context.Context, req SubmitApplicationRequest, caps Capabilities) (ApplicationResponse, error)
	Approve(ctx context.Context, applicationID, approverID, comment string, caps Capabilities) error
	Reject(ctx context.Context, req RejectApplicationRequest, approverID string, caps Capabilities) error
	Cancel(ctx context.Context, applicationID, actorID string, caps Capabilities) error
	GetApplication(ctx context.Context, applicationID, actorID string, caps Capabilities) (ApplicationResponse, error)
	ListApplications(ctx context.Context, filter ApplicationFilter) (ListApplicationsResponse, error)
	ListMyApplications(ctx context.Context, employeeID string, filter ApplicationFilter) (ListApplicationsResponse, error)
	ApprovalHistory(ctx context.Context, applicationID string) ([]ApprovalResponse, error)
}
