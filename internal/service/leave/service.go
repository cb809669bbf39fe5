package leave

import (
	"context"
	"fmt"

	"github.com/peopledesk/hr-backend-go/internal/domain/employee"
	"github.com/peopledesk/hr-backend-go/internal/domain/leave"
	"github.com/peopledesk/hr-backend-go/internal/pkg/database"
)

type LeaveServiceImpl struct {
	leave.LeaveTypeRepository
	leave.LeaveBalanceRepository
	leave.LeaveApplicationRepository
	leave.LeaveApprovalRepository
	balanceService  *BalanceService
	workflowService *WorkflowService
}

func NewLeaveService(
	tx database.Transactor,
	leaveTypeRepository leave.LeaveTypeRepository,
	leaveBalanceRepository leave.LeaveBalanceRepository,
	leaveApplicationRepository leave.LeaveApplicationRepository,
	leaveApprovalRepository leave.LeaveApprovalRepository,
	employeeRepository employee.EmployeeRepository,
) leave.LeaveService {
	return &LeaveServiceImpl{
		LeaveTypeRepository:        leaveTypeRepository,
		LeaveBalanceRepository:     leaveBalanceRepository,
		LeaveApplicationRepository: leaveApplicationRepository,
		LeaveApprovalRepository:    leaveApprovalRepository,
		balanceService: NewBalanceService(
			tx, leaveTypeRepository, leaveBalanceRepository, employeeRepository),
		workflowService: NewWorkflowService(
			tx, leaveTypeRepository, leaveBalanceRepository,
			leaveApplicationRepository, leaveApprovalRepository),
	}
}

// CreateLeaveType implements leave.LeaveService.
func (l *LeaveServiceImpl) CreateLeaveType(ctx context.Context, req leave.CreateLeaveTypeRequest) (leave.LeaveType, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveType{}, err
	}

	_, err := l.LeaveTypeRepository.GetByName(ctx, req.Name)
	if err == nil {
		return leave.LeaveType{}, leave.ErrLeaveTypeNameExists
	}
	if err != leave.ErrLeaveTypeNotFound {
		return leave.LeaveType{}, fmt.Errorf("failed to check leave type name: %w", err)
	}

	created, err := l.LeaveTypeRepository.Create(ctx, leave.LeaveType{
		Name:         req.Name,
		IsPaid:       req.IsPaid,
		DefaultDays:  req.DefaultDays,
		CarryForward: req.CarryForward,
	})
	if err != nil {
		return leave.LeaveType{}, fmt.Errorf("failed to create leave type: %w", err)
	}
	return created, nil
}

// UpdateLeaveType implements leave.LeaveService.
func (l *LeaveServiceImpl) UpdateLeaveType(ctx context.Context, req leave.UpdateLeaveTypeRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	if req.Name != nil {
		existing, err := l.LeaveTypeRepository.GetByName(ctx, *req.Name)
		if err == nil && existing.ID != req.ID {
			return leave.ErrLeaveTypeNameExists
		}
		if err != nil && err != leave.ErrLeaveTypeNotFound {
			return fmt.Errorf("failed to check leave type name: %w", err)
		}
	}

	return l.LeaveTypeRepository.Update(ctx, req)
}

// GetLeaveType implements leave.LeaveService.
func (l *LeaveServiceImpl) GetLeaveType(ctx context.Context, id string) (leave.LeaveType, error) {
	return l.LeaveTypeRepository.GetByID(ctx, id)
}

// ListLeaveTypes implements leave.LeaveService.
func (l *LeaveServiceImpl) ListLeaveTypes(ctx context.Context) ([]leave.LeaveType, error) {
	return l.LeaveTypeRepository.List(ctx)
}

// DeleteLeaveType implements leave.LeaveService.
func (l *LeaveServiceImpl) DeleteLeaveType(ctx context.Context, id string) error {
	return l.LeaveTypeRepository.Delete(ctx, id)
}

// Allocate implements leave.LeaveService.
func (l *LeaveServiceImpl) Allocate(ctx context.Context, req leave.AllocateBalanceRequest) (leave.BalanceResponse, error) {
	balance, err := l.balanceService.Allocate(ctx, req)
	if err != nil {
		return leave.BalanceResponse{}, err
	}
	return toBalanceResponse(balance), nil
}

// BulkAllocate implements leave.LeaveService.
func (l *LeaveServiceImpl) BulkAllocate(ctx context.Context, req leave.BulkAllocateRequest) ([]leave.BalanceResponse, error) {
	balances, err := l.balanceService.BulkAllocate(ctx, req)
	if err != nil {
		return nil, err
	}
	responses := make([]leave.BalanceResponse, 0, len(balances))
	for _, b := range balances {
		responses = append(responses, toBalanceResponse(b))
	}
	return responses, nil
}

// RolloverYear implements leave.LeaveService.
func (l *LeaveServiceImpl) RolloverYear(ctx context.Context, req leave.RolloverRequest) (int, error) {
	return l.balanceService.RolloverYear(ctx, req)
}

// GetEmployeeBalances implements leave.LeaveService.
func (l *LeaveServiceImpl) GetEmployeeBalances(ctx context.Context, employeeID string, year int) ([]leave.BalanceResponse, error) {
	balances, err := l.LeaveBalanceRepository.GetByEmployeeYear(ctx, employeeID, year)
	if err != nil {
		return nil, fmt.Errorf("failed to get balances for employee %s: %w", employeeID, err)
	}
	responses := make([]leave.BalanceResponse, 0, len(balances))
	for _, b := range balances {
		responses = append(responses, toBalanceResponse(b))
	}
	return responses, nil
}

// ListBalances implements leave.LeaveService.
func (l *LeaveServiceImpl) ListBalances(ctx context.Context, year int) ([]leave.BalanceResponse, error) {
	balances, err := l.LeaveBalanceRepository.ListByYear(ctx, year)
	if err != nil {
		return nil, fmt.Errorf("failed to list balances for year %d: %w", year, err)
	}
	responses := make([]leave.BalanceResponse, 0, len(balances))
	for _, b := range balances {
		responses = append(responses, toBalanceResponse(b))
	}
	return responses, nil
}

// Submit implements leave.LeaveService.
func (l *LeaveServiceImpl) Submit(ctx context.Context, req leave.SubmitApplicationRequest, caps leave.Capabilities) (leave.ApplicationResponse, error) {
	application, err := l.workflowService.Submit(ctx, req, caps)
	if err != nil {
		return leave.ApplicationResponse{}, err
	}
	return toApplicationResponse(application), nil
}

// Approve implements leave.LeaveService.
func (l *LeaveServiceImpl) Approve(ctx context.Context, applicationID, approverID, comment string, caps leave.Capabilities) error {
	var commentPtr *string
	if comment != "" {
		commentPtr = &comment
	}
	return l.workflowService.Approve(ctx, applicationID, approverID, commentPtr, caps)
}

// Reject implements leave.LeaveService.
func (l *LeaveServiceImpl) Reject(ctx context.Context, req leave.RejectApplicationRequest, approverID string, caps leave.Capabilities) error {
	return l.workflowService.Reject(ctx, req, approverID, caps)
}

// Cancel implements leave.LeaveService.
func (l *LeaveServiceImpl) Cancel(ctx context.Context, applicationID, actorID string, caps leave.Capabilities) error {
	return l.workflowService.Cancel(ctx, applicationID, actorID, caps)
}

// GetApplication implements leave.LeaveService. Staff can only read their
// own applications; approvers can read any.
func (l *LeaveServiceImpl) GetApplication(ctx context.Context, applicationID, actorID string, caps leave.Capabilities) (leave.ApplicationResponse, error) {
	application, err := l.LeaveApplicationRepository.GetByID(ctx, applicationID)
	if err != nil {
		return leave.ApplicationResponse{}, err
	}
	if application.EmployeeID != actorID && !caps.CanApprove {
		return leave.ApplicationResponse{}, leave.ErrNotApplicationOwner
	}
	return toApplicationResponse(application), nil
}

// ListApplications implements leave.LeaveService.
func (l *LeaveServiceImpl) ListApplications(ctx context.Context, filter leave.ApplicationFilter) (leave.ListApplicationsResponse, error) {
	if err := filter.Validate(); err != nil {
		return leave.ListApplicationsResponse{}, err
	}
	applications, total, err := l.LeaveApplicationRepository.List(ctx, filter)
	if err != nil {
		return leave.ListApplicationsResponse{}, fmt.Errorf("failed to list applications: %w", err)
	}
	return toListResponse(applications, total, filter), nil
}

// ListMyApplications implements leave.LeaveService.
func (l *LeaveServiceImpl) ListMyApplications(ctx context.Context, employeeID string, filter leave.ApplicationFilter) (leave.ListApplicationsResponse, error) {
	if err := filter.Validate(); err != nil {
		return leave.ListApplicationsResponse{}, err
	}
	applications, total, err := l.LeaveApplicationRepository.ListByEmployee(ctx, employeeID, filter)
	if err != nil {
		return leave.ListApplicationsResponse{}, fmt.Errorf("failed to list applications: %w", err)
	}
	return toListResponse(applications, total, filter), nil
}

// ApprovalHistory implements leave.LeaveService.
func (l *LeaveServiceImpl) ApprovalHistory(ctx context.Context, applicationID string) ([]leave.ApprovalResponse, error) {
	if _, err := l.LeaveApplicationRepository.GetByID(ctx, applicationID); err != nil {
		return nil, err
	}
	approvals, err := l.LeaveApprovalRepository.ListByApplication(ctx, applicationID)
	if err != nil {
		return nil, fmt.Errorf("failed to list approvals: %w", err)
	}

	responses := make([]leave.ApprovalResponse, 0, len(approvals))
	for _, a := range approvals {
		resp := leave.ApprovalResponse{
			ID:         a.ID,
			ApproverID: a.ApproverID,
			Level:      a.Level,
			Status:     string(a.Status),
			Comment:    a.Comment,
			DecidedAt:  a.DecidedAt,
		}
		if a.ApproverName != nil {
			resp.ApproverName = *a.ApproverName
		}
		responses = append(responses, resp)
	}
	return responses, nil
}

func toApplicationResponse(a leave.LeaveApplication) leave.ApplicationResponse {
	resp := leave.ApplicationResponse{
		ID:              a.ID,
		EmployeeID:      a.EmployeeID,
		LeaveTypeID:     a.LeaveTypeID,
		StartDate:       a.StartDate,
		EndDate:         a.EndDate,
		Days:            a.Days,
		Reason:          a.Reason,
		AttachmentURL:   a.AttachmentURL,
		Status:          string(a.Status),
		AppliedAt:       a.AppliedAt,
		ApprovedBy:      a.ApprovedBy,
		ApprovedAt:      a.ApprovedAt,
		RejectionReason: a.RejectionReason,
	}
	if a.EmployeeName != nil {
		resp.EmployeeName = *a.EmployeeName
	}
	if a.LeaveTypeName != nil {
		resp.LeaveTypeName = *a.LeaveTypeName
	}
	return resp
}

func toListResponse(applications []leave.LeaveApplication, total int64, filter leave.ApplicationFilter) leave.ListApplicationsResponse {
	responses := make([]leave.ApplicationResponse, 0, len(applications))
	for _, a := range applications {
		responses = append(responses, toApplicationResponse(a))
	}
	return leave.ListApplicationsResponse{
		TotalCount:   total,
		Page:         filter.Page,
		Limit:        filter.Limit,
		Applications: responses,
	}
}

func toBalanceResponse(b leave.LeaveBalance) leave.BalanceResponse {
	resp := leave.BalanceResponse{
		ID:            b.ID,
		EmployeeID:    b.EmployeeID,
		LeaveTypeID:   b.LeaveTypeID,
		Year:          b.Year,
		AllocatedDays: b.AllocatedDays,
		UsedDays:      b.UsedDays,
		RemainingDays: b.Remaining(),
	}
	if b.EmployeeName != nil {
		resp.EmployeeName = *b.EmployeeName
	}
	if b.LeaveTypeName != nil {
		resp.LeaveTypeName = *b.LeaveTypeName
	}
	return resp
}
