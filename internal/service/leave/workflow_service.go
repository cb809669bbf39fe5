package leave

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/peopledesk/hr-backend-go/internal/domain/leave"
	"github.com/peopledesk/hr-backend-go/internal/pkg/database"
	"github.com/peopledesk/hr-backend-go/internal/pkg/validator"
)

// WorkflowService runs the leave application state machine: submit,
// approve, reject, cancel. Every mutating path is one transaction; the
// balance deduction happens exactly once, on the pending to approved
// transition.
type WorkflowService struct {
	tx database.Transactor
	leave.LeaveTypeRepository
	leave.LeaveBalanceRepository
	leave.LeaveApplicationRepository
	leave.LeaveApprovalRepository
}

func NewWorkflowService(
	tx database.Transactor,
	leaveTypeRepository leave.LeaveTypeRepository,
	leaveBalanceRepository leave.LeaveBalanceRepository,
	leaveApplicationRepository leave.LeaveApplicationRepository,
	leaveApprovalRepository leave.LeaveApprovalRepository,
) *WorkflowService {
	return &WorkflowService{
		tx:                         tx,
		LeaveTypeRepository:        leaveTypeRepository,
		LeaveBalanceRepository:     leaveBalanceRepository,
		LeaveApplicationRepository: leaveApplicationRepository,
		LeaveApprovalRepository:    leaveApprovalRepository,
	}
}

// Submit validates and creates a leave application. With auto approve and
// approval authority, the approval effects run in the same transaction as
// the insert, so a failed deduction leaves no application behind.
func (s *WorkflowService) Submit(ctx context.Context, req leave.SubmitApplicationRequest, caps leave.Capabilities) (leave.LeaveApplication, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveApplication{}, err
	}

	leaveType, err := s.LeaveTypeRepository.GetByID(ctx, req.LeaveTypeID)
	if err != nil {
		return leave.LeaveApplication{}, err
	}

	start, end := req.Dates()

	if !caps.CanBackdate && start.Before(today()) {
		return leave.LeaveApplication{}, validator.ValidationErrors{{
			Field:   "start_date",
			Message: "start_date must not be in the past",
		}}
	}

	days := LeaveDays(start, end)

	overlap, err := s.LeaveApplicationRepository.HasOverlapping(ctx, req.EmployeeID, start, end)
	if err != nil {
		return leave.LeaveApplication{}, fmt.Errorf("failed to check overlapping applications: %w", err)
	}
	if overlap {
		return leave.LeaveApplication{}, leave.ErrOverlappingLeave
	}

	// Submitters without approval authority must have the days covered up
	// front. Privileged submitters defer the check to approval time.
	if !caps.CanApprove {
		available := 0
		balance, err := s.LeaveBalanceRepository.GetByEmployeeTypeYear(ctx, req.EmployeeID, leaveType.ID, start.Year())
		if err == nil {
			available = balance.Remaining()
		} else if err != leave.ErrBalanceNotFound {
			return leave.LeaveApplication{}, fmt.Errorf("failed to get leave balance: %w", err)
		}
		if days > available {
			return leave.LeaveApplication{}, &leave.InsufficientBalanceError{Requested: days, Available: available}
		}
	}

	application := leave.LeaveApplication{
		EmployeeID:    req.EmployeeID,
		LeaveTypeID:   leaveType.ID,
		StartDate:     start,
		EndDate:       end,
		Days:          days,
		Reason:        strings.TrimSpace(req.Reason),
		AttachmentURL: req.AttachmentURL,
		Status:        leave.StatusPending,
	}

	if req.AutoApprove && caps.CanApprove {
		err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
			created, err := s.LeaveApplicationRepository.Create(ctx, application)
			if err != nil {
				return err
			}
			if err := s.approveInTx(ctx, created, created.EmployeeID, nil); err != nil {
				return err
			}
			// Re-read so the caller gets the decision fields, not the
			// pending row the insert returned.
			approved, err := s.LeaveApplicationRepository.GetByID(ctx, created.ID)
			if err != nil {
				return err
			}
			application = approved
			return nil
		})
		if err != nil {
			return leave.LeaveApplication{}, err
		}
		return application, nil
	}

	created, err := s.LeaveApplicationRepository.Create(ctx, application)
	if err != nil {
		return leave.LeaveApplication{}, err
	}
	return created, nil
}

// Approve moves a pending application to approved and deducts its days
// from the matching balance, all in one transaction. A missing balance row
// aborts the approval even for privileged callers.
func (s *WorkflowService) Approve(ctx context.Context, applicationID, approverID string, comment *string, caps leave.Capabilities) error {
	if !caps.CanApprove {
		return leave.ErrApprovalNotPermitted
	}

	return s.tx.WithinTx(ctx, func(ctx context.Context) error {
		application, err := s.LeaveApplicationRepository.GetByID(ctx, applicationID)
		if err != nil {
			return err
		}
		if application.Status != leave.StatusPending {
			return leave.ErrAlreadyProcessed
		}
		return s.approveInTx(ctx, application, approverID, comment)
	})
}

// approveInTx applies the approval effects; the caller holds the
// transaction and has verified the application is pending.
func (s *WorkflowService) approveInTx(ctx context.Context, application leave.LeaveApplication, approverID string, comment *string) error {
	balance, err := s.LeaveBalanceRepository.GetForUpdate(ctx,
		application.EmployeeID, application.LeaveTypeID, application.StartDate.Year())
	if err != nil {
		return err
	}

	if err := s.LeaveBalanceRepository.AddUsedDays(ctx, balance.ID, application.Days); err != nil {
		return err
	}

	now := time.Now()
	changed, err := s.LeaveApplicationRepository.UpdateStatus(ctx, leave.StatusUpdate{
		ID:         application.ID,
		FromStatus: leave.StatusPending,
		ToStatus:   leave.StatusApproved,
		ApprovedBy: &approverID,
		ApprovedAt: &now,
	})
	if err != nil {
		return err
	}
	if !changed {
		return leave.ErrAlreadyProcessed
	}

	_, err = s.LeaveApprovalRepository.Append(ctx, leave.LeaveApproval{
		ApplicationID: application.ID,
		ApproverID:    approverID,
		Level:         1,
		Status:        leave.ApprovalStatusApproved,
		Comment:       comment,
	})
	return err
}

// Reject moves a pending application to rejected. Balances are never
// touched; nothing was deducted while pending.
func (s *WorkflowService) Reject(ctx context.Context, req leave.RejectApplicationRequest, approverID string, caps leave.Capabilities) error {
	if !caps.CanApprove {
		return leave.ErrApprovalNotPermitted
	}
	if err := req.Validate(); err != nil {
		return err
	}

	return s.tx.WithinTx(ctx, func(ctx context.Context) error {
		application, err := s.LeaveApplicationRepository.GetByID(ctx, req.ApplicationID)
		if err != nil {
			return err
		}
		if application.Status != leave.StatusPending {
			return leave.ErrAlreadyProcessed
		}

		now := time.Now()
		reason := req.Reason
		changed, err := s.LeaveApplicationRepository.UpdateStatus(ctx, leave.StatusUpdate{
			ID:              application.ID,
			FromStatus:      leave.StatusPending,
			ToStatus:        leave.StatusRejected,
			ApprovedBy:      &approverID,
			ApprovedAt:      &now,
			RejectionReason: &reason,
		})
		if err != nil {
			return err
		}
		if !changed {
			return leave.ErrAlreadyProcessed
		}

		var comment *string
		if req.Comment != "" {
			comment = &req.Comment
		}
		_, err = s.LeaveApprovalRepository.Append(ctx, leave.LeaveApproval{
			ApplicationID: application.ID,
			ApproverID:    approverID,
			Level:         1,
			Status:        leave.ApprovalStatusRejected,
			Comment:       comment,
		})
		return err
	})
}

// Cancel withdraws a pending application. Only the owner or a privileged
// caller may cancel, and only while pending; approved leave has no
// reversal path.
func (s *WorkflowService) Cancel(ctx context.Context, applicationID, actorID string, caps leave.Capabilities) error {
	application, err := s.LeaveApplicationRepository.GetByID(ctx, applicationID)
	if err != nil {
		return err
	}

	if application.EmployeeID != actorID && !caps.CanApprove {
		return leave.ErrNotApplicationOwner
	}
	if application.Status != leave.StatusPending {
		return leave.ErrAlreadyProcessed
	}

	now := time.Now()
	changed, err := s.LeaveApplicationRepository.UpdateStatus(ctx, leave.StatusUpdate{
		ID:          application.ID,
		FromStatus:  leave.StatusPending,
		ToStatus:    leave.StatusCancelled,
		CancelledBy: &actorID,
		CancelledAt: &now,
	})
	if err != nil {
		return err
	}
	if !changed {
		return leave.ErrAlreadyProcessed
	}
	return nil
}

func today() time.Time {
	return truncateToDay(time.Now())
}
