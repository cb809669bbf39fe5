package transfer

import (
	"context"
	"fmt"
	"time"

	"github.com/peopledesk/hr-backend-go/internal/domain/employee"
	"github.com/peopledesk/hr-backend-go/internal/domain/leave"
	"github.com/peopledesk/hr-backend-go/internal/domain/master/branch"
	"github.com/peopledesk/hr-backend-go/internal/domain/transfer"
	"github.com/peopledesk/hr-backend-go/internal/pkg/database"
	"github.com/peopledesk/hr-backend-go/internal/pkg/validator"
)

type TransferService interface {
	Submit(ctx context.Context, req transfer.SubmitTransferRequest) (transfer.TransferResponse, error)
	Approve(ctx context.Context, transferID, approverID string, caps leave.Capabilities) error
	Reject(ctx context.Context, req transfer.RejectTransferRequest, approverID string, caps leave.Capabilities) error
	Cancel(ctx context.Context, transferID, actorID string, caps leave.Capabilities) error
	Complete(ctx context.Context, transferID string, caps leave.Capabilities) error
	Get(ctx context.Context, transferID string) (transfer.TransferResponse, error)
	List(ctx context.Context, filter transfer.ListFilter) ([]transfer.TransferResponse, int64, error)
}

// TransferServiceImpl runs the transfer state machine. The guards mirror
// the leave workflow, with one extra stage: an approved transfer still
// has to complete, and completion is what moves the employee.
type TransferServiceImpl struct {
	tx database.Transactor
	transfer.TransferRepository
	employee.EmployeeRepository
	branch.BranchRepository
}

func NewTransferService(
	tx database.Transactor,
	transferRepository transfer.TransferRepository,
	employeeRepository employee.EmployeeRepository,
	branchRepository branch.BranchRepository,
) TransferService {
	return &TransferServiceImpl{
		tx:                 tx,
		TransferRepository: transferRepository,
		EmployeeRepository: employeeRepository,
		BranchRepository:   branchRepository,
	}
}

// Submit implements TransferService.
func (s *TransferServiceImpl) Submit(ctx context.Context, req transfer.SubmitTransferRequest) (transfer.TransferResponse, error) {
	if err := req.Validate(); err != nil {
		return transfer.TransferResponse{}, err
	}

	emp, err := s.EmployeeRepository.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return transfer.TransferResponse{}, err
	}

	if _, err := s.BranchRepository.GetByID(ctx, req.ToBranchID); err != nil {
		return transfer.TransferResponse{}, err
	}
	if emp.BranchID == req.ToBranchID {
		return transfer.TransferResponse{}, transfer.ErrSameBranch
	}

	effectiveDate, _ := validator.IsValidDate(req.EffectiveDate)
	created, err := s.TransferRepository.Create(ctx, transfer.TransferRequest{
		EmployeeID:    emp.ID,
		FromBranchID:  emp.BranchID,
		ToBranchID:    req.ToBranchID,
		EffectiveDate: effectiveDate,
		Reason:        req.Reason,
		Status:        transfer.StatusPending,
	})
	if err != nil {
		return transfer.TransferResponse{}, fmt.Errorf("failed to create transfer request: %w", err)
	}

	return transfer.ToResponse(created), nil
}

// Approve implements TransferService. Approval records the decision; the
// employee row does not change until Complete.
func (s *TransferServiceImpl) Approve(ctx context.Context, transferID, approverID string, caps leave.Capabilities) error {
	if !caps.CanApprove {
		return transfer.ErrApprovalForbidden
	}

	req, err := s.TransferRepository.GetByID(ctx, transferID)
	if err != nil {
		return err
	}
	if req.Status != transfer.StatusPending {
		return transfer.ErrAlreadyProcessed
	}

	now := time.Now()
	changed, err := s.TransferRepository.UpdateStatus(ctx, transfer.StatusUpdate{
		ID:         req.ID,
		FromStatus: transfer.StatusPending,
		ToStatus:   transfer.StatusApproved,
		ApprovedBy: &approverID,
		ApprovedAt: &now,
	})
	if err != nil {
		return err
	}
	if !changed {
		return transfer.ErrAlreadyProcessed
	}
	return nil
}

// Reject implements TransferService.
func (s *TransferServiceImpl) Reject(ctx context.Context, req transfer.RejectTransferRequest, approverID string, caps leave.Capabilities) error {
	if !caps.CanApprove {
		return transfer.ErrApprovalForbidden
	}
	if err := req.Validate(); err != nil {
		return err
	}

	existing, err := s.TransferRepository.GetByID(ctx, req.TransferID)
	if err != nil {
		return err
	}
	if existing.Status != transfer.StatusPending {
		return transfer.ErrAlreadyProcessed
	}

	now := time.Now()
	reason := req.Reason
	changed, err := s.TransferRepository.UpdateStatus(ctx, transfer.StatusUpdate{
		ID:              existing.ID,
		FromStatus:      transfer.StatusPending,
		ToStatus:        transfer.StatusRejected,
		ApprovedBy:      &approverID,
		ApprovedAt:      &now,
		RejectionReason: &reason,
	})
	if err != nil {
		return err
	}
	if !changed {
		return transfer.ErrAlreadyProcessed
	}
	return nil
}

// Cancel implements TransferService. Owner or privileged caller, pending
// only.
func (s *TransferServiceImpl) Cancel(ctx context.Context, transferID, actorID string, caps leave.Capabilities) error {
	req, err := s.TransferRepository.GetByID(ctx, transferID)
	if err != nil {
		return err
	}
	if req.EmployeeID != actorID && !caps.CanApprove {
		return transfer.ErrNotTransferOwner
	}
	if req.Status != transfer.StatusPending {
		return transfer.ErrAlreadyProcessed
	}

	changed, err := s.TransferRepository.UpdateStatus(ctx, transfer.StatusUpdate{
		ID:         req.ID,
		FromStatus: transfer.StatusPending,
		ToStatus:   transfer.StatusCancelled,
	})
	if err != nil {
		return err
	}
	if !changed {
		return transfer.ErrAlreadyProcessed
	}
	return nil
}

// Complete implements TransferService. Moving the employee and closing
// the request happen in the same transaction.
func (s *TransferServiceImpl) Complete(ctx context.Context, transferID string, caps leave.Capabilities) error {
	if !caps.CanApprove {
		return transfer.ErrApprovalForbidden
	}

	return s.tx.WithinTx(ctx, func(ctx context.Context) error {
		req, err := s.TransferRepository.GetByID(ctx, transferID)
		if err != nil {
			return err
		}
		if req.Status != transfer.StatusApproved {
			return transfer.ErrNotApproved
		}

		if err := s.EmployeeRepository.UpdateBranch(ctx, req.EmployeeID, req.ToBranchID); err != nil {
			return fmt.Errorf("failed to move employee %s: %w", req.EmployeeID, err)
		}

		now := time.Now()
		changed, err := s.TransferRepository.UpdateStatus(ctx, transfer.StatusUpdate{
			ID:          req.ID,
			FromStatus:  transfer.StatusApproved,
			ToStatus:    transfer.StatusCompleted,
			CompletedAt: &now,
		})
		if err != nil {
			return err
		}
		if !changed {
			return transfer.ErrAlreadyProcessed
		}
		return nil
	})
}

// Get implements TransferService.
func (s *TransferServiceImpl) Get(ctx context.Context, transferID string) (transfer.TransferResponse, error) {
	req, err := s.TransferRepository.GetByID(ctx, transferID)
	if err != nil {
		return transfer.TransferResponse{}, err
	}
	return transfer.ToResponse(req), nil
}

// List implements TransferService.
func (s *TransferServiceImpl) List(ctx context.Context, filter transfer.ListFilter) ([]transfer.TransferResponse, int64, error) {
	if err := filter.Validate(); err != nil {
		return nil, 0, err
	}

	transfers, total, err := s.TransferRepository.List(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list transfer requests: %w", err)
	}

	responses := make([]transfer.TransferResponse, 0, len(transfers))
	for _, t := range transfers {
		responses = append(responses, transfer.ToResponse(t))
	}
	return responses, total, nil
}
