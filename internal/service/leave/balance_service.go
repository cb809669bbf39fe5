package leave

import (
	"context"
	"fmt"

	"github.com/peopledesk/hr-backend-go/internal/domain/employee"
	"github.com/peopledesk/hr-backend-go/internal/domain/leave"
	"github.com/peopledesk/hr-backend-go/internal/pkg/database"
	"github.com/peopledesk/hr-backend-go/internal/pkg/validator"
)

// BalanceService manages leave balance allocations: single, bulk and the
// year rollover. Allocation is create-or-overwrite on the
// (employee, leave type, year) key.
type BalanceService struct {
	tx database.Transactor
	leave.LeaveTypeRepository
	leave.LeaveBalanceRepository
	employee.EmployeeRepository
}

func NewBalanceService(
	tx database.Transactor,
	leaveTypeRepository leave.LeaveTypeRepository,
	leaveBalanceRepository leave.LeaveBalanceRepository,
	employeeRepository employee.EmployeeRepository,
) *BalanceService {
	return &BalanceService{
		tx:                     tx,
		LeaveTypeRepository:    leaveTypeRepository,
		LeaveBalanceRepository: leaveBalanceRepository,
		EmployeeRepository:     employeeRepository,
	}
}

// Allocate creates or overwrites one balance row. Overwriting is also the
// administrative correction path for already approved leave.
func (s *BalanceService) Allocate(ctx context.Context, req leave.AllocateBalanceRequest) (leave.LeaveBalance, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveBalance{}, err
	}

	if _, err := s.EmployeeRepository.GetByID(ctx, req.EmployeeID); err != nil {
		return leave.LeaveBalance{}, err
	}
	if _, err := s.LeaveTypeRepository.GetByID(ctx, req.LeaveTypeID); err != nil {
		return leave.LeaveBalance{}, err
	}

	balance, err := s.LeaveBalanceRepository.Upsert(ctx, leave.LeaveBalance{
		EmployeeID:    req.EmployeeID,
		LeaveTypeID:   req.LeaveTypeID,
		Year:          req.Year,
		AllocatedDays: req.AllocatedDays,
		UsedDays:      req.UsedDays,
	})
	if err != nil {
		return leave.LeaveBalance{}, err
	}
	return balance, nil
}

// BulkAllocate writes a uniform allocation for every listed employee in a
// single transaction. One failure rolls back the whole batch.
func (s *BalanceService) BulkAllocate(ctx context.Context, req leave.BulkAllocateRequest) ([]leave.LeaveBalance, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	if _, err := s.LeaveTypeRepository.GetByID(ctx, req.LeaveTypeID); err != nil {
		return nil, err
	}

	employees, err := s.EmployeeRepository.GetByIDs(ctx, req.EmployeeIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to get employees: %w", err)
	}
	if len(employees) != len(req.EmployeeIDs) {
		known := make(map[string]bool, len(employees))
		for _, emp := range employees {
			known[emp.ID] = true
		}
		var errs validator.ValidationErrors
		for i, id := range req.EmployeeIDs {
			if !known[id] {
				errs = append(errs, validator.ValidationError{
					Field:   fmt.Sprintf("employee_ids[%d]", i),
					Message: "employee not found",
				})
			}
		}
		return nil, errs
	}

	balances := make([]leave.LeaveBalance, 0, len(req.EmployeeIDs))
	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		for _, employeeID := range req.EmployeeIDs {
			balance, err := s.LeaveBalanceRepository.Upsert(ctx, leave.LeaveBalance{
				EmployeeID:    employeeID,
				LeaveTypeID:   req.LeaveTypeID,
				Year:          req.Year,
				AllocatedDays: req.AllocatedDays,
				UsedDays:      0,
			})
			if err != nil {
				return fmt.Errorf("failed to allocate for employee %s: %w", employeeID, err)
			}
			balances = append(balances, balance)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return balances, nil
}

// RolloverYear seeds the target year from every source-year balance: the
// leave type's default allocation, plus the clamped remainder for
// carry-forward types, with usage reset to zero. Returns the number of
// balances written.
func (s *BalanceService) RolloverYear(ctx context.Context, req leave.RolloverRequest) (int, error) {
	if err := req.Validate(); err != nil {
		return 0, err
	}

	fromBalances, err := s.LeaveBalanceRepository.ListByYear(ctx, req.FromYear)
	if err != nil {
		return 0, fmt.Errorf("failed to list balances for year %d: %w", req.FromYear, err)
	}

	types := make(map[string]leave.LeaveType)
	for _, b := range fromBalances {
		if _, ok := types[b.LeaveTypeID]; ok {
			continue
		}
		lt, err := s.LeaveTypeRepository.GetByID(ctx, b.LeaveTypeID)
		if err != nil {
			return 0, err
		}
		types[b.LeaveTypeID] = lt
	}

	count := 0
	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		for _, b := range fromBalances {
			lt := types[b.LeaveTypeID]
			allocated := lt.DefaultDays
			if lt.CarryForward {
				allocated += b.Remaining()
			}
			_, err := s.LeaveBalanceRepository.Upsert(ctx, leave.LeaveBalance{
				EmployeeID:    b.EmployeeID,
				LeaveTypeID:   b.LeaveTypeID,
				Year:          req.ToYear,
				AllocatedDays: allocated,
				UsedDays:      0,
			})
			if err != nil {
				return fmt.Errorf("failed to roll over balance for employee %s: %w", b.EmployeeID, err)
			}
			count++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return count, nil
}
