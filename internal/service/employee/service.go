package employee

import (
	"context"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/peopledesk/hr-backend-go/internal/domain/employee"
	"github.com/peopledesk/hr-backend-go/internal/domain/master/branch"
	"github.com/peopledesk/hr-backend-go/internal/pkg/validator"
)

type EmployeeService interface {
	Create(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error)
	Get(ctx context.Context, id string) (employee.EmployeeResponse, error)
	List(ctx context.Context, filter employee.ListFilter) ([]employee.EmployeeResponse, int64, error)
	Update(ctx context.Context, req employee.UpdateEmployeeRequest) error
	Deactivate(ctx context.Context, id string) error
}

type EmployeeServiceImpl struct {
	employee.EmployeeRepository
	branch.BranchRepository
}

func NewEmployeeService(
	employeeRepository employee.EmployeeRepository,
	branchRepository branch.BranchRepository,
) EmployeeService {
	return &EmployeeServiceImpl{
		EmployeeRepository: employeeRepository,
		BranchRepository:   branchRepository,
	}
}

// Create implements EmployeeService.
func (s *EmployeeServiceImpl) Create(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	if _, err := s.EmployeeRepository.GetByCode(ctx, req.EmployeeCode); err == nil {
		return employee.EmployeeResponse{}, employee.ErrEmployeeCodeExists
	} else if err != employee.ErrEmployeeNotFound {
		return employee.EmployeeResponse{}, fmt.Errorf("failed to check employee code: %w", err)
	}

	if _, err := s.EmployeeRepository.GetByEmail(ctx, req.Email); err == nil {
		return employee.EmployeeResponse{}, employee.ErrEmailExists
	} else if err != employee.ErrEmployeeNotFound {
		return employee.EmployeeResponse{}, fmt.Errorf("failed to check employee email: %w", err)
	}

	if _, err := s.BranchRepository.GetByID(ctx, req.BranchID); err != nil {
		return employee.EmployeeResponse{}, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return employee.EmployeeResponse{}, fmt.Errorf("failed to hash password: %w", err)
	}

	hireDate, _ := validator.IsValidDate(req.HireDate)
	created, err := s.EmployeeRepository.Create(ctx, employee.Employee{
		EmployeeCode: req.EmployeeCode,
		FullName:     req.FullName,
		Email:        req.Email,
		PasswordHash: string(hashed),
		Role:         employee.Role(req.Role),
		BranchID:     req.BranchID,
		HireDate:     hireDate,
		IsActive:     true,
	})
	if err != nil {
		return employee.EmployeeResponse{}, fmt.Errorf("failed to create employee: %w", err)
	}

	return employee.ToResponse(created), nil
}

// Get implements EmployeeService.
func (s *EmployeeServiceImpl) Get(ctx context.Context, id string) (employee.EmployeeResponse, error) {
	emp, err := s.EmployeeRepository.GetByID(ctx, id)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	return employee.ToResponse(emp), nil
}

// List implements EmployeeService.
func (s *EmployeeServiceImpl) List(ctx context.Context, filter employee.ListFilter) ([]employee.EmployeeResponse, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.Limit <= 0 || filter.Limit > 100 {
		filter.Limit = 20
	}

	employees, total, err := s.EmployeeRepository.List(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list employees: %w", err)
	}

	responses := make([]employee.EmployeeResponse, 0, len(employees))
	for _, emp := range employees {
		responses = append(responses, employee.ToResponse(emp))
	}
	return responses, total, nil
}

// Update implements EmployeeService.
func (s *EmployeeServiceImpl) Update(ctx context.Context, req employee.UpdateEmployeeRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	if req.Email != nil {
		existing, err := s.EmployeeRepository.GetByEmail(ctx, *req.Email)
		if err == nil && existing.ID != req.ID {
			return employee.ErrEmailExists
		}
		if err != nil && err != employee.ErrEmployeeNotFound {
			return fmt.Errorf("failed to check employee email: %w", err)
		}
	}

	if req.BranchID != nil {
		if _, err := s.BranchRepository.GetByID(ctx, *req.BranchID); err != nil {
			return err
		}
	}

	return s.EmployeeRepository.Update(ctx, req)
}

// Deactivate implements EmployeeService. Deactivation is a soft flag;
// the row and its history stay.
func (s *EmployeeServiceImpl) Deactivate(ctx context.Context, id string) error {
	return s.EmployeeRepository.Deactivate(ctx, id)
}
