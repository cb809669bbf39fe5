package employee

import "context"

// EmployeeRepository - interface for the employees table
type EmployeeRepository interface {
	Create(ctx context.Context, emp Employee) (Employee, error)
	GetByID(ctx context.Context, id string) (Employee, error)
	GetByEmail(ctx context.Context, email string) (Employee, error)
	GetByCode(ctx context.Context, code string) (Employee, error)
	GetByIDs(ctx context.Context, ids []string) ([]Employee, error)
	List(ctx context.Context, filter ListFilter) ([]Employee, int64, error)
	Update(ctx context.Context, req UpdateEmployeeRequest) error
	UpdateBranch(ctx context.Context, id, branchID string) error
	Deactivate(ctx context.Context, id string) error
}
