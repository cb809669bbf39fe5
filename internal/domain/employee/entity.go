package employee

import "time"

type Employee struct {
	ID           string
	EmployeeCode string
	FullName     string
	Email        string
	PasswordHash string
	Role         Role
	BranchID     string
	HireDate     time.Time
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type Role string

const (
	RoleStaff   Role = "staff"
	RoleManager Role = "manager"
	RoleHRAdmin Role = "hr_admin"
)

// IsApprover reports whether the role carries approval authority for leave
// applications and transfer requests.
func (r Role) IsApprover() bool {
	return r == RoleManager || r == RoleHRAdmin
}
