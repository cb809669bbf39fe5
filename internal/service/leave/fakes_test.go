package leave

import (
	"context"
	"fmt"
	"time"

	"github.com/peopledesk/hr-backend-go/internal/domain/employee"
	"github.com/peopledesk/hr-backend-go/internal/domain/leave"
)

// In-memory fakes backing the service tests. The fake transactor just
// runs the function; single-process tests have nothing to roll back.

type fakeTx struct{}

func (fakeTx) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeLeaveTypeRepo struct {
	types  map[string]leave.LeaveType
	nextID int
}

func newFakeLeaveTypeRepo() *fakeLeaveTypeRepo {
	return &fakeLeaveTypeRepo{types: make(map[string]leave.LeaveType)}
}

func (f *fakeLeaveTypeRepo) Create(ctx context.Context, lt leave.LeaveType) (leave.LeaveType, error) {
	f.nextID++
	lt.ID = fmt.Sprintf("type-%d", f.nextID)
	f.types[lt.ID] = lt
	return lt, nil
}

func (f *fakeLeaveTypeRepo) GetByID(ctx context.Context, id string) (leave.LeaveType, error) {
	lt, ok := f.types[id]
	if !ok {
		return leave.LeaveType{}, leave.ErrLeaveTypeNotFound
	}
	return lt, nil
}

func (f *fakeLeaveTypeRepo) GetByName(ctx context.Context, name string) (leave.LeaveType, error) {
	for _, lt := range f.types {
		if lt.Name == name {
			return lt, nil
		}
	}
	return leave.LeaveType{}, leave.ErrLeaveTypeNotFound
}

func (f *fakeLeaveTypeRepo) List(ctx context.Context) ([]leave.LeaveType, error) {
	out := make([]leave.LeaveType, 0, len(f.types))
	for _, lt := range f.types {
		out = append(out, lt)
	}
	return out, nil
}

func (f *fakeLeaveTypeRepo) Update(ctx context.Context, req leave.UpdateLeaveTypeRequest) error {
	lt, ok := f.types[req.ID]
	if !ok {
		return leave.ErrLeaveTypeNotFound
	}
	if req.Name != nil {
		lt.Name = *req.Name
	}
	if req.IsPaid != nil {
		lt.IsPaid = *req.IsPaid
	}
	if req.DefaultDays != nil {
		lt.DefaultDays = *req.DefaultDays
	}
	if req.CarryForward != nil {
		lt.CarryForward = *req.CarryForward
	}
	f.types[req.ID] = lt
	return nil
}

func (f *fakeLeaveTypeRepo) Delete(ctx context.Context, id string) error {
	if _, ok := f.types[id]; !ok {
		return leave.ErrLeaveTypeNotFound
	}
	delete(f.types, id)
	return nil
}

type fakeBalanceRepo struct {
	balances map[string]leave.LeaveBalance
	nextID   int
}

func newFakeBalanceRepo() *fakeBalanceRepo {
	return &fakeBalanceRepo{balances: make(map[string]leave.LeaveBalance)}
}

func balanceKey(employeeID, leaveTypeID string, year int) string {
	return fmt.Sprintf("%s/%s/%d", employeeID, leaveTypeID, year)
}

func (f *fakeBalanceRepo) Upsert(ctx context.Context, b leave.LeaveBalance) (leave.LeaveBalance, error) {
	key := balanceKey(b.EmployeeID, b.LeaveTypeID, b.Year)
	if existing, ok := f.balances[key]; ok {
		b.ID = existing.ID
	} else {
		f.nextID++
		b.ID = fmt.Sprintf("bal-%d", f.nextID)
	}
	f.balances[key] = b
	return b, nil
}

func (f *fakeBalanceRepo) GetByID(ctx context.Context, id string) (leave.LeaveBalance, error) {
	for _, b := range f.balances {
		if b.ID == id {
			return b, nil
		}
	}
	return leave.LeaveBalance{}, leave.ErrBalanceNotFound
}

func (f *fakeBalanceRepo) GetByEmployeeTypeYear(ctx context.Context, employeeID, leaveTypeID string, year int) (leave.LeaveBalance, error) {
	b, ok := f.balances[balanceKey(employeeID, leaveTypeID, year)]
	if !ok {
		return leave.LeaveBalance{}, leave.ErrBalanceNotFound
	}
	return b, nil
}

func (f *fakeBalanceRepo) GetForUpdate(ctx context.Context, employeeID, leaveTypeID string, year int) (leave.LeaveBalance, error) {
	return f.GetByEmployeeTypeYear(ctx, employeeID, leaveTypeID, year)
}

func (f *fakeBalanceRepo) GetByEmployeeYear(ctx context.Context, employeeID string, year int) ([]leave.LeaveBalance, error) {
	out := make([]leave.LeaveBalance, 0)
	for _, b := range f.balances {
		if b.EmployeeID == employeeID && b.Year == year {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeBalanceRepo) ListByYear(ctx context.Context, year int) ([]leave.LeaveBalance, error) {
	out := make([]leave.LeaveBalance, 0)
	for _, b := range f.balances {
		if b.Year == year {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeBalanceRepo) AddUsedDays(ctx context.Context, id string, days int) error {
	for key, b := range f.balances {
		if b.ID == id {
			if b.UsedDays+days > b.AllocatedDays {
				return leave.ErrInsufficientBalance
			}
			b.UsedDays += days
			f.balances[key] = b
			return nil
		}
	}
	return leave.ErrBalanceNotFound
}

type fakeApplicationRepo struct {
	applications map[string]leave.LeaveApplication
	nextID       int
}

func newFakeApplicationRepo() *fakeApplicationRepo {
	return &fakeApplicationRepo{applications: make(map[string]leave.LeaveApplication)}
}

func (f *fakeApplicationRepo) Create(ctx context.Context, a leave.LeaveApplication) (leave.LeaveApplication, error) {
	f.nextID++
	a.ID = fmt.Sprintf("app-%d", f.nextID)
	a.AppliedAt = time.Now()
	f.applications[a.ID] = a
	return a, nil
}

func (f *fakeApplicationRepo) GetByID(ctx context.Context, id string) (leave.LeaveApplication, error) {
	a, ok := f.applications[id]
	if !ok {
		return leave.LeaveApplication{}, leave.ErrApplicationNotFound
	}
	return a, nil
}

func (f *fakeApplicationRepo) ListByEmployee(ctx context.Context, employeeID string, filter leave.ApplicationFilter) ([]leave.LeaveApplication, int64, error) {
	out := make([]leave.LeaveApplication, 0)
	for _, a := range f.applications {
		if a.EmployeeID == employeeID {
			out = append(out, a)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakeApplicationRepo) List(ctx context.Context, filter leave.ApplicationFilter) ([]leave.LeaveApplication, int64, error) {
	out := make([]leave.LeaveApplication, 0, len(f.applications))
	for _, a := range f.applications {
		out = append(out, a)
	}
	return out, int64(len(out)), nil
}

func (f *fakeApplicationRepo) UpdateStatus(ctx context.Context, upd leave.StatusUpdate) (bool, error) {
	a, ok := f.applications[upd.ID]
	if !ok || a.Status != upd.FromStatus {
		return false, nil
	}
	a.Status = upd.ToStatus
	if upd.ApprovedBy != nil {
		a.ApprovedBy = upd.ApprovedBy
	}
	if upd.ApprovedAt != nil {
		a.ApprovedAt = upd.ApprovedAt
	}
	if upd.RejectionReason != nil {
		a.RejectionReason = upd.RejectionReason
	}
	if upd.CancelledBy != nil {
		a.CancelledBy = upd.CancelledBy
	}
	if upd.CancelledAt != nil {
		a.CancelledAt = upd.CancelledAt
	}
	f.applications[upd.ID] = a
	return true, nil
}

func (f *fakeApplicationRepo) HasOverlapping(ctx context.Context, employeeID string, start, end time.Time) (bool, error) {
	for _, a := range f.applications {
		if a.EmployeeID != employeeID {
			continue
		}
		if a.Status != leave.StatusPending && a.Status != leave.StatusApproved {
			continue
		}
		if !a.StartDate.After(end) && !a.EndDate.Before(start) {
			return true, nil
		}
	}
	return false, nil
}

type fakeApprovalRepo struct {
	approvals []leave.LeaveApproval
}

func (f *fakeApprovalRepo) Append(ctx context.Context, a leave.LeaveApproval) (leave.LeaveApproval, error) {
	a.ID = fmt.Sprintf("appr-%d", len(f.approvals)+1)
	a.DecidedAt = time.Now()
	f.approvals = append(f.approvals, a)
	return a, nil
}

func (f *fakeApprovalRepo) ListByApplication(ctx context.Context, applicationID string) ([]leave.LeaveApproval, error) {
	out := make([]leave.LeaveApproval, 0)
	for _, a := range f.approvals {
		if a.ApplicationID == applicationID {
			out = append(out, a)
		}
	}
	return out, nil
}

type fakeEmployeeRepo struct {
	employees map[string]employee.Employee
}

func newFakeEmployeeRepo(employees ...employee.Employee) *fakeEmployeeRepo {
	f := &fakeEmployeeRepo{employees: make(map[string]employee.Employee)}
	for _, e := range employees {
		f.employees[e.ID] = e
	}
	return f
}

func (f *fakeEmployeeRepo) Create(ctx context.Context, e employee.Employee) (employee.Employee, error) {
	f.employees[e.ID] = e
	return e, nil
}

func (f *fakeEmployeeRepo) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	e, ok := f.employees[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return e, nil
}

func (f *fakeEmployeeRepo) GetByEmail(ctx context.Context, email string) (employee.Employee, error) {
	for _, e := range f.employees {
		if e.Email == email {
			return e, nil
		}
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (f *fakeEmployeeRepo) GetByCode(ctx context.Context, code string) (employee.Employee, error) {
	for _, e := range f.employees {
		if e.EmployeeCode == code {
			return e, nil
		}
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (f *fakeEmployeeRepo) GetByIDs(ctx context.Context, ids []string) ([]employee.Employee, error) {
	out := make([]employee.Employee, 0, len(ids))
	for _, id := range ids {
		if e, ok := f.employees[id]; ok {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeEmployeeRepo) List(ctx context.Context, filter employee.ListFilter) ([]employee.Employee, int64, error) {
	out := make([]employee.Employee, 0, len(f.employees))
	for _, e := range f.employees {
		out = append(out, e)
	}
	return out, int64(len(out)), nil
}

func (f *fakeEmployeeRepo) Update(ctx context.Context, req employee.UpdateEmployeeRequest) error {
	e, ok := f.employees[req.ID]
	if !ok {
		return employee.ErrEmployeeNotFound
	}
	if req.FullName != nil {
		e.FullName = *req.FullName
	}
	if req.Email != nil {
		e.Email = *req.Email
	}
	if req.Role != nil {
		e.Role = employee.Role(*req.Role)
	}
	if req.BranchID != nil {
		e.BranchID = *req.BranchID
	}
	f.employees[req.ID] = e
	return nil
}

func (f *fakeEmployeeRepo) UpdateBranch(ctx context.Context, id, branchID string) error {
	e, ok := f.employees[id]
	if !ok {
		return employee.ErrEmployeeNotFound
	}
	e.BranchID = branchID
	f.employees[id] = e
	return nil
}

func (f *fakeEmployeeRepo) Deactivate(ctx context.Context, id string) error {
	e, ok := f.employees[id]
	if !ok {
		return employee.ErrEmployeeNotFound
	}
	e.IsActive = false
	f.employees[id] = e
	return nil
}
