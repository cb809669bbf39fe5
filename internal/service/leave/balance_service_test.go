package leave

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peopledesk/hr-backend-go/internal/domain/employee"
	"github.com/peopledesk/hr-backend-go/internal/domain/leave"
	"github.com/peopledesk/hr-backend-go/internal/pkg/validator"
)

type balanceFixture struct {
	types     *fakeLeaveTypeRepo
	balances  *fakeBalanceRepo
	employees *fakeEmployeeRepo
	service   *BalanceService
}

func newBalanceFixture(t *testing.T, employees ...employee.Employee) *balanceFixture {
	t.Helper()

	f := &balanceFixture{
		types:     newFakeLeaveTypeRepo(),
		balances:  newFakeBalanceRepo(),
		employees: newFakeEmployeeRepo(employees...),
	}
	f.service = NewBalanceService(fakeTx{}, f.types, f.balances, f.employees)
	return f
}

func staffEmployee(id string) employee.Employee {
	return employee.Employee{
		ID:       id,
		FullName: "Test Employee " + id,
		Role:     employee.RoleStaff,
		IsActive: true,
	}
}

func (f *balanceFixture) createType(t *testing.T, defaultDays int, carryForward bool) leave.LeaveType {
	t.Helper()
	lt, err := f.types.Create(context.Background(), leave.LeaveType{
		Name:         "Annual Leave",
		IsPaid:       true,
		DefaultDays:  defaultDays,
		CarryForward: carryForward,
	})
	require.NoError(t, err)
	return lt
}

func TestAllocateCreatesBalance(t *testing.T) {
	f := newBalanceFixture(t, staffEmployee("emp-1"))
	lt := f.createType(t, 12, false)

	b, err := f.service.Allocate(context.Background(), leave.AllocateBalanceRequest{
		EmployeeID:    "emp-1",
		LeaveTypeID:   lt.ID,
		Year:          2026,
		AllocatedDays: 12,
	})
	require.NoError(t, err)

	assert.Equal(t, 12, b.AllocatedDays)
	assert.Equal(t, 0, b.UsedDays)
	assert.Equal(t, 12, b.Remaining())
}

func TestAllocateOverwritesExisting(t *testing.T) {
	f := newBalanceFixture(t, staffEmployee("emp-1"))
	lt := f.createType(t, 12, false)

	_, err := f.service.Allocate(context.Background(), leave.AllocateBalanceRequest{
		EmployeeID:    "emp-1",
		LeaveTypeID:   lt.ID,
		Year:          2026,
		AllocatedDays: 12,
		UsedDays:      5,
	})
	require.NoError(t, err)

	b, err := f.service.Allocate(context.Background(), leave.AllocateBalanceRequest{
		EmployeeID:    "emp-1",
		LeaveTypeID:   lt.ID,
		Year:          2026,
		AllocatedDays: 15,
		UsedDays:      2,
	})
	require.NoError(t, err)
	assert.Equal(t, 15, b.AllocatedDays)
	assert.Equal(t, 2, b.UsedDays)

	stored, err := f.balances.GetByEmployeeTypeYear(context.Background(), "emp-1", lt.ID, 2026)
	require.NoError(t, err)
	assert.Equal(t, 15, stored.AllocatedDays)
}

func TestAllocateRejectsUsedOverAllocated(t *testing.T) {
	f := newBalanceFixture(t, staffEmployee("emp-1"))
	lt := f.createType(t, 12, false)

	_, err := f.service.Allocate(context.Background(), leave.AllocateBalanceRequest{
		EmployeeID:    "emp-1",
		LeaveTypeID:   lt.ID,
		Year:          2026,
		AllocatedDays: 5,
		UsedDays:      6,
	})

	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs.ToMap(), "used_days")
}

func TestAllocateUnknownEmployee(t *testing.T) {
	f := newBalanceFixture(t)
	lt := f.createType(t, 12, false)

	_, err := f.service.Allocate(context.Background(), leave.AllocateBalanceRequest{
		EmployeeID:    "ghost",
		LeaveTypeID:   lt.ID,
		Year:          2026,
		AllocatedDays: 12,
	})
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestBulkAllocateUniform(t *testing.T) {
	f := newBalanceFixture(t, staffEmployee("emp-1"), staffEmployee("emp-2"), staffEmployee("emp-3"))
	lt := f.createType(t, 12, false)

	balances, err := f.service.BulkAllocate(context.Background(), leave.BulkAllocateRequest{
		EmployeeIDs:   []string{"emp-1", "emp-2", "emp-3"},
		LeaveTypeID:   lt.ID,
		Year:          2026,
		AllocatedDays: 10,
	})
	require.NoError(t, err)
	require.Len(t, balances, 3)

	for _, id := range []string{"emp-1", "emp-2", "emp-3"} {
		b, err := f.balances.GetByEmployeeTypeYear(context.Background(), id, lt.ID, 2026)
		require.NoError(t, err)
		assert.Equal(t, 10, b.AllocatedDays)
		assert.Equal(t, 0, b.UsedDays)
	}
}

func TestBulkAllocateUnknownEmployeeFailsWhole(t *testing.T) {
	f := newBalanceFixture(t, staffEmployee("emp-1"))
	lt := f.createType(t, 12, false)

	_, err := f.service.BulkAllocate(context.Background(), leave.BulkAllocateRequest{
		EmployeeIDs:   []string{"emp-1", "ghost"},
		LeaveTypeID:   lt.ID,
		Year:          2026,
		AllocatedDays: 10,
	})

	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs.ToMap(), "employee_ids[1]")

	// Nothing was written for the valid employee either.
	_, err = f.balances.GetByEmployeeTypeYear(context.Background(), "emp-1", lt.ID, 2026)
	assert.ErrorIs(t, err, leave.ErrBalanceNotFound)
}

func TestRolloverCarryForward(t *testing.T) {
	f := newBalanceFixture(t, staffEmployee("emp-1"))
	lt := f.createType(t, 12, true)

	// 10 allocated, 8 used leaves 2 to carry into the default 12.
	_, err := f.balances.Upsert(context.Background(), leave.LeaveBalance{
		EmployeeID:    "emp-1",
		LeaveTypeID:   lt.ID,
		Year:          2025,
		AllocatedDays: 10,
		UsedDays:      8,
	})
	require.NoError(t, err)

	count, err := f.service.RolloverYear(context.Background(), leave.RolloverRequest{
		FromYear: 2025,
		ToYear:   2026,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	b, err := f.balances.GetByEmployeeTypeYear(context.Background(), "emp-1", lt.ID, 2026)
	require.NoError(t, err)
	assert.Equal(t, 14, b.AllocatedDays)
	assert.Equal(t, 0, b.UsedDays)
}

func TestRolloverWithoutCarryForward(t *testing.T) {
	f := newBalanceFixture(t, staffEmployee("emp-1"))
	lt := f.createType(t, 12, false)

	_, err := f.balances.Upsert(context.Background(), leave.LeaveBalance{
		EmployeeID:    "emp-1",
		LeaveTypeID:   lt.ID,
		Year:          2025,
		AllocatedDays: 10,
		UsedDays:      3,
	})
	require.NoError(t, err)

	_, err = f.service.RolloverYear(context.Background(), leave.RolloverRequest{
		FromYear: 2025,
		ToYear:   2026,
	})
	require.NoError(t, err)

	b, err := f.balances.GetByEmployeeTypeYear(context.Background(), "emp-1", lt.ID, 2026)
	require.NoError(t, err)
	assert.Equal(t, 12, b.AllocatedDays)
	assert.Equal(t, 0, b.UsedDays)
}

func TestRolloverClampsOverdrawnRemainder(t *testing.T) {
	f := newBalanceFixture(t, staffEmployee("emp-1"))
	lt := f.createType(t, 12, true)

	// used == allocated carries zero, not a negative number.
	_, err := f.balances.Upsert(context.Background(), leave.LeaveBalance{
		EmployeeID:    "emp-1",
		LeaveTypeID:   lt.ID,
		Year:          2025,
		AllocatedDays: 10,
		UsedDays:      10,
	})
	require.NoError(t, err)

	_, err = f.service.RolloverYear(context.Background(), leave.RolloverRequest{
		FromYear: 2025,
		ToYear:   2026,
	})
	require.NoError(t, err)

	b, err := f.balances.GetByEmployeeTypeYear(context.Background(), "emp-1", lt.ID, 2026)
	require.NoError(t, err)
	assert.Equal(t, 12, b.AllocatedDays)
}

func TestRolloverSameYearRejected(t *testing.T) {
	f := newBalanceFixture(t)

	_, err := f.service.RolloverYear(context.Background(), leave.RolloverRequest{
		FromYear: 2026,
		ToYear:   2026,
	})

	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs.ToMap(), "to_year")
}
