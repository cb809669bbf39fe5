package leave

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peopledesk/hr-backend-go/internal/domain/leave"
	"github.com/peopledesk/hr-backend-go/internal/pkg/validator"
)

type workflowFixture struct {
	types        *fakeLeaveTypeRepo
	balances     *fakeBalanceRepo
	applications *fakeApplicationRepo
	approvals    *fakeApprovalRepo
	service      *WorkflowService
	annualLeave  leave.LeaveType
}

func newWorkflowFixture(t *testing.T) *workflowFixture {
	t.Helper()

	f := &workflowFixture{
		types:        newFakeLeaveTypeRepo(),
		balances:     newFakeBalanceRepo(),
		applications: newFakeApplicationRepo(),
		approvals:    &fakeApprovalRepo{},
	}
	f.service = NewWorkflowService(fakeTx{}, f.types, f.balances, f.applications, f.approvals)

	lt, err := f.types.Create(context.Background(), leave.LeaveType{
		Name:         "Annual Leave",
		IsPaid:       true,
		DefaultDays:  12,
		CarryForward: true,
	})
	require.NoError(t, err)
	f.annualLeave = lt
	return f
}

func (f *workflowFixture) allocate(t *testing.T, employeeID string, year, allocated, used int) {
	t.Helper()
	_, err := f.balances.Upsert(context.Background(), leave.LeaveBalance{
		EmployeeID:    employeeID,
		LeaveTypeID:   f.annualLeave.ID,
		Year:          year,
		AllocatedDays: allocated,
		UsedDays:      used,
	})
	require.NoError(t, err)
}

func (f *workflowFixture) balance(t *testing.T, employeeID string, year int) leave.LeaveBalance {
	t.Helper()
	b, err := f.balances.GetByEmployeeTypeYear(context.Background(), employeeID, f.annualLeave.ID, year)
	require.NoError(t, err)
	return b
}

func futureDate(daysAhead int) (time.Time, string) {
	d := time.Now().AddDate(0, 0, daysAhead)
	d = time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
	return d, d.Format("2006-01-02")
}

var staffCaps = leave.Capabilities{}
var approverCaps = leave.Capabilities{CanApprove: true, CanBackdate: true}

func TestSubmitComputesInclusiveDays(t *testing.T) {
	f := newWorkflowFixture(t)
	start, startStr := futureDate(30)
	f.allocate(t, "emp-1", start.Year(), 12, 0)

	_, endStr := futureDate(32)
	created, err := f.service.Submit(context.Background(), leave.SubmitApplicationRequest{
		EmployeeID:  "emp-1",
		LeaveTypeID: f.annualLeave.ID,
		StartDate:   startStr,
		EndDate:     endStr,
		Reason:      "family event",
	}, staffCaps)
	require.NoError(t, err)

	assert.Equal(t, 3, created.Days)
	assert.Equal(t, leave.StatusPending, created.Status)
}

func TestSubmitSingleDayCountsOne(t *testing.T) {
	f := newWorkflowFixture(t)
	start, startStr := futureDate(10)
	f.allocate(t, "emp-1", start.Year(), 12, 0)

	created, err := f.service.Submit(context.Background(), leave.SubmitApplicationRequest{
		EmployeeID:  "emp-1",
		LeaveTypeID: f.annualLeave.ID,
		StartDate:   startStr,
		EndDate:     startStr,
		Reason:      "appointment",
	}, staffCaps)
	require.NoError(t, err)

	assert.Equal(t, 1, created.Days)
}

func TestSubmitEndBeforeStartFailsValidation(t *testing.T) {
	f := newWorkflowFixture(t)
	_, startStr := futureDate(20)
	_, endStr := futureDate(18)

	_, err := f.service.Submit(context.Background(), leave.SubmitApplicationRequest{
		EmployeeID:  "emp-1",
		LeaveTypeID: f.annualLeave.ID,
		StartDate:   startStr,
		EndDate:     endStr,
		Reason:      "trip",
	}, approverCaps)

	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs.ToMap(), "end_date")
}

func TestSubmitBackdateDeniedWithoutCapability(t *testing.T) {
	f := newWorkflowFixture(t)
	yesterday := time.Now().AddDate(0, 0, -1)
	f.allocate(t, "emp-1", yesterday.Year(), 12, 0)
	dateStr := yesterday.Format("2006-01-02")

	_, err := f.service.Submit(context.Background(), leave.SubmitApplicationRequest{
		EmployeeID:  "emp-1",
		LeaveTypeID: f.annualLeave.ID,
		StartDate:   dateStr,
		EndDate:     dateStr,
		Reason:      "sick yesterday",
	}, staffCaps)

	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs.ToMap(), "start_date")
}

func TestSubmitBackdateAllowedWithCapability(t *testing.T) {
	f := newWorkflowFixture(t)
	yesterday := time.Now().AddDate(0, 0, -1)
	f.allocate(t, "mgr-1", yesterday.Year(), 12, 0)
	dateStr := yesterday.Format("2006-01-02")

	created, err := f.service.Submit(context.Background(), leave.SubmitApplicationRequest{
		EmployeeID:  "mgr-1",
		LeaveTypeID: f.annualLeave.ID,
		StartDate:   dateStr,
		EndDate:     dateStr,
		Reason:      "sick yesterday",
	}, approverCaps)
	require.NoError(t, err)
	assert.Equal(t, leave.StatusPending, created.Status)
}

func TestSubmitInsufficientBalanceReportsBothCounts(t *testing.T) {
	f := newWorkflowFixture(t)
	start, startStr := futureDate(14)
	f.allocate(t, "emp-1", start.Year(), 5, 3)

	_, endStr := futureDate(16)
	_, err := f.service.Submit(context.Background(), leave.SubmitApplicationRequest{
		EmployeeID:  "emp-1",
		LeaveTypeID: f.annualLeave.ID,
		StartDate:   startStr,
		EndDate:     endStr,
		Reason:      "trip",
	}, staffCaps)

	require.ErrorIs(t, err, leave.ErrInsufficientBalance)
	var insufficient *leave.InsufficientBalanceError
	require.ErrorAs(t, err, &insufficient)
	assert.Equal(t, 3, insufficient.Requested)
	assert.Equal(t, 2, insufficient.Available)
}

func TestSubmitExactRemainingAllowed(t *testing.T) {
	f := newWorkflowFixture(t)
	start, startStr := futureDate(14)
	f.allocate(t, "emp-1", start.Year(), 5, 3)

	_, endStr := futureDate(15)
	created, err := f.service.Submit(context.Background(), leave.SubmitApplicationRequest{
		EmployeeID:  "emp-1",
		LeaveTypeID: f.annualLeave.ID,
		StartDate:   startStr,
		EndDate:     endStr,
		Reason:      "trip",
	}, staffCaps)
	require.NoError(t, err)
	assert.Equal(t, 2, created.Days)
}

func TestSubmitNoBalanceCountsAsZeroAvailable(t *testing.T) {
	f := newWorkflowFixture(t)
	_, startStr := futureDate(14)

	_, err := f.service.Submit(context.Background(), leave.SubmitApplicationRequest{
		EmployeeID:  "emp-1",
		LeaveTypeID: f.annualLeave.ID,
		StartDate:   startStr,
		EndDate:     startStr,
		Reason:      "trip",
	}, staffCaps)

	var insufficient *leave.InsufficientBalanceError
	require.ErrorAs(t, err, &insufficient)
	assert.Equal(t, 0, insufficient.Available)
}

func TestSubmitDoesNotTouchBalance(t *testing.T) {
	f := newWorkflowFixture(t)
	start, startStr := futureDate(14)
	f.allocate(t, "emp-1", start.Year(), 12, 0)

	_, endStr := futureDate(16)
	_, err := f.service.Submit(context.Background(), leave.SubmitApplicationRequest{
		EmployeeID:  "emp-1",
		LeaveTypeID: f.annualLeave.ID,
		StartDate:   startStr,
		EndDate:     endStr,
		Reason:      "trip",
	}, staffCaps)
	require.NoError(t, err)

	b := f.balance(t, "emp-1", start.Year())
	assert.Equal(t, 0, b.UsedDays)
}

func TestSubmitRejectsOverlap(t *testing.T) {
	f := newWorkflowFixture(t)
	start, startStr := futureDate(14)
	f.allocate(t, "emp-1", start.Year(), 12, 0)
	_, endStr := futureDate(16)

	submit := leave.SubmitApplicationRequest{
		EmployeeID:  "emp-1",
		LeaveTypeID: f.annualLeave.ID,
		StartDate:   startStr,
		EndDate:     endStr,
		Reason:      "trip",
	}
	_, err := f.service.Submit(context.Background(), submit, staffCaps)
	require.NoError(t, err)

	_, err = f.service.Submit(context.Background(), submit, staffCaps)
	assert.ErrorIs(t, err, leave.ErrOverlappingLeave)
}

func TestApproveDeductsExactlyOnce(t *testing.T) {
	f := newWorkflowFixture(t)
	start, startStr := futureDate(14)
	f.allocate(t, "emp-1", start.Year(), 12, 0)
	_, endStr := futureDate(16)

	created, err := f.service.Submit(context.Background(), leave.SubmitApplicationRequest{
		EmployeeID:  "emp-1",
		LeaveTypeID: f.annualLeave.ID,
		StartDate:   startStr,
		EndDate:     endStr,
		Reason:      "trip",
	}, staffCaps)
	require.NoError(t, err)

	require.NoError(t, f.service.Approve(context.Background(), created.ID, "mgr-1", nil, approverCaps))

	b := f.balance(t, "emp-1", start.Year())
	assert.Equal(t, 3, b.UsedDays)
	assert.Equal(t, 9, b.Remaining())

	// A second approve must fail and leave the balance untouched.
	err = f.service.Approve(context.Background(), created.ID, "mgr-2", nil, approverCaps)
	assert.ErrorIs(t, err, leave.ErrAlreadyProcessed)

	b = f.balance(t, "emp-1", start.Year())
	assert.Equal(t, 3, b.UsedDays)

	// Exactly one approval log row.
	rows, err := f.approvals.ListByApplication(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
	assert.Equal(t, leave.ApprovalStatusApproved, rows[0].Status)
}

func TestApproveRequiresCapability(t *testing.T) {
	f := newWorkflowFixture(t)
	err := f.service.Approve(context.Background(), "app-1", "emp-1", nil, staffCaps)
	assert.ErrorIs(t, err, leave.ErrApprovalNotPermitted)
}

func TestApproveMissingBalanceFails(t *testing.T) {
	f := newWorkflowFixture(t)
	_, startStr := futureDate(14)

	// Privileged submitter bypasses the up-front balance check.
	created, err := f.service.Submit(context.Background(), leave.SubmitApplicationRequest{
		EmployeeID:  "mgr-1",
		LeaveTypeID: f.annualLeave.ID,
		StartDate:   startStr,
		EndDate:     startStr,
		Reason:      "trip",
	}, approverCaps)
	require.NoError(t, err)

	err = f.service.Approve(context.Background(), created.ID, "mgr-2", nil, approverCaps)
	assert.ErrorIs(t, err, leave.ErrBalanceNotFound)

	// The application must remain pending after the failed approval.
	stored, err := f.applications.GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, leave.StatusPending, stored.Status)
}

func TestRejectRequiresReasonAndLeavesBalance(t *testing.T) {
	f := newWorkflowFixture(t)
	start, startStr := futureDate(14)
	f.allocate(t, "emp-1", start.Year(), 12, 0)

	created, err := f.service.Submit(context.Background(), leave.SubmitApplicationRequest{
		EmployeeID:  "emp-1",
		LeaveTypeID: f.annualLeave.ID,
		StartDate:   startStr,
		EndDate:     startStr,
		Reason:      "trip",
	}, staffCaps)
	require.NoError(t, err)

	// Empty reason is a validation error.
	err = f.service.Reject(context.Background(), leave.RejectApplicationRequest{
		ApplicationID: created.ID,
	}, "mgr-1", approverCaps)
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)

	err = f.service.Reject(context.Background(), leave.RejectApplicationRequest{
		ApplicationID: created.ID,
		Reason:        "coverage needed that week",
	}, "mgr-1", approverCaps)
	require.NoError(t, err)

	stored, err := f.applications.GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, leave.StatusRejected, stored.Status)
	require.NotNil(t, stored.RejectionReason)
	assert.Equal(t, "coverage needed that week", *stored.RejectionReason)

	b := f.balance(t, "emp-1", start.Year())
	assert.Equal(t, 0, b.UsedDays)
}

func TestCancelPendingByOwner(t *testing.T) {
	f := newWorkflowFixture(t)
	start, startStr := futureDate(14)
	f.allocate(t, "emp-1", start.Year(), 12, 0)

	created, err := f.service.Submit(context.Background(), leave.SubmitApplicationRequest{
		EmployeeID:  "emp-1",
		LeaveTypeID: f.annualLeave.ID,
		StartDate:   startStr,
		EndDate:     startStr,
		Reason:      "trip",
	}, staffCaps)
	require.NoError(t, err)

	// Another staff member cannot cancel it.
	err = f.service.Cancel(context.Background(), created.ID, "emp-2", staffCaps)
	assert.ErrorIs(t, err, leave.ErrNotApplicationOwner)

	require.NoError(t, f.service.Cancel(context.Background(), created.ID, "emp-1", staffCaps))

	stored, err := f.applications.GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, leave.StatusCancelled, stored.Status)

	b := f.balance(t, "emp-1", start.Year())
	assert.Equal(t, 0, b.UsedDays)
}

func TestCancelApprovedNotAllowed(t *testing.T) {
	f := newWorkflowFixture(t)
	start, startStr := futureDate(14)
	f.allocate(t, "emp-1", start.Year(), 12, 0)

	created, err := f.service.Submit(context.Background(), leave.SubmitApplicationRequest{
		EmployeeID:  "emp-1",
		LeaveTypeID: f.annualLeave.ID,
		StartDate:   startStr,
		EndDate:     startStr,
		Reason:      "trip",
	}, staffCaps)
	require.NoError(t, err)
	require.NoError(t, f.service.Approve(context.Background(), created.ID, "mgr-1", nil, approverCaps))

	err = f.service.Cancel(context.Background(), created.ID, "emp-1", staffCaps)
	assert.ErrorIs(t, err, leave.ErrAlreadyProcessed)

	// Even a privileged caller cannot cancel approved leave.
	err = f.service.Cancel(context.Background(), created.ID, "mgr-1", approverCaps)
	assert.ErrorIs(t, err, leave.ErrAlreadyProcessed)
}

func TestAutoApproveRunsApprovalEffects(t *testing.T) {
	f := newWorkflowFixture(t)
	start, startStr := futureDate(14)
	f.allocate(t, "mgr-1", start.Year(), 12, 0)
	_, endStr := futureDate(15)

	created, err := f.service.Submit(context.Background(), leave.SubmitApplicationRequest{
		EmployeeID:  "mgr-1",
		LeaveTypeID: f.annualLeave.ID,
		StartDate:   startStr,
		EndDate:     endStr,
		Reason:      "conference",
		AutoApprove: true,
	}, approverCaps)
	require.NoError(t, err)
	assert.Equal(t, leave.StatusApproved, created.Status)

	b := f.balance(t, "mgr-1", start.Year())
	assert.Equal(t, 2, b.UsedDays)

	rows, err := f.approvals.ListByApplication(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestAutoApproveReturnsDecisionFields(t *testing.T) {
	f := newWorkflowFixture(t)
	start, startStr := futureDate(14)
	f.allocate(t, "mgr-1", start.Year(), 12, 0)

	created, err := f.service.Submit(context.Background(), leave.SubmitApplicationRequest{
		EmployeeID:  "mgr-1",
		LeaveTypeID: f.annualLeave.ID,
		StartDate:   startStr,
		EndDate:     startStr,
		Reason:      "conference",
		AutoApprove: true,
	}, approverCaps)
	require.NoError(t, err)

	require.NotNil(t, created.ApprovedBy)
	assert.Equal(t, "mgr-1", *created.ApprovedBy)
	assert.NotNil(t, created.ApprovedAt)

	stored, err := f.applications.GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, stored.ApprovedBy, created.ApprovedBy)
}

func TestAutoApproveIgnoredForStaff(t *testing.T) {
	f := newWorkflowFixture(t)
	start, startStr := futureDate(14)
	f.allocate(t, "emp-1", start.Year(), 12, 0)

	created, err := f.service.Submit(context.Background(), leave.SubmitApplicationRequest{
		EmployeeID:  "emp-1",
		LeaveTypeID: f.annualLeave.ID,
		StartDate:   startStr,
		EndDate:     startStr,
		Reason:      "trip",
		AutoApprove: true,
	}, staffCaps)
	require.NoError(t, err)
	assert.Equal(t, leave.StatusPending, created.Status)
}

func TestSubmitUnknownLeaveType(t *testing.T) {
	f := newWorkflowFixture(t)
	_, startStr := futureDate(14)

	_, err := f.service.Submit(context.Background(), leave.SubmitApplicationRequest{
		EmployeeID:  "emp-1",
		LeaveTypeID: "missing",
		StartDate:   startStr,
		EndDate:     startStr,
		Reason:      "trip",
	}, staffCaps)
	assert.True(t, errors.Is(err, leave.ErrLeaveTypeNotFound))
}
