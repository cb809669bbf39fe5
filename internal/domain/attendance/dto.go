package attendance

import (
	"time"

	"github.com/peopledesk/hr-backend-go/internal/pkg/validator"
)

type ClockInRequest struct {
	EmployeeID string  `json:"-"`
	Note       *string `json:"note,omitempty"`
}

type ClockOutRequest struct {
	EmployeeID string  `json:"-"`
	Note       *string `json:"note,omitempty"`
}

type MonthQuery struct {
	EmployeeID string
	Year       int
	Month      int
}

func (q *MonthQuery) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(q.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if q.Year <= 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "year",
			Message: "year must be a positive integer",
		})
	}

	if q.Month < 1 || q.Month > 12 {
		errs = append(errs, validator.ValidationError{
			Field:   "month",
			Message: "month must be between 1 and 12",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type AttendanceResponse struct {
	ID           string     `json:"id"`
	EmployeeID   string     `json:"employee_id"`
	EmployeeName string     `json:"employee_name,omitempty"`
	Date         time.Time  `json:"date"`
	ClockIn      time.Time  `json:"clock_in"`
	ClockOut     *time.Time `json:"clock_out,omitempty"`
	WorkedHours  float64    `json:"worked_hours"`
	Note         *string    `json:"note,omitempty"`
}

func ToResponse(a Attendance) AttendanceResponse {
	resp := AttendanceResponse{
		ID:          a.ID,
		EmployeeID:  a.EmployeeID,
		Date:        a.Date,
		ClockIn:     a.ClockIn,
		ClockOut:    a.ClockOut,
		WorkedHours: a.WorkedHours(),
		Note:        a.Note,
	}
	if a.EmployeeName != nil {
		resp.EmployeeName = *a.EmployeeName
	}
	return resp
}
