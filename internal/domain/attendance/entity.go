package attendance

import "time"

// Attendance is one employee's record for one calendar day. At most one row
// exists per (employee, date).
type Attendance struct {
	ID         string
	EmployeeID string
	Date       time.Time
	ClockIn    time.Time
	ClockOut   *time.Time
	Note       *string
	CreatedAt  time.Time
	UpdatedAt  time.Time

	EmployeeName *string
}

// WorkedHours returns the clocked duration in hours, zero while still
// clocked in.
func (a Attendance) WorkedHours() float64 {
	if a.ClockOut == nil {
		return 0
	}
	return a.ClockOut.Sub(a.ClockIn).Hours()
}
