package attendance

import (
	"context"
	"time"
)

// AttendanceRepository - interface for the attendances table
type AttendanceRepository interface {
	Create(ctx context.Context, att Attendance) (Attendance, error)
	GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (Attendance, error)
	SetClockOut(ctx context.Context, id string, clockOut time.Time, note *string) error
	ListByEmployeeMonth(ctx context.Context, employeeID string, year int, month time.Month) ([]Attendance, error)
	ListByDate(ctx context.Context, date time.Time) ([]Attendance, error)
}
