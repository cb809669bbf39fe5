package attendance

import (
	"context"
	"fmt"
	"time"

	"github.com/peopledesk/hr-backend-go/internal/domain/attendance"
)

type AttendanceService interface {
	ClockIn(ctx context.Context, req attendance.ClockInRequest) (attendance.AttendanceResponse, error)
	ClockOut(ctx context.Context, req attendance.ClockOutRequest) (attendance.AttendanceResponse, error)
	ListMonth(ctx context.Context, q attendance.MonthQuery) ([]attendance.AttendanceResponse, error)
	ListDay(ctx context.Context, date time.Time) ([]attendance.AttendanceResponse, error)
}

type AttendanceServiceImpl struct {
	attendance.AttendanceRepository
}

func NewAttendanceService(attendanceRepository attendance.AttendanceRepository) AttendanceService {
	return &AttendanceServiceImpl{AttendanceRepository: attendanceRepository}
}

// ClockIn implements AttendanceService. One record per employee per
// calendar day; a second clock-in the same day is rejected.
func (s *AttendanceServiceImpl) ClockIn(ctx context.Context, req attendance.ClockInRequest) (attendance.AttendanceResponse, error) {
	now := time.Now()
	date := dateOf(now)

	_, err := s.AttendanceRepository.GetByEmployeeAndDate(ctx, req.EmployeeID, date)
	if err == nil {
		return attendance.AttendanceResponse{}, attendance.ErrAlreadyClockedIn
	}
	if err != attendance.ErrRecordNotFound {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to check today's attendance: %w", err)
	}

	created, err := s.AttendanceRepository.Create(ctx, attendance.Attendance{
		EmployeeID: req.EmployeeID,
		Date:       date,
		ClockIn:    now,
		Note:       req.Note,
	})
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to clock in: %w", err)
	}
	return attendance.ToResponse(created), nil
}

// ClockOut implements AttendanceService.
func (s *AttendanceServiceImpl) ClockOut(ctx context.Context, req attendance.ClockOutRequest) (attendance.AttendanceResponse, error) {
	now := time.Now()
	date := dateOf(now)

	record, err := s.AttendanceRepository.GetByEmployeeAndDate(ctx, req.EmployeeID, date)
	if err != nil {
		if err == attendance.ErrRecordNotFound {
			return attendance.AttendanceResponse{}, attendance.ErrNotClockedIn
		}
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to get today's attendance: %w", err)
	}
	if record.ClockOut != nil {
		return attendance.AttendanceResponse{}, attendance.ErrAlreadyClockedOut
	}

	if err := s.AttendanceRepository.SetClockOut(ctx, record.ID, now, req.Note); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	record.ClockOut = &now
	if req.Note != nil {
		record.Note = req.Note
	}
	return attendance.ToResponse(record), nil
}

// ListMonth implements AttendanceService.
func (s *AttendanceServiceImpl) ListMonth(ctx context.Context, q attendance.MonthQuery) ([]attendance.AttendanceResponse, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}

	records, err := s.AttendanceRepository.ListByEmployeeMonth(ctx, q.EmployeeID, q.Year, time.Month(q.Month))
	if err != nil {
		return nil, fmt.Errorf("failed to list month attendance: %w", err)
	}

	responses := make([]attendance.AttendanceResponse, 0, len(records))
	for _, r := range records {
		responses = append(responses, attendance.ToResponse(r))
	}
	return responses, nil
}

// ListDay implements AttendanceService.
func (s *AttendanceServiceImpl) ListDay(ctx context.Context, date time.Time) ([]attendance.AttendanceResponse, error) {
	records, err := s.AttendanceRepository.ListByDate(ctx, dateOf(date))
	if err != nil {
		return nil, fmt.Errorf("failed to list day attendance: %w", err)
	}

	responses := make([]attendance.AttendanceResponse, 0, len(records))
	for _, r := range records {
		responses = append(responses, attendance.ToResponse(r))
	}
	return responses, nil
}

func dateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
