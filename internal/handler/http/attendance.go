package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/peopledesk/hr-backend-go/internal/domain/attendance"
	"github.com/peopledesk/hr-backend-go/internal/handler/http/middleware"
	"github.com/peopledesk/hr-backend-go/internal/handler/http/response"
	attendanceservice "github.com/peopledesk/hr-backend-go/internal/service/attendance"
)

type AttendanceHandler interface {
	ClockIn(w http.ResponseWriter, r *http.Request)
	ClockOut(w http.ResponseWriter, r *http.Request)
	GetMyMonth(w http.ResponseWriter, r *http.Request)
	ListDay(w http.ResponseWriter, r *http.Request)
}

type AttendanceHandlerImpl struct {
	attendanceService attendanceservice.AttendanceService
}

func NewAttendanceHandler(attendanceService attendanceservice.AttendanceService) AttendanceHandler {
	return &AttendanceHandlerImpl{attendanceService: attendanceService}
}

// ClockIn implements AttendanceHandler.
func (h *AttendanceHandlerImpl) ClockIn(w http.ResponseWriter, r *http.Request) {
	id, err := middleware.IdentityFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req attendance.ClockInRequest
	_ = json.NewDecoder(r.Body).Decode(&req)
	req.EmployeeID = id.EmployeeID

	record, err := h.attendanceService.ClockIn(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Clocked in", record)
}

// ClockOut implements AttendanceHandler.
func (h *AttendanceHandlerImpl) ClockOut(w http.ResponseWriter, r *http.Request) {
	id, err := middleware.IdentityFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req attendance.ClockOutRequest
	_ = json.NewDecoder(r.Body).Decode(&req)
	req.EmployeeID = id.EmployeeID

	record, err := h.attendanceService.ClockOut(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Clocked out", record)
}

// GetMyMonth implements AttendanceHandler.
func (h *AttendanceHandlerImpl) GetMyMonth(w http.ResponseWriter, r *http.Request) {
	id, err := middleware.IdentityFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	now := time.Now()
	q := attendance.MonthQuery{
		EmployeeID: id.EmployeeID,
		Year:       now.Year(),
		Month:      int(now.Month()),
	}
	if v, err := strconv.Atoi(r.URL.Query().Get("year")); err == nil {
		q.Year = v
	}
	if v, err := strconv.Atoi(r.URL.Query().Get("month")); err == nil {
		q.Month = v
	}

	records, err := h.attendanceService.ListMonth(r.Context(), q)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, records)
}

// ListDay implements AttendanceHandler.
func (h *AttendanceHandlerImpl) ListDay(w http.ResponseWriter, r *http.Request) {
	date := time.Now()
	if v := r.URL.Query().Get("date"); v != "" {
		parsed, err := time.Parse("2006-01-02", v)
		if err != nil {
			response.BadRequest(w, "date must be a valid date (YYYY-MM-DD)", nil)
			return
		}
		date = parsed
	}

	records, err := h.attendanceService.ListDay(r.Context(), date)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, records)
}
