package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/peopledesk/hr-backend-go/internal/domain/leave"
	"github.com/peopledesk/hr-backend-go/internal/handler/http/middleware"
	"github.com/peopledesk/hr-backend-go/internal/handler/http/response"
	"github.com/peopledesk/hr-backend-go/internal/service/file"
)

type LeaveHandler interface {
	CreateType(w http.ResponseWriter, r *http.Request)
	UpdateType(w http.ResponseWriter, r *http.Request)
	GetType(w http.ResponseWriter, r *http.Request)
	ListTypes(w http.ResponseWriter, r *http.Request)
	DeleteType(w http.ResponseWriter, r *http.Request)

	Allocate(w http.ResponseWriter, r *http.Request)
	BulkAllocate(w http.ResponseWriter, r *http.Request)
	Rollover(w http.ResponseWriter, r *http.Request)
	ListBalances(w http.ResponseWriter, r *http.Request)
	GetMyBalances(w http.ResponseWriter, r *http.Request)

	Submit(w http.ResponseWriter, r *http.Request)
	ListApplications(w http.ResponseWriter, r *http.Request)
	GetMyApplications(w http.ResponseWriter, r *http.Request)
	GetApplication(w http.ResponseWriter, r *http.Request)
	Approve(w http.ResponseWriter, r *http.Request)
	Reject(w http.ResponseWriter, r *http.Request)
	Cancel(w http.ResponseWriter, r *http.Request)
	ApprovalHistory(w http.ResponseWriter, r *http.Request)
}

type LeaveHandlerImpl struct {
	leaveService leave.LeaveService
	fileService  file.FileService
}

func NewLeaveHandler(leaveService leave.LeaveService, fileService file.FileService) LeaveHandler {
	return &LeaveHandlerImpl{
		leaveService: leaveService,
		fileService:  fileService,
	}
}

// CreateType implements LeaveHandler.
func (l *LeaveHandlerImpl) CreateType(w http.ResponseWriter, r *http.Request) {
	var req leave.CreateLeaveTypeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("CreateType decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	created, err := l.leaveService.CreateLeaveType(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Leave type created successfully", created)
}

// UpdateType implements LeaveHandler.
func (l *LeaveHandlerImpl) UpdateType(w http.ResponseWriter, r *http.Request) {
	var req leave.UpdateLeaveTypeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("UpdateType decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	if err := l.leaveService.UpdateLeaveType(r.Context(), req); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave type updated successfully", nil)
}

// GetType implements LeaveHandler.
func (l *LeaveHandlerImpl) GetType(w http.ResponseWriter, r *http.Request) {
	leaveType, err := l.leaveService.GetLeaveType(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, leaveType)
}

// ListTypes implements LeaveHandler.
func (l *LeaveHandlerImpl) ListTypes(w http.ResponseWriter, r *http.Request) {
	types, err := l.leaveService.ListLeaveTypes(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, types)
}

// DeleteType implements LeaveHandler.
func (l *LeaveHandlerImpl) DeleteType(w http.ResponseWriter, r *http.Request) {
	if err := l.leaveService.DeleteLeaveType(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Leave type deleted successfully", nil)
}

// Allocate implements LeaveHandler.
func (l *LeaveHandlerImpl) Allocate(w http.ResponseWriter, r *http.Request) {
	var req leave.AllocateBalanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Allocate decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	balance, err := l.leaveService.Allocate(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave balance allocated successfully", balance)
}

// BulkAllocate implements LeaveHandler.
func (l *LeaveHandlerImpl) BulkAllocate(w http.ResponseWriter, r *http.Request) {
	var req leave.BulkAllocateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("BulkAllocate decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	balances, err := l.leaveService.BulkAllocate(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave balances allocated successfully", balances)
}

// Rollover implements LeaveHandler.
func (l *LeaveHandlerImpl) Rollover(w http.ResponseWriter, r *http.Request) {
	var req leave.RolloverRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Rollover decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	count, err := l.leaveService.RolloverYear(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Year rollover completed", map[string]int{"balances_rolled": count})
}

// ListBalances implements LeaveHandler.
func (l *LeaveHandlerImpl) ListBalances(w http.ResponseWriter, r *http.Request) {
	year := yearParam(r)
	balances, err := l.leaveService.ListBalances(r.Context(), year)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, balances)
}

// GetMyBalances implements LeaveHandler.
func (l *LeaveHandlerImpl) GetMyBalances(w http.ResponseWriter, r *http.Request) {
	id, err := middleware.IdentityFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	balances, err := l.leaveService.GetEmployeeBalances(r.Context(), id.EmployeeID, yearParam(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, balances)
}

// Submit implements LeaveHandler. Accepts JSON, or multipart form data
// when the application carries a supporting document.
func (l *LeaveHandlerImpl) Submit(w http.ResponseWriter, r *http.Request) {
	id, err := middleware.IdentityFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req leave.SubmitApplicationRequest

	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		if err := r.ParseMultipartForm(10 << 20); err != nil {
			response.BadRequest(w, "Invalid multipart form", nil)
			return
		}
		req.LeaveTypeID = r.FormValue("leave_type_id")
		req.StartDate = r.FormValue("start_date")
		req.EndDate = r.FormValue("end_date")
		req.Reason = r.FormValue("reason")
		req.AutoApprove = r.FormValue("auto_approve") == "true"

		if f, header, err := r.FormFile("attachment"); err == nil {
			defer f.Close()
			path, err := l.fileService.UploadLeaveAttachment(r.Context(), id.EmployeeID, f, header.Filename)
			if err != nil {
				slog.Error("Submit attachment upload failed", "error", err)
				response.BadRequest(w, "Failed to store attachment", nil)
				return
			}
			req.AttachmentURL = &path
		}
	} else {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			slog.Error("Submit decode error", "error", err)
			response.BadRequest(w, "Invalid request format", nil)
			return
		}
	}

	req.EmployeeID = id.EmployeeID

	application, err := l.leaveService.Submit(r.Context(), req, id.Capabilities)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Leave application submitted successfully", application)
}

// ListApplications implements LeaveHandler.
func (l *LeaveHandlerImpl) ListApplications(w http.ResponseWriter, r *http.Request) {
	filter := applicationFilter(r)
	list, err := l.leaveService.ListApplications(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMeta(w, list.Applications, response.NewMeta(list.Page, list.Limit, list.TotalCount))
}

// GetMyApplications implements LeaveHandler.
func (l *LeaveHandlerImpl) GetMyApplications(w http.ResponseWriter, r *http.Request) {
	id, err := middleware.IdentityFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	filter := applicationFilter(r)
	list, err := l.leaveService.ListMyApplications(r.Context(), id.EmployeeID, filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMeta(w, list.Applications, response.NewMeta(list.Page, list.Limit, list.TotalCount))
}

// GetApplication implements LeaveHandler.
func (l *LeaveHandlerImpl) GetApplication(w http.ResponseWriter, r *http.Request) {
	id, err := middleware.IdentityFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	application, err := l.leaveService.GetApplication(r.Context(), chi.URLParam(r, "id"), id.EmployeeID, id.Capabilities)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, application)
}

// Approve implements LeaveHandler.
func (l *LeaveHandlerImpl) Approve(w http.ResponseWriter, r *http.Request) {
	id, err := middleware.IdentityFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var body struct {
		Comment string `json:"comment,omitempty"`
	}
	// Approve has no required body fields; an empty body is fine.
	_ = json.NewDecoder(r.Body).Decode(&body)

	if err := l.leaveService.Approve(r.Context(), chi.URLParam(r, "id"), id.EmployeeID, body.Comment, id.Capabilities); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave application approved successfully", nil)
}

// Reject implements LeaveHandler.
func (l *LeaveHandlerImpl) Reject(w http.ResponseWriter, r *http.Request) {
	id, err := middleware.IdentityFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req leave.RejectApplicationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Reject decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ApplicationID = chi.URLParam(r, "id")

	if err := l.leaveService.Reject(r.Context(), req, id.EmployeeID, id.Capabilities); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave application rejected", nil)
}

// Cancel implements LeaveHandler.
func (l *LeaveHandlerImpl) Cancel(w http.ResponseWriter, r *http.Request) {
	id, err := middleware.IdentityFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	if err := l.leaveService.Cancel(r.Context(), chi.URLParam(r, "id"), id.EmployeeID, id.Capabilities); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave application cancelled", nil)
}

// ApprovalHistory implements LeaveHandler.
func (l *LeaveHandlerImpl) ApprovalHistory(w http.ResponseWriter, r *http.Request) {
	approvals, err := l.leaveService.ApprovalHistory(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, approvals)
}

func applicationFilter(r *http.Request) leave.ApplicationFilter {
	var filter leave.ApplicationFilter
	q := r.URL.Query()

	if v := q.Get("leave_type_id"); v != "" {
		filter.LeaveTypeID = &v
	}
	if v := q.Get("status"); v != "" {
		filter.Status = &v
	}
	if v := q.Get("start_date"); v != "" {
		filter.StartDate = &v
	}
	if v := q.Get("end_date"); v != "" {
		filter.EndDate = &v
	}
	filter.Page, _ = strconv.Atoi(q.Get("page"))
	filter.Limit, _ = strconv.Atoi(q.Get("limit"))

	return filter
}

func yearParam(r *http.Request) int {
	year, err := strconv.Atoi(r.URL.Query().Get("year"))
	if err != nil || year <= 0 {
		return time.Now().Year()
	}
	return year
}
