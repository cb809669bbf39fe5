package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/peopledesk/hr-backend-go/internal/domain/transfer"
	"github.com/peopledesk/hr-backend-go/internal/handler/http/middleware"
	"github.com/peopledesk/hr-backend-go/internal/handler/http/response"
	transferservice "github.com/peopledesk/hr-backend-go/internal/service/transfer"
)

type TransferHandler interface {
	Submit(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Approve(w http.ResponseWriter, r *http.Request)
	Reject(w http.ResponseWriter, r *http.Request)
	Cancel(w http.ResponseWriter, r *http.Request)
	Complete(w http.ResponseWriter, r *http.Request)
}

type TransferHandlerImpl struct {
	transferService transferservice.TransferService
}

func NewTransferHandler(transferService transferservice.TransferService) TransferHandler {
	return &TransferHandlerImpl{transferService: transferService}
}

// Submit implements TransferHandler. Staff submit for themselves; HR
// admins may submit on another employee's behalf.
func (h *TransferHandlerImpl) Submit(w http.ResponseWriter, r *http.Request) {
	id, err := middleware.IdentityFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req transfer.SubmitTransferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Submit transfer decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if req.EmployeeID == "" || !id.Capabilities.CanApprove {
		req.EmployeeID = id.EmployeeID
	}

	created, err := h.transferService.Submit(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Transfer request submitted", created)
}

// Get implements TransferHandler.
func (h *TransferHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	req, err := h.transferService.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, req)
}

// List implements TransferHandler.
func (h *TransferHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	var filter transfer.ListFilter

	if v := q.Get("employee_id"); v != "" {
		filter.EmployeeID = &v
	}
	if v := q.Get("status"); v != "" {
		filter.Status = &v
	}
	filter.Page, _ = strconv.Atoi(q.Get("page"))
	filter.Limit, _ = strconv.Atoi(q.Get("limit"))

	transfers, total, err := h.transferService.List(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, transfers, response.NewMeta(filter.Page, filter.Limit, total))
}

// Approve implements TransferHandler.
func (h *TransferHandlerImpl) Approve(w http.ResponseWriter, r *http.Request) {
	id, err := middleware.IdentityFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	if err := h.transferService.Approve(r.Context(), chi.URLParam(r, "id"), id.EmployeeID, id.Capabilities); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Transfer request approved", nil)
}

// Reject implements TransferHandler.
func (h *TransferHandlerImpl) Reject(w http.ResponseWriter, r *http.Request) {
	id, err := middleware.IdentityFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req transfer.RejectTransferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Reject transfer decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.TransferID = chi.URLParam(r, "id")

	if err := h.transferService.Reject(r.Context(), req, id.EmployeeID, id.Capabilities); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Transfer request rejected", nil)
}

// Cancel implements TransferHandler.
func (h *TransferHandlerImpl) Cancel(w http.ResponseWriter, r *http.Request) {
	id, err := middleware.IdentityFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	if err := h.transferService.Cancel(r.Context(), chi.URLParam(r, "id"), id.EmployeeID, id.Capabilities); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Transfer request cancelled", nil)
}

// Complete implements TransferHandler.
func (h *TransferHandlerImpl) Complete(w http.ResponseWriter, r *http.Request) {
	id, err := middleware.IdentityFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	if err := h.transferService.Complete(r.Context(), chi.URLParam(r, "id"), id.Capabilities); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Transfer completed", nil)
}
