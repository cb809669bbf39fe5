package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/peopledesk/hr-backend-go/internal/domain/master/branch"
	"github.com/peopledesk/hr-backend-go/internal/handler/http/response"
	masterservice "github.com/peopledesk/hr-backend-go/internal/service/master"
)

type MasterHandler interface {
	CreateBranch(w http.ResponseWriter, r *http.Request)
	GetBranch(w http.ResponseWriter, r *http.Request)
	ListBranches(w http.ResponseWriter, r *http.Request)
}

type MasterHandlerImpl struct {
	masterService masterservice.MasterService
}

func NewMasterHandler(masterService masterservice.MasterService) MasterHandler {
	return &MasterHandlerImpl{masterService: masterService}
}

// CreateBranch implements MasterHandler.
func (h *MasterHandlerImpl) CreateBranch(w http.ResponseWriter, r *http.Request) {
	var req branch.CreateBranchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("CreateBranch decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	created, err := h.masterService.CreateBranch(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Branch created successfully", created)
}

// GetBranch implements MasterHandler.
func (h *MasterHandlerImpl) GetBranch(w http.ResponseWriter, r *http.Request) {
	b, err := h.masterService.GetBranch(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, b)
}

// ListBranches implements MasterHandler.
func (h *MasterHandlerImpl) ListBranches(w http.ResponseWriter, r *http.Request) {
	branches, err := h.masterService.ListBranches(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, branches)
}
