package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/peopledesk/hr-backend-go/internal/domain/auth"
	"github.com/peopledesk/hr-backend-go/internal/handler/http/response"
	authservice "github.com/peopledesk/hr-backend-go/internal/service/auth"
)

type AuthHandler interface {
	Login(w http.ResponseWriter, r *http.Request)
}

type AuthHandlerImpl struct {
	authService authservice.AuthService
}

func NewAuthHandler(authService authservice.AuthService) AuthHandler {
	return &AuthHandlerImpl{authService: authService}
}

// Login implements AuthHandler.
func (h *AuthHandlerImpl) Login(w http.ResponseWriter, r *http.Request) {
	var req auth.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Login decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	resp, err := h.authService.Login(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, resp)
}
