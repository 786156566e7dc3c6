package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/leanchem/erp-backend-go/internal/domain/auth"
	"github.com/leanchem/erp-backend-go/internal/handler/http/middleware"
	"github.com/leanchem/erp-backend-go/internal/handler/http/response"
)

// AuthHandler defines the auth handler interface
type AuthHandler interface {
	Login(w http.ResponseWriter, r *http.Request)
	ValidateToken(w http.ResponseWriter, r *http.Request)
	ChangePassword(w http.ResponseWriter, r *http.Request)
	Logout(w http.ResponseWriter, r *http.Request)
}

type authHandlerImpl struct {
	authService auth.Service
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService auth.Service) AuthHandler {
	return &authHandlerImpl{authService: authService}
}

// Login implements AuthHandler.
func (h *authHandlerImpl) Login(w http.ResponseWriter, r *http.Request) {
	var loginReq auth.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&loginReq); err != nil {
		slog.Error("Login decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	loginResponse, err := h.authService.Login(r.Context(), loginReq)
	if err != nil {
		slog.Error("Login service error", "error", err)
		response.HandleError(w, err)
		return
	}

	slog.Info("User logged in", "employee_id", loginResponse.User.EmployeeID, "role", loginResponse.User.Role)
	response.SuccessWithMessage(w, "Logged in successfully", loginResponse)
}

// ValidateToken implements AuthHandler. The token was already verified by
// the middleware chain; this just echoes the identity it carries.
func (h *authHandlerImpl) ValidateToken(w http.ResponseWriter, r *http.Request) {
	actor := middleware.ActorFromRequest(r)

	response.Success(w, auth.UserResponse{
		EmployeeID: actor.EmployeeID,
		Name:       actor.Name,
		Email:      actor.Email,
		Role:       string(actor.Role),
	})
}

// ChangePassword implements AuthHandler.
func (h *authHandlerImpl) ChangePassword(w http.ResponseWriter, r *http.Request) {
	var req auth.ChangePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("ChangePassword decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	actor := middleware.ActorFromRequest(r)
	if err := h.authService.ChangePassword(r.Context(), actor, req); err != nil {
		slog.Error("ChangePassword service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Password changed successfully", nil)
}

// Logout implements AuthHandler.
func (h *authHandlerImpl) Logout(w http.ResponseWriter, r *http.Request) {
	token := middleware.BearerToken(r)
	if token == "" {
		response.Unauthorized(w, "Missing token")
		return
	}

	h.authService.Logout(r.Context(), token)
	response.SuccessWithMessage(w, "Logged out successfully", nil)
}
