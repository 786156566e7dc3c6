package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/leanchem/erp-backend-go/internal/domain/employee"
	"github.com/leanchem/erp-backend-go/internal/handler/http/middleware"
	"github.com/leanchem/erp-backend-go/internal/handler/http/response"
)

// EmployeeHandler defines the employee handler interface
type EmployeeHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	GetByID(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Deactivate(w http.ResponseWriter, r *http.Request)
	DeletePermanently(w http.ResponseWriter, r *http.Request)
	ResetPassword(w http.ResponseWriter, r *http.Request)
	UploadPhoto(w http.ResponseWriter, r *http.Request)
	DeletePhoto(w http.ResponseWriter, r *http.Request)
	SetJobDescription(w http.ResponseWriter, r *http.Request)
}

type employeeHandlerImpl struct {
	employeeService employee.Service
}

// NewEmployeeHandler creates a new employee handler
func NewEmployeeHandler(employeeService employee.Service) EmployeeHandler {
	return &employeeHandlerImpl{employeeService: employeeService}
}

// Create implements EmployeeHandler.
func (h *employeeHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req employee.CreateEmployeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Create employee decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	actor := middleware.ActorFromRequest(r)
	emp, err := h.employeeService.Create(r.Context(), actor, req)
	if err != nil {
		slog.Error("Create employee service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Employee created successfully", emp)
}

// GetByID implements EmployeeHandler.
func (h *employeeHandlerImpl) GetByID(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	actor := middleware.ActorFromRequest(r)

	emp, err := h.employeeService.GetByID(r.Context(), actor, id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, emp)
}

// List implements EmployeeHandler.
func (h *employeeHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	actor := middleware.ActorFromRequest(r)
	includeInactive := r.URL.Query().Get("include_inactive") == "true"

	employees, err := h.employeeService.List(r.Context(), actor, includeInactive)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, employees)
}

// Update implements EmployeeHandler.
func (h *employeeHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	var req employee.UpdateEmployeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Update employee decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	id := chi.URLParam(r, "id")
	actor := middleware.ActorFromRequest(r)

	emp, err := h.employeeService.Update(r.Context(), actor, id, req)
	if err != nil {
		slog.Error("Update employee service error", "error", err, "employee_id", id)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Employee updated successfully", emp)
}

// Deactivate implements EmployeeHandler.
func (h *employeeHandlerImpl) Deactivate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	actor := middleware.ActorFromRequest(r)

	if err := h.employeeService.Deactivate(r.Context(), actor, id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Employee deactivated", nil)
}

// DeletePermanently implements EmployeeHandler.
func (h *employeeHandlerImpl) DeletePermanently(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	actor := middleware.ActorFromRequest(r)

	if err := h.employeeService.DeletePermanently(r.Context(), actor, id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Employee deleted permanently", nil)
}

// ResetPassword implements EmployeeHandler.
func (h *employeeHandlerImpl) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req employee.ResetPasswordRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			response.BadRequest(w, "Invalid request format", nil)
			return
		}
	}

	id := chi.URLParam(r, "id")
	actor := middleware.ActorFromRequest(r)

	if err := h.employeeService.ResetPassword(r.Context(), actor, id, req); err != nil {
		slog.Error("ResetPassword service error", "error", err, "employee_id", id)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Password reset", nil)
}

// UploadPhoto implements EmployeeHandler. Expects multipart form data with
// a "photo" field.
func (h *employeeHandlerImpl) UploadPhoto(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		response.BadRequest(w, "Invalid multipart form", nil)
		return
	}

	file, header, err := r.FormFile("photo")
	if err != nil {
		response.BadRequest(w, "photo file is required", nil)
		return
	}
	defer file.Close()

	id := chi.URLParam(r, "id")
	actor := middleware.ActorFromRequest(r)

	emp, err := h.employeeService.UploadPhoto(r.Context(), actor, id, file, header.Filename, header.Size)
	if err != nil {
		slog.Error("UploadPhoto service error", "error", err, "employee_id", id)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Photo uploaded", emp)
}

// DeletePhoto implements EmployeeHandler.
func (h *employeeHandlerImpl) DeletePhoto(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	actor := middleware.ActorFromRequest(r)

	emp, err := h.employeeService.DeletePhoto(r.Context(), actor, id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Photo removed", emp)
}

// SetJobDescription implements EmployeeHandler.
func (h *employeeHandlerImpl) SetJobDescription(w http.ResponseWriter, r *http.Request) {
	var req employee.SetJobDescriptionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	id := chi.URLParam(r, "id")
	actor := middleware.ActorFromRequest(r)

	emp, err := h.employeeService.SetJobDescriptionURL(r.Context(), actor, id, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Job description link updated", emp)
}
