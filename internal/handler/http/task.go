package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/leanchem/erp-backend-go/internal/domain/task"
	"github.com/leanchem/erp-backend-go/internal/handler/http/middleware"
	"github.com/leanchem/erp-backend-go/internal/handler/http/response"
)

// maxUploadSize caps multipart parsing for task attachments.
const maxUploadSize = 10 << 20

// TaskHandler defines the task handler interface
type TaskHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	GetByID(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
	CreateUpdate(w http.ResponseWriter, r *http.Request)
	ListUpdates(w http.ResponseWriter, r *http.Request)
	AddNote(w http.ResponseWriter, r *http.Request)
	UploadFile(w http.ResponseWriter, r *http.Request)
	ListNotes(w http.ResponseWriter, r *http.Request)
	ListAttachments(w http.ResponseWriter, r *http.Request)
	Dashboard(w http.ResponseWriter, r *http.Request)
}

type taskHandlerImpl struct {
	taskService task.Service
}

// NewTaskHandler creates a new task handler
func NewTaskHandler(taskService task.Service) TaskHandler {
	return &taskHandlerImpl{taskService: taskService}
}

// Create implements TaskHandler.
func (h *taskHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req task.CreateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Create task decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	actor := middleware.ActorFromRequest(r)
	created, err := h.taskService.Create(r.Context(), actor, req)
	if err != nil {
		slog.Error("Create task service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Task created successfully", created)
}

// GetByID implements TaskHandler.
func (h *taskHandlerImpl) GetByID(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	actor := middleware.ActorFromRequest(r)

	t, err := h.taskService.GetByID(r.Context(), actor, id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, t)
}

// List implements TaskHandler.
func (h *taskHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	actor := middleware.ActorFromRequest(r)

	tasks, err := h.taskService.List(r.Context(), actor)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, tasks)
}

// Update implements TaskHandler.
func (h *taskHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	var req task.UpdateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	id := chi.URLParam(r, "id")
	actor := middleware.ActorFromRequest(r)

	updated, err := h.taskService.Update(r.Context(), actor, id, req)
	if err != nil {
		slog.Error("Update task service error", "error", err, "task_id", id)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Task updated successfully", updated)
}

// Delete implements TaskHandler.
func (h *taskHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	actor := middleware.ActorFromRequest(r)

	if err := h.taskService.Delete(r.Context(), actor, id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Task deleted", nil)
}

// CreateUpdate implements TaskHandler.
func (h *taskHandlerImpl) CreateUpdate(w http.ResponseWriter, r *http.Request) {
	var req task.CreateUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	id := chi.URLParam(r, "id")
	actor := middleware.ActorFromRequest(r)

	update, err := h.taskService.CreateUpdate(r.Context(), actor, id, req)
	if err != nil {
		slog.Error("Create task update service error", "error", err, "task_id", id)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Update posted", update)
}

// ListUpdates implements TaskHandler.
func (h *taskHandlerImpl) ListUpdates(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	actor := middleware.ActorFromRequest(r)

	updates, err := h.taskService.ListUpdates(r.Context(), actor, id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, updates)
}

// AddNote implements TaskHandler.
func (h *taskHandlerImpl) AddNote(w http.ResponseWriter, r *http.Request) {
	var req task.AddNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	id := chi.URLParam(r, "id")
	actor := middleware.ActorFromRequest(r)

	note, err := h.taskService.AddNote(r.Context(), actor, id, req)
	if err != nil {
		slog.Error("Add note service error", "error", err, "task_id", id)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Note added", note)
}

// UploadFile implements TaskHandler. Expects multipart form data with a
// "file" field.
func (h *taskHandlerImpl) UploadFile(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		response.BadRequest(w, "Invalid multipart form", nil)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		response.BadRequest(w, "file is required", nil)
		return
	}
	defer file.Close()

	id := chi.URLParam(r, "id")
	actor := middleware.ActorFromRequest(r)

	update, err := h.taskService.UploadFile(r.Context(), actor, id, task.FileUpload{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
		Content:     file,
	})
	if err != nil {
		slog.Error("Upload file service error", "error", err, "task_id", id)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "File uploaded", update)
}

// ListNotes implements TaskHandler.
func (h *taskHandlerImpl) ListNotes(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	actor := middleware.ActorFromRequest(r)

	notes, err := h.taskService.ListNotes(r.Context(), actor, id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, notes)
}

// ListAttachments implements TaskHandler.
func (h *taskHandlerImpl) ListAttachments(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	actor := middleware.ActorFromRequest(r)

	attachments, err := h.taskService.ListAttachments(r.Context(), actor, id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, attachments)
}

// Dashboard implements TaskHandler.
func (h *taskHandlerImpl) Dashboard(w http.ResponseWriter, r *http.Request) {
	actor := middleware.ActorFromRequest(r)

	dashboard, err := h.taskService.Dashboard(r.Context(), actor)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, dashboard)
}
