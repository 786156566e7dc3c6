package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/leanchem/erp-backend-go/internal/domain/objective"
	"github.com/leanchem/erp-backend-go/internal/domain/task"
	"github.com/leanchem/erp-backend-go/internal/handler/http/middleware"
	"github.com/leanchem/erp-backend-go/internal/handler/http/response"
)

// ObjectiveHandler defines the objective handler interface
type ObjectiveHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	GetByID(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

// objectiveDetailResponse bundles an objective with its tasks.
type objectiveDetailResponse struct {
	objective.ObjectiveResponse
	Tasks []task.TaskResponse `json:"tasks"`
}

type objectiveHandlerImpl struct {
	objectiveService objective.Service
	taskService      task.Service
}

// NewObjectiveHandler creates a new objective handler
func NewObjectiveHandler(objectiveService objective.Service, taskService task.Service) ObjectiveHandler {
	return &objectiveHandlerImpl{
		objectiveService: objectiveService,
		taskService:      taskService,
	}
}

// Create implements ObjectiveHandler.
func (h *objectiveHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req objective.CreateObjectiveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Create objective decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	actor := middleware.ActorFromRequest(r)
	obj, err := h.objectiveService.Create(r.Context(), actor, req)
	if err != nil {
		slog.Error("Create objective service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Objective created successfully", obj)
}

// GetByID implements ObjectiveHandler. The detail view embeds the
// objective's tasks.
func (h *objectiveHandlerImpl) GetByID(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	actor := middleware.ActorFromRequest(r)

	obj, err := h.objectiveService.GetByID(r.Context(), actor, id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	tasks, err := h.taskService.ListByObjective(r.Context(), actor, id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, objectiveDetailResponse{
		ObjectiveResponse: *obj,
		Tasks:             tasks,
	})
}

// List implements ObjectiveHandler.
func (h *objectiveHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	actor := middleware.ActorFromRequest(r)

	objectives, err := h.objectiveService.List(r.Context(), actor)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, objectives)
}

// Update implements ObjectiveHandler.
func (h *objectiveHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	var req objective.UpdateObjectiveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	id := chi.URLParam(r, "id")
	actor := middleware.ActorFromRequest(r)

	obj, err := h.objectiveService.Update(r.Context(), actor, id, req)
	if err != nil {
		slog.Error("Update objective service error", "error", err, "objective_id", id)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Objective updated successfully", obj)
}

// Delete implements ObjectiveHandler.
func (h *objectiveHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	actor := middleware.ActorFromRequest(r)

	if err := h.objectiveService.Delete(r.Context(), actor, id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Objective deleted", nil)
}
