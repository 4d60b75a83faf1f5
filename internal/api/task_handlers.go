package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"gorm.io/gorm"

	"taskdeck/internal/model"
	"taskdeck/internal/service"
	"taskdeck/internal/validate"
)

type createTaskRequest struct {
	ID          string         `json:"id,omitempty"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	DueDate     *time.Time     `json:"dueDate,omitempty"`
	Priority    model.Priority `json:"priority,omitempty"`
	Notes       string         `json:"notes"`
	CategoryID  string         `json:"categoryId"`
}

type updateTaskRequest struct {
	Title        *string         `json:"title,omitempty"`
	Description  *string         `json:"description,omitempty"`
	DueDate      *time.Time      `json:"dueDate,omitempty"`
	ClearDueDate bool            `json:"clearDueDate,omitempty"`
	Priority     *model.Priority `json:"priority,omitempty"`
	Completed    *bool           `json:"completed,omitempty"`
	Notes        *string         `json:"notes,omitempty"`
	CategoryID   *string         `json:"categoryId,omitempty"`
}

func (h *Handler) ListTasks(w http.ResponseWriter, r *http.Request) {
	logEntry := h.logEntry(r, "ListTasks")

	views, err := h.taskSvc.List(r.Context(), UserID(r.Context()))
	if err != nil {
		logEntry.WithError(err).Error("failed to list tasks")
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	writeJSON(w, http.StatusOK, views)
}

func (h *Handler) CreateTask(w http.ResponseWriter, r *http.Request) {
	logEntry := h.logEntry(r, "CreateTask")

	var req createTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if errs := validate.TaskForm(req.Title, req.CategoryID); len(errs) > 0 {
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{"fields": errs})
		return
	}

	task, err := h.taskSvc.Create(r.Context(), UserID(r.Context()), service.TaskInput{
		ID:          req.ID,
		Title:       req.Title,
		Description: req.Description,
		DueDate:     req.DueDate,
		Priority:    req.Priority,
		Notes:       req.Notes,
		CategoryID:  req.CategoryID,
	})
	if err != nil {
		logEntry.WithError(err).Error("failed to create task")
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	logEntry.WithField("task_id", task.ID).Info("task created")
	writeJSON(w, http.StatusOK, task)
}

func (h *Handler) GetTask(w http.ResponseWriter, r *http.Request) {
	logEntry := h.logEntry(r, "GetTask")
	id := mux.Vars(r)["id"]

	view, err := h.taskSvc.Get(r.Context(), UserID(r.Context()), id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		writeError(w, http.StatusNotFound, "task not found")
		return
	}
	if err != nil {
		logEntry.WithError(err).Error("failed to get task")
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (h *Handler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	logEntry := h.logEntry(r, "UpdateTask")
	id := mux.Vars(r)["id"]

	var req updateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	task, err := h.taskSvc.Update(r.Context(), UserID(r.Context()), id, service.TaskPatch{
		Title:        req.Title,
		Description:  req.Description,
		DueDate:      req.DueDate,
		ClearDueDate: req.ClearDueDate,
		Priority:     req.Priority,
		Completed:    req.Completed,
		Notes:        req.Notes,
		CategoryID:   req.CategoryID,
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		writeError(w, http.StatusNotFound, "task not found")
		return
	}
	if err != nil {
		logEntry.WithError(err).Error("failed to update task")
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	logEntry.WithField("task_id", id).Info("task updated")
	writeJSON(w, http.StatusOK, task)
}

func (h *Handler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	logEntry := h.logEntry(r, "DeleteTask")
	id := mux.Vars(r)["id"]

	if err := h.taskSvc.Delete(r.Context(), UserID(r.Context()), id); err != nil {
		logEntry.WithError(err).Error("failed to delete task")
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	logEntry.WithField("task_id", id).Info("task deleted")
	w.WriteHeader(http.StatusNoContent)
}
