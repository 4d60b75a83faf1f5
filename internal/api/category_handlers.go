package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"gorm.io/gorm"

	"taskdeck/internal/service"
	"taskdeck/internal/validate"
)

type createCategoryRequest struct {
	ID    string `json:"id,omitempty"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

type updateCategoryRequest struct {
	Name  *string `json:"name,omitempty"`
	Color *string `json:"color,omitempty"`
}

func (h *Handler) ListCategories(w http.ResponseWriter, r *http.Request) {
	logEntry := h.logEntry(r, "ListCategories")

	categories, err := h.categorySvc.List(r.Context(), UserID(r.Context()))
	if err != nil {
		logEntry.WithError(err).Error("failed to list categories")
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	writeJSON(w, http.StatusOK, categories)
}

func (h *Handler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	logEntry := h.logEntry(r, "CreateCategory")

	var req createCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if errs := validate.CategoryForm(req.Name, req.Color); len(errs) > 0 {
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{"fields": errs})
		return
	}

	category, err := h.categorySvc.Create(r.Context(), UserID(r.Context()), service.CategoryInput{
		ID:    req.ID,
		Name:  req.Name,
		Color: req.Color,
	})
	if err != nil {
		logEntry.WithError(err).Error("failed to create category")
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	logEntry.WithField("category_id", category.ID).Info("category created")
	writeJSON(w, http.StatusOK, category)
}

func (h *Handler) GetCategory(w http.ResponseWriter, r *http.Request) {
	logEntry := h.logEntry(r, "GetCategory")
	id := mux.Vars(r)["id"]

	category, err := h.categorySvc.Get(r.Context(), UserID(r.Context()), id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		writeError(w, http.StatusNotFound, "category not found")
		return
	}
	if err != nil {
		logEntry.WithError(err).Error("failed to get category")
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	writeJSON(w, http.StatusOK, category)
}

func (h *Handler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	logEntry := h.logEntry(r, "UpdateCategory")
	id := mux.Vars(r)["id"]

	var req updateCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	category, err := h.categorySvc.Update(r.Context(), UserID(r.Context()), id, service.CategoryPatch{
		Name:  req.Name,
		Color: req.Color,
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		writeError(w, http.StatusNotFound, "category not found")
		return
	}
	if err != nil {
		logEntry.WithError(err).Error("failed to update category")
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	logEntry.WithField("category_id", id).Info("category updated")
	writeJSON(w, http.StatusOK, category)
}

func (h *Handler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	logEntry := h.logEntry(r, "DeleteCategory")
	id := mux.Vars(r)["id"]

	if err := h.categorySvc.Delete(r.Context(), UserID(r.Context()), id); err != nil {
		logEntry.WithError(err).Error("failed to delete category")
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	logEntry.WithField("category_id", id).Info("category deleted")
	w.WriteHeader(http.StatusNoContent)
}
