package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"gorm.io/gorm"

	"taskdeck/internal/service"
	"taskdeck/internal/validate"
)

type updateProfileRequest struct {
	DisplayName    *string `json:"displayName,omitempty"`
	Email          *string `json:"email,omitempty"`
	Avatar         *string `json:"avatar,omitempty"`
	TelegramChatID *int64  `json:"telegramChatId,omitempty"`
}

func (h *Handler) GetProfile(w http.ResponseWriter, r *http.Request) {
	logEntry := h.logEntry(r, "GetProfile")

	user, err := h.authSvc.Profile(r.Context(), UserID(r.Context()))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		writeError(w, http.StatusNotFound, "profile not found")
		return
	}
	if err != nil {
		logEntry.WithError(err).Error("failed to get profile")
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (h *Handler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	logEntry := h.logEntry(r, "UpdateProfile")

	var req updateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.DisplayName != nil && req.Email != nil {
		if errs := validate.ProfileForm(*req.DisplayName, *req.Email); len(errs) > 0 {
			writeJSON(w, http.StatusBadRequest, map[string]interface{}{"fields": errs})
			return
		}
	}

	user, err := h.authSvc.UpdateProfile(r.Context(), UserID(r.Context()), service.ProfileInput{
		DisplayName:    req.DisplayName,
		Email:          req.Email,
		Avatar:         req.Avatar,
		TelegramChatID: req.TelegramChatID,
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		writeError(w, http.StatusNotFound, "profile not found")
		return
	}
	if err != nil {
		logEntry.WithError(err).Error("failed to update profile")
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	logEntry.Info("profile updated")
	writeJSON(w, http.StatusOK, user)
}
