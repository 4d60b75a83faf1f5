package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sirupsen/logrus"

	"taskdeck/internal/auth"
	"taskdeck/internal/model"
	"taskdeck/internal/validate"
)

type signupRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	DisplayName string `json:"displayName"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type sessionResponse struct {
	Token string      `json:"token"`
	User  *model.User `json:"user"`
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) Signup(w http.ResponseWriter, r *http.Request) {
	logEntry := h.logEntry(r, "Signup")

	var req signupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if errs := validate.SignupForm(req.DisplayName, req.Email, req.Password, req.Password); len(errs) > 0 {
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{"fields": errs})
		return
	}

	user, token, err := h.authSvc.Signup(r.Context(), req.Email, req.Password, req.DisplayName)
	if errors.Is(err, auth.ErrEmailTaken) {
		writeError(w, http.StatusConflict, err.Error())
		return
	}
	if err != nil {
		logEntry.WithError(err).Error("signup failed")
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	logEntry.WithField("user_id", user.ID).Info("account created")
	writeJSON(w, http.StatusOK, sessionResponse{Token: token, User: user})
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	logEntry := h.logEntry(r, "Login")

	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, token, err := h.authSvc.Login(r.Context(), req.Email, req.Password)
	if errors.Is(err, auth.ErrInvalidCredentials) {
		writeError(w, http.StatusUnauthorized, err.Error())
		return
	}
	if err != nil {
		logEntry.WithError(err).Error("login failed")
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	logEntry.WithField("user_id", user.ID).Info("login succeeded")
	writeJSON(w, http.StatusOK, sessionResponse{Token: token, User: user})
}

// Logout is a formality with stateless tokens: the client discards its copy.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) logEntry(r *http.Request, handler string) *logrus.Entry {
	return h.logger.WithFields(logrus.Fields{
		"component":  "http_handler",
		"handler":    handler,
		"request_id": RequestID(r.Context()),
	})
}
