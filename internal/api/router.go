// Package api exposes the HTTP surface: auth endpoints plus the proxy routes
// for categories, tasks and the profile, all scoped to the caller's records.
package api

import (
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"taskdeck/internal/auth"
	"taskdeck/internal/service"
)

// Handler bundles the services behind the HTTP routes.
type Handler struct {
	authSvc     *service.AuthService
	taskSvc     *service.TaskService
	categorySvc *service.CategoryService
	logger      *logrus.Logger
}

func NewHandler(authSvc *service.AuthService, taskSvc *service.TaskService, categorySvc *service.CategoryService, logger *logrus.Logger) *Handler {
	return &Handler{
		authSvc:     authSvc,
		taskSvc:     taskSvc,
		categorySvc: categorySvc,
		logger:      logger,
	}
}

// NewRouter wires middleware and routes.
func NewRouter(h *Handler, tokens *auth.Tokens) *mux.Router {
	r := mux.NewRouter()
	r.Use(requestIDMiddleware, loggingMiddleware(h.logger), metricsMiddleware)

	r.HandleFunc("/health", h.Health).Methods("GET")
	r.Handle("/metrics", promhttp.Handler()).Methods("GET")
	r.HandleFunc("/auth/signup", h.Signup).Methods("POST")
	r.HandleFunc("/auth/login", h.Login).Methods("POST")

	protected := r.NewRoute().Subrouter()
	protected.Use(authMiddleware(tokens))

	protected.HandleFunc("/auth/logout", h.Logout).Methods("POST")

	protected.HandleFunc("/categories", h.ListCategories).Methods("GET")
	protected.HandleFunc("/categories", h.CreateCategory).Methods("POST")
	protected.HandleFunc("/categories/{id}", h.GetCategory).Methods("GET")
	protected.HandleFunc("/categories/{id}", h.UpdateCategory).Methods("PUT")
	protected.HandleFunc("/categories/{id}", h.DeleteCategory).Methods("DELETE")

	protected.HandleFunc("/tasks", h.ListTasks).Methods("GET")
	protected.HandleFunc("/tasks", h.CreateTask).Methods("POST")
	protected.HandleFunc("/tasks/{id}", h.GetTask).Methods("GET")
	protected.HandleFunc("/tasks/{id}", h.UpdateTask).Methods("PUT")
	protected.HandleFunc("/tasks/{id}", h.DeleteTask).Methods("DELETE")

	protected.HandleFunc("/profile", h.GetProfile).Methods("GET")
	protected.HandleFunc("/profile", h.UpdateProfile).Methods("PUT")

	return r
}
