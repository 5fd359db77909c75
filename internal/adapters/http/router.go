package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/jrbibin/Project-Management/internal/application"
)

type Handler struct {
	service *application.ProductionService
	log     *slog.Logger
}

func NewRouter(service *application.ProductionService, log *slog.Logger) http.Handler {
	h := &Handler{service: service, log: log}
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(h.logRequests)
	r.Use(middleware.Recoverer)

	r.Get("/", h.handleRoot)
	r.Get("/health", h.handleHealth)

	r.Route("/api", func(api chi.Router) {
		api.Get("/projects", h.handleListProjects)
		api.Post("/projects", h.handleCreateProject)
		api.Get("/projects/{id}", h.handleGetProject)
		api.Delete("/projects/{id}", h.handleDeleteProject)
		api.Get("/projects/{id}/stats", h.handleProjectStats)

		api.Get("/sequences", h.handleListSequences)
		api.Post("/sequences", h.handleCreateSequence)

		api.Get("/packages", h.handleListPackages)
		api.Post("/packages", h.handleCreatePackage)

		api.Get("/shots", h.handleListShots)
		api.Post("/shots", h.handleCreateShot)

		api.Get("/tasks", h.handleListTasks)
		api.Post("/tasks", h.handleCreateTask)
		api.Post("/tasks/with-version", h.handleCreateTaskWithVersion)
		api.Get("/tasks/by-shot/{shot_id}", h.handleListTasksByShot)
		api.Get("/tasks/{id}", h.handleGetTask)
		api.Patch("/tasks/{id}", h.handleUpdateTask)
		api.Delete("/tasks/{id}", h.handleDeleteTask)

		api.Post("/versions", h.handleCreateVersion)
		api.Get("/versions/{id}", h.handleGetVersion)
		api.Get("/versions/task/{task_id}", h.handleListVersions)
		api.Post("/versions/new/{task_id}", h.handleCreateNextVersion)

		api.Post("/internal-versions", h.handleCreateInternalVersion)
		api.Get("/internal-versions/version/{version_id}", h.handleListInternalVersions)
		api.Post("/internal-versions/new/{version_id}", h.handleCreateNextInternalVersion)

		api.Get("/departments", h.handleListDepartments)
		api.Post("/departments", h.handleCreateDepartment)
		api.Post("/departments/init", h.handleInitDepartments)

		api.Get("/users", h.handleListUsers)
		api.Post("/users", h.handleCreateUser)
	})

	return r
}

func (h *Handler) handleRoot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"message": "ETRA Project Management API v2.0", "status": "running"})
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	status, dbState, code := "healthy", "ok", http.StatusOK
	if err := h.service.Health(r.Context()); err != nil {
		h.log.Error("health check failed", "err", err)
		status, dbState, code = "unhealthy", "down", http.StatusServiceUnavailable
	}
	writeJSON(w, code, map[string]any{"status": status, "timestamp": time.Now().UTC(), "database": dbState})
}
