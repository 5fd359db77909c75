package http

import (
	"net/http"

	"github.com/jrbibin/Project-Management/internal/application"
)

func (h *Handler) handleCreateProject(w http.ResponseWriter, r *http.Request) {
	var req application.ProjectInput
	body, err := decodeBody(w, r, &req)
	if err != nil {
		h.writeError(w, r, err, body)
		return
	}
	v, err := h.service.CreateProject(r.Context(), req)
	if err != nil {
		h.writeError(w, r, err, body)
		return
	}
	writeJSON(w, http.StatusCreated, v)
}

func (h *Handler) handleListProjects(w http.ResponseWriter, r *http.Request) {
	page, err := queryPage(r)
	if err != nil {
		h.writeError(w, r, err, nil)
		return
	}
	list, err := h.service.ListProjects(r.Context(), page)
	if err != nil {
		h.writeError(w, r, err, nil)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *Handler) handleGetProject(w http.ResponseWriter, r *http.Request) {
	id, err := pathUint(r, "id")
	if err != nil {
		h.writeError(w, r, err, nil)
		return
	}
	v, err := h.service.GetProject(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err, nil)
		return
	}
	writeJSON(w, http.StatusOK, v)
}

func (h *Handler) handleDeleteProject(w http.ResponseWriter, r *http.Request) {
	id, err := pathUint(r, "id")
	if err != nil {
		h.writeError(w, r, err, nil)
		return
	}
	if err := h.service.DeleteProject(r.Context(), id); err != nil {
		h.writeError(w, r, err, nil)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleProjectStats(w http.ResponseWriter, r *http.Request) {
	id, err := pathUint(r, "id")
	if err != nil {
		h.writeError(w, r, err, nil)
		return
	}
	stats, err := h.service.ProjectStats(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err, nil)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (h *Handler) handleCreateSequence(w http.ResponseWriter, r *http.Request) {
	var req application.SequenceInput
	body, err := decodeBody(w, r, &req)
	if err != nil {
		h.writeError(w, r, err, body)
		return
	}
	v, err := h.service.CreateSequence(r.Context(), req)
	if err != nil {
		h.writeError(w, r, err, body)
		return
	}
	writeJSON(w, http.StatusCreated, v)
}

func (h *Handler) handleListSequences(w http.ResponseWriter, r *http.Request) {
	page, err := queryPage(r)
	if err != nil {
		h.writeError(w, r, err, nil)
		return
	}
	projectID, err := queryUint(r, "project_id")
	if err != nil {
		h.writeError(w, r, err, nil)
		return
	}
	list, err := h.service.ListSequences(r.Context(), projectID, page)
	if err != nil {
		h.writeError(w, r, err, nil)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *Handler) handleCreatePackage(w http.ResponseWriter, r *http.Request) {
	var req application.PackageInput
	body, err := decodeBody(w, r, &req)
	if err != nil {
		h.writeError(w, r, err, body)
		return
	}
	v, err := h.service.CreatePackage(r.Context(), req)
	if err != nil {
		h.writeError(w, r, err, body)
		return
	}
	writeJSON(w, http.StatusCreated, v)
}

func (h *Handler) handleListPackages(w http.ResponseWriter, r *http.Request) {
	page, err := queryPage(r)
	if err != nil {
		h.writeError(w, r, err, nil)
		return
	}
	sequenceID, err := queryUint(r, "sequence_id")
	if err != nil {
		h.writeError(w, r, err, nil)
		return
	}
	list, err := h.service.ListPackages(r.Context(), sequenceID, page)
	if err != nil {
		h.writeError(w, r, err, nil)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *Handler) handleCreateShot(w http.ResponseWriter, r *http.Request) {
	var req application.ShotInput
	body, err := decodeBody(w, r, &req)
	if err != nil {
		h.writeError(w, r, err, body)
		return
	}
	v, err := h.service.CreateShot(r.Context(), req)
	if err != nil {
		h.writeError(w, r, err, body)
		return
	}
	writeJSON(w, http.StatusCreated, v)
}

func (h *Handler) handleListShots(w http.ResponseWriter, r *http.Request) {
	page, err := queryPage(r)
	if err != nil {
		h.writeError(w, r, err, nil)
		return
	}
	packageID, err := queryUint(r, "package_id")
	if err != nil {
		h.writeError(w, r, err, nil)
		return
	}
	list, err := h.service.ListShots(r.Context(), packageID, page)
	if err != nil {
		h.writeError(w, r, err, nil)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *Handler) handleCreateTask(w http.ResponseWriter, r *http.Request) {
	var req application.TaskInput
	body, err := decodeBody(w, r, &req)
	if err != nil {
		h.writeError(w, r, err, body)
		return
	}
	v, err := h.service.CreateTask(r.Context(), req)
	if err != nil {
		h.writeError(w, r, err, body)
		return
	}
	writeJSON(w, http.StatusCreated, v)
}

func (h *Handler) handleCreateTaskWithVersion(w http.ResponseWriter, r *http.Request) {
	var req application.TaskWithVersionInput
	body, err := decodeBody(w, r, &req)
	if err != nil {
		h.writeError(w, r, err, body)
		return
	}
	v, err := h.service.CreateTaskWithVersion(r.Context(), req)
	if err != nil {
		h.writeError(w, r, err, body)
		return
	}
	writeJSON(w, http.StatusCreated, v)
}

func (h *Handler) handleListTasks(w http.ResponseWriter, r *http.Request) {
	page, err := queryPage(r)
	if err != nil {
		h.writeError(w, r, err, nil)
		return
	}
	shotID, err := queryUint(r, "shot_id")
	if err != nil {
		h.writeError(w, r, err, nil)
		return
	}
	list, err := h.service.ListTasks(r.Context(), shotID, page)
	if err != nil {
		h.writeError(w, r, err, nil)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *Handler) handleListTasksByShot(w http.ResponseWriter, r *http.Request) {
	shotID, err := pathUint(r, "shot_id")
	if err != nil {
		h.writeError(w, r, err, nil)
		return
	}
	departmentID, err := queryUint(r, "department_id")
	if err != nil {
		h.writeError(w, r, err, nil)
		return
	}
	list, err := h.service.ListTasksByShot(r.Context(), shotID, departmentID)
	if err != nil {
		h.writeError(w, r, err, nil)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *Handler) handleGetTask(w http.ResponseWriter, r *http.Request) {
	id, err := pathUint(r, "id")
	if err != nil {
		h.writeError(w, r, err, nil)
		return
	}
	v, err := h.service.GetTask(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err, nil)
		return
	}
	writeJSON(w, http.StatusOK, v)
}

func (h *Handler) handleUpdateTask(w http.ResponseWriter, r *http.Request) {
	id, err := pathUint(r, "id")
	if err != nil {
		h.writeError(w, r, err, nil)
		return
	}
	var req application.TaskPatchInput
	body, err := decodeBody(w, r, &req)
	if err != nil {
		h.writeError(w, r, err, body)
		return
	}
	v, err := h.service.UpdateTask(r.Context(), id, req)
	if err != nil {
		h.writeError(w, r, err, body)
		return
	}
	writeJSON(w, http.StatusOK, v)
}

func (h *Handler) handleDeleteTask(w http.ResponseWriter, r *http.Request) {
	id, err := pathUint(r, "id")
	if err != nil {
		h.writeError(w, r, err, nil)
		return
	}
	if err := h.service.DeleteTask(r.Context(), id); err != nil {
		h.writeError(w, r, err, nil)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleCreateVersion(w http.ResponseWriter, r *http.Request) {
	var req application.VersionInput
	body, err := decodeBody(w, r, &req)
	if err != nil {
		h.writeError(w, r, err, body)
		return
	}
	v, err := h.service.CreateVersion(r.Context(), req)
	if err != nil {
		h.writeError(w, r, err, body)
		return
	}
	writeJSON(w, http.StatusCreated, v)
}

func (h *Handler) handleGetVersion(w http.ResponseWriter, r *http.Request) {
	id, err := pathUint(r, "id")
	if err != nil {
		h.writeError(w, r, err, nil)
		return
	}
	v, err := h.service.GetVersion(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err, nil)
		return
	}
	writeJSON(w, http.StatusOK, v)
}

func (h *Handler) handleListVersions(w http.ResponseWriter, r *http.Request) {
	taskID, err := pathUint(r, "task_id")
	if err != nil {
		h.writeError(w, r, err, nil)
		return
	}
	list, err := h.service.ListVersions(r.Context(), taskID)
	if err != nil {
		h.writeError(w, r, err, nil)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *Handler) handleCreateNextVersion(w http.ResponseWriter, r *http.Request) {
	taskID, err := pathUint(r, "task_id")
	if err != nil {
		h.writeError(w, r, err, nil)
		return
	}
	createdBy, err := queryUint(r, "created_by")
	if err != nil {
		h.writeError(w, r, err, nil)
		return
	}
	v, err := h.service.CreateNextVersion(r.Context(), taskID, createdBy)
	if err != nil {
		h.writeError(w, r, err, nil)
		return
	}
	writeJSON(w, http.StatusCreated, v)
}

func (h *Handler) handleCreateInternalVersion(w http.ResponseWriter, r *http.Request) {
	var req application.InternalVersionInput
	body, err := decodeBody(w, r, &req)
	if err != nil {
		h.writeError(w, r, err, body)
		return
	}
	v, err := h.service.CreateInternalVersion(r.Context(), req)
	if err != nil {
		h.writeError(w, r, err, body)
		return
	}
	writeJSON(w, http.StatusCreated, v)
}

func (h *Handler) handleListInternalVersions(w http.ResponseWriter, r *http.Request) {
	versionID, err := pathUint(r, "version_id")
	if err != nil {
		h.writeError(w, r, err, nil)
		return
	}
	list, err := h.service.ListInternalVersions(r.Context(), versionID)
	if err != nil {
		h.writeError(w, r, err, nil)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *Handler) handleCreateNextInternalVersion(w http.ResponseWriter, r *http.Request) {
	versionID, err := pathUint(r, "version_id")
	if err != nil {
		h.writeError(w, r, err, nil)
		return
	}
	createdBy, err := queryUint(r, "created_by")
	if err != nil {
		h.writeError(w, r, err, nil)
		return
	}
	v, err := h.service.CreateNextInternalVersion(r.Context(), versionID, createdBy)
	if err != nil {
		h.writeError(w, r, err, nil)
		return
	}
	writeJSON(w, http.StatusCreated, v)
}

func (h *Handler) handleCreateDepartment(w http.ResponseWriter, r *http.Request) {
	var req application.DepartmentInput
	body, err := decodeBody(w, r, &req)
	if err != nil {
		h.writeError(w, r, err, body)
		return
	}
	v, err := h.service.CreateDepartment(r.Context(), req)
	if err != nil {
		h.writeError(w, r, err, body)
		return
	}
	writeJSON(w, http.StatusCreated, v)
}

func (h *Handler) handleListDepartments(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.ListDepartments(r.Context())
	if err != nil {
		h.writeError(w, r, err, nil)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *Handler) handleInitDepartments(w http.ResponseWriter, r *http.Request) {
	created, err := h.service.InitDefaultDepartments(r.Context())
	if err != nil {
		h.writeError(w, r, err, nil)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"created": created})
}

func (h *Handler) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	var req application.UserInput
	body, err := decodeBody(w, r, &req)
	if err != nil {
		h.writeError(w, r, err, body)
		return
	}
	v, err := h.service.CreateUser(r.Context(), req)
	if err != nil {
		h.writeError(w, r, err, body)
		return
	}
	writeJSON(w, http.StatusCreated, v)
}

func (h *Handler) handleListUsers(w http.ResponseWriter, r *http.Request) {
	page, err := queryPage(r)
	if err != nil {
		h.writeError(w, r, err, nil)
		return
	}
	list, err := h.service.ListUsers(r.Context(), page)
	if err != nil {
		h.writeError(w, r, err, nil)
		return
	}
	writeJSON(w, http.StatusOK, list)
}
