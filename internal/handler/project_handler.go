package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/go-aiiq/DocumentAnalyzerAI/internal/domain"
	"github.com/go-aiiq/DocumentAnalyzerAI/internal/service"
)

// ProjectHandler handles project/folder HTTP requests
type ProjectHandler struct {
	projectService *service.ProjectService
	logger         domain.Logger
}

// NewProjectHandler creates a new project handler
func NewProjectHandler(projectService *service.ProjectService, logger domain.Logger) *ProjectHandler {
	return &ProjectHandler{projectService: projectService, logger: logger}
}

type createProjectRequest struct {
	ProjectName string `json:"projectName"`
}

// CreateProject handles creating a project namespace for the tenant
func (h *ProjectHandler) CreateProject(w http.ResponseWriter, r *http.Request) {
	tenant, ok := GetTenantFromContext(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "Tenant not found in context")
		return
	}

	var req createProjectRequest
	if err := decodeBody(r, &req); err != nil || req.ProjectName == "" {
		writeError(w, http.StatusBadRequest, "projectName is required")
		return
	}

	if err := h.projectService.CreateNamespace(r.Context(), tenant, req.ProjectName); err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{
		"message": "Project created successfully",
		"project": req.ProjectName,
	})
}

// ListFiles handles listing all of the tenant's documents grouped by project
func (h *ProjectHandler) ListFiles(w http.ResponseWriter, r *http.Request) {
	tenant, ok := GetTenantFromContext(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "Tenant not found in context")
		return
	}

	folders, err := h.projectService.ListByProject(r.Context(), tenant)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"folders": folders})
}

// DeleteProject handles recursively deleting a project and its objects
func (h *ProjectHandler) DeleteProject(w http.ResponseWriter, r *http.Request) {
	tenant, ok := GetTenantFromContext(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "Tenant not found in context")
		return
	}

	projectName := mux.Vars(r)["name"]
	if projectName == "" {
		writeError(w, http.StatusBadRequest, "Project name is required")
		return
	}

	result, err := h.projectService.DeleteProject(r.Context(), tenant, projectName)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}
