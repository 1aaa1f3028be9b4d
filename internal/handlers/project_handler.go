package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/senyabanana/talentlink-service/internal/models"
	"github.com/senyabanana/talentlink-service/internal/services"
	"github.com/senyabanana/talentlink-service/internal/utils"
)

// ProjectHandler - структура для обработки HTTP-запросов по проектам.
type ProjectHandler struct {
	Service *services.ProjectService
	Timeout time.Duration
}

// NewProjectHandler создает новый экземпляр ProjectHandler.
func NewProjectHandler(service *services.ProjectService, timeout time.Duration) *ProjectHandler {
	return &ProjectHandler{Service: service, Timeout: timeout}
}

// CreateProject обрабатывает запросы для создания проекта.
func (h *ProjectHandler) CreateProject(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	var projectReq models.ProjectRequest
	if !decodeBody(w, r, &projectReq) {
		return
	}

	project, err := h.Service.CreateProject(ctx, actor, projectReq)
	if err != nil {
		sendError(w, r, err, "failed to create project")
		return
	}
	utils.SendJSON(w, http.StatusCreated, project)
}

// GetProjects обрабатывает запросы для получения списка проектов.
func (h *ProjectHandler) GetProjects(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	query := r.URL.Query()
	projects, err := h.Service.GetProjects(ctx, actor, services.ProjectQuery{
		Categories: query["category"],
		Budget:     query.Get("budget"),
		Duration:   query.Get("duration"),
		Search:     query.Get("search"),
		Limit:      query.Get("limit"),
		Offset:     query.Get("offset"),
	})
	if err != nil {
		sendError(w, r, err, "failed to retrieve projects")
		return
	}
	utils.SendJSON(w, http.StatusOK, projects)
}

// GetProject обрабатывает запросы для получения проекта.
func (h *ProjectHandler) GetProject(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	projectId, ok := pathID(w, r, "projectId", "project")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	project, err := h.Service.GetProject(ctx, actor, projectId)
	if err != nil {
		sendError(w, r, err, "failed to retrieve project")
		return
	}
	utils.SendJSON(w, http.StatusOK, project)
}

// UpdateProject обрабатывает запросы для изменения проекта.
func (h *ProjectHandler) UpdateProject(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	projectId, ok := pathID(w, r, "projectId", "project")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	var projectReq models.ProjectRequest
	if !decodeBody(w, r, &projectReq) {
		return
	}

	project, err := h.Service.UpdateProject(ctx, actor, projectId, projectReq)
	if err != nil {
		sendError(w, r, err, "failed to update project")
		return
	}
	utils.SendJSON(w, http.StatusOK, project)
}

// DeleteProject обрабатывает запросы для удаления проекта.
func (h *ProjectHandler) DeleteProject(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	projectId, ok := pathID(w, r, "projectId", "project")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	if err := h.Service.DeleteProject(ctx, actor, projectId); err != nil {
		sendError(w, r, err, "failed to delete project")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
