// Package handlers provides HTTP request handlers for the board page, the
// project API and the health probes.
package handlers

import (
	"fmt"
	"net/http"

	"github.com/jsamuelsen11/project-board/internal/adapters/http/dto"
	"github.com/jsamuelsen11/project-board/internal/domain"
	"github.com/jsamuelsen11/project-board/internal/domain/project"
	"github.com/jsamuelsen11/project-board/internal/ports"
)

// ProjectHandler serves the JSON project API. It drives the same store the
// live boards render from, so API changes show up on every open page.
type ProjectHandler struct {
	store ports.ProjectStore
}

// NewProjectHandler creates a new ProjectHandler backed by store.
func NewProjectHandler(store ports.ProjectStore) *ProjectHandler {
	return &ProjectHandler{store: store}
}

// ListProjects handles GET /api/v1/projects with an optional ?status= filter.
func (h *ProjectHandler) ListProjects(w http.ResponseWriter, r *http.Request) {
	snap := h.store.Snapshot()

	raw := r.URL.Query().Get("status")
	if raw == "" {
		writeJSON(w, r, http.StatusOK, dto.ToProjectListResponse(snap.Projects()))
		return
	}

	status := project.Status(raw)
	if !status.IsValid() {
		dto.WriteErrorResponse(w, r, &domain.ValidationError{
			Fields: map[string]string{"status": fmt.Sprintf("invalid: %q", raw)},
		})
		return
	}
	writeJSON(w, r, http.StatusOK, dto.ToProjectListResponse(snap.WithStatus(status)))
}

// CreateProject handles POST /api/v1/projects. The body is checked with the
// same rules as the board's form.
func (h *ProjectHandler) CreateProject(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateProjectRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}
	in, err := req.ToInput()
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	created := h.store.AddProject(r.Context(), in.Title, in.Description, in.NumberOfPeople)

	w.Header().Set("Location", "/api/v1/projects/"+created.ID)
	writeJSON(w, r, http.StatusCreated, dto.ToProjectResponse(created))
}

// GetProject handles GET /api/v1/projects/{id}.
func (h *ProjectHandler) GetProject(w http.ResponseWriter, r *http.Request) {
	id, err := pathParam(r, "id")
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	p, ok := h.store.Snapshot().Find(id)
	if !ok {
		dto.WriteErrorResponse(w, r, fmt.Errorf("project %s: %w", id, domain.ErrNotFound))
		return
	}

	writeJSON(w, r, http.StatusOK, dto.ToProjectResponse(p))
}

// MoveProject handles PATCH /api/v1/projects/{id}/status. A move that
// changes nothing (unknown id or same status) answers 204 like the board's
// drop target, which ignores such drops silently.
func (h *ProjectHandler) MoveProject(w http.ResponseWriter, r *http.Request) {
	id, err := pathParam(r, "id")
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	var req dto.MoveProjectRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	if !h.store.MoveProject(r.Context(), id, project.Status(req.Status)) {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	p, ok := h.store.Snapshot().Find(id)
	if !ok {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	writeJSON(w, r, http.StatusOK, dto.ToProjectResponse(p))
}
