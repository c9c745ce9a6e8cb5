package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/vaimebancar/backend/internal/model"
	"github.com/vaimebancar/backend/internal/repository"
	"github.com/vaimebancar/backend/internal/service"
)

// ProjectHandler handles project CRUD and the composed info view.
type ProjectHandler struct {
	projectService  service.ProjectService
	donationService service.DonationService
	infoService     service.ProjectInfoService
}

// NewProjectHandler creates a ProjectHandler.
func NewProjectHandler(projects service.ProjectService, donations service.DonationService, info service.ProjectInfoService) *ProjectHandler {
	return &ProjectHandler{
		projectService:  projects,
		donationService: donations,
		infoService:     info,
	}
}

// List handles GET /api/projects.
func (h *ProjectHandler) List(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	status := model.ProjectStatus(r.URL.Query().Get("status"))
	projects, err := h.projectService.List(r.Context(), status)
	if err != nil {
		if status != "" && !status.Valid() {
			w.WriteHeader(http.StatusBadRequest)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": "invalid_status"})
			return
		}
		slog.Error("project list failed", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "internal_error"})
		return
	}
	if projects == nil {
		projects = []*model.Project{}
	}
	_ = json.NewEncoder(w).Encode(projects)
}

type createProjectRequest struct {
	Name        string      `json:"name" validate:"required"`
	Description string      `json:"description" validate:"required"`
	OwnerName   string      `json:"owner_name" validate:"required"`
	Cellphone   string      `json:"cellphone" validate:"required"`
	Category    string      `json:"category"`
	Budget      model.Money `json:"budget" validate:"required"`
	StartDate   string      `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate     string      `json:"end_date" validate:"required,datetime=2006-01-02"`
}

// Create handles POST /api/projects.
func (h *ProjectHandler) Create(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var req createProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "invalid_json"})
		return
	}
	if err := validate.Struct(req); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "validation_failed", "detail": err.Error()})
		return
	}

	startDate, _ := time.Parse("2006-01-02", req.StartDate)
	endDate, _ := time.Parse("2006-01-02", req.EndDate)

	project := &model.Project{
		Name:        req.Name,
		Description: req.Description,
		OwnerName:   req.OwnerName,
		Cellphone:   req.Cellphone,
		Category:    req.Category,
		Budget:      req.Budget,
		StartDate:   startDate,
		EndDate:     endDate,
	}
	if err := h.projectService.Create(r.Context(), project); err != nil {
		if errors.Is(err, service.ErrInvalidBudget) {
			w.WriteHeader(http.StatusBadRequest)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": "invalid_budget"})
			return
		}
		slog.Error("project create failed", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "create_failed"})
		return
	}

	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(project)
}

// Get handles GET /api/projects/{id}.
func (h *ProjectHandler) Get(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	project, err := h.projectService.GetByID(r.Context(), r.PathValue("id"))
	if err != nil {
		h.writeReadError(w, r, err, "project get failed")
		return
	}
	_ = json.NewEncoder(w).Encode(project)
}

// Donates handles GET /api/projects/{id}/donates: the project plus all
// of its donations, any status, newest first.
func (h *ProjectHandler) Donates(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	id := r.PathValue("id")

	project, err := h.projectService.GetByID(r.Context(), id)
	if err != nil {
		h.writeReadError(w, r, err, "project get failed")
		return
	}
	donates, err := h.donationService.ListByProject(r.Context(), id)
	if err != nil {
		h.writeReadError(w, r, err, "donation list failed")
		return
	}
	if donates == nil {
		donates = []*model.Donation{}
	}

	_ = json.NewEncoder(w).Encode(map[string]any{
		"project": project,
		"donates": donates,
	})
}

// Info handles GET /api/projects/{id}/info: the composed campaign view
// (progress, time remaining, daily ranking, Help/Stop stats).
func (h *ProjectHandler) Info(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	info, err := h.infoService.BuildProjectInfo(r.Context(), r.PathValue("id"), time.Now())
	if err != nil {
		if errors.Is(err, service.ErrInvalidBudget) {
			slog.Error("project has invalid budget", "error", err, "project_id", r.PathValue("id"))
			w.WriteHeader(http.StatusInternalServerError)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": "invalid_budget"})
			return
		}
		h.writeReadError(w, r, err, "project info failed")
		return
	}
	_ = json.NewEncoder(w).Encode(info)
}

type patchStatusRequest struct {
	Status model.ProjectStatus `json:"status"`
}

// PatchStatus handles PATCH /api/projects/{id}/status.
func (h *ProjectHandler) PatchStatus(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var req patchStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "invalid_json"})
		return
	}
	if !req.Status.Valid() {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "invalid_status"})
		return
	}

	id := r.PathValue("id")
	if err := h.projectService.UpdateStatus(r.Context(), id, req.Status); err != nil {
		h.writeReadError(w, r, err, "project status update failed")
		return
	}
	h.infoService.Invalidate(id)
	_ = json.NewEncoder(w).Encode(map[string]string{"status": string(req.Status)})
}

// writeReadError maps read-path failures onto the error taxonomy:
// missing records are 404, storage deadline overruns are retryable
// 503s, everything else is a 500.
func (h *ProjectHandler) writeReadError(w http.ResponseWriter, r *http.Request, err error, msg string) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		w.WriteHeader(http.StatusNotFound)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "not_found"})
	case errors.Is(err, context.DeadlineExceeded):
		slog.Error(msg, "error", err, "path", r.URL.Path)
		w.WriteHeader(http.StatusServiceUnavailable)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "computation_timeout"})
	default:
		slog.Error(msg, "error", err, "path", r.URL.Path)
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "internal_error"})
	}
}
