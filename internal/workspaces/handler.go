package workspaces

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/msinoftech/getsettime/pkg/logging"
)

// Handler handles superadmin workspace management requests.
type Handler struct {
	repo   Repository
	logger *logging.Logger
}

// NewHandler creates a workspaces handler.
func NewHandler(repo Repository, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{repo: repo, logger: logger}
}

// List handles GET /superadmin/workspaces.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.repo.List(r.Context())
	if err != nil {
		h.logger.Error("failed to list workspaces", "error", err)
		http.Error(w, "failed to list workspaces", http.StatusInternalServerError)
		return
	}
	if items == nil {
		items = []*Workspace{}
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(items)
}

// Create handles POST /superadmin/workspaces.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req UpsertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if err := req.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}
	ws, err := h.repo.Create(r.Context(), &Workspace{
		Name:     req.Name,
		Slug:     req.Slug,
		Timezone: req.Timezone,
		Active:   active,
	})
	if err != nil {
		if errors.Is(err, ErrSlugTaken) {
			http.Error(w, err.Error(), http.StatusConflict)
			return
		}
		h.logger.Error("failed to create workspace", "error", err)
		http.Error(w, "failed to create workspace", http.StatusInternalServerError)
		return
	}

	h.logger.Info("workspace created", "workspace_id", ws.ID, "slug", ws.Slug)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(ws)
}

// Get handles GET /superadmin/workspaces/{workspaceID}.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	ws, err := h.repo.Get(r.Context(), chi.URLParam(r, "workspaceID"))
	if err != nil {
		if errors.Is(err, ErrWorkspaceNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		h.logger.Error("failed to get workspace", "error", err)
		http.Error(w, "failed to get workspace", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(ws)
}

// Update handles PUT /superadmin/workspaces/{workspaceID}.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "workspaceID")
	existing, err := h.repo.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrWorkspaceNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		h.logger.Error("failed to get workspace", "error", err)
		http.Error(w, "failed to get workspace", http.StatusInternalServerError)
		return
	}

	var req UpsertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if err := req.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	existing.Name = req.Name
	if req.Slug != "" {
		existing.Slug = req.Slug
	}
	if req.Timezone != "" {
		existing.Timezone = req.Timezone
	}
	if req.Active != nil {
		existing.Active = *req.Active
	}

	ws, err := h.repo.Update(r.Context(), existing)
	if err != nil {
		if errors.Is(err, ErrSlugTaken) {
			http.Error(w, err.Error(), http.StatusConflict)
			return
		}
		h.logger.Error("failed to update workspace", "error", err)
		http.Error(w, "failed to update workspace", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(ws)
}

// Delete handles DELETE /superadmin/workspaces/{workspaceID}.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.repo.Delete(r.Context(), chi.URLParam(r, "workspaceID")); err != nil {
		if errors.Is(err, ErrWorkspaceNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		h.logger.Error("failed to delete workspace", "error", err)
		http.Error(w, "failed to delete workspace", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
