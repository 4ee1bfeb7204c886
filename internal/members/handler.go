package members

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/msinoftech/getsettime/internal/tenancy"
	"github.com/msinoftech/getsettime/pkg/logging"
)

// Handler handles HTTP requests for members and departments.
type Handler struct {
	repo   Repository
	logger *logging.Logger
}

// NewHandler creates a members handler.
func NewHandler(repo Repository, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{repo: repo, logger: logger}
}

// ListMembers handles GET /members.
func (h *Handler) ListMembers(w http.ResponseWriter, r *http.Request) {
	workspaceID, ok := tenancy.WorkspaceIDFromContext(r.Context())
	if !ok {
		http.Error(w, "missing workspace context", http.StatusBadRequest)
		return
	}
	items, err := h.repo.ListMembers(r.Context(), workspaceID)
	if err != nil {
		h.logger.Error("failed to list members", "error", err)
		http.Error(w, "failed to list members", http.StatusInternalServerError)
		return
	}
	if items == nil {
		items = []*Member{}
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(items)
}

// CreateMember handles POST /members.
func (h *Handler) CreateMember(w http.ResponseWriter, r *http.Request) {
	workspaceID, ok := tenancy.WorkspaceIDFromContext(r.Context())
	if !ok {
		http.Error(w, "missing workspace context", http.StatusBadRequest)
		return
	}
	var req UpsertMemberRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	req.WorkspaceID = workspaceID
	if err := req.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	m, err := h.repo.CreateMember(r.Context(), &Member{
		WorkspaceID:  workspaceID,
		DepartmentID: req.DepartmentID,
		Name:         req.Name,
		Email:        req.Email,
		Role:         req.Role,
	})
	if err != nil {
		h.logger.Error("failed to create member", "error", err)
		http.Error(w, "failed to create member", http.StatusInternalServerError)
		return
	}

	h.logger.Info("member created", "workspace_id", workspaceID, "member_id", m.ID)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(m)
}

// DeleteMember handles DELETE /members/{memberID}.
func (h *Handler) DeleteMember(w http.ResponseWriter, r *http.Request) {
	workspaceID, ok := tenancy.WorkspaceIDFromContext(r.Context())
	if !ok {
		http.Error(w, "missing workspace context", http.StatusBadRequest)
		return
	}
	id := chi.URLParam(r, "memberID")
	if err := h.repo.DeleteMember(r.Context(), workspaceID, id); err != nil {
		if errors.Is(err, ErrMemberNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		h.logger.Error("failed to delete member", "error", err)
		http.Error(w, "failed to delete member", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListDepartments handles GET /departments.
func (h *Handler) ListDepartments(w http.ResponseWriter, r *http.Request) {
	workspaceID, ok := tenancy.WorkspaceIDFromContext(r.Context())
	if !ok {
		http.Error(w, "missing workspace context", http.StatusBadRequest)
		return
	}
	items, err := h.repo.ListDepartments(r.Context(), workspaceID)
	if err != nil {
		h.logger.Error("failed to list departments", "error", err)
		http.Error(w, "failed to list departments", http.StatusInternalServerError)
		return
	}
	if items == nil {
		items = []*Department{}
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(items)
}

// CreateDepartment handles POST /departments.
func (h *Handler) CreateDepartment(w http.ResponseWriter, r *http.Request) {
	workspaceID, ok := tenancy.WorkspaceIDFromContext(r.Context())
	if !ok {
		http.Error(w, "missing workspace context", http.StatusBadRequest)
		return
	}
	var body struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Name == "" {
		http.Error(w, "department name is required", http.StatusBadRequest)
		return
	}

	d, err := h.repo.CreateDepartment(r.Context(), &Department{
		WorkspaceID: workspaceID,
		Name:        body.Name,
	})
	if err != nil {
		h.logger.Error("failed to create department", "error", err)
		http.Error(w, "failed to create department", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(d)
}
