package eventtypes

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/msinoftech/getsettime/internal/tenancy"
	"github.com/msinoftech/getsettime/pkg/logging"
)

// Handler handles HTTP requests for event types.
type Handler struct {
	repo   Repository
	logger *logging.Logger
}

// NewHandler creates an event types handler.
func NewHandler(repo Repository, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{repo: repo, logger: logger}
}

// ListPublic handles GET /widget/{slug}/event-types: only active types,
// for the booking widget.
func (h *Handler) ListPublic(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, true)
}

// List handles GET /event-types for workspace staff.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, false)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request, activeOnly bool) {
	workspaceID, ok := tenancy.WorkspaceIDFromContext(r.Context())
	if !ok {
		http.Error(w, "missing workspace context", http.StatusBadRequest)
		return
	}
	items, err := h.repo.List(r.Context(), workspaceID, activeOnly)
	if err != nil {
		h.logger.Error("failed to list event types", "error", err)
		http.Error(w, "failed to list event types", http.StatusInternalServerError)
		return
	}
	if items == nil {
		items = []*EventType{}
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(items)
}

// Create handles POST /event-types.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	workspaceID, ok := tenancy.WorkspaceIDFromContext(r.Context())
	if !ok {
		http.Error(w, "missing workspace context", http.StatusBadRequest)
		return
	}
	var req UpsertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	req.WorkspaceID = workspaceID
	if err := req.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}
	et, err := h.repo.Create(r.Context(), &EventType{
		WorkspaceID:     workspaceID,
		Title:           req.Title,
		DurationMinutes: req.DurationMinutes,
		Active:          active,
	})
	if err != nil {
		h.logger.Error("failed to create event type", "error", err)
		http.Error(w, "failed to create event type", http.StatusInternalServerError)
		return
	}

	h.logger.Info("event type created", "workspace_id", workspaceID, "event_type_id", et.ID)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(et)
}

// Update handles PUT /event-types/{eventTypeID}.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	workspaceID, ok := tenancy.WorkspaceIDFromContext(r.Context())
	if !ok {
		http.Error(w, "missing workspace context", http.StatusBadRequest)
		return
	}
	id := chi.URLParam(r, "eventTypeID")
	var req UpsertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	req.WorkspaceID = workspaceID
	if err := req.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}
	et, err := h.repo.Update(r.Context(), &EventType{
		ID:              id,
		WorkspaceID:     workspaceID,
		Title:           req.Title,
		DurationMinutes: req.DurationMinutes,
		Active:          active,
	})
	if err != nil {
		if errors.Is(err, ErrEventTypeNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		h.logger.Error("failed to update event type", "error", err)
		http.Error(w, "failed to update event type", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(et)
}

// Delete handles DELETE /event-types/{eventTypeID}.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	workspaceID, ok := tenancy.WorkspaceIDFromContext(r.Context())
	if !ok {
		http.Error(w, "missing workspace context", http.StatusBadRequest)
		return
	}
	id := chi.URLParam(r, "eventTypeID")
	if err := h.repo.Delete(r.Context(), workspaceID, id); err != nil {
		if errors.Is(err, ErrEventTypeNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		h.logger.Error("failed to delete event type", "error", err)
		http.Error(w, "failed to delete event type", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
