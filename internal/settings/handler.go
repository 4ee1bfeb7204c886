package settings

import (
	"encoding/json"
	"net/http"

	"github.com/msinoftech/getsettime/internal/availability"
	"github.com/msinoftech/getsettime/internal/tenancy"
	"github.com/msinoftech/getsettime/pkg/logging"
)

// Handler serves the workspace settings endpoints.
type Handler struct {
	store  *Store
	logger *logging.Logger
}

// NewHandler creates a settings handler.
func NewHandler(store *Store, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{store: store, logger: logger}
}

// Get handles GET /settings for the workspace in context.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	workspaceID, ok := tenancy.WorkspaceIDFromContext(r.Context())
	if !ok {
		http.Error(w, "missing workspace context", http.StatusBadRequest)
		return
	}
	ws, err := h.store.Load(r.Context(), workspaceID)
	if err != nil {
		h.logger.Error("failed to load settings", "error", err, "workspace_id", workspaceID)
		http.Error(w, "failed to load settings", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(ws)
}

// Update handles PUT /settings for the workspace in context.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	workspaceID, ok := tenancy.WorkspaceIDFromContext(r.Context())
	if !ok {
		http.Error(w, "missing workspace context", http.StatusBadRequest)
		return
	}
	var body Availability
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if err := validateAvailability(&body); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	ws := &WorkspaceSettings{WorkspaceID: workspaceID, Availability: body}
	if err := h.store.Save(r.Context(), ws); err != nil {
		h.logger.Error("failed to save settings", "error", err, "workspace_id", workspaceID)
		http.Error(w, "failed to save settings", http.StatusInternalServerError)
		return
	}
	h.logger.Info("settings updated", "workspace_id", workspaceID)
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(ws)
}

// validateAvailability guards the write boundary: the engine itself never
// validates clock strings, so garbage must be rejected here.
func validateAvailability(a *Availability) error {
	if err := validateTimesheet(a.Timesheet); err != nil {
		return err
	}
	for _, override := range a.Providers {
		if err := validateTimesheet(override.Timesheet); err != nil {
			return err
		}
	}
	return nil
}

func validateTimesheet(ts availability.Timesheet) error {
	for dayName, day := range ts {
		if !day.Enabled {
			continue
		}
		start := availability.ParseClock(day.StartTime)
		end := availability.ParseClock(day.EndTime)
		if start < 0 || end < 0 {
			return &ValidationError{Day: dayName, Message: "times must be HH:mm"}
		}
		if end <= start {
			return &ValidationError{Day: dayName, Message: "end time must be after start time"}
		}
		for _, b := range day.Breaks {
			bStart := availability.ParseClock(b.Start)
			bEnd := availability.ParseClock(b.End)
			if bStart < 0 || bEnd < 0 {
				return &ValidationError{Day: dayName, Message: "break times must be HH:mm"}
			}
			if bEnd <= bStart {
				return &ValidationError{Day: dayName, Message: "break end must be after break start"}
			}
			if bStart < start || bEnd > end {
				return &ValidationError{Day: dayName, Message: "breaks must fall within open hours"}
			}
		}
	}
	return nil
}

// ValidationError reports an invalid day schedule on write.
type ValidationError struct {
	Day     string
	Message string
}

func (e *ValidationError) Error() string {
	return "settings: " + e.Day + ": " + e.Message
}
