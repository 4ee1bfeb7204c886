package scheduling

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/msinoftech/getsettime/internal/availability"
	"github.com/msinoftech/getsettime/internal/tenancy"
	"github.com/msinoftech/getsettime/pkg/logging"
)

// Handler serves the widget's availability queries.
type Handler struct {
	service *Service
	logger  *logging.Logger
}

// NewHandler creates a scheduling handler.
func NewHandler(service *Service, logger *logging.Logger) *Handler {
	if service == nil {
		panic("scheduling: service required")
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{service: service, logger: logger}
}

type slotsResponse struct {
	Date  string              `json:"date"`
	Slots []availability.Slot `json:"slots"`
}

// Slots handles GET /slots?date=YYYY-MM-DD&event_type_id=...&provider_id=...
func (h *Handler) Slots(w http.ResponseWriter, r *http.Request) {
	workspaceID, ok := tenancy.WorkspaceIDFromContext(r.Context())
	if !ok {
		http.Error(w, "missing workspace context", http.StatusBadRequest)
		return
	}

	q := r.URL.Query()
	eventTypeID := q.Get("event_type_id")
	if eventTypeID == "" {
		http.Error(w, "event_type_id is required", http.StatusBadRequest)
		return
	}
	date, err := time.Parse("2006-01-02", q.Get("date"))
	if err != nil {
		http.Error(w, "date must be YYYY-MM-DD", http.StatusBadRequest)
		return
	}

	slots, err := h.service.SlotsForDate(r.Context(), workspaceID, q.Get("provider_id"), eventTypeID, date)
	if err != nil {
		h.logger.Error("slot resolution failed", "error", err, "workspace_id", workspaceID)
		http.Error(w, "failed to resolve slots", http.StatusInternalServerError)
		return
	}
	if slots == nil {
		slots = []availability.Slot{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(slotsResponse{
		Date:  availability.FormatLocalDate(date),
		Slots: slots,
	})
}

type calendarResponse struct {
	Month string          `json:"month"`
	Days  map[string]bool `json:"days"`
}

// Calendar handles GET /calendar?month=YYYY-MM&event_type_id=...&provider_id=...
func (h *Handler) Calendar(w http.ResponseWriter, r *http.Request) {
	workspaceID, ok := tenancy.WorkspaceIDFromContext(r.Context())
	if !ok {
		http.Error(w, "missing workspace context", http.StatusBadRequest)
		return
	}

	q := r.URL.Query()
	eventTypeID := q.Get("event_type_id")
	if eventTypeID == "" {
		http.Error(w, "event_type_id is required", http.StatusBadRequest)
		return
	}
	month, err := time.Parse("2006-01", q.Get("month"))
	if err != nil {
		http.Error(w, "month must be YYYY-MM", http.StatusBadRequest)
		return
	}

	days, err := h.service.DatesAvailable(r.Context(), workspaceID, q.Get("provider_id"), eventTypeID, month.Year(), month.Month(), time.UTC)
	if err != nil {
		h.logger.Error("calendar resolution failed", "error", err, "workspace_id", workspaceID)
		http.Error(w, "failed to resolve calendar", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(calendarResponse{
		Month: month.Format("2006-01"),
		Days:  days,
	})
}
