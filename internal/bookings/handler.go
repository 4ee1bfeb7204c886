package bookings

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/msinoftech/getsettime/internal/tenancy"
	"github.com/msinoftech/getsettime/pkg/logging"
)

// Handler handles HTTP requests for bookings.
type Handler struct {
	service *Service
	logger  *logging.Logger
}

// NewHandler creates a bookings handler.
func NewHandler(service *Service, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{service: service, logger: logger}
}

// Create handles POST /widget/{slug}/bookings.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	workspaceID, ok := tenancy.WorkspaceIDFromContext(r.Context())
	if !ok {
		http.Error(w, "missing workspace context", http.StatusBadRequest)
		return
	}

	var req CreateBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	req.WorkspaceID = workspaceID

	booking, err := h.service.Create(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, ErrSlotTaken):
			http.Error(w, err.Error(), http.StatusConflict)
		case errors.Is(err, ErrMissingEventType),
			errors.Is(err, ErrMissingCustomer),
			errors.Is(err, ErrMissingStart):
			http.Error(w, err.Error(), http.StatusBadRequest)
		default:
			h.logger.Error("failed to create booking", "error", err)
			http.Error(w, "failed to create booking", http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(booking)
}

// ListResponse is the response for listing bookings.
type ListResponse struct {
	Bookings []*Booking `json:"bookings"`
	Count    int        `json:"count"`
}

// List handles GET /bookings?from=YYYY-MM-DD&to=YYYY-MM-DD&provider=…
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	workspaceID, ok := tenancy.WorkspaceIDFromContext(r.Context())
	if !ok {
		http.Error(w, "missing workspace context", http.StatusBadRequest)
		return
	}

	from, err := parseDateParam(r, "from", time.Now().UTC())
	if err != nil {
		http.Error(w, "invalid from date", http.StatusBadRequest)
		return
	}
	to, err := parseDateParam(r, "to", from.AddDate(0, 0, 30))
	if err != nil {
		http.Error(w, "invalid to date", http.StatusBadRequest)
		return
	}

	rows, err := h.service.List(r.Context(), workspaceID, r.URL.Query().Get("provider"), from, to)
	if err != nil {
		h.logger.Error("failed to list bookings", "error", err)
		http.Error(w, "failed to list bookings", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(ListResponse{Bookings: rows, Count: len(rows)})
}

// Cancel handles DELETE /bookings/{bookingID}.
func (h *Handler) Cancel(w http.ResponseWriter, r *http.Request) {
	workspaceID, ok := tenancy.WorkspaceIDFromContext(r.Context())
	if !ok {
		http.Error(w, "missing workspace context", http.StatusBadRequest)
		return
	}
	bookingID := chi.URLParam(r, "bookingID")
	if bookingID == "" {
		http.Error(w, "missing booking id", http.StatusBadRequest)
		return
	}

	booking, err := h.service.Cancel(r.Context(), workspaceID, bookingID)
	if err != nil {
		if errors.Is(err, ErrBookingNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		h.logger.Error("failed to cancel booking", "error", err)
		http.Error(w, "failed to cancel booking", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(booking)
}

func parseDateParam(r *http.Request, name string, fallback time.Time) (time.Time, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback, nil
	}
	return time.Parse("2006-01-02", raw)
}
