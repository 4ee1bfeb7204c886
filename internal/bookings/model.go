// Package bookings persists appointments and guards booking creation with
// an authoritative slot re-check against the scheduling engine.
package bookings

import (
	"strings"
	"time"
)

// Booking statuses. Cancelled and emergency bookings do not block slots.
const (
	StatusConfirmed = "confirmed"
	StatusCancelled = "cancelled"
	StatusEmergency = "emergency"
	StatusCompleted = "completed"
)

// Booking is one appointment held by a customer with a provider.
type Booking struct {
	ID            string    `json:"id"`
	WorkspaceID   string    `json:"workspace_id"`
	ProviderID    string    `json:"provider_id,omitempty"`
	EventTypeID   string    `json:"event_type_id"`
	CustomerName  string    `json:"customer_name"`
	CustomerEmail string    `json:"customer_email"`
	StartAt       time.Time `json:"start_at"`
	EndAt         time.Time `json:"end_at"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
}

// CreateBookingRequest is the widget's booking submission. EndAt is derived
// from the event type's duration, never trusted from the client.
type CreateBookingRequest struct {
	WorkspaceID   string    `json:"-"`
	ProviderID    string    `json:"provider_id"`
	EventTypeID   string    `json:"event_type_id"`
	CustomerName  string    `json:"customer_name"`
	CustomerEmail string    `json:"customer_email"`
	StartAt       time.Time `json:"start_at"`
}

// Validate validates the create booking request
func (r *CreateBookingRequest) Validate() error {
	if strings.TrimSpace(r.WorkspaceID) == "" {
		return ErrMissingWorkspaceID
	}
	if strings.TrimSpace(r.EventTypeID) == "" {
		return ErrMissingEventType
	}
	if strings.TrimSpace(r.CustomerName) == "" {
		return ErrMissingCustomer
	}
	if r.StartAt.IsZero() {
		return ErrMissingStart
	}
	return nil
}

// Blocks reports whether a booking with this status occupies its slot.
func Blocks(status string) bool {
	return status != StatusCancelled && status != StatusEmergency
}
