// Package eventtypes manages the bookable services a workspace offers.
package eventtypes

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrEventTypeNotFound = errors.New("eventtypes: not found")
	ErrMissingTitle      = errors.New("eventtypes: title is required")
	ErrInvalidDuration   = errors.New("eventtypes: duration must be a positive number of minutes")
)

// EventType is a bookable service with a fixed duration.
type EventType struct {
	ID              string    `json:"id"`
	WorkspaceID     string    `json:"workspace_id"`
	Title           string    `json:"title"`
	DurationMinutes int       `json:"duration_minutes"`
	Active          bool      `json:"active"`
	CreatedAt       time.Time `json:"created_at"`
}

// UpsertRequest is the request body for creating or updating an event type.
type UpsertRequest struct {
	WorkspaceID     string `json:"-"`
	Title           string `json:"title"`
	DurationMinutes int    `json:"duration_minutes"`
	Active          *bool  `json:"active,omitempty"`
}

// Validate enforces the write boundary: the slot engine tolerates a zero
// duration by falling back to 30 minutes, but persisted event types must
// carry a real one.
func (r *UpsertRequest) Validate() error {
	if strings.TrimSpace(r.Title) == "" {
		return ErrMissingTitle
	}
	if r.DurationMinutes <= 0 {
		return ErrInvalidDuration
	}
	return nil
}
