package bookings

import "errors"

var (
	ErrBookingNotFound    = errors.New("bookings: not found")
	ErrSlotTaken          = errors.New("bookings: slot is no longer available")
	ErrMissingWorkspaceID = errors.New("bookings: workspace id is required")
	ErrMissingEventType   = errors.New("bookings: event type is required")
	ErrMissingCustomer    = errors.New("bookings: customer name is required")
	ErrMissingStart       = errors.New("bookings: start time is required")
)
