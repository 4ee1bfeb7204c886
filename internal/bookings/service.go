package bookings

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/msinoftech/getsettime/internal/availability"
	"github.com/msinoftech/getsettime/internal/observability/metrics"
	"github.com/msinoftech/getsettime/pkg/logging"
)

var bookingsTracer = otel.Tracer("getsettime.internal.bookings")

// SlotChecker re-derives the slot list for a selection and reports whether
// the chosen start is still open. Implemented by the scheduling service.
type SlotChecker interface {
	SlotOpen(ctx context.Context, workspaceID, providerID, eventTypeID string, startAt time.Time) (bool, error)
}

// EventTypeSource resolves an event type's duration.
type EventTypeSource interface {
	GetDurationMinutes(ctx context.Context, workspaceID, eventTypeID string) (int, error)
}

// Notifier delivers booking lifecycle notifications. Failures are logged,
// never surfaced to the customer.
type Notifier interface {
	BookingConfirmed(ctx context.Context, b *Booking) error
	BookingCancelled(ctx context.Context, b *Booking) error
}

// Service creates and cancels bookings.
type Service struct {
	repo       Repository
	checker    SlotChecker
	eventTypes EventTypeSource
	notifier   Notifier
	metrics    *metrics.SchedulingMetrics
	logger     *logging.Logger
}

// NewService constructs a bookings service.
func NewService(repo Repository, checker SlotChecker, eventTypes EventTypeSource, notifier Notifier, m *metrics.SchedulingMetrics, logger *logging.Logger) *Service {
	if repo == nil {
		panic("bookings: repository required")
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Service{
		repo:       repo,
		checker:    checker,
		eventTypes: eventTypes,
		notifier:   notifier,
		metrics:    m,
		logger:     logger,
	}
}

// Create books a slot. The slot list is re-derived and the chosen start
// re-checked immediately before the insert: the widget's earlier slot
// display is advisory, this check is authoritative.
func (s *Service) Create(ctx context.Context, req *CreateBookingRequest) (*Booking, error) {
	ctx, span := bookingsTracer.Start(ctx, "bookings.create")
	defer span.End()
	span.SetAttributes(
		attribute.String("getsettime.workspace_id", req.WorkspaceID),
		attribute.String("getsettime.event_type_id", req.EventTypeID),
	)

	if err := req.Validate(); err != nil {
		return nil, err
	}

	duration := availability.DefaultDurationMinutes
	if s.eventTypes != nil {
		d, err := s.eventTypes.GetDurationMinutes(ctx, req.WorkspaceID, req.EventTypeID)
		if err != nil {
			span.RecordError(err)
			return nil, fmt.Errorf("bookings: resolve event type: %w", err)
		}
		if d > 0 {
			duration = d
		}
	}

	if s.checker != nil {
		open, err := s.checker.SlotOpen(ctx, req.WorkspaceID, req.ProviderID, req.EventTypeID, req.StartAt)
		if err != nil {
			span.RecordError(err)
			return nil, fmt.Errorf("bookings: slot check: %w", err)
		}
		if !open {
			s.metrics.ObserveSlotConflict()
			s.logger.Warn("booking rejected, slot taken",
				"workspace_id", req.WorkspaceID,
				"start_at", req.StartAt,
			)
			return nil, ErrSlotTaken
		}
	}

	booking, err := s.repo.Create(ctx, &Booking{
		WorkspaceID:   req.WorkspaceID,
		ProviderID:    req.ProviderID,
		EventTypeID:   req.EventTypeID,
		CustomerName:  req.CustomerName,
		CustomerEmail: req.CustomerEmail,
		StartAt:       req.StartAt,
		EndAt:         req.StartAt.Add(time.Duration(duration) * time.Minute),
		Status:        StatusConfirmed,
	})
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	s.metrics.ObserveBookingCreated(booking.Status)
	s.logger.Info("booking created",
		"workspace_id", booking.WorkspaceID,
		"booking_id", booking.ID,
		"start_at", booking.StartAt,
	)

	if s.notifier != nil {
		if err := s.notifier.BookingConfirmed(ctx, booking); err != nil {
			s.logger.Error("confirmation notification failed", "error", err, "booking_id", booking.ID)
		}
	}
	return booking, nil
}

// Cancel marks a booking cancelled, freeing its slot.
func (s *Service) Cancel(ctx context.Context, workspaceID, bookingID string) (*Booking, error) {
	ctx, span := bookingsTracer.Start(ctx, "bookings.cancel")
	defer span.End()
	span.SetAttributes(attribute.String("getsettime.booking_id", bookingID))

	booking, err := s.repo.UpdateStatus(ctx, workspaceID, bookingID, StatusCancelled)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	s.logger.Info("booking cancelled", "workspace_id", workspaceID, "booking_id", bookingID)

	if s.notifier != nil {
		if err := s.notifier.BookingCancelled(ctx, booking); err != nil {
			s.logger.Error("cancellation notification failed", "error", err, "booking_id", bookingID)
		}
	}
	return booking, nil
}

// List returns a workspace's bookings for a date range.
func (s *Service) List(ctx context.Context, workspaceID, providerID string, from, to time.Time) ([]*Booking, error) {
	return s.repo.ListForRange(ctx, workspaceID, providerID, from, to)
}
