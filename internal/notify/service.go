package notify

import (
	"context"
	"fmt"

	"github.com/msinoftech/getsettime/internal/bookings"
	"github.com/msinoftech/getsettime/pkg/logging"
)

// Service sends booking lifecycle emails to customers. It implements
// bookings.Notifier.
type Service struct {
	email  EmailSender
	logger *logging.Logger
}

// NewService creates a notification service. A nil sender disables
// delivery without disabling the service.
func NewService(email EmailSender, logger *logging.Logger) *Service {
	if logger == nil {
		logger = logging.Default()
	}
	return &Service{email: email, logger: logger}
}

// BookingConfirmed emails the customer their confirmation.
func (s *Service) BookingConfirmed(ctx context.Context, b *bookings.Booking) error {
	if s.email == nil || b.CustomerEmail == "" {
		return nil
	}

	when := b.StartAt.Format("Monday, January 2 at 3:04 PM")
	subject := fmt.Sprintf("Booking confirmed for %s", when)
	body := fmt.Sprintf(`Hi %s,

Your booking is confirmed for %s.

If you need to reschedule or cancel, reply to this email.
`, b.CustomerName, when)

	msg := EmailMessage{
		To:      b.CustomerEmail,
		ToName:  b.CustomerName,
		Subject: subject,
		Body:    body,
	}
	if err := s.email.Send(ctx, msg); err != nil {
		s.logger.Error("failed to send confirmation email", "error", err, "booking_id", b.ID)
		return fmt.Errorf("notify: booking confirmation: %w", err)
	}
	s.logger.Info("booking confirmation sent", "booking_id", b.ID, "to", b.CustomerEmail)
	return nil
}

// BookingCancelled emails the customer that their booking was cancelled.
func (s *Service) BookingCancelled(ctx context.Context, b *bookings.Booking) error {
	if s.email == nil || b.CustomerEmail == "" {
		return nil
	}

	when := b.StartAt.Format("Monday, January 2 at 3:04 PM")
	msg := EmailMessage{
		To:      b.CustomerEmail,
		ToName:  b.CustomerName,
		Subject: fmt.Sprintf("Booking cancelled for %s", when),
		Body: fmt.Sprintf(`Hi %s,

Your booking for %s has been cancelled.

You can book a new time at any point from the scheduling page.
`, b.CustomerName, when),
	}
	if err := s.email.Send(ctx, msg); err != nil {
		s.logger.Error("failed to send cancellation email", "error", err, "booking_id", b.ID)
		return fmt.Errorf("notify: booking cancellation: %w", err)
	}
	s.logger.Info("booking cancellation sent", "booking_id", b.ID, "to", b.CustomerEmail)
	return nil
}

var _ bookings.Notifier = (*Service)(nil)
