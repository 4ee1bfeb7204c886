// Package scheduling orchestrates slot resolution: it joins workspace
// availability settings, event type durations, and busy intervals from
// bookings and external calendars, and answers the two questions the
// booking widget asks — which slots exist on a date, and which dates in
// a month have any open slot.
package scheduling

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/msinoftech/getsettime/internal/availability"
	"github.com/msinoftech/getsettime/internal/eventtypes"
	"github.com/msinoftech/getsettime/internal/observability/metrics"
	"github.com/msinoftech/getsettime/internal/settings"
	"github.com/msinoftech/getsettime/pkg/logging"
)

var tracer = otel.Tracer("getsettime.internal.scheduling")

// SettingsSource loads a workspace's availability settings.
// Implemented by settings.Store.
type SettingsSource interface {
	Load(ctx context.Context, workspaceID string) (*settings.WorkspaceSettings, error)
}

// EventTypeSource resolves an event type by id. Implemented by
// eventtypes repositories.
type EventTypeSource interface {
	Get(ctx context.Context, workspaceID, id string) (*eventtypes.EventType, error)
}

// BusySource lists blocking intervals in a time range. Implemented by
// bookings repositories.
type BusySource interface {
	ListBusy(ctx context.Context, workspaceID, providerID string, from, to time.Time) ([]availability.BusyInterval, error)
}

// ExternalBusySource lists busy intervals synced from external
// calendars for a local date. Implemented by calendarsync.Store.
type ExternalBusySource interface {
	ListForDay(ctx context.Context, workspaceID, providerID string, date time.Time) ([]availability.BusyInterval, error)
}

// DepartmentSource reports whether a workspace has any departments.
// Implemented by members repositories.
type DepartmentSource interface {
	HasDepartments(ctx context.Context, workspaceID string) (bool, error)
}

// Service resolves availability for a workspace.
type Service struct {
	settings    SettingsSource
	eventTypes  EventTypeSource
	busy        BusySource
	external    ExternalBusySource
	departments DepartmentSource
	metrics     *metrics.SchedulingMetrics
	logger      *logging.Logger
	now         func() time.Time
}

// NewService creates a scheduling service. external and departments may
// be nil; metrics may be nil.
func NewService(settingsSrc SettingsSource, eventTypes EventTypeSource, busy BusySource, external ExternalBusySource, departments DepartmentSource, m *metrics.SchedulingMetrics, logger *logging.Logger) *Service {
	if settingsSrc == nil {
		panic("scheduling: settings source required")
	}
	if eventTypes == nil {
		panic("scheduling: event type source required")
	}
	if busy == nil {
		panic("scheduling: busy source required")
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Service{
		settings:    settingsSrc,
		eventTypes:  eventTypes,
		busy:        busy,
		external:    external,
		departments: departments,
		metrics:     m,
		logger:      logger,
		now:         time.Now,
	}
}

// WithClock overrides the service clock. Test hook.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// SlotsForDate resolves the slot list for a selection. A workspace with
// departments requires a provider selection; without one the answer is
// no slots rather than a merged view across providers.
func (s *Service) SlotsForDate(ctx context.Context, workspaceID, providerID, eventTypeID string, date time.Time) ([]availability.Slot, error) {
	ctx, span := tracer.Start(ctx, "scheduling.SlotsForDate")
	defer span.End()
	span.SetAttributes(
		attribute.String("workspace.id", workspaceID),
		attribute.String("provider.id", providerID),
		attribute.String("event_type.id", eventTypeID),
		attribute.String("date", availability.FormatLocalDate(date)),
	)

	if providerID == "" && s.departments != nil {
		has, err := s.departments.HasDepartments(ctx, workspaceID)
		if err != nil {
			return nil, fmt.Errorf("scheduling: check departments: %w", err)
		}
		if has {
			return nil, nil
		}
	}

	ws, err := s.settings.Load(ctx, workspaceID)
	if err != nil {
		return nil, fmt.Errorf("scheduling: load settings: %w", err)
	}
	effective := ws.Effective(providerID)

	et, err := s.eventTypes.Get(ctx, workspaceID, eventTypeID)
	if err != nil {
		return nil, fmt.Errorf("scheduling: resolve event type: %w", err)
	}

	busy, err := s.busyForDay(ctx, workspaceID, providerID, date)
	if err != nil {
		return nil, err
	}

	slots := availability.Slots(&availability.EventType{
		ID:              et.ID,
		Title:           et.Title,
		DurationMinutes: et.DurationMinutes,
	}, date, &effective, busy, s.now())

	s.metrics.ObserveSlotQuery("slots", countOpen(slots))
	return slots, nil
}

// DatesAvailable reports, for every day of a month, whether at least
// one open slot exists. Keys are local dates in YYYY-MM-DD form.
func (s *Service) DatesAvailable(ctx context.Context, workspaceID, providerID, eventTypeID string, year int, month time.Month, loc *time.Location) (map[string]bool, error) {
	ctx, span := tracer.Start(ctx, "scheduling.DatesAvailable")
	defer span.End()
	span.SetAttributes(
		attribute.String("workspace.id", workspaceID),
		attribute.String("month", fmt.Sprintf("%04d-%02d", year, month)),
	)

	if loc == nil {
		loc = time.UTC
	}

	if providerID == "" && s.departments != nil {
		has, err := s.departments.HasDepartments(ctx, workspaceID)
		if err != nil {
			return nil, fmt.Errorf("scheduling: check departments: %w", err)
		}
		if has {
			return map[string]bool{}, nil
		}
	}

	ws, err := s.settings.Load(ctx, workspaceID)
	if err != nil {
		return nil, fmt.Errorf("scheduling: load settings: %w", err)
	}
	effective := ws.Effective(providerID)

	et, err := s.eventTypes.Get(ctx, workspaceID, eventTypeID)
	if err != nil {
		return nil, fmt.Errorf("scheduling: resolve event type: %w", err)
	}
	avEventType := &availability.EventType{
		ID:              et.ID,
		Title:           et.Title,
		DurationMinutes: et.DurationMinutes,
	}

	first := time.Date(year, month, 1, 0, 0, 0, 0, loc)
	next := first.AddDate(0, 1, 0)

	// One range query for the whole month; the overlap predicate scopes
	// each interval to its local date during slot resolution.
	busy, err := s.busy.ListBusy(ctx, workspaceID, providerID, first, next)
	if err != nil {
		return nil, fmt.Errorf("scheduling: list busy intervals: %w", err)
	}

	now := s.now()
	out := make(map[string]bool)
	for day := first; day.Before(next); day = day.AddDate(0, 0, 1) {
		out[availability.FormatLocalDate(day)] = availability.DateAvailable(day, &effective, avEventType, busy, now)
	}
	return out, nil
}

// SlotOpen re-derives the slot list for a selection and reports whether
// the chosen start time is still an open slot. It backs the final
// conflict check on booking submission.
func (s *Service) SlotOpen(ctx context.Context, workspaceID, providerID, eventTypeID string, startAt time.Time) (bool, error) {
	ctx, span := tracer.Start(ctx, "scheduling.SlotOpen")
	defer span.End()

	slots, err := s.SlotsForDate(ctx, workspaceID, providerID, eventTypeID, startAt)
	if err != nil {
		return false, err
	}

	want := availability.FormatMinutes(startAt.Hour()*60 + startAt.Minute())
	for _, slot := range slots {
		if slot.Time == want {
			return !slot.Disabled, nil
		}
	}
	return false, nil
}

func (s *Service) busyForDay(ctx context.Context, workspaceID, providerID string, date time.Time) ([]availability.BusyInterval, error) {
	dayStart := availability.NormalizeDate(date)
	dayEnd := dayStart.AddDate(0, 0, 1)

	busy, err := s.busy.ListBusy(ctx, workspaceID, providerID, dayStart, dayEnd)
	if err != nil {
		return nil, fmt.Errorf("scheduling: list busy intervals: %w", err)
	}

	if s.external != nil {
		ext, err := s.external.ListForDay(ctx, workspaceID, providerID, date)
		if err != nil {
			// A broken calendar cache must not take down slot resolution.
			s.logger.Warn("external busy lookup failed", "error", err, "workspace_id", workspaceID)
		} else {
			busy = append(busy, ext...)
		}
	}
	return busy, nil
}

func countOpen(slots []availability.Slot) int {
	n := 0
	for _, slot := range slots {
		if !slot.Disabled {
			n++
		}
	}
	return n
}
