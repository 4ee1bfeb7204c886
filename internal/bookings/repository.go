package bookings

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/msinoftech/getsettime/internal/availability"
)

// Repository defines the interface for booking storage.
type Repository interface {
	Create(ctx context.Context, b *Booking) (*Booking, error)
	GetForWorkspace(ctx context.Context, workspaceID, id string) (*Booking, error)
	ListForRange(ctx context.Context, workspaceID, providerID string, from, to time.Time) ([]*Booking, error)
	UpdateStatus(ctx context.Context, workspaceID, id, status string) (*Booking, error)
	ListBusy(ctx context.Context, workspaceID, providerID string, from, to time.Time) ([]availability.BusyInterval, error)
}

// InMemoryRepository is an in-memory Repository used by tests and demos.
type InMemoryRepository struct {
	mu       sync.RWMutex
	bookings map[string]*Booking
}

// NewInMemoryRepository creates a new in-memory repository.
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{bookings: make(map[string]*Booking)}
}

// Create stores a new booking in memory.
func (r *InMemoryRepository) Create(ctx context.Context, b *Booking) (*Booking, error) {
	stored := *b
	if stored.ID == "" {
		stored.ID = uuid.New().String()
	}
	stored.CreatedAt = time.Now().UTC()

	r.mu.Lock()
	r.bookings[stored.ID] = &stored
	r.mu.Unlock()

	out := stored
	return &out, nil
}

// GetForWorkspace retrieves a booking scoped to the workspace.
func (r *InMemoryRepository) GetForWorkspace(ctx context.Context, workspaceID, id string) (*Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	b, ok := r.bookings[id]
	if !ok || b.WorkspaceID != workspaceID {
		return nil, ErrBookingNotFound
	}
	out := *b
	return &out, nil
}

// ListForRange returns bookings whose start falls in [from, to), most
// recent last.
func (r *InMemoryRepository) ListForRange(ctx context.Context, workspaceID, providerID string, from, to time.Time) ([]*Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*Booking
	for _, b := range r.bookings {
		if b.WorkspaceID != workspaceID {
			continue
		}
		if providerID != "" && b.ProviderID != providerID {
			continue
		}
		if b.StartAt.Before(from) || !b.StartAt.Before(to) {
			continue
		}
		copied := *b
		out = append(out, &copied)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartAt.Before(out[j].StartAt) })
	return out, nil
}

// UpdateStatus transitions a booking's status.
func (r *InMemoryRepository) UpdateStatus(ctx context.Context, workspaceID, id, status string) (*Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[id]
	if !ok || b.WorkspaceID != workspaceID {
		return nil, ErrBookingNotFound
	}
	b.Status = status
	out := *b
	return &out, nil
}

// ListBusy returns the blocking intervals for slot resolution: every booking
// in range whose status still occupies its slot.
func (r *InMemoryRepository) ListBusy(ctx context.Context, workspaceID, providerID string, from, to time.Time) ([]availability.BusyInterval, error) {
	rows, err := r.ListForRange(ctx, workspaceID, providerID, from, to)
	if err != nil {
		return nil, err
	}
	return busyFromBookings(rows), nil
}

func busyFromBookings(rows []*Booking) []availability.BusyInterval {
	var busy []availability.BusyInterval
	for _, b := range rows {
		if !Blocks(b.Status) {
			continue
		}
		busy = append(busy, availability.BusyInterval{
			StartAt: b.StartAt,
			EndAt:   b.EndAt,
			Status:  b.Status,
		})
	}
	return busy
}
