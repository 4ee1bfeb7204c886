package eventtypes

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository defines the interface for event type storage.
type Repository interface {
	Create(ctx context.Context, et *EventType) (*EventType, error)
	Get(ctx context.Context, workspaceID, id string) (*EventType, error)
	List(ctx context.Context, workspaceID string, activeOnly bool) ([]*EventType, error)
	Update(ctx context.Context, et *EventType) (*EventType, error)
	Delete(ctx context.Context, workspaceID, id string) error
}

// DurationSource adapts a Repository to the duration lookup the bookings
// service needs.
type DurationSource struct {
	repo Repository
}

// NewDurationSource wraps a repository for duration lookups.
func NewDurationSource(repo Repository) *DurationSource {
	return &DurationSource{repo: repo}
}

func (s *DurationSource) GetDurationMinutes(ctx context.Context, workspaceID, eventTypeID string) (int, error) {
	et, err := s.repo.Get(ctx, workspaceID, eventTypeID)
	if err != nil {
		return 0, err
	}
	return et.DurationMinutes, nil
}

// PostgresRepository stores event types in the relational database.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository initializes a repo backed by pgxpool.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	if pool == nil {
		panic("eventtypes: pgx pool required")
	}
	return &PostgresRepository{pool: pool}
}

// Create inserts a new row.
func (r *PostgresRepository) Create(ctx context.Context, et *EventType) (*EventType, error) {
	id := uuid.New().String()
	query := `
		INSERT INTO event_types (id, workspace_id, title, duration_minutes, active)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at
	`
	var createdAt time.Time
	if err := r.pool.QueryRow(ctx, query, id, et.WorkspaceID, et.Title, et.DurationMinutes, et.Active).Scan(&createdAt); err != nil {
		return nil, fmt.Errorf("eventtypes: insert failed: %w", err)
	}
	out := *et
	out.ID = id
	out.CreatedAt = createdAt
	return &out, nil
}

// Get fetches an event type scoped to the workspace.
func (r *PostgresRepository) Get(ctx context.Context, workspaceID, id string) (*EventType, error) {
	query := `
		SELECT id, workspace_id, title, duration_minutes, active, created_at
		FROM event_types
		WHERE id = $1 AND workspace_id = $2
	`
	var et EventType
	if err := r.pool.QueryRow(ctx, query, id, workspaceID).Scan(
		&et.ID, &et.WorkspaceID, &et.Title, &et.DurationMinutes, &et.Active, &et.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrEventTypeNotFound
		}
		return nil, fmt.Errorf("eventtypes: select failed: %w", err)
	}
	return &et, nil
}

// List returns the workspace's event types, newest first.
func (r *PostgresRepository) List(ctx context.Context, workspaceID string, activeOnly bool) ([]*EventType, error) {
	query := `
		SELECT id, workspace_id, title, duration_minutes, active, created_at
		FROM event_types
		WHERE workspace_id = $1 AND ($2 = false OR active)
		ORDER BY created_at DESC
	`
	rows, err := r.pool.Query(ctx, query, workspaceID, activeOnly)
	if err != nil {
		return nil, fmt.Errorf("eventtypes: list failed: %w", err)
	}
	defer rows.Close()

	var out []*EventType
	for rows.Next() {
		var et EventType
		if err := rows.Scan(&et.ID, &et.WorkspaceID, &et.Title, &et.DurationMinutes, &et.Active, &et.CreatedAt); err != nil {
			return nil, fmt.Errorf("eventtypes: scan failed: %w", err)
		}
		out = append(out, &et)
	}
	return out, rows.Err()
}

// Update rewrites the mutable fields.
func (r *PostgresRepository) Update(ctx context.Context, et *EventType) (*EventType, error) {
	query := `
		UPDATE event_types SET title = $3, duration_minutes = $4, active = $5
		WHERE id = $1 AND workspace_id = $2
		RETURNING created_at
	`
	var createdAt time.Time
	if err := r.pool.QueryRow(ctx, query, et.ID, et.WorkspaceID, et.Title, et.DurationMinutes, et.Active).Scan(&createdAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrEventTypeNotFound
		}
		return nil, fmt.Errorf("eventtypes: update failed: %w", err)
	}
	out := *et
	out.CreatedAt = createdAt
	return &out, nil
}

// Delete removes an event type.
func (r *PostgresRepository) Delete(ctx context.Context, workspaceID, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM event_types WHERE id = $1 AND workspace_id = $2`, id, workspaceID)
	if err != nil {
		return fmt.Errorf("eventtypes: delete failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrEventTypeNotFound
	}
	return nil
}

// InMemoryRepository is an in-memory Repository used by tests.
type InMemoryRepository struct {
	mu    sync.RWMutex
	items map[string]*EventType
}

// NewInMemoryRepository creates a new in-memory repository.
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{items: make(map[string]*EventType)}
}

func (r *InMemoryRepository) Create(ctx context.Context, et *EventType) (*EventType, error) {
	stored := *et
	stored.ID = uuid.New().String()
	stored.CreatedAt = time.Now().UTC()

	r.mu.Lock()
	r.items[stored.ID] = &stored
	r.mu.Unlock()

	out := stored
	return &out, nil
}

func (r *InMemoryRepository) Get(ctx context.Context, workspaceID, id string) (*EventType, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	et, ok := r.items[id]
	if !ok || et.WorkspaceID != workspaceID {
		return nil, ErrEventTypeNotFound
	}
	out := *et
	return &out, nil
}

func (r *InMemoryRepository) List(ctx context.Context, workspaceID string, activeOnly bool) ([]*EventType, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*EventType
	for _, et := range r.items {
		if et.WorkspaceID != workspaceID {
			continue
		}
		if activeOnly && !et.Active {
			continue
		}
		copied := *et
		out = append(out, &copied)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *InMemoryRepository) Update(ctx context.Context, et *EventType) (*EventType, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.items[et.ID]
	if !ok || existing.WorkspaceID != et.WorkspaceID {
		return nil, ErrEventTypeNotFound
	}
	existing.Title = et.Title
	existing.DurationMinutes = et.DurationMinutes
	existing.Active = et.Active
	out := *existing
	return &out, nil
}

func (r *InMemoryRepository) Delete(ctx context.Context, workspaceID, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	et, ok := r.items[id]
	if !ok || et.WorkspaceID != workspaceID {
		return ErrEventTypeNotFound
	}
	delete(r.items, id)
	return nil
}
