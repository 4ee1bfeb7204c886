package workspaces

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository defines workspace persistence operations.
type Repository interface {
	Create(ctx context.Context, w *Workspace) (*Workspace, error)
	Get(ctx context.Context, id string) (*Workspace, error)
	GetBySlug(ctx context.Context, slug string) (*Workspace, error)
	List(ctx context.Context) ([]*Workspace, error)
	Update(ctx context.Context, w *Workspace) (*Workspace, error)
	Delete(ctx context.Context, id string) error
}

// PostgresRepository implements Repository backed by PostgreSQL.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a PostgreSQL-backed workspace repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	if pool == nil {
		panic("workspaces: pool is required")
	}
	return &PostgresRepository{pool: pool}
}

func (r *PostgresRepository) Create(ctx context.Context, w *Workspace) (*Workspace, error) {
	if w.ID == "" {
		w.ID = uuid.New().String()
	}
	query := `
		INSERT INTO workspaces (id, name, slug, timezone, active)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at`
	err := r.pool.QueryRow(ctx, query, w.ID, w.Name, w.Slug, w.Timezone, w.Active).Scan(&w.CreatedAt)
	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			return nil, ErrSlugTaken
		}
		return nil, fmt.Errorf("workspaces: create workspace: %w", err)
	}
	return w, nil
}

func (r *PostgresRepository) Get(ctx context.Context, id string) (*Workspace, error) {
	return r.getBy(ctx, "id = $1", id)
}

func (r *PostgresRepository) GetBySlug(ctx context.Context, slug string) (*Workspace, error) {
	return r.getBy(ctx, "slug = $1", slug)
}

func (r *PostgresRepository) getBy(ctx context.Context, clause, arg string) (*Workspace, error) {
	query := `
		SELECT id, name, slug, timezone, active, created_at
		FROM workspaces
		WHERE ` + clause
	var w Workspace
	err := r.pool.QueryRow(ctx, query, arg).Scan(&w.ID, &w.Name, &w.Slug, &w.Timezone, &w.Active, &w.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrWorkspaceNotFound
		}
		return nil, fmt.Errorf("workspaces: get workspace: %w", err)
	}
	return &w, nil
}

func (r *PostgresRepository) List(ctx context.Context) ([]*Workspace, error) {
	query := `
		SELECT id, name, slug, timezone, active, created_at
		FROM workspaces
		ORDER BY created_at`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("workspaces: list workspaces: %w", err)
	}
	defer rows.Close()

	var out []*Workspace
	for rows.Next() {
		var w Workspace
		if err := rows.Scan(&w.ID, &w.Name, &w.Slug, &w.Timezone, &w.Active, &w.CreatedAt); err != nil {
			return nil, fmt.Errorf("workspaces: scan workspace: %w", err)
		}
		out = append(out, &w)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) Update(ctx context.Context, w *Workspace) (*Workspace, error) {
	query := `
		UPDATE workspaces
		SET name = $2, slug = $3, timezone = $4, active = $5
		WHERE id = $1
		RETURNING created_at`
	err := r.pool.QueryRow(ctx, query, w.ID, w.Name, w.Slug, w.Timezone, w.Active).Scan(&w.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrWorkspaceNotFound
		}
		if strings.Contains(err.Error(), "duplicate key") {
			return nil, ErrSlugTaken
		}
		return nil, fmt.Errorf("workspaces: update workspace: %w", err)
	}
	return w, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM workspaces WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("workspaces: delete workspace: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrWorkspaceNotFound
	}
	return nil
}

// InMemoryRepository implements Repository in memory for tests and local use.
type InMemoryRepository struct {
	mu     sync.RWMutex
	byID   map[string]*Workspace
	bySlug map[string]string
}

// NewInMemoryRepository creates an empty in-memory workspace repository.
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		byID:   make(map[string]*Workspace),
		bySlug: make(map[string]string),
	}
}

func (r *InMemoryRepository) Create(ctx context.Context, w *Workspace) (*Workspace, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if w.Slug != "" {
		if _, exists := r.bySlug[w.Slug]; exists {
			return nil, ErrSlugTaken
		}
	}
	cp := *w
	if cp.ID == "" {
		cp.ID = uuid.New().String()
	}
	cp.CreatedAt = time.Now()
	r.byID[cp.ID] = &cp
	if cp.Slug != "" {
		r.bySlug[cp.Slug] = cp.ID
	}
	out := cp
	return &out, nil
}

func (r *InMemoryRepository) Get(ctx context.Context, id string) (*Workspace, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	w, ok := r.byID[id]
	if !ok {
		return nil, ErrWorkspaceNotFound
	}
	out := *w
	return &out, nil
}

func (r *InMemoryRepository) GetBySlug(ctx context.Context, slug string) (*Workspace, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.bySlug[slug]
	if !ok {
		return nil, ErrWorkspaceNotFound
	}
	out := *r.byID[id]
	return &out, nil
}

func (r *InMemoryRepository) List(ctx context.Context) ([]*Workspace, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*Workspace, 0, len(r.byID))
	for _, w := range r.byID {
		cp := *w
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *InMemoryRepository) Update(ctx context.Context, w *Workspace) (*Workspace, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.byID[w.ID]
	if !ok {
		return nil, ErrWorkspaceNotFound
	}
	if w.Slug != existing.Slug {
		if id, taken := r.bySlug[w.Slug]; taken && id != w.ID {
			return nil, ErrSlugTaken
		}
		delete(r.bySlug, existing.Slug)
		if w.Slug != "" {
			r.bySlug[w.Slug] = w.ID
		}
	}
	cp := *w
	cp.CreatedAt = existing.CreatedAt
	r.byID[cp.ID] = &cp
	out := cp
	return &out, nil
}

func (r *InMemoryRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	w, ok := r.byID[id]
	if !ok {
		return ErrWorkspaceNotFound
	}
	delete(r.bySlug, w.Slug)
	delete(r.byID, id)
	return nil
}
