package members

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

// Repository defines the interface for member and department storage.
type Repository interface {
	CreateMember(ctx context.Context, m *Member) (*Member, error)
	GetMember(ctx context.Context, workspaceID, id string) (*Member, error)
	ListMembers(ctx context.Context, workspaceID string) ([]*Member, error)
	DeleteMember(ctx context.Context, workspaceID, id string) error
	CreateDepartment(ctx context.Context, d *Department) (*Department, error)
	ListDepartments(ctx context.Context, workspaceID string) ([]*Department, error)
	HasDepartments(ctx context.Context, workspaceID string) (bool, error)
}

// PostgresRepository stores members in the relational database.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository initializes a repo backed by pgxpool.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	if pool == nil {
		panic("members: pgx pool required")
	}
	return &PostgresRepository{pool: pool}
}

func (r *PostgresRepository) CreateMember(ctx context.Context, m *Member) (*Member, error) {
	id := uuid.New().String()
	query := `
		INSERT INTO members (id, workspace_id, department_id, name, email, role)
		VALUES ($1, $2, NULLIF($3, '')::uuid, $4, $5, $6)
		RETURNING created_at
	`
	var createdAt time.Time
	if err := r.pool.QueryRow(ctx, query, id, m.WorkspaceID, m.DepartmentID, m.Name, m.Email, m.Role).Scan(&createdAt); err != nil {
		return nil, fmt.Errorf("members: insert failed: %w", err)
	}
	out := *m
	out.ID = id
	out.CreatedAt = createdAt
	return &out, nil
}

func (r *PostgresRepository) GetMember(ctx context.Context, workspaceID, id string) (*Member, error) {
	query := `
		SELECT id, workspace_id, COALESCE(department_id::text, ''), name, email, role, created_at
		FROM members
		WHERE id = $1 AND workspace_id = $2
	`
	var m Member
	if err := r.pool.QueryRow(ctx, query, id, workspaceID).Scan(
		&m.ID, &m.WorkspaceID, &m.DepartmentID, &m.Name, &m.Email, &m.Role, &m.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrMemberNotFound
		}
		return nil, fmt.Errorf("members: select failed: %w", err)
	}
	return &m, nil
}

func (r *PostgresRepository) ListMembers(ctx context.Context, workspaceID string) ([]*Member, error) {
	query := `
		SELECT id, workspace_id, COALESCE(department_id::text, ''), name, email, role, created_at
		FROM members
		WHERE workspace_id = $1
		ORDER BY name
	`
	rows, err := r.pool.Query(ctx, query, workspaceID)
	if err != nil {
		return nil, fmt.Errorf("members: list failed: %w", err)
	}
	defer rows.Close()

	var out []*Member
	for rows.Next() {
		var m Member
		if err := rows.Scan(&m.ID, &m.WorkspaceID, &m.DepartmentID, &m.Name, &m.Email, &m.Role, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("members: scan failed: %w", err)
		}
		out = append(out, &m)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) DeleteMember(ctx context.Context, workspaceID, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM members WHERE id = $1 AND workspace_id = $2`, id, workspaceID)
	if err != nil {
		return fmt.Errorf("members: delete failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrMemberNotFound
	}
	return nil
}

func (r *PostgresRepository) CreateDepartment(ctx context.Context, d *Department) (*Department, error) {
	id := uuid.New().String()
	query := `
		INSERT INTO departments (id, workspace_id, name)
		VALUES ($1, $2, $3)
		RETURNING created_at
	`
	var createdAt time.Time
	if err := r.pool.QueryRow(ctx, query, id, d.WorkspaceID, d.Name).Scan(&createdAt); err != nil {
		return nil, fmt.Errorf("members: insert department failed: %w", err)
	}
	out := *d
	out.ID = id
	out.CreatedAt = createdAt
	return &out, nil
}

func (r *PostgresRepository) ListDepartments(ctx context.Context, workspaceID string) ([]*Department, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, workspace_id, name, created_at FROM departments WHERE workspace_id = $1 ORDER BY name`,
		workspaceID)
	if err != nil {
		return nil, fmt.Errorf("members: list departments failed: %w", err)
	}
	defer rows.Close()

	var out []*Department
	for rows.Next() {
		var d Department
		if err := rows.Scan(&d.ID, &d.WorkspaceID, &d.Name, &d.CreatedAt); err != nil {
			return nil, fmt.Errorf("members: scan department failed: %w", err)
		}
		out = append(out, &d)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) HasDepartments(ctx context.Context, workspaceID string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM departments WHERE workspace_id = $1)`,
		workspaceID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("members: departments check failed: %w", err)
	}
	return exists, nil
}

// InMemoryRepository is an in-memory Repository used by tests.
type InMemoryRepository struct {
	mu          sync.RWMutex
	members     map[string]*Member
	departments map[string]*Department
}

// NewInMemoryRepository creates a new in-memory repository.
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		members:     make(map[string]*Member),
		departments: make(map[string]*Department),
	}
}

func (r *InMemoryRepository) CreateMember(ctx context.Context, m *Member) (*Member, error) {
	stored := *m
	stored.ID = uuid.New().String()
	stored.CreatedAt = time.Now().UTC()

	r.mu.Lock()
	r.members[stored.ID] = &stored
	r.mu.Unlock()

	out := stored
	return &out, nil
}

func (r *InMemoryRepository) GetMember(ctx context.Context, workspaceID, id string) (*Member, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	m, ok := r.members[id]
	if !ok || m.WorkspaceID != workspaceID {
		return nil, ErrMemberNotFound
	}
	out := *m
	return &out, nil
}

func (r *InMemoryRepository) ListMembers(ctx context.Context, workspaceID string) ([]*Member, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*Member
	for _, m := range r.members {
		if m.WorkspaceID == workspaceID {
			copied := *m
			out = append(out, &copied)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *InMemoryRepository) DeleteMember(ctx context.Context, workspaceID, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.members[id]
	if !ok || m.WorkspaceID != workspaceID {
		return ErrMemberNotFound
	}
	delete(r.members, id)
	return nil
}

func (r *InMemoryRepository) CreateDepartment(ctx context.Context, d *Department) (*Department, error) {
	stored := *d
	stored.ID = uuid.New().String()
	stored.CreatedAt = time.Now().UTC()

	r.mu.Lock()
	r.departments[stored.ID] = &stored
	r.mu.Unlock()

	out := stored
	return &out, nil
}

func (r *InMemoryRepository) ListDepartments(ctx context.Context, workspaceID string) ([]*Department, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*Department
	for _, d := range r.departments {
		if d.WorkspaceID == workspaceID {
			copied := *d
			out = append(out, &copied)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *InMemoryRepository) HasDepartments(ctx context.Context, workspaceID string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, d := range r.departments {
		if d.WorkspaceID == workspaceID {
			return true, nil
		}
	}
	return false, nil
}
