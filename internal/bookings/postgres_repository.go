package bookings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/msinoftech/getsettime/internal/availability"
)

// PG abstracts the pgx querying surface so tests can substitute pgxmock.
type PG interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// PostgresRepository stores bookings in the relational database.
type PostgresRepository struct {
	db PG
}

// NewPostgresRepository initializes a repo backed by pgxpool.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	if pool == nil {
		panic("bookings: pgx pool required")
	}
	return &PostgresRepository{db: pool}
}

// NewPostgresRepositoryWithDB allows injecting mocks for tests.
func NewPostgresRepositoryWithDB(db PG) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts a new booking row.
func (r *PostgresRepository) Create(ctx context.Context, b *Booking) (*Booking, error) {
	id := b.ID
	if id == "" {
		id = uuid.New().String()
	}
	query := `
		INSERT INTO bookings (id, workspace_id, provider_id, event_type_id, customer_name, customer_email, start_at, end_at, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at
	`
	var createdAt time.Time
	if err := r.db.QueryRow(ctx, query,
		id,
		b.WorkspaceID,
		nullableID(b.ProviderID),
		b.EventTypeID,
		b.CustomerName,
		b.CustomerEmail,
		b.StartAt,
		b.EndAt,
		b.Status,
	).Scan(&createdAt); err != nil {
		return nil, fmt.Errorf("bookings: insert failed: %w", err)
	}

	out := *b
	out.ID = id
	out.CreatedAt = createdAt
	return &out, nil
}

// GetForWorkspace fetches a booking scoped to the workspace.
func (r *PostgresRepository) GetForWorkspace(ctx context.Context, workspaceID, id string) (*Booking, error) {
	query := `
		SELECT id, workspace_id, COALESCE(provider_id::text, ''), event_type_id, customer_name, customer_email, start_at, end_at, status, created_at
		FROM bookings
		WHERE id = $1 AND workspace_id = $2
	`
	var b Booking
	if err := r.db.QueryRow(ctx, query, id, workspaceID).Scan(
		&b.ID,
		&b.WorkspaceID,
		&b.ProviderID,
		&b.EventTypeID,
		&b.CustomerName,
		&b.CustomerEmail,
		&b.StartAt,
		&b.EndAt,
		&b.Status,
		&b.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrBookingNotFound
		}
		return nil, fmt.Errorf("bookings: select failed: %w", err)
	}
	return &b, nil
}

// ListForRange returns bookings starting in [from, to) ordered by start
// time. An empty providerID matches every provider.
func (r *PostgresRepository) ListForRange(ctx context.Context, workspaceID, providerID string, from, to time.Time) ([]*Booking, error) {
	query := `
		SELECT id, workspace_id, COALESCE(provider_id::text, ''), event_type_id, customer_name, customer_email, start_at, end_at, status, created_at
		FROM bookings
		WHERE workspace_id = $1
		  AND ($2 = '' OR provider_id::text = $2)
		  AND start_at >= $3 AND start_at < $4
		ORDER BY start_at
	`
	rows, err := r.db.Query(ctx, query, workspaceID, providerID, from, to)
	if err != nil {
		return nil, fmt.Errorf("bookings: list failed: %w", err)
	}
	defer rows.Close()

	var out []*Booking
	for rows.Next() {
		var b Booking
		if err := rows.Scan(
			&b.ID,
			&b.WorkspaceID,
			&b.ProviderID,
			&b.EventTypeID,
			&b.CustomerName,
			&b.CustomerEmail,
			&b.StartAt,
			&b.EndAt,
			&b.Status,
			&b.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("bookings: scan failed: %w", err)
		}
		out = append(out, &b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("bookings: rows failed: %w", err)
	}
	return out, nil
}

// UpdateStatus transitions a booking's status.
func (r *PostgresRepository) UpdateStatus(ctx context.Context, workspaceID, id, status string) (*Booking, error) {
	query := `
		UPDATE bookings SET status = $3
		WHERE id = $1 AND workspace_id = $2
		RETURNING id, workspace_id, COALESCE(provider_id::text, ''), event_type_id, customer_name, customer_email, start_at, end_at, status, created_at
	`
	var b Booking
	if err := r.db.QueryRow(ctx, query, id, workspaceID, status).Scan(
		&b.ID,
		&b.WorkspaceID,
		&b.ProviderID,
		&b.EventTypeID,
		&b.CustomerName,
		&b.CustomerEmail,
		&b.StartAt,
		&b.EndAt,
		&b.Status,
		&b.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrBookingNotFound
		}
		return nil, fmt.Errorf("bookings: update failed: %w", err)
	}
	return &b, nil
}

// ListBusy returns the slot-blocking intervals in range, with cancelled and
// emergency bookings already filtered out.
func (r *PostgresRepository) ListBusy(ctx context.Context, workspaceID, providerID string, from, to time.Time) ([]availability.BusyInterval, error) {
	rows, err := r.ListForRange(ctx, workspaceID, providerID, from, to)
	if err != nil {
		return nil, err
	}
	return busyFromBookings(rows), nil
}

func nullableID(id string) any {
	if id == "" {
		return nil
	}
	return id
}
