// Package calendarsync caches busy intervals pulled from external
// calendars (Google, Outlook) so slot resolution can exclude them
// without calling the provider APIs on every request. Entries expire
// on a TTL so a stale sync never blocks slots indefinitely.
package calendarsync

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/msinoftech/getsettime/internal/availability"
	"github.com/msinoftech/getsettime/pkg/logging"
)

// ErrMissingWorkspaceID is returned when a cache operation has no workspace scope.
var ErrMissingWorkspaceID = errors.New("calendarsync: workspace id is required")

// Store caches externally synced busy intervals in Redis, keyed by
// workspace, provider, and local date.
type Store struct {
	client *redis.Client
	ttl    time.Duration
	logger *logging.Logger
}

// NewStore creates a calendar sync store. TTL bounds how long a sync
// result is trusted before it silently expires.
func NewStore(client *redis.Client, ttl time.Duration, logger *logging.Logger) *Store {
	if client == nil {
		panic("calendarsync: redis client is required")
	}
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Store{client: client, ttl: ttl, logger: logger}
}

func (s *Store) key(workspaceID, providerID, date string) string {
	if providerID == "" {
		providerID = "all"
	}
	return fmt.Sprintf("workspace:%s:extbusy:%s:%s", workspaceID, providerID, date)
}

// Put replaces the cached busy intervals for a provider on a local date.
func (s *Store) Put(ctx context.Context, workspaceID, providerID string, date time.Time, busy []availability.BusyInterval) error {
	if workspaceID == "" {
		return ErrMissingWorkspaceID
	}
	day := availability.FormatLocalDate(date)
	data, err := json.Marshal(busy)
	if err != nil {
		return fmt.Errorf("calendarsync: marshal busy intervals: %w", err)
	}
	if err := s.client.Set(ctx, s.key(workspaceID, providerID, day), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("calendarsync: store busy intervals: %w", err)
	}
	s.logger.Debug("external busy intervals cached",
		"workspace_id", workspaceID, "provider_id", providerID, "date", day, "count", len(busy))
	return nil
}

// ListForDay returns the cached busy intervals for a provider on a
// local date. A cache miss is not an error; it returns an empty list
// so slot resolution degrades to internal bookings only.
func (s *Store) ListForDay(ctx context.Context, workspaceID, providerID string, date time.Time) ([]availability.BusyInterval, error) {
	if workspaceID == "" {
		return nil, ErrMissingWorkspaceID
	}
	day := availability.FormatLocalDate(date)
	data, err := s.client.Get(ctx, s.key(workspaceID, providerID, day)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("calendarsync: load busy intervals: %w", err)
	}
	var busy []availability.BusyInterval
	if err := json.Unmarshal(data, &busy); err != nil {
		return nil, fmt.Errorf("calendarsync: unmarshal busy intervals: %w", err)
	}
	return busy, nil
}

// Invalidate drops the cached intervals for a provider on a local date.
func (s *Store) Invalidate(ctx context.Context, workspaceID, providerID string, date time.Time) error {
	if workspaceID == "" {
		return ErrMissingWorkspaceID
	}
	day := availability.FormatLocalDate(date)
	if err := s.client.Del(ctx, s.key(workspaceID, providerID, day)).Err(); err != nil {
		return fmt.Errorf("calendarsync: invalidate busy intervals: %w", err)
	}
	return nil
}
