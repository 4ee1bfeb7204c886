package settings

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Store provides persistence for workspace settings with an explicit
// lifecycle: Load reads (falling back to defaults for new workspaces),
// Save writes, Invalidate drops the stored blob so the next Load starts
// from defaults again.
type Store struct {
	redis *redis.Client
}

// NewStore creates a settings store backed by redis.
func NewStore(redisClient *redis.Client) *Store {
	if redisClient == nil {
		panic("settings: redis client required")
	}
	return &Store{redis: redisClient}
}

func (s *Store) key(workspaceID string) string {
	return fmt.Sprintf("workspace:%s:settings", workspaceID)
}

// Load returns the workspace's settings, or the defaults when none have
// been saved yet.
func (s *Store) Load(ctx context.Context, workspaceID string) (*WorkspaceSettings, error) {
	data, err := s.redis.Get(ctx, s.key(workspaceID)).Bytes()
	if err == redis.Nil {
		return Default(workspaceID), nil
	}
	if err != nil {
		return nil, fmt.Errorf("settings: load %s: %w", workspaceID, err)
	}
	var ws WorkspaceSettings
	if err := json.Unmarshal(data, &ws); err != nil {
		return nil, fmt.Errorf("settings: decode %s: %w", workspaceID, err)
	}
	return &ws, nil
}

// Save persists the settings blob.
func (s *Store) Save(ctx context.Context, ws *WorkspaceSettings) error {
	if ws == nil || ws.WorkspaceID == "" {
		return fmt.Errorf("settings: workspace id required")
	}
	ws.UpdatedAt = time.Now().UTC()
	data, err := json.Marshal(ws)
	if err != nil {
		return fmt.Errorf("settings: encode %s: %w", ws.WorkspaceID, err)
	}
	if err := s.redis.Set(ctx, s.key(ws.WorkspaceID), data, 0).Err(); err != nil {
		return fmt.Errorf("settings: save %s: %w", ws.WorkspaceID, err)
	}
	return nil
}

// Invalidate removes the stored settings for a workspace.
func (s *Store) Invalidate(ctx context.Context, workspaceID string) error {
	if err := s.redis.Del(ctx, s.key(workspaceID)).Err(); err != nil {
		return fmt.Errorf("settings: invalidate %s: %w", workspaceID, err)
	}
	return nil
}
