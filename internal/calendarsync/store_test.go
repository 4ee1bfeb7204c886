package calendarsync

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/msinoftech/getsettime/internal/availability"
	"github.com/msinoftech/getsettime/pkg/logging"
)

func newTestStore(t *testing.T) (*Store, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return NewStore(client, 15*time.Minute, logging.Default()), mr
}

func TestPutAndListForDay(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()
	date := time.Date(2026, 10, 12, 0, 0, 0, 0, time.UTC)

	busy := []availability.BusyInterval{
		{
			StartAt: time.Date(2026, 10, 12, 14, 0, 0, 0, time.UTC),
			EndAt:   time.Date(2026, 10, 12, 15, 0, 0, 0, time.UTC),
			Status:  "busy",
		},
	}
	require.NoError(t, store.Put(ctx, "ws-1", "prov-1", date, busy))

	got, err := store.ListForDay(ctx, "ws-1", "prov-1", date)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.True(t, got[0].StartAt.Equal(busy[0].StartAt))
	assert.True(t, got[0].EndAt.Equal(busy[0].EndAt))
}

func TestListForDayMissReturnsEmpty(t *testing.T) {
	store, _ := newTestStore(t)

	got, err := store.ListForDay(context.Background(), "ws-1", "prov-1", time.Now())
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestEntriesExpire(t *testing.T) {
	store, mr := newTestStore(t)
	ctx := context.Background()
	date := time.Date(2026, 10, 12, 0, 0, 0, 0, time.UTC)

	busy := []availability.BusyInterval{{
		StartAt: time.Date(2026, 10, 12, 9, 0, 0, 0, time.UTC),
		EndAt:   time.Date(2026, 10, 12, 10, 0, 0, 0, time.UTC),
	}}
	require.NoError(t, store.Put(ctx, "ws-1", "prov-1", date, busy))

	mr.FastForward(16 * time.Minute)

	got, err := store.ListForDay(ctx, "ws-1", "prov-1", date)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestEntriesScopedByProviderAndDate(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()
	monday := time.Date(2026, 10, 12, 0, 0, 0, 0, time.UTC)
	tuesday := monday.AddDate(0, 0, 1)

	busy := []availability.BusyInterval{{
		StartAt: time.Date(2026, 10, 12, 9, 0, 0, 0, time.UTC),
		EndAt:   time.Date(2026, 10, 12, 10, 0, 0, 0, time.UTC),
	}}
	require.NoError(t, store.Put(ctx, "ws-1", "prov-1", monday, busy))

	got, err := store.ListForDay(ctx, "ws-1", "prov-2", monday)
	require.NoError(t, err)
	assert.Empty(t, got)

	got, err = store.ListForDay(ctx, "ws-1", "prov-1", tuesday)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestInvalidate(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()
	date := time.Date(2026, 10, 12, 0, 0, 0, 0, time.UTC)

	busy := []availability.BusyInterval{{
		StartAt: time.Date(2026, 10, 12, 9, 0, 0, 0, time.UTC),
		EndAt:   time.Date(2026, 10, 12, 10, 0, 0, 0, time.UTC),
	}}
	require.NoError(t, store.Put(ctx, "ws-1", "prov-1", date, busy))
	require.NoError(t, store.Invalidate(ctx, "ws-1", "prov-1", date))

	got, err := store.ListForDay(ctx, "ws-1", "prov-1", date)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestRequiresWorkspaceID(t *testing.T) {
	store, _ := newTestStore(t)

	err := store.Put(context.Background(), "", "prov-1", time.Now(), nil)
	assert.ErrorIs(t, err, ErrMissingWorkspaceID)

	_, err = store.ListForDay(context.Background(), "", "prov-1", time.Now())
	assert.ErrorIs(t, err, ErrMissingWorkspaceID)
}
