package settings

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/msinoftech/getsettime/internal/availability"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewStore(client)
}

func TestLoadReturnsDefaultsForNewWorkspace(t *testing.T) {
	store := newTestStore(t)

	ws, err := store.Load(context.Background(), "ws-new")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if ws.WorkspaceID != "ws-new" {
		t.Errorf("expected workspace id ws-new, got %s", ws.WorkspaceID)
	}
	mon := ws.Availability.Timesheet["Mon"]
	if !mon.Enabled || mon.StartTime != "09:00" || mon.EndTime != "17:00" {
		t.Errorf("unexpected default Monday: %+v", mon)
	}
	if ws.Availability.Timesheet["Sat"].Enabled {
		t.Error("expected Saturday disabled by default")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	ws := Default("ws-1")
	ws.Availability.Individual["2026-10-12-9"] = false
	ws.Availability.Providers = map[string]ProviderOverride{
		"member-1": {Timesheet: availability.Timesheet{"Mon": {Enabled: false}}},
	}

	if err := store.Save(ctx, ws); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}
	if ws.UpdatedAt.IsZero() {
		t.Error("Save should stamp UpdatedAt")
	}

	got, err := store.Load(ctx, "ws-1")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if v, ok := got.Availability.Individual["2026-10-12-9"]; !ok || v {
		t.Error("individual override lost in round trip")
	}
	if got.Availability.Providers["member-1"].Timesheet["Mon"].Enabled {
		t.Error("provider override lost in round trip")
	}
}

func TestInvalidateRestoresDefaults(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	ws := Default("ws-2")
	ws.Availability.Timesheet["Mon"] = availability.DaySchedule{Enabled: false}
	if err := store.Save(ctx, ws); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}

	if err := store.Invalidate(ctx, "ws-2"); err != nil {
		t.Fatalf("Invalidate returned error: %v", err)
	}

	got, err := store.Load(ctx, "ws-2")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !got.Availability.Timesheet["Mon"].Enabled {
		t.Error("expected defaults after invalidation")
	}
}

func TestSaveRequiresWorkspaceID(t *testing.T) {
	store := newTestStore(t)
	if err := store.Save(context.Background(), &WorkspaceSettings{}); err == nil {
		t.Error("expected error saving settings without workspace id")
	}
}
