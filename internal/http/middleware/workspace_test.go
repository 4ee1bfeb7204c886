package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/msinoftech/getsettime/internal/tenancy"
	"github.com/msinoftech/getsettime/internal/workspaces"
)

func TestRequireWorkspaceMissingHeader(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/bookings", nil)
	rec := httptest.NewRecorder()

	RequireWorkspace(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})).ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, rec.Code)
	}
}

func TestRequireWorkspaceSetsContext(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/bookings", nil)
	req.Header.Set("X-Workspace-Id", "ws-1")
	rec := httptest.NewRecorder()

	RequireWorkspace(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := tenancy.WorkspaceIDFromContext(r.Context())
		if !ok || id != "ws-1" {
			t.Fatalf("expected workspace id in context, got %q", id)
		}
		w.WriteHeader(http.StatusOK)
	})).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rec.Code)
	}
}

func slugRequest(slug string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/widget/"+slug+"/slots", nil)
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("slug", slug)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func TestResolveWorkspaceSlug(t *testing.T) {
	repo := workspaces.NewInMemoryRepository()
	ws, err := repo.Create(context.Background(), &workspaces.Workspace{Name: "Harbor", Slug: "harbor", Active: true})
	if err != nil {
		t.Fatalf("create workspace: %v", err)
	}

	mw := ResolveWorkspaceSlug(repo)
	rec := httptest.NewRecorder()

	mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := tenancy.WorkspaceIDFromContext(r.Context())
		if !ok || id != ws.ID {
			t.Fatalf("expected resolved workspace id %q, got %q", ws.ID, id)
		}
		w.WriteHeader(http.StatusOK)
	})).ServeHTTP(rec, slugRequest("harbor"))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rec.Code)
	}
}

func TestResolveWorkspaceSlugUnknown(t *testing.T) {
	mw := ResolveWorkspaceSlug(workspaces.NewInMemoryRepository())
	rec := httptest.NewRecorder()

	mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})).ServeHTTP(rec, slugRequest("ghost"))

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected status %d, got %d", http.StatusNotFound, rec.Code)
	}
}

func TestResolveWorkspaceSlugInactive(t *testing.T) {
	repo := workspaces.NewInMemoryRepository()
	if _, err := repo.Create(context.Background(), &workspaces.Workspace{Name: "Harbor", Slug: "harbor", Active: false}); err != nil {
		t.Fatalf("create workspace: %v", err)
	}

	mw := ResolveWorkspaceSlug(repo)
	rec := httptest.NewRecorder()

	mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})).ServeHTTP(rec, slugRequest("harbor"))

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected status %d, got %d", http.StatusNotFound, rec.Code)
	}
}
