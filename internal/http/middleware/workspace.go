package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/msinoftech/getsettime/internal/tenancy"
	"github.com/msinoftech/getsettime/internal/workspaces"
)

const workspaceHeader = "X-Workspace-Id"

// RequireWorkspace enforces the multi-tenancy header on workspace API
// requests and stores the workspace id in the request context.
func RequireWorkspace(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		workspaceID := strings.TrimSpace(r.Header.Get(workspaceHeader))
		if workspaceID == "" {
			http.Error(w, "missing X-Workspace-Id", http.StatusBadRequest)
			return
		}
		ctx := tenancy.WithWorkspaceID(r.Context(), workspaceID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// WorkspaceLookup resolves a workspace by its public slug.
// Implemented by workspaces repositories.
type WorkspaceLookup interface {
	GetBySlug(ctx context.Context, slug string) (*workspaces.Workspace, error)
}

// ResolveWorkspaceSlug resolves the {slug} route parameter on public
// widget routes to a workspace and stores its id in the request
// context. Unknown or deactivated workspaces 404 so slugs cannot be
// probed apart from real ones.
func ResolveWorkspaceSlug(lookup WorkspaceLookup) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			slug := chi.URLParam(r, "slug")
			if slug == "" {
				http.Error(w, "missing workspace slug", http.StatusNotFound)
				return
			}
			ws, err := lookup.GetBySlug(r.Context(), slug)
			if err != nil {
				if errors.Is(err, workspaces.ErrWorkspaceNotFound) {
					http.Error(w, "workspace not found", http.StatusNotFound)
					return
				}
				http.Error(w, "failed to resolve workspace", http.StatusInternalServerError)
				return
			}
			if !ws.Active {
				http.Error(w, "workspace not found", http.StatusNotFound)
				return
			}
			ctx := tenancy.WithWorkspaceID(r.Context(), ws.ID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
