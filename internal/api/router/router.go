package router

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/msinoftech/getsettime/internal/bookings"
	"github.com/msinoftech/getsettime/internal/eventtypes"
	httpmiddleware "github.com/msinoftech/getsettime/internal/http/middleware"
	"github.com/msinoftech/getsettime/internal/members"
	"github.com/msinoftech/getsettime/internal/scheduling"
	"github.com/msinoftech/getsettime/internal/settings"
	"github.com/msinoftech/getsettime/internal/workspaces"
	"github.com/msinoftech/getsettime/pkg/logging"
)

// Config holds router configuration
type Config struct {
	Logger *logging.Logger

	SchedulingHandler *scheduling.Handler
	BookingsHandler   *bookings.Handler
	EventTypesHandler *eventtypes.Handler
	MembersHandler    *members.Handler
	SettingsHandler   *settings.Handler
	WorkspacesHandler *workspaces.Handler

	// WorkspaceLookup resolves widget slugs to workspaces.
	WorkspaceLookup httpmiddleware.WorkspaceLookup

	SuperadminJWTSecret string
	CORSAllowedOrigins  []string
	MetricsHandler      http.Handler

	// Widget rate limit, requests per second per IP. Zero disables it.
	WidgetRateLimit float64
	WidgetRateBurst int
}

// New creates a new Chi router with all routes configured
func New(cfg *Config) http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))
	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(httpmiddleware.CORS(cfg.CORSAllowedOrigins))
	}
	if cfg.Logger != nil {
		r.Use(httpmiddleware.RequestLogger(cfg.Logger))
	}

	// Public endpoints
	r.Get("/health", handleHealth)
	if cfg.MetricsHandler != nil {
		r.Handle("/metrics", cfg.MetricsHandler)
	}

	// Public booking widget, keyed by workspace slug.
	if cfg.WorkspaceLookup != nil {
		r.Route("/widget/{slug}", func(widget chi.Router) {
			if cfg.WidgetRateLimit > 0 {
				widget.Use(httpmiddleware.RateLimit(cfg.WidgetRateLimit, cfg.WidgetRateBurst))
			}
			widget.Use(httpmiddleware.ResolveWorkspaceSlug(cfg.WorkspaceLookup))

			if cfg.EventTypesHandler != nil {
				widget.Get("/event-types", cfg.EventTypesHandler.ListPublic)
			}
			if cfg.SchedulingHandler != nil {
				widget.Get("/slots", cfg.SchedulingHandler.Slots)
				widget.Get("/calendar", cfg.SchedulingHandler.Calendar)
			}
			if cfg.BookingsHandler != nil {
				widget.Post("/bookings", cfg.BookingsHandler.Create)
			}
		})
	}

	// Workspace API, tenant-scoped via the X-Workspace-Id header.
	r.Route("/api", func(api chi.Router) {
		api.Use(httpmiddleware.RequireWorkspace)

		if cfg.SettingsHandler != nil {
			api.Get("/settings", cfg.SettingsHandler.Get)
			api.Put("/settings", cfg.SettingsHandler.Update)
		}
		if cfg.EventTypesHandler != nil {
			api.Route("/event-types", func(et chi.Router) {
				et.Get("/", cfg.EventTypesHandler.List)
				et.Post("/", cfg.EventTypesHandler.Create)
				et.Put("/{eventTypeID}", cfg.EventTypesHandler.Update)
				et.Delete("/{eventTypeID}", cfg.EventTypesHandler.Delete)
			})
		}
		if cfg.MembersHandler != nil {
			api.Route("/members", func(m chi.Router) {
				m.Get("/", cfg.MembersHandler.ListMembers)
				m.Post("/", cfg.MembersHandler.CreateMember)
				m.Delete("/{memberID}", cfg.MembersHandler.DeleteMember)
			})
			api.Route("/departments", func(d chi.Router) {
				d.Get("/", cfg.MembersHandler.ListDepartments)
				d.Post("/", cfg.MembersHandler.CreateDepartment)
			})
		}
		if cfg.BookingsHandler != nil {
			api.Route("/bookings", func(b chi.Router) {
				b.Get("/", cfg.BookingsHandler.List)
				b.Post("/", cfg.BookingsHandler.Create)
				b.Delete("/{bookingID}", cfg.BookingsHandler.Cancel)
			})
		}
		if cfg.SchedulingHandler != nil {
			api.Get("/slots", cfg.SchedulingHandler.Slots)
			api.Get("/calendar", cfg.SchedulingHandler.Calendar)
		}
	})

	// Platform management, superadmin JWT required.
	if cfg.WorkspacesHandler != nil {
		r.Route("/superadmin", func(admin chi.Router) {
			admin.Use(httpmiddleware.SuperadminJWT(cfg.SuperadminJWTSecret))
			admin.Route("/workspaces", func(ws chi.Router) {
				ws.Get("/", cfg.WorkspacesHandler.List)
				ws.Post("/", cfg.WorkspacesHandler.Create)
				ws.Get("/{workspaceID}", cfg.WorkspacesHandler.Get)
				ws.Put("/{workspaceID}", cfg.WorkspacesHandler.Update)
				ws.Delete("/{workspaceID}", cfg.WorkspacesHandler.Delete)
			})
		})
	}

	return r
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}
