package app

import (
	"context"
	"io/fs"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/niyo-hr/niyo-web/internal/apiclient"
	"github.com/niyo-hr/niyo-web/internal/auth"
	"github.com/niyo-hr/niyo-web/internal/dashboard"
	"github.com/niyo-hr/niyo-web/internal/employees"
	"github.com/niyo-hr/niyo-web/internal/leaves"
	"github.com/niyo-hr/niyo-web/internal/observability"
	"github.com/niyo-hr/niyo-web/internal/organization"
	"github.com/niyo-hr/niyo-web/internal/session"
	"github.com/niyo-hr/niyo-web/internal/shared"
	"github.com/niyo-hr/niyo-web/web"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger              *slog.Logger
	Config              *Config
	SessionManager      *session.Manager
	CSRFManager         *shared.CSRFManager
	AuthHandler         *auth.Handler
	EmployeesHandler    *employees.Handler
	LeavesHandler       *leaves.Handler
	OrganizationHandler *organization.Handler
	DashboardHandler    *dashboard.Handler
	Backend             *apiclient.Client
	Metrics             *observability.Metrics
}

// NewRouter constructs the chi.Router with Niyo defaults.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger:         params.Logger,
		Config:         params.Config,
		SessionManager: params.SessionManager,
		CSRFManager:    params.CSRFManager,
		Metrics:        params.Metrics,
	}) {
		r.Use(mw)
	}

	r.Use(chimw.Logger)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	if params.Backend != nil {
		r.Get("/readyz", readinessHandler(params.Backend, params.Logger))
	}

	r.Group(func(r chi.Router) {
		r.Use(RouteGate(params.SessionManager))
		params.AuthHandler.MountPages(r)
		if params.DashboardHandler != nil {
			params.DashboardHandler.MountPages(r)
		}
	})

	r.Route("/actions", func(r chi.Router) {
		r.Route("/auth", params.AuthHandler.MountRoutes)
		if params.EmployeesHandler != nil {
			r.Route("/employees", params.EmployeesHandler.MountRoutes)
		}
		if params.LeavesHandler != nil {
			r.Route("/leaves", params.LeavesHandler.MountRoutes)
		}
		if params.OrganizationHandler != nil {
			r.Route("/organization", params.OrganizationHandler.MountRoutes)
		}
	})

	if params.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", params.Metrics.Handler())
	}

	staticFS, err := fs.Sub(web.Static, "static")
	if err != nil {
		params.Logger.Error("create static sub filesystem", slog.Any("error", err))
	} else {
		fileServer := http.StripPrefix("/static/", http.FileServer(http.FS(staticFS)))
		r.Handle("/static/*", staticCacheHandler(fileServer))
	}

	return r
}

// readinessHandler reports whether the backend answers at all.
func readinessHandler(backend *apiclient.Client, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
		defer cancel()
		res, err := backend.Ping(ctx)
		if err != nil || res.Status == 0 {
			if logger != nil {
				logger.Warn("backend not ready", slog.Any("error", err))
			}
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte(`{"status":"unavailable"}`))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	}
}

// staticCacheHandler wraps a file server with Cache-Control headers.
func staticCacheHandler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "public, max-age=3600")
		next.ServeHTTP(w, r)
	})
}
