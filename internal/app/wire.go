package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/redis/go-redis/v9"

	"github.com/niyo-hr/niyo-web/internal/apiclient"
	"github.com/niyo-hr/niyo-web/internal/auth"
	"github.com/niyo-hr/niyo-web/internal/dashboard"
	"github.com/niyo-hr/niyo-web/internal/employees"
	"github.com/niyo-hr/niyo-web/internal/leaves"
	"github.com/niyo-hr/niyo-web/internal/observability"
	"github.com/niyo-hr/niyo-web/internal/organization"
	"github.com/niyo-hr/niyo-web/internal/platform/cache"
	"github.com/niyo-hr/niyo-web/internal/session"
	"github.com/niyo-hr/niyo-web/internal/shared"
	"github.com/niyo-hr/niyo-web/internal/view"
)

// App is the assembled web tier.
type App struct {
	Config  *Config
	Logger  *slog.Logger
	Handler http.Handler
	Backend *apiclient.Client
	Metrics *observability.Metrics

	redis *redis.Client
}

// Build wires every component from cfg. A configured Redis that cannot be
// reached is fatal in production and only disables revocation elsewhere.
func Build(ctx context.Context, cfg *Config, logger *slog.Logger) (*App, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.UsedDevSecret {
		logger.Warn("SESSION_SECRET not set, using the development secret")
	}

	metrics := observability.NewMetrics()
	backend, err := apiclient.New(apiclient.Config{
		BaseURL: cfg.APIBaseURL,
		Timeout: cfg.APITimeout,
		Logger:  logger,
		Metrics: metrics,
	})
	if err != nil {
		return nil, err
	}

	codec, err := session.NewCodec(cfg.SessionCodec, cfg.SessionSecret, cfg.SessionAcceptLegacy)
	if err != nil {
		return nil, err
	}

	a := &App{Config: cfg, Logger: logger, Backend: backend, Metrics: metrics}
	var revocations session.Revocations
	if cfg.RedisAddr != "" {
		client, err := cache.New(ctx, cfg.RedisAddr)
		switch {
		case err == nil:
			a.redis = client
			revocations = session.NewRedisRevocations(client)
		case cfg.IsProduction():
			return nil, fmt.Errorf("connect redis: %w", err)
		default:
			logger.Warn("redis unavailable, session revocation disabled", slog.Any("error", err))
		}
	}

	sessionManager := session.NewManager(session.ManagerConfig{
		Codec:       codec,
		Secure:      cfg.IsProduction(),
		Revocations: revocations,
		Logger:      logger,
	})
	csrfManager := shared.NewCSRFManager(cfg.CSRFSecret, cfg.IsProduction())

	templates, err := view.NewEngine()
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("parse templates: %w", err)
	}

	authService := auth.NewService(backend, logger)
	leavesService := leaves.NewService(backend, logger)

	a.Handler = NewRouter(RouterParams{
		Logger:              logger,
		Config:              cfg,
		SessionManager:      sessionManager,
		CSRFManager:         csrfManager,
		AuthHandler:         auth.NewHandler(logger, authService, templates, csrfManager),
		EmployeesHandler:    employees.NewHandler(logger, employees.NewService(backend, logger)),
		LeavesHandler:       leaves.NewHandler(logger, leavesService),
		OrganizationHandler: organization.NewHandler(logger, organization.NewService(backend, logger)),
		DashboardHandler: dashboard.NewHandler(logger,
			dashboard.NewLoader(authService, leavesService, logger), templates, csrfManager),
		Backend: backend,
		Metrics: metrics,
	})
	return a, nil
}

// Close releases the Redis connection when one was opened.
func (a *App) Close() {
	if a == nil || a.redis == nil {
		return
	}
	if err := a.redis.Close(); err != nil {
		a.Logger.Warn("redis close", slog.Any("error", err))
	}
}
