package apiclient

import (
	"context"
	"log/slog"

	"github.com/niyo-hr/niyo-web/internal/observability"
	"github.com/niyo-hr/niyo-web/internal/session"
)

// DefaultLoginPath is where rejected callers are sent.
const DefaultLoginPath = "/login"

// Interceptor reacts to a backend authentication rejection.
type Interceptor interface {
	Intercept(ctx context.Context, store session.Store, status int) error
}

// SessionReset deletes the caller's session and redirects to the login surface.
type SessionReset struct {
	LoginPath string
	Metrics   *observability.Metrics
	Logger    *slog.Logger
}

// Intercept deletes the session and always returns a *RedirectError.
// Deleting an absent session is a no-op.
func (s SessionReset) Intercept(ctx context.Context, store session.Store, status int) error {
	if store != nil {
		if err := store.Delete(ctx); err != nil && s.Logger != nil {
			s.Logger.Warn("delete session after auth failure", slog.Any("error", err))
		}
	}
	s.Metrics.ObserveAuthFailure(status)
	if s.Logger != nil {
		s.Logger.Info("backend rejected session", slog.Int("status", status))
	}
	location := s.LoginPath
	if location == "" {
		location = DefaultLoginPath
	}
	return &RedirectError{Location: location, Status: status}
}
