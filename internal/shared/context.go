package shared

import (
	"context"

	"github.com/niyo-hr/niyo-web/internal/session"
)

type storeContextKey struct{}

type sessionContextKey struct{}

// ContextWithStore stores the per-request session store in context.
func ContextWithStore(ctx context.Context, store session.Store) context.Context {
	return context.WithValue(ctx, storeContextKey{}, store)
}

// StoreFromContext extracts the session store from context.
func StoreFromContext(ctx context.Context) session.Store {
	store, _ := ctx.Value(storeContextKey{}).(session.Store)
	return store
}

// ContextWithSession stores the decoded session in context.
func ContextWithSession(ctx context.Context, sess *session.Session) context.Context {
	return context.WithValue(ctx, sessionContextKey{}, sess)
}

// SessionFromContext returns the session decoded for this request. It falls
// back to the store so writes made earlier in the request are visible.
func SessionFromContext(ctx context.Context) *session.Session {
	if store := StoreFromContext(ctx); store != nil {
		return store.Get(ctx)
	}
	sess, _ := ctx.Value(sessionContextKey{}).(*session.Session)
	return sess
}
