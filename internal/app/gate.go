package app

import (
	"net/http"
	"strings"

	"github.com/niyo-hr/niyo-web/internal/session"
	"github.com/niyo-hr/niyo-web/internal/shared"
)

const (
	loginPath = "/login"
	homePath  = "/"
)

// RouteGate guards the page routes. Signed-out visitors are sent to the
// login page and signed-in users are sent away from the login and register
// pages. A cookie that does not decode counts as signed out and is cleared.
func RouteGate(manager *session.Manager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			store := shared.StoreFromContext(ctx)
			var sess *session.Session
			if store != nil {
				sess = store.Get(ctx)
				if sess == nil && manager != nil && manager.Present(r) {
					_ = store.Delete(ctx)
				}
			}

			if isAuthPage(r.URL.Path) {
				if sess != nil {
					http.Redirect(w, r, homePath, http.StatusSeeOther)
					return
				}
				next.ServeHTTP(w, r)
				return
			}
			if sess == nil {
				http.Redirect(w, r, loginPath, http.StatusSeeOther)
				return
			}
			next.ServeHTTP(w, r.WithContext(shared.ContextWithSession(ctx, sess)))
		})
	}
}

func isAuthPage(path string) bool {
	path = strings.TrimSuffix(path, "/")
	return path == loginPath || path == "/register"
}
