package app_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/niyo-hr/niyo-web/internal/apiclient"
	"github.com/niyo-hr/niyo-web/internal/app"
	"github.com/niyo-hr/niyo-web/internal/session"
	"github.com/niyo-hr/niyo-web/internal/shared"
	"github.com/niyo-hr/niyo-web/internal/testing/fakebackend"
	_ "github.com/niyo-hr/niyo-web/testing"
)

const (
	sessionSecret = "test-session-secret"
	csrfSecret    = "test-csrf-secret"
	loginBody     = `{"success":true,"data":{"loginDetails":{"admin_id":{"_id":"1","full_name":"Ayu","role":"admin"}},"accessToken":"A","refreshToken":"R"}}`
)

func testConfig(baseURL string) *app.Config {
	return &app.Config{
		AppEnv:              "test",
		AppRequestTimeout:   5 * time.Second,
		APIBaseURL:          baseURL,
		SessionSecret:       sessionSecret,
		SessionCodec:        "signed",
		SessionAcceptLegacy: true,
		CSRFSecret:          csrfSecret,
	}
}

func build(t *testing.T, cfg *app.Config) *app.App {
	t.Helper()
	a, err := app.Build(context.Background(), cfg, nil)
	require.NoError(t, err)
	t.Cleanup(a.Close)
	return a
}

func sessionCookie(t *testing.T, sess *session.Session) *http.Cookie {
	t.Helper()
	codec, err := session.NewSignedCodec(sessionSecret, true)
	require.NoError(t, err)
	value, err := codec.Encode(sess)
	require.NoError(t, err)
	return &http.Cookie{Name: session.CookieName, Value: value}
}

func csrfToken(t *testing.T) string {
	t.Helper()
	return shared.NewCSRFManager(csrfSecret, false).EnsureToken(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
}

func findCookie(res *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range res.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func serve(h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	res := httptest.NewRecorder()
	h.ServeHTTP(res, req)
	return res
}

func TestBuildRejectsBadConfig(t *testing.T) {
	cfg := testConfig("not a url")
	_, err := app.Build(context.Background(), cfg, nil)
	require.Error(t, err)

	cfg = testConfig("http://127.0.0.1:1")
	cfg.SessionCodec = "jwt"
	_, err = app.Build(context.Background(), cfg, nil)
	require.Error(t, err)
}

func TestGateRedirectsSignedOutVisitors(t *testing.T) {
	fb := fakebackend.New(t, http.StatusOK, `{}`)
	h := build(t, testConfig(fb.URL)).Handler

	for _, path := range []string{"/", "/employee", "/leaves/apply"} {
		res := serve(h, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusSeeOther, res.Code, path)
		assert.Equal(t, "/login", res.Header().Get("Location"), path)
	}

	res := serve(h, httptest.NewRequest(http.MethodGet, "/login", nil))
	assert.Equal(t, http.StatusOK, res.Code)
	assert.Empty(t, fb.Calls())
}

func TestGateSendsSignedInUsersHome(t *testing.T) {
	fb := fakebackend.New(t, http.StatusOK, `{}`)
	h := build(t, testConfig(fb.URL)).Handler

	req := httptest.NewRequest(http.MethodGet, "/register?next=/leaves", nil)
	req.AddCookie(sessionCookie(t, &session.Session{UserID: "1", Role: session.RoleAdmin, AccessToken: "A"}))
	res := serve(h, req)
	assert.Equal(t, http.StatusSeeOther, res.Code)
	assert.Equal(t, "/", res.Header().Get("Location"))
}

func TestGateClearsCorruptCookie(t *testing.T) {
	fb := fakebackend.New(t, http.StatusOK, `{}`)
	h := build(t, testConfig(fb.URL)).Handler

	req := httptest.NewRequest(http.MethodGet, "/employee", nil)
	req.AddCookie(&http.Cookie{Name: session.CookieName, Value: "garbage"})
	res := serve(h, req)

	assert.Equal(t, http.StatusSeeOther, res.Code)
	assert.Equal(t, "/login", res.Header().Get("Location"))
	cleared := findCookie(res, session.CookieName)
	require.NotNil(t, cleared)
	assert.Negative(t, cleared.MaxAge)
}

func TestActionsRequireCSRFToken(t *testing.T) {
	fb := fakebackend.New(t, http.StatusOK, loginBody)
	h := build(t, testConfig(fb.URL)).Handler

	req := httptest.NewRequest(http.MethodPost, "/actions/auth/login", strings.NewReader(`{"email":"a@b.co","password":"Passw0rdX"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	res := serve(h, req)
	assert.Equal(t, http.StatusForbidden, res.Code)
	assert.JSONEq(t, `{"ok":false,"error":"Invalid CSRF token"}`, res.Body.String())
	assert.Empty(t, fb.Calls())
}

func TestLoginThenHome(t *testing.T) {
	fb := fakebackend.New(t, http.StatusOK, `{"success":true,"data":{}}`)
	fb.Route(apiclient.PathLogin, http.StatusOK, loginBody)
	h := build(t, testConfig(fb.URL)).Handler

	token := csrfToken(t)
	req := httptest.NewRequest(http.MethodPost, "/actions/auth/login", strings.NewReader(`{"email":"a@b.co","password":"Passw0rdX"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(shared.CSRFHeader, token)
	req.AddCookie(&http.Cookie{Name: shared.CSRFCookieName, Value: token})
	res := serve(h, req)
	require.Equal(t, http.StatusOK, res.Code, res.Body.String())

	sessCookie := findCookie(res, session.CookieName)
	require.NotNil(t, sessCookie)
	assert.True(t, sessCookie.HttpOnly)
	assert.Equal(t, int((7 * 24 * time.Hour).Seconds()), sessCookie.MaxAge)

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(sessCookie)
	res = serve(h, req)
	require.Equal(t, http.StatusOK, res.Code)
	assert.Contains(t, res.Body.String(), "Welcome, Ayu")

	last := fb.Last(t)
	assert.Equal(t, "A", last.Header.Get(apiclient.HeaderAccessToken))
	assert.Equal(t, "R", last.Header.Get(apiclient.HeaderRefreshToken))
}

func TestLogoutRevokesCookie(t *testing.T) {
	mr := miniredis.RunT(t)
	fb := fakebackend.New(t, http.StatusOK, `{"success":true,"data":{}}`)
	cfg := testConfig(fb.URL)
	cfg.RedisAddr = mr.Addr()
	h := build(t, cfg).Handler

	cookie := sessionCookie(t, &session.Session{UserID: "1", Role: session.RoleAdmin, AccessToken: "A"})
	token := csrfToken(t)
	req := httptest.NewRequest(http.MethodPost, "/actions/auth/logout", nil)
	req.Header.Set(shared.CSRFHeader, token)
	req.AddCookie(&http.Cookie{Name: shared.CSRFCookieName, Value: token})
	req.AddCookie(cookie)
	res := serve(h, req)
	assert.Equal(t, http.StatusSeeOther, res.Code)
	assert.Len(t, mr.Keys(), 1)

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookie)
	res = serve(h, req)
	assert.Equal(t, http.StatusSeeOther, res.Code)
	assert.Equal(t, "/login", res.Header().Get("Location"))
}

func TestUnreachableRedisOutsideProduction(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	addr := mr.Addr()
	mr.Close()

	fb := fakebackend.New(t, http.StatusOK, `{}`)
	cfg := testConfig(fb.URL)
	cfg.RedisAddr = addr
	build(t, cfg)

	cfg.AppEnv = "production"
	_, err = app.Build(context.Background(), cfg, nil)
	assert.Error(t, err)
}

func TestOperationalEndpoints(t *testing.T) {
	fb := fakebackend.New(t, http.StatusNotFound, `{}`)
	h := build(t, testConfig(fb.URL)).Handler

	res := serve(h, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.JSONEq(t, `{"status":"ok"}`, res.Body.String())

	res = serve(h, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	assert.Equal(t, http.StatusOK, res.Code)

	res = serve(h, httptest.NewRequest(http.MethodGet, "/static/css/app.css", nil))
	assert.Equal(t, http.StatusOK, res.Code)
	assert.Equal(t, "public, max-age=3600", res.Header().Get("Cache-Control"))
	assert.Equal(t, "nosniff", res.Header().Get("X-Content-Type-Options"))
	assert.True(t, strings.HasPrefix(res.Header().Get("Content-Type"), "text/css"))

	res = serve(h, httptest.NewRequest(http.MethodGet, "/static/js/actions.js", nil))
	assert.Equal(t, http.StatusOK, res.Code)
	assert.True(t, strings.HasPrefix(res.Header().Get("Content-Type"), "text/javascript"))

	res = serve(h, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, res.Code)
	assert.Contains(t, res.Body.String(), "niyo_http_requests_total")
}

func TestReadinessWithoutBackend(t *testing.T) {
	fb := fakebackend.New(t, http.StatusOK, `{}`)
	url := fb.URL
	fb.Close()
	h := build(t, testConfig(url)).Handler

	res := serve(h, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	assert.Equal(t, http.StatusServiceUnavailable, res.Code)
}
