package shared

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func issuedToken(t *testing.T, m *CSRFManager) string {
	t.Helper()
	rec := httptest.NewRecorder()
	token := m.EnsureToken(rec, httptest.NewRequest(http.MethodGet, "/login", nil))
	require.NotEmpty(t, token)
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, CSRFCookieName, cookies[0].Name)
	assert.Equal(t, token, cookies[0].Value)
	return token
}

func TestEnsureTokenReusesValidCookie(t *testing.T) {
	m := NewCSRFManager("secret", false)
	token := issuedToken(t, m)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: CSRFCookieName, Value: token})
	rec := httptest.NewRecorder()
	assert.Equal(t, token, m.EnsureToken(rec, req))
	assert.Empty(t, rec.Result().Cookies())
}

func TestEnsureTokenReplacesForeignCookie(t *testing.T) {
	m := NewCSRFManager("secret", false)
	foreign := issuedToken(t, NewCSRFManager("other", false))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: CSRFCookieName, Value: foreign})
	token := m.EnsureToken(httptest.NewRecorder(), req)
	assert.NotEqual(t, foreign, token)
}

func TestVerifyToken(t *testing.T) {
	m := NewCSRFManager("secret", false)
	token := issuedToken(t, m)

	form := url.Values{CSRFFormField: {token}}
	req := httptest.NewRequest(http.MethodPost, "/actions/auth/logout", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.AddCookie(&http.Cookie{Name: CSRFCookieName, Value: token})
	assert.NoError(t, m.VerifyToken(req, TokenFromRequest(req)))

	jsonReq := httptest.NewRequest(http.MethodPost, "/actions/auth/logout", strings.NewReader(`{}`))
	jsonReq.Header.Set("Content-Type", "application/json")
	jsonReq.Header.Set(CSRFHeader, token)
	jsonReq.AddCookie(&http.Cookie{Name: CSRFCookieName, Value: token})
	assert.NoError(t, m.VerifyToken(jsonReq, TokenFromRequest(jsonReq)))
}

func TestVerifyTokenFailures(t *testing.T) {
	m := NewCSRFManager("secret", false)
	token := issuedToken(t, m)

	noCookie := httptest.NewRequest(http.MethodPost, "/", nil)
	assert.ErrorIs(t, m.VerifyToken(noCookie, token), ErrCSRFTokenMissing)

	withCookie := httptest.NewRequest(http.MethodPost, "/", nil)
	withCookie.AddCookie(&http.Cookie{Name: CSRFCookieName, Value: token})
	assert.ErrorIs(t, m.VerifyToken(withCookie, ""), ErrCSRFTokenMissing)
	assert.ErrorIs(t, m.VerifyToken(withCookie, token+"x"), ErrCSRFTokenMismatch)

	forged := httptest.NewRequest(http.MethodPost, "/", nil)
	forged.AddCookie(&http.Cookie{Name: CSRFCookieName, Value: "nonce.sig"})
	assert.ErrorIs(t, m.VerifyToken(forged, "nonce.sig"), ErrCSRFTokenMismatch)
}
