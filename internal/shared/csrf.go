package shared

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"net/http"
	"strings"

	"github.com/google/uuid"
)

const (
	// CSRFCookieName is the cookie carrying the signed token.
	CSRFCookieName = "csrf_token"
	// CSRFFormField is the form field name carrying the CSRF token.
	CSRFFormField = "csrf_token"
	// CSRFHeader is the header name carrying the CSRF token for fetch calls.
	CSRFHeader = "X-CSRF-Token"
)

// CSRFManager issues and verifies double-submit CSRF tokens. The token lives
// in its own cookie and every unsafe request must echo it back.
type CSRFManager struct {
	secret []byte
	secure bool
}

// NewCSRFManager returns a CSRFManager using the provided secret key.
func NewCSRFManager(secret string, secure bool) *CSRFManager {
	return &CSRFManager{secret: []byte(secret), secure: secure}
}

// EnsureToken returns the request's token, issuing a new cookie when the
// request has none or carries one that was not signed by this manager.
func (m *CSRFManager) EnsureToken(w http.ResponseWriter, r *http.Request) string {
	if c, err := r.Cookie(CSRFCookieName); err == nil && m.valid(c.Value) {
		return c.Value
	}
	token := m.generateToken()
	http.SetCookie(w, &http.Cookie{
		Name:     CSRFCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: false,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
	// Later reads in this request see the new token.
	r.AddCookie(&http.Cookie{Name: CSRFCookieName, Value: token})
	return token
}

// VerifyToken compares the submitted token with the cookie.
func (m *CSRFManager) VerifyToken(r *http.Request, token string) error {
	c, err := r.Cookie(CSRFCookieName)
	if err != nil || c.Value == "" || token == "" {
		return ErrCSRFTokenMissing
	}
	if !m.valid(c.Value) || !hmac.Equal([]byte(c.Value), []byte(token)) {
		return ErrCSRFTokenMismatch
	}
	return nil
}

// TokenFromRequest reads the submitted token from the header or form.
func TokenFromRequest(r *http.Request) string {
	if token := r.Header.Get(CSRFHeader); token != "" {
		return token
	}
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		return ""
	}
	return r.PostFormValue(CSRFFormField)
}

func (m *CSRFManager) generateToken() string {
	nonce := uuid.NewString()
	return nonce + "." + m.sign(nonce)
}

func (m *CSRFManager) valid(token string) bool {
	nonce, sig, ok := strings.Cut(token, ".")
	if !ok || nonce == "" {
		return false
	}
	return hmac.Equal([]byte(sig), []byte(m.sign(nonce)))
}

func (m *CSRFManager) sign(nonce string) string {
	mac := hmac.New(sha256.New, m.secret)
	_, _ = mac.Write([]byte(nonce))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}
