package session

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"
)

// Store is the per-request handle on the current session.
//
// Get never fails: an absent, corrupt or revoked artifact reads as nil.
// Set either persists the whole session or nothing. Delete is idempotent.
// Raw exposes the undecoded cookie value for legacy token resolution only.
type Store interface {
	Get(ctx context.Context) *Session
	Set(ctx context.Context, sess *Session, maxAge time.Duration) error
	Delete(ctx context.Context) error
	Raw(ctx context.Context) (string, bool)
}

// ManagerConfig configures cookie based session stores.
type ManagerConfig struct {
	Codec       Codec
	CookieName  string
	Secure      bool
	Revocations Revocations
	Logger      *slog.Logger
}

// Manager hands out cookie stores bound to a single request.
type Manager struct {
	codec       Codec
	cookieName  string
	secure      bool
	revocations Revocations
	logger      *slog.Logger
}

// NewManager constructs a Manager.
func NewManager(cfg ManagerConfig) *Manager {
	codec := cfg.Codec
	if codec == nil {
		codec = LegacyCodec{}
	}
	name := cfg.CookieName
	if name == "" {
		name = CookieName
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{
		codec:       codec,
		cookieName:  name,
		secure:      cfg.Secure,
		revocations: cfg.Revocations,
		logger:      logger,
	}
}

// CookieName returns the cookie identifier used for sessions.
func (m *Manager) CookieName() string {
	return m.cookieName
}

// Codec exposes the configured codec.
func (m *Manager) Codec() Codec {
	return m.codec
}

// Store binds a cookie store to the request/response pair.
func (m *Manager) Store(w http.ResponseWriter, r *http.Request) *CookieStore {
	return &CookieStore{manager: m, w: w, r: r}
}

// Present reports whether the request carries a session cookie at all,
// without decoding it.
func (m *Manager) Present(r *http.Request) bool {
	c, err := r.Cookie(m.cookieName)
	return err == nil && c.Value != ""
}

// CookieStore reads the session from the request cookie and writes changes
// as Set-Cookie headers. Writes are visible to later reads in the same request.
type CookieStore struct {
	manager *Manager
	w       http.ResponseWriter
	r       *http.Request

	mu         sync.Mutex
	overridden bool
	raw        string
	revoked    *bool
}

// Get decodes the current session or returns nil.
func (s *CookieStore) Get(ctx context.Context) *Session {
	raw, ok := s.Raw(ctx)
	if !ok {
		return nil
	}
	sess, err := s.manager.codec.Decode(raw)
	if err != nil {
		s.manager.logger.Debug("discard session cookie", slog.Any("error", err))
		return nil
	}
	return sess
}

// Set encodes the session and writes the cookie.
func (s *CookieStore) Set(ctx context.Context, sess *Session, maxAge time.Duration) error {
	if err := sess.Validate(); err != nil {
		return err
	}
	artifact, err := s.manager.codec.Encode(sess)
	if err != nil {
		return err
	}
	if maxAge <= 0 {
		maxAge = DefaultMaxAge
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	http.SetCookie(s.w, s.cookie(artifact, int(maxAge/time.Second)))
	s.overridden = true
	s.raw = artifact
	notRevoked := false
	s.revoked = &notRevoked
	return nil
}

// Delete expires the cookie and revokes the artifact when revocation is enabled.
// Once the store is cleared, further calls in the same request do nothing.
//
// Revoked artifacts are remembered for ExtendedMaxAge: the artifact does not
// record when it was issued, so that is the longest it can still be presented.
func (s *CookieStore) Delete(ctx context.Context) error {
	s.mu.Lock()
	if s.overridden && s.raw == "" {
		s.mu.Unlock()
		return nil
	}
	raw, ok := s.rawLocked()
	s.overridden = true
	s.raw = ""
	s.revoked = nil
	http.SetCookie(s.w, s.cookie("", -1))
	s.mu.Unlock()

	if ok && s.manager.revocations != nil {
		if err := s.manager.revocations.Revoke(ctx, raw, ExtendedMaxAge); err != nil {
			s.manager.logger.Warn("revoke session artifact", slog.Any("error", err))
		}
	}
	return nil
}

// Codec returns the codec artifacts in this store are written with.
func (s *CookieStore) Codec() Codec {
	return s.manager.codec
}

// cookie builds the session cookie. It is written to s.w only while s.mu is
// held, since widgets of one request share the response headers.
func (s *CookieStore) cookie(value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     s.manager.cookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   s.manager.secure,
		SameSite: http.SameSiteLaxMode,
	}
}

// Raw returns the cookie value unless it is absent or revoked.
func (s *CookieStore) Raw(ctx context.Context) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	raw, ok := s.rawLocked()
	if !ok {
		return "", false
	}
	if s.revoked == nil {
		revoked := false
		if s.manager.revocations != nil {
			var err error
			revoked, err = s.manager.revocations.IsRevoked(ctx, raw)
			if err != nil {
				// Fail open: signature checks still apply when Redis is unavailable.
				s.manager.logger.Warn("check session revocation", slog.Any("error", err))
				revoked = false
			}
		}
		s.revoked = &revoked
	}
	if *s.revoked {
		return "", false
	}
	return raw, true
}

func (s *CookieStore) rawLocked() (string, bool) {
	if s.overridden {
		return s.raw, s.raw != ""
	}
	c, err := s.r.Cookie(s.manager.cookieName)
	if err != nil || c.Value == "" {
		return "", false
	}
	value := c.Value
	if strings.Contains(value, "%") {
		if unescaped, err := url.PathUnescape(value); err == nil {
			value = unescaped
		}
	}
	return value, true
}

// MemoryStore keeps the artifact in memory. It is used by tests and the CLI.
type MemoryStore struct {
	codec Codec

	mu         sync.Mutex
	raw        string
	lastMaxAge time.Duration
	deletes    int
}

// NewMemoryStore returns an empty MemoryStore. A nil codec means LegacyCodec.
func NewMemoryStore(codec Codec) *MemoryStore {
	if codec == nil {
		codec = LegacyCodec{}
	}
	return &MemoryStore{codec: codec}
}

// SetRaw installs an artifact verbatim, as a browser would send it.
func (m *MemoryStore) SetRaw(raw string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.raw = raw
}

// Get decodes the stored artifact.
func (m *MemoryStore) Get(ctx context.Context) *Session {
	raw, ok := m.Raw(ctx)
	if !ok {
		return nil
	}
	sess, err := m.codec.Decode(raw)
	if err != nil {
		return nil
	}
	return sess
}

// Set encodes and stores the session.
func (m *MemoryStore) Set(ctx context.Context, sess *Session, maxAge time.Duration) error {
	artifact, err := m.codec.Encode(sess)
	if err != nil {
		return err
	}
	if maxAge <= 0 {
		maxAge = DefaultMaxAge
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.raw = artifact
	m.lastMaxAge = maxAge
	return nil
}

// Delete clears the artifact.
func (m *MemoryStore) Delete(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.raw = ""
	m.deletes++
	return nil
}

// Raw returns the stored artifact.
func (m *MemoryStore) Raw(ctx context.Context) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.raw, m.raw != ""
}

// Codec returns the codec artifacts in this store are written with.
func (m *MemoryStore) Codec() Codec {
	return m.codec
}

// LastMaxAge returns the lifetime passed to the most recent Set.
func (m *MemoryStore) LastMaxAge() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastMaxAge
}

// Deletes returns how many times Delete was called.
func (m *MemoryStore) Deletes() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.deletes
}

var (
	_ Store = (*CookieStore)(nil)
	_ Store = (*MemoryStore)(nil)
)
