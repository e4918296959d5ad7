// Package session owns the signed session cookie that carries the caller's
// identity and backend tokens between requests.
package session

import (
	"errors"
	"time"
)

const (
	// CookieName is the cookie carrying the encoded session artifact.
	CookieName = "session"
	// DefaultMaxAge is the lifetime of a regular login.
	DefaultMaxAge = 7 * 24 * time.Hour
	// ExtendedMaxAge is used for "remember me" logins and fresh registrations.
	ExtendedMaxAge = 30 * 24 * time.Hour
)

// Roles known to the web tier. The backend may send others.
const (
	RoleAdmin    = "admin"
	RoleEmployee = "employee"
)

var (
	// ErrInvalidSession is returned when a session lacks a user id.
	ErrInvalidSession = errors.New("session: user id required")
	// ErrMalformedArtifact is returned when an artifact cannot be decoded.
	ErrMalformedArtifact = errors.New("session: malformed artifact")
	// ErrSignatureMismatch is returned when a signed artifact was tampered with.
	ErrSignatureMismatch = errors.New("session: signature mismatch")
)

// Session is the decoded identity and token set of one logged-in principal.
type Session struct {
	UserID         string `json:"userId"`
	Email          string `json:"email"`
	Role           string `json:"role,omitempty"`
	Name           string `json:"name,omitempty"`
	OrganizationID string `json:"organizationId,omitempty"`
	AccessToken    string `json:"accessToken,omitempty"`
	RefreshToken   string `json:"refreshToken,omitempty"`
}

// Validate reports whether the session may be persisted.
func (s *Session) Validate() error {
	if s == nil || s.UserID == "" {
		return ErrInvalidSession
	}
	return nil
}

// IsAdmin reports whether the principal carries the admin role.
func (s *Session) IsAdmin() bool {
	return s != nil && s.Role == RoleAdmin
}

// HasToken reports whether any backend token is present.
func (s *Session) HasToken() bool {
	return s != nil && (s.AccessToken != "" || s.RefreshToken != "")
}
