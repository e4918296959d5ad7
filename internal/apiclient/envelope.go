package apiclient

import (
	"context"
	"net/http"
	"strings"

	"github.com/niyo-hr/niyo-web/internal/session"
)

// Header names understood by the backend.
const (
	HeaderAccessToken  = "access-token"
	HeaderRefreshToken = "refresh-token"
)

// Request describes one backend call.
type Request struct {
	Method  string
	Path    string
	Headers map[string]string
	Body    any
	// Auth attaches the caller's tokens. A call without a resolvable access
	// token is answered locally with 401.
	Auth bool
}

// RequestEnvelope is a Request resolved against the base URL and the session.
type RequestEnvelope struct {
	Method          string
	URL             string
	Header          http.Header
	Body            any
	Unauthenticated bool
}

// JoinURL joins base and path with exactly one "/" between them.
// Any query string on path is kept as is.
func JoinURL(base, path string) string {
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(path, "/")
}

// Envelope resolves req without sending it.
func (c *Client) Envelope(ctx context.Context, store session.Store, req Request) RequestEnvelope {
	method := req.Method
	if method == "" {
		method = http.MethodGet
	}
	header := make(http.Header)
	header.Set("Content-Type", "application/json")
	for k, v := range req.Headers {
		header.Set(k, v)
	}

	env := RequestEnvelope{
		Method: method,
		URL:    JoinURL(c.baseURL, req.Path),
		Header: header,
		Body:   req.Body,
	}
	if !req.Auth {
		return env
	}

	tokens := session.ResolveTokens(ctx, store)
	if tokens.AccessToken == "" {
		env.Unauthenticated = true
		return env
	}
	header.Set(HeaderAccessToken, tokens.AccessToken)
	if tokens.RefreshToken != "" {
		header.Set(HeaderRefreshToken, tokens.RefreshToken)
	}
	return env
}
