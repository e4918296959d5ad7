package apiclient

import (
	"context"
	"net/http"

	"github.com/niyo-hr/niyo-web/internal/session"
)

// Option adjusts a Request built by the method helpers.
type Option func(*Request)

// WithAuth marks the call as authenticated.
func WithAuth() Option {
	return func(r *Request) { r.Auth = true }
}

// WithHeaders merges extra headers into the call.
func WithHeaders(headers map[string]string) Option {
	return func(r *Request) {
		if r.Headers == nil {
			r.Headers = make(map[string]string, len(headers))
		}
		for k, v := range headers {
			r.Headers[k] = v
		}
	}
}

func (c *Client) call(ctx context.Context, store session.Store, method, path string, body any, opts []Option) (*Result, error) {
	req := Request{Method: method, Path: path, Body: body}
	for _, opt := range opts {
		opt(&req)
	}
	return c.Do(ctx, store, req)
}

// Get issues a GET.
func (c *Client) Get(ctx context.Context, store session.Store, path string, opts ...Option) (*Result, error) {
	return c.call(ctx, store, http.MethodGet, path, nil, opts)
}

// Post issues a POST with a JSON body.
func (c *Client) Post(ctx context.Context, store session.Store, path string, body any, opts ...Option) (*Result, error) {
	return c.call(ctx, store, http.MethodPost, path, body, opts)
}

// Put issues a PUT with a JSON body.
func (c *Client) Put(ctx context.Context, store session.Store, path string, body any, opts ...Option) (*Result, error) {
	return c.call(ctx, store, http.MethodPut, path, body, opts)
}

// Patch issues a PATCH with a JSON body.
func (c *Client) Patch(ctx context.Context, store session.Store, path string, body any, opts ...Option) (*Result, error) {
	return c.call(ctx, store, http.MethodPatch, path, body, opts)
}

// Delete issues a DELETE. The backend accepts a JSON body on some deletes.
func (c *Client) Delete(ctx context.Context, store session.Store, path string, body any, opts ...Option) (*Result, error) {
	return c.call(ctx, store, http.MethodDelete, path, body, opts)
}
