// Package apiclient is the single path from the web tier to the HR backend.
// It resolves the caller's tokens from the session, performs the call and
// normalises every outcome into a Result.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/niyo-hr/niyo-web/internal/observability"
	"github.com/niyo-hr/niyo-web/internal/session"
)

const maxResponseBytes = 4 << 20

// Config configures a Client.
type Config struct {
	BaseURL    string
	HTTPClient *http.Client
	// Timeout bounds each outbound call. Zero keeps the transport default.
	Timeout     time.Duration
	Logger      *slog.Logger
	Metrics     *observability.Metrics
	Interceptor Interceptor
}

// Client is safe for concurrent use and holds no per-user state.
type Client struct {
	baseURL     string
	httpClient  *http.Client
	logger      *slog.Logger
	metrics     *observability.Metrics
	interceptor Interceptor
}

// Result is the normalised outcome of one backend call.
// Status is 0 when the backend was never reached. Data is set only when OK,
// Error only when not OK.
type Result struct {
	OK      bool            `json:"ok"`
	Status  int             `json:"status"`
	Data    json.RawMessage `json:"data,omitempty"`
	Error   string          `json:"error,omitempty"`
	Details json.RawMessage `json:"details,omitempty"`
}

// New validates cfg and builds a Client.
func New(cfg Config) (*Client, error) {
	base := strings.TrimSpace(cfg.BaseURL)
	if base == "" {
		return nil, ErrBaseURLMissing
	}
	parsed, err := url.Parse(base)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("apiclient: invalid base URL %q", base)
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	if cfg.Timeout > 0 {
		clone := *httpClient
		clone.Timeout = cfg.Timeout
		httpClient = &clone
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	interceptor := cfg.Interceptor
	if interceptor == nil {
		interceptor = SessionReset{Metrics: cfg.Metrics, Logger: logger}
	}
	return &Client{
		baseURL:     base,
		httpClient:  httpClient,
		logger:      logger,
		metrics:     cfg.Metrics,
		interceptor: interceptor,
	}, nil
}

// BaseURL returns the configured backend root.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Do performs req on behalf of the session in store.
//
// The returned error is only ever a *RedirectError: the backend answered 401
// or 403 to an authenticated call, the session has been deleted and the
// caller must stop and redirect. Every other outcome, including network
// failures, is reported through the Result.
//
// A 401 or 403 to an unauthenticated call (login, registration) still deletes
// any prior session, but the Result is returned so the form on the login
// surface can show the backend's message.
func (c *Client) Do(ctx context.Context, store session.Store, req Request) (*Result, error) {
	env := c.Envelope(ctx, store, req)
	if env.Unauthenticated {
		return &Result{Status: http.StatusUnauthorized, Error: MsgNoSessionToken}, nil
	}

	res := c.send(ctx, endpointLabel(req.Path), env)
	if !res.OK && isAuthFailure(res.Status) {
		err := c.interceptor.Intercept(ctx, store, res.Status)
		if req.Auth && err != nil {
			return res, err
		}
	}
	return res, nil
}

// Ping reports whether the backend answers HTTP at all.
func (c *Client) Ping(ctx context.Context) (*Result, error) {
	res := c.send(ctx, "/", RequestEnvelope{
		Method: http.MethodGet,
		URL:    c.baseURL,
		Header: http.Header{"Content-Type": []string{"application/json"}},
	})
	if res.Status == 0 {
		return res, errors.New(res.Error)
	}
	return res, nil
}

func (c *Client) send(ctx context.Context, endpoint string, env RequestEnvelope) *Result {
	var body io.Reader
	if env.Body != nil {
		data, err := json.Marshal(env.Body)
		if err != nil {
			return &Result{Error: fmt.Sprintf("Invalid request body: %v", err)}
		}
		body = bytes.NewReader(data)
	}
	httpReq, err := http.NewRequestWithContext(ctx, env.Method, env.URL, body)
	if err != nil {
		return &Result{Error: networkMessage(err)}
	}
	httpReq.Header = env.Header

	start := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		c.metrics.ObserveBackendCall(endpoint, env.Method, 0, time.Since(start))
		c.logger.Warn("backend call failed",
			slog.String("endpoint", endpoint),
			slog.String("method", env.Method),
			slog.Any("error", err))
		return &Result{Error: networkMessage(err)}
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	raw, readErr := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes+1))
	elapsed := time.Since(start)
	c.metrics.ObserveBackendCall(endpoint, env.Method, resp.StatusCode, elapsed)
	if readErr != nil {
		c.logger.Warn("read backend response", slog.String("endpoint", endpoint), slog.Any("error", readErr))
	}
	c.logger.Debug("backend call",
		slog.String("endpoint", endpoint),
		slog.String("method", env.Method),
		slog.Int("status", resp.StatusCode),
		slog.Duration("elapsed", elapsed))

	if len(raw) > maxResponseBytes {
		c.logger.Warn("backend response truncated",
			slog.String("endpoint", endpoint),
			slog.Int("status", resp.StatusCode),
			slog.Int("limit_bytes", maxResponseBytes))
		return &Result{Status: resp.StatusCode, Error: MsgResponseTooLarge}
	}

	payload := parsePayload(raw)
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return &Result{OK: true, Status: resp.StatusCode, Data: payload}
	}
	return &Result{
		Status:  resp.StatusCode,
		Error:   errorMessage(payload, resp.StatusCode),
		Details: payload,
	}
}

// parsePayload returns the body when it is a JSON document and nil otherwise.
func parsePayload(raw []byte) json.RawMessage {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || !json.Valid(trimmed) || bytes.Equal(trimmed, []byte("null")) {
		return nil
	}
	return json.RawMessage(trimmed)
}

// errorMessage prefers the payload's "error", then its "message".
func errorMessage(payload json.RawMessage, status int) string {
	if len(payload) > 0 {
		var fields map[string]json.RawMessage
		if json.Unmarshal(payload, &fields) == nil {
			for _, key := range []string{"error", "message"} {
				var msg string
				if json.Unmarshal(fields[key], &msg) == nil && msg != "" {
					return msg
				}
			}
		}
	}
	return fmt.Sprintf("Request failed with status %d", status)
}

func networkMessage(err error) string {
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return "Network error: request timed out"
	}
	cause := err
	var urlErr *url.Error
	if errors.As(err, &urlErr) && urlErr.Err != nil {
		cause = urlErr.Err
	}
	return "Network error: " + cause.Error()
}

// endpointLabel keeps at most three path segments so ids and query strings
// never become metric labels.
func endpointLabel(path string) string {
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		path = path[:i]
	}
	parts := strings.Split(strings.Trim(path, "/"), "/")
	if len(parts) > 3 {
		parts = parts[:3]
	}
	return "/" + strings.Join(parts, "/")
}
