// Package fakebackend runs a scripted stand-in for the HR backend in tests.
package fakebackend

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/niyo-hr/niyo-web/internal/apiclient"
	"github.com/niyo-hr/niyo-web/internal/session"
)

// Call is one request the backend received.
type Call struct {
	Method string
	Path   string
	Query  string
	Header http.Header
	Raw    []byte
	Body   any
}

// Reply is a canned response.
type Reply struct {
	Status int
	Body   string
}

// Backend answers every request with the reply routed to its path, or the
// default reply.
type Backend struct {
	*httptest.Server

	mu     sync.Mutex
	calls  []Call
	def    Reply
	routes map[string]Reply
	delay  time.Duration
}

// New starts a Backend that answers status and body by default.
func New(t *testing.T, status int, body string) *Backend {
	t.Helper()
	b := &Backend{def: Reply{Status: status, Body: body}, routes: map[string]Reply{}}
	b.Server = httptest.NewServer(http.HandlerFunc(b.serve))
	t.Cleanup(b.Close)
	return b
}

func (b *Backend) serve(w http.ResponseWriter, r *http.Request) {
	raw, _ := io.ReadAll(r.Body)
	var decoded any
	_ = json.Unmarshal(raw, &decoded)

	b.mu.Lock()
	b.calls = append(b.calls, Call{
		Method: r.Method,
		Path:   r.URL.Path,
		Query:  r.URL.RawQuery,
		Header: r.Header.Clone(),
		Raw:    raw,
		Body:   decoded,
	})
	reply, ok := b.routes[r.URL.Path]
	if !ok {
		reply = b.def
	}
	delay := b.delay
	b.mu.Unlock()

	if delay > 0 {
		time.Sleep(delay)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(reply.Status)
	_, _ = io.WriteString(w, reply.Body)
}

// Route sets the reply for one path.
func (b *Backend) Route(path string, status int, body string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.routes[path] = Reply{Status: status, Body: body}
}

// Delay makes every later reply wait d.
func (b *Backend) Delay(d time.Duration) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.delay = d
}

// Calls returns a copy of every request received so far.
func (b *Backend) Calls() []Call {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]Call(nil), b.calls...)
}

// Last returns the most recent request.
func (b *Backend) Last(t *testing.T) Call {
	t.Helper()
	calls := b.Calls()
	require.NotEmpty(t, calls, "backend received no calls")
	return calls[len(calls)-1]
}

// Client returns an apiclient pointed at the backend.
func (b *Backend) Client(t *testing.T) *apiclient.Client {
	t.Helper()
	client, err := apiclient.New(apiclient.Config{BaseURL: b.URL})
	require.NoError(t, err)
	return client
}

// Store returns a memory store holding sess, or an empty one when sess is nil.
func Store(t *testing.T, sess *session.Session) *session.MemoryStore {
	t.Helper()
	store := session.NewMemoryStore(nil)
	if sess != nil {
		require.NoError(t, store.Set(context.Background(), sess, 0))
	}
	return store
}

// AdminStore is a store for a signed-in admin with tokens.
func AdminStore(t *testing.T) *session.MemoryStore {
	return Store(t, &session.Session{UserID: "1", Email: "admin@acme.co", Role: session.RoleAdmin, AccessToken: "A", RefreshToken: "R"})
}

// EmployeeStore is a store for a signed-in employee with tokens.
func EmployeeStore(t *testing.T) *session.MemoryStore {
	return Store(t, &session.Session{UserID: "e1", Email: "emp@acme.co", Role: session.RoleEmployee, AccessToken: "A"})
}
